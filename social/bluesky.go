package social

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

const blueskyBaseURL = "https://bsky.social/xrpc"

// BlueskyPoster posts report images to Bluesky through the XRPC API.
type BlueskyPoster struct {
	http     *resty.Client
	handle   string
	password string
}

func NewBlueskyPoster() (*BlueskyPoster, error) {
	handle := os.Getenv("BLUESKY_HANDLE")
	password := os.Getenv("BLUESKY_PASSWORD")
	if handle == "" || password == "" {
		return nil, fmt.Errorf("BLUESKY_* credentials are not set")
	}
	return &BlueskyPoster{
		http:     resty.New().SetBaseURL(blueskyBaseURL),
		handle:   handle,
		password: password,
	}, nil
}

type blueskySession struct {
	AccessJwt string `json:"accessJwt"`
	Did       string `json:"did"`
}

type blueskyImage struct {
	Alt   string          `json:"alt"`
	Image json.RawMessage `json:"image"`
}

// CreatePost logs in, uploads every image as a blob, and publishes one post
// embedding them all.
func (p *BlueskyPoster) CreatePost(text string, mediaPaths []string) error {
	fmt.Println("Creating Skeet...")
	session, err := p.createSession()
	if err != nil {
		return fmt.Errorf("error creating bluesky session: %w", err)
	}

	var images []blueskyImage
	for _, path := range mediaPaths {
		blob, err := p.uploadBlob(session, path)
		if err != nil {
			return fmt.Errorf("error uploading %s: %w", path, err)
		}
		images = append(images, blueskyImage{Image: blob})
	}

	record := map[string]any{
		"$type":     "app.bsky.feed.post",
		"text":      text,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
		"embed": map[string]any{
			"$type":  "app.bsky.embed.images",
			"images": images,
		},
	}
	resp, err := p.http.R().
		SetAuthToken(session.AccessJwt).
		SetBody(map[string]any{
			"repo":       session.Did,
			"collection": "app.bsky.feed.post",
			"record":     record,
		}).
		Post("/com.atproto.repo.createRecord")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("post creation failed: %s: %s", resp.Status(), resp.Body())
	}
	return nil
}

func (p *BlueskyPoster) createSession() (*blueskySession, error) {
	var session blueskySession
	resp, err := p.http.R().
		SetBody(map[string]string{"identifier": p.handle, "password": p.password}).
		SetResult(&session).
		Post("/com.atproto.server.createSession")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("login failed: %s: %s", resp.Status(), resp.Body())
	}
	return &session, nil
}

func (p *BlueskyPoster) uploadBlob(session *blueskySession, path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	resp, err := p.http.R().
		SetAuthToken(session.AccessJwt).
		SetHeader("Content-Type", "image/png").
		SetBody(data).
		Post("/com.atproto.repo.uploadBlob")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("blob upload failed: %s: %s", resp.Status(), resp.Body())
	}
	var uploaded struct {
		Blob json.RawMessage `json:"blob"`
	}
	if err := json.Unmarshal(resp.Body(), &uploaded); err != nil {
		return nil, err
	}
	return uploaded.Blob, nil
}
