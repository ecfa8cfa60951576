package social

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/dghubble/oauth1"
)

const (
	mediaUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	createTweetURL = "https://api.twitter.com/2/tweets"

	// Twitter allows at most four images per tweet; extra images go into
	// reply tweets forming a thread.
	imagesPerTweet = 4
)

// TwitterPoster posts report images to Twitter. Media upload still lives on
// the v1.1 API and needs OAuth1 signing; tweet creation uses v2.
type TwitterPoster struct {
	client *http.Client
}

func NewTwitterPoster() (*TwitterPoster, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_KEY_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_TOKEN_SECRET")
	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("TWITTER_* credentials are not set")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	return &TwitterPoster{client: config.Client(oauth1.NoContext, token)}, nil
}

// CreateTweet uploads every image and posts the text with the first four;
// remaining images are posted as replies in chunks of four.
func (p *TwitterPoster) CreateTweet(text string, mediaPaths []string) error {
	fmt.Println("Creating Tweet...")
	var mediaIDs []string
	for _, path := range mediaPaths {
		mediaID, err := p.uploadMedia(path)
		if err != nil {
			return fmt.Errorf("error uploading %s: %w", path, err)
		}
		fmt.Println("Media successfully uploaded! Id: " + mediaID)
		mediaIDs = append(mediaIDs, mediaID)
	}

	tweetID, err := p.postTweet(text, firstChunk(mediaIDs), "")
	if err != nil {
		return fmt.Errorf("error creating tweet: %w", err)
	}
	fmt.Println("Tweeted!")

	for i := imagesPerTweet; i < len(mediaIDs); i += imagesPerTweet {
		end := min(i+imagesPerTweet, len(mediaIDs))
		tweetID, err = p.postTweet("", mediaIDs[i:end], tweetID)
		if err != nil {
			return fmt.Errorf("error creating reply tweet: %w", err)
		}
		fmt.Printf("Reply Tweet posted with media IDs from %d to %d!\n", i, end)
	}
	return nil
}

func (p *TwitterPoster) uploadMedia(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("media", file.Name())
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	resp, err := p.client.Post(mediaUploadURL, writer.FormDataContentType(), &body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("media upload failed: %s: %s", resp.Status, respBody)
	}

	var upload struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := json.Unmarshal(respBody, &upload); err != nil {
		return "", err
	}
	return upload.MediaIDString, nil
}

type tweetRequest struct {
	Text  string `json:"text,omitempty"`
	Media struct {
		MediaIDs []string `json:"media_ids"`
	} `json:"media"`
	Reply *struct {
		InReplyToTweetID string `json:"in_reply_to_tweet_id"`
	} `json:"reply,omitempty"`
}

func (p *TwitterPoster) postTweet(text string, mediaIDs []string, inReplyTo string) (string, error) {
	request := tweetRequest{Text: text}
	request.Media.MediaIDs = mediaIDs
	if inReplyTo != "" {
		request.Reply = &struct {
			InReplyToTweetID string `json:"in_reply_to_tweet_id"`
		}{InReplyToTweetID: inReplyTo}
	}
	payload, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Post(createTweetURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tweet creation failed: %s: %s", resp.Status, respBody)
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", err
	}
	return created.Data.ID, nil
}

func firstChunk(mediaIDs []string) []string {
	if len(mediaIDs) > imagesPerTweet {
		return mediaIDs[:imagesPerTweet]
	}
	return mediaIDs
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
