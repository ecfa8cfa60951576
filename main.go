package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/tribunen/billettvakt/aggregate"
	"github.com/tribunen/billettvakt/client"
	"github.com/tribunen/billettvakt/constant"
	"github.com/tribunen/billettvakt/entities"
	"github.com/tribunen/billettvakt/events"
	"github.com/tribunen/billettvakt/imagecreator"
	"github.com/tribunen/billettvakt/proxy"
	"github.com/tribunen/billettvakt/report"
	"github.com/tribunen/billettvakt/snapshot"
	"github.com/tribunen/billettvakt/social"
	"github.com/tribunen/billettvakt/team"
	"github.com/tribunen/billettvakt/utils"
	"github.com/tribunen/billettvakt/venue"
)

func main() {
	club := flag.String("club", "brann", "Club to track (brann, rosenborg)")
	nextOrAll := flag.String("events", "next", "Process the 'next' event only or 'all' upcoming events")
	maxGoroutines := flag.Int("workers", 10, "Number of concurrent workers")
	requestDelay := flag.Int("delay", 100, "Delay between requests in milliseconds")
	debug := flag.Bool("debug", false, "Dump raw counted sections and stop before aggregation")
	local := flag.Bool("local", false, "Skip fetching and re-render from stored snapshots")
	post := flag.Bool("post", false, "Post the rendered images to Twitter and Bluesky")
	proxies := flag.Uint("proxies", 0, "Size of the rotating proxy pool (0 disables proxies)")
	usePostgres := flag.Bool("pg", false, "Mirror snapshots into Postgres")
	flag.Parse()

	_ = godotenv.Load()

	fmt.Println("========================================")
	fmt.Printf("=  Running scripts,  %s  =\n", utils.HumanTimestamp())
	fmt.Println("========================================")
	fmt.Printf("Configuration: Using %d workers with %dms delay between requests\n", *maxGoroutines, *requestDelay)

	cfg, err := venue.ByClub(*club)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	if err := run(cfg, *nextOrAll, *maxGoroutines, *requestDelay, *debug, *local, *post, uint16(*proxies), *usePostgres); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func run(cfg *venue.Config, nextOrAll string, maxGoroutines, requestDelay int, debug, local, post bool, proxyPoolSize uint16, usePostgres bool) error {
	ctx := context.Background()
	fmt.Printf("Starting fetching data for %s...\n", cfg.Club)

	scraper := events.NewScraper()
	eventList, err := scraper.UpcomingEvents(nextOrAll, cfg)
	if err != nil {
		return fmt.Errorf("failed to discover events: %w", err)
	}
	eventList = events.AddCustomGames(cfg.CustomGames, eventList)

	matchList, err := events.Normalize(eventList)
	if err != nil {
		return fmt.Errorf("failed to normalize events: %w", err)
	}

	fileStore := snapshot.NewFileStore(constant.MatchesPath)
	stores := []snapshot.Store{fileStore}
	if usePostgres {
		pool, err := snapshot.NewPostgresPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := snapshot.InitPostgresSchema(ctx, pool); err != nil {
			return err
		}
		stores = append(stores, snapshot.NewPostgresStore(pool))
	}

	ticketAPI, err := buildTicketAPI(proxyPoolSize)
	if err != nil {
		return err
	}

	var imagePaths []string
	for _, match := range matchList {
		if match.Venue != cfg.Stadium {
			fmt.Printf("Error: Unknown stadium for %s\n", match.Title)
			continue
		}

		if !local {
			done, err := captureSnapshot(ctx, cfg, ticketAPI, stores, match, maxGoroutines, requestDelay, debug)
			if err != nil {
				fmt.Printf("Skipping %s: %v\n", match.Title, err)
				continue
			}
			if !done {
				// Debug dump written, nothing to report on.
				continue
			}
		}

		imagePath, err := renderImage(cfg, fileStore, match, len(imagePaths))
		if err != nil {
			fmt.Printf("Couldn't render image for %s: %v\n", match.Title, err)
			continue
		}
		imagePaths = append(imagePaths, imagePath)
	}

	if post && len(imagePaths) > 0 {
		return postImages(cfg, imagePaths)
	}
	if len(imagePaths) == 0 {
		fmt.Println("Image list is empty")
	}
	return nil
}

func buildTicketAPI(proxyPoolSize uint16) (client.TicketAPI, error) {
	if proxyPoolSize == 0 {
		return client.New(), nil
	}
	manager, err := proxy.New(&proxy.ManagerOptions{Client: proxy.NewHTTPClient()})
	if err != nil {
		return nil, fmt.Errorf("failed to build proxy pool: %w", err)
	}
	return client.NewClientPool(proxyPoolSize, manager), nil
}

// captureSnapshot fetches and counts every section of one event, aggregates
// them into category totals and persists the snapshot. Returns false when a
// debug dump was written instead.
func captureSnapshot(ctx context.Context, cfg *venue.Config, ticketAPI client.TicketAPI, stores []snapshot.Store, match entities.MatchEvent, maxGoroutines, requestDelay int, debug bool) (bool, error) {
	fmt.Printf("\nUpdating ticket information for: %s\n", match.Title)

	var completed int64
	sectionTeam := team.NewSectionTeam(maxGoroutines, &team.SectionTeamWorkingMaterial{
		RequestDelay: requestDelay,
		Completed:    &completed,
		Client:       ticketAPI,
		Config:       cfg,
	})

	work, err := sectionTeam.ListSections(match.Link)
	if err != nil {
		return false, fmt.Errorf("error listing sections: %w", err)
	}
	if len(work) == 0 {
		return false, fmt.Errorf("no sections found")
	}

	stop := make(chan struct{})
	go utils.ReportProgress(&completed, int64(len(work)), stop)
	counted := sectionTeam.Count(match.Link, work)
	close(stop)
	fmt.Println()

	if debug {
		fileStore := snapshot.NewFileStore(constant.MatchesPath)
		return false, fileStore.WriteRaw("debug", counted)
	}

	info := entities.GeneralInfo{
		Title: match.Title,
		Date:  fmt.Sprintf("%s %s @ %s", match.Date, match.Time, match.Venue),
		Time:  utils.HumanTimestamp(),
	}
	snap := aggregate.New(cfg).Aggregate(counted, info, match.Europe)

	for _, store := range stores {
		if err := store.WriteSnapshot(ctx, match.Title, snap); err != nil {
			return false, err
		}
	}
	return true, nil
}

// renderImage diffs the two newest snapshots of the event and composites
// the trend report onto the club's background.
func renderImage(cfg *venue.Config, fileStore *snapshot.FileStore, match entities.MatchEvent, pictureNumber int) (string, error) {
	latest, prior, err := fileStore.LatestPair(match.Title)
	if err != nil {
		return "", err
	}

	categories := append(append([]string{}, cfg.Categories...), entities.TotalCategory)
	text := report.Render(latest, prior, categories)

	background, league, logoEntries := venue.LeagueAssets(match.Title)
	creator := imagecreator.New(
		filepath.Join(constant.ImagesPath, background),
		filepath.Join(constant.ImagesPath, cfg.Club+".png"),
	)
	img, err := creator.Create(text, logoEntries, league)
	if err != nil {
		return "", err
	}

	outDir := filepath.Join("clubs", cfg.Club)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", err
	}
	return creator.Save(img, filepath.Join(outDir, fmt.Sprintf("picture%d.png", pictureNumber)))
}

func postImages(cfg *venue.Config, imagePaths []string) error {
	twitter, err := social.NewTwitterPoster()
	if err != nil {
		return err
	}
	if err := twitter.CreateTweet(cfg.TweetHeader, imagePaths); err != nil {
		return err
	}

	bluesky, err := social.NewBlueskyPoster()
	if err != nil {
		return err
	}
	return bluesky.CreatePost(cfg.TweetHeader, imagePaths)
}
