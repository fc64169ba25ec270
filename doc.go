// Package ytexport exports a YouTube channel's video catalog to a spreadsheet.
//
// It resolves a channel URL to its channel ID, fetches channel metadata, pages
// through the channel's uploads with the YouTube Data API v3, and derives per
// video metrics such as the length category and days since upload.
//
// Overview
//
// ytexport provides high-level convenience functions for the most common operations:
//
//   - ScrapeChannel: Collect a channel's videos
//   - ExportChannel: Collect a channel's videos and write them to a file
//
// Quick Start
//
// Export the latest 50 uploads of a channel:
//
//	ctx := context.Background()
//	cfg := youtube.Config{APIKey: os.Getenv("YOUTUBE_API_KEY")}
//	result, err := ytexport.ExportChannel(ctx, cfg, "https://www.youtube.com/@GoogleDevelopers",
//		"youtube_data.xlsx", youtube.CollectOptions{MaxResults: 50})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Exported %d videos of %s\n", len(result.Videos), result.Channel.Name)
//
// Supported channel URLs:
//
//   - https://www.youtube.com/channel/UCxxxxx (no API call needed)
//   - https://www.youtube.com/@handle
//   - https://www.youtube.com/user/legacyname
//   - https://www.youtube.com/c/customname
//   - https://www.youtube.com/customname
//
// Configuration
//
// The command line tool loads settings from multiple sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (ytexport.json or ~/.config/ytexport/ytexport.json)
//   3. Default values (lowest priority)
//
// A .env file in the working directory is read first and only fills variables
// that are not already set.
//
// Environment variables:
//
//   - YOUTUBE_API_KEY: YouTube Data API v3 key (required)
//   - YTEXPORT_MAX_VIDEOS: Maximum videos to export (0 = all uploads)
//   - YTEXPORT_SORT_BY: date, views or likes
//   - YTEXPORT_OUTPUT_FILE: Export path (default youtube_data.xlsx)
//   - YTEXPORT_OUTPUT_FORMAT: xlsx, csv or json
//   - YTEXPORT_PAGE_DELAY: Pause between paginated requests
//   - YTEXPORT_REQUEST_TIMEOUT: Timeout for a single HTTP request
//   - YTEXPORT_DAILY_CALL_LIMIT: Local ceiling on API calls per run
//   - YTEXPORT_LOG_LEVEL, YTEXPORT_LOG_DIR: Logging
//
// Error Handling
//
// All operations return errors that implement standard Go error handling.
// A failed collection returns no partial data.
//
// Checking for sentinel errors:
//
//	if errors.Is(err, ytexport.ErrQuotaExceeded) {
//		fmt.Println("Call budget exhausted")
//	}
//
// Extracting wrapped error details:
//
//	var apiErr *ytexport.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("%s failed: %s (%s)\n", apiErr.Operation, apiErr.Message, apiErr.Reason)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - youtube: Channel resolution, video collection and transformation
//   - export: xlsx, csv and json writers
//   - http: HTTP client and request pacing
//   - config: Configuration management
//
// Example using the youtube package directly:
//
//	client, err := youtube.NewClient(ctx, youtube.Config{APIKey: key})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//	id, err := client.ExtractChannelID(ctx, "https://www.youtube.com/@handle")
//	info, err := client.FetchChannelInfo(ctx, id)
//	videos, err := client.CollectVideos(ctx, info, youtube.CollectOptions{
//		MaxResults: 0,
//		Sort:       youtube.SortByViews,
//	})
//	fmt.Printf("%d calls used\n", client.Quota().Used())
//
package ytexport
