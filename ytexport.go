package ytexport

import (
	"context"
	"fmt"

	"ytexport/export"
	"ytexport/youtube"
)

// ScrapeChannel resolves channelURL and collects its videos in a single
// session configured by cfg.
func ScrapeChannel(ctx context.Context, cfg youtube.Config, channelURL string, opts youtube.CollectOptions) (*youtube.ScrapeResult, error) {
	client, err := youtube.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return client.ScrapeChannel(ctx, channelURL, opts)
}

// ExportChannel scrapes the channel and writes the result to path, with the
// format inferred from its extension. No file is written when the scrape
// fails or yields no videos; the latter returns ErrNoRecords with the result.
func ExportChannel(ctx context.Context, cfg youtube.Config, channelURL, path string, opts youtube.CollectOptions) (*youtube.ScrapeResult, error) {
	result, err := ScrapeChannel(ctx, cfg, channelURL, opts)
	if err != nil {
		return nil, err
	}

	if err := export.Write(path, "", &result.Channel, result.Videos); err != nil {
		return result, fmt.Errorf("export channel %s: %w", result.Channel.ID, err)
	}
	return result, nil
}
