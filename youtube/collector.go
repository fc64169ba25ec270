package youtube

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"slices"

	ytapi "google.golang.org/api/youtube/v3"
)

// CollectVideos pages through the channel's uploads playlist and returns up
// to opts.MaxResults records. Any failure other than an unparseable item
// aborts collection: the error is returned and no records are.
func (c *Client) CollectVideos(ctx context.Context, channel *ChannelInfo, opts CollectOptions) ([]VideoRecord, error) {
	if channel == nil || channel.UploadsPlaylistID == "" {
		return nil, errors.New("channel info with uploads playlist required")
	}
	if opts.MaxResults < 0 {
		return nil, errors.New("max results must be non-negative")
	}

	videos, err := c.collect(ctx, channel, opts)
	if err != nil {
		c.logger.Error("video collection aborted",
			slog.String("channel_id", channel.ID),
			slog.Int("discarded", len(videos)),
			slog.Any("error", err))
		return nil, err
	}

	SortVideos(videos, opts.Sort)

	if opts.MaxResults > 0 && len(videos) > opts.MaxResults {
		videos = videos[:opts.MaxResults]
	}
	return videos, nil
}

func (c *Client) collect(ctx context.Context, channel *ChannelInfo, opts CollectOptions) ([]VideoRecord, error) {
	var (
		videos    []VideoRecord
		pageToken string
		page      int
		skipped   int
	)

	for opts.MaxResults == 0 || len(videos) < opts.MaxResults {
		if err := c.pacer.Wait(ctx); err != nil {
			return videos, err
		}

		pageSize := MaxPageSize
		if opts.MaxResults > 0 {
			pageSize = min(MaxPageSize, opts.MaxResults-len(videos))
		}

		ids, next, err := c.playlistPage(ctx, channel.UploadsPlaylistID, pageToken, pageSize)
		if err != nil {
			return videos, err
		}
		page++

		if len(ids) == 0 {
			break
		}

		records, n, err := c.fetchVideoDetails(ctx, ids, channel)
		if err != nil {
			return videos, err
		}
		videos = append(videos, records...)
		skipped += n
		pageToken = next

		c.logger.Info("scraped videos so far",
			slog.Int("page", page),
			slog.Int("videos", len(videos)),
			slog.Int("skipped", skipped))

		if opts.OnProgress != nil {
			if err := opts.OnProgress(Progress{
				Page:          page,
				Collected:     len(videos),
				Skipped:       skipped,
				NextPageToken: next,
			}); err != nil {
				return videos, err
			}
		}

		if pageToken == "" {
			break
		}
	}

	return videos, nil
}

// playlistPage fetches one page of the playlist and returns the video IDs it
// references along with the continuation token.
func (c *Client) playlistPage(ctx context.Context, playlistID, pageToken string, pageSize int) ([]string, string, error) {
	var (
		ids  []string
		next string
	)

	err := c.call(opPlaylistItems, func() error {
		call := c.service.PlaylistItems.List([]string{"snippet", "contentDetails"}).
			PlaylistId(playlistID).
			MaxResults(int64(pageSize)).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return err
		}

		for _, item := range resp.Items {
			if id := playlistItemVideoID(item); id != "" {
				ids = append(ids, id)
			}
		}
		next = resp.NextPageToken
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	return ids, next, nil
}

func playlistItemVideoID(item *ytapi.PlaylistItem) string {
	if item == nil {
		return ""
	}
	if item.Snippet != nil && item.Snippet.ResourceId != nil && item.Snippet.ResourceId.VideoId != "" {
		return item.Snippet.ResourceId.VideoId
	}
	if item.ContentDetails != nil {
		return item.ContentDetails.VideoId
	}
	return ""
}

// SortVideos orders videos in place. SortByViews and SortByLikes sort
// descending and keep the original order among equal values; any other
// order leaves the slice untouched.
func SortVideos(videos []VideoRecord, order SortOrder) {
	var key func(VideoRecord) int64
	switch order {
	case SortByViews:
		key = func(v VideoRecord) int64 { return v.Views }
	case SortByLikes:
		key = func(v VideoRecord) int64 { return v.Likes }
	default:
		return
	}

	slices.SortStableFunc(videos, func(a, b VideoRecord) int {
		return cmp.Compare(key(b), key(a))
	})
}
