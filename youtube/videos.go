package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/sosodev/duration"
	ytapi "google.golang.org/api/youtube/v3"
)

// Duration thresholds, in minutes, for the video length categories.
const (
	lowMaxMinutes    = 10.0
	mediumMaxMinutes = 30.0
)

// FetchVideoDetails fetches statistics and details for up to 50 video IDs in
// one call and converts each into a VideoRecord. Items that cannot be parsed
// are logged and skipped.
func (c *Client) FetchVideoDetails(ctx context.Context, videoIDs []string, channel *ChannelInfo) ([]VideoRecord, error) {
	records, _, err := c.fetchVideoDetails(ctx, videoIDs, channel)
	return records, err
}

func (c *Client) fetchVideoDetails(ctx context.Context, videoIDs []string, channel *ChannelInfo) ([]VideoRecord, int, error) {
	if len(videoIDs) == 0 {
		return nil, 0, nil
	}
	if len(videoIDs) > MaxPageSize {
		return nil, 0, fmt.Errorf("videos.list accepts at most %d ids, got %d", MaxPageSize, len(videoIDs))
	}

	var items []*ytapi.Video
	err := c.call(opVideos, func() error {
		resp, err := c.service.Videos.
			List([]string{"snippet", "statistics", "contentDetails", "status"}).
			Id(strings.Join(videoIDs, ",")).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		items = resp.Items
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	now := c.now()
	records := make([]VideoRecord, 0, len(items))
	skipped := 0
	for _, item := range items {
		rec, err := TransformVideo(item, channel, now)
		if err != nil {
			skipped++
			c.logger.Error("skipping video", slog.Any("error", err))
			continue
		}
		records = append(records, rec)
	}

	return records, skipped, nil
}

// TransformVideo converts one videos.list item into a VideoRecord. now is
// the reference time for DaysSinceUpload.
func TransformVideo(item *ytapi.Video, channel *ChannelInfo, now time.Time) (VideoRecord, error) {
	if item == nil {
		return VideoRecord{}, &ItemParseError{Kind: "video", Err: errors.New("nil item")}
	}
	fail := func(err error) (VideoRecord, error) {
		return VideoRecord{}, &ItemParseError{Kind: "video", ID: item.Id, Err: err}
	}

	switch {
	case item.Id == "":
		return fail(errors.New("missing id"))
	case item.Snippet == nil:
		return fail(errors.New("missing snippet"))
	case item.Statistics == nil:
		return fail(errors.New("missing statistics"))
	case item.ContentDetails == nil:
		return fail(errors.New("missing contentDetails"))
	}

	minutes, err := durationMinutes(item.ContentDetails.Duration)
	if err != nil {
		return fail(err)
	}

	published, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		return fail(fmt.Errorf("parse publishedAt: %w", err))
	}

	rec := VideoRecord{
		ID:              item.Id,
		Title:           item.Snippet.Title,
		URL:             VideoURL(item.Id),
		Views:           toInt64(item.Statistics.ViewCount),
		Likes:           toInt64(item.Statistics.LikeCount),
		Comments:        toInt64(item.Statistics.CommentCount),
		UploadDate:      datePart(item.Snippet.PublishedAt),
		UploadDateTime:  item.Snippet.PublishedAt,
		DaysSinceUpload: DaysSince(published, now),
		DurationMinutes: minutes,
		VideoType:       ClassifyDuration(minutes),
		Description:     item.Snippet.Description,
		ThumbnailHigh:   bestThumbnail(item.Snippet.Thumbnails),
	}
	if channel != nil {
		rec.ChannelName = channel.Name
	}

	return rec, nil
}

// ClassifyDuration maps a duration in minutes to its length category.
func ClassifyDuration(minutes float64) string {
	switch {
	case minutes <= lowMaxMinutes:
		return VideoTypeLow
	case minutes <= mediumMaxMinutes:
		return VideoTypeMedium
	default:
		return VideoTypeLong
	}
}

// DaysSince returns the whole days elapsed between t and now, measured in
// t's time zone. Future timestamps give negative values, floored.
func DaysSince(t, now time.Time) int {
	elapsed := now.In(t.Location()).Sub(t)
	return int(math.Floor(elapsed.Hours() / 24))
}

// durationMinutes parses an ISO-8601 duration ("PT1H2M3S") into minutes
// rounded to two decimals.
func durationMinutes(iso string) (float64, error) {
	if iso == "" {
		return 0, errors.New("missing duration")
	}
	d, err := duration.Parse(iso)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", iso, err)
	}
	seconds := d.ToTimeDuration().Seconds()
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration %q", iso)
	}
	return math.Round(seconds/60*100) / 100, nil
}

// bestThumbnail returns the highest quality thumbnail URL available.
func bestThumbnail(th *ytapi.ThumbnailDetails) string {
	if th == nil {
		return ""
	}
	for _, t := range []*ytapi.Thumbnail{th.Maxres, th.Standard, th.High, th.Medium, th.Default} {
		if t != nil && t.Url != "" {
			return t.Url
		}
	}
	return ""
}
