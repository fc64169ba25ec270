package youtube

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	ytapi "google.golang.org/api/youtube/v3"
)

type channelsListCall = *ytapi.ChannelsListCall

// maxDescriptionLen is the channel description length kept before truncation.
const maxDescriptionLen = 500

// FetchChannelInfo retrieves channel metadata and its uploads playlist ID.
func (c *Client) FetchChannelInfo(ctx context.Context, channelID string) (*ChannelInfo, error) {
	var channel *ytapi.Channel

	err := c.call(opChannels, func() error {
		resp, err := c.service.Channels.
			List([]string{"snippet", "statistics", "contentDetails", "brandingSettings"}).
			Id(channelID).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		if len(resp.Items) > 0 {
			channel = resp.Items[0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if channel == nil {
		return nil, fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)
	}

	return channelInfoFromAPI(channelID, channel)
}

func channelInfoFromAPI(channelID string, ch *ytapi.Channel) (*ChannelInfo, error) {
	if ch.Snippet == nil {
		return nil, &ItemParseError{Kind: "channel", ID: channelID, Err: errors.New("missing snippet")}
	}
	if ch.ContentDetails == nil || ch.ContentDetails.RelatedPlaylists == nil ||
		ch.ContentDetails.RelatedPlaylists.Uploads == "" {
		return nil, &ItemParseError{Kind: "channel", ID: channelID, Err: errors.New("missing uploads playlist")}
	}

	info := &ChannelInfo{
		ID:                channelID,
		Name:              ch.Snippet.Title,
		Description:       truncateDescription(ch.Snippet.Description),
		CreatedDate:       datePart(ch.Snippet.PublishedAt),
		Country:           ch.Snippet.Country,
		CustomURL:         ch.Snippet.CustomUrl,
		UploadsPlaylistID: ch.ContentDetails.RelatedPlaylists.Uploads,
	}
	if info.Country == "" {
		info.Country = "Unknown"
	}

	if stats := ch.Statistics; stats != nil {
		info.SubscriberCount = toInt64(stats.SubscriberCount)
		info.VideoCount = toInt64(stats.VideoCount)
		info.ViewCount = toInt64(stats.ViewCount)
	}

	if th := ch.Snippet.Thumbnails; th != nil && th.High != nil {
		info.ThumbnailURL = th.High.Url
	}

	return info, nil
}

// truncateDescription keeps the first 500 characters and appends "..."
// when the description is longer.
func truncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= maxDescriptionLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxDescriptionLen]) + "..."
}

// datePart returns the YYYY-MM-DD prefix of an RFC 3339 timestamp.
func datePart(ts string) string {
	if len(ts) < 10 {
		return ts
	}
	return ts[:10]
}

func toInt64(v uint64) int64 {
	if v > 1<<63-1 {
		return 1<<63 - 1
	}
	return int64(v)
}
