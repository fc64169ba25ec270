package youtube

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// RefKind identifies which URL shape a channel reference was given in.
type RefKind string

const (
	// RefChannel is a direct channel ID (/channel/<id>).
	RefChannel RefKind = "channel"
	// RefCustom is a custom name (/c/<name> or a bare /<name>).
	RefCustom RefKind = "custom"
	// RefUser is a legacy username (/user/<name>).
	RefUser RefKind = "user"
	// RefHandle is an @handle (/@<handle>).
	RefHandle RefKind = "handle"
)

// ChannelRef is a parsed channel URL.
type ChannelRef struct {
	Kind  RefKind
	Value string
}

// channelURLPatterns are tried in order; the first match wins.
var channelURLPatterns = []struct {
	re   *regexp.Regexp
	kind RefKind
}{
	{regexp.MustCompile(`youtube\.com/channel/([a-zA-Z0-9_-]+)`), RefChannel},
	{regexp.MustCompile(`youtube\.com/c/([a-zA-Z0-9_-]+)`), RefCustom},
	{regexp.MustCompile(`youtube\.com/user/([a-zA-Z0-9_-]+)`), RefUser},
	{regexp.MustCompile(`youtube\.com/@([a-zA-Z0-9_.-]+)`), RefHandle},
	{regexp.MustCompile(`youtube\.com/([a-zA-Z0-9_-]+)$`), RefCustom},
}

// ParseChannelURL matches a channel URL against the supported shapes without
// touching the network.
func ParseChannelURL(channelURL string) (ChannelRef, error) {
	channelURL = strings.TrimSpace(channelURL)

	for _, p := range channelURLPatterns {
		if m := p.re.FindStringSubmatch(channelURL); m != nil {
			return ChannelRef{Kind: p.kind, Value: m[1]}, nil
		}
	}

	return ChannelRef{}, fmt.Errorf("%w: %q", ErrInvalidURL, channelURL)
}

// ExtractChannelID turns a channel URL into a channel ID. Direct channel
// URLs are answered locally; other shapes cost one lookup call.
func (c *Client) ExtractChannelID(ctx context.Context, channelURL string) (string, error) {
	ref, err := ParseChannelURL(channelURL)
	if err != nil {
		return "", err
	}

	if ref.Kind == RefChannel {
		return ref.Value, nil
	}

	return c.ResolveChannelID(ctx, ref)
}

// ResolveChannelID looks up the channel ID for a username, handle or custom name.
func (c *Client) ResolveChannelID(ctx context.Context, ref ChannelRef) (string, error) {
	var (
		channelID string
		err       error
	)

	switch ref.Kind {
	case RefChannel:
		return ref.Value, nil
	case RefUser:
		channelID, err = c.lookupChannel(ctx, ref, func(call channelsListCall) channelsListCall {
			return call.ForUsername(ref.Value)
		})
	case RefHandle:
		channelID, err = c.lookupChannel(ctx, ref, func(call channelsListCall) channelsListCall {
			return call.ForHandle(ref.Value)
		})
	default:
		channelID, err = c.searchChannel(ctx, ref)
	}
	if err != nil {
		return "", err
	}

	c.logger.Debug("channel resolved",
		slog.String("kind", string(ref.Kind)),
		slog.String("value", ref.Value),
		slog.String("channel_id", channelID))
	return channelID, nil
}

func (c *Client) lookupChannel(ctx context.Context, ref ChannelRef, filter func(channelsListCall) channelsListCall) (string, error) {
	var channelID string

	err := c.call(opChannels, func() error {
		resp, err := filter(c.service.Channels.List([]string{"id"})).Context(ctx).Do()
		if err != nil {
			return err
		}
		if len(resp.Items) > 0 {
			channelID = resp.Items[0].Id
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if channelID == "" {
		return "", fmt.Errorf("%w: %s %q", ErrResolutionFailed, ref.Kind, ref.Value)
	}
	return channelID, nil
}

func (c *Client) searchChannel(ctx context.Context, ref ChannelRef) (string, error) {
	var channelID string

	err := c.call(opSearch, func() error {
		resp, err := c.service.Search.List([]string{"id"}).
			Q(ref.Value).
			Type("channel").
			MaxResults(1).
			Context(ctx).
			Do()
		if err != nil {
			return err
		}
		if len(resp.Items) > 0 && resp.Items[0].Id != nil {
			channelID = resp.Items[0].Id.ChannelId
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if channelID == "" {
		return "", fmt.Errorf("%w: %s %q", ErrResolutionFailed, ref.Kind, ref.Value)
	}
	return channelID, nil
}
