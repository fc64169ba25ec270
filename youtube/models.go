// Package youtube resolves YouTube channels and collects their video catalog
// through the YouTube Data API v3.
package youtube

import (
	"fmt"
	"strings"
)

// MaxPageSize is the largest page the Data API returns for list calls, and
// the largest batch of IDs accepted by videos.list.
const MaxPageSize = 50

// ChannelInfo is a snapshot of channel metadata taken at the start of a run.
type ChannelInfo struct {
	// ID is the YouTube channel ID (e.g., "UCuAXFkgsw1L7xaCfnd5JJOw").
	ID string `json:"channel_id"`
	// Name is the channel title.
	Name string `json:"channel_name"`
	// Description is truncated to 500 characters plus "..." when longer.
	Description string `json:"channel_description"`

	SubscriberCount int64 `json:"subscriber_count"`
	VideoCount      int64 `json:"video_count"`
	ViewCount       int64 `json:"view_count"`

	// CreatedDate is the channel creation date as YYYY-MM-DD.
	CreatedDate string `json:"channel_created_date"`
	// Country defaults to "Unknown".
	Country      string `json:"country"`
	CustomURL    string `json:"custom_url"`
	ThumbnailURL string `json:"thumbnail_url"`

	// UploadsPlaylistID identifies the implicit playlist of all public uploads.
	UploadsPlaylistID string `json:"uploads_playlist_id"`
}

// ChannelURL returns the canonical channel URL.
func (c ChannelInfo) ChannelURL() string {
	return "https://www.youtube.com/channel/" + c.ID
}

// Video length categories.
const (
	VideoTypeLow    = "Low"
	VideoTypeMedium = "Medium"
	VideoTypeLong   = "Long"
)

// VideoRecord is one exported video row.
type VideoRecord struct {
	// ID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	ChannelName string `json:"channel_name"`

	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`

	// UploadDate is YYYY-MM-DD; UploadDateTime is the API timestamp verbatim.
	UploadDate      string `json:"upload_date"`
	UploadDateTime  string `json:"upload_datetime"`
	DaysSinceUpload int    `json:"days_since_upload"`

	DurationMinutes float64 `json:"duration_minutes"`
	VideoType       string  `json:"video_type"`

	Description   string `json:"description"`
	ThumbnailHigh string `json:"thumbnail_high"`
}

// VideoURL returns the full YouTube watch URL for a video ID.
func VideoURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// SortOrder specifies how collected videos are ordered.
type SortOrder string

const (
	// SortByDate keeps the API order (newest upload first).
	SortByDate SortOrder = "date"
	// SortByViews sorts by view count, highest first.
	SortByViews SortOrder = "views"
	// SortByLikes sorts by like count, highest first.
	SortByLikes SortOrder = "likes"
)

// ParseSortOrder parses a sort mode name. Empty means SortByDate.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", SortByDate:
		return SortByDate, nil
	case SortByViews:
		return SortByViews, nil
	case SortByLikes:
		return SortByLikes, nil
	default:
		return "", fmt.Errorf("invalid sort order %q (use date, views, or likes)", s)
	}
}

// CollectOptions configures video collection.
type CollectOptions struct {
	// MaxResults limits the number of videos returned. 0 means all uploads.
	MaxResults int

	// Sort selects the final ordering. Default is SortByDate.
	Sort SortOrder

	// OnProgress is called after each page of results is processed.
	// Return a non-nil error to stop collection; that error is returned.
	OnProgress func(p Progress) error
}

// Progress reports the state of a running collection.
type Progress struct {
	// Page is the 1-based number of the page just processed.
	Page int
	// Collected is the total count of records accumulated so far.
	Collected int
	// Skipped is the total count of items dropped as unparseable.
	Skipped int
	// NextPageToken is empty when pagination is complete.
	NextPageToken string
}

// ScrapeResult is the successful outcome of ScrapeChannel.
type ScrapeResult struct {
	Channel ChannelInfo
	Videos  []VideoRecord
}
