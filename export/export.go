// Package export writes a channel's collected video records to a file.
package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"ytexport/youtube"
)

// DefaultFilename is the export target when none is given.
const DefaultFilename = "youtube_data.xlsx"

// ErrNoRecords is returned when there is nothing to export. No file is
// created in that case.
var ErrNoRecords = errors.New("export: no records to write")

// Format selects the output encoding.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat parses a format name. Empty yields "" so that the caller can
// fall back to FormatFromPath.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))); f {
	case "", FormatXLSX, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (use xlsx, csv, or json)", s)
	}
}

// FormatFromPath infers the format from the file extension. Unknown or
// missing extensions give FormatXLSX.
func FormatFromPath(path string) Format {
	switch Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))) {
	case FormatCSV:
		return FormatCSV
	case FormatJSON:
		return FormatJSON
	default:
		return FormatXLSX
	}
}

// column is one exported video field.
type column struct {
	header string
	value  func(v youtube.VideoRecord) any
}

var videoColumns = []column{
	{"title", func(v youtube.VideoRecord) any { return v.Title }},
	{"url", func(v youtube.VideoRecord) any { return v.URL }},
	{"channel_name", func(v youtube.VideoRecord) any { return v.ChannelName }},
	{"views", func(v youtube.VideoRecord) any { return v.Views }},
	{"likes", func(v youtube.VideoRecord) any { return v.Likes }},
	{"comments", func(v youtube.VideoRecord) any { return v.Comments }},
	{"upload_date", func(v youtube.VideoRecord) any { return v.UploadDate }},
	{"upload_datetime", func(v youtube.VideoRecord) any { return v.UploadDateTime }},
	{"days_since_upload", func(v youtube.VideoRecord) any { return v.DaysSinceUpload }},
	{"duration_minutes", func(v youtube.VideoRecord) any { return v.DurationMinutes }},
	{"video_type", func(v youtube.VideoRecord) any { return v.VideoType }},
	{"description", func(v youtube.VideoRecord) any { return v.Description }},
	{"thumbnail_high", func(v youtube.VideoRecord) any { return v.ThumbnailHigh }},
}

// Headers returns the video column names in export order.
func Headers() []string {
	headers := make([]string, len(videoColumns))
	for i, c := range videoColumns {
		headers[i] = c.header
	}
	return headers
}

func recordRow(v youtube.VideoRecord) []any {
	row := make([]any, len(videoColumns))
	for i, c := range videoColumns {
		row[i] = c.value(v)
	}
	return row
}

// channelFields lists the channel summary as field/value pairs.
func channelFields(ch *youtube.ChannelInfo) [][2]any {
	return [][2]any{
		{"channel_id", ch.ID},
		{"channel_name", ch.Name},
		{"channel_url", ch.ChannelURL()},
		{"channel_description", ch.Description},
		{"subscriber_count", ch.SubscriberCount},
		{"video_count", ch.VideoCount},
		{"view_count", ch.ViewCount},
		{"channel_created_date", ch.CreatedDate},
		{"country", ch.Country},
		{"custom_url", ch.CustomURL},
		{"thumbnail_url", ch.ThumbnailURL},
		{"uploads_playlist_id", ch.UploadsPlaylistID},
	}
}

// Write exports records to path. An empty format is inferred from the file
// extension. channel may be nil, in which case the channel summary is
// omitted.
func Write(path string, format Format, channel *youtube.ChannelInfo, records []youtube.VideoRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}
	if path == "" {
		path = DefaultFilename
	}
	if format == "" {
		format = FormatFromPath(path)
	}
	if _, err := ParseFormat(string(format)); err != nil {
		return err
	}

	err := writeFileAtomic(path, func(w io.Writer) error {
		return Encode(w, format, channel, records)
	})
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// Encode writes records to w in the given format.
func Encode(w io.Writer, format Format, channel *youtube.ChannelInfo, records []youtube.VideoRecord) error {
	if len(records) == 0 {
		return ErrNoRecords
	}

	switch format {
	case FormatXLSX, "":
		return encodeXLSX(w, channel, records)
	case FormatCSV:
		return encodeCSV(w, records)
	case FormatJSON:
		return encodeJSON(w, channel, records)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
