package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"ytexport/youtube"
)

func encodeCSV(w io.Writer, records []youtube.VideoRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers()); err != nil {
		return err
	}

	row := make([]string, len(videoColumns))
	for _, rec := range records {
		for i, c := range videoColumns {
			row[i] = csvValue(c.value(rec))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// document is the JSON export layout.
type document struct {
	Channel *youtube.ChannelInfo  `json:"channel"`
	Videos  []youtube.VideoRecord `json:"videos"`
}

func encodeJSON(w io.Writer, channel *youtube.ChannelInfo, records []youtube.VideoRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{Channel: channel, Videos: records})
}
