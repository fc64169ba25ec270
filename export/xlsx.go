package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"ytexport/youtube"
)

// Sheet names of the workbook.
const (
	VideoSheet   = "Video Data"
	ChannelSheet = "Channel Info"
)

func encodeXLSX(w io.Writer, channel *youtube.ChannelInfo, records []youtube.VideoRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", VideoSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	headers := make([]any, len(videoColumns))
	for i, c := range videoColumns {
		headers[i] = c.header
	}
	if err := f.SetSheetRow(VideoSheet, "A1", &headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(VideoSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := recordRow(rec)
		if err := f.SetSheetRow(VideoSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(VideoSheet, "A", "A", 60); err != nil {
		return err
	}
	if err := f.SetColWidth(VideoSheet, "B", "C", 30); err != nil {
		return err
	}

	if channel != nil {
		if err := writeChannelSheet(f, channel, bold); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeChannelSheet(f *excelize.File, channel *youtube.ChannelInfo, bold int) error {
	if _, err := f.NewSheet(ChannelSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	header := []any{"field", "value"}
	if err := f.SetSheetRow(ChannelSheet, "A1", &header); err != nil {
		return fmt.Errorf("write channel header: %w", err)
	}
	if err := f.SetRowStyle(ChannelSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("style channel header: %w", err)
	}

	for i, kv := range channelFields(channel) {
		row := []any{kv[0], kv[1]}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ChannelSheet, cell, &row); err != nil {
			return fmt.Errorf("write channel row %d: %w", i+2, err)
		}
	}

	return f.SetColWidth(ChannelSheet, "A", "A", 24)
}
