package ytexport

import (
	"ytexport/export"
	"ytexport/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytexport.ErrChannelNotFound) {
//		fmt.Println("Channel not found")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var scrapeErr *ytexport.ScrapeError
//	if errors.As(err, &scrapeErr) {
//		fmt.Printf("%s failed for %s: %v\n", scrapeErr.Stage, scrapeErr.Channel, scrapeErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// ScrapeError wraps failures of a full channel scrape with the failing stage.
	ScrapeError = youtube.ScrapeError
	// QuotaExceededError reports a call refused by the local call counter.
	QuotaExceededError = youtube.QuotaExceededError
	// NetworkError reports a transport failure or an HTTP error without payload.
	NetworkError = youtube.NetworkError
	// APIError reports an error response from the Data API.
	APIError = youtube.APIError
	// ItemParseError reports a single item that could not be interpreted.
	ItemParseError = youtube.ItemParseError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrQuotaExceeded indicates the local call ceiling was reached.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded
	// ErrNetworkFailure indicates a transport or HTTP level failure.
	ErrNetworkFailure = youtube.ErrNetworkFailure
	// ErrAPIError indicates the Data API rejected a request.
	ErrAPIError = youtube.ErrAPIError
	// ErrInvalidURL indicates the input matches no supported channel URL form.
	ErrInvalidURL = youtube.ErrInvalidURL
	// ErrResolutionFailed indicates a lookup found no channel.
	ErrResolutionFailed = youtube.ErrResolutionFailed
	// ErrChannelNotFound indicates the channel ID does not exist.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrItemParse indicates a malformed API item.
	ErrItemParse = youtube.ErrItemParse

	// ErrNoRecords indicates there was nothing to export.
	ErrNoRecords = export.ErrNoRecords
)
