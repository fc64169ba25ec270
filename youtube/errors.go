package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Sentinel errors for channel export operations.
var (
	ErrQuotaExceeded    = errors.New("youtube: daily call quota exceeded")
	ErrNetworkFailure   = errors.New("youtube: network failure")
	ErrAPIError         = errors.New("youtube: api error")
	ErrInvalidURL       = errors.New("youtube: invalid channel URL")
	ErrResolutionFailed = errors.New("youtube: channel resolution failed")
	ErrChannelNotFound  = errors.New("youtube: channel not found")
	ErrItemParse        = errors.New("youtube: item parse error")
)

// QuotaExceededError is returned when the local call counter has reached its
// ceiling. No request is sent when this error is returned.
type QuotaExceededError struct {
	Operation string
	Used      int
	Limit     int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("youtube: quota exceeded operation=%s used=%d limit=%d", e.Operation, e.Used, e.Limit)
}

func (e *QuotaExceededError) Is(target error) bool { return target == ErrQuotaExceeded }

// NetworkError covers transport failures and non-success HTTP statuses that
// carry no service error payload. StatusCode is 0 for transport failures.
type NetworkError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("youtube: network failure operation=%s status=%d: %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("youtube: network failure operation=%s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetworkFailure }

// APIError is a well-formed error response from the Data API itself.
// Reason holds the first error reason reported, e.g. "quotaExceeded".
type APIError struct {
	Operation  string
	StatusCode int
	Reason     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube: api error operation=%s status=%d reason=%s: %s", e.Operation, e.StatusCode, e.Reason, e.Message)
	}
	return fmt.Sprintf("youtube: api error operation=%s status=%d: %s", e.Operation, e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool { return target == ErrAPIError }

// ItemParseError reports a single API item that could not be interpreted.
// Kind is "video" or "channel".
type ItemParseError struct {
	Kind string
	ID   string
	Err  error
}

func (e *ItemParseError) Error() string {
	return fmt.Sprintf("youtube: parse %s %q: %v", e.Kind, e.ID, e.Err)
}

func (e *ItemParseError) Unwrap() error { return e.Err }

func (e *ItemParseError) Is(target error) bool { return target == ErrItemParse }

// ScrapeError wraps failures of ScrapeChannel with the stage that failed.
// Use errors.As() to extract it:
//
//	var scrapeErr *youtube.ScrapeError
//	if errors.As(err, &scrapeErr) {
//		fmt.Printf("%s failed for %s: %v\n", scrapeErr.Stage, scrapeErr.Channel, scrapeErr.Err)
//	}
type ScrapeError struct {
	// Stage is "resolve", "channel" or "collect".
	Stage string
	// Channel is the channel URL or ID being scraped.
	Channel string
	// Err is the underlying error that occurred.
	Err error
}

func (e *ScrapeError) Error() string {
	return "youtube: " + e.Stage + " " + e.Channel + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *ScrapeError) Unwrap() error { return e.Err }

// classifyError maps errors from the generated API client onto the
// NetworkError / APIError taxonomy.
func classifyError(op string, err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Message != "" || len(gerr.Errors) > 0 {
			apiErr := &APIError{
				Operation:  op,
				StatusCode: gerr.Code,
				Message:    gerr.Message,
			}
			if len(gerr.Errors) > 0 {
				apiErr.Reason = gerr.Errors[0].Reason
				if apiErr.Message == "" {
					apiErr.Message = gerr.Errors[0].Message
				}
			}
			return apiErr
		}
		return &NetworkError{
			Operation:  op,
			StatusCode: gerr.Code,
			Err:        errors.New(http.StatusText(gerr.Code)),
		}
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	return &NetworkError{Operation: op, Err: err}
}
