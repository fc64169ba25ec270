package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestClassifyError(t *testing.T) {
	t.Run("api payload", func(t *testing.T) {
		err := classifyError(opVideos, &googleapi.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid id",
			Errors:  []googleapi.ErrorItem{{Reason: "badRequest", Message: "bad"}},
		})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, opVideos, apiErr.Operation)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "badRequest", apiErr.Reason)
		assert.Equal(t, "Invalid id", apiErr.Message)
		assert.ErrorIs(t, err, ErrAPIError)
		assert.NotErrorIs(t, err, ErrNetworkFailure)
	})

	t.Run("reason only", func(t *testing.T) {
		err := classifyError(opVideos, &googleapi.Error{
			Code:   http.StatusForbidden,
			Errors: []googleapi.ErrorItem{{Reason: "forbidden", Message: "nope"}},
		})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "nope", apiErr.Message)
	})

	t.Run("status without payload", func(t *testing.T) {
		err := classifyError(opChannels, &googleapi.Error{Code: http.StatusServiceUnavailable})

		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Equal(t, http.StatusServiceUnavailable, netErr.StatusCode)
		assert.ErrorIs(t, err, ErrNetworkFailure)
		assert.NotErrorIs(t, err, ErrAPIError)
	})

	t.Run("transport failure", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := classifyError(opSearch, fmt.Errorf("dial: %w", cause))

		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
		assert.Zero(t, netErr.StatusCode)
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, ErrNetworkFailure)
	})

	t.Run("canceled", func(t *testing.T) {
		err := classifyError(opSearch, fmt.Errorf("get: %w", context.Canceled))
		assert.ErrorIs(t, err, context.Canceled)
		assert.NotErrorIs(t, err, ErrNetworkFailure)
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, classifyError(opSearch, nil))
	})
}

func TestScrapeErrorUnwrap(t *testing.T) {
	err := error(&ScrapeError{Stage: "collect", Channel: "UCx", Err: &QuotaExceededError{Operation: opVideos}})

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "collect UCx")

	var scrapeErr *ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, "collect", scrapeErr.Stage)
}

func TestItemParseErrorUnwrap(t *testing.T) {
	cause := errors.New("bad duration")
	err := error(&ItemParseError{Kind: "video", ID: "abc", Err: cause})

	assert.ErrorIs(t, err, ErrItemParse)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, `youtube: parse video "abc": bad duration`, err.Error())
}
