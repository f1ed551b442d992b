package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	t.Run("wrapped domain error keeps its code", func(t *testing.T) {
		err := fmt.Errorf("load: %w", New(CodeNotFound, "chain not supported"))
		assert.Equal(t, CodeNotFound, CodeOf(err))
		assert.True(t, HasCode(err, CodeNotFound))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		err := errors.New("boom")
		assert.Equal(t, CodeInternal, CodeOf(err))
		assert.False(t, HasCode(err, CodeNotFound))
	})

	t.Run("wrap preserves cause", func(t *testing.T) {
		cause := errors.New("dial tcp: refused")
		err := Wrap(cause, CodeBadGateway, "subgraph unreachable")
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "subgraph unreachable")
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:  http.StatusBadRequest,
		CodeNotFound:    http.StatusNotFound,
		CodeRateLimited: http.StatusTooManyRequests,
		CodeBadGateway:  http.StatusBadGateway,
		CodeTimeout:     http.StatusGatewayTimeout,
		CodeUnavailable: http.StatusServiceUnavailable,
		CodeInternal:    http.StatusInternalServerError,
		CodeCanceled:    StatusClientClosedRequest,
		Code("unknown"): http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), string(code))
	}
}
