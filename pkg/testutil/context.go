// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"net/http"

	"accessexplorer/pkg/requestcontext"
)

// WithSubject adds an authenticated subject to the request context.
// This simulates what the bearer middleware does for authenticated requests.
func WithSubject(req *http.Request, subject string) *http.Request {
	return req.WithContext(requestcontext.WithSubject(req.Context(), subject))
}
