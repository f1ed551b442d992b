package analytics

import (
	"context"
	"time"

	"github.com/mssola/useragent"

	"accessexplorer/pkg/requestcontext"
)

// Event names.
const (
	EventSearch       = "search"
	EventTimelockView = "timelock_view"
	EventFavorite     = "favorite"
)

// Event is a navigation event. It carries no personal data beyond the coarse
// browser and OS family derived from the User-Agent.
type Event struct {
	Name       string    `json:"name"`
	Chain      string    `json:"chain"`
	Account    string    `json:"account,omitempty"`
	Manager    string    `json:"manager,omitempty"`
	Role       string    `json:"role,omitempty"`
	Action     string    `json:"action,omitempty"`
	Browser    string    `json:"browser,omitempty"`
	OS         string    `json:"os,omitempty"`
	Bot        bool      `json:"bot,omitempty"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps an event with request metadata from ctx. An empty chain
// name is recorded as "none".
func NewEvent(ctx context.Context, name, chain string) Event {
	if chain == "" {
		chain = "none"
	}
	e := Event{
		Name:       name,
		Chain:      chain,
		RequestID:  requestcontext.RequestID(ctx),
		OccurredAt: requestcontext.Now(ctx).UTC(),
	}
	if raw := requestcontext.UserAgent(ctx); raw != "" {
		ua := useragent.New(raw)
		e.Browser, _ = ua.Browser()
		e.OS = ua.OSInfo().Name
		e.Bot = ua.Bot()
	}
	return e
}
