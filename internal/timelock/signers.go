package timelock

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"accessexplorer/internal/timelock/models"
)

// ReplayMode selects how the grant and revoke streams are combined.
type ReplayMode int

const (
	// ReplayGrantsThenRevokes applies every grant before any revoke. A revoke that
	// happened before a later re-grant is therefore applied to the final role set.
	ReplayGrantsThenRevokes ReplayMode = iota
	// ReplayChronological merges both streams by block timestamp and replays once.
	ReplayChronological
)

// ParseReplayMode parses the configuration spelling of a replay mode.
func ParseReplayMode(s string) (ReplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "grants-then-revokes":
		return ReplayGrantsThenRevokes, nil
	case "chronological":
		return ReplayChronological, nil
	default:
		return 0, fmt.Errorf("unknown signer replay mode %q", s)
	}
}

func (m ReplayMode) String() string {
	if m == ReplayChronological {
		return "chronological"
	}
	return "grants-then-revokes"
}

// roleSet is a set of role ids that remembers insertion order.
type roleSet struct {
	order   []string
	members map[string]struct{}
}

func (s *roleSet) add(role string) {
	if s.members == nil {
		s.members = make(map[string]struct{})
	}
	if _, ok := s.members[role]; ok {
		return
	}
	s.members[role] = struct{}{}
	s.order = append(s.order, role)
}

func (s *roleSet) remove(role string) {
	if _, ok := s.members[role]; !ok {
		return
	}
	delete(s.members, role)
	s.order = slices.DeleteFunc(s.order, func(r string) bool { return r == role })
}

func (s *roleSet) len() int {
	return len(s.order)
}

type accumulator struct {
	address   string
	roles     roleSet
	grantedAt int64
	revokedAt *int64
}

func (a *accumulator) signer() models.Signer {
	out := models.Signer{
		Address:   a.address,
		Roles:     slices.Clone(a.roles.order),
		GrantedAt: a.grantedAt,
	}
	if out.Roles == nil {
		out.Roles = []string{}
	}
	if a.revokedAt != nil {
		revokedAt := *a.revokedAt
		out.RevokedAt = &revokedAt
	}
	return out
}

// RoleHistory is the per-address replay state of a timelock's role events.
type RoleHistory struct {
	entries []*accumulator
	index   map[string]*accumulator
}

// BuildRoleHistory replays granted and revoked (each ascending by timestamp)
// according to mode.
func BuildRoleHistory(mode ReplayMode, granted, revoked []models.RoleEvent) *RoleHistory {
	h := &RoleHistory{index: make(map[string]*accumulator)}

	if mode == ReplayChronological {
		for _, step := range chronological(granted, revoked) {
			if step.grant {
				h.grant(step.event)
			} else {
				h.revoke(step.event)
			}
		}
		return h
	}

	for _, e := range granted {
		h.grant(e)
	}
	for _, e := range revoked {
		h.revoke(e)
	}
	return h
}

func (h *RoleHistory) grant(e models.RoleEvent) {
	key := strings.ToLower(e.Account)
	acc, ok := h.index[key]
	if !ok {
		acc = &accumulator{address: key, grantedAt: e.BlockTimestamp}
		h.index[key] = acc
		h.entries = append(h.entries, acc)
	}
	acc.roles.add(e.Role)
}

func (h *RoleHistory) revoke(e models.RoleEvent) {
	acc, ok := h.index[strings.ToLower(e.Account)]
	if !ok {
		return
	}
	wasHeld := acc.roles.len() > 0
	acc.roles.remove(e.Role)
	if wasHeld && acc.roles.len() == 0 {
		revokedAt := e.BlockTimestamp
		acc.revokedAt = &revokedAt
	}
}

// Entries returns every address seen in a grant, including fully revoked ones,
// ascending by first grant.
func (h *RoleHistory) Entries() []models.Signer {
	out := make([]models.Signer, 0, len(h.entries))
	for _, acc := range h.entries {
		out = append(out, acc.signer())
	}
	sortByGrantedAt(out)
	return out
}

// Current returns the addresses that still hold at least one role, ascending
// by first grant.
func (h *RoleHistory) Current() []models.Signer {
	out := make([]models.Signer, 0, len(h.entries))
	for _, acc := range h.entries {
		if acc.roles.len() > 0 {
			out = append(out, acc.signer())
		}
	}
	sortByGrantedAt(out)
	return out
}

// ReconstructSigners computes the current signer set of a timelock from its
// role events, replaying all grants before all revokes.
func ReconstructSigners(granted, revoked []models.RoleEvent) []models.Signer {
	return BuildRoleHistory(ReplayGrantsThenRevokes, granted, revoked).Current()
}

// Equal grantedAt keeps first-seen order.
func sortByGrantedAt(signers []models.Signer) {
	slices.SortStableFunc(signers, func(a, b models.Signer) int {
		return cmp.Compare(a.GrantedAt, b.GrantedAt)
	})
}

type replayStep struct {
	event models.RoleEvent
	grant bool
}

// chronological merges both streams by (timestamp, block); on a tie a grant
// precedes a revoke.
func chronological(granted, revoked []models.RoleEvent) []replayStep {
	steps := make([]replayStep, 0, len(granted)+len(revoked))
	for _, e := range granted {
		steps = append(steps, replayStep{event: e, grant: true})
	}
	for _, e := range revoked {
		steps = append(steps, replayStep{event: e})
	}
	slices.SortStableFunc(steps, func(a, b replayStep) int {
		if c := cmp.Compare(a.event.BlockTimestamp, b.event.BlockTimestamp); c != 0 {
			return c
		}
		if c := cmp.Compare(a.event.BlockNumber, b.event.BlockNumber); c != 0 {
			return c
		}
		switch {
		case a.grant == b.grant:
			return 0
		case a.grant:
			return -1
		default:
			return 1
		}
	})
	return steps
}
