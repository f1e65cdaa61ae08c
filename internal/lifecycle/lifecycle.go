// Package lifecycle holds the draft/submission state rules shared by the
// DLR and time-entry modules. A record starts as a mutable DRAFT and moves
// to a single terminal status (PENDING for DLRs, SUBMITTED for time
// entries) where it is locked in place.
package lifecycle

import "strings"

type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusSubmitted Status = "SUBMITTED"
)

// Rules binds the generic lifecycle to a concrete terminal status.
type Rules struct {
	Terminal Status
}

// Normalize maps any raw status input onto the closed state set. Only a
// case-insensitive match on the terminal label counts; everything else,
// including unknown values, falls back to DRAFT so bad input can never
// silently submit a record.
func (r Rules) Normalize(raw string) Status {
	if strings.EqualFold(strings.TrimSpace(raw), string(r.Terminal)) {
		return r.Terminal
	}
	return StatusDraft
}

// IsTerminal reports whether the record has left DRAFT.
func (r Rules) IsTerminal(current Status) bool {
	return current == r.Terminal
}

// CanEdit reports whether in-place mutation is allowed.
func (r Rules) CanEdit(current Status) bool {
	return current == StatusDraft
}

// CanDelete reports whether the record may be removed.
func (r Rules) CanDelete(current Status) bool {
	return current == StatusDraft
}

// CanResubmit reports whether the record may be replaced by a fresh
// submission. Only already-terminal records qualify; a DRAFT is edited,
// not resubmitted.
func (r Rules) CanResubmit(current Status) bool {
	return current == r.Terminal
}
