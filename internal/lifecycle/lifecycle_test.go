package lifecycle_test

import (
	"testing"

	"github.com/NicBab/x-tech-app-server/internal/lifecycle"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	pending := lifecycle.Rules{Terminal: lifecycle.StatusPending}
	submitted := lifecycle.Rules{Terminal: lifecycle.StatusSubmitted}

	tests := []struct {
		name  string
		rules lifecycle.Rules
		raw   string
		want  lifecycle.Status
	}{
		{"exact terminal", pending, "PENDING", lifecycle.StatusPending},
		{"lowercase terminal", pending, "pending", lifecycle.StatusPending},
		{"mixed case terminal", submitted, "Submitted", lifecycle.StatusSubmitted},
		{"padded terminal", submitted, " submitted ", lifecycle.StatusSubmitted},
		{"draft stays draft", pending, "DRAFT", lifecycle.StatusDraft},
		{"empty defaults to draft", pending, "", lifecycle.StatusDraft},
		{"unknown defaults to draft", pending, "APPROVED", lifecycle.StatusDraft},
		{"wrong terminal defaults to draft", pending, "SUBMITTED", lifecycle.StatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rules.Normalize(tt.raw))
		})
	}
}

func TestTransitionGuards(t *testing.T) {
	rules := lifecycle.Rules{Terminal: lifecycle.StatusSubmitted}

	t.Run("draft is editable and deletable", func(t *testing.T) {
		assert.True(t, rules.CanEdit(lifecycle.StatusDraft))
		assert.True(t, rules.CanDelete(lifecycle.StatusDraft))
		assert.False(t, rules.IsTerminal(lifecycle.StatusDraft))
		assert.False(t, rules.CanResubmit(lifecycle.StatusDraft))
	})

	t.Run("terminal is locked", func(t *testing.T) {
		assert.False(t, rules.CanEdit(lifecycle.StatusSubmitted))
		assert.False(t, rules.CanDelete(lifecycle.StatusSubmitted))
		assert.True(t, rules.IsTerminal(lifecycle.StatusSubmitted))
		assert.True(t, rules.CanResubmit(lifecycle.StatusSubmitted))
	})
}
