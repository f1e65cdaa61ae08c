package nullable_test

import (
	"encoding/json"
	"testing"

	"github.com/NicBab/x-tech-app-server/internal/shared/nullable"

	"github.com/stretchr/testify/assert"
)

func TestNumberUnmarshal(t *testing.T) {
	type payload struct {
		Fuel nullable.Number `json:"fuel"`
	}

	t.Run("plain number", func(t *testing.T) {
		var p payload
		assert.NoError(t, json.Unmarshal([]byte(`{"fuel": 42.5}`), &p))
		assert.True(t, p.Fuel.Valid)
		assert.Equal(t, 42.5, p.Fuel.Value)
	})

	t.Run("quoted number", func(t *testing.T) {
		var p payload
		assert.NoError(t, json.Unmarshal([]byte(`{"fuel": "17"}`), &p))
		assert.True(t, p.Fuel.Valid)
		assert.Equal(t, 17.0, p.Fuel.Value)
	})

	t.Run("empty string is absent", func(t *testing.T) {
		var p payload
		assert.NoError(t, json.Unmarshal([]byte(`{"fuel": ""}`), &p))
		assert.False(t, p.Fuel.Valid)
		assert.Nil(t, p.Fuel.Ptr())
	})

	t.Run("null is absent", func(t *testing.T) {
		var p payload
		assert.NoError(t, json.Unmarshal([]byte(`{"fuel": null}`), &p))
		assert.False(t, p.Fuel.Valid)
	})

	t.Run("missing is absent", func(t *testing.T) {
		var p payload
		assert.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Fuel.Valid)
	})

	t.Run("garbage string rejected", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"fuel": "abc"}`), &p))
	})
}
