package sheets_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	dnderr "github.com/KirkDiggler/pf2e-sheet/internal/errors"
	"github.com/KirkDiggler/pf2e-sheet/internal/repositories/sheets"
)

const fieldsDoc = `{"id":"s1","owner_id":"o1","name":"Kyra","hit_points":{"value":30,"temp":5,"max":35},"skills":{"athletics":{"rank":1}},"lore":[{"id":"l1","rank":0}],"updated_at":"2024-01-01T00:00:00Z"}`

func TestApplyFields(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	doc, err := sheets.ApplyFields([]byte(fieldsDoc), map[string]any{
		"hit_points.value":      12,
		"hit_points.temp":       0,
		"skills.athletics.rank": 2,
		"skills.arcana":         map[string]any{"rank": 1},
		"lore.0.rank":           3,
		"name":                  "Kyra the Bold",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, int64(12), gjson.GetBytes(doc, "hit_points.value").Int())
	assert.Equal(t, int64(0), gjson.GetBytes(doc, "hit_points.temp").Int())
	assert.Equal(t, int64(35), gjson.GetBytes(doc, "hit_points.max").Int())
	assert.Equal(t, int64(2), gjson.GetBytes(doc, "skills.athletics.rank").Int())
	assert.Equal(t, int64(1), gjson.GetBytes(doc, "skills.arcana.rank").Int())
	assert.Equal(t, int64(3), gjson.GetBytes(doc, "lore.0.rank").Int())
	assert.Equal(t, "Kyra the Bold", gjson.GetBytes(doc, "name").String())
	assert.Equal(t, "2024-03-01T12:00:00Z", gjson.GetBytes(doc, "updated_at").String())
	assert.Equal(t, int64(1), gjson.GetBytes(doc, "revision").Int())

	doc, err = sheets.ApplyFields(doc, map[string]any{"hit_points.value": 11}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.GetBytes(doc, "revision").Int())
}

func TestApplyFields_Rejects(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		fields map[string]any
	}{
		{name: "no fields", fields: map[string]any{}},
		{name: "unknown parent", fields: map[string]any{"saves.will.rank": 1}},
		{name: "scalar parent", fields: map[string]any{"name.first": "x"}},
		{name: "wildcard", fields: map[string]any{"skills.*.rank": 1}},
		{name: "modifier", fields: map[string]any{"@this": 1}},
		{name: "empty path", fields: map[string]any{"": 1}},
		{name: "identity", fields: map[string]any{"id": "other"}},
		{name: "owner", fields: map[string]any{"owner_id": "other"}},
		{name: "timestamps", fields: map[string]any{"updated_at": "later"}},
		{name: "revision", fields: map[string]any{"revision": 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sheets.ApplyFields([]byte(fieldsDoc), tt.fields, now)
			require.Error(t, err)
			assert.True(t, dnderr.IsInvalidArgument(err), "got %v", err)
		})
	}
}

func TestApplyFields_InvalidDocument(t *testing.T) {
	_, err := sheets.ApplyFields([]byte(`{not json`), map[string]any{"name": "x"}, time.Now())
	assert.True(t, dnderr.IsInternal(err))
}
