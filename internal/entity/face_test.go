package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rollnoHolder struct {
	Rollno *Rollno `json:"rollno"`
}

func TestRollnoUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		value int64
		valid bool
	}{
		{"number", `{"rollno": 101}`, 101, true},
		{"string", `{"rollno": "101"}`, 101, true},
		{"padded string", `{"rollno": " 7 "}`, 7, true},
		{"zero", `{"rollno": 0}`, 0, true},
		{"integral float", `{"rollno": 12.0}`, 12, true},
		{"fractional", `{"rollno": 12.5}`, 0, false},
		{"negative", `{"rollno": -3}`, -3, false},
		{"word", `{"rollno": "abc"}`, 0, false},
		{"bool", `{"rollno": true}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var h rollnoHolder
			require.NoError(t, json.Unmarshal([]byte(tt.body), &h))
			require.NotNil(t, h.Rollno)
			assert.Equal(t, tt.valid, h.Rollno.Valid)
			if tt.valid {
				assert.Equal(t, tt.value, h.Rollno.Value)
			}
		})
	}
}

func TestRollnoMissingOrNull(t *testing.T) {
	var h rollnoHolder
	require.NoError(t, json.Unmarshal([]byte(`{}`), &h))
	assert.Nil(t, h.Rollno)

	require.NoError(t, json.Unmarshal([]byte(`{"rollno": null}`), &h))
	assert.Nil(t, h.Rollno)
}

func TestRollnoString(t *testing.T) {
	assert.Equal(t, "101", Rollno{Value: 101, Valid: true}.String())
}
