package request

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantSet   bool
		wantFloat float64
		floatOK   bool
		wantInt   int
		intOK     bool
	}{
		{"json number", `{"n": 2}`, true, 2, true, 2, true},
		{"numeric string", `{"n": "3"}`, true, 3, true, 3, true},
		{"padded string", `{"n": " 4 "}`, true, 4, true, 4, true},
		{"decimal", `{"n": 2.5}`, true, 2.5, true, 0, false},
		{"integral decimal", `{"n": 2.0}`, true, 2, true, 2, true},
		{"word", `{"n": "two"}`, true, 0, false, 0, false},
		{"bool", `{"n": true}`, true, 0, false, 0, false},
		{"null", `{"n": null}`, false, 0, false, 0, false},
		{"blank string", `{"n": "  "}`, false, 0, false, 0, false},
		{"missing", `{}`, false, 0, false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				N Number `json:"n"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &body))

			assert.Equal(t, tt.wantSet, body.N.IsSet())

			f, ok := body.N.Float()
			assert.Equal(t, tt.floatOK, ok)
			assert.Equal(t, tt.wantFloat, f)

			i, ok := body.N.Int()
			assert.Equal(t, tt.intOK, ok)
			assert.Equal(t, tt.wantInt, i)
		})
	}
}

func TestNumber_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		A Number `json:"a"`
		B Number `json:"b"`
		C Number `json:"c"`
	}{A: Num("12.5"), B: Num("abc")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 12.5, "b": "abc", "c": null}`, string(out))
}

func TestUpdateTourRequestRequest_IsEmpty(t *testing.T) {
	var req UpdateTourRequestRequest
	assert.True(t, req.IsEmpty())

	notes := "Itinerary attached"
	req.ResponseNotes = &notes
	assert.False(t, req.IsEmpty())
}

func TestPaginatedRequest_OffsetLimit(t *testing.T) {
	p := PaginatedRequest{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, 20, p.Limit())

	assert.Equal(t, 100, PaginatedRequest{Page: 1, PerPage: 500}.Limit())
	assert.Equal(t, 10, PaginatedRequest{}.Limit())
	assert.Equal(t, 0, PaginatedRequest{}.Offset())
}
