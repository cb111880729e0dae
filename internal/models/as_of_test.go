package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsOfDate_Unmarshal(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only", `"2024-06-30"`, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)},
		{"utc timestamp", `"2024-06-30T18:45:00Z"`, time.Date(2024, 6, 30, 18, 45, 0, 0, time.UTC)},
		{"offset timestamp is converted", `"2024-06-30T20:00:00-04:00"`, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"surrounding space", `" 2024-06-30 "`, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var d AsOfDate
			require.NoError(t, json.Unmarshal([]byte(tc.input), &d))
			assert.True(t, tc.want.Equal(d.Time), "want %s got %s", tc.want, d.Time)
			assert.Equal(t, time.UTC, d.Location())
		})
	}
}

func TestAsOfDate_UnmarshalErrors(t *testing.T) {
	for _, input := range []string{`""`, `"06/30/2024"`, `"2024-13-01"`, `20240630`} {
		var d AsOfDate
		err := json.Unmarshal([]byte(input), &d)
		assert.ErrorContains(t, err, "as_of", "input %s", input)
	}
}

func TestAsOfDate_RequestFieldIsOptional(t *testing.T) {
	var req RecommendationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"portfolio":{"total_value":"100","holdings":[]}}`), &req))
	assert.Nil(t, req.AsOf)

	require.NoError(t, json.Unmarshal([]byte(`{"as_of":"2024-06-30"}`), &req))
	require.NotNil(t, req.AsOf)
	assert.Equal(t, 30, req.AsOf.Day())
}

func TestAsOfDate_MarshalAndNotAfter(t *testing.T) {
	d := AsOfDate{Time: time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)}
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-06-30T00:00:00Z"`, string(b))

	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, d.NotAfter(now))
	assert.NoError(t, d.NotAfter(d.Time), "the boundary is allowed")
	assert.ErrorContains(t, AsOfDate{Time: now.Add(time.Hour)}.NotAfter(now), "future")
}
