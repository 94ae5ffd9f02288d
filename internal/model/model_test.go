package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountJSONRoundTrip(t *testing.T) {
	a := Account{
		ID:             "4110001-2",
		Number:         "4110001",
		Title:          "Clients",
		Source:         SourceClient,
		OriginalNumber: "411",
		RawData:        map[string]string{"category": "tiers"},
	}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	var got Account
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, a, got)
}

func TestAccountJSON_OmitsEmptyOptionals(t *testing.T) {
	a := Account{ID: "4110000-0", Number: "4110000", Source: SourceCncj}

	data, err := json.Marshal(a)
	require.NoError(t, err)

	assert.NotContains(t, string(data), "originalNumber")
	assert.NotContains(t, string(data), "rawData")
	assert.NotContains(t, string(data), "title")
}

func TestCodeHistoryJSON(t *testing.T) {
	h := CodeHistory{
		OriginalCode:   "411",
		NormalizedCode: "4110000",
		Step6Code:      "4110001",
		FinalCode:      "4110001",
	}

	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"step6Code":"4110001"`)
	assert.NotContains(t, string(data), "step4Code")

	var got CodeHistory
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, h, got)
}
