package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilia-dev/concilia/internal/model"
)

func client(id, number, title string) model.Account {
	return model.Account{ID: id, Number: number, Title: title, Source: model.SourceClient}
}

func cncjAccount(id, number string) model.Account {
	return model.Account{ID: id, Number: number, Source: model.SourceCncj}
}

func general(id, number string, raw map[string]string) model.Account {
	return model.Account{ID: id, Number: number, Source: model.SourceGeneral, RawData: raw}
}

func TestRun_FullPass(t *testing.T) {
	clients := []model.Account{
		client("101-0", "101", "Capital"),         // needs normalization
		client("101-1", "101", "Capital"),         // exact duplicate, merged away
		client("4110000-2", "4110000", "Clients"), // CNCJ conflict
		client("6060000-3", "6060000", "Fournitures"),
	}
	registry := []model.Account{cncjAccount("4110000-0", "4110000")}
	generals := []model.Account{
		general("6060000-0", "6060000", map[string]string{"code": "6060000", "category": "charges"}),
		general("1010000-1", "1010000", nil),
		general("4110005-2", "4110005", map[string]string{"code": "4110005", "category": "tiers"}),
	}

	result := Run(clients, registry, generals, nil, nil)

	// Normalization recorded and applied before merging.
	require.Len(t, result.Normalizations, 2)
	require.Len(t, result.Accounts, 3, "identical accounts merged")
	require.Len(t, result.MergeInfo, 1)
	assert.Equal(t, 2, result.MergeInfo[0].MergedCount)

	// CNCJ conflict auto-corrected to the next free code.
	require.Len(t, result.CncjConflicts.Duplicates, 1)
	conflictID := result.CncjConflicts.Duplicates[0].ID
	assert.Equal(t, "4110001", result.AutoCorrections[conflictID])

	// Lineage for the normalized account.
	h, ok := result.Histories["1010000-0"]
	require.True(t, ok, "history keyed by the re-keyed account ID")
	assert.Equal(t, "101", h.OriginalCode)
	assert.Equal(t, "1010000", h.NormalizedCode)
	assert.Equal(t, "1010000", h.FinalCode)

	// Lineage for the corrected conflict.
	h, ok = result.Histories[conflictID]
	require.True(t, ok)
	assert.Equal(t, "4110001", h.Step6Code)
	assert.Equal(t, "4110001", h.FinalCode)

	// The corrected code 4110001 is absent from the general chart; metadata
	// is inherited from the closest PCG account sharing its prefix.
	inh, ok := result.Inheritances[conflictID]
	require.True(t, ok)
	assert.Equal(t, "4110005", inh.ReferencePcgCode)
	assert.Equal(t, "tiers", inh.InheritedData["category"])
	assert.NotContains(t, inh.InheritedData, "code")

	// Accounts present in the general chart inherit nothing.
	assert.NotContains(t, result.Inheritances, "6060000-3")
}

func TestRun_ManualCncjReplacementWins(t *testing.T) {
	clients := []model.Account{client("4110000-0", "4110000", "Clients")}
	registry := []model.Account{cncjAccount("4110000-0", "4110000")}

	cncjReplacements := map[string]string{"4110000-0": "4110008"}
	result := Run(clients, registry, nil, nil, cncjReplacements)

	h := result.Histories["4110000-0"]
	assert.Equal(t, "4110008", h.FinalCode, "manual replacement overrides auto-correction")
}

func TestRun_DuplicateReplacementInLineage(t *testing.T) {
	clients := []model.Account{
		client("1450000-0", "1450000", "A"),
		client("1450000-1", "1450000", "B"),
	}
	dupReplacements := map[string]string{"1450000-1": "1450001"}

	result := Run(clients, nil, nil, dupReplacements, nil)

	require.Len(t, result.Duplicates.Duplicates, 2)
	h := result.Histories["1450000-1"]
	assert.Equal(t, "1450001", h.Step4Code)
	assert.Equal(t, "1450001", h.FinalCode)

	// The untouched duplicate keeps its number.
	assert.Equal(t, "1450000", result.Histories["1450000-0"].FinalCode)
}

func TestRun_Empty(t *testing.T) {
	result := Run(nil, nil, nil, nil, nil)
	assert.Empty(t, result.Accounts)
	assert.Empty(t, result.Histories)
	assert.Empty(t, result.Inheritances)
}

func TestRun_Idempotent(t *testing.T) {
	clients := []model.Account{
		client("101-0", "101", "Capital"),
		client("4110000-1", "4110000", "Clients"),
	}
	registry := []model.Account{cncjAccount("4110000-0", "4110000")}

	first := Run(clients, registry, nil, nil, nil)
	second := Run(clients, registry, nil, nil, nil)
	assert.Equal(t, first, second)
}
