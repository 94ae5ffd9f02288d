package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/concilia-dev/concilia/internal/model"
)

func client(id, number, title string) model.Account {
	return model.Account{ID: id, Number: number, Title: title, Source: model.SourceClient}
}

func cncj(id, number string) model.Account {
	return model.Account{ID: id, Number: number, Source: model.SourceCncj}
}

func general(id, number string) model.Account {
	return model.Account{ID: id, Number: number, Source: model.SourceGeneral}
}

func TestFindDuplicates_AllMembersReturned(t *testing.T) {
	accounts := []model.Account{
		client("1010000-0", "1010000", "A"),
		client("1010000-1", "1010000", "B"),
		client("1010000-2", "1010000", "C"),
		client("1020000-3", "1020000", "D"),
	}

	dups := FindDuplicates(accounts)
	require.Len(t, dups, 3, "a group of 3 yields all 3 members")
	for _, d := range dups {
		assert.Equal(t, "1010000", d.Number)
	}
}

func TestFindDuplicates_NoDuplicates(t *testing.T) {
	accounts := []model.Account{
		client("1010000-0", "1010000", "A"),
		client("1020000-1", "1020000", "B"),
	}
	assert.Empty(t, FindDuplicates(accounts))
}

func TestFindDuplicates_RawNumbers(t *testing.T) {
	// "101" and "1010000" normalize to the same code but are not counted
	// as duplicates: detection runs on raw numbers.
	accounts := []model.Account{
		client("101-0", "101", "A"),
		client("1010000-1", "1010000", "B"),
	}
	assert.Empty(t, FindDuplicates(accounts))
}

func TestSplitUnique(t *testing.T) {
	accounts := []model.Account{
		client("1010000-0", "1010000", "A"),
		client("1010000-1", "1010000", "B"),
		client("1020000-2", "1020000", "C"),
	}
	dups := FindDuplicates(accounts)

	unique := SplitUnique(accounts, dups)
	require.Len(t, unique, 1)
	assert.Equal(t, "1020000-2", unique[0].ID)
}

func TestCompare(t *testing.T) {
	clients := []model.Account{
		client("411-0", "411", "Clients"),
		client("9990000-1", "9990000", "Divers"),
	}
	registry := []model.Account{
		cncj("4110000-0", "4110000"),
	}

	matches, unmatched := Compare(clients, registry)
	require.Len(t, matches, 1, "client 411 normalizes to 4110000 and matches")
	assert.Equal(t, "411-0", matches[0].ID)
	require.Len(t, unmatched, 1)
	assert.Equal(t, "9990000-1", unmatched[0].ID)
}

func TestProcess(t *testing.T) {
	clients := []model.Account{
		client("1010000-0", "1010000", "A"),
		client("1010000-1", "1010000", "B"),
		client("4110000-2", "4110000", "Clients"),
		client("6060000-3", "6060000", "Fournitures"),
		client("9990000-4", "9990000", "Divers"),
	}
	registry := []model.Account{cncj("4110000-0", "4110000")}
	generals := []model.Account{general("6060000-0", "6060000")}

	result := Process(clients, registry, generals)

	assert.Len(t, result.Duplicates, 2)
	assert.Len(t, result.UniqueClients, 3)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "4110000-2", result.Matches[0].ID)
	require.Len(t, result.UnmatchedClients, 1)
	assert.Equal(t, "6060000-3", result.UnmatchedClients[0].ID, "present in general chart but not CNCJ")
	require.Len(t, result.ToCreate, 1)
	assert.Equal(t, "9990000-4", result.ToCreate[0].ID, "absent from both charts")

	// Partition totality: every input account lands in exactly one bucket
	// per pass.
	assert.Equal(t, len(clients), len(result.Duplicates)+len(result.UniqueClients))
	assert.Equal(t, len(result.UniqueClients),
		len(result.Matches)+len(result.UnmatchedClients)+len(result.ToCreate))
}

func TestProcess_Empty(t *testing.T) {
	result := Process(nil, nil, nil)
	assert.Empty(t, result.Duplicates)
	assert.Empty(t, result.UniqueClients)
	assert.Empty(t, result.Matches)
	assert.Empty(t, result.UnmatchedClients)
	assert.Empty(t, result.ToCreate)
}
