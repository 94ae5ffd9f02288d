// Package dedupe detects duplicate client codes and classifies client
// accounts against the CNCJ registry and the general chart.
package dedupe

import (
	"github.com/concilia-dev/concilia/internal/model"
	"github.com/concilia-dev/concilia/internal/normalize"
)

// FindDuplicates returns every account whose number occurs more than once in
// the input. All members of a duplicate group are returned, not just the
// second and later ones: a group of 3 yields all 3.
//
// Counting is by raw Number, before normalization runs. Duplicates are shown
// to the user as imported, so two codes that would only collide once
// normalized are not flagged here.
func FindDuplicates(accounts []model.Account) []model.Account {
	counts := make(map[string]int, len(accounts))
	for _, a := range accounts {
		counts[a.Number]++
	}

	var dups []model.Account
	for _, a := range accounts {
		if counts[a.Number] > 1 {
			dups = append(dups, a)
		}
	}
	return dups
}

// SplitUnique returns the accounts not present in the duplicate set.
func SplitUnique(accounts, duplicates []model.Account) []model.Account {
	dupIDs := make(map[string]bool, len(duplicates))
	for _, d := range duplicates {
		dupIDs[d.ID] = true
	}

	var unique []model.Account
	for _, a := range accounts {
		if !dupIDs[a.ID] {
			unique = append(unique, a)
		}
	}
	return unique
}

// Compare partitions client accounts by membership of their normalized
// number in the CNCJ number set. CNCJ numbers are canonical reference data
// and are used as-is, never normalized.
func Compare(clients, cncjAccounts []model.Account) (matches, unmatched []model.Account) {
	cncjNumbers := NumberSet(cncjAccounts)
	for _, a := range clients {
		if cncjNumbers[normalize.Code(a.Number)] {
			matches = append(matches, a)
		} else {
			unmatched = append(unmatched, a)
		}
	}
	return matches, unmatched
}

// Process is the canonical processing entry point for an imported client
// chart. It composes duplicate detection, comparison against the CNCJ
// registry, and a further split of unmatched clients into accounts present
// in the general chart (UnmatchedClients) vs absent from both (ToCreate).
//
// Duplicates and UniqueClients partition the input; Matches,
// UnmatchedClients and ToCreate partition UniqueClients.
func Process(clients, cncjAccounts, generalAccounts []model.Account) model.ProcessingResult {
	duplicates := FindDuplicates(clients)
	unique := SplitUnique(clients, duplicates)

	matches, unmatched := Compare(unique, cncjAccounts)

	generalNumbers := NumberSet(generalAccounts)
	var inGeneral, toCreate []model.Account
	for _, a := range unmatched {
		if generalNumbers[normalize.Code(a.Number)] {
			inGeneral = append(inGeneral, a)
		} else {
			toCreate = append(toCreate, a)
		}
	}

	return model.ProcessingResult{
		Duplicates:       duplicates,
		UniqueClients:    unique,
		Matches:          matches,
		UnmatchedClients: inGeneral,
		ToCreate:         toCreate,
	}
}

// NumberSet builds a membership set of the accounts' numbers.
func NumberSet(accounts []model.Account) map[string]bool {
	set := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		set[a.Number] = true
	}
	return set
}
