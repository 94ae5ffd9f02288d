// Package cncj resolves collisions between client codes and the CNCJ
// registry of reserved, homologated account codes.
package cncj

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/concilia-dev/concilia/internal/dedupe"
	"github.com/concilia-dev/concilia/internal/model"
	"github.com/concilia-dev/concilia/internal/normalize"
)

// CorrectionError marks a conflict the resolver could not auto-correct.
// It is a terminal, user-visible outcome requiring manual correction, never
// silently replaced by the original colliding code.
const CorrectionError = "error"

// maxAttempts caps increments at the size of a tens-group.
const maxAttempts = 9

// IncrementFunc produces the next candidate code, or false when no further
// increment is allowed.
type IncrementFunc func(code string) (string, bool)

// IncrementWithConstraint normalizes code to 7 digits and increments it by
// one, staying inside its tens-group. It returns false when the increment
// would cross the tens boundary, that is when (n+1) is a multiple of 10.
func IncrementWithConstraint(code string) (string, bool) {
	c := normalize.Code(code)
	n, err := strconv.ParseInt(c, 10, 64)
	if err != nil {
		return "", false
	}
	if (n+1)%10 == 0 {
		return "", false
	}
	return fmt.Sprintf("%0*d", len(c), n+1), true
}

// AutoCorrect assigns a non-colliding replacement code to each conflicting
// account, or CorrectionError when none exists within maxAttempts increments.
//
// The used-code set is seeded from every CNCJ code plus every merged client
// code. Conflicts are processed in ascending lexicographic order of their
// number so results are reproducible regardless of input order. Each
// accepted correction is reserved immediately; later conflicts cannot reuse
// it.
func AutoCorrect(conflicts, cncjAccounts, mergedClients []model.Account,
	inc IncrementFunc) map[string]string {

	used := make(map[string]bool, len(cncjAccounts)+len(mergedClients))
	for _, a := range cncjAccounts {
		used[a.Number] = true
	}
	for _, a := range mergedClients {
		used[a.Number] = true
	}

	sorted := make([]model.Account, len(conflicts))
	copy(sorted, conflicts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})

	corrections := make(map[string]string, len(conflicts))
	for _, a := range sorted {
		code := a.Number
		corrected := ""
		for attempt := 0; attempt < maxAttempts; attempt++ {
			next, ok := inc(code)
			if !ok {
				break
			}
			code = next
			if !used[code] {
				corrected = code
				break
			}
		}

		if corrected == "" {
			corrections[a.ID] = CorrectionError
			continue
		}
		used[corrected] = true
		corrections[a.ID] = corrected
	}
	return corrections
}

// Process partitions merged client accounts into CNCJ conflicts and
// non-conflicts. Both sides are already normalized to 7 digits at this
// pipeline stage, so membership is an exact match. Conflicts fill the
// Duplicates slot and non-conflicts the UniqueClients slot of the shared
// ProcessingResult shape; the remaining fields stay empty.
func Process(mergedClients, cncjAccounts []model.Account) model.ProcessingResult {
	cncjNumbers := dedupe.NumberSet(cncjAccounts)

	var conflicts, clean []model.Account
	for _, a := range mergedClients {
		if cncjNumbers[a.Number] {
			conflicts = append(conflicts, a)
		} else {
			clean = append(clean, a)
		}
	}

	return model.ProcessingResult{
		Duplicates:    conflicts,
		UniqueClients: clean,
	}
}
