// Package pipeline composes the reconciliation stages into one pure run:
// normalize, merge, duplicate detection, CNCJ conflict resolution, lineage
// and metadata inheritance. Every stage consumes immutable snapshots and
// returns new data, so a run can be repeated at any time with the same
// inputs and yield the same Result.
package pipeline

import (
	"github.com/concilia-dev/concilia/internal/cncj"
	"github.com/concilia-dev/concilia/internal/dedupe"
	"github.com/concilia-dev/concilia/internal/lineage"
	"github.com/concilia-dev/concilia/internal/merge"
	"github.com/concilia-dev/concilia/internal/model"
	"github.com/concilia-dev/concilia/internal/normalize"
	"github.com/concilia-dev/concilia/internal/pcg"
)

// Result aggregates everything one reconciliation run produces.
type Result struct {
	Accounts        []model.Account              `json:"accounts"` // normalized, merged client accounts
	Normalizations  []model.Normalization        `json:"normalizations,omitempty"`
	MergeInfo       []model.MergeInfo            `json:"mergeInfo,omitempty"`
	Duplicates      model.ProcessingResult       `json:"duplicates"`
	CncjConflicts   model.ProcessingResult       `json:"cncjConflicts"`
	AutoCorrections map[string]string            `json:"autoCorrections,omitempty"` // account ID -> code or cncj.CorrectionError
	Histories       map[string]model.CodeHistory `json:"histories"`
	Inheritances    map[string]model.Inheritance `json:"inheritances,omitempty"`
}

// Run executes the full pipeline over the three imported charts plus the
// user's replacement maps. Manual CNCJ replacements take precedence over
// auto-corrections for the same account.
func Run(clients, cncjAccounts, generalAccounts []model.Account,
	dupReplacements, cncjReplacements map[string]string) Result {

	pending := normalize.FindPending(clients)
	normalized := normalize.Apply(clients, pending)
	merged, mergeInfo := merge.Identical(normalized)

	dupResult := dedupe.Process(merged, cncjAccounts, generalAccounts)
	cncjResult := cncj.Process(merged, cncjAccounts)

	auto := cncj.AutoCorrect(cncjResult.Duplicates, cncjAccounts, merged, cncj.IncrementWithConstraint)

	cncjFixes := make(map[string]string, len(auto)+len(cncjReplacements))
	for accountID, code := range auto {
		cncjFixes[accountID] = code
	}
	for accountID, code := range cncjReplacements {
		if code != "" {
			cncjFixes[accountID] = code
		}
	}

	lookups := pcg.NewLookups(generalAccounts)
	histories := make(map[string]model.CodeHistory, len(merged))
	inheritances := make(map[string]model.Inheritance)

	for _, a := range merged {
		final := lineage.FinalCode(a, dupResult, cncjResult, dupReplacements, cncjFixes)

		referencePcgCode := ""
		if _, ok := lookups.Get(final); !ok {
			if closest, ok := lookups.Closest(final); ok {
				inh := pcg.Inherit(closest)
				inheritances[a.ID] = inh
				referencePcgCode = inh.ReferencePcgCode
			}
		}

		histories[a.ID] = lineage.History(a, dupResult, cncjResult,
			dupReplacements, cncjFixes, referencePcgCode)
	}

	return Result{
		Accounts:        merged,
		Normalizations:  pending,
		MergeInfo:       mergeInfo,
		Duplicates:      dupResult,
		CncjConflicts:   cncjResult,
		AutoCorrections: auto,
		Histories:       histories,
		Inheritances:    inheritances,
	}
}
