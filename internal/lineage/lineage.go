// Package lineage derives the final code and full code history of an
// account from the pipeline results and the user's replacement maps.
// Everything here is re-derived on each call: the history is a view, safe to
// recompute at any time without state drift.
package lineage

import (
	"github.com/concilia-dev/concilia/internal/cncj"
	"github.com/concilia-dev/concilia/internal/model"
	"github.com/concilia-dev/concilia/internal/normalize"
)

// FinalCode resolves the one code an account ends up with.
//
// A CNCJ replacement always wins over a duplicate replacement when both
// apply: CNCJ conflicts are discovered downstream of duplicate resolution
// and override it. With neither, the account keeps its current (normalized,
// merged) number.
func FinalCode(account model.Account, dupResult, cncjResult model.ProcessingResult,
	dupReplacements, cncjReplacements map[string]string) string {

	if containsID(cncjResult.Duplicates, account.ID) {
		if code := cncjReplacements[account.ID]; code != "" && code != cncj.CorrectionError {
			return code
		}
	}

	if containsID(dupResult.Duplicates, account.ID) {
		if code := dupReplacements[account.ID]; code != "" {
			return code
		}
	}

	return account.Number
}

// History assembles the account's full code chain: original, normalized,
// duplicate-stage replacement, CNCJ-stage replacement, final, plus the
// reference PCG code when metadata was inherited. Side-effect free and
// idempotent.
func History(account model.Account, dupResult, cncjResult model.ProcessingResult,
	dupReplacements, cncjReplacements map[string]string, referencePcgCode string) model.CodeHistory {

	original := account.OriginalNumber
	if original == "" {
		original = account.Number
	}

	h := model.CodeHistory{
		OriginalCode:     original,
		NormalizedCode:   normalize.Code(original),
		FinalCode:        FinalCode(account, dupResult, cncjResult, dupReplacements, cncjReplacements),
		ReferencePcgCode: referencePcgCode,
	}

	if containsID(dupResult.Duplicates, account.ID) {
		h.Step4Code = dupReplacements[account.ID]
	}
	if containsID(cncjResult.Duplicates, account.ID) {
		if code := cncjReplacements[account.ID]; code != cncj.CorrectionError {
			h.Step6Code = code
		}
	}
	return h
}

func containsID(accounts []model.Account, accountID string) bool {
	for _, a := range accounts {
		if a.ID == accountID {
			return true
		}
	}
	return false
}
