// Package suggest proposes replacement codes for duplicate client accounts.
//
// Suggestions never cross a tens boundary: codes within a family share the
// same tens-group, so a code ending in 9 has no room left and codes are only
// ever incremented inside floor(n/10)*10 .. floor(n/10)*10+9. This range
// restriction is a business rule of the homologation process, not an
// implementation convenience.
package suggest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/concilia-dev/concilia/internal/model"
)

// User-facing reasons, in the vocabulary of the homologation workflow.
const (
	ReasonInvalid        = "Code invalide"
	ReasonEndsInNine     = "Le code original finit par 9, aucune incrémentation possible dans la dizaine"
	ReasonAlreadyEntered = "Code de remplacement déjà saisi"
	ReasonOriginalFree   = "Code original disponible"
)

// NextCode proposes the next available code after originalCode inside its
// tens-group. used holds every code already taken; cncjCodes (optional, may
// be nil) identifies which of those belong to the CNCJ registry, for
// attribution when the range is saturated.
//
// The returned result never carries a code present in used. A nil code plus
// a reason means no suggestion exists.
func NextCode(originalCode string, used, cncjCodes map[string]bool) model.SuggestionResult {
	if originalCode == "" || !isDigits(originalCode) {
		return model.SuggestionResult{Reason: ReasonInvalid}
	}

	n, err := strconv.ParseInt(originalCode, 10, 64)
	if err != nil {
		return model.SuggestionResult{Reason: ReasonInvalid}
	}

	if n%10 == 9 {
		return model.SuggestionResult{Reason: ReasonEndsInNine}
	}

	base := n / 10 * 10
	maxInRange := base + 9

	var tried []string
	for c := n + 1; c <= maxInRange; c++ {
		candidate := formatLike(originalCode, c)
		if used[candidate] {
			tried = append(tried, candidate)
			continue
		}
		reason := fmt.Sprintf("+%d depuis %s", c-n, originalCode)
		if len(tried) > 0 {
			reason += fmt.Sprintf(" (codes %s indisponibles)", strings.Join(tried, ", "))
		}
		return model.SuggestionResult{Code: candidate, Reason: reason, TriedCodes: tried}
	}

	blockedBy := classifyBlockers(tried, cncjCodes)
	return model.SuggestionResult{
		Reason: fmt.Sprintf("Plage %s-%s saturée (%s)",
			formatLike(originalCode, base), formatLike(originalCode, maxInRange),
			blockerLabel(blockedBy)),
		TriedCodes: tried,
		BlockedBy:  blockedBy,
	}
}

// ForDuplicates computes one suggestion per duplicate account. Duplicates
// are grouped by their shared original code; the first account of a group is
// offered the original code itself when free, later ones get the constrained
// increment. Accounts with a manually entered replacement are skipped.
// Accepted suggestions immediately occupy the working used set, so two
// accounts never receive the same code in one call.
func ForDuplicates(duplicates []model.Account, existingCodes map[string]bool,
	replacements map[string]string, cncjCodes map[string]bool) map[string]model.SuggestionResult {

	working := make(map[string]bool, len(existingCodes)+len(replacements))
	for code := range existingCodes {
		working[code] = true
	}
	for _, code := range replacements {
		if code != "" {
			working[code] = true
		}
	}

	groups := make(map[string][]model.Account)
	var order []string
	for _, a := range duplicates {
		if _, seen := groups[a.Number]; !seen {
			order = append(order, a.Number)
		}
		groups[a.Number] = append(groups[a.Number], a)
	}

	results := make(map[string]model.SuggestionResult, len(duplicates))
	for _, number := range order {
		for i, a := range groups[number] {
			if replacements[a.ID] != "" {
				results[a.ID] = model.SuggestionResult{Reason: ReasonAlreadyEntered}
				continue
			}

			if i == 0 && !working[a.Number] {
				results[a.ID] = model.SuggestionResult{Code: a.Number, Reason: ReasonOriginalFree}
				working[a.Number] = true
				continue
			}

			res := NextCode(a.Number, working, cncjCodes)
			if res.Code != "" {
				working[res.Code] = true
			}
			results[a.ID] = res
		}
	}
	return results
}

// formatLike renders value with the same zero-padded width as the template
// code, so "0450001" stays 7 digits and "145" stays 3.
func formatLike(template string, value int64) string {
	return fmt.Sprintf("%0*d", len(template), value)
}

func classifyBlockers(tried []string, cncjCodes map[string]bool) model.BlockedBy {
	hasCncj, hasClient := false, false
	for _, c := range tried {
		if cncjCodes[c] {
			hasCncj = true
		} else {
			hasClient = true
		}
	}
	switch {
	case hasCncj && hasClient:
		return model.BlockedByBoth
	case hasCncj:
		return model.BlockedByCncj
	default:
		return model.BlockedByClient
	}
}

func blockerLabel(b model.BlockedBy) string {
	switch b {
	case model.BlockedByCncj:
		return "codes réservés CNCJ"
	case model.BlockedByBoth:
		return "codes clients et codes réservés CNCJ"
	default:
		return "codes clients"
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
