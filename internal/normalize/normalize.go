package normalize

import (
	"strings"

	"github.com/concilia-dev/concilia/internal/id"
	"github.com/concilia-dev/concilia/internal/model"
)

// CodeLength is the canonical account-code length. Accounting codes are
// compared on their first 7 digits.
const CodeLength = 7

// Code forces an account code to exactly CodeLength digits. Longer codes are
// truncated to their first 7 characters (lossy, per the domain rule above);
// shorter codes are right-padded with '0'.
func Code(code string) string {
	if len(code) > CodeLength {
		return code[:CodeLength]
	}
	if len(code) < CodeLength {
		return code + strings.Repeat("0", CodeLength-len(code))
	}
	return code
}

// FindPending returns one Normalization per client account whose number is
// not already canonical length. The input is never mutated.
func FindPending(accounts []model.Account) []model.Normalization {
	var pending []model.Normalization
	for _, a := range accounts {
		if a.Source != model.SourceClient {
			continue
		}
		if len(a.Number) == CodeLength {
			continue
		}
		pending = append(pending, model.Normalization{
			ID:               a.ID,
			OriginalNumber:   a.Number,
			NormalizedNumber: Code(a.Number),
			Title:            a.Title,
		})
	}
	return pending
}

// Apply returns a new account list with each pending normalization applied:
// the account's Number becomes the normalized form, OriginalNumber keeps the
// imported form, and the ID is re-keyed to embed the new number.
func Apply(accounts []model.Account, pending []model.Normalization) []model.Account {
	byID := make(map[string]model.Normalization, len(pending))
	for _, n := range pending {
		byID[n.ID] = n
	}

	out := make([]model.Account, len(accounts))
	for i, a := range accounts {
		n, ok := byID[a.ID]
		if !ok {
			out[i] = a
			continue
		}
		a.OriginalNumber = n.OriginalNumber
		a.Number = n.NormalizedNumber
		a.ID = id.Renumber(a.ID, n.NormalizedNumber)
		out[i] = a
	}
	return out
}
