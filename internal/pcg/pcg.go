// Package pcg resolves metadata inheritance from the general chart of
// accounts (PCG) for client accounts absent from it.
package pcg

import (
	"strconv"

	"github.com/concilia-dev/concilia/internal/model"
)

// prefixLen is the number of leading digits two codes must share to be
// considered members of the same family.
const prefixLen = 4

// Identity attributes of a general-chart row. They describe the account
// itself, not its classification, and must never be inherited.
var identityFields = map[string]bool{
	"importId": true,
	"code":     true,
	"name":     true,
}

// Lookups holds the ephemeral indices over a general chart. Prefix buckets
// preserve input order, which fixes the nearest-match tie-break.
type Lookups struct {
	byNumber map[string]model.Account
	byPrefix map[string][]model.Account
}

// NewLookups indexes the general accounts by full number and by 4-digit
// prefix.
func NewLookups(generalAccounts []model.Account) Lookups {
	l := Lookups{
		byNumber: make(map[string]model.Account, len(generalAccounts)),
		byPrefix: make(map[string][]model.Account),
	}
	for _, a := range generalAccounts {
		if _, ok := l.byNumber[a.Number]; !ok {
			l.byNumber[a.Number] = a
		}
		if len(a.Number) >= prefixLen {
			p := a.Number[:prefixLen]
			l.byPrefix[p] = append(l.byPrefix[p], a)
		}
	}
	return l
}

// Get returns the general account with exactly this number.
func (l Lookups) Get(number string) (model.Account, bool) {
	a, ok := l.byNumber[number]
	return a, ok
}

// Closest returns the general account nearest to code: candidates share the
// first 4 digits, distance is the absolute numeric difference, and ties keep
// the first-encountered candidate in general-chart input order.
func (l Lookups) Closest(code string) (model.Account, bool) {
	if len(code) < prefixLen {
		return model.Account{}, false
	}
	target, err := strconv.ParseInt(code, 10, 64)
	if err != nil {
		return model.Account{}, false
	}

	var best model.Account
	bestDist := int64(-1)
	for _, candidate := range l.byPrefix[code[:prefixLen]] {
		n, err := strconv.ParseInt(candidate.Number, 10, 64)
		if err != nil {
			continue
		}
		d := target - n
		if d < 0 {
			d = -d
		}
		if bestDist < 0 || d < bestDist {
			best = candidate
			bestDist = d
		}
	}
	return best, bestDist >= 0
}

// Inherit shallow-copies the matched account's raw row, minus identity
// fields, as the starting metadata for a new client account.
func Inherit(closest model.Account) model.Inheritance {
	data := make(map[string]string, len(closest.RawData))
	for k, v := range closest.RawData {
		if identityFields[k] {
			continue
		}
		data[k] = v
	}
	return model.Inheritance{
		InheritedData:    data,
		ReferencePcgCode: closest.Number,
	}
}
