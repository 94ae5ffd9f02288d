package merge

import (
	"github.com/concilia-dev/concilia/internal/model"
)

// Identical collapses exact (number, title) duplicates into a single
// representative account, keeping the first occurrence in input order.
// One MergeInfo is emitted per group that had more than one member.
// The reduction is stable and idempotent.
func Identical(accounts []model.Account) (merged []model.Account, info []model.MergeInfo) {
	counts := make(map[string]int, len(accounts))
	first := make(map[string]model.Account, len(accounts))
	var order []string

	for _, a := range accounts {
		key := a.Number + "-" + a.Title
		if counts[key] == 0 {
			order = append(order, key)
			first[key] = a
			merged = append(merged, a)
		}
		counts[key]++
	}

	for _, key := range order {
		if counts[key] < 2 {
			continue
		}
		a := first[key]
		info = append(info, model.MergeInfo{
			Number:      a.Number,
			Title:       a.Title,
			MergedCount: counts[key],
		})
	}
	return merged, info
}
