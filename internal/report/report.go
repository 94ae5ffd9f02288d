// Package report exports the final per-account code mapping as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/concilia-dev/concilia/internal/model"
	"github.com/concilia-dev/concilia/internal/pipeline"
)

// Header is the CSV header for final-codes.csv.
const Header = "id,title,original_code,normalized_code,duplicate_code,cncj_code,final_code,reference_pcg_code,inherited"

const (
	numFields    = 9
	colID        = 0
	colTitle     = 1
	colOriginal  = 2
	colNormal    = 3
	colDuplicate = 4
	colCncj      = 5
	colFinal     = 6
	colReference = 7
	colInherited = 8
)

// WriteLineage writes one row per account with its full code chain.
// Accounts keep the pipeline's output order.
func WriteLineage(w io.Writer, result pipeline.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, a := range result.Accounts {
		h := result.Histories[a.ID]
		_, inherited := result.Inheritances[a.ID]
		if err := cw.Write(MarshalRow(a, h, inherited)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRow converts one account and its history to a CSV row.
func MarshalRow(a model.Account, h model.CodeHistory, inherited bool) []string {
	row := make([]string, numFields)
	row[colID] = a.ID
	row[colTitle] = a.Title
	row[colOriginal] = h.OriginalCode
	row[colNormal] = h.NormalizedCode
	row[colDuplicate] = h.Step4Code
	row[colCncj] = h.Step6Code
	row[colFinal] = h.FinalCode
	row[colReference] = h.ReferencePcgCode
	if inherited {
		row[colInherited] = "yes"
	}
	return row
}
