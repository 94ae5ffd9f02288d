package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/concilia-dev/concilia/internal/id"
	"github.com/concilia-dev/concilia/internal/model"
)

// ClientParser parses a client chart-of-accounts export. Column positions
// vary between accounting packages, so they are configurable.
type ClientParser struct {
	NumberColumn int
	TitleColumn  int
	HasHeader    bool
}

// Format returns the parser name.
func (p *ClientParser) Format() string { return "client" }

// Parse reads a client chart CSV. Rows with an empty number cell are
// skipped. Account IDs embed the number and the zero-based data row index.
func (p *ClientParser) Parse(r io.Reader) ([]model.Account, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading client CSV: %w", err)
	}
	if p.HasHeader && len(records) > 0 {
		records = records[1:]
	}

	minFields := p.NumberColumn
	if p.TitleColumn > minFields {
		minFields = p.TitleColumn
	}

	var accounts []model.Account
	for i, rec := range records {
		if len(rec) <= minFields {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", i+1, minFields+1, len(rec))
		}
		number := strings.TrimSpace(rec[p.NumberColumn])
		if number == "" {
			continue
		}
		accounts = append(accounts, model.Account{
			ID:     id.FormatAccountID(number, i),
			Number: number,
			Title:  strings.TrimSpace(rec[p.TitleColumn]),
			Source: model.SourceClient,
		})
	}
	return accounts, nil
}

// CncjParser parses the CNCJ registry export: code in the first column,
// label in the second. Registry codes are canonical and kept as-is.
type CncjParser struct{}

// Format returns the parser name.
func (p *CncjParser) Format() string { return "cncj" }

// Parse reads a CNCJ registry CSV.
func (p *CncjParser) Parse(r io.Reader) ([]model.Account, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading CNCJ CSV: %w", err)
	}
	if len(records) > 0 {
		records = records[1:]
	}

	var accounts []model.Account
	for i, rec := range records {
		if len(rec) == 0 {
			continue
		}
		number := strings.TrimSpace(rec[0])
		if number == "" {
			continue
		}
		title := ""
		if len(rec) > 1 {
			title = strings.TrimSpace(rec[1])
		}
		accounts = append(accounts, model.Account{
			ID:     id.FormatAccountID(number, i),
			Number: number,
			Title:  title,
			Source: model.SourceCncj,
		})
	}
	return accounts, nil
}

// GeneralParser parses the general chart (PCG) export. The full row is
// captured into RawData keyed by header name, so metadata inheritance can
// copy attributes the reconciliation itself never interprets.
type GeneralParser struct{}

// Format returns the parser name.
func (p *GeneralParser) Format() string { return "general" }

// Parse reads a general chart CSV. The first row must be a header
// containing a "code" column; a "name" column is used as the title.
func (p *GeneralParser) Parse(r io.Reader) ([]model.Account, error) {
	records, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading general chart CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	codeCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(strings.ToLower(h)) {
		case "code":
			codeCol = i
		case "name":
			nameCol = i
		}
	}
	if codeCol < 0 {
		return nil, fmt.Errorf("general chart CSV has no \"code\" column")
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		if codeCol >= len(rec) {
			return nil, fmt.Errorf("row %d: missing code column", i+2)
		}
		number := strings.TrimSpace(rec[codeCol])
		if number == "" {
			continue
		}

		raw := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(rec) {
				raw[strings.TrimSpace(h)] = rec[j]
			}
		}

		title := ""
		if nameCol >= 0 && nameCol < len(rec) {
			title = strings.TrimSpace(rec[nameCol])
		}

		accounts = append(accounts, model.Account{
			ID:      id.FormatAccountID(number, i),
			Number:  number,
			Title:   title,
			Source:  model.SourceGeneral,
			RawData: raw,
		})
	}
	return accounts, nil
}

func readAll(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return cr.ReadAll()
}
