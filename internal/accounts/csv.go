package accounts

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/concilia-dev/concilia/internal/model"
)

const (
	numFields   = 4
	colID       = 0
	colNumber   = 1
	colTitle    = 2
	colOriginal = 3
)

// Header is the CSV header for the canonical account format.
const Header = "id,number,title,original_number"

// ReadAccounts reads accounts in the canonical CSV format, assigning the
// given source to every row.
func ReadAccounts(r io.Reader, source model.Source) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		acct, err := UnmarshalAccount(rec, source)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

// WriteAccounts writes accounts in the canonical CSV format.
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, acct := range accounts {
		if err := cw.Write(MarshalAccount(acct)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalAccount converts an Account to a canonical CSV row.
func MarshalAccount(acct model.Account) []string {
	row := make([]string, numFields)
	row[colID] = acct.ID
	row[colNumber] = acct.Number
	row[colTitle] = acct.Title
	row[colOriginal] = acct.OriginalNumber
	return row
}

// UnmarshalAccount converts a canonical CSV row to an Account.
func UnmarshalAccount(record []string, source model.Source) (model.Account, error) {
	if len(record) != numFields {
		return model.Account{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colNumber] == "" {
		return model.Account{}, fmt.Errorf("empty account number")
	}

	return model.Account{
		ID:             record[colID],
		Number:         record[colNumber],
		Title:          record[colTitle],
		Source:         source,
		OriginalNumber: record[colOriginal],
	}, nil
}
