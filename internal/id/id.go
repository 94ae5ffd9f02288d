package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAccountID returns an account ID like "4110000-12", derived from the
// account number and its zero-based row index in the imported file.
func FormatAccountID(number string, row int) string {
	return fmt.Sprintf("%s-%d", number, row)
}

// Renumber rewrites the number part of an account ID, keeping the row index.
// "4110000-12" renumbered to "4110001" -> "4110001-12". IDs are otherwise
// stable for the lifetime of an account; only normalization re-keys them.
func Renumber(accountID, newNumber string) string {
	i := strings.LastIndex(accountID, "-")
	if i < 0 {
		return newNumber
	}
	return newNumber + accountID[i:]
}

// Parse splits an account ID into its number and row index.
func Parse(accountID string) (number string, row int, err error) {
	i := strings.LastIndex(accountID, "-")
	if i < 0 {
		return "", 0, fmt.Errorf("invalid account ID format: %q", accountID)
	}

	row, err = strconv.Atoi(accountID[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid row index in account ID %q: %w", accountID, err)
	}

	return accountID[:i], row, nil
}
