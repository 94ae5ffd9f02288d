package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAccountID(t *testing.T) {
	tests := []struct {
		number string
		row    int
		want   string
	}{
		{"4110000", 0, "4110000-0"},
		{"4110000", 12, "4110000-12"},
		{"101", 3, "101-3"},
	}
	for _, tt := range tests {
		got := FormatAccountID(tt.number, tt.row)
		assert.Equal(t, tt.want, got)
	}
}

func TestRenumber(t *testing.T) {
	tests := []struct {
		accountID string
		newNumber string
		want      string
	}{
		{"4110000-12", "4110001", "4110001-12"},
		{"101-0", "1010000", "1010000-0"},
		{"noindex", "1010000", "1010000"},
	}
	for _, tt := range tests {
		got := Renumber(tt.accountID, tt.newNumber)
		assert.Equal(t, tt.want, got)
	}
}

func TestParse(t *testing.T) {
	number, row, err := Parse("4110000-12")
	require.NoError(t, err)
	assert.Equal(t, "4110000", number)
	assert.Equal(t, 12, row)
}

func TestParse_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"noindex",
		"4110000-x",
	}
	for _, input := range badInputs {
		_, _, err := Parse(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}
