// Package auditlog keeps an append-only CSV trail of every code correction
// applied to a project, whether auto-generated or user-entered.
package auditlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Stage identifies which resolution pass produced a correction.
type Stage string

const (
	StageDuplicates Stage = "duplicates"
	StageCncj       Stage = "cncj"
)

// Origin identifies who decided a correction.
type Origin string

const (
	OriginAuto   Origin = "auto"
	OriginManual Origin = "manual"
)

// Entry is one row in the corrections log.
type Entry struct {
	Timestamp time.Time
	Stage     Stage
	AccountID string
	OldCode   string
	NewCode   string
	Origin    Origin
}

// Header is the CSV header for corrections-log.csv.
const Header = "timestamp,stage,account_id,old_code,new_code,origin"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "logs/corrections-log.csv"
	colTimestamp = 0
	colStage     = 1
	colAccountID = 2
	colOldCode   = 3
	colNewCode   = 4
	colOrigin    = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colStage] = string(e.Stage)
	row[colAccountID] = e.AccountID
	row[colOldCode] = e.OldCode
	row[colNewCode] = e.NewCode
	row[colOrigin] = string(e.Origin)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	return Entry{
		Timestamp: ts,
		Stage:     Stage(record[colStage]),
		AccountID: record[colAccountID],
		OldCode:   record[colOldCode],
		NewCode:   record[colNewCode],
		Origin:    Origin(record[colOrigin]),
	}, nil
}

// Append writes entries to <projectRoot>/logs/corrections-log.csv, creating
// the file and header if needed.
func Append(projectRoot string, entries []Entry) error {
	dir := filepath.Join(projectRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(projectRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening corrections log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <projectRoot>/logs/corrections-log.csv.
// Returns an empty slice if the file does not exist.
func Read(projectRoot string) ([]Entry, error) {
	path := filepath.Join(projectRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening corrections log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading corrections log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
