// Package project persists a reconciliation project as a single JSON file:
// the imported charts plus the user's replacement maps, protected by a
// SHA-256 checksum and an application-version compatibility check.
//
// The writing application's version is passed in explicitly rather than read
// from a build-time global, so callers control what compatibility means.
package project

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrChecksum reports a project file whose payload does not match its
// recorded checksum.
var ErrChecksum = errors.New("project file checksum mismatch")

// ErrVersion reports a project file written by an incompatible application
// major version.
var ErrVersion = errors.New("incompatible project file version")

// Payload is the saved state of a project. Core shapes round-trip through
// JSON unchanged.
type Payload struct {
	ClientAccounts   []json.RawMessage `json:"clientAccounts"`
	CncjAccounts     []json.RawMessage `json:"cncjAccounts"`
	GeneralAccounts  []json.RawMessage `json:"generalAccounts"`
	DupReplacements  map[string]string `json:"duplicateReplacements"`
	CncjReplacements map[string]string `json:"cncjReplacements"`
}

// File is the on-disk project format.
type File struct {
	ProjectID  string    `json:"projectId"`
	AppVersion string    `json:"appVersion"`
	SavedAt    time.Time `json:"savedAt"`
	Checksum   string    `json:"checksum"`
	Payload    Payload   `json:"payload"`
}

// NewPayload marshals the given charts and replacement maps into a Payload.
func NewPayload(clients, cncjAccounts, generals any, dupReplacements, cncjReplacements map[string]string) (Payload, error) {
	marshal := func(v any) ([]json.RawMessage, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}

	p := Payload{
		DupReplacements:  dupReplacements,
		CncjReplacements: cncjReplacements,
	}
	var err error
	if p.ClientAccounts, err = marshal(clients); err != nil {
		return Payload{}, fmt.Errorf("marshaling client accounts: %w", err)
	}
	if p.CncjAccounts, err = marshal(cncjAccounts); err != nil {
		return Payload{}, fmt.Errorf("marshaling CNCJ accounts: %w", err)
	}
	if p.GeneralAccounts, err = marshal(generals); err != nil {
		return Payload{}, fmt.Errorf("marshaling general accounts: %w", err)
	}
	return p, nil
}

// Save writes the project to path. A missing ProjectID is generated; the
// checksum and SavedAt are always recomputed.
func Save(path string, f *File, appVersion string) error {
	if f.ProjectID == "" {
		f.ProjectID = uuid.NewString()
	}
	f.AppVersion = appVersion
	f.SavedAt = time.Now().UTC()

	sum, err := checksum(f.Payload)
	if err != nil {
		return fmt.Errorf("computing checksum: %w", err)
	}
	f.Checksum = sum

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing project: %w", err)
	}
	return nil
}

// Load reads a project from path, verifying its checksum and that its
// application major version matches appVersion.
func Load(path, appVersion string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing project: %w", err)
	}

	sum, err := checksum(f.Payload)
	if err != nil {
		return nil, fmt.Errorf("computing checksum: %w", err)
	}
	if sum != f.Checksum {
		return nil, fmt.Errorf("%w: recorded %s, computed %s", ErrChecksum, f.Checksum, sum)
	}

	if majorVersion(f.AppVersion) != majorVersion(appVersion) {
		return nil, fmt.Errorf("%w: file written by %s, running %s", ErrVersion, f.AppVersion, appVersion)
	}

	return &f, nil
}

func checksum(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func majorVersion(version string) string {
	v := strings.TrimPrefix(version, "v")
	if i := strings.Index(v, "."); i >= 0 {
		return v[:i]
	}
	return v
}
