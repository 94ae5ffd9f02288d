package accounts

import (
	"fmt"
	"os"

	"github.com/concilia-dev/concilia/internal/model"
)

// Service provides in-memory lookup over one imported chart.
type Service struct {
	accounts []model.Account
	byID     map[string]model.Account
}

// NewService creates a Service from a slice of accounts.
func NewService(accounts []model.Account) *Service {
	byID := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}
	return &Service{accounts: accounts, byID: byID}
}

// Load reads a canonical account CSV from disk.
func Load(path string, source model.Source) (*Service, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening accounts file: %w", err)
	}
	defer f.Close()

	accts, err := ReadAccounts(f, source)
	if err != nil {
		return nil, fmt.Errorf("reading accounts file %s: %w", path, err)
	}
	return NewService(accts), nil
}

// All returns all accounts.
func (s *Service) All() []model.Account {
	return s.accounts
}

// Get returns an account by ID.
func (s *Service) Get(accountID string) (model.Account, bool) {
	a, ok := s.byID[accountID]
	return a, ok
}

// NumberSet returns a membership set of every account number in the chart.
func (s *Service) NumberSet() map[string]bool {
	set := make(map[string]bool, len(s.accounts))
	for _, a := range s.accounts {
		set[a.Number] = true
	}
	return set
}

// Save writes the chart to disk in the canonical CSV format.
func (s *Service) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating accounts file: %w", err)
	}
	defer f.Close()

	if err := WriteAccounts(f, s.accounts); err != nil {
		return fmt.Errorf("writing accounts file %s: %w", path, err)
	}
	return nil
}
