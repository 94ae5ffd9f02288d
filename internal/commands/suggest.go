package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/concilia-dev/concilia/internal/accounts"
	"github.com/concilia-dev/concilia/internal/dedupe"
	"github.com/concilia-dev/concilia/internal/merge"
	"github.com/concilia-dev/concilia/internal/normalize"
	"github.com/concilia-dev/concilia/internal/suggest"
)

func newSuggestCommand() *cobra.Command {
	var projectDir string
	var clientsPath, cncjPath string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Print replacement-code suggestions for duplicate client accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runSuggest(absDir, clientsPath, cncjPath)
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	cmd.Flags().StringVar(&clientsPath, "clients", "", "client chart CSV (required)")
	cmd.Flags().StringVar(&cncjPath, "cncj", "", "CNCJ registry CSV (required)")
	_ = cmd.MarkFlagRequired("clients")
	_ = cmd.MarkFlagRequired("cncj")

	return cmd
}

func runSuggest(projectRoot, clientsPath, cncjPath string) error {
	in, err := loadInputs(projectRoot, clientsPath, cncjPath, "")
	if err != nil {
		return err
	}

	pending := normalize.FindPending(in.clients)
	normalized := normalize.Apply(in.clients, pending)
	merged, _ := merge.Identical(normalized)

	duplicates := dedupe.FindDuplicates(merged)
	if len(duplicates) == 0 {
		fmt.Println("No duplicate client codes.")
		return nil
	}

	chart := accounts.NewService(merged)
	registry := accounts.NewService(in.cncj)

	results := suggest.ForDuplicates(duplicates, chart.NumberSet(), in.dupFixes, registry.NumberSet())

	ids := make([]string, 0, len(results))
	for accountID := range results {
		ids = append(ids, accountID)
	}
	sort.Strings(ids)

	for _, accountID := range ids {
		res := results[accountID]
		if res.Code != "" {
			fmt.Printf("%s -> %s (%s)\n", accountID, res.Code, res.Reason)
		} else {
			fmt.Printf("%s -> aucune suggestion: %s\n", accountID, res.Reason)
		}
	}
	return nil
}
