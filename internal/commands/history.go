package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/concilia-dev/concilia/internal/accounts"
	"github.com/concilia-dev/concilia/internal/auditlog"
	"github.com/concilia-dev/concilia/internal/pipeline"
)

func newHistoryCommand() *cobra.Command {
	var projectDir string
	var clientsPath, cncjPath, generalPath string

	cmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "Print the full code lineage of one client account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runHistory(absDir, clientsPath, cncjPath, generalPath, args[0])
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	cmd.Flags().StringVar(&clientsPath, "clients", "", "client chart CSV (required)")
	cmd.Flags().StringVar(&cncjPath, "cncj", "", "CNCJ registry CSV (required)")
	cmd.Flags().StringVar(&generalPath, "pcg", "", "general chart CSV")
	_ = cmd.MarkFlagRequired("clients")
	_ = cmd.MarkFlagRequired("cncj")

	return cmd
}

func runHistory(projectRoot, clientsPath, cncjPath, generalPath, accountID string) error {
	in, err := loadInputs(projectRoot, clientsPath, cncjPath, generalPath)
	if err != nil {
		return err
	}

	result := pipeline.Run(in.clients, in.cncj, in.general, in.dupFixes, in.cncjFix)

	chart := accounts.NewService(result.Accounts)
	if _, ok := chart.Get(accountID); !ok {
		return fmt.Errorf("unknown account ID %q", accountID)
	}
	h := result.Histories[accountID]

	fmt.Printf("original:   %s\n", h.OriginalCode)
	fmt.Printf("normalized: %s\n", h.NormalizedCode)
	if h.Step4Code != "" {
		fmt.Printf("duplicate:  %s\n", h.Step4Code)
	}
	if h.Step6Code != "" {
		fmt.Printf("cncj:       %s\n", h.Step6Code)
	}
	fmt.Printf("final:      %s\n", h.FinalCode)
	if h.ReferencePcgCode != "" {
		fmt.Printf("pcg ref:    %s\n", h.ReferencePcgCode)
	}

	logged, err := auditlog.Read(projectRoot)
	if err != nil {
		return err
	}
	for _, e := range logged {
		if e.AccountID != accountID {
			continue
		}
		fmt.Printf("correction: %s -> %s (%s, %s, %s)\n",
			e.OldCode, e.NewCode, e.Stage, e.Origin,
			e.Timestamp.Format("2006-01-02"))
	}
	return nil
}
