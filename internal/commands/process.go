package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/concilia-dev/concilia/internal/accounts"
	"github.com/concilia-dev/concilia/internal/auditlog"
	"github.com/concilia-dev/concilia/internal/buildinfo"
	"github.com/concilia-dev/concilia/internal/cncj"
	"github.com/concilia-dev/concilia/internal/gitops"
	"github.com/concilia-dev/concilia/internal/pipeline"
	"github.com/concilia-dev/concilia/internal/project"
	"github.com/concilia-dev/concilia/internal/report"
)

func newProcessCommand() *cobra.Command {
	var projectDir string
	var clientsPath, cncjPath, generalPath string

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Run the full reconciliation and export final codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runProcess(absDir, clientsPath, cncjPath, generalPath)
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

func runProcess(projectRoot, clientsPath, cncjPath, generalPath string) error {
	in, err := loadInputs(projectRoot, clientsPath, cncjPath, generalPath)
	if err != nil {
		return err
	}

	result := pipeline.Run(in.clients, in.cncj, in.general, in.dupFixes, in.cncjFix)

	// Export the final mapping.
	resultsDir := filepath.Join(projectRoot, "results")
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return fmt.Errorf("creating results dir: %w", err)
	}
	out, err := os.Create(filepath.Join(resultsDir, "final-codes.csv"))
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer out.Close()
	if err := report.WriteLineage(out, result); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	// Export the normalized, merged chart in the canonical format.
	chart := accounts.NewService(result.Accounts)
	if err := chart.Save(filepath.Join(resultsDir, "merged-accounts.csv")); err != nil {
		return fmt.Errorf("writing merged chart: %w", err)
	}

	// Log this run's corrections, manual decisions included.
	var entries []auditlog.Entry
	autoCount, errorCount := 0, 0
	now := time.Now().UTC()
	for _, a := range result.Duplicates.Duplicates {
		fix := in.dupFixes[a.ID]
		if fix == "" {
			continue
		}
		entries = append(entries, auditlog.Entry{
			Timestamp: now,
			Stage:     auditlog.StageDuplicates,
			AccountID: a.ID,
			OldCode:   a.Number,
			NewCode:   fix,
			Origin:    auditlog.OriginManual,
		})
	}
	for _, a := range result.CncjConflicts.Duplicates {
		if fix := in.cncjFix[a.ID]; fix != "" {
			entries = append(entries, auditlog.Entry{
				Timestamp: now,
				Stage:     auditlog.StageCncj,
				AccountID: a.ID,
				OldCode:   a.Number,
				NewCode:   fix,
				Origin:    auditlog.OriginManual,
			})
			continue
		}
		code, ok := result.AutoCorrections[a.ID]
		if !ok {
			continue
		}
		if code == cncj.CorrectionError {
			errorCount++
			continue
		}
		autoCount++
		entries = append(entries, auditlog.Entry{
			Timestamp: now,
			Stage:     auditlog.StageCncj,
			AccountID: a.ID,
			OldCode:   a.Number,
			NewCode:   code,
			Origin:    auditlog.OriginAuto,
		})
	}
	if len(entries) > 0 {
		if err := auditlog.Append(projectRoot, entries); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to write corrections log: %v\n", err)
		}
	}

	// Persist the project state.
	payload, err := project.NewPayload(in.clients, in.cncj, in.general, in.dupFixes, in.cncjFix)
	if err != nil {
		return fmt.Errorf("building project payload: %w", err)
	}
	file := &project.File{Payload: payload}
	if in.saved != nil {
		file.ProjectID = in.saved.ProjectID
	}
	if err := project.Save(filepath.Join(projectRoot, projectFile), file, buildinfo.Version); err != nil {
		return fmt.Errorf("saving project: %w", err)
	}

	if in.cfg.Git.AutoSnapshot && gitops.IsRepo(projectRoot) {
		author := gitops.Author{Name: in.cfg.Git.AuthorName, Email: in.cfg.Git.AuthorEmail}
		if _, err := gitops.Snapshot(projectRoot, "process: reconcile charts", author); err != nil {
			fmt.Fprintf(os.Stderr, "warning: git snapshot failed: %v\n", err)
		}
	}

	fmt.Printf("Processed %d client accounts: %d merged groups, %d duplicates, %d CNCJ conflicts (%d auto-corrected, %d need manual correction)\n",
		len(in.clients), len(result.MergeInfo), len(result.Duplicates.Duplicates),
		len(result.CncjConflicts.Duplicates), autoCount, errorCount)
	return nil
}
