package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/concilia-dev/concilia/internal/buildinfo"
	"github.com/concilia-dev/concilia/internal/config"
	"github.com/concilia-dev/concilia/internal/importer"
	"github.com/concilia-dev/concilia/internal/model"
	"github.com/concilia-dev/concilia/internal/project"
)

// projectFile is where the replacement maps and imported charts persist
// between runs.
const projectFile = "results/concilia-project.json"

// inputs gathers everything a reconciliation command needs from disk.
type inputs struct {
	cfg      *config.Config
	clients  []model.Account
	cncj     []model.Account
	general  []model.Account
	saved    *project.File
	dupFixes map[string]string
	cncjFix  map[string]string
}

// loadInputs reads config, charts and any saved project state.
// generalPath may be empty; the general chart is optional.
func loadInputs(projectRoot, clientsPath, cncjPath, generalPath string) (*inputs, error) {
	in := &inputs{
		dupFixes: map[string]string{},
		cncjFix:  map[string]string{},
	}

	cfgPath := filepath.Join(projectRoot, "concilia.yaml")
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default("")
	} else if err != nil {
		return nil, err
	}
	in.cfg = cfg

	clientParser := &importer.ClientParser{
		NumberColumn: cfg.Importer.ClientNumberColumn,
		TitleColumn:  cfg.Importer.ClientTitleColumn,
		HasHeader:    cfg.Importer.ClientHasHeader,
	}
	if in.clients, err = importer.ParseFile(clientParser, clientsPath); err != nil {
		return nil, err
	}
	if in.cncj, err = importer.ParseFile(&importer.CncjParser{}, cncjPath); err != nil {
		return nil, err
	}
	if generalPath != "" {
		if in.general, err = importer.ParseFile(&importer.GeneralParser{}, generalPath); err != nil {
			return nil, err
		}
	}

	savedPath := filepath.Join(projectRoot, projectFile)
	if _, err := os.Stat(savedPath); err == nil {
		saved, err := project.Load(savedPath, buildinfo.Version)
		if err != nil {
			return nil, fmt.Errorf("loading saved project: %w", err)
		}
		in.saved = saved
		if saved.Payload.DupReplacements != nil {
			in.dupFixes = saved.Payload.DupReplacements
		}
		if saved.Payload.CncjReplacements != nil {
			in.cncjFix = saved.Payload.CncjReplacements
		}
	}

	return in, nil
}
