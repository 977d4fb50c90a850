package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/boozedog/contextcrafter/internal/catalog"
	"github.com/boozedog/contextcrafter/internal/config"
	"github.com/boozedog/contextcrafter/internal/logger"
	"github.com/boozedog/contextcrafter/internal/persist"
	"github.com/boozedog/contextcrafter/internal/prompt"
	"github.com/boozedog/contextcrafter/internal/workflow"
)

var errNoSession = errors.New("no questionnaire in progress: run 'ccraft start <template-id>'")

// app bundles what every command needs after startup.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	catalog *catalog.Catalog
	store   persist.Store
	records *persist.Records
}

// openApp loads config, logger, catalog and store in that order.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if rootStore != "" {
		cfg.Store.Backend = rootStore
	}

	log, err := logger.New(cfg.Settings.LogMode)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	catalogPath, err := cfg.CatalogPath()
	if err != nil {
		return nil, fmt.Errorf("get catalog path: %w", err)
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	opts, err := cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	store, err := persist.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("store opened", "backend", opts.Backend, "dir", opts.Dir)

	return &app{
		cfg:     cfg,
		log:     log,
		catalog: cat,
		store:   store,
		records: persist.NewRecords(store, log),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close store", "err", err)
	}
	a.log.Sync()
}

// session resumes the stored questionnaire. Every change is written back.
func (a *app) session() (*workflow.Machine, error) {
	s, ok := a.records.LoadSession()
	if !ok {
		return nil, errNoSession
	}
	t, err := a.catalog.Get(s.TaskType)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	m := workflow.New(t, workflow.OnChange(a.records.SaveSession))
	m.Resume(s)
	return m, nil
}

// generate builds a prompt from a completed session and stores it.
func (a *app) generate(s workflow.Snapshot) (prompt.Generated, error) {
	t, err := a.catalog.Get(s.TaskType)
	if err != nil {
		return prompt.Generated{}, err
	}
	set, complete := workflow.Reconcile(t, s)
	if !complete {
		return prompt.Generated{}, errors.New("questionnaire not complete: answer the remaining questions and run 'ccraft next'")
	}
	g, err := prompt.NewGenerator(a.catalog).Create(t.ID, set)
	if err != nil {
		return prompt.Generated{}, err
	}
	a.records.AppendPrompt(g)
	a.log.Debug("prompt generated", "id", g.ID, "template", g.TaskType)
	return g, nil
}

// parseStyles accepts a style alias or "both".
func parseStyles(s string) ([]prompt.Style, error) {
	if strings.EqualFold(strings.TrimSpace(s), "both") {
		return prompt.Styles, nil
	}
	style, err := prompt.StyleFromAlias(s)
	if err != nil {
		return nil, err
	}
	return []prompt.Style{style}, nil
}

// printPrompt writes g in each style. Headers are only added when more than
// one style is printed so a single style can be piped as-is.
func printPrompt(g prompt.Generated, styles []prompt.Style) {
	for i, style := range styles {
		if len(styles) > 1 {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("=== %s ===\n", style)
		}
		fmt.Println(g.ByStyle(style))
	}
}
