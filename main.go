package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/okemir/worklogger/internal/config"
	"github.com/okemir/worklogger/internal/store"
	"github.com/okemir/worklogger/internal/tui"
)

func main() {
	cfgPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error resolving config path: %v\n", err)
		os.Exit(1)
	}

	cfg, loadErr := config.Load(cfgPath)
	notice := ""
	if loadErr != nil {
		notice = fmt.Sprintf("Settings file ignored, using defaults (%v)", loadErr)
	}

	s, err := store.New(cfg.WorklogDir, cfg.Interval())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening worklog directory: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(s, cfg, cfgPath, notice)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
