// Command advisor-tui is the interactive terminal front end for
// internal/advisor, backed by a trained blueprint loaded from disk.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/cardshark/holdem-solver/internal/advisor"
	"github.com/cardshark/holdem-solver/internal/advisortui"
	"github.com/cardshark/holdem-solver/internal/blueprintio"
)

var cli struct {
	Blueprint string `help:"path to a blueprint written by solver train" required:""`
	LogFile   string `help:"path to write TUI diagnostic logs" default:"advisor-tui.log"`
}

func main() {
	kong.Parse(&cli, kong.Name("advisor-tui"), kong.Description("interactive terminal advisor"))

	logFile, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, "open log file:", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.NewWithOptions(logFile, log.Options{ReportTimestamp: true})

	bp, err := blueprintio.Load(cli.Blueprint)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load blueprint:", err)
		os.Exit(1)
	}

	adv, err := advisor.New(bp, 4096)
	if err != nil {
		fmt.Fprintln(os.Stderr, "new advisor:", err)
		os.Exit(1)
	}

	model := advisortui.New(adv, logger)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "tui error:", err)
		os.Exit(1)
	}
}
