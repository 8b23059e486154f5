// Command advisor-server exposes internal/advisor over a WebSocket
// endpoint so a remote client (TUI, bot, browser dashboard) can request
// recommendations without embedding the blueprint itself.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/cardshark/holdem-solver/internal/advisor"
	"github.com/cardshark/holdem-solver/internal/advisorserver"
	"github.com/cardshark/holdem-solver/internal/blueprintio"
)

var cli struct {
	Blueprint string `help:"path to a blueprint written by solver train" required:""`
	Addr      string `help:"address to listen on" default:":8090"`
	Debug     bool   `help:"enable debug logging"`
}

func main() {
	kong.Parse(&cli, kong.Name("advisor-server"), kong.Description("serve advisor recommendations over WebSocket"))

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if cli.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	bp, err := blueprintio.Load(cli.Blueprint)
	if err != nil {
		logger.Fatal("load blueprint", "error", err)
	}
	logger.Info("blueprint loaded", "infosets", bp.Len())

	adv, err := advisor.New(bp, 16384)
	if err != nil {
		logger.Fatal("new advisor", "error", err)
	}

	srv := advisorserver.New(adv, logger)
	logger.Info("listening", "addr", cli.Addr)
	if err := srv.ListenAndServe(cli.Addr); err != nil {
		logger.Fatal(fmt.Sprintf("server stopped: %v", err))
	}
}
