package main

import (
	"fmt"
	"os"

	"termedit/config"
	"termedit/editor"

	"github.com/mattn/go-runewidth"
)

func main() {
	// tcell sizes cells with the default condition; keep it in line with
	// buffer.StringWidth under CJK locales.
	runewidth.DefaultCondition.EastAsianWidth = false

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring settings: %v\n", err)
		cfg = config.Default()
	}

	logger, closer, err := config.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	logger.Info("starting", "version", editor.Version, "path", path)
	if err := editor.New(cfg, logger).Run(path); err != nil {
		logger.Error("editor exited", "err", err)
		closer.Close()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
