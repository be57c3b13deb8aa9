// Package main starts an interactive inspection session on the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	inspectcmd "github.com/louisbranch/closerlook/internal/cmd/inspect"
	"github.com/louisbranch/closerlook/internal/platform/config"
)

func main() {
	cfg, err := inspectcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse flags: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := inspectcmd.Run(ctx, cfg, os.Stdin, os.Stdout); config.ExitCode(err) != 0 {
		config.Exitf("inspect: %v", err)
	}
}
