// Package cmd wires CLI configuration and subcommands.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/greeddj/mailreport-go/cmd/commands"

	"github.com/urfave/cli/v2"
)

var (
	// gitRef stores the version tag from build-time injection.
	gitRef = "v0.0.0-dev"
	// gitCommit stores the git commit hash from build-time injection.
	gitCommit = "0000000"
	// appName is the application name.
	appName = "mailreport-go"
)

// Run configures and executes the mailreport-go CLI application.
func Run() error {
	cli.VersionPrinter = func(cCtx *cli.Context) {
		fmt.Println(cCtx.App.Version)
	}
	app := &cli.App{
		Name:                   appName,
		Suggest:                false,
		Usage:                  "mailbox usage reporting tool",
		UseShortOptionHandling: true,
		Version:                fmt.Sprintf("%s (%s) // %s", gitRef, gitCommit, runtime.Version()),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to configuration file (JSON or YAML)",
				EnvVars: []string{"MAILREPORT_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "report",
				Usage:  "scan all tenant mailboxes and write the detail export and summary document",
				Action: commands.Report,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   ".",
						Usage:   "directory for the generated report files",
						EnvVars: []string{"MAILREPORT_OUTPUT"},
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"V"},
						Value:   false,
						EnvVars: []string{"MAILREPORT_VERBOSE"},
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Value:   false,
						EnvVars: []string{"MAILREPORT_QUIET"},
					},
					&cli.BoolFlag{
						Name:    "confirm",
						Aliases: []string{"y", "yes"},
						Value:   false,
						Usage:   "auto-confirm (skip confirmation prompt)",
						EnvVars: []string{"MAILREPORT_CONFIRM"},
					},
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		return fmt.Errorf("app.Run: %w", err)
	}
	return nil
}
