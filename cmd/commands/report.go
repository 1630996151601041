// Package commands implements CLI subcommands for mailreport-go.
package commands

import (
	"fmt"
	"os"

	"github.com/greeddj/mailreport-go/internal/app"
	"github.com/greeddj/mailreport-go/internal/client"
	"github.com/greeddj/mailreport-go/internal/config"
	"github.com/greeddj/mailreport-go/internal/progress"
	"github.com/greeddj/mailreport-go/internal/report"
	"github.com/greeddj/mailreport-go/internal/stdout"
	"github.com/greeddj/mailreport-go/internal/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/urfave/cli/v2"
)

// Report scans every mailbox in the configured tenant and writes the detail
// export plus the summary document.
func Report(cCtx *cli.Context) error {
	quiet := cCtx.Bool("quiet")
	verbose := cCtx.Bool("verbose")
	autoConfirm := cCtx.Bool("confirm")
	outputDir := cCtx.String("output")

	spin := stdout.New(quiet, verbose)
	spin.Update("Loading configuration...")

	cfg, err := config.New(cCtx)
	if err != nil {
		spin.Error("Configuration failed")
		return fmt.Errorf("load config: %w", err)
	}

	records := cfg.Records()
	spin.Update(fmt.Sprintf("Found %d mailboxes in directory", len(records)))

	if !autoConfirm {
		spin.Stop()
		ok, err := utils.AskConfirm(fmt.Sprintf("Scan %d mailboxes on %s?", len(records), cfg.Server))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
		spin.Restart()
	}

	scanner := client.NewScanner(cfg.Server, cfg.AdminUser, cfg.AdminPass, cfg.Separator, !cfg.Insecure, nil)
	scanner.SetPrefix("scan")
	scanner.SetProgress(spin)
	scanner.SetVerbose(verbose)

	spin.Stop()

	pw := progress.NewWriter(1, quiet)
	pw.Start()
	reporter := progress.NewReporter(pw, "Scanning mailboxes", len(records))

	result, err := app.Run(cCtx.Context, client.NewTenant(records, scanner), app.Options{
		OutputDir: outputDir,
		Progress:  reporter,
	})

	pw.StopAndClear(1)

	if result != nil && !quiet {
		printWarnings(result.Warnings)
		printResult(cfg.Server, result, verbose)
	}

	if err != nil {
		return fmt.Errorf("report run: %w", err)
	}

	return nil
}

// printWarnings lists non-fatal conditions recorded during the pass.
func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Printf("⚠️  %s\n", w)
	}
	if len(warnings) > 0 {
		fmt.Println()
	}
}

// printResult renders the run outcome as console tables.
func printResult(server string, result *app.Result, verbose bool) {
	summary := result.Summary

	headerTable := table.NewWriter()
	headerTable.SetOutputMirror(os.Stdout)
	headerTable.Style().Options.DrawBorder = false
	headerTable.Style().Options.SeparateColumns = false
	headerTable.SetTitle("Mailbox Usage Report")

	detail := result.DetailPath
	if detail == "" {
		detail = text.FgRed.Sprint("write failed")
	}
	summaryDoc := result.SummaryPath
	if summaryDoc == "" {
		summaryDoc = text.FgRed.Sprint("write failed")
	}

	headerTable.AppendRows([]table.Row{
		{"Server", server},
		{"Detail export", detail},
		{"Summary document", summaryDoc},
	})
	headerTable.Render()
	fmt.Println()

	if verbose && len(summary.Rows) > 0 {
		printRows(summary.Rows)
		fmt.Println()
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false

	t.AppendRows([]table.Row{
		{"Total mailboxes", summary.TotalMailboxes},
		{"User mailboxes", summary.UserMailboxes},
		{"Other mailboxes", summary.OtherMailboxes},
		{"Skipped", result.Skipped},
		{"Total size", report.FormatByteSize(summary.TotalSizeBytes)},
		{"Average size", report.FormatByteSize(summary.AverageSizeBytes())},
		{"User mailbox ratio", fmt.Sprintf("%.1f%%", summary.UserRatio())},
	})
	t.Render()
}

// printRows displays the per-mailbox rows in a formatted table.
func printRows(rows []report.ReportRow) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false

	t.AppendHeader(table.Row{"Mailbox", "Type", "Items", "Size"})

	var totalItems int64
	var totalSize int64

	for _, row := range rows {
		totalItems += row.ItemCount
		totalSize += row.SizeBytes

		t.AppendRow(table.Row{
			row.EmailAddress,
			row.Type,
			row.ItemCount,
			report.FormatByteSize(row.SizeBytes),
		})
	}

	t.AppendFooter(table.Row{
		text.Bold.Sprint(fmt.Sprintf("total mailboxes %d", len(rows))),
		"",
		text.Bold.Sprintf("%d", totalItems),
		text.Bold.Sprint(report.FormatByteSize(totalSize)),
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	t.Render()
}
