package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"hoboqc/adapters/excel"
	"hoboqc/adapters/sqlite"
	"hoboqc/adapters/tsv"
	"hoboqc/app"
	"hoboqc/internal/config"
	"hoboqc/internal/logging"
	"hoboqc/ports"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logging.New(cfg.LogLevel)

	primary := tsv.NewPrimaryReader(cfg.Primary.File, cfg.Primary.WarmupRows, cfg.Interval.Start, cfg.Interval.End)

	references := make([]ports.ReferenceReader, 0, len(cfg.Stations))
	for _, st := range cfg.Stations {
		references = append(references, tsv.NewReferenceReader(st.Name, st.File))
	}

	tables := []ports.TableSink{tsv.NewTableWriter(cfg.Output.TableFile)}
	if cfg.Output.ArchiveDB != "" {
		archive, err := sqlite.Open(cfg.Output.ArchiveDB)
		if err != nil {
			return err
		}
		defer archive.Close()
		tables = append(tables, archive)
	}

	var report ports.ReportSink
	if cfg.Output.ReportFile != "" {
		report = excel.NewReportWriter(cfg.Output.ReportFile)
	}

	pipeline := app.NewPipeline(log, primary, references, tables, report)
	res, err := pipeline.Run(context.Background())
	if err != nil {
		log.Error("run failed", "error", err)
		return err
	}

	log.Info("run complete",
		"run_id", res.RunID,
		"hours", res.Summary.TotalHours,
		"regressed", res.Summary.RegressedHours,
		"output", cfg.Output.TableFile,
	)
	return nil
}
