package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flowlens/flowlens/config"
	"github.com/flowlens/flowlens/flow"
	"github.com/flowlens/flowlens/report"
	"github.com/flowlens/flowlens/store"
)

func extractCmd(opts *rootOptions) *cobra.Command {
	var (
		outputDir string
		save      bool
		quiet     bool
	)
	cmd := &cobra.Command{
		Use:   "extract <flow.json>",
		Short: "Extract processors from a flow export and write reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.setup()
			if err != nil {
				return err
			}
			if outputDir != "" {
				cfg.Output.Dir = outputDir
			}
			return runExtract(cfg, log, args[0], save, quiet)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "directory for generated reports")
	cmd.Flags().BoolVar(&save, "save", false, "persist the run to the database")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "skip the console summary")
	return cmd
}

func runExtract(cfg *config.Config, log *logrus.Logger, path string, save, quiet bool) error {
	result, err := flow.ExtractFile(path)
	if err != nil {
		return err
	}

	if result.Recognized() {
		log.WithFields(logrus.Fields{
			"source":     path,
			"pattern":    result.Pattern,
			"processors": len(result.Records),
		}).Info("flow extracted")
	} else {
		log.WithField("source", path).Warn("no recognizable flow structure, 0 processors found")
	}

	if !quiet {
		report.PrintSummary(os.Stdout, result)
	}

	if err := writeReports(cfg, result, path); err != nil {
		return err
	}

	if save {
		st, err := store.Open(cfg.DB.Path)
		if err != nil {
			return err
		}
		run, err := st.SaveRun(path, result)
		if err != nil {
			return err
		}
		log.WithField("run", run.ID).Info("run saved")
	}
	return nil
}

func writeReports(cfg *config.Config, result *flow.Result, source string) error {
	base := baseName(source)
	targets := []struct {
		enabled bool
		suffix  string
		write   func(*os.File) error
	}{
		{cfg.Output.Summary, "_summary.csv", func(f *os.File) error {
			return report.WriteSummary(f, result.Records)
		}},
		{cfg.Output.Key, "_key_processors.csv", func(f *os.File) error {
			return report.WriteKeyProcessors(f, result.Records)
		}},
		{cfg.Output.Matrix, "_property_matrix.csv", func(f *os.File) error {
			return report.WritePropertyMatrix(f, result.Records)
		}},
		{cfg.Output.Markdown, "_report.md", func(f *os.File) error {
			return report.WriteMarkdown(f, result, source, time.Now())
		}},
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", cfg.Output.Dir, err)
	}
	for _, target := range targets {
		if !target.enabled {
			continue
		}
		path := filepath.Join(cfg.Output.Dir, base+target.suffix)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create report %s: %w", path, err)
		}
		writeErr := target.write(f)
		closeErr := f.Close()
		if writeErr != nil {
			return fmt.Errorf("write report %s: %w", path, writeErr)
		}
		if closeErr != nil {
			return fmt.Errorf("close report %s: %w", path, closeErr)
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func baseName(source string) string {
	name := filepath.Base(source)
	ext := filepath.Ext(name)
	return name[:len(name)-len(ext)]
}
