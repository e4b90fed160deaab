package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Dan9191/finhealth-service/internal/analysis"
	"github.com/Dan9191/finhealth-service/internal/export"
	"github.com/Dan9191/finhealth-service/internal/models"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type scoreOptions struct {
	output  string
	lang    string
	noColor bool
}

func newScoreCmd() *cobra.Command {
	opts := &scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score FILE...",
		Short: "Score one or more snapshot files",
		Long: `Score financial snapshots read from YAML or JSON files. Use "-" to read
from standard input.

Examples:
  # Score a single household in English
  finhealth score household.yaml --lang en

  # Score several files as one XML document
  finhealth score 2023.yaml 2024.yaml -o xml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "human", "Output format (human, json, yaml, xml)")
	cmd.Flags().StringVar(&opts.lang, "lang", string(analysis.DefaultLocale), "Language of generated text (zh, en)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	return cmd
}

func runScore(cmd *cobra.Command, files []string, opts *scoreOptions) error {
	format, err := export.ParseFormat(opts.output)
	if err != nil {
		return err
	}
	loc := analysis.ParseLocale(opts.lang)

	stdinArgs := 0
	for _, path := range files {
		if path == "-" {
			stdinArgs++
		}
	}
	if stdinArgs > 1 {
		return fmt.Errorf("standard input (-) can only be read once")
	}

	snaps := make([]analysis.Snapshot, len(files))
	for i, path := range files {
		snap, err := loadSnapshot(path, cmd.InOrStdin())
		if err != nil {
			return err
		}
		snaps[i] = snap
	}

	reports, err := models.ScoreBatch(cmd.Context(), snaps, loc)
	if err != nil {
		return err
	}

	// Color follows the terminal unless --no-color is given.
	rd := export.Renderer{Color: !opts.noColor && !color.NoColor}
	out := cmd.OutOrStdout()
	if len(reports) == 1 {
		return rd.Render(out, reports[0], format)
	}
	items := make([]export.Item, len(reports))
	for i, r := range reports {
		items[i] = export.Item{Source: files[i], Report: r}
	}
	return rd.RenderBatch(out, items, format)
}

// loadSnapshot decodes a snapshot file. Files ending in .json are read as
// JSON and everything else as YAML.
func loadSnapshot(path string, stdin io.Reader) (analysis.Snapshot, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return analysis.Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}

	var snap analysis.Snapshot
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&snap)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&snap)
		if err == io.EOF {
			err = nil
		}
	}
	if err != nil {
		return analysis.Snapshot{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return snap, nil
}
