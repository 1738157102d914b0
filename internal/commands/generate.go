// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dacolabs/dtogen/internal/output"
	"github.com/dacolabs/dtogen/internal/prompts"
	"github.com/dacolabs/dtogen/internal/schema"
	"github.com/dacolabs/dtogen/internal/session"
)

type generateOptions struct {
	all     bool
	dryRun  bool
	force   bool
	json    bool
	workers int
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate [file...]",
		Short: "Generate PHP classes from DTO definitions",
		Long: `Generate one PHP class per DTO definition.

Files are resolved relative to the project root. Without arguments the
definitions to generate are selected interactively, or all of them with --all.
Each definition is generated independently: a failing definition is reported
and does not stop the others.`,
		Example: `  # Generate a single definition
  dtogen generate database/dto_definitions/user.yaml

  # Generate everything, overwriting existing classes
  dtogen generate --all --force

  # Preview without writing
  dtogen generate --all --dry-run`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runGenerate(cmd, s, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "Generate every definition")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print generated code instead of writing files")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print a JSON summary")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Concurrent generations (default: config value or CPU count)")

	return cmd
}

func runGenerate(cmd *cobra.Command, s *session.Context, args []string, opts *generateOptions) error {
	if opts.all && len(args) > 0 {
		return errors.New("--all and file arguments are mutually exclusive")
	}

	files, err := selectFiles(s, args, opts.all)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no definitions selected")
	}

	workers := opts.workers
	if workers == 0 {
		workers = s.Config.Workers
	}

	var w output.Writer = output.FileWriter{Force: opts.force}
	if opts.dryRun {
		w = &output.MemoryWriter{}
	}

	outcomes := generateFiles(cmd.Context(), s, files, workers)
	failed := writeOutcomes(outcomes, w, !opts.dryRun)

	out := cmd.OutOrStdout()
	switch {
	case opts.json:
		if err := printJSON(out, reports(s, outcomes)); err != nil {
			return err
		}
	case opts.dryRun:
		printCode(out, s, outcomes)
	default:
		printOutcomes(out, s, outcomes)
	}

	if failed > 0 {
		return fmt.Errorf("failed to generate %d of %d definition(s)", failed, len(outcomes))
	}
	return nil
}

// selectFiles resolves the definitions named on the command line, listing or
// prompting when none are given.
func selectFiles(s *session.Context, args []string, all bool) ([]string, error) {
	if len(args) > 0 {
		files := make([]string, 0, len(args))
		for _, a := range args {
			rel, err := s.Rel(a)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", a, err)
			}
			files = append(files, rel)
		}
		return files, nil
	}

	available, err := s.Loader.List(s.Definitions)
	if err != nil {
		return nil, fmt.Errorf("failed to list definitions: %w", err)
	}
	if all || len(available) == 0 {
		return available, nil
	}

	var selected []string
	if err := prompts.RunDefinitionSelect(&selected, available); err != nil {
		return nil, err
	}
	return selected, nil
}

// outcome is the result of generating one definition file.
type outcome struct {
	File      string
	Class     string
	Namespace string
	Output    string
	Written   bool

	code string
	err  error
}

// generateFiles loads and generates files concurrently, keeping their order.
func generateFiles(ctx context.Context, s *session.Context, files []string, workers int) []outcome {
	outcomes := make([]outcome, len(files))
	defs := make([]*schema.Definition, 0, len(files))
	index := make([]int, 0, len(files))
	for i, f := range files {
		outcomes[i].File = f
		def, err := s.Loader.LoadFile(f)
		if err != nil {
			outcomes[i].err = err
			continue
		}
		defs = append(defs, def)
		index = append(index, i)
	}

	for j, r := range s.Generator.GenerateBatch(ctx, defs, workers) {
		o := &outcomes[index[j]]
		if r.Err != nil {
			o.err = r.Err
			continue
		}
		o.Class = r.Artifact.ClassName
		o.Namespace = r.Artifact.Namespace
		o.Output = s.Paths.OutputPath(r.Artifact.ClassName, r.Artifact.Namespace)
		o.code = r.Code
	}
	return outcomes
}

// writeOutcomes persists every successful outcome and returns the number of failures.
func writeOutcomes(outcomes []outcome, w output.Writer, persisted bool) int {
	failed := 0
	for i := range outcomes {
		o := &outcomes[i]
		if o.err == nil {
			if err := w.Write(o.Output, o.code); err != nil {
				o.err = err
			} else {
				o.Written = persisted
			}
		}
		if o.err != nil {
			failed++
		}
	}
	return failed
}

func printOutcomes(out io.Writer, s *session.Context, outcomes []outcome) {
	var fields []prompts.ResultField
	for _, o := range outcomes {
		if o.err == nil {
			fields = append(fields, prompts.ResultField{Label: o.Class, Value: displayPath(s, o.Output)})
		}
	}
	if len(fields) > 0 {
		prompts.FprintResult(out, fields, fmt.Sprintf("Generated %d DTO(s)", len(fields)))
	}

	for _, o := range outcomes {
		if o.err != nil {
			_, _ = fmt.Fprintf(out, "\n%s\n", FormatError(withSource(o.err, o.File)))
		}
	}
}

func printCode(out io.Writer, s *session.Context, outcomes []outcome) {
	for _, o := range outcomes {
		if o.err != nil {
			_, _ = fmt.Fprintf(out, "%s\n\n", FormatError(withSource(o.err, o.File)))
			continue
		}
		_, _ = fmt.Fprintf(out, "// %s\n%s\n", displayPath(s, o.Output), o.code)
	}
}

// report is the JSON form of an outcome.
type report struct {
	File      string       `json:"file"`
	Class     string       `json:"class,omitempty"`
	Namespace string       `json:"namespace,omitempty"`
	Output    string       `json:"output,omitempty"`
	Written   bool         `json:"written"`
	Error     *errorReport `json:"error,omitempty"`
}

func reports(s *session.Context, outcomes []outcome) []report {
	out := make([]report, len(outcomes))
	for i, o := range outcomes {
		out[i] = report{
			File:      o.File,
			Class:     o.Class,
			Namespace: o.Namespace,
			Written:   o.Written,
		}
		if o.Output != "" {
			out[i].Output = displayPath(s, o.Output)
		}
		if o.err != nil {
			out[i].Error = newErrorReport(o.err)
		}
	}
	return out
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// displayPath shows p relative to the project root when possible.
func displayPath(s *session.Context, p string) string {
	if rel, err := filepath.Rel(s.Root, p); err == nil && filepath.IsLocal(rel) {
		return filepath.ToSlash(rel)
	}
	return p
}
