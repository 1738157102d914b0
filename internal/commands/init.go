// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dacolabs/dtogen/internal/config"
	"github.com/dacolabs/dtogen/internal/prompts"
)

type initOptions struct {
	definitions    string
	output         string
	namespace      string
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new dtogen project",
		Long: `Initialize a new dtogen project with a dtogen.yaml configuration file
and an empty definitions directory.`,
		Example: `  # Interactive mode
  dtogen init

  # Non-interactive
  dtogen init --output app/Data --namespace App.Data --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			return runInit(cmd, cwd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.definitions, "definitions", "d", config.DefaultDefinitions, "Definitions directory")
	cmd.Flags().StringVarP(&opts.output, "output", "o", config.DefaultOutput, "Output directory for generated classes")
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", "", "Base namespace (derived from --output when empty)")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, opts *initOptions) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return errors.New("dtogen.yaml already exists; project already initialized")
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.definitions, &opts.output, &opts.namespace); err != nil {
			return err
		}
	}

	cfg := config.Default()
	cfg.Definitions = opts.definitions
	cfg.Output = opts.output
	cfg.Namespace = opts.namespace

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	defsDir := cfg.Definitions
	if !filepath.IsAbs(defsDir) {
		defsDir = filepath.Join(dir, defsDir)
	}
	if err := os.MkdirAll(defsDir, 0o750); err != nil {
		return fmt.Errorf("failed to create definitions directory: %w", err)
	}

	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "(derived from output)"
	}
	prompts.FprintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Definitions", Value: cfg.Definitions},
		{Label: "Output", Value: cfg.Output},
		{Label: "Namespace", Value: namespace},
	}, "Initialization completed")
	return nil
}
