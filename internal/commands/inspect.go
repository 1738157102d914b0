// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dacolabs/dtogen/internal/generate"
	"github.com/dacolabs/dtogen/internal/session"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the generated artifact for a definition as JSON",
		Long: `Show the intermediate artifact a definition generates: resolved types,
defaults, imports, validation rules and injected fields, as JSON.`,
		Example: `  # Inspect a definition
  dtogen inspect database/dto_definitions/user.yaml`,
		Args:    cobra.ExactArgs(1),
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runInspect(cmd, s, args[0])
		},
	}
	return cmd
}

type inspection struct {
	*generate.Artifact
	Output string `json:"output"`
}

func runInspect(cmd *cobra.Command, s *session.Context, file string) error {
	rel, err := s.Rel(file)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	def, err := s.Loader.LoadFile(rel)
	if err != nil {
		return err
	}
	a, err := s.Generator.Build(def)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), inspection{
		Artifact: a,
		Output:   displayPath(s, s.Paths.OutputPath(a.ClassName, a.Namespace)),
	})
}
