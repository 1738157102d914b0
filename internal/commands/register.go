// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package commands contains all CLI command definitions.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/dacolabs/dtogen/internal/session"
)

// NewRootCmd creates and returns the root command for the CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dtogen",
		Short: "Generate PHP data transfer objects from YAML definitions",
		Long: `dtogen turns declarative DTO definitions (YAML or JSON) into PHP classes
with typed constructors, model and array factories, serialization and validation rules.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newGenerateCmd(),
		newListCmd(),
		newInspectCmd(),
		newWatchCmd(),
		newVersionCmd(),
	)
	registerDefinitionCmd(rootCmd)

	return rootCmd
}

func registerDefinitionCmd(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:               "definition",
		Short:             "Manage DTO definitions",
		PersistentPreRunE: session.PreRunLoad,
	}

	cmd.AddCommand(newDefinitionNewCmd())

	parent.AddCommand(cmd)
}
