// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dacolabs/dtogen/internal/generate"
	"github.com/dacolabs/dtogen/internal/session"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List DTO definitions",
		Long: `List every definition in the definitions directory with its class,
namespace, output file and whether it currently generates cleanly.`,
		Example: `  # List definitions
  dtogen list`,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runList(cmd, s)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command, s *session.Context) error {
	files, err := s.Loader.List(s.Definitions)
	if err != nil {
		return fmt.Errorf("failed to list definitions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(files) == 0 {
		_, _ = fmt.Fprintf(out, "No definitions in %s.\n", s.Definitions)
		return nil
	}

	outcomes := generateFiles(cmd.Context(), s, files, s.Config.Workers)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "FILE\tCLASS\tNAMESPACE\tOUTPUT\tSTATUS")
	for _, o := range outcomes {
		class, ns, dest, status := dash(o.Class), dash(o.Namespace), "-", "ok"
		if o.Output != "" {
			dest = displayPath(s, o.Output)
		}
		if o.err != nil {
			status = "invalid"
			if ge, ok := generate.AsError(o.err); ok {
				status = string(ge.Kind)
			}
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.File, class, ns, dest, status)
	}

	return w.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
