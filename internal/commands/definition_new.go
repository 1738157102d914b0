// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dacolabs/dtogen/internal/output"
	"github.com/dacolabs/dtogen/internal/paths"
	"github.com/dacolabs/dtogen/internal/prompts"
	"github.com/dacolabs/dtogen/internal/schema"
	"github.com/dacolabs/dtogen/internal/session"
)

type definitionNewOptions struct {
	model     string
	table     string
	namespace string
	force     bool
}

func newDefinitionNewCmd() *cobra.Command {
	opts := &definitionNewOptions{}

	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Scaffold a new DTO definition",
		Long: `Scaffold a new definition file in the definitions directory.

The name may be an entity or table name ("blog_posts") or a class name
("BlogPostDTO"); the class, file, model and table names are derived from it.
Without a name the header is prompted for interactively.`,
		Example: `  # Interactive mode
  dtogen definition new

  # From a table name
  dtogen definition new blog_posts

  # Custom model and namespace
  dtogen definition new Invoice --model App.Billing.Invoice --namespace App.DTO.Billing`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			return runDefinitionNew(cmd, s, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", `Model class (default App\Models\<Entity>)`)
	cmd.Flags().StringVarP(&opts.table, "table", "t", "", "Table name (default derived from the class)")
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", "", "Namespace (default: project namespace)")
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing definition")

	return cmd
}

func runDefinitionNew(cmd *cobra.Command, s *session.Context, args []string, opts *definitionNewOptions) error {
	sk := schema.SkeletonOptions{Model: opts.model, Table: opts.table, Namespace: opts.namespace}

	if len(args) == 1 {
		sk.Class = schema.ClassName(args[0])
	} else {
		if err := prompts.RunDefinitionForm(&sk.Class, &sk.Model, &sk.Table, &sk.Namespace, existingClasses(s)); err != nil {
			return err
		}
	}

	if !paths.IsIdentifier(sk.Class) {
		return fmt.Errorf("class name %q is not a valid identifier", sk.Class)
	}
	if sk.Model == "" {
		sk.Model = `App\Models\` + strings.TrimSuffix(sk.Class, schema.ClassSuffix)
	}
	if sk.Table == "" {
		sk.Table = schema.TableName(sk.Class)
	}
	sk.Model = paths.Canonical(sk.Model)
	if sk.Namespace != "" {
		sk.Namespace = paths.Canonical(sk.Namespace)
	}

	data, err := schema.Skeleton(sk)
	if err != nil {
		return err
	}

	file := path.Join(s.Definitions, schema.FileName(sk.Class))
	if err := (output.FileWriter{Force: opts.force}).Write(filepath.Join(s.Root, filepath.FromSlash(file)), string(data)); err != nil {
		return err
	}

	prompts.FprintResult(cmd.OutOrStdout(), []prompts.ResultField{
		{Label: "Class", Value: sk.Class},
		{Label: "Model", Value: sk.Model},
		{Label: "Table", Value: sk.Table},
		{Label: "File", Value: file},
	}, "Definition created")
	return nil
}

// existingClasses returns the classes declared by loadable definitions.
func existingClasses(s *session.Context) map[string]bool {
	classes := make(map[string]bool)
	files, err := s.Loader.List(s.Definitions)
	if err != nil {
		return classes
	}
	for _, f := range files {
		if def, err := s.Loader.LoadFile(f); err == nil && def.Header.DTO != "" {
			classes[def.Header.DTO] = true
		}
	}
	return classes
}
