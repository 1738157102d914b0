// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunDefinitionForm prompts for the header of a new definition.
// existing holds class names that are already defined.
func RunDefinitionForm(class, model, table, namespace *string, existing map[string]bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("DTO class").
				Placeholder("e.g., UserDTO").
				Validate(identifierValidator(existing)).
				Value(class),
			huh.NewInput().
				Title("Model class").
				Placeholder(`App\Models\User`).
				Validate(namespaceValidator(false)).
				Value(model),
			huh.NewInput().
				Title("Table").
				Placeholder("users").
				Value(table),
			huh.NewInput().
				Title("Namespace").
				Description("Leave empty to use the project namespace").
				Validate(namespaceValidator(true)).
				Value(namespace),
		),
	).WithTheme(Theme()).Run()
}

// RunDefinitionSelect prompts for the definitions to generate.
func RunDefinitionSelect(selected *[]string, available []string) error {
	options := make([]huh.Option[string], len(available))
	for i, f := range available {
		options[i] = huh.NewOption(f, f)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Definitions to generate").
				Options(options...).
				Value(selected),
		),
	).WithTheme(Theme()).Run()
}
