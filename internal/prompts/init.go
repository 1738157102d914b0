// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(definitions, output, namespace *string) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Definitions directory").
				Placeholder("database/dto_definitions").
				Validate(requiredValidator("definitions directory")).
				Value(definitions),
			huh.NewInput().
				Title("Output directory").
				Placeholder("app/DTO").
				Validate(requiredValidator("output directory")).
				Value(output),
			huh.NewInput().
				Title("Base namespace").
				Description("Leave empty to derive it from the output directory").
				Placeholder(`App\DTO`).
				Validate(namespaceValidator(true)).
				Value(namespace),
		),
	).WithTheme(Theme()).Run()
}
