// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package main is the entry point for the dtogen CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dacolabs/dtogen/cmd/internal"
	"github.com/dacolabs/dtogen/internal/commands"
)

func main() {
	if err := internal.Run(context.Background(), os.Getenv); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", commands.FormatError(err))
		os.Exit(1)
	}
}
