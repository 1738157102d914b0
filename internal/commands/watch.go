// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package commands

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dacolabs/dtogen/internal/output"
	"github.com/dacolabs/dtogen/internal/schema"
	"github.com/dacolabs/dtogen/internal/session"
)

// watchDebounce groups the bursts of events editors emit for a single save.
const watchDebounce = 150 * time.Millisecond

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate DTOs when their definitions change",
		Long: `Watch the definitions directory and regenerate a definition's class every
time its file is written. Generated files are overwritten. Stop with Ctrl+C.`,
		Example: `  # Watch definitions
  dtogen watch`,
		Args:    cobra.NoArgs,
		PreRunE: session.PreRunLoad,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := session.RequireFromCommand(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runWatch(ctx, cmd, s)
		},
	}
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, s *session.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	root := filepath.Join(s.Root, filepath.FromSlash(s.Definitions))
	if err := addDirs(watcher, root); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)\n", s.Definitions)

	pending := make(map[string]bool)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addDirs(watcher, ev.Name)
					continue
				}
			}
			if (!ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create)) || !schema.IsDefinitionFile(ev.Name) {
				continue
			}
			rel, err := s.Rel(ev.Name)
			if err != nil {
				continue
			}
			pending[rel] = true
			timer.Reset(watchDebounce)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			sort.Strings(files)
			clear(pending)

			outcomes := generateFiles(ctx, s, files, s.Config.Workers)
			writeOutcomes(outcomes, output.FileWriter{Force: true}, true)
			printOutcomes(out, s, outcomes)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
		}
	}
}

// addDirs watches dir and every directory below it.
func addDirs(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.Add(p); err != nil {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
		}
		return nil
	})
}
