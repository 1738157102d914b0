// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package session provides project context loading for CLI commands.
package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dacolabs/dtogen/internal/config"
	"github.com/dacolabs/dtogen/internal/generate"
	"github.com/dacolabs/dtogen/internal/paths"
	"github.com/dacolabs/dtogen/internal/schema"
)

var (
	// ErrNotInitialized indicates no dtogen.yaml was found in the current directory.
	ErrNotInitialized = errors.New("not in a dtogen project (dtogen.yaml not found)")

	// ErrInvalidConfig indicates the config file exists but is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrDefinitionsNotFound indicates the definitions directory referenced by config doesn't exist.
	ErrDefinitionsNotFound = errors.New("definitions directory not found")
)

// EnvFileName is the optional dotenv file read next to dtogen.yaml.
const EnvFileName = ".env"

type (
	contextKey struct{}
	envKey     struct{}
)

// Context holds the resolved project configuration and the services built from it.
type Context struct {
	// Root is the absolute project directory.
	Root string
	// Config is the configuration with environment overrides applied.
	Config *config.Config
	// Definitions is the definitions directory, slash-separated and relative to Root.
	Definitions string
	// Loader reads definition files relative to Root.
	Loader *schema.Loader
	// Paths maps namespaces to output files.
	Paths *paths.Resolver
	// Generator turns definitions into PHP sources.
	Generator *generate.Generator
}

// WithEnv stores the environment lookup used by Load.
func WithEnv(ctx context.Context, getenv func(string) string) context.Context {
	return context.WithValue(ctx, envKey{}, getenv)
}

func envFrom(ctx context.Context) func(string) string {
	if getenv, ok := ctx.Value(envKey{}).(func(string) string); ok && getenv != nil {
		return getenv
	}
	return os.Getenv
}

// Load loads the project context from the current working directory and
// returns a new context.Context with the session Context stored in it.
func Load(ctx context.Context) (context.Context, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	s, err := LoadDir(cwd, envFrom(ctx))
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, contextKey{}, s), nil
}

// LoadDir builds a session for the project rooted at dir.
// Variables from a .env file in dir apply when getenv has no value for them.
func LoadDir(dir string, getenv func(string) string) (*Context, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, config.FileName)
	if _, statErr := os.Stat(configPath); errors.Is(statErr, fs.ErrNotExist) {
		return nil, ErrNotInitialized
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	env, err := dotenv(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvFileName, err)
	}
	if err := cfg.ApplyEnv(func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return env[key]
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if validateErr := cfg.Validate(); validateErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, validateErr)
	}

	defs, err := relative(root, cfg.Definitions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if info, err := os.Stat(filepath.Join(root, filepath.FromSlash(defs))); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDefinitionsNotFound, cfg.Definitions)
	}

	pc := cfg.Paths()
	if pc.ProjectRoot == "" {
		pc.ProjectRoot = root
	} else if !filepath.IsAbs(pc.ProjectRoot) {
		pc.ProjectRoot = filepath.Join(root, pc.ProjectRoot)
	}
	if !filepath.IsAbs(pc.OutputDir) {
		pc.OutputDir = filepath.Join(root, pc.OutputDir)
	}

	resolver := paths.New(pc)
	if cfg.Namespace == "" {
		// derive the base namespace from the output directory, e.g. app/DTO -> App\DTO
		ns, err := resolver.NamespaceFromDir(pc.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("%w: cannot derive namespace from output: %v", ErrInvalidConfig, err)
		}
		cfg.Namespace = ns
		pc.BaseNamespace = ns
		resolver = paths.New(pc)
	}

	return &Context{
		Root:        root,
		Config:      cfg,
		Definitions: defs,
		Loader:      schema.NewLoader(os.DirFS(root)),
		Paths:       resolver,
		Generator:   generate.New(cfg.Generator()),
	}, nil
}

// dotenv reads the optional .env file in dir.
func dotenv(dir string) (map[string]string, error) {
	env, err := godotenv.Read(filepath.Join(dir, EnvFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	return env, err
}

// relative converts p to a slash-separated path below root, as io/fs expects.
func relative(root, p string) (string, error) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return "", err
		}
		p = rel
	}
	p = path.Clean(filepath.ToSlash(p))
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("%q is outside the project", p)
	}
	return p, nil
}

// Rel returns file relative to the project root, slash-separated.
func (c *Context) Rel(file string) (string, error) {
	return relative(c.Root, file)
}

// From extracts the session Context from a context.Context.
// Returns nil if no Context is stored.
func From(ctx context.Context) *Context {
	if s, ok := ctx.Value(contextKey{}).(*Context); ok {
		return s
	}
	return nil
}

// FromCommand extracts the session Context from a cobra.Command's context.
// Returns nil if no Context is stored.
func FromCommand(cmd *cobra.Command) *Context {
	if cmd.Context() == nil {
		return nil
	}
	return From(cmd.Context())
}

// RequireFromCommand extracts the session Context from a cobra.Command's context,
// returning an error if not found.
func RequireFromCommand(cmd *cobra.Command) (*Context, error) {
	s := FromCommand(cmd)
	if s == nil {
		return nil, errors.New("project context not loaded")
	}
	return s, nil
}

// PreRunLoad is a cobra PreRunE that loads the project context and stores it
// in the command's context.
func PreRunLoad(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	loaded, err := Load(ctx)
	if err != nil {
		return err
	}
	cmd.SetContext(loaded)
	return nil
}
