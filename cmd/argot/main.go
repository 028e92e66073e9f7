// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command argot inspects command-line parsing against an HCL manifest. It
// compiles the manifest, optionally layers config-file and environment
// defaults, and renders how a given argument vector resolves: values,
// provenance, commands, arguments and notes.
//
//	argot check -m tool.hcl
//	argot parse -m tool.hcl -- --verbose build app
//	argot usage -m tool.hcl build
//
// The tool's own command line is parsed with the same engine it inspects.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/argotrun/argot/pkg/argot"
	"github.com/argotrun/argot/pkg/conf"
	"github.com/argotrun/argot/pkg/manifest"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "argot: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	manifestPath string
	confPath     string
	envPrefix    string
	jsonOut      bool
}

func run(ctx context.Context) error {
	a := &app{}

	e, err := argot.New(argot.Spec{
		Name: "argot",
		Desc: "inspect command-line parsing against an HCL manifest",
		Options: map[string]argot.OptionDecl{
			"manifest": {
				Alias:       []string{"m"},
				Type:        argot.TypeString,
				RequiresArg: true,
				Desc:        "manifest file to compile",
			},
			"conf": {
				Alias: []string{"c"},
				Type:  argot.TypeString,
				Desc:  "YAML or TOML defaults merged under tag \"config\"",
			},
			"env-prefix": {
				Type: argot.TypeString,
				Desc: "merge environment variables under this prefix, tag \"env\"",
			},
			"json": {Desc: "machine-readable output"},
			"verbose": {
				Alias: []string{"v"},
				Type:  argot.TypeCount,
				Desc:  "increase log verbosity",
			},
		},
		Commands: map[string]argot.CommandDecl{
			"check": {
				Desc: "compile the manifest and report configuration errors",
				Exec: a.runCheck,
			},
			"parse": {
				Args: "[tokens...]",
				Desc: "parse tokens against the manifest (use -- before option-like tokens)",
				Exec: a.runParse,
			},
			"usage": {
				Args: "[path...]",
				Desc: "render usage text, optionally for one command path",
				Exec: a.runUsage,
			},
		},
	})
	if err != nil {
		return err
	}

	// Globals must be in place before a handler runs, so parse and dispatch
	// are split rather than using Run directly.
	res := e.Parse(os.Args, 1)
	a.applyGlobals(res)
	if res.Err != nil {
		return res.Err
	}
	for i := len(res.Commands) - 1; i >= 0; i-- {
		if cc := res.Commands[i]; cc.Runnable() {
			return cc.Spec().Exec(ctx, cc)
		}
	}
	fmt.Print(e.Usage())
	return nil
}

// applyGlobals copies root option values into app state and configures
// logging.
func (a *app) applyGlobals(res *argot.Result) {
	a.manifestPath, _ = res.Opt("manifest").(string)
	a.confPath, _ = res.Opt("conf").(string)
	a.envPrefix, _ = res.Opt("env-prefix").(string)
	a.jsonOut, _ = res.Opt("json").(bool)

	level := slog.LevelWarn
	if n, _ := res.Opt("verbose").(int); n >= 2 {
		level = slog.LevelDebug
	} else if n == 1 {
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadEngine compiles the manifest named by --manifest.
func (a *app) loadEngine() (*argot.Engine, error) {
	if a.manifestPath == "" {
		return nil, fmt.Errorf("no manifest given (use --manifest)")
	}
	spec, err := manifest.Load(a.manifestPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("manifest loaded", "path", a.manifestPath,
		"options", len(spec.Options), "commands", len(spec.Commands))
	return argot.New(spec)
}

func (a *app) runCheck(_ context.Context, _ *argot.CommandContext) error {
	e, err := a.loadEngine()
	if err != nil {
		return err
	}
	fmt.Printf("%s: ok (%d options, %d commands)\n",
		a.manifestPath, len(e.Options().Names()), len(e.Commands().Names()))
	return nil
}

func (a *app) runParse(_ context.Context, cc *argot.CommandContext) error {
	e, err := a.loadEngine()
	if err != nil {
		return err
	}

	res := e.Parse(cc.Raw, 0)
	if err := a.mergeExternal(res, e); err != nil {
		return err
	}

	if a.jsonOut {
		return writeJSON(os.Stdout, res)
	}
	render(os.Stdout, res)
	if res.Err != nil {
		return fmt.Errorf("parse failed: %w", res.Err)
	}
	return nil
}

// mergeExternal layers config-file and environment defaults onto the root
// scope, each under its own provenance tag. Command-line values, having been
// written first, are untouched.
func (a *app) mergeExternal(res *argot.Result, e *argot.Engine) error {
	if a.confPath != "" {
		values, err := conf.Load(a.confPath)
		if err != nil {
			return err
		}
		slog.Info("merging config defaults", "path", a.confPath, "keys", len(values))
		argot.MergeDefaults(res, values, "config")
	}
	if a.envPrefix != "" {
		values := conf.FromEnv(a.envPrefix, e.Options().Names())
		slog.Info("merging environment defaults", "prefix", a.envPrefix, "keys", len(values))
		argot.MergeDefaults(res, values, "env")
	}
	return nil
}

func (a *app) runUsage(_ context.Context, cc *argot.CommandContext) error {
	e, err := a.loadEngine()
	if err != nil {
		return err
	}
	path := make([]string, 0, len(cc.Raw))
	path = append(path, cc.Raw...)
	if len(path) == 0 {
		fmt.Print(e.Usage())
		return nil
	}
	text, err := e.CommandUsage(path...)
	if err != nil {
		return err
	}
	fmt.Print(text)
	return nil
}

// jsonResult is the machine-readable projection of a parse result.
type jsonResult struct {
	Opts     map[string]any    `json:"opts"`
	Source   map[string]string `json:"source"`
	Commands []jsonCommand     `json:"commands,omitempty"`
	Notes    []string          `json:"notes,omitempty"`
	Error    string            `json:"error,omitempty"`
	Index    int               `json:"index"`
}

type jsonCommand struct {
	Name    string            `json:"name"`
	Typed   string            `json:"typed,omitempty"`
	Unknown bool              `json:"unknown,omitempty"`
	Opts    map[string]any    `json:"opts,omitempty"`
	Source  map[string]string `json:"source,omitempty"`
	Args    map[string]any    `json:"args,omitempty"`
	Raw     []string          `json:"raw,omitempty"`
}

func writeJSON(w io.Writer, res *argot.Result) error {
	out := jsonResult{
		Opts:   res.Opts,
		Source: res.Source,
		Index:  res.Index,
	}
	for _, cc := range res.Commands {
		out.Commands = append(out.Commands, jsonCommand{
			Name:    cc.Name,
			Typed:   cc.Typed,
			Unknown: cc.Unknown,
			Opts:    cc.Opts,
			Source:  cc.Source,
			Args:    cc.Args,
			Raw:     cc.Raw,
		})
	}
	for _, n := range res.Notes {
		out.Notes = append(out.Notes, noteString(n))
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
