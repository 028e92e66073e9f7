// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifest loads a CLI specification from an HCL manifest, so a
// tool's option and command surface can live in a file instead of Go code.
//
// A manifest looks like:
//
//	name        = "mytool"
//	description = "does things"
//
//	type "mode" {
//	  pattern = "fast|slow"
//	}
//
//	option "verbose" {
//	  alias = ["v"]
//	  type  = "count"
//	}
//
//	command "build" {
//	  args = "<target> [mode]"
//	  option "jobs" {
//	    type    = "number"
//	    default = 4
//	  }
//	}
//
// The loaded Spec carries no execution handlers; attach those with Bind.
package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/argotrun/argot/pkg/argot"
)

// manifestFile is the top-level structure of a manifest for decoding.
type manifestFile struct {
	Name        *string         `hcl:"name"`
	Description *string         `hcl:"description"`
	Types       []*typeBlock    `hcl:"type,block"`
	Options     []*optionBlock  `hcl:"option,block"`
	Commands    []*commandBlock `hcl:"command,block"`
}

// typeBlock declares one custom type rule: a regular-expression pattern or a
// literal value substituted verbatim.
type typeBlock struct {
	Name    string    `hcl:"name,label"`
	Pattern *string   `hcl:"pattern"`
	Literal cty.Value `hcl:"literal,optional"`
}

type optionBlock struct {
	Name        string    `hcl:"name,label"`
	Alias       []string  `hcl:"alias,optional"`
	Type        *string   `hcl:"type"`
	Default     cty.Value `hcl:"default,optional"`
	RequiresArg *bool     `hcl:"requires_arg"`
	AllowCmd    []string  `hcl:"allow_cmd,optional"`
	Desc        *string   `hcl:"desc"`
}

type commandBlock struct {
	Name     string          `hcl:"name,label"`
	Alias    []string        `hcl:"alias,optional"`
	Args     *string         `hcl:"args"`
	Desc     *string         `hcl:"desc"`
	Default  *bool           `hcl:"default"`
	Types    []*typeBlock    `hcl:"type,block"`
	Options  []*optionBlock  `hcl:"option,block"`
	Commands []*commandBlock `hcl:"command,block"`
}

// Load reads and decodes the manifest at path.
func Load(path string) (argot.Spec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return argot.Spec{}, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
	}

	var mf manifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &mf); diags.HasErrors() {
		return argot.Spec{}, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
	}
	return buildSpec(&mf)
}

// Parse decodes a manifest from src. filename is used in diagnostics only.
func Parse(src []byte, filename string) (argot.Spec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return argot.Spec{}, fmt.Errorf("failed to parse manifest %s: %w", filename, diags)
	}

	var mf manifestFile
	if diags := gohcl.DecodeBody(file.Body, nil, &mf); diags.HasErrors() {
		return argot.Spec{}, fmt.Errorf("failed to decode manifest %s: %w", filename, diags)
	}
	return buildSpec(&mf)
}

func buildSpec(mf *manifestFile) (argot.Spec, error) {
	spec := argot.Spec{}
	if mf.Name != nil {
		spec.Name = *mf.Name
	}
	if mf.Description != nil {
		spec.Desc = *mf.Description
	}

	var err error
	if spec.Types, err = buildTypes(mf.Types); err != nil {
		return argot.Spec{}, err
	}
	if spec.Options, err = buildOptions(mf.Options); err != nil {
		return argot.Spec{}, err
	}
	if spec.Commands, err = buildCommands(mf.Commands); err != nil {
		return argot.Spec{}, err
	}
	return spec, nil
}

func buildTypes(blocks []*typeBlock) (map[string]any, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	types := make(map[string]any, len(blocks))
	for _, b := range blocks {
		switch {
		case b.Pattern != nil:
			re, err := regexp.Compile(*b.Pattern)
			if err != nil {
				return nil, fmt.Errorf("type %q: invalid pattern: %w", b.Name, err)
			}
			types[b.Name] = re
		case !b.Literal.IsNull():
			lit, err := ctyToNative(b.Literal)
			if err != nil {
				return nil, fmt.Errorf("type %q: %w", b.Name, err)
			}
			types[b.Name] = lit
		default:
			return nil, fmt.Errorf("type %q declares neither pattern nor literal", b.Name)
		}
	}
	return types, nil
}

func buildOptions(blocks []*optionBlock) (map[string]argot.OptionDecl, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	opts := make(map[string]argot.OptionDecl, len(blocks))
	for _, b := range blocks {
		if _, ok := opts[b.Name]; ok {
			return nil, fmt.Errorf("option %q declared twice", b.Name)
		}
		decl := argot.OptionDecl{
			Alias:    b.Alias,
			AllowCmd: b.AllowCmd,
		}
		if b.Type != nil {
			decl.Type = *b.Type
		}
		if b.RequiresArg != nil {
			decl.RequiresArg = *b.RequiresArg
		}
		if b.Desc != nil {
			decl.Desc = *b.Desc
		}
		if !b.Default.IsNull() {
			def, err := ctyToNative(b.Default)
			if err != nil {
				return nil, fmt.Errorf("option %q: invalid default: %w", b.Name, err)
			}
			decl.Default = def
		}
		opts[b.Name] = decl
	}
	return opts, nil
}

func buildCommands(blocks []*commandBlock) (map[string]argot.CommandDecl, error) {
	if len(blocks) == 0 {
		return nil, nil
	}
	cmds := make(map[string]argot.CommandDecl, len(blocks))
	for _, b := range blocks {
		if _, ok := cmds[b.Name]; ok {
			return nil, fmt.Errorf("command %q declared twice", b.Name)
		}
		decl := argot.CommandDecl{Alias: b.Alias}
		if b.Args != nil {
			decl.Args = *b.Args
		}
		if b.Desc != nil {
			decl.Desc = *b.Desc
		}
		if b.Default != nil {
			decl.Default = *b.Default
		}

		var err error
		if decl.Types, err = buildTypes(b.Types); err != nil {
			return nil, fmt.Errorf("command %q: %w", b.Name, err)
		}
		if decl.Options, err = buildOptions(b.Options); err != nil {
			return nil, fmt.Errorf("command %q: %w", b.Name, err)
		}
		if decl.SubCommands, err = buildCommands(b.Commands); err != nil {
			return nil, fmt.Errorf("command %q: %w", b.Name, err)
		}
		cmds[b.Name] = decl
	}
	return cmds, nil
}

// Bind attaches execution handlers to a loaded specification. Keys are
// space-separated command paths from the root, e.g. "build" or "remote add".
// Binding a handler to a path the spec does not declare is an error.
//
// A default command loaded from a manifest must be bound before the spec is
// compiled, since the engine rejects a default without a handler.
func Bind(spec *argot.Spec, handlers map[string]argot.ExecFunc) error {
	for path, fn := range handlers {
		if err := bindOne(spec.Commands, strings.Fields(path), path, fn); err != nil {
			return err
		}
	}
	return nil
}

func bindOne(cmds map[string]argot.CommandDecl, path []string, full string, fn argot.ExecFunc) error {
	if len(path) == 0 {
		return fmt.Errorf("empty handler path")
	}
	decl, ok := cmds[path[0]]
	if !ok {
		return fmt.Errorf("no command at path %q", full)
	}
	if len(path) == 1 {
		decl.Exec = fn
		cmds[path[0]] = decl
		return nil
	}
	if err := bindOne(decl.SubCommands, path[1:], full, fn); err != nil {
		return err
	}
	cmds[path[0]] = decl
	return nil
}
