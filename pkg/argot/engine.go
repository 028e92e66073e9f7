// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

// Spec is the declarative description of a whole CLI: root options, root
// commands, and custom type rules. It is plain data; New compiles it.
type Spec struct {
	// Name is the program name used in usage output.
	Name string
	// Desc is a one-line program description for usage output.
	Desc string
	// Options declares the root-scope options.
	Options map[string]OptionDecl
	// Commands declares the root-scope commands.
	Commands map[string]CommandDecl
	// Types declares custom type rules available to every scope. A rule is
	// a func(string) any transform, a *regexp.Regexp pattern, or a literal
	// value substituted verbatim.
	Types map[string]any
}

// Engine is a compiled Spec. It is immutable after New (Hooks aside, which
// callers set once before parsing) and safe to share across any number of
// concurrent Parse calls.
type Engine struct {
	// Hooks, when set, receive notifications synchronously during a parse.
	Hooks Hooks

	name       string
	desc       string
	opts       *OptionSet
	cmds       *CommandSet
	types      map[string]any
	defaultCmd *Command
}

// New validates spec and compiles it into an Engine. Every configuration
// error — duplicate alias, invalid type, malformed argument signature,
// cross-scope option collision, bad default command — is reported here,
// before any parsing can happen.
func New(spec Spec) (*Engine, error) {
	e := &Engine{
		name:  spec.Name,
		desc:  spec.Desc,
		types: spec.Types,
		opts:  newOptionSet(),
	}

	for _, name := range sortedKeys(spec.Options) {
		o, err := normalizeOption(name, spec.Options[name], spec.Types)
		if err != nil {
			return nil, err
		}
		if err := e.opts.add(o); err != nil {
			return nil, err
		}
	}

	cmds, err := buildCommandSet(spec.Commands, e.opts, spec.Types)
	if err != nil {
		return nil, err
	}
	e.cmds = cmds
	e.defaultCmd = cmds.defaultCommand()
	return e, nil
}

// Options returns the root-scope option registry.
func (e *Engine) Options() *OptionSet { return e.opts }

// Commands returns the root-scope command registry.
func (e *Engine) Commands() *CommandSet { return e.cmds }

// Command returns the named root command, resolving aliases.
func (e *Engine) Command(name string) (*Command, bool) {
	if c, ok := e.cmds.cmds[name]; ok {
		return c, true
	}
	if canonical, ok := e.cmds.aliases[name]; ok {
		return e.cmds.cmds[canonical], true
	}
	return nil, false
}
