// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"context"
	"sort"
	"strings"
)

// ExecFunc is a command's execution handler. It receives the resolved
// command context after defaults have been applied.
type ExecFunc func(ctx context.Context, cc *CommandContext) error

// CommandDecl is the declarative description of a command.
type CommandDecl struct {
	Alias []string
	// Args is the positional-argument signature, e.g. "<target> [mode]" or
	// "<src> [string dsts...]". Angle brackets mark required arguments,
	// square brackets optional ones; a trailing "..." marks the (single,
	// last) variadic argument, and an optional leading token inside the
	// brackets declares the argument's type.
	Args        string
	Options     map[string]OptionDecl
	SubCommands map[string]CommandDecl
	// Default marks the command to run when no command token is present.
	// A default command must require zero positional arguments and declare
	// an Exec handler.
	Default bool
	Exec    ExecFunc
	// Types declares custom type rules for this command's options and
	// arguments; entries shadow same-named root rules.
	Types map[string]any
	Desc  string
}

// ArgSpec is one normalized positional-argument descriptor. The signature
// DSL is parsed exactly once, at build time; the parser hot path only ever
// reads these.
type ArgSpec struct {
	Name     string
	Type     string
	Required bool
	Variadic bool
}

// Command is the normalized, immutable form of a CommandDecl.
type Command struct {
	Name       string
	Aliases    []string
	Args       []ArgSpec
	NeedArgs   int // required argument count
	ExpectArgs int // total declared arguments
	Variadic   bool
	Options    *OptionSet
	Commands   *CommandSet
	Default    bool
	Exec       ExecFunc
	Desc       string

	types map[string]any // effective custom table: own rules over root's
}

// normalizeCommand validates decl and its whole subtree. rootOpts is the
// root-scope option registry, consulted for cross-scope collisions.
func normalizeCommand(name string, decl CommandDecl, rootOpts *OptionSet, rootTypes map[string]any) (*Command, error) {
	c := &Command{
		Name:    name,
		Aliases: decl.Alias,
		Default: decl.Default,
		Exec:    decl.Exec,
		Desc:    decl.Desc,
		types:   mergeTypes(rootTypes, decl.Types),
	}

	args, err := parseSignature(name, decl.Args, c.types)
	if err != nil {
		return nil, err
	}
	c.Args = args
	c.ExpectArgs = len(args)
	for _, a := range args {
		if a.Required {
			c.NeedArgs++
		}
		if a.Variadic {
			c.Variadic = true
		}
	}

	c.Options = newOptionSet()
	for _, optName := range sortedKeys(decl.Options) {
		if _, ok := rootOpts.holder(optName); ok {
			return nil, &ScopeCollisionError{Command: name, Name: optName}
		}
		o, err := normalizeOption(optName, decl.Options[optName], c.types)
		if err != nil {
			return nil, err
		}
		for _, alias := range o.Aliases {
			if _, ok := rootOpts.holder(alias); ok {
				return nil, &ScopeCollisionError{Command: name, Name: alias}
			}
		}
		if err := c.Options.add(o); err != nil {
			return nil, err
		}
	}

	c.Commands, err = buildCommandSet(decl.SubCommands, rootOpts, c.types)
	if err != nil {
		return nil, err
	}

	if c.Default {
		if c.NeedArgs > 0 {
			return nil, &DefaultCommandError{Command: name, Reason: "default command cannot require arguments"}
		}
		if c.Exec == nil {
			return nil, &DefaultCommandError{Command: name, Reason: "default command needs an exec handler"}
		}
	}
	return c, nil
}

// parseSignature turns the bracket DSL into ArgSpec descriptors. At most one
// variadic argument is allowed and it must be last.
func parseSignature(cmd, sig string, custom map[string]any) ([]ArgSpec, error) {
	var args []ArgSpec
	rest := strings.TrimSpace(sig)
	for rest != "" {
		if rest[0] != '<' && rest[0] != '[' {
			return nil, &SignatureError{Command: cmd, Signature: sig, Reason: "expected '<' or '['"}
		}
		required := rest[0] == '<'
		closer := byte('>')
		if !required {
			closer = ']'
		}
		end := strings.IndexByte(rest, closer)
		if end < 0 {
			return nil, &SignatureError{Command: cmd, Signature: sig, Reason: "unclosed bracket"}
		}
		inner := strings.TrimSpace(rest[1:end])
		rest = strings.TrimSpace(rest[end+1:])

		fields := strings.Fields(inner)
		var a ArgSpec
		switch len(fields) {
		case 1:
			a.Name = fields[0]
		case 2:
			a.Type = fields[0]
			a.Name = fields[1]
		default:
			return nil, &SignatureError{Command: cmd, Signature: sig, Reason: "argument needs a name and at most one type"}
		}
		a.Required = required
		if name, ok := strings.CutSuffix(a.Name, "..."); ok {
			a.Name = name
			a.Variadic = true
		}
		if a.Name == "" {
			return nil, &SignatureError{Command: cmd, Signature: sig, Reason: "empty argument name"}
		}
		if a.Type != "" && !validScalarType(a.Type, custom) {
			return nil, &InvalidTypeError{Owner: cmd, Type: a.Type}
		}
		if len(args) > 0 && args[len(args)-1].Variadic {
			return nil, &SignatureError{Command: cmd, Signature: sig, Reason: "variadic argument must be last"}
		}
		args = append(args, a)
	}
	return args, nil
}

// CommandSet is the command registry for one scope: the root spec or a
// command's sub-commands.
type CommandSet struct {
	cmds    map[string]*Command
	aliases map[string]string
}

func buildCommandSet(decls map[string]CommandDecl, rootOpts *OptionSet, rootTypes map[string]any) (*CommandSet, error) {
	s := &CommandSet{
		cmds:    make(map[string]*Command),
		aliases: make(map[string]string),
	}
	var defaultName string
	for _, name := range sortedKeys(decls) {
		c, err := normalizeCommand(name, decls[name], rootOpts, rootTypes)
		if err != nil {
			return nil, err
		}
		if holder, ok := s.holder(name); ok {
			return nil, &DuplicateAliasError{Alias: name, Owner: name, Existing: holder}
		}
		s.cmds[name] = c
		for _, alias := range c.Aliases {
			if holder, ok := s.holder(alias); ok {
				return nil, &DuplicateAliasError{Alias: alias, Owner: name, Existing: holder}
			}
			s.aliases[alias] = name
		}
		if c.Default {
			if defaultName != "" {
				return nil, &DefaultCommandError{Command: name, Reason: "default command already declared: " + defaultName}
			}
			defaultName = name
		}
	}
	return s, nil
}

func (s *CommandSet) holder(name string) (string, bool) {
	if _, ok := s.cmds[name]; ok {
		return name, true
	}
	if canonical, ok := s.aliases[name]; ok {
		return canonical, true
	}
	return "", false
}

// Resolve looks a token up by canonical name first, then by alias. An
// unmatched token still yields a usable context, marked unknown, so parsing
// can keep collecting whatever follows it.
func (s *CommandSet) Resolve(token string) *CommandContext {
	if c, ok := s.cmds[token]; ok {
		return newCommandContext(c, token)
	}
	if canonical, ok := s.aliases[token]; ok {
		return newCommandContext(s.cmds[canonical], token)
	}
	cc := newCommandContext(nil, token)
	cc.Name = token
	cc.Unknown = true
	return cc
}

// defaultCommand returns the registry's default command, if one exists.
func (s *CommandSet) defaultCommand() *Command {
	for _, c := range s.cmds {
		if c.Default {
			return c
		}
	}
	return nil
}

// Names returns the canonical command names in sorted order.
func (s *CommandSet) Names() []string {
	names := make([]string, 0, len(s.cmds))
	for name := range s.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mergeTypes(root, own map[string]any) map[string]any {
	if len(own) == 0 {
		return root
	}
	merged := make(map[string]any, len(root)+len(own))
	for k, v := range root {
		merged[k] = v
	}
	for k, v := range own {
		merged[k] = v
	}
	return merged
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
