// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"sort"
	"strings"
)

// OptionDecl is the declarative description of a single option.
type OptionDecl struct {
	// Alias lists alternative names; single-character aliases double as
	// short flags (-v).
	Alias []string
	// Type is one of the primitive types ("count", "string", "number",
	// "float", "boolean"), an array form ("<subtype> array" or "array"),
	// or a custom type key on the owning spec. Empty means untyped
	// (boolean-like).
	Type string
	// Default is filled in after a parse when the option was never named.
	Default any
	// RequiresArg makes naming the option without a value a fatal parse
	// error instead of substituting true or the default.
	RequiresArg bool
	// AllowCmd restricts the option to appear only after one of the named
	// commands.
	AllowCmd []string
	// Desc is shown in usage output.
	Desc string
}

// Option is the normalized, immutable form of an OptionDecl.
type Option struct {
	Name        string
	Aliases     []string
	Type        string // scalar type, or element type when IsArray
	IsArray     bool
	Default     any
	RequiresArg bool
	AllowCmd    []string
	Desc        string

	custom map[string]any // owning spec's custom type table
}

// normalizeOption validates decl and produces the canonical Option. The
// custom table is the owning command's (or root's) custom type rules, used
// both for type validation and later coercion.
func normalizeOption(name string, decl OptionDecl, custom map[string]any) (*Option, error) {
	o := &Option{
		Name:        name,
		Aliases:     decl.Alias,
		Default:     decl.Default,
		RequiresArg: decl.RequiresArg,
		AllowCmd:    decl.AllowCmd,
		Desc:        decl.Desc,
		custom:      custom,
	}
	typ, isArray, err := normalizeType(name, decl.Type, custom)
	if err != nil {
		return nil, err
	}
	o.Type = typ
	o.IsArray = isArray
	return o, nil
}

// normalizeType validates a declared type string and splits array forms into
// their element type. "string array" yields ("string", true); bare "array"
// yields ("", true) for untyped elements.
func normalizeType(owner, typ string, custom map[string]any) (elem string, isArray bool, err error) {
	if typ == "" {
		return "", false, nil
	}
	if typ == TypeArray {
		return "", true, nil
	}
	if sub, ok := strings.CutSuffix(typ, " "+TypeArray); ok {
		if !validScalarType(sub, custom) {
			return "", false, &InvalidTypeError{Owner: owner, Type: typ}
		}
		return sub, true, nil
	}
	if !validScalarType(typ, custom) {
		return "", false, &InvalidTypeError{Owner: owner, Type: typ}
	}
	return typ, false, nil
}

func validScalarType(typ string, custom map[string]any) bool {
	if isPrimitiveType(typ) {
		return true
	}
	_, ok := custom[typ]
	return ok
}

// boolLike reports whether naming the option with no value should record
// true rather than substitute a default.
func (o *Option) boolLike() bool {
	return !o.IsArray && (o.Type == "" || o.Type == TypeBoolean)
}

// convert coerces a single gathered token. Array options convert per
// element using their element type.
func (o *Option) convert(token string) any {
	return Convert(o.Type, token, o.custom)
}

// OptionSet is the option registry for one scope: the root spec or a single
// command. It is built once and read-only during parsing.
type OptionSet struct {
	opts    map[string]*Option
	aliases map[string]string // alias -> canonical name
}

func newOptionSet() *OptionSet {
	return &OptionSet{
		opts:    make(map[string]*Option),
		aliases: make(map[string]string),
	}
}

// add registers an option under its canonical name and every alias,
// rejecting collisions with previously registered options.
func (s *OptionSet) add(o *Option) error {
	if holder, ok := s.holder(o.Name); ok {
		return &DuplicateAliasError{Alias: o.Name, Owner: o.Name, Existing: holder}
	}
	s.opts[o.Name] = o
	for _, alias := range o.Aliases {
		if holder, ok := s.holder(alias); ok {
			return &DuplicateAliasError{Alias: alias, Owner: o.Name, Existing: holder}
		}
		s.aliases[alias] = o.Name
	}
	return nil
}

// holder reports which canonical option, if any, already answers to name.
func (s *OptionSet) holder(name string) (string, bool) {
	if _, ok := s.opts[name]; ok {
		return name, true
	}
	if canonical, ok := s.aliases[name]; ok {
		return canonical, true
	}
	return "", false
}

// Resolve looks a token up by canonical name first, then by alias.
func (s *OptionSet) Resolve(name string) (*Option, bool) {
	if o, ok := s.opts[name]; ok {
		return o, true
	}
	if canonical, ok := s.aliases[name]; ok {
		return s.opts[canonical], true
	}
	return nil, false
}

// Names returns the canonical option names in sorted order.
func (s *OptionSet) Names() []string {
	names := make([]string, 0, len(s.opts))
	for name := range s.opts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
