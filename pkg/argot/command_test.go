// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseSignature(t *testing.T) {
	tests := []struct {
		name       string
		sig        string
		want       []ArgSpec
		wantNeed   int
		wantExpect int
	}{
		{
			name: "empty",
			sig:  "",
		},
		{
			name:       "required and optional",
			sig:        "<target> [mode]",
			want:       []ArgSpec{{Name: "target", Required: true}, {Name: "mode"}},
			wantNeed:   1,
			wantExpect: 2,
		},
		{
			name:       "typed argument",
			sig:        "<number count> [string label]",
			want:       []ArgSpec{{Name: "count", Type: TypeNumber, Required: true}, {Name: "label", Type: TypeString}},
			wantNeed:   1,
			wantExpect: 2,
		},
		{
			name:       "optional variadic",
			sig:        "<src> [dsts...]",
			want:       []ArgSpec{{Name: "src", Required: true}, {Name: "dsts", Variadic: true}},
			wantNeed:   1,
			wantExpect: 2,
		},
		{
			name:       "required variadic",
			sig:        "<files...>",
			want:       []ArgSpec{{Name: "files", Required: true, Variadic: true}},
			wantNeed:   1,
			wantExpect: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := normalizeCommand("cmd", CommandDecl{Args: tt.sig}, newOptionSet(), nil)
			if err != nil {
				t.Fatalf("normalizeCommand(%q) error = %v", tt.sig, err)
			}
			if diff := cmp.Diff(tt.want, c.Args); diff != "" {
				t.Errorf("Args mismatch (-want +got):\n%s", diff)
			}
			if c.NeedArgs != tt.wantNeed || c.ExpectArgs != tt.wantExpect {
				t.Errorf("arity = (need %d, expect %d), want (need %d, expect %d)",
					c.NeedArgs, c.ExpectArgs, tt.wantNeed, tt.wantExpect)
			}
		})
	}
}

func TestParseSignatureErrors(t *testing.T) {
	sigs := []string{
		"<a> junk <b>",    // stray token between brackets
		"<a",              // unclosed bracket
		"<a...> <b>",      // variadic not last
		"<a...> [b...]",   // two variadics
		"<too many here>", // more than type+name
		"<>",              // empty name
		"[...]",           // name is only the ellipsis
	}
	for _, sig := range sigs {
		_, err := normalizeCommand("cmd", CommandDecl{Args: sig}, newOptionSet(), nil)
		var sigErr *SignatureError
		if !errors.As(err, &sigErr) {
			t.Errorf("normalizeCommand(%q) error = %v, want SignatureError", sig, err)
		}
	}
}

func TestParseSignatureBadType(t *testing.T) {
	_, err := normalizeCommand("cmd", CommandDecl{Args: "<quaternion x>"}, newOptionSet(), nil)
	var typeErr *InvalidTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("error = %v, want InvalidTypeError", err)
	}
}

func TestDefaultCommandValidation(t *testing.T) {
	noop := func(context.Context, *CommandContext) error { return nil }

	tests := []struct {
		name string
		decl CommandDecl
	}{
		{"requires args", CommandDecl{Default: true, Args: "<target>", Exec: noop}},
		{"missing exec", CommandDecl{Default: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizeCommand("cmd", tt.decl, newOptionSet(), nil)
			var defErr *DefaultCommandError
			if !errors.As(err, &defErr) {
				t.Fatalf("error = %v, want DefaultCommandError", err)
			}
		})
	}

	// Optional arguments are fine on a default command.
	if _, err := normalizeCommand("cmd", CommandDecl{Default: true, Args: "[mode]", Exec: noop}, newOptionSet(), nil); err != nil {
		t.Fatalf("default command with optional arg: %v", err)
	}
}

func TestTwoDefaultCommands(t *testing.T) {
	noop := func(context.Context, *CommandContext) error { return nil }
	_, err := buildCommandSet(map[string]CommandDecl{
		"one": {Default: true, Exec: noop},
		"two": {Default: true, Exec: noop},
	}, newOptionSet(), nil)
	var defErr *DefaultCommandError
	if !errors.As(err, &defErr) {
		t.Fatalf("error = %v, want DefaultCommandError", err)
	}
}

func TestCrossScopeCollision(t *testing.T) {
	_, err := New(Spec{
		Options: map[string]OptionDecl{
			"verbose": {Alias: []string{"v"}},
		},
		Commands: map[string]CommandDecl{
			"build": {
				Options: map[string]OptionDecl{
					// Collides with the root alias "v".
					"vector": {Alias: []string{"v"}},
				},
			},
		},
	})
	var scopeErr *ScopeCollisionError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("New() error = %v, want ScopeCollisionError", err)
	}
	if scopeErr.Command != "build" || scopeErr.Name != "v" {
		t.Errorf("ScopeCollisionError = %+v, want build/v", scopeErr)
	}
}

func TestCrossScopeCollisionNested(t *testing.T) {
	// The rule applies to sub-command scopes as well.
	_, err := New(Spec{
		Options: map[string]OptionDecl{"quiet": {}},
		Commands: map[string]CommandDecl{
			"remote": {
				SubCommands: map[string]CommandDecl{
					"add": {Options: map[string]OptionDecl{"quiet": {}}},
				},
			},
		},
	})
	var scopeErr *ScopeCollisionError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("New() error = %v, want ScopeCollisionError", err)
	}
}

func TestCommandSetResolve(t *testing.T) {
	set, err := buildCommandSet(map[string]CommandDecl{
		"build": {Alias: []string{"b"}},
	}, newOptionSet(), nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, tok := range []string{"build", "b"} {
		cc := set.Resolve(tok)
		if cc.Unknown {
			t.Fatalf("Resolve(%q) unknown, want resolved", tok)
		}
		if cc.Name != "build" || cc.Typed != tok {
			t.Errorf("Resolve(%q) = (%q, typed %q), want (build, %q)", tok, cc.Name, cc.Typed, tok)
		}
	}

	cc := set.Resolve("bulid")
	if !cc.Unknown {
		t.Fatal("Resolve(bulid) resolved, want unknown context")
	}
	if cc.Name != "bulid" || cc.Spec() != nil {
		t.Errorf("unknown context = (%q, spec %v), want name bulid with nil spec", cc.Name, cc.Spec())
	}
}

func TestCommandAliasDuplicate(t *testing.T) {
	_, err := buildCommandSet(map[string]CommandDecl{
		"build": {Alias: []string{"x"}},
		"burn":  {Alias: []string{"x"}},
	}, newOptionSet(), nil)
	var dup *DuplicateAliasError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %v, want DuplicateAliasError", err)
	}
}
