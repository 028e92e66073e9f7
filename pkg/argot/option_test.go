// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"errors"
	"testing"
)

func TestNormalizeOptionTypes(t *testing.T) {
	custom := map[string]any{"mode": 1}

	tests := []struct {
		name      string
		typ       string
		wantType  string
		wantArray bool
		wantErr   bool
	}{
		{"untyped", "", "", false, false},
		{"boolean", "boolean", TypeBoolean, false, false},
		{"count", "count", TypeCount, false, false},
		{"bare array", "array", "", true, false},
		{"string array", "string array", TypeString, true, false},
		{"number array", "number array", TypeNumber, true, false},
		{"custom scalar", "mode", "mode", false, false},
		{"custom array", "mode array", "mode", true, false},
		{"bogus", "quaternion", "", false, true},
		{"bogus array elem", "quaternion array", "", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := normalizeOption("opt", OptionDecl{Type: tt.typ}, custom)
			if tt.wantErr {
				var typeErr *InvalidTypeError
				if !errors.As(err, &typeErr) {
					t.Fatalf("normalizeOption(%q) error = %v, want InvalidTypeError", tt.typ, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeOption(%q) error = %v", tt.typ, err)
			}
			if o.Type != tt.wantType || o.IsArray != tt.wantArray {
				t.Errorf("normalizeOption(%q) = (%q, array=%v), want (%q, array=%v)",
					tt.typ, o.Type, o.IsArray, tt.wantType, tt.wantArray)
			}
		})
	}
}

func TestOptionSetResolve(t *testing.T) {
	s := newOptionSet()
	o, err := normalizeOption("verbose", OptionDecl{Alias: []string{"v", "chatty"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.add(o); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"verbose", "v", "chatty"} {
		got, ok := s.Resolve(name)
		if !ok {
			t.Fatalf("Resolve(%q) not found", name)
		}
		if got.Name != "verbose" {
			t.Errorf("Resolve(%q).Name = %q, want verbose", name, got.Name)
		}
	}
	if _, ok := s.Resolve("quiet"); ok {
		t.Error("Resolve(quiet) found, want not-found")
	}
}

func TestOptionSetDuplicateAlias(t *testing.T) {
	s := newOptionSet()
	first, _ := normalizeOption("verbose", OptionDecl{Alias: []string{"v"}}, nil)
	if err := s.add(first); err != nil {
		t.Fatal(err)
	}

	second, _ := normalizeOption("version", OptionDecl{Alias: []string{"v"}}, nil)
	err := s.add(second)
	var dup *DuplicateAliasError
	if !errors.As(err, &dup) {
		t.Fatalf("add() error = %v, want DuplicateAliasError", err)
	}
	if dup.Alias != "v" || dup.Existing != "verbose" || dup.Owner != "version" {
		t.Errorf("DuplicateAliasError = %+v, want alias v owned by verbose, claimed by version", dup)
	}
}

func TestOptionSetNameCollision(t *testing.T) {
	s := newOptionSet()
	first, _ := normalizeOption("out", OptionDecl{}, nil)
	if err := s.add(first); err != nil {
		t.Fatal(err)
	}

	// An alias shadowing an existing canonical name is a collision too.
	second, _ := normalizeOption("output", OptionDecl{Alias: []string{"out"}}, nil)
	var dup *DuplicateAliasError
	if err := s.add(second); !errors.As(err, &dup) {
		t.Fatalf("add() error = %v, want DuplicateAliasError", err)
	}
}
