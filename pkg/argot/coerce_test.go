// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"math"
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestConvertPrimitives(t *testing.T) {
	tests := []struct {
		name  string
		typ   string
		token string
		want  any
	}{
		{"number", TypeNumber, "42", 42},
		{"number negative", TypeNumber, "-7", -7},
		{"float", TypeFloat, "3.25", 3.25},
		{"string", TypeString, "hello", "hello"},
		{"string keeps digits", TypeString, "42", "42"},
		{"boolean true", TypeBoolean, "yes", true},
		{"boolean false", TypeBoolean, "no", false},
		{"boolean zero", TypeBoolean, "0", false},
		{"boolean FALSE", TypeBoolean, "FALSE", false},
		{"boolean empty", TypeBoolean, "", false},
		{"untyped truthy", "", "anything", true},
		{"count parses as integer", TypeCount, "3", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.typ, tt.token, nil)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Convert(%q, %q) = %v (%T), want %v (%T)", tt.typ, tt.token, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestConvertPermissiveNaN(t *testing.T) {
	for _, typ := range []string{TypeNumber, TypeFloat} {
		got := Convert(typ, "not-a-number", nil)
		f, ok := got.(float64)
		if !ok || !math.IsNaN(f) {
			t.Errorf("Convert(%q, \"not-a-number\") = %v, want NaN", typ, got)
		}
	}
}

func TestConvertNonStringPassthrough(t *testing.T) {
	if got := Convert(TypeNumber, 42, nil); got != 42 {
		t.Errorf("Convert(number, 42) = %v, want 42 unchanged", got)
	}
	if got := Convert(TypeBoolean, true, nil); got != true {
		t.Errorf("Convert(boolean, true) = %v, want true unchanged", got)
	}
}

func TestConvertCustomTypes(t *testing.T) {
	custom := map[string]any{
		"shout": func(s string) any { return strings.ToUpper(s) },
		"mode":  regexp.MustCompile(`fast|slow`),
		"level": 42,
	}

	if got := Convert("shout", "hey", custom); got != "HEY" {
		t.Errorf("transform custom type = %v, want HEY", got)
	}
	if got := Convert("mode", "go-fast-mode", custom); got != "fast" {
		t.Errorf("pattern custom type = %v, want fast", got)
	}
	if got := Convert("mode", "medium", custom); got != Unresolved {
		t.Errorf("pattern miss = %v, want Unresolved", got)
	}
	// A literal rule substitutes its value verbatim, ignoring the token.
	if got := Convert("level", "whatever", custom); got != 42 {
		t.Errorf("literal custom type = %v, want 42", got)
	}
}

func TestTruthy(t *testing.T) {
	falsy := []string{"", "0", "false", "no", "FALSE", "No"}
	for _, s := range falsy {
		if Truthy(s) {
			t.Errorf("Truthy(%q) = true, want false", s)
		}
	}
	truthy := []string{"1", "true", "yes", "x", "off"}
	for _, s := range truthy {
		if !Truthy(s) {
			t.Errorf("Truthy(%q) = false, want true", s)
		}
	}
}
