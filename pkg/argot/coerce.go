// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Supported primitive value types.
const (
	TypeCount   = "count"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeFloat   = "float"
	TypeBoolean = "boolean"
	TypeArray   = "array"
)

// Unresolved is substituted when a pattern-based custom type matches nothing
// in its input token.
var Unresolved = unresolved{}

type unresolved struct{}

func (unresolved) String() string { return "<unresolved>" }

func isPrimitiveType(t string) bool {
	switch t {
	case TypeCount, TypeString, TypeNumber, TypeFloat, TypeBoolean:
		return true
	}
	return false
}

// Convert coerces a textual token into a typed value. Non-string input
// passes through unchanged, so conversion is idempotent.
//
// Numeric parses are deliberately permissive: a token that fails to parse as
// a number or float yields NaN rather than an error. An unrecognized type is
// looked up in custom, the owning spec's table of custom type rules: a
// func(string) any is invoked with the token, a *regexp.Regexp returns its
// first match (or Unresolved), and any other value is substituted verbatim,
// ignoring the token.
func Convert(typ string, token any, custom map[string]any) any {
	s, ok := token.(string)
	if !ok {
		return token
	}
	switch typ {
	case TypeNumber, TypeCount:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return math.NaN()
		}
		return int(n)
	case TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case TypeString:
		return s
	case TypeBoolean, "":
		return Truthy(s)
	}
	if rule, ok := custom[typ]; ok {
		switch r := rule.(type) {
		case func(string) any:
			return r(s)
		case *regexp.Regexp:
			if m := r.FindString(s); m != "" {
				return m
			}
			return Unresolved
		default:
			return r
		}
	}
	return s
}

// Truthy reports the case-insensitive truthiness of a token: "0", "false",
// "no" and the empty string are false, everything else is true.
func Truthy(s string) bool {
	switch strings.ToLower(s) {
	case "", "0", "false", "no":
		return false
	}
	return true
}
