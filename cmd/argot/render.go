// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/argotrun/argot/pkg/argot"
)

var (
	headerColor  = color.New(color.Bold)
	cliColor     = color.New(color.FgGreen)
	defaultColor = color.New(color.Faint)
	mergedColor  = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	errColor     = color.New(color.FgRed)
)

// sourceColor picks a color by provenance tag so a glance shows where each
// value came from.
func sourceColor(src string) *color.Color {
	switch src {
	case argot.SourceCLI:
		return cliColor
	case argot.SourceDefault:
		return defaultColor
	default:
		return mergedColor
	}
}

// render writes the human-readable view of a parse result.
func render(w io.Writer, res *argot.Result) {
	writeScope(w, "OPTIONS", res.Opts, res.Source)

	for _, cc := range res.Commands {
		title := "COMMAND " + cc.Name
		if cc.Typed != "" && cc.Typed != cc.Name {
			title += " (typed " + cc.Typed + ")"
		}
		if cc.Typed == "" {
			title += " (default)"
		}
		if cc.Unknown {
			title += " " + warnColor.Sprint("[unknown]")
		}
		headerColor.Fprintln(w, title)

		writeKV(w, cc.Opts, cc.Source)
		if len(cc.Args) > 0 {
			for _, name := range sortedAnyKeys(cc.Args) {
				fmt.Fprintf(w, "  %s = %v\n", name, cc.Args[name])
			}
		}
		if cc.Unknown && len(cc.Raw) > 0 {
			fmt.Fprintf(w, "  raw: %q\n", cc.Raw)
		}
	}

	for _, n := range res.Notes {
		c := warnColor
		if n.Kind == argot.NoteParseError {
			c = errColor
		}
		fmt.Fprintf(w, "%s %s\n", c.Sprint("note:"), noteString(n))
	}
}

func writeScope(w io.Writer, title string, opts map[string]any, src map[string]string) {
	if len(opts) == 0 {
		return
	}
	headerColor.Fprintln(w, title)
	writeKV(w, opts, src)
}

func writeKV(w io.Writer, opts map[string]any, src map[string]string) {
	for _, name := range sortedAnyKeys(opts) {
		tag := src[name]
		fmt.Fprintf(w, "  %s = %v %s\n", name, opts[name], sourceColor(tag).Sprintf("(%s)", tag))
	}
}

func noteString(n argot.Note) string {
	switch {
	case n.Err != nil:
		return fmt.Sprintf("%s: %v", n.Kind, n.Err)
	case n.Name != "":
		return fmt.Sprintf("%s: %s", n.Kind, n.Name)
	default:
		return n.Kind.String()
	}
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
