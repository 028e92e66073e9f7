// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"testing"
)

func TestDefaultsPropagation(t *testing.T) {
	e := mustEngine(t, Spec{Options: map[string]OptionDecl{
		"output": {Type: TypeString, Default: "out.txt"},
		"flag":   {},
	}})

	res := e.Parse(nil, 0)
	if got := res.Opt("output"); got != "out.txt" {
		t.Errorf("output = %v, want out.txt", got)
	}
	if res.Source["output"] != SourceDefault {
		t.Errorf("Source[output] = %q, want %q", res.Source["output"], SourceDefault)
	}
	// No declared default means no entry at all.
	if res.Has("flag") {
		t.Errorf("flag = %v, want absent", res.Opt("flag"))
	}

	// An explicit value is never displaced by the default.
	res = e.Parse([]string{"--output", "custom"}, 0)
	if got := res.Opt("output"); got != "custom" {
		t.Errorf("output = %v, want custom", got)
	}
	if res.Source["output"] != SourceCLI {
		t.Errorf("Source[output] = %q, want %q", res.Source["output"], SourceCLI)
	}
}

func TestMergeDefaultsFirstWriterWins(t *testing.T) {
	e := mustEngine(t, Spec{Options: map[string]OptionDecl{
		"output": {Type: TypeString, Default: "out.txt"},
	}})

	res := e.Parse([]string{"--output", "custom"}, 0)
	MergeDefaults(res, map[string]any{
		"output": "from-config",
		"theme":  "dark",
	}, "config")

	if got := res.Opt("output"); got != "custom" {
		t.Errorf("output = %v, want custom (merge must not overwrite)", got)
	}
	if got := res.Opt("theme"); got != "dark" {
		t.Errorf("theme = %v, want dark", got)
	}
	if res.Source["theme"] != "config" {
		t.Errorf("Source[theme] = %q, want config", res.Source["theme"])
	}

	// A second merge under another tag loses to the first.
	MergeDefaults(res, map[string]any{"theme": "light"}, "env")
	if got := res.Opt("theme"); got != "dark" {
		t.Errorf("theme = %v, want dark after second merge", got)
	}
}

func TestMergeDefaultsCommandScope(t *testing.T) {
	e := mustEngine(t, Spec{Commands: map[string]CommandDecl{
		"serve": {
			Options: map[string]OptionDecl{"port": {Type: TypeNumber}},
			Exec:    noopExec,
		},
	}})

	res := e.Parse([]string{"serve"}, 0)
	cc := res.Commands[0]
	cc.MergeDefaults(map[string]any{"port": 8080}, "config")
	if got := cc.Opt("port"); got != 8080 {
		t.Errorf("port = %v, want 8080", got)
	}
	if cc.Source["port"] != "config" {
		t.Errorf("Source[port] = %q, want config", cc.Source["port"])
	}
	if res.Has("port") {
		t.Error("command-scope merge leaked into the root scope")
	}
}
