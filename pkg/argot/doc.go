// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package argot is a declarative command-line argument parsing engine.
//
// A CLI is described once, as data: a map of options and a map of commands
// (commands nest arbitrarily and carry their own option scopes). New compiles
// that description into an immutable Engine, and Parse runs a single
// left-to-right scan over a token slice, producing a result tree that records
// which commands were invoked, which options were set, their typed values,
// and where each value came from.
//
// # Basic Usage
//
//	eng, err := argot.New(argot.Spec{
//	    Name: "demo",
//	    Options: map[string]argot.OptionDecl{
//	        "verbose": {Alias: []string{"v"}, Type: "count"},
//	        "output":  {Alias: []string{"o"}, Type: "string", Default: "out.txt"},
//	    },
//	    Commands: map[string]argot.CommandDecl{
//	        "build": {
//	            Args: "<target> [mode]",
//	            Exec: runBuild,
//	        },
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err) // configuration error: bad alias, bad type, bad signature
//	}
//	res := eng.Parse(os.Args, 1)
//	if res.Err != nil {
//	    fmt.Fprintln(os.Stderr, res.Err)
//	    fmt.Fprint(os.Stderr, eng.Usage())
//	    os.Exit(1)
//	}
//
// # Token Syntax
//
//   - Long options: --name, --name=value, --name value
//   - Negation: --no-name sets a boolean option to false
//   - Short options: -x; bundles like -xyz apply every character but the
//     last as a flag/counter and resolve the last one normally
//   - Counters: an option with type "count" increments per occurrence,
//     so -vvv yields 3
//   - Arrays: an option with type "string array" gathers tokens until the
//     next option-looking token
//   - "--" completes whatever is being gathered; array options and variadic
//     command arguments instead keep consuming tokens after it as values
//
// # Value Provenance
//
// Every recorded value carries a source tag: SourceCLI for values named on
// the command line, SourceDefault for declared defaults filled in after the
// parse, or a caller-supplied tag for values merged from an external source
// via MergeDefaults (see package conf for YAML/TOML/environment sources).
// Once a value's source is SourceCLI it is never overwritten.
//
// # Errors
//
// Mistakes in the Spec (duplicate aliases, invalid types, malformed argument
// signatures, bad default commands) are reported by New. Fatal parse errors
// (missing required values or arguments) are surfaced on Result.Err; Parse
// never panics past its caller. Unknown options and commands are tolerated:
// they are recorded in the result, reported on Result.Notes, and parsing
// continues.
//
// An Engine is read-only after New and safe for concurrent use; every Parse
// call builds its own result tree, which the engine never touches again.
package argot
