// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrParse is the sentinel all fatal parse errors unwrap to. Use
	// errors.Is(res.Err, argot.ErrParse) to distinguish a failed parse from
	// a dispatch failure.
	ErrParse = errors.New("parse failed")

	// ErrNoCommand is returned by Run when the parse succeeded but resolved
	// no command with an execution handler.
	ErrNoCommand = errors.New("no runnable command")
)

// DuplicateAliasError is a configuration error: a name or alias is already
// taken within the same registry.
type DuplicateAliasError struct {
	Alias    string
	Owner    string // entity being registered
	Existing string // entity that already holds the alias
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("alias %q on %q already belongs to %q", e.Alias, e.Owner, e.Existing)
}

// InvalidTypeError is a configuration error: a declared value type is not a
// supported primitive, a valid array form, or a custom type key on the
// owning spec.
type InvalidTypeError struct {
	Owner string
	Type  string
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type %q declared on %q", e.Type, e.Owner)
}

// SignatureError is a configuration error: a command's argument signature
// string is malformed.
type SignatureError struct {
	Command   string
	Signature string
	Reason    string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("bad argument signature %q on command %q: %s", e.Signature, e.Command, e.Reason)
}

// DefaultCommandError is a configuration error: a default command either
// requires positional arguments, lacks an execution handler, or is not the
// only default in its registry.
type DefaultCommandError struct {
	Command string
	Reason  string
}

func (e *DefaultCommandError) Error() string {
	return fmt.Sprintf("invalid default command %q: %s", e.Command, e.Reason)
}

// ScopeCollisionError is a configuration error: a command-scoped option name
// or alias collides with a root-scope option name or alias.
type ScopeCollisionError struct {
	Command string
	Name    string
}

func (e *ScopeCollisionError) Error() string {
	return fmt.Sprintf("option %q on command %q collides with a root option", e.Name, e.Command)
}

// MissingValueError is a fatal parse error: an option declared with
// RequiresArg was named but gathered no value.
type MissingValueError struct {
	Option string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("option --%s requires a value", e.Option)
}

func (e *MissingValueError) Unwrap() error { return ErrParse }

// MissingArgsError is a fatal parse error: a command gathered fewer
// positional arguments than it requires.
type MissingArgsError struct {
	Command string
	Need    int
	Got     int
}

func (e *MissingArgsError) Error() string {
	return fmt.Sprintf("'%s' requires %d argument(s), got %d", e.Command, e.Need, e.Got)
}

func (e *MissingArgsError) Unwrap() error { return ErrParse }

// InternalStateError is a fatal parse error reporting an impossible state
// transition. It indicates a bug in the parser, not in user input.
type InternalStateError struct {
	State string
}

func (e *InternalStateError) Error() string {
	return fmt.Sprintf("internal parser error: unknown state %q", e.State)
}

func (e *InternalStateError) Unwrap() error { return ErrParse }

// NoteKind classifies a non-fatal parse notification.
type NoteKind int

const (
	// NoteUnknownOption reports an option token with no matching spec.
	NoteUnknownOption NoteKind = iota
	// NoteUnknownCommand reports a command token with no matching spec.
	NoteUnknownCommand
	// NoteParseError reports a fatal parse error (also on Result.Err).
	NoteParseError
	// NoteNoRunnable reports that no resolved command carries an exec handler.
	NoteNoRunnable
)

func (k NoteKind) String() string {
	switch k {
	case NoteUnknownOption:
		return "unknown option"
	case NoteUnknownCommand:
		return "unknown command"
	case NoteParseError:
		return "parse error"
	case NoteNoRunnable:
		return "no runnable command"
	}
	return "unknown note"
}

// Note is a single parse notification. Fatal errors produce both a Note and
// Result.Err; unknown-entity notes leave the parse running.
type Note struct {
	Kind NoteKind
	Name string // offending option or command token, if any
	Err  error  // set for NoteParseError
}

// Hooks are optional callbacks invoked synchronously during a parse, as each
// triggering fact is produced. All fields may be nil; every notification is
// also recorded on Result.Notes for callers that prefer to drain a list.
type Hooks struct {
	UnknownOption  func(name string)
	UnknownCommand func(name string)
	ParseError     func(err error)
	NoRunnable     func()
}
