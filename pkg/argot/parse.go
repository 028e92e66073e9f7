// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"slices"
	"strings"
)

// Value provenance tags. Callers may introduce further tags via
// MergeDefaults; once a value is tagged SourceCLI it is never replaced.
const (
	SourceCLI     = "cli"
	SourceDefault = "default"
)

const terminator = "--"

// Result is the outcome of one Parse call. The root-level maps hold values
// for root-scope (and unknown, command-less) options; Commands holds one
// context per command token encountered, in order.
type Result struct {
	Opts     map[string]any
	Source   map[string]string
	Verbatim map[string][]string
	Commands []*CommandContext
	// Notes records soft conditions (unknown entities) and the fatal error,
	// if any, in the order they were produced.
	Notes []Note
	// Err is the fatal parse error, or nil. A failed parse still returns
	// the partial result accumulated up to the failure.
	Err error
	// Index is the position of the first token Parse did not consume.
	Index int
}

// Opt returns the root-scope value recorded for name, or nil.
func (r *Result) Opt(name string) any { return r.Opts[name] }

// Has reports whether a root-scope value was recorded for name.
func (r *Result) Has(name string) bool {
	_, ok := r.Opts[name]
	return ok
}

// CommandContext is the per-command-instance parse context. After Parse
// returns it is owned entirely by the caller; it holds no reference into
// parser state.
type CommandContext struct {
	// Name is the resolved long name; for unknown commands it is the token
	// as typed.
	Name string
	// Typed is the name as it appeared on the command line ("" when the
	// context was activated as the default command).
	Typed string
	// Unknown marks a command token that matched no specification.
	Unknown bool
	// Opts, Source and Verbatim record this command's scoped option values.
	Opts     map[string]any
	Source   map[string]string
	Verbatim map[string][]string
	// Args maps declared argument names to converted values; a variadic
	// argument receives the whole trailing sequence as []any.
	Args map[string]any
	// Raw is the ordered list of positional tokens gathered for this
	// command, before conversion.
	Raw []string

	cmd       *Command
	afterTerm bool
}

func newCommandContext(c *Command, typed string) *CommandContext {
	cc := &CommandContext{
		Typed:    typed,
		Opts:     make(map[string]any),
		Source:   make(map[string]string),
		Verbatim: make(map[string][]string),
		Args:     make(map[string]any),
		cmd:      c,
	}
	if c != nil {
		cc.Name = c.Name
	}
	return cc
}

// Spec returns the normalized command specification, or nil for an unknown
// command.
func (cc *CommandContext) Spec() *Command { return cc.cmd }

// Runnable reports whether the context resolved to a command with an exec
// handler.
func (cc *CommandContext) Runnable() bool { return cc.cmd != nil && cc.cmd.Exec != nil }

// Opt returns the command-scoped value recorded for name, or nil.
func (cc *CommandContext) Opt(name string) any { return cc.Opts[name] }

// Arg returns the converted positional argument bound to name, or nil.
func (cc *CommandContext) Arg(name string) any { return cc.Args[name] }

type pstate int

const (
	stateParsing   pstate = iota // classifying tokens
	stateGatherOpt               // accumulating value tokens for an option
	stateGatherCmd               // accumulating a command's positional arguments
)

func (s pstate) String() string {
	switch s {
	case stateParsing:
		return "PARSING"
	case stateGatherOpt:
		return "GATHERING_OPT_PARAMS"
	case stateGatherCmd:
		return "GATHERING_CMD_PARAMS"
	}
	return "INVALID"
}

// sink is where an option occurrence records its value: either the root
// result maps or a command context's maps.
type sink struct {
	opts map[string]any
	src  map[string]string
	verb map[string][]string
}

func (s sink) set(name string, v any, source string, verbatim []string) {
	s.opts[name] = v
	s.src[name] = source
	s.verb[name] = append(s.verb[name], verbatim...)
}

// optFrame is the in-flight state of one option occurrence that is (or may
// be) gathering value tokens.
type optFrame struct {
	opt       *Option
	name      string // canonical
	snk       sink
	tokens    []string
	verbatim  []string
	afterTerm bool
}

// parser is the per-invocation state machine. The explicit stack holds the
// state suspended when option gathering interrupts command-argument
// gathering; its depth is bounded by that one level of nesting.
type parser struct {
	e      *Engine
	res    *Result
	state  pstate
	stack  []pstate
	opt    *optFrame
	active *CommandContext
}

// zeroCommands is the registry scope under an unknown command: it resolves
// nothing, so every command token beneath stays unknown but still collected.
var zeroCommands = &CommandSet{cmds: map[string]*Command{}, aliases: map[string]string{}}

// Parse scans argv left to right starting at index start (use 1 to skip the
// program name in os.Args). It never panics: fatal conditions abort the
// scan and are reported on Result.Err, soft conditions land on
// Result.Notes. The returned tree is fully owned by the caller.
func (e *Engine) Parse(argv []string, start int) *Result {
	res := &Result{
		Opts:     make(map[string]any),
		Source:   make(map[string]string),
		Verbatim: make(map[string][]string),
	}
	p := &parser{e: e, res: res, state: stateParsing}

	if start < 0 {
		start = 0
	}
	i := start
	var perr error
	for i < len(argv) && perr == nil {
		tok := argv[i]
		switch p.state {
		case stateParsing:
			switch {
			case tok == terminator:
				i++ // nothing in progress; dropped
			case isOptionToken(tok):
				i, perr = p.beginOption(argv, i)
			default:
				p.beginCommand(tok)
				i++
			}

		case stateGatherOpt:
			f := p.opt
			switch {
			case f.afterTerm:
				f.tokens = append(f.tokens, tok)
				f.verbatim = append(f.verbatim, tok)
				i++
			case tok == terminator:
				if f.opt.IsArray {
					f.afterTerm = true // unbounded arity keeps consuming
				} else {
					perr = p.finishOpt()
				}
				i++
			case isOptionToken(tok):
				perr = p.finishOpt() // tok reprocessed in the resumed state
			default:
				f.tokens = append(f.tokens, tok)
				f.verbatim = append(f.verbatim, tok)
				i++
				if !f.opt.IsArray {
					perr = p.finishOpt()
				}
			}

		case stateGatherCmd:
			cc := p.active
			switch {
			case cc.afterTerm:
				cc.Raw = append(cc.Raw, tok)
				i++
			case tok == terminator:
				if cc.unbounded() {
					cc.afterTerm = true
				} else {
					perr = p.finishCmdGather()
				}
				i++
			case isOptionToken(tok):
				i, perr = p.beginOption(argv, i) // suspends this state
			default:
				cc.Raw = append(cc.Raw, tok)
				i++
				if cc.cmd != nil && !cc.cmd.Variadic && len(cc.Raw) == cc.cmd.ExpectArgs {
					perr = p.finishCmdGather()
				}
			}

		default:
			perr = &InternalStateError{State: p.state.String()}
		}
	}

	// End of input forces completion of whatever is still gathering.
	if perr == nil && p.state == stateGatherOpt {
		perr = p.finishOpt()
	}
	if perr == nil && p.state == stateGatherCmd {
		perr = p.finishCmdGather()
	}
	res.Index = i

	if perr != nil {
		res.Err = perr
		p.note(Note{Kind: NoteParseError, Err: perr})
		if e.Hooks.ParseError != nil {
			e.Hooks.ParseError(perr)
		}
		return res
	}

	p.activateDefaultCommand()
	p.applyDefaults()
	p.checkRunnable()
	return res
}

// unbounded reports whether the context keeps gathering past the "--"
// terminator: declared-variadic commands and unknown (zero-spec) commands do.
func (cc *CommandContext) unbounded() bool {
	return cc.Unknown || (cc.cmd != nil && cc.cmd.Variadic)
}

func (p *parser) note(n Note) {
	p.res.Notes = append(p.res.Notes, n)
}

func (p *parser) rootSink() sink {
	return sink{opts: p.res.Opts, src: p.res.Source, verb: p.res.Verbatim}
}

func ctxSink(cc *CommandContext) sink {
	return sink{opts: cc.Opts, src: cc.Source, verb: cc.Verbatim}
}

// activeSink is where unscoped values (unknown options) land: the active
// command context if one exists, else the root result.
func (p *parser) activeSink() sink {
	if p.active != nil {
		return ctxSink(p.active)
	}
	return p.rootSink()
}

// beginCommand resolves a command token against the active registry scope
// and activates the resulting context. Unknown tokens still produce a
// context so that whatever follows them is collected.
func (p *parser) beginCommand(tok string) {
	scope := p.e.cmds
	if p.active != nil {
		if p.active.cmd != nil {
			scope = p.active.cmd.Commands
		} else {
			scope = zeroCommands
		}
	}
	cc := scope.Resolve(tok)
	if cc.Unknown {
		p.note(Note{Kind: NoteUnknownCommand, Name: tok})
		if p.e.Hooks.UnknownCommand != nil {
			p.e.Hooks.UnknownCommand(tok)
		}
	}
	p.res.Commands = append(p.res.Commands, cc)
	p.active = cc
	if cc.Unknown || cc.cmd.ExpectArgs > 0 || cc.cmd.Variadic {
		p.state = stateGatherCmd
	}
}

// resolveOption resolves an option name first against the root registry,
// then against the active command's own registry. A root option restricted
// via AllowCmd only resolves while one of its commands is active.
func (p *parser) resolveOption(name string) (*Option, sink, bool) {
	if o, ok := p.e.opts.Resolve(name); ok {
		if len(o.AllowCmd) == 0 || (p.active != nil && slices.Contains(o.AllowCmd, p.active.Name)) {
			return o, p.rootSink(), true
		}
	}
	if p.active != nil && p.active.cmd != nil {
		if o, ok := p.active.cmd.Options.Resolve(name); ok {
			return o, ctxSink(p.active), true
		}
	}
	return nil, sink{}, false
}

// beginOption classifies and starts one option token: negation, long form
// with optional literal value, or a single-dash bundle. It returns the next
// token index.
func (p *parser) beginOption(argv []string, i int) (int, error) {
	tok := argv[i]
	long := strings.HasPrefix(tok, "--")
	body := strings.TrimLeft(tok, "-")

	var lit string
	var hasLit bool
	if idx := strings.IndexByte(body, '='); idx >= 0 {
		lit = body[idx+1:]
		hasLit = true
		body = body[:idx]
	}

	// Single-dash bundle: every character but the last is applied
	// immediately as a flag or counter, even one declared with a required
	// argument. The last character resolves normally.
	if !long && len(body) > 1 {
		for _, r := range body[:len(body)-1] {
			p.applyFlag(string(r), tok)
		}
		body = body[len(body)-1:]
	}

	if o, snk, ok := p.resolveOption(body); ok {
		return p.startOption(o, snk, tok, lit, hasLit, i)
	}

	// --no-<name> negates <name>, unless an option literally named
	// "no-<name>" exists (checked above).
	if long && strings.HasPrefix(body, "no-") {
		if o, snk, ok := p.resolveOption(strings.TrimPrefix(body, "no-")); ok {
			snk.set(o.Name, false, SourceCLI, []string{tok})
			return i + 1, nil
		}
	}

	// Unknown option: recorded as boolean true (or the literal value), no
	// gathering, parse continues.
	var v any = true
	if hasLit {
		v = lit
	}
	p.activeSink().set(body, v, SourceCLI, []string{tok})
	p.note(Note{Kind: NoteUnknownOption, Name: body})
	if p.e.Hooks.UnknownOption != nil {
		p.e.Hooks.UnknownOption(body)
	}
	return i + 1, nil
}

// startOption records a resolved option occurrence: counters increment in
// place, a literal value short-circuits gathering, anything else begins
// GATHERING_OPT_PARAMS.
func (p *parser) startOption(o *Option, snk sink, tok, lit string, hasLit bool, i int) (int, error) {
	if o.Type == TypeCount && !o.IsArray {
		prev, _ := snk.opts[o.Name].(int)
		snk.set(o.Name, prev+1, SourceCLI, []string{tok})
		return i + 1, nil
	}
	f := &optFrame{opt: o, name: o.Name, snk: snk, verbatim: []string{tok}}
	if hasLit {
		f.tokens = append(f.tokens, lit)
		return i + 1, p.completeOpt(f)
	}
	p.stack = append(p.stack, p.state)
	p.state = stateGatherOpt
	p.opt = f
	return i + 1, nil
}

// applyFlag applies one bundled short-option character as a standalone
// boolean or counter.
func (p *parser) applyFlag(name, tok string) {
	if o, snk, ok := p.resolveOption(name); ok {
		if o.Type == TypeCount && !o.IsArray {
			prev, _ := snk.opts[o.Name].(int)
			snk.set(o.Name, prev+1, SourceCLI, []string{tok})
			return
		}
		snk.set(o.Name, true, SourceCLI, []string{tok})
		return
	}
	p.activeSink().set(name, true, SourceCLI, []string{tok})
	p.note(Note{Kind: NoteUnknownOption, Name: name})
	if p.e.Hooks.UnknownOption != nil {
		p.e.Hooks.UnknownOption(name)
	}
}

// finishOpt ends the current option gathering, resumes the suspended state,
// and records the gathered value.
func (p *parser) finishOpt() error {
	f := p.opt
	p.opt = nil
	if n := len(p.stack); n > 0 {
		p.state = p.stack[n-1]
		p.stack = p.stack[:n-1]
	} else {
		p.state = stateParsing
	}
	return p.completeOpt(f)
}

// completeOpt converts and records one finished option occurrence.
func (p *parser) completeOpt(f *optFrame) error {
	o := f.opt
	if len(f.tokens) == 0 {
		switch {
		case o.RequiresArg:
			return &MissingValueError{Option: f.name}
		case o.Default != nil && !o.boolLike():
			// Explicitly named, so provenance stays "cli" even though the
			// declared default supplies the value.
			f.snk.set(f.name, o.Default, SourceCLI, f.verbatim)
		default:
			f.snk.set(f.name, true, SourceCLI, f.verbatim)
		}
		return nil
	}
	if o.IsArray {
		vals, _ := f.snk.opts[f.name].([]any)
		for _, t := range f.tokens {
			vals = append(vals, o.convert(t))
		}
		f.snk.set(f.name, vals, SourceCLI, f.verbatim)
		return nil
	}
	f.snk.set(f.name, o.convert(f.tokens[0]), SourceCLI, f.verbatim)
	return nil
}

// finishCmdGather ends the active command's argument gathering, checks
// arity, and binds converted values to declared argument names.
func (p *parser) finishCmdGather() error {
	cc := p.active
	p.state = stateParsing
	if cc.cmd == nil {
		return nil // unknown command: raw tokens only
	}
	if len(cc.Raw) < cc.cmd.NeedArgs {
		return &MissingArgsError{Command: cc.Name, Need: cc.cmd.NeedArgs, Got: len(cc.Raw)}
	}
	for idx, a := range cc.cmd.Args {
		if a.Variadic {
			rest := cc.Raw[idx:]
			vals := make([]any, 0, len(rest))
			for _, t := range rest {
				vals = append(vals, convertArg(a, t, cc.cmd.types))
			}
			cc.Args[a.Name] = vals
			break
		}
		if idx < len(cc.Raw) {
			cc.Args[a.Name] = convertArg(a, cc.Raw[idx], cc.cmd.types)
		}
	}
	return nil
}

// convertArg coerces one positional token. Arguments without a declared
// type stay verbatim strings, unlike untyped option values.
func convertArg(a ArgSpec, token string, custom map[string]any) any {
	if a.Type == "" {
		return token
	}
	return Convert(a.Type, token, custom)
}

// activateDefaultCommand appends the default command's context when the
// input named no command at all.
func (p *parser) activateDefaultCommand() {
	if len(p.res.Commands) > 0 || p.e.defaultCmd == nil {
		return
	}
	p.res.Commands = append(p.res.Commands, newCommandContext(p.e.defaultCmd, ""))
}

func (p *parser) checkRunnable() {
	for _, cc := range p.res.Commands {
		if cc.Runnable() {
			return
		}
	}
	p.note(Note{Kind: NoteNoRunnable})
	if p.e.Hooks.NoRunnable != nil {
		p.e.Hooks.NoRunnable()
	}
}

// isOptionToken reports whether tok should be classified as an option.
// "-" alone is a conventional stdin placeholder and "--" is the terminator;
// negative numbers are values, matching the behavior of flags that accept
// them.
func isOptionToken(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	if tok == terminator {
		return false
	}
	return !isNumeric(tok)
}

// isNumeric reports whether s looks like a (possibly signed) decimal
// number such as "10", "-10" or "-3.14".
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	start := 0
	if s[0] == '-' || s[0] == '+' {
		if len(s) == 1 {
			return false
		}
		start = 1
	}
	hasDigit := false
	hasDot := false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.':
			if hasDot {
				return false
			}
			hasDot = true
		default:
			return false
		}
	}
	return hasDigit
}
