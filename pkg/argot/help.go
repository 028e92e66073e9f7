// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import (
	"fmt"
	"strings"
)

// Usage renders the top-level usage text from the compiled specification.
func (e *Engine) Usage() string {
	var b strings.Builder

	b.WriteString(e.name)
	if e.desc != "" {
		b.WriteString(" - ")
		b.WriteString(e.desc)
	}
	b.WriteString("\n\n")

	b.WriteString("USAGE:\n")
	fmt.Fprintf(&b, "    %s [OPTIONS] COMMAND [ARGS...]\n\n", e.name)

	writeCommands(&b, e.cmds)
	writeOptions(&b, "OPTIONS:", e.opts)

	if len(e.cmds.cmds) > 0 {
		fmt.Fprintf(&b, "Run '%s COMMAND' with a command's own options and arguments.\n", e.name)
	}
	return b.String()
}

// CommandUsage renders usage for one command, named by its path from the
// root (e.g. "remote", "add" for a nested sub-command).
func (e *Engine) CommandUsage(path ...string) (string, error) {
	set := e.cmds
	var c *Command
	for _, name := range path {
		canonical, ok := set.holder(name)
		if !ok {
			return "", fmt.Errorf("unknown command: %s", strings.Join(path, " "))
		}
		c = set.cmds[canonical]
		set = c.Commands
	}
	if c == nil {
		return "", fmt.Errorf("empty command path")
	}

	var b strings.Builder
	if c.Desc != "" {
		b.WriteString(c.Desc)
		b.WriteString("\n\n")
	}
	if len(c.Aliases) > 0 {
		b.WriteString("ALIASES:\n")
		fmt.Fprintf(&b, "    %s\n\n", strings.Join(c.Aliases, ", "))
	}

	b.WriteString("USAGE:\n")
	usage := fmt.Sprintf("    %s %s", e.name, strings.Join(path, " "))
	if len(c.Options.opts) > 0 {
		usage += " [OPTIONS]"
	}
	for _, a := range c.Args {
		usage += " " + argDisplay(a)
	}
	b.WriteString(usage)
	b.WriteString("\n\n")

	writeCommands(&b, c.Commands)
	writeOptions(&b, "OPTIONS:", c.Options)
	return b.String(), nil
}

func writeCommands(b *strings.Builder, set *CommandSet) {
	names := set.Names()
	if len(names) == 0 {
		return
	}
	b.WriteString("COMMANDS:\n")
	for _, name := range names {
		c := set.cmds[name]
		fmt.Fprintf(b, "    %-12s %s\n", name, describeWithAliases(c.Desc, c.Aliases))
	}
	b.WriteString("\n")
}

func writeOptions(b *strings.Builder, header string, set *OptionSet) {
	names := set.Names()
	if len(names) == 0 {
		return
	}
	b.WriteString(header)
	b.WriteString("\n")
	for _, name := range names {
		o := set.opts[name]
		var flagStr string
		if short := shortAlias(o); short != "" {
			flagStr = fmt.Sprintf("    -%s, --%s", short, name)
		} else {
			flagStr = fmt.Sprintf("    --%s", name)
		}
		if o.Desc != "" {
			fmt.Fprintf(b, "%-28s %s", flagStr, o.Desc)
		} else {
			b.WriteString(flagStr)
		}
		if o.Default != nil {
			fmt.Fprintf(b, " (default: %v)", o.Default)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// shortAlias picks the option's first single-character alias, if any.
func shortAlias(o *Option) string {
	for _, a := range o.Aliases {
		if len(a) == 1 {
			return a
		}
	}
	return ""
}

func argDisplay(a ArgSpec) string {
	name := strings.ToUpper(a.Name)
	if a.Variadic {
		name += "..."
	}
	if a.Required {
		return "<" + name + ">"
	}
	return "[" + name + "]"
}

func describeWithAliases(desc string, aliases []string) string {
	if len(aliases) == 0 {
		return desc
	}
	var suffix string
	if len(aliases) == 1 {
		suffix = fmt.Sprintf("(alias: %s)", aliases[0])
	} else {
		suffix = fmt.Sprintf("(aliases: %s)", strings.Join(aliases, ", "))
	}
	if desc == "" {
		return suffix
	}
	return desc + " " + suffix
}
