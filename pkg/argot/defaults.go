// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

// applyDefaults fills in every declared default whose option was never set,
// at the root scope and within each activated command. Values already
// present — provenance "cli" or an earlier merge — are never overwritten.
func (p *parser) applyDefaults() {
	fillDefaults(p.rootSink(), p.e.opts)
	for _, cc := range p.res.Commands {
		if cc.cmd != nil {
			fillDefaults(ctxSink(cc), cc.cmd.Options)
		}
	}
}

func fillDefaults(snk sink, set *OptionSet) {
	for _, name := range set.Names() {
		o, _ := set.Resolve(name)
		if o.Default == nil {
			continue
		}
		if _, ok := snk.opts[name]; ok {
			continue
		}
		snk.opts[name] = o.Default
		snk.src[name] = SourceDefault
	}
}

// MergeDefaults merges externally sourced values — a configuration file, the
// environment — into a result's root scope under the given provenance tag.
// First writer wins: keys already present, whatever their source, are left
// untouched.
func MergeDefaults(res *Result, values map[string]any, tag string) {
	mergeInto(sink{opts: res.Opts, src: res.Source, verb: res.Verbatim}, values, tag)
}

// MergeDefaults merges externally sourced values into this command's scope.
func (cc *CommandContext) MergeDefaults(values map[string]any, tag string) {
	mergeInto(ctxSink(cc), values, tag)
}

func mergeInto(snk sink, values map[string]any, tag string) {
	for k, v := range values {
		if _, ok := snk.opts[k]; ok {
			continue
		}
		snk.opts[k] = v
		snk.src[k] = tag
	}
}
