// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argot

import "context"

// Run parses argv and dispatches to the deepest resolved command that
// carries an exec handler, passing it an immutable snapshot of its resolved
// options and arguments. It returns the parse result alongside the
// handler's error so callers can still inspect values and notes.
//
// A fatal parse error is returned without dispatching; a successful parse
// that resolves no runnable command returns ErrNoCommand.
func (e *Engine) Run(ctx context.Context, argv []string, start int) (*Result, error) {
	res := e.Parse(argv, start)
	if res.Err != nil {
		return res, res.Err
	}
	for i := len(res.Commands) - 1; i >= 0; i-- {
		if cc := res.Commands[i]; cc.Runnable() {
			return res, cc.cmd.Exec(ctx, cc)
		}
	}
	return res, ErrNoCommand
}
