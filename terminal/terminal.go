// This file is part of openMSX.
//
// openMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// openMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with openMSX.  If not, see <https://www.gnu.org/licenses/>.

// Package terminal reads single key presses from the controlling terminal.
// The terminal is put into cbreak mode so that keys are delivered without
// waiting for the return key, and restored when the Keys instance is closed.
package terminal

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/pkg/term"
	xterm "golang.org/x/term"
)

// Sentinal error patterns.
const (
	NotTerminal = "terminal: %s is not a terminal"
	KeyError    = "terminal: %v"
)

// the device opened for key input.
const ttyDevice = "/dev/tty"

// how often Read() checks for cancellation.
const pollInterval = 100 * time.Millisecond

// IsTerminal returns true if the file is a terminal.
func IsTerminal(f *os.File) bool {
	return xterm.IsTerminal(int(f.Fd()))
}

// Keys reads key presses from the terminal.
type Keys struct {
	t *term.Term
}

// OpenKeys puts the terminal into cbreak mode. The in file is only used to
// check that input is coming from a terminal.
func OpenKeys(in *os.File) (*Keys, error) {
	if !IsTerminal(in) {
		return nil, curated.Errorf(NotTerminal, in.Name())
	}

	t, err := term.Open(ttyDevice, term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf(KeyError, err)
	}
	if err := t.SetReadTimeout(pollInterval); err != nil {
		_ = t.Restore()
		_ = t.Close()
		return nil, curated.Errorf(KeyError, err)
	}

	return &Keys{t: t}, nil
}

// Read blocks until a key is pressed or the context is done.
func (k *Keys) Read(ctx context.Context) (rune, error) {
	b := make([]byte, 1)
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		n, err := k.t.Read(b)
		if n == 1 {
			return rune(b[0]), nil
		}

		// a read that times out returns no data and io.EOF
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, curated.Errorf(KeyError, err)
		}
	}
}

// Close restores the terminal to the mode it was in before OpenKeys().
func (k *Keys) Close() error {
	if err := k.t.Restore(); err != nil {
		_ = k.t.Close()
		return curated.Errorf(KeyError, err)
	}
	return k.t.Close()
}
