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

package environment_test

import (
	"testing"

	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/test"
)

type invalidations struct {
	calls int
}

func (i *invalidations) InvalidateCache(start uint16, lines int) {
	i.calls++
}

func TestEnvironment(t *testing.T) {
	env, err := environment.NewEnvironment("", nil)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, env.IsMainEmulation())
	test.ExpectSuccess(t, env.AllowLogging())
	test.ExpectInequality(t, env.Prefs, nil)
	test.ExpectEquality(t, env.CurrentTime(), emutime.Zero)

	// no invalidator is not an error
	env.InvalidateCache(0, 1)

	inv := &invalidations{}
	env.Cache = inv
	env.InvalidateCache(0x4000, 0x40)
	test.ExpectEquality(t, inv.calls, 1)

	env.Quiet = true
	test.ExpectFailure(t, env.AllowLogging())

	env, err = environment.NewEnvironment("detect", nil)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, env.IsMainEmulation())
}
