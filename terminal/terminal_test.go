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

package terminal_test

import (
	"os"
	"testing"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/terminal"
	"github.com/jlautenbag/openMSX/test"
)

func TestNotTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	test.DemandSuccess(t, err)
	defer r.Close()
	defer w.Close()

	test.ExpectFailure(t, terminal.IsTerminal(r))

	k, err := terminal.OpenKeys(r)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, k == nil)
	test.ExpectSuccess(t, curated.Is(err, terminal.NotTerminal))
}
