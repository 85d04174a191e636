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

package paths_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jlautenbag/openMSX/paths"
	"github.com/jlautenbag/openMSX/test"
)

func TestResourcePath(t *testing.T) {
	// run from a temporary directory with a local resource directory so that
	// the user's configuration directory is not touched
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	dir := t.TempDir()
	test.DemandSuccess(t, os.Chdir(dir))
	defer os.Chdir(wd)
	test.DemandSuccess(t, os.Mkdir(".openmsx", 0o700))

	pth, err := paths.ResourcePath("persistent/fmpac", "untitled1.sram")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, filepath.Join(".openmsx", "persistent", "fmpac", "untitled1.sram"))

	fi, err := os.Stat(filepath.Join(".openmsx", "persistent", "fmpac"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, fi.IsDir())

	pth, err = paths.ResourcePath("", "")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, pth, ".openmsx")
}

func TestUniqueFilename(t *testing.T) {
	fn := paths.UniqueFilename("dac", "msx1")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "dac_msx1_"))

	fn = paths.UniqueFilename("dac", "  ")
	test.ExpectSuccess(t, strings.HasPrefix(fn, "dac_"))
	test.ExpectEquality(t, strings.Count(fn, "_"), 2)
}
