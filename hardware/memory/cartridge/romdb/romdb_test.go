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

package romdb_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jlautenbag/openMSX/hardware/memory/cartridge/romdb"
	"github.com/jlautenbag/openMSX/test"
)

const nemesis2 = "ab30cdeaacbdf14e6366d43d881338178fc665cb"
const xanadu = "0dc7a4c8b56d2e4e0a5b27e9c1bd5bca5ba2e8a4"

const good = `# sha1,type,title
ab30cdeaacbdf14e6366d43d881338178fc665cb,KonamiSCC,Nemesis 2

0DC7A4C8B56D2E4E0A5B27E9C1BD5BCA5BA2E8A4, ASCII8SRAM
`

func TestSearch(t *testing.T) {
	db := romdb.Parse(strings.NewReader(good))
	test.DemandSuccess(t, db.Err())
	test.ExpectEquality(t, db.Len(), 2)

	ent, res := db.Search(nemesis2)
	test.ExpectEquality(t, res, romdb.Found)
	test.ExpectEquality(t, ent.Type, "KonamiSCC")
	test.ExpectEquality(t, ent.Title, "Nemesis 2")

	// hashes are not case sensitive
	ent, res = db.Search(strings.ToUpper(xanadu))
	test.ExpectEquality(t, res, romdb.Found)
	test.ExpectEquality(t, ent.Type, "ASCII8SRAM")
	test.ExpectEquality(t, ent.Title, "")

	_, res = db.Search("0000000000000000000000000000000000000000")
	test.ExpectEquality(t, res, romdb.NotFound)
}

func TestMalformed(t *testing.T) {
	for _, src := range []string{
		"ab30cdeaacbdf14e6366d43d881338178fc665cb\n",
		"ab30cdea,KonamiSCC\n",
		"ab30cdeaacbdf14e6366d43d881338178fc665cb,,Nemesis 2\n",
		"ab30cdeaacbdf14e6366d43d881338178fc665cb,KonamiSCC,a,b\n",
		"ab30cdeaacbdf14e6366d43d881338178fc665cb,\"KonamiSCC\n",
	} {
		db := romdb.Parse(strings.NewReader(src))
		test.ExpectFailure(t, db.Err(), src)

		_, res := db.Search(nemesis2)
		test.ExpectEquality(t, res, romdb.Malformed, src)
	}
}

func TestLoad(t *testing.T) {
	db := romdb.Load("")
	test.ExpectSuccess(t, db.Err())
	_, res := db.Search(nemesis2)
	test.ExpectEquality(t, res, romdb.NotFound)

	dir := t.TempDir()

	db = romdb.Load(filepath.Join(dir, "missing.csv"))
	test.ExpectFailure(t, db.Err())
	_, res = db.Search(nemesis2)
	test.ExpectEquality(t, res, romdb.Malformed)

	fn := filepath.Join(dir, "romdb.csv")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(good), 0o600))
	db = romdb.Load(fn)
	test.DemandSuccess(t, db.Err())
	_, res = db.Search(nemesis2)
	test.ExpectEquality(t, res, romdb.Found)
}
