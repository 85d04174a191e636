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

package sram_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/memory/sram"
	"github.com/jlautenbag/openMSX/hardware/state"
	"github.com/jlautenbag/openMSX/test"
)

type names struct {
	live map[string]bool
}

func (n *names) UserName(hwName string) string {
	n.live["untitled1"] = true
	return "untitled1"
}

func (n *names) FreeUserName(hwName string, userName string) {
	delete(n.live, userName)
}

func newEnv(t *testing.T) *environment.Environment {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, env.Prefs.PersistentDir.Set(t.TempDir()))
	env.Quiet = true
	return env
}

func TestBlank(t *testing.T) {
	env := newEnv(t)
	s := sram.NewSRAM(env, "cart", "", 0x2000, "", true, true)
	test.ExpectEquality(t, s.Size(), 0x2000)
	test.ExpectEquality(t, s.Read(0), uint8(sram.Blank))
	test.ExpectEquality(t, s.Read(0x1fff), uint8(sram.Blank))
	test.ExpectEquality(t, s.Path(), "")

	// no image means nothing to flush
	test.ExpectSuccess(t, s.Flush())
}

func TestPersistence(t *testing.T) {
	env := newEnv(t)
	n := &names{live: make(map[string]bool)}
	env.Names = n

	s := sram.NewSRAM(env, "fmpac", "fmpac.pac", 0x1ffe, "PAC2 BACKUP DATA", true, true)
	test.ExpectEquality(t, n.live["untitled1"], true)
	test.ExpectEquality(t, filepath.Base(s.Path()), "fmpac.pac")
	s.Write(0, 0x12)
	s.Write(0x1ffd, 0x34)
	s.Destroy()
	test.ExpectEquality(t, n.live["untitled1"], false)

	d, err := os.ReadFile(s.Path())
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(d), 16+0x1ffe)
	test.ExpectEquality(t, string(d[:16]), "PAC2 BACKUP DATA")

	s = sram.NewSRAM(env, "fmpac", "fmpac.pac", 0x1ffe, "PAC2 BACKUP DATA", true, true)
	test.ExpectEquality(t, s.Read(0), uint8(0x12))
	test.ExpectEquality(t, s.Read(0x1ffd), uint8(0x34))
	test.ExpectEquality(t, s.Read(1), uint8(sram.Blank))

	// a different header is treated as a missing image
	s = sram.NewSRAM(env, "fmpac", "fmpac.pac", 0x1ffe, "SOMETHING ELSE!!", true, true)
	test.ExpectEquality(t, s.Read(0), uint8(sram.Blank))
}

func TestShortImage(t *testing.T) {
	env := newEnv(t)

	s := sram.NewSRAM(env, "cart", "short.sram", 0x2000, "", false, true)
	test.DemandSuccess(t, os.WriteFile(s.Path(), []byte{1, 2, 3}, 0o600))

	s = sram.NewSRAM(env, "cart", "short.sram", 0x2000, "", true, true)
	test.ExpectEquality(t, s.Read(0), uint8(sram.Blank))
}

func TestSavePreference(t *testing.T) {
	env := newEnv(t)
	test.DemandSuccess(t, env.Prefs.SaveSRAM.Set(false))

	s := sram.NewSRAM(env, "cart", "nosave.sram", 0x2000, "", true, true)
	s.Write(0, 0)
	s.Destroy()

	_, err := os.Stat(s.Path())
	test.ExpectFailure(t, err)
}

func TestSnapshot(t *testing.T) {
	env := newEnv(t)
	s := sram.NewSRAM(env, "cart", "", 0x800, "", false, false)
	s.Write(0x10, 0xaa)

	a := state.NewArchive(1)
	s.Snapshot(a)

	r := sram.NewSRAM(env, "cart", "", 0x800, "", false, false)
	test.DemandSuccess(t, r.Restore(a))
	test.ExpectEquality(t, r.Read(0x10), uint8(0xaa))

	short := sram.NewSRAM(env, "cart", "", 0x400, "", false, false)
	test.ExpectFailure(t, short.Restore(a))
}
