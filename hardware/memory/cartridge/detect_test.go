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

package cartridge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/hardware/memory/cartridge"
	"github.com/jlautenbag/openMSX/test"
)

func TestParseMapperType(t *testing.T) {
	for _, n := range cartridge.MapperTypes() {
		mt, err := cartridge.ParseMapperType(n)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, mt.String(), n)
	}

	for alias, expected := range map[string]cartridge.MapperType{
		"konami5":    cartridge.KonamiSCC,
		"SCC":        cartridge.KonamiSCC,
		"Konami4":    cartridge.Konami,
		"ascii8":     cartridge.ASCII8kB,
		"ASCII16KB":  cartridge.ASCII16kB,
		" r-type ":   cartridge.RType,
		"rc755":      cartridge.GameMaster2,
		"fm-pac":     cartridge.FMPAC,
		"mirrored":   cartridge.Plain,
		"generic8kb": cartridge.Generic8kB,
	} {
		mt, err := cartridge.ParseMapperType(alias)
		test.ExpectSuccess(t, err, alias)
		test.ExpectEquality(t, mt, expected, alias)
	}

	_, err := cartridge.ParseMapperType("Konami6")
	test.ExpectSuccess(t, curated.Is(err, cartridge.UnknownMapperType))
}

// ldnn returns a 128KiB image with n LD (nn),A instructions for each of the
// addresses.
func ldnn(n int, addrs ...uint16) []uint8 {
	d := make([]uint8, 0x20000)
	i := 0x100
	for _, a := range addrs {
		for range n {
			d[i] = 0x32
			d[i+1] = uint8(a)
			d[i+2] = uint8(a >> 8)
			i += 3
		}
	}
	return d
}

func TestFingerprint(t *testing.T) {
	test.ExpectEquality(t, cartridge.Fingerprint(make([]uint8, 0x8000)), cartridge.Plain)
	test.ExpectEquality(t, cartridge.Fingerprint(ldnn(10, 0x5000)[:0x10000]), cartridge.Plain)
	test.ExpectEquality(t, cartridge.Fingerprint(make([]uint8, 0x20000)), cartridge.Generic8kB)

	test.ExpectEquality(t, cartridge.Fingerprint(ldnn(3, 0x5000, 0x9000, 0xb000)), cartridge.KonamiSCC)
	test.ExpectEquality(t, cartridge.Fingerprint(ldnn(3, 0x6000, 0x8000, 0xa000)), cartridge.Konami)
	test.ExpectEquality(t, cartridge.Fingerprint(ldnn(3, 0x6800, 0x7800)), cartridge.ASCII8kB)
	test.ExpectEquality(t, cartridge.Fingerprint(ldnn(3, 0x6000, 0x7000, 0x77ff)), cartridge.ASCII16kB)

	// a single ASCII8 write is not enough to beat Generic8kB
	test.ExpectEquality(t, cartridge.Fingerprint(ldnn(1, 0x6800)), cartridge.Generic8kB)
}

const detectHash = "ab30cdeaacbdf14e6366d43d881338178fc665cb"

func writeDatabase(t *testing.T, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), "romdb.csv")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(content), 0o600))
	return fn
}

func TestResolve(t *testing.T) {
	env, _ := newEnv(t)
	data := ldnn(3, 0x5000, 0x9000, 0xb000)

	// explicit type ignores the database
	det, err := cartridge.Resolve(env, "ascii16", data, detectHash)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, det.Type, cartridge.ASCII16kB)
	test.ExpectEquality(t, det.Method, cartridge.Explicit)

	_, err = cartridge.Resolve(env, "nonsense", data, detectHash)
	test.ExpectSuccess(t, curated.Is(err, cartridge.UnknownMapperType))

	// no database
	det, err = cartridge.Resolve(env, "auto", data, detectHash)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, det.Type, cartridge.KonamiSCC)
	test.ExpectEquality(t, det.Method, cartridge.Guess)

	fn := writeDatabase(t, detectHash+",RType,R-Type\n")
	test.DemandSuccess(t, env.Prefs.ROMDatabase.Set(fn))

	det, err = cartridge.Resolve(env, "", data, detectHash)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, det.Type, cartridge.RType)
	test.ExpectEquality(t, det.Method, cartridge.Database)
	test.ExpectEquality(t, det.Title, "R-Type")

	// not in the database
	det, err = cartridge.Resolve(env, "auto", data, "0000000000000000000000000000000000000000")
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, det.Method, cartridge.Guess)
}

func TestResolveMalformed(t *testing.T) {
	env, _ := newEnv(t)
	data := ldnn(3, 0x6800, 0x7800)

	for _, content := range []string{
		detectHash + "\n",
		detectHash + ",Konami6\n",
	} {
		test.DemandSuccess(t, env.Prefs.ROMDatabase.Set(writeDatabase(t, content)))

		test.DemandSuccess(t, env.Prefs.GuessOnMalformed.Set(true))
		det, err := cartridge.Resolve(env, "auto", data, detectHash)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, det.Type, cartridge.ASCII8kB)
		test.ExpectEquality(t, det.Method, cartridge.Guess)

		test.DemandSuccess(t, env.Prefs.GuessOnMalformed.Set(false))
		_, err = cartridge.Resolve(env, "auto", data, detectHash)
		test.ExpectSuccess(t, curated.Is(err, cartridge.MalformedDatabase))
	}

	// a missing database is malformed
	test.DemandSuccess(t, env.Prefs.ROMDatabase.Set(filepath.Join(t.TempDir(), "missing.csv")))
	_, err := cartridge.Resolve(env, "auto", data, detectHash)
	test.ExpectFailure(t, err)
}

func TestROMDetection(t *testing.T) {
	env, _ := newEnv(t)
	rom := newROM(t, env, "auto", ldnn(3, 0x6000, 0x7000, 0x77ff))
	test.ExpectEquality(t, rom.MapperType(), cartridge.ASCII16kB)
	test.ExpectEquality(t, rom.Detection().Method, cartridge.Guess)
	test.ExpectEquality(t, rom.Detection().String(), "ASCII16 (guess)")
}
