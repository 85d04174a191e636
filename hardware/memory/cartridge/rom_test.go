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
	"testing"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/config"
	"github.com/jlautenbag/openMSX/hardware/device"
	"github.com/jlautenbag/openMSX/hardware/emutime"
	"github.com/jlautenbag/openMSX/hardware/memory/cartridge"
	"github.com/jlautenbag/openMSX/hardware/state"
	"github.com/jlautenbag/openMSX/test"
)

// records calls to InvalidateCache.
type invalidations struct {
	lines [device.CacheLines]int
}

func (inv *invalidations) InvalidateCache(start uint16, lines int) {
	first := int(start) / device.CacheLineSize
	for i := first; i < first+lines && i < device.CacheLines; i++ {
		inv.lines[i]++
	}
}

func (inv *invalidations) clear() {
	inv.lines = [device.CacheLines]int{}
}

func (inv *invalidations) invalidated(addr uint16) bool {
	return inv.lines[addr/device.CacheLineSize] > 0
}

func newEnv(t *testing.T) (*environment.Environment, *invalidations) {
	t.Helper()
	env, err := environment.NewEnvironment("test", nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, env.Prefs.PersistentDir.Set(t.TempDir()))
	env.Quiet = true
	inv := &invalidations{}
	env.Cache = inv
	return env, inv
}

// image returns a ROM image in which every byte is the number of the 8KiB
// block it is in.
func image(size int) []uint8 {
	d := make([]uint8, size)
	for i := range d {
		d[i] = uint8(i / 0x2000)
	}
	return d
}

func romConfig(mapper string, data []uint8) *config.DeviceConfig {
	return &config.DeviceConfig{
		Type:   "ROM",
		ID:     "cart",
		Params: map[string]string{"mappertype": mapper},
		Placements: []config.Placement{
			{PS: 1, SS: config.NotExpanded, Base: 0x4000, Size: 0x8000},
		},
		Data: data,
	}
}

func newROM(t *testing.T, env *environment.Environment, mapper string, data []uint8) *cartridge.ROM {
	t.Helper()
	rom, err := cartridge.NewROM(env, romConfig(mapper, data))
	test.DemandSuccess(t, err)
	return rom
}

func TestBankWraparound(t *testing.T) {
	const size = 0x20000

	type wrapCase struct {
		mapper    string
		selAddr   uint16
		readAddr  uint16
		blockSize int
		value     uint8
	}

	for _, c := range []wrapCase{
		{"Generic8kB", 0x8000, 0x8000, 0x2000, 0x23},
		{"Generic16kB", 0x8000, 0x8000, 0x4000, 0x0b},
		{"KonamiSCC", 0x9000, 0x8000, 0x2000, 0x23},
		{"Konami", 0x8000, 0x8000, 0x2000, 0x23},
		{"ASCII8", 0x7000, 0x8000, 0x2000, 0x23},
		{"ASCII16", 0x7000, 0x8000, 0x4000, 0x0b},
		{"RType", 0x7000, 0x8000, 0x4000, 0x0b},
		{"Hydlide2", 0x7000, 0x8000, 0x4000, 0x0b},
		{"ASCII8SRAM", 0x7000, 0x8000, 0x2000, 0x23},
		{"GameMaster2", 0x8000, 0x8000, 0x2000, 0x23},
		{"Majutsushi", 0x8000, 0x8000, 0x2000, 0x23},
		{"CrossBlaim", 0x4045, 0x8000, 0x4000, 0x0b},
		{"Panasonic", 0x7000, 0x8000, 0x2000, 0x23},
	} {
		env, _ := newEnv(t)
		n := size / c.blockSize

		rom := newROM(t, env, c.mapper, image(size))
		rom.WriteMem(c.selAddr, c.value, emutime.Zero)
		wrapped := rom.ReadMem(c.readAddr, emutime.Zero)

		ref := newROM(t, env, c.mapper, image(size))
		ref.WriteMem(c.selAddr, c.value&uint8(n-1), emutime.Zero)
		test.ExpectEquality(t, wrapped, ref.ReadMem(c.readAddr, emutime.Zero), c.mapper)

		expected := uint8(int(c.value&uint8(n-1)) * c.blockSize / 0x2000)
		test.ExpectEquality(t, wrapped, expected, c.mapper)
	}
}

func TestCacheInvalidation(t *testing.T) {
	env, inv := newEnv(t)
	rom := newROM(t, env, "Konami", image(0x20000))

	inv.clear()
	rom.WriteMem(0x8000, 5, emutime.Zero)
	test.ExpectSuccess(t, inv.invalidated(0x8000))
	test.ExpectSuccess(t, inv.invalidated(0x9f00))
	test.ExpectFailure(t, inv.invalidated(0x7f00))
	test.ExpectFailure(t, inv.invalidated(0xa000))

	// the cache line agrees with the bank table
	line := rom.ReadCacheLine(0x8000)
	test.DemandEquality(t, len(line), device.CacheLineSize)
	test.ExpectEquality(t, line[0], uint8(5))

	// writes to the fixed region do nothing
	inv.clear()
	rom.WriteMem(0x4000, 5, emutime.Zero)
	for a := 0; a < 0x10000; a += device.CacheLineSize {
		test.ExpectFailure(t, inv.invalidated(uint16(a)), a)
	}
}

func TestCacheLines(t *testing.T) {
	env, _ := newEnv(t)
	for _, mapper := range cartridge.MapperTypes() {
		rom := newROM(t, env, mapper, image(0x20000))
		for a := 0; a < 0x10000; a += device.CacheLineSize {
			line := rom.ReadCacheLine(uint16(a))
			if line == nil {
				continue
			}
			for i := 0; i < device.CacheLineSize; i += 0x3f {
				test.ExpectEquality(t, line[i], rom.PeekMem(uint16(a+i), emutime.Zero), mapper, a+i)
			}
		}
	}
}

func TestSCC(t *testing.T) {
	env, inv := newEnv(t)
	rom := newROM(t, env, "KonamiSCC", image(0x20000))
	test.DemandSuccess(t, rom.SCC() != nil)

	// the SCC is disabled after a reset
	test.ExpectEquality(t, rom.ReadMem(0x9800, emutime.Zero), uint8(2))

	inv.clear()
	rom.WriteMem(0x9000, 0x3f, emutime.Zero)
	test.ExpectSuccess(t, inv.invalidated(0x9800))
	test.ExpectSuccess(t, inv.invalidated(0x9f00))

	// the value also selects the bank for the region
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(0x0f))

	rom.WriteMem(0x9800, 0x55, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x9800, emutime.Zero), uint8(0x55))
	test.ExpectEquality(t, rom.SCC().Peek(0x00), uint8(0x55))
	test.ExpectEquality(t, rom.ReadMem(0x9880, emutime.Zero), uint8(0xff))
	test.ExpectEquality(t, rom.ReadCacheLine(0x9800) == nil, true)

	// the control registers are in the window too
	rom.WriteMem(0x9880, 0x12, emutime.Zero)
	test.ExpectEquality(t, rom.SCC().Frequency(0), uint16(0x12))
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(0x0f))

	inv.clear()
	rom.WriteMem(0x9000, 0x3e, emutime.Zero)
	test.ExpectSuccess(t, inv.invalidated(0x9800))
	test.ExpectEquality(t, rom.ReadMem(0x9800, emutime.Zero), uint8(0x0e))
	test.ExpectEquality(t, rom.ReadCacheLine(0x9800) == nil, false)

	rom.WriteMem(0x9000, 0x7f, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x9800, emutime.Zero), uint8(0x55))

	rom.Reset(emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x9800, emutime.Zero), uint8(2))
}

func TestHydlide2(t *testing.T) {
	env, _ := newEnv(t)
	rom := newROM(t, env, "Hydlide2", image(0x20000))
	test.DemandSuccess(t, rom.SRAM() != nil)

	// SRAM in page 1
	rom.WriteMem(0x6000, 0x10, emutime.Zero)
	rom.WriteMem(0x4000, 0x55, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0x55))

	// 2KiB is mirrored throughout the page
	test.ExpectEquality(t, rom.ReadMem(0x4800, emutime.Zero), uint8(0x55))
	test.ExpectEquality(t, rom.ReadMem(0x7800, emutime.Zero), uint8(0x55))

	// normal bank restores the ROM. the SRAM keeps its contents
	rom.WriteMem(0x6000, 0x02, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(4))
	test.ExpectEquality(t, rom.SRAM().Read(0), uint8(0x55))

	// SRAM in page 2 is read only
	rom.WriteMem(0x7000, 0x10, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(0x55))
	rom.WriteMem(0x8000, 0x66, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(0x55))
}

func TestASCII8SRAM(t *testing.T) {
	env, _ := newEnv(t)
	rom := newROM(t, env, "ASCII8SRAM", image(0x20000))

	// 128KiB of ROM so bit 4 selects SRAM
	rom.WriteMem(0x7000, 0x10, emutime.Zero)
	rom.WriteMem(0x8001, 0x77, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x8001, emutime.Zero), uint8(0x77))

	// SRAM in 0x4000 to 0x7fff is read only
	rom.WriteMem(0x6000, 0x10, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4001, emutime.Zero), uint8(0x77))
	rom.WriteMem(0x4001, 0x88, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4001, emutime.Zero), uint8(0x77))

	rom.WriteMem(0x7000, 0x03, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x8001, emutime.Zero), uint8(3))

	// not selected, not writable
	rom.WriteMem(0x8001, 0x99, emutime.Zero)
	test.ExpectEquality(t, rom.SRAM().Read(1), uint8(0x77))
}

func TestGameMaster2(t *testing.T) {
	env, _ := newEnv(t)
	rom := newROM(t, env, "GameMaster2", image(0x20000))

	// upper half of SRAM in region 0xa000
	rom.WriteMem(0xa000, 0x30, emutime.Zero)
	rom.WriteMem(0xb000, 0x99, emutime.Zero)
	test.ExpectEquality(t, rom.SRAM().Read(0x1000), uint8(0x99))
	test.ExpectEquality(t, rom.ReadMem(0xa000, emutime.Zero), uint8(0x99))
	test.ExpectEquality(t, rom.ReadMem(0xb000, emutime.Zero), uint8(0x99))

	// lower half
	rom.WriteMem(0xa000, 0x10, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0xa000, emutime.Zero), uint8(0xff))

	// SRAM selected in another region can't be written
	rom.WriteMem(0x8000, 0x30, emutime.Zero)
	rom.WriteMem(0xa000, 0x07, emutime.Zero)
	rom.WriteMem(0xb000, 0x11, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(0x99))
	test.ExpectEquality(t, rom.ReadMem(0xa000, emutime.Zero), uint8(7))
}

func TestPanasonic(t *testing.T) {
	env, _ := newEnv(t)
	rom := newROM(t, env, "Panasonic", image(0x20000))

	// every region starts with the bank of the same number
	for r := range 8 {
		test.ExpectEquality(t, rom.ReadMem(uint16(r*0x2000), emutime.Zero), uint8(r))
	}

	// registers can't be read until enabled by the control byte
	test.ExpectEquality(t, rom.ReadMem(0x7ff1, emutime.Zero), uint8(3))

	rom.WriteMem(0x6400, 0x05, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x2000, emutime.Zero), uint8(5))

	rom.WriteMem(0x7ff9, 0x1c, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x7ff1, emutime.Zero), uint8(5))
	test.ExpectEquality(t, rom.ReadMem(0x7ff9, emutime.Zero), uint8(0x1c))

	// 9th bit of region 1. wraps to the same bank in a 128KiB image
	rom.WriteMem(0x7ff8, 0x02, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x7ff8, emutime.Zero), uint8(0x02))
	test.ExpectEquality(t, rom.ReadMem(0x7ff1, emutime.Zero), uint8(5))
	test.ExpectEquality(t, rom.ReadMem(0x2000, emutime.Zero), uint8(5))

	test.ExpectEquality(t, rom.ReadCacheLine(0x7f00) == nil, true)
	test.ExpectEquality(t, rom.ReadCacheLine(0x7e00) == nil, false)
}

func TestDAC(t *testing.T) {
	env, _ := newEnv(t)

	rom := newROM(t, env, "Synthesizer", image(0x8000))
	test.DemandSuccess(t, rom.DAC() != nil)
	rom.WriteMem(0x4000, 0x40, emutime.Zero)
	test.ExpectEquality(t, rom.DAC().Level(), uint8(0x40))

	rom = newROM(t, env, "Majutsushi", image(0x20000))
	rom.WriteMem(0x5123, 0x41, emutime.Zero)
	test.ExpectEquality(t, rom.DAC().Level(), uint8(0x41))
	rom.WriteMem(0x6000, 0x02, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x6000, emutime.Zero), uint8(2))

	rom = newROM(t, env, "Konami", image(0x20000))
	test.ExpectEquality(t, rom.DAC() == nil, true)
}

func TestPlain(t *testing.T) {
	env, _ := newEnv(t)

	// 32KiB without a header placed in page 1 is mapped as 0 0 1 1
	rom := newROM(t, env, "Plain", image(0x8000))
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0))
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(2))

	// placed in page 0 it is mapped as 0 1 0 1
	cfg := romConfig("Plain", image(0x8000))
	cfg.Placements[0].Base = 0
	cfg.Placements[0].Size = 0x10000
	rom, err := cartridge.NewROM(env, cfg)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rom.ReadMem(0x0000, emutime.Zero), uint8(0))
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(2))

	// a header means the image starts at 0x4000
	d := image(0x8000)
	d[0] = 'A'
	d[1] = 'B'
	cfg = romConfig("Plain", d)
	cfg.Placements[0].Base = 0
	rom, err = cartridge.NewROM(env, cfg)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8('A'))
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(2))

	// 8KiB is mirrored everywhere
	rom = newROM(t, env, "Plain", image(0x2000))
	for a := 0; a < 0x10000; a += 0x2000 {
		test.ExpectEquality(t, rom.ReadMem(uint16(a), emutime.Zero), uint8(0))
	}

	// writes do nothing
	rom.WriteMem(0x6000, 1, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0))
}

func TestGenericReset(t *testing.T) {
	env, _ := newEnv(t)

	rom := newROM(t, env, "ASCII8", image(0x20000))
	test.ExpectEquality(t, rom.ReadMem(0x0000, emutime.Zero), uint8(0xff))
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0))
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(2))
	test.ExpectEquality(t, rom.ReadMem(0xc000, emutime.Zero), uint8(0xff))

	rom = newROM(t, env, "ASCII16", image(0x20000))
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(0))

	// R-Type has bank 0x17 in page 1, which wraps in a 128KiB image
	rom = newROM(t, env, "RType", image(0x20000))
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(14))

	rom.WriteMem(0x8000, 1, emutime.Zero)
	rom.WriteMem(0x7000, 1, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(2))
	rom.Reset(emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x8000, emutime.Zero), uint8(2))
}

func TestPadding(t *testing.T) {
	env, _ := newEnv(t)

	// 96KiB is padded to 128KiB with unmapped bytes
	rom := newROM(t, env, "ASCII8", image(0x18000))
	rom.WriteMem(0x6000, 13, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(0xff))
	rom.WriteMem(0x6000, 11, emutime.Zero)
	test.ExpectEquality(t, rom.ReadMem(0x4000, emutime.Zero), uint8(11))
}

func TestConstructionErrors(t *testing.T) {
	env, _ := newEnv(t)

	_, err := cartridge.NewROM(env, romConfig("NotAMapper", image(0x8000)))
	test.ExpectSuccess(t, curated.Has(err, cartridge.UnknownMapperType))

	cfg := romConfig("auto", nil)
	_, err = cartridge.NewROM(env, cfg)
	test.ExpectSuccess(t, curated.Is(err, config.MissingParameter))

	cfg = romConfig("ASCII8", image(0x8000))
	cfg.Params["sha1"] = "0000000000000000000000000000000000000000"
	_, err = cartridge.NewROM(env, cfg)
	test.ExpectFailure(t, err)
}

func roundTrip(t *testing.T, mapper string, size int, writes [][2]int) {
	t.Helper()
	env, _ := newEnv(t)

	rom := newROM(t, env, mapper, image(size))
	for _, w := range writes {
		rom.WriteMem(uint16(w[0]), uint8(w[1]), emutime.Zero)
	}

	a := state.NewArchive(1)
	rom.Snapshot(a)
	data, err := a.Marshal()
	test.DemandSuccess(t, err)

	var expected [0x10000]uint8
	for i := range expected {
		expected[i] = rom.PeekMem(uint16(i), emutime.Zero)
	}
	rom.Destroy()

	b, err := state.Unmarshal(data)
	test.DemandSuccess(t, err)
	restored := newROM(t, env, mapper, image(size))
	test.DemandSuccess(t, restored.Restore(b), mapper)

	for i := range expected {
		if !test.ExpectEquality(t, restored.ReadMem(uint16(i), emutime.Zero), expected[i], mapper, i) {
			return
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	roundTrip(t, "KonamiSCC", 0x20000, [][2]int{{0x5000, 3}, {0xb000, 9}, {0x9000, 0x3f}, {0x9805, 0x42}})
	roundTrip(t, "Hydlide2", 0x20000, [][2]int{{0x6000, 0x10}, {0x4123, 0x12}, {0x7000, 5}})
	roundTrip(t, "ASCII8SRAM", 0x20000, [][2]int{{0x7800, 0x10}, {0xa000, 0x34}, {0x6000, 7}})
	roundTrip(t, "GameMaster2", 0x20000, [][2]int{{0xa000, 0x30}, {0xb010, 0x56}, {0x6000, 4}})
	roundTrip(t, "Panasonic", 0x20000, [][2]int{{0x7ff9, 0x1c}, {0x6c00, 9}, {0x7ff8, 0x81}})
	roundTrip(t, "Generic16kB", 0x40000, [][2]int{{0x4000, 7}, {0x8000, 0x23}})
}

func TestRestoreMismatch(t *testing.T) {
	env, _ := newEnv(t)

	rom := newROM(t, env, "Konami", image(0x20000))
	a := state.NewArchive(1)
	rom.Snapshot(a)

	other := newROM(t, env, "ASCII8", image(0x20000))
	test.ExpectFailure(t, other.Restore(a))

	d := image(0x20000)
	d[0] = 0x99
	other = newROM(t, env, "Konami", d)
	test.ExpectFailure(t, other.Restore(a))
}
