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

package cartridge

import "github.com/jlautenbag/openMSX/hardware/emutime"

// Konami cartridges with an SCC and some others. examples: Nemesis 2,
// Nemesis 3, King's Valley 2, Space Manbow, Solid Snake, Quarth.
//
// The bank select addresses for the four 8KiB regions in 0x4000 to 0xbfff:
//
//	0x5000 - 0x57ff
//	0x7000 - 0x77ff
//	0x9000 - 0x97ff
//	0xb000 - 0xb7ff
//
// Writing a value with the low six bits set to the 0x9000 register enables
// the SCC in 0x9800 to 0x9fff. Any other value disables it.
func writeKonamiSCC(rom *ROM, addr uint16, value uint8, t emutime.EmuTime) {
	if addr < 0x5000 || addr >= 0xc000 {
		return
	}

	// no bank selection in the SCC window
	if rom.inSCCWindow(addr) {
		rom.scc.Write(uint8(addr), value, t)
		return
	}

	if addr&0xf800 == 0x9000 {
		rom.sccEnabled = value&0x3f == 0x3f
		rom.invalidate(sccStart, sccEnd-sccStart)
	}

	if addr&0x1800 == 0x1000 {
		rom.setROM8kB(int(addr>>13), int(value))
	}
}

// Konami cartridges without an SCC and some others. examples: Nemesis,
// Penguin Adventure, Usas, Metal Gear, The Maze of Galious.
//
// The region at 0x4000 is fixed. The other regions are selected by writing
// to 0x6000, 0x8000 and 0xa000.
func writeKonami(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	switch addr {
	case 0x6000, 0x8000, 0xa000:
		rom.setROM8kB(int(addr>>13), int(value))
	}
}

// Konami Game Master 2. 8KiB banks with 8KiB of SRAM that is selected in
// 4KiB halves.
//
// Writes to 0x6000, 0x8000 and 0xa000 (and the 4KiB above them) select the
// bank for the region. Bit 4 of the value selects SRAM and bit 5 selects the
// half of the SRAM. The selected half is mirrored in both halves of the
// region.
//
// The SRAM can only be written if it is selected in the region at 0xa000.
// Writes go to 0xb000 to 0xbfff.
func writeGameMaster2(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	if addr < 0x6000 || addr >= 0xc000 {
		return
	}

	if addr >= 0xb000 && rom.regioSRAM&0x20 != 0 {
		b := rom.table[0xb]
		rom.sram.Write(b.Offset+int(addr&0x0fff), value)
	}

	if addr&0x1000 != 0 {
		return
	}

	region := int(addr >> 13)
	if value&0x10 != 0 {
		rom.regioSRAM |= 1 << region
		offset := 0x0000
		if value&0x20 != 0 {
			offset = 0x1000
		}
		rom.setBank4kB(2*region, sramBuffer, offset)
		rom.setBank4kB(2*region+1, sramBuffer, offset)
	} else {
		rom.regioSRAM &^= 1 << region
		rom.setROM8kB(region, int(value))
	}
}

// Konami Synthesizer. Writes to 0x4000 go to the DAC.
func writeSynthesizer(rom *ROM, addr uint16, value uint8, t emutime.EmuTime) {
	if addr == 0x4000 {
		rom.dac.Write(value, t)
	}
}

// Konami Majutsushi. 8KiB banks selected by writing to the region, as
// Generic8kB, and a DAC in 0x5000 to 0x5fff.
func writeMajutsushi(rom *ROM, addr uint16, value uint8, t emutime.EmuTime) {
	switch {
	case addr >= 0x6000 && addr < 0xc000:
		rom.setROM8kB(int(addr>>13), int(value))
	case addr >= 0x5000 && addr < 0x6000:
		rom.dac.Write(value, t)
	}
}
