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

// resetGeneric is the reset of most mapper types. the first 16KiB of the ROM
// is in page 1 and the second 16KiB in page 2. pages 0 and 3 are unmapped.
func resetGeneric(rom *ROM) {
	rom.setUnmapped16kB(0)

	switch rom.mapper {
	case RType:
		rom.setROM16kB(1, 0x17)
	default:
		rom.setROM16kB(1, 0)
	}

	switch rom.mapper {
	case Hydlide2, ASCII16kB:
		rom.setROM16kB(2, 0)
	default:
		rom.setROM16kB(2, 1)
	}

	rom.setUnmapped16kB(3)
}

// mappedOdd returns true if the ROM image starts in an odd numbered page.
// this is the case if the image has a cartridge header or if it is placed in
// page 1 or page 3.
func (rom *ROM) mappedOdd() bool {
	if rom.imageSize >= 2 && rom.rom[0] == 'A' && rom.rom[1] == 'B' {
		return true
	}
	return rom.lowestPage&1 == 1
}

// resetPlain maps images of 64KiB or less. the image is mirrored so that the
// start of the image is visible where the cartridge expects it.
func resetPlain(rom *ROM) {
	switch rom.imageSize >> 14 {
	case 0:
		for i := range 8 {
			rom.setROM8kB(i, 0)
		}
	case 1:
		for i := range 4 {
			rom.setROM16kB(i, 0)
		}
	case 2:
		if rom.mappedOdd() {
			rom.setROM16kB(0, 0)
			rom.setROM16kB(1, 0)
			rom.setROM16kB(2, 1)
			rom.setROM16kB(3, 1)
		} else {
			rom.setROM16kB(0, 0)
			rom.setROM16kB(1, 1)
			rom.setROM16kB(2, 0)
			rom.setROM16kB(3, 1)
		}
	case 3:
		if rom.mappedOdd() {
			rom.setROM16kB(0, 0)
			rom.setROM16kB(1, 0)
			rom.setROM16kB(2, 1)
			rom.setROM16kB(3, 2)
		} else {
			rom.setROM16kB(0, 0)
			rom.setROM16kB(1, 1)
			rom.setROM16kB(2, 2)
			rom.setROM16kB(3, 2)
		}
	default:
		for i := range 4 {
			rom.setROM16kB(i, i)
		}
	}
}

// writeNothing is used by mappers with no writable hardware.
func writeNothing(_ *ROM, _ uint16, _ uint8, _ emutime.EmuTime) {
}

// any write in 0x4000 to 0xbfff selects the 8KiB bank for the region written
// to.
func writeGeneric8kB(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	if addr >= 0x4000 && addr < 0xc000 {
		rom.setROM8kB(int(addr>>13), int(value))
	}
}

// any write in 0x4000 to 0xbfff selects the 16KiB bank for the page written
// to. examples: MSX-DOS 2, Hole in One Special.
func writeGeneric16kB(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	if addr >= 0x4000 && addr < 0xc000 {
		rom.setROM16kB(int(addr>>14), int(value))
	}
}

// Cross Blaim. a single bank select address for page 2.
func writeCrossBlaim(rom *ROM, addr uint16, value uint8, _ emutime.EmuTime) {
	if addr == 0x4045 {
		rom.setROM16kB(2, int(value))
	}
}
