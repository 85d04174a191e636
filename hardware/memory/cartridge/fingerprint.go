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

// the Z80 opcode for LD (nn),A. bank switching code in ROMs writes to the
// bank select addresses with this instruction.
const opLDnnA = 0x32

// Fingerprint guesses the mapper type of a ROM image. Images of 64KiB or
// less are Plain. Larger images are scanned for writes to the bank select
// addresses of the common mapper types and the type with the most writes is
// chosen.
func Fingerprint(data []uint8) MapperType {
	if len(data) <= 0x10000 {
		return Plain
	}

	counts := make(map[MapperType]int)

	for i := 0; i < len(data)-2; i++ {
		if data[i] != opLDnnA {
			continue
		}
		addr := uint16(data[i+1]) | uint16(data[i+2])<<8
		switch addr {
		case 0x5000, 0x9000, 0xb000:
			counts[KonamiSCC]++
		case 0x4000, 0x8000, 0xa000:
			counts[Konami]++
		case 0x6800, 0x7800:
			counts[ASCII8kB]++
		case 0x6000:
			counts[Konami]++
			counts[ASCII8kB]++
			counts[ASCII16kB]++
		case 0x7000:
			counts[KonamiSCC]++
			counts[ASCII8kB]++
			counts[ASCII16kB]++
		case 0x77ff:
			counts[ASCII16kB]++
		}
	}

	// ASCII8 loses ties with the other types
	if counts[ASCII8kB] > 0 {
		counts[ASCII8kB]--
	}

	// the order of candidates decides ties. an image with no bank select
	// writes at all is Generic8kB
	best := Generic8kB
	for _, mt := range []MapperType{KonamiSCC, Konami, ASCII8kB, ASCII16kB} {
		if counts[mt] > counts[best] {
			best = mt
		}
	}

	return best
}
