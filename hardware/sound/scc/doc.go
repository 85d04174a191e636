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

// Package scc implements the register file of the Konami SCC sound chip, as
// found in Konami cartridges with the SCC mapper. Sound is not synthesised.
//
// The chip is accessed through a 256 byte window. In the layout used by the
// cartridges:
//
//	0x00 - 0x7f	wave tables. 32 bytes for each of channels 1 to 4. channel
//			5 shares the wave table of channel 4
//	0x80 - 0x89	frequency of channels 1 to 5. 12 bits, low byte first
//	0x8a - 0x8e	volume of channels 1 to 5. 4 bits
//	0x8f		channel enable. one bit per channel
//	0x90 - 0x9f	mirror of 0x80 - 0x8f
//	0xc0 - 0xdf	deformation register
//
// Only the wave tables can be read. Everything else reads as 0xff.
package scc
