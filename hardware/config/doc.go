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

// Package config describes emulated hardware. A HardwareConfig is either a
// machine or an extension and is made up of DeviceConfig entries. Each
// DeviceConfig has a type, an identifier, a flat set of named parameters and
// a list of placements in the processor's slot structure.
//
// Configurations are written as Lua tables, for example:
//
//	hardware = {
//		type = "extension",
//		name = "Konami Game",
//		devices = {
//			{
//				type = "ROM",
//				id = "game",
//				params = { filename = "game.rom", mappertype = "auto" },
//				mem = { { ps = "any", base = 0x4000, size = 0x8000 } },
//			},
//		},
//	}
//
// The Lua state used to read a configuration only has the base, string and
// math libraries. A Repository finds configurations by name.
package config
