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

// Package sram implements battery backed memory. The contents of the memory
// are read from disk when the SRAM is created and written back when it is
// destroyed.
//
// A missing, short or otherwise unreadable image is not an error. The
// memory starts blank in that case and a log entry is written.
//
// Images can begin with a fixed header, as used by the FM-PAC. An image
// without the expected header is treated the same as a missing image.
package sram
