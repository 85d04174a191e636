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

// Package paths contains functions to prepare paths for emulator resources.
//
// The resource directory is ".openmsx" in the current working directory if
// it exists. Otherwise it is "openmsx" in the user's configuration directory
// as reported by os.UserConfigDir().
//
// Persistent data (SRAM images for example) lives in sub-directories of the
// resource directory.
package paths
