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

// Package prefs facilitates the storage of preferences to disk. Preference
// values are typed (Bool, String and Int) and are added to a Disk instance
// with a unique key. A Disk instance can be saved and loaded as required.
//
// Values can be changed directly with the Set() function of each type. Hooks
// can be registered to be called before and after a value is changed.
//
// A Disk created with an empty path is never written to or read from. This is
// useful for tests and for machines that should not be influenced by any
// preferences on disk.
//
// The file format is a simple key::value list, one preference per line,
// preceded by a warning line. Keys from other Disk instances sharing the same
// file are preserved when saving.
package prefs
