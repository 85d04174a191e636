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

// Package state is the serialisation layer for emulated hardware. An Archive
// is a versioned tree of named fields. Every stateful component writes its
// fields into an Archive with Snapshot() and reads them back with Restore().
//
// Components own their version numbers. A component restoring an Archive with
// an older version number is expected to migrate the fields it finds.
package state
