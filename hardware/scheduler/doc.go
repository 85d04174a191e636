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

// Package scheduler delivers timed callbacks to emulated devices. A device
// asks to be called at an EmuTime with SetSyncPoint() and is called, through
// the Schedulable interface, once the machine's timeline reaches that time.
//
// Callbacks for the same time are delivered in the order the sync points
// were set. A device is never called before the time it asked for. Reset()
// discards every pending sync point.
package scheduler
