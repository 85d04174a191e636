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

// Package machine is the machine orchestrator. A Machine owns every device
// of one emulated MSX: the scheduler, the processor and its address space,
// the devices of the machine configuration and the devices of every loaded
// extension.
//
// The life of a machine is:
//
//	Unpowered -> Powered -> Active <-> Paused -> torn down
//
// PowerUp() resets every device at the current time. Activate() allows
// Execute() to advance the timeline. Pause() stops the processor only, every
// other device keeps running. Destroy() tears down the machine in the
// reverse of the order it was built.
//
// Extensions are hardware configurations that can be added to and removed
// from a running machine. An extension that needs a cartridge slot reserves
// one with the slots package. Loading an extension either succeeds or leaves
// the machine as it was.
//
// The Machine also provides the per-machine services that devices find in
// their environment: the I/O bus, reference counted shared resources and
// user name allocation.
package machine
