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

// Package hardware is the base package for the MSX emulation. It and its
// sub-packages contain everything needed to build a machine from a hardware
// configuration and advance it through emulated time.
//
// The machine package is the entry point. It creates the time model
// (emutime and scheduler), the processor's view of the address space
// (cpuinterface), the processor shell (cpu) and the devices named by the
// configuration (cartridges in memory/cartridge, mapped RAM in
// memory/memmapper). Devices see the rest of the machine through an
// environment.Environment and never through the machine itself.
package hardware
