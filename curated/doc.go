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

// Package curated is a helper package for the plain Go error type. Curated
// errors are created with Errorf() and are identified by the pattern string
// used to create them rather than by the formatted message.
//
//	const UnknownMapperType = "rom: unknown mapper type (%s)"
//
//	err := curated.Errorf(UnknownMapperType, "FOO")
//	if curated.Is(err, UnknownMapperType) {
//		...
//	}
//
// Has() looks for the pattern anywhere in the chain of wrapped curated errors.
// This is how the emulation distinguishes expected configuration errors (an
// extension that cannot be found, a slot that is already in use) from
// unexpected ones.
//
// The Error() implementation normalises the message so that adjacent,
// identical parts of the chain are only printed once. Parts are separated by
// the sub-string ": ". For example, wrapping "rom: bad size" in "rom: %v"
// prints as "rom: bad size" and not "rom: rom: bad size".
//
// Sentinel patterns should be declared as exported string constants in the
// package that creates the error.
package curated
