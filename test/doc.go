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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect functions report a failure with t.Errorf() and the test
// continues. The Demand functions report with t.Fatalf() and the test stops.
// Use a Demand function when later parts of the test depend on the value
// being correct.
//
// ExpectSuccess() and ExpectFailure() interpret the value according to its
// type: a bool is a success when true and an error is a success when nil. A
// nil value is a success because that is how a nil error arrives.
package test
