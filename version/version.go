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

// Package version reports the version of the program. The version number is
// set by the linker (-X .../version.number=x.y.z) and the revision comes from
// the build information embedded by the go tool.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is used when referring to the program.
const ApplicationName = "openMSX"

// set with the linker
var number string

// Info describes the build of the program.
type Info struct {
	// the version number. "unreleased" if the program was built from a
	// repository without a version number and "local" if there is no
	// version control information at all
	Version string

	// the vcs revision. suffixed with "+dirty" if the working tree had
	// uncommitted changes
	Revision string

	// true if the version is a numbered release
	Release bool
}

func (i Info) String() string {
	if i.Release {
		return fmt.Sprintf("%s %s", ApplicationName, i.Version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, i.Version, i.Revision)
}

var info Info

// Version returns the build information of the program.
func Version() Info {
	return info
}

func init() {
	info = fromBuildSettings(number, readSettings())
}

func readSettings() map[string]string {
	s := make(map[string]string)
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, v := range bi.Settings {
			s[v.Key] = v.Value
		}
	}
	return s
}

func fromBuildSettings(number string, settings map[string]string) Info {
	var i Info

	_, vcs := settings["vcs"]

	i.Revision = settings["vcs.revision"]
	if i.Revision == "" {
		i.Revision = "no revision information"
	} else if settings["vcs.modified"] == "true" {
		i.Revision = fmt.Sprintf("%s+dirty", i.Revision)
	}

	switch {
	case number != "":
		i.Version = number
		i.Release = true
	case vcs:
		i.Version = "unreleased"
	default:
		i.Version = "local"
	}

	return i
}
