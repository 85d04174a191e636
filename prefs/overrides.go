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

package prefs

import (
	"fmt"
	"sort"
	"strings"
)

// Overrides are preference values specified on the command line, in the form
// "key::value; key::value". Invalid entries are ignored.
type Overrides map[string]string

// ParseOverrides parses a command line preferences string.
func ParseOverrides(s string) Overrides {
	o := make(Overrides)
	for _, p := range strings.Split(s, ";") {
		kv := strings.Split(p, "::")
		if len(kv) == 2 {
			o[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	return o
}

func (o Overrides) String() string {
	keys := make([]string, 0, len(o))
	for key := range o {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s::%v; ", key, o[key]))
	}
	return strings.TrimSuffix(s.String(), "; ")
}
