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

package machine

import (
	"fmt"
)

// UserName implements the environment.UserNames interface. It returns the
// lowest numbered name of the form "untitledN" that is not in use by another
// instance of the named hardware.
func (m *Machine) UserName(hwName string) string {
	used, ok := m.userNames[hwName]
	if !ok {
		used = make(map[string]bool)
		m.userNames[hwName] = used
	}
	for n := 1; ; n++ {
		s := fmt.Sprintf("untitled%d", n)
		if !used[s] {
			used[s] = true
			return s
		}
	}
}

// FreeUserName implements the environment.UserNames interface.
func (m *Machine) FreeUserName(hwName string, userName string) {
	if used, ok := m.userNames[hwName]; ok {
		delete(used, userName)
		if len(used) == 0 {
			delete(m.userNames, hwName)
		}
	}
}
