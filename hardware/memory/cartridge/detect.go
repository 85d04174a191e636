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

package cartridge

import (
	"fmt"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
	"github.com/jlautenbag/openMSX/environment"
	"github.com/jlautenbag/openMSX/hardware/memory/cartridge/romdb"
	"github.com/jlautenbag/openMSX/logger"
)

// Method is how the mapper type of a cartridge was decided.
type Method int

// List of valid Method values.
const (
	Explicit Method = iota
	Database
	Guess
)

func (m Method) String() string {
	switch m {
	case Explicit:
		return "explicit"
	case Database:
		return "database"
	case Guess:
		return "guess"
	}
	return "unknown"
}

// Detection is the result of Resolve().
type Detection struct {
	Type   MapperType
	Method Method

	// title of the cartridge from the ROM database
	Title string
}

func (d Detection) String() string {
	if d.Title != "" {
		return fmt.Sprintf("%s (%s: %s)", d.Type, d.Method, d.Title)
	}
	return fmt.Sprintf("%s (%s)", d.Type, d.Method)
}

// Resolve the mapper type of a ROM image. The requested type is used unless
// it is empty or "auto", in which case the ROM database named by the
// ROMDatabase preference is searched for the hash of the image. If the image
// is not in the database the mapper type is guessed from the image.
//
// A malformed database is only an error if the GuessOnMalformed preference
// is false.
func Resolve(env *environment.Environment, requested string, data []uint8, hash string) (Detection, error) {
	requested = strings.TrimSpace(requested)
	if requested != "" && !strings.EqualFold(requested, "auto") {
		mt, err := ParseMapperType(requested)
		if err != nil {
			return Detection{}, err
		}
		return Detection{Type: mt, Method: Explicit}, nil
	}

	db := romdb.Load(env.Prefs.ROMDatabase.String())
	ent, res := db.Search(hash)

	switch res {
	case romdb.Found:
		mt, err := ParseMapperType(ent.Type)
		if err == nil {
			return Detection{Type: mt, Method: Database, Title: ent.Title}, nil
		}
		if !env.Prefs.GuessOnMalformed.Get().(bool) {
			return Detection{}, curated.Errorf(MalformedDatabase, err)
		}
		logger.Logf(env, "cartridge", "romdb entry for %s: %v", hash, err)

	case romdb.Malformed:
		if !env.Prefs.GuessOnMalformed.Get().(bool) {
			return Detection{}, curated.Errorf(MalformedDatabase, db.Err())
		}
		logger.Log(env, "cartridge", db.Err())

	case romdb.NotFound:
	}

	return Detection{Type: Fingerprint(data), Method: Guess}, nil
}
