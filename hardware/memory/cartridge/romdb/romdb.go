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

// Package romdb is the ROM signature database. The database maps the SHA-1
// hash of a ROM image to the mapper type of the cartridge.
//
// The database is a CSV file with one record per line:
//
//	sha1,type[,title]
//
// Lines beginning with # are comments. The type field is not checked by the
// package. A database that can't be read or that contains a bad record is
// malformed and every search of it will return Malformed.
package romdb

import (
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
)

// Result of a search of the database.
type Result int

// List of valid Result values.
const (
	NotFound Result = iota
	Found
	Malformed
)

func (r Result) String() string {
	switch r {
	case NotFound:
		return "not found"
	case Found:
		return "found"
	case Malformed:
		return "malformed"
	}
	return "unknown"
}

// Entry is a single record in the database.
type Entry struct {
	Hash  string
	Type  string
	Title string
}

func (e Entry) String() string {
	if e.Title == "" {
		return fmt.Sprintf("%s [%s]", e.Hash, e.Type)
	}
	return fmt.Sprintf("%s [%s] %s", e.Title, e.Type, e.Hash)
}

// DB is the signature database.
type DB struct {
	entries map[string]Entry

	// the reason the database is malformed. nil if the database is good
	err error
}

// the number of hex digits in a SHA-1 hash.
const hashLen = 40

// Parse database records from r. Parse always returns a database. Any error
// is recorded and the database is treated as malformed.
func Parse(r io.Reader) *DB {
	db := &DB{entries: make(map[string]Entry)}

	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			db.err = curated.Errorf("romdb: %v", err)
			break
		}

		if len(rec) < 2 || len(rec) > 3 {
			line, _ := cr.FieldPos(0)
			db.err = curated.Errorf("romdb: line %d: %v", line, "wrong number of fields")
			break
		}

		ent := Entry{
			Hash: strings.ToLower(strings.TrimSpace(rec[0])),
			Type: strings.TrimSpace(rec[1]),
		}
		if len(rec) == 3 {
			ent.Title = strings.TrimSpace(rec[2])
		}

		if _, err := hex.DecodeString(ent.Hash); err != nil || len(ent.Hash) != hashLen {
			line, _ := cr.FieldPos(0)
			db.err = curated.Errorf("romdb: line %d: %v", line, fmt.Sprintf("bad hash (%s)", ent.Hash))
			break
		}
		if ent.Type == "" {
			line, _ := cr.FieldPos(1)
			db.err = curated.Errorf("romdb: line %d: %v", line, "missing type")
			break
		}

		db.entries[ent.Hash] = ent
	}

	return db
}

// Load the database from the named file. An empty filename results in an
// empty database.
func Load(filename string) *DB {
	if filename == "" {
		return &DB{entries: make(map[string]Entry)}
	}

	f, err := os.Open(filename)
	if err != nil {
		db := &DB{entries: make(map[string]Entry)}
		if errors.Is(err, fs.ErrNotExist) {
			db.err = curated.Errorf("romdb: %v", fmt.Sprintf("database not found (%s)", filename))
		} else {
			db.err = curated.Errorf("romdb: %v", err)
		}
		return db
	}
	defer f.Close()

	return Parse(f)
}

// Err returns the reason the database is malformed. Returns nil if the
// database is good.
func (db *DB) Err() error {
	return db.err
}

// Len returns the number of entries in the database.
func (db *DB) Len() int {
	return len(db.entries)
}

// Search the database for the hash.
func (db *DB) Search(hash string) (Entry, Result) {
	if db.err != nil {
		return Entry{}, Malformed
	}
	ent, ok := db.entries[strings.ToLower(hash)]
	if !ok {
		return Entry{}, NotFound
	}
	return ent, Found
}
