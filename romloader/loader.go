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

package romloader

import (
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jlautenbag/openMSX/curated"
)

// Loader specifies the ROM image to load.
type Loader struct {
	// filename or URL of the ROM image
	Filename string

	// expected hash of the image. empty string indicates that the hash is
	// unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	Hash string

	// copy of the loaded data. if Data is not empty before the call to Load()
	// then it is treated as inline data and no file is read
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string) Loader {
	return Loader{Filename: filename}
}

// NewInlineLoader creates a Loader for data that has already been loaded.
func NewInlineLoader(name string, data []byte) Loader {
	return Loader{
		Filename: name,
		Data:     data,
	}
}

// ShortName returns a shortened version of the filename.
func (cl Loader) ShortName() string {
	s := filepath.Base(cl.Filename)
	return strings.TrimSuffix(s, filepath.Ext(cl.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (cl Loader) HasLoaded() bool {
	return len(cl.Data) > 0
}

// Load the ROM data. Filenames with a valid scheme will use that method to
// load the data. Currently supported schemes are HTTP(S) and local files.
func (cl *Loader) Load() error {
	if len(cl.Data) == 0 {
		scheme := "file"
		if u, err := url.Parse(cl.Filename); err == nil && u.Scheme != "" {
			scheme = u.Scheme
		}

		// a single letter scheme is a windows drive letter
		if len(scheme) == 1 {
			scheme = "file"
		}

		switch scheme {
		case "http", "https":
			resp, err := http.Get(cl.Filename)
			if err != nil {
				return curated.Errorf("romloader: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				return curated.Errorf("romloader: %v", fmt.Sprintf("http status %d", resp.StatusCode))
			}

			cl.Data, err = io.ReadAll(resp.Body)
			if err != nil {
				return curated.Errorf("romloader: %v", err)
			}

		case "file":
			var err error
			cl.Data, err = os.ReadFile(cl.Filename)
			if err != nil {
				return curated.Errorf("romloader: %v", err)
			}

		default:
			return curated.Errorf("romloader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
		}

		if len(cl.Data) == 0 {
			return curated.Errorf("romloader: %v", fmt.Sprintf("empty image (%s)", cl.Filename))
		}
	}

	hash := fmt.Sprintf("%x", sha1.Sum(cl.Data))
	if cl.Hash != "" && cl.Hash != hash {
		return curated.Errorf("romloader: %v", "unexpected hash value")
	}
	cl.Hash = hash

	return nil
}
