// seehuhn.de/go/annotflip - mirror the geometry of PDF annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Licensify adds the GPL license header to all Go source files below the
// current directory.  With -check, files without the header are listed and
// the exit status is non-zero, but no files are changed.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const header = `// seehuhn.de/go/annotflip - mirror the geometry of PDF annotations
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

`

type status int

const (
	statusOK      status = iota // header present
	statusMissing               // header can be added
	statusUnknown               // file starts with something other than a package clause
)

func check(body []byte) status {
	switch {
	case bytes.HasPrefix(body, []byte(header)):
		return statusOK
	case bytes.HasPrefix(body, []byte("package ")):
		return statusMissing
	default:
		return statusUnknown
	}
}

// skipDir reports whether a directory is excluded from processing.
func skipDir(path string) bool {
	name := filepath.Base(path)
	if path == "." {
		return false
	}
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata"
}

func main() {
	checkOnly := flag.Bool("check", false, "only list files without license header")
	flag.Parse()

	missing := 0
	err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDir(path) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}

		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		switch check(body) {
		case statusOK:
			return nil
		case statusUnknown:
			fmt.Println("ATTENTION " + path)
			return nil
		}

		missing++
		if *checkOnly {
			fmt.Println("missing " + path)
			return nil
		}
		fmt.Println("updating " + path)
		return os.WriteFile(path, append([]byte(header), body...), 0o644)
	})
	if err != nil {
		log.Fatal(err)
	}
	if *checkOnly && missing > 0 {
		os.Exit(1)
	}
}
