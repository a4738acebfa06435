/*
Copyright © 2026 the HiFi authors.
This file is part of hifi.

hifi is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hifi is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hifi.  If not, see <http://www.gnu.org/licenses/>.
*/

package hifi

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File name patterns of the postprocessed HiFi output, e.g.
// grid_00000.h5, post_00000.h5 and post_00000.xmf.
const (
	gridPattern = "grid*.h5"
	postPattern = "post*.h5"
	xmfPattern  = "post*.xmf"
)

// expandPath replaces a leading "~" with the user's home directory.
func expandPath(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// checkDir makes sure that postpath is an existing directory and
// returns it with any leading "~" expanded.
func checkDir(postpath string) (string, error) {
	if postpath == "" {
		return "", fmt.Errorf("hifi: no simulation directory specified: %w", ErrInvalidPath)
	}
	dir := expandPath(postpath)
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return "", fmt.Errorf("hifi: %s: %w", postpath, ErrNotADirectory)
	}
	return dir, nil
}

// glob returns the sorted list of files in dir matching pattern.
func glob(dir, pattern string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// FindFilesAndTime lists the HDF5 data files and the .xmf metadata
// files in postpath, each in sorted order, and reads the simulation time
// of every .xmf file. The time is sensitive to the format of the .xmf
// files; see ParseXMFTime.
//
// The two lists are not required to be the same length here; ReadDirectory
// checks that. A directory without any data files is not an error either.
func FindFilesAndTime(postpath string) (h5, xmf []string, time []float64, err error) {
	dir, err := checkDir(postpath)
	if err != nil {
		return nil, nil, nil, err
	}
	if h5, err = glob(dir, postPattern); err != nil {
		return nil, nil, nil, fmt.Errorf("hifi: listing data files in %s: %v", postpath, err)
	}
	if xmf, err = glob(dir, xmfPattern); err != nil {
		return nil, nil, nil, fmt.Errorf("hifi: listing xmf files in %s: %v", postpath, err)
	}

	time = make([]float64, len(xmf))
	for i, f := range xmf {
		time[i], err = readXMFTime(f)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("hifi: %s: %w: %v", f, ErrTimestampParse, err)
		}
	}
	return h5, xmf, time, nil
}

// ReadDirectory opens each postprocessed output file in postpath using
// open and returns the open files in time order along with the
// simulation time of each one. The caller is responsible for closing the
// returned sources.
func ReadDirectory(postpath string, open Opener) ([]Source, []float64, error) {
	h5, xmf, time, err := FindFilesAndTime(postpath)
	if err != nil {
		return nil, nil, err
	}
	if len(h5) != len(xmf) {
		return nil, nil, fmt.Errorf("hifi: %s: %w (%d .h5, %d .xmf)",
			postpath, ErrFileCountMismatch, len(h5), len(xmf))
	}
	if len(h5) == 0 {
		return nil, nil, fmt.Errorf("hifi: %s: %w", postpath, ErrEmptyDataset)
	}

	sources := make([]Source, 0, len(h5))
	for _, f := range h5 {
		s, err := open(f)
		if err != nil {
			closeAll(sources)
			return nil, nil, err
		}
		sources = append(sources, s)
	}
	return sources, time, nil
}

// closeAll closes every source and returns the first error encountered.
func closeAll(sources []Source) error {
	var first error
	for _, s := range sources {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
