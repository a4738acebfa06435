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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// The time of an output step is stored at a fixed position in its .xmf
// file: the 6th line, characters 18 through 29, as written by the HiFi
// postprocessor.
const (
	xmfTimeLine  = 5
	xmfTimeBegin = 18
	xmfTimeEnd   = 30
)

// ParseXMFTime extracts the simulation time from the lines of a HiFi
// .xmf file.
func ParseXMFTime(lines []string) (float64, error) {
	if len(lines) <= xmfTimeLine {
		return 0, fmt.Errorf("file has %d lines; the time is on line %d", len(lines), xmfTimeLine+1)
	}
	line := lines[xmfTimeLine]
	if len(line) <= xmfTimeBegin {
		return 0, fmt.Errorf("line %d is too short to hold the time: %q", xmfTimeLine+1, line)
	}
	end := xmfTimeEnd
	if end > len(line) {
		end = len(line)
	}
	field := strings.TrimSpace(line[xmfTimeBegin:end])
	t, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %v", xmfTimeLine+1, err)
	}
	return t, nil
}

// readXMFTime reads the time out of the .xmf file at path.
func readXMFTime(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	for s.Scan() && len(lines) <= xmfTimeLine {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return 0, err
	}
	return ParseXMFTime(lines)
}
