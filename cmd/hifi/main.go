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

// Command hifi is a command-line interface for loading and inspecting the
// output of HiFi plasma simulations.
package main

import (
	"fmt"
	"os"

	"github.com/hifipy/hifi/hifiutil"
)

func main() {
	if err := hifiutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
