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

// Package hifi loads the postprocessed output of HiFi plasma simulations.
//
// A postprocessed simulation directory holds one grid file (grid*.h5),
// one HDF5 data file per output step (post*.h5) and one XDMF metadata file
// per output step (post*.xmf) from which the simulation time is read.
// New reads the whole directory into a Simulation, which holds the grid
// axes, the output times and the physical variables derived from the raw
// HiFi variables U01 to U13, each as a [time, y, x] array.
package hifi

// Version gives the version of this software.
const Version = "0.1.0"
