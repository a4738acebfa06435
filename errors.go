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

import "errors"

// Errors returned while loading a simulation. They are wrapped with
// information about the offending file or directory, so they should be
// checked with errors.Is.
var (
	// ErrInvalidPath is returned when no simulation directory is given.
	ErrInvalidPath = errors.New("invalid simulation path")

	// ErrNotADirectory is returned when the simulation path does not
	// exist or is not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrGridNotFound is returned when the simulation directory
	// contains no grid*.h5 file.
	ErrGridNotFound = errors.New("grid file not found")

	// ErrFileCountMismatch is returned when the number of post*.h5 files
	// differs from the number of post*.xmf files.
	ErrFileCountMismatch = errors.New("mismatch in number of HDF5 and xmf files")

	// ErrEmptyDataset is returned when the simulation directory
	// contains no post*.h5 files.
	ErrEmptyDataset = errors.New("no HDF5 data files found")

	// ErrTimestampParse is returned when the time of an output
	// step can't be read from its .xmf file.
	ErrTimestampParse = errors.New("problem reading the time from the .xmf files")

	// ErrShapeMismatch is returned when an array does not have the
	// shape implied by the grid.
	ErrShapeMismatch = errors.New("array shape mismatch")

	// ErrInvalidName is returned for a simulation name that is not
	// printable text.
	ErrInvalidName = errors.New("invalid simulation name")

	// ErrUnknownField is returned when a field is requested by a name
	// that the simulation does not define.
	ErrUnknownField = errors.New("unknown field")
)
