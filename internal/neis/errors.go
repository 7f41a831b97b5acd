package neis

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by FindBestMatch when the directory has no match.
	ErrNotFound = errors.New("학교를 찾을 수 없습니다.")

	ErrEmptyPattern = errors.New("school name pattern is empty")
	ErrInvalidQuery = errors.New("meal query needs a complete school identity and a date")
)

// RemoteError reports a failed call to the NEIS API: transport failure,
// non-2xx status, malformed JSON or an ERROR result code.
type RemoteError struct {
	Op     string // dataset name, e.g. "schoolInfo"
	Status int    // HTTP status, 0 when no response was received
	Code   string // NEIS RESULT code when the API reported one
	Err    error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("%s: %s (%s)", e.Op, e.Err, e.Code)
	case e.Status != 0:
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Op, e.Err, e.Status)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
}

func (e *RemoteError) Unwrap() error { return e.Err }

// IsRemote reports whether err is, or wraps, a *RemoteError.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

//This project is the school meal lookup service built on the OpenSourceDUTH API backend. It looks up daily cafeteria menus from the NEIS open data service.
//API Copyright (C) 2025 OpenSourceDUTH
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
