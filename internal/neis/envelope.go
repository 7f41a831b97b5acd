package neis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// resultBlock carries codes like INFO-000 (ok), INFO-200 (no data) or
// ERROR-300 (missing parameter).
type resultBlock struct {
	Code    string `json:"CODE"`
	Message string `json:"MESSAGE"`
}

// apiFailure is an ERROR-* result reported inside a 200 response.
type apiFailure struct {
	result resultBlock
}

func (f *apiFailure) Error() string {
	if f.result.Message == "" {
		return "api reported " + f.result.Code
	}
	return f.result.Message
}

// decodeRows extracts the row list from a response of the form
//
//	{"<dataset>": [{"head": [...]}, {"row": [...]}]}
//
// An absent or short envelope yields nil rows and no error; only malformed
// JSON and ERROR-* result codes are errors.
func decodeRows[T any](body []byte, dataset string) ([]T, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return nil, fmt.Errorf("malformed response: %w", err)
	}

	if raw, ok := top[dataset]; ok {
		var parts []json.RawMessage
		if err := json.Unmarshal(raw, &parts); err != nil {
			return nil, fmt.Errorf("malformed %s envelope: %w", dataset, err)
		}
		if len(parts) < 2 {
			return nil, nil
		}
		var data struct {
			Row []T `json:"row"`
		}
		if err := json.Unmarshal(parts[1], &data); err != nil {
			return nil, fmt.Errorf("malformed %s rows: %w", dataset, err)
		}
		return data.Row, nil
	}

	// Without data the API answers with a bare RESULT block instead.
	if raw, ok := top["RESULT"]; ok {
		var res resultBlock
		if err := json.Unmarshal(raw, &res); err != nil {
			return nil, fmt.Errorf("malformed result block: %w", err)
		}
		if strings.HasPrefix(res.Code, "ERROR") {
			return nil, &apiFailure{result: res}
		}
	}
	return nil, nil
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
