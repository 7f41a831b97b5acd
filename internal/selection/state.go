package selection

import (
	"sync"

	"SchoolMeal/internal/neis"
)

// DefaultSchool is used when no default is configured.
var DefaultSchool = neis.SchoolIdentity{
	Name:       "서울고등학교",
	SchoolCode: "9290083",
	OfficeCode: "T10",
}

// State holds the school that scopes meal queries for one page.
// The identity is always replaced as a whole.
type State struct {
	mu      sync.RWMutex
	current neis.SchoolIdentity
}

// New returns a State holding def, or DefaultSchool when def is incomplete.
func New(def neis.SchoolIdentity) *State {
	if !def.Complete() {
		def = DefaultSchool
	}
	return &State{current: def}
}

func (s *State) Current() neis.SchoolIdentity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps in identity and returns the one it replaced.
func (s *State) Replace(identity neis.SchoolIdentity) neis.SchoolIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = identity
	return prev
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
