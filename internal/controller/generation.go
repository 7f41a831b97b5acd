package controller

import "sync/atomic"

// generation issues increasing request tokens for one query category.
// Only a result carrying the latest token may touch the view.
type generation struct {
	latest atomic.Uint64
}

func (g *generation) next() uint64 {
	return g.latest.Add(1)
}

func (g *generation) isLatest(token uint64) bool {
	return g.latest.Load() == token
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
