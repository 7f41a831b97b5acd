package controller

import (
	"sync"
	"time"
)

// Timer is a scheduled task that can be cancelled before it runs.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d. Tests swap in a manual scheduler.
type Scheduler func(d time.Duration, fn func()) Timer

func AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Debouncer keeps at most one pending task; each Trigger cancels the
// previous one and starts the quiet period again.
type Debouncer struct {
	mu       sync.Mutex
	delay    time.Duration
	schedule Scheduler
	pending  Timer
}

func NewDebouncer(delay time.Duration, schedule Scheduler) *Debouncer {
	if schedule == nil {
		schedule = AfterFunc
	}
	return &Debouncer{delay: delay, schedule: schedule}
}

func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = d.schedule(d.delay, fn)
}

func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
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
