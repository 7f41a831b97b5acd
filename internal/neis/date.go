package neis

import (
	"fmt"
	"strings"
	"time"
)

const (
	isoLayout  = "2006-01-02"
	wireLayout = "20060102"
)

var koreanWeekdays = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

// QueryDate is a calendar date with no time or zone component.
// The zero value means "no date".
type QueryDate struct {
	t time.Time
}

func dateOf(year int, month time.Month, day int) QueryDate {
	return QueryDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewDate builds a QueryDate, normalising out-of-range days the way time.Date does.
func NewDate(year int, month time.Month, day int) QueryDate {
	return dateOf(year, month, day)
}

// Today returns the current calendar date in loc.
func Today(now time.Time, loc *time.Location) QueryDate {
	if loc != nil {
		now = now.In(loc)
	}
	return dateOf(now.Date())
}

// ParseDate parses the YYYY-MM-DD form used by date inputs.
func ParseDate(s string) (QueryDate, error) {
	t, err := time.Parse(isoLayout, strings.TrimSpace(s))
	if err != nil {
		return QueryDate{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return dateOf(t.Date()), nil
}

// ParseWireDate parses the 8-digit YYYYMMDD form used by MLSV_YMD.
func ParseWireDate(s string) (QueryDate, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(wireLayout) {
		return QueryDate{}, fmt.Errorf("invalid date %q: expected YYYYMMDD", s)
	}
	t, err := time.Parse(wireLayout, s)
	if err != nil {
		return QueryDate{}, fmt.Errorf("invalid date %q: expected YYYYMMDD", s)
	}
	return dateOf(t.Date()), nil
}

// ParseAnyDate accepts either the ISO or the wire form.
func ParseAnyDate(s string) (QueryDate, error) {
	if strings.Contains(s, "-") {
		return ParseDate(s)
	}
	return ParseWireDate(s)
}

func (d QueryDate) IsZero() bool { return d.t.IsZero() }

func (d QueryDate) ISO() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(isoLayout)
}

func (d QueryDate) Wire() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(wireLayout)
}

func (d QueryDate) AddDays(n int) QueryDate {
	if d.IsZero() {
		return d
	}
	return dateOf(d.t.Year(), d.t.Month(), d.t.Day()+n)
}

func (d QueryDate) Equal(o QueryDate) bool { return d.t.Equal(o.t) }

// LongLabel renders the date in Korean long form, e.g. "2024년 3월 1일 금요일".
func (d QueryDate) LongLabel() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%d년 %d월 %d일 %s", d.t.Year(), int(d.t.Month()), d.t.Day(), koreanWeekdays[d.t.Weekday()])
}

func (d QueryDate) String() string { return d.ISO() }

func (d QueryDate) MarshalText() ([]byte, error) {
	return []byte(d.ISO()), nil
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
