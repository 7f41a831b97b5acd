package view

import (
	"context"
	"html/template"
	"sync"
)

// View is the set of page regions the controller reads and writes.
type View interface {
	SetTitle(title template.HTML, schoolLabel string)
	SetSuggestions(markup template.HTML, visible bool)
	SetContent(markup template.HTML)
	SetLoading(loading bool)
	SetDate(iso string)
	SetDateLabel(label string)
	SetInput(text string)
	Alert(message string)

	Date() string
	Input() string
}

// Snapshot is the full state of a page at one version.
type Snapshot struct {
	Version            uint64        `json:"version"`
	Title              template.HTML `json:"title"`
	SchoolLabel        string        `json:"school_label"`
	Suggestions        template.HTML `json:"suggestions"`
	SuggestionsVisible bool          `json:"suggestions_visible"`
	Content            template.HTML `json:"content"`
	Loading            bool          `json:"loading"`
	Date               string        `json:"date"`
	DateLabel          string        `json:"date_label"`
	Input              string        `json:"input"`
	Alert              string        `json:"alert,omitempty"`
	AlertID            uint64        `json:"alert_id"`
}

// Page is an in-memory View. Each write bumps the version and wakes
// anyone blocked in Wait.
type Page struct {
	mu      sync.Mutex
	state   Snapshot
	changed chan struct{}
}

func NewPage() *Page {
	return &Page{changed: make(chan struct{})}
}

func (p *Page) update(fn func(s *Snapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.state)
	p.state.Version++
	close(p.changed)
	p.changed = make(chan struct{})
}

func (p *Page) SetTitle(title template.HTML, schoolLabel string) {
	p.update(func(s *Snapshot) {
		s.Title = title
		s.SchoolLabel = schoolLabel
	})
}

func (p *Page) SetSuggestions(markup template.HTML, visible bool) {
	p.update(func(s *Snapshot) {
		s.Suggestions = markup
		s.SuggestionsVisible = visible
	})
}

func (p *Page) SetContent(markup template.HTML) {
	p.update(func(s *Snapshot) { s.Content = markup })
}

func (p *Page) SetLoading(loading bool) {
	p.update(func(s *Snapshot) { s.Loading = loading })
}

func (p *Page) SetDate(iso string) {
	p.update(func(s *Snapshot) { s.Date = iso })
}

func (p *Page) SetDateLabel(label string) {
	p.update(func(s *Snapshot) { s.DateLabel = label })
}

func (p *Page) SetInput(text string) {
	p.update(func(s *Snapshot) { s.Input = text })
}

// Alert records a blocking notice. AlertID lets the page show each alert once.
func (p *Page) Alert(message string) {
	p.update(func(s *Snapshot) {
		s.Alert = message
		s.AlertID++
	})
}

func (p *Page) Date() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Date
}

func (p *Page) Input() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Input
}

func (p *Page) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Wait blocks until the version is greater than after, then returns the
// current snapshot. It returns the latest snapshot with ctx's error when ctx
// ends first.
func (p *Page) Wait(ctx context.Context, after uint64) (Snapshot, error) {
	for {
		p.mu.Lock()
		if p.state.Version > after {
			s := p.state
			p.mu.Unlock()
			return s, nil
		}
		ch := p.changed
		p.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return p.Snapshot(), ctx.Err()
		}
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
