package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"SchoolMeal/internal/neis"
	"SchoolMeal/internal/render"
	"SchoolMeal/internal/selection"
	"SchoolMeal/internal/view"
)

const (
	// MinQueryLength is the shortest trimmed input that triggers a search.
	MinQueryLength = 2

	DefaultDebounce = 300 * time.Millisecond

	EmptyNameAlert   = "학교명을 입력해주세요."
	InvalidDateAlert = "올바른 날짜를 입력해주세요."
)

// Selection sources passed to the Recorder
const (
	SourceSubmit = "submit"
	SourcePick   = "pick"
)

// ValidationError is user input rejected before any request was made.
// The message is also shown to the user as an alert.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

type Directory interface {
	SearchSchools(ctx context.Context, pattern string, pageSize int) ([]neis.SchoolRecord, error)
	FindBestMatch(ctx context.Context, pattern string) (neis.SchoolRecord, error)
}

type Menus interface {
	FetchMeals(ctx context.Context, identity neis.SchoolIdentity, date neis.QueryDate) ([]neis.MealRecord, error)
}

// Recorder is told about every school a user settles on.
type Recorder interface {
	RecordSelection(identity neis.SchoolIdentity, source string)
}

type Options struct {
	Default  neis.SchoolIdentity
	Location *time.Location
	Now      func() time.Time

	Debounce time.Duration
	Schedule Scheduler

	// PickFetchesMeals reloads meals when a suggestion is picked. Off by
	// default: picking only changes the selected school.
	PickFetchesMeals bool

	Recorder Recorder
	Logger   *slog.Logger

	// Context bounds searches started from the debounce timer.
	Context context.Context
}

// Controller drives one page: it turns UI events into NEIS queries and
// writes the rendered results into the page's View.
//
// Handlers may run concurrently. Network calls happen outside mu and every
// result is checked against the latest token of its category before it is
// written, so the most recently issued request always wins.
type Controller struct {
	mu       sync.Mutex
	view     view.View
	render   *render.Renderer
	dir      Directory
	menus    Menus
	state    *selection.State
	def      neis.SchoolIdentity
	debounce *Debouncer
	opts     Options
	log      *slog.Logger

	suggestGen generation
	dirGen     generation
	mealGen    generation

	suggestions []neis.SchoolRecord
}

func New(v view.View, r *render.Renderer, dir Directory, menus Menus, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if r == nil {
		r = render.New()
	}
	state := selection.New(opts.Default)
	return &Controller{
		view:     v,
		render:   r,
		dir:      dir,
		menus:    menus,
		state:    state,
		def:      state.Current(),
		debounce: NewDebouncer(opts.Debounce, opts.Schedule),
		opts:     opts,
		log:      opts.Logger.With("component", "controller"),
	}
}

// Selection returns the school currently scoping meal queries.
func (c *Controller) Selection() neis.SchoolIdentity {
	return c.state.Current()
}

func (c *Controller) today() neis.QueryDate {
	return neis.Today(c.opts.Now(), c.opts.Location)
}

// Ready initialises the page for today and the default school, then loads
// today's meals.
func (c *Controller) Ready(ctx context.Context) error {
	today := c.today()

	c.mu.Lock()
	c.view.SetDate(today.ISO())
	c.view.SetDateLabel(today.LongLabel())
	c.state.Replace(c.def)
	c.renderHeader()
	c.mu.Unlock()

	return c.loadMeals(ctx, today)
}

// Submit looks up the best match for name, selects it and loads meals for
// the date currently shown.
func (c *Controller) Submit(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		c.view.Alert(EmptyNameAlert)
		return &ValidationError{Message: EmptyNameAlert}
	}

	c.mu.Lock()
	dirToken := c.dirGen.next()
	mealToken := c.mealGen.next()
	c.view.SetInput(name)
	c.view.SetLoading(true)
	c.view.SetContent("")
	c.mu.Unlock()

	record, err := c.dir.FindBestMatch(ctx, name)

	c.mu.Lock()
	if !c.dirGen.isLatest(dirToken) {
		// A pick replaced the selection while this lookup ran. Nothing else
		// owns the loading state, so finish with the current school's meals.
		if c.mealGen.isLatest(mealToken) {
			date := c.boundDate()
			c.mu.Unlock()
			return c.loadMeals(ctx, date)
		}
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		if c.mealGen.isLatest(mealToken) {
			c.view.SetLoading(false)
			c.view.SetContent(c.render.Error(err))
		}
		c.mu.Unlock()
		return err
	}
	identity := record.Identity()
	c.state.Replace(identity)
	c.renderHeader()
	date := c.boundDate()
	c.mu.Unlock()

	c.record(identity, SourceSubmit)
	return c.loadMeals(ctx, date)
}

// Input handles a keystroke in the school name field. Searches start once
// typing pauses for the debounce period.
func (c *Controller) Input(text string) {
	query := strings.TrimSpace(text)

	c.mu.Lock()
	c.view.SetInput(text)
	if utf8.RuneCountInString(query) < MinQueryLength {
		c.debounce.Cancel()
		c.suggestGen.next()
		c.hideSuggestions()
		c.mu.Unlock()
		return
	}
	// The token is taken when the search is scheduled so a later short
	// input or pick invalidates it even if the timer already fired.
	token := c.suggestGen.next()
	c.debounce.Trigger(func() { c.suggest(token, query) })
	c.mu.Unlock()
}

func (c *Controller) suggest(token uint64, query string) {
	records, err := c.dir.SearchSchools(c.opts.Context, query, neis.SuggestionPageSize)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.suggestGen.isLatest(token) {
		return
	}
	if err != nil {
		c.log.Warn("school search failed", "query", query, "error", err)
		c.hideSuggestions()
		return
	}
	markup, visible := c.render.Suggestions(records)
	if !visible {
		c.hideSuggestions()
		return
	}
	c.suggestions = records
	c.view.SetSuggestions(markup, true)
}

// Dismiss hides the suggestion panel after a click outside it.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hideSuggestions()
}

// Pick selects the suggestion at index from the panel currently shown.
func (c *Controller) Pick(ctx context.Context, index int) error {
	c.mu.Lock()
	if index < 0 || index >= len(c.suggestions) {
		c.mu.Unlock()
		return &ValidationError{Message: fmt.Sprintf("unknown suggestion %d", index)}
	}
	record := c.suggestions[index]
	identity := record.Identity()

	c.debounce.Cancel()
	c.suggestGen.next()
	c.dirGen.next()
	c.state.Replace(identity)
	c.view.SetInput(record.Name)
	c.hideSuggestions()
	c.renderHeader()
	date := c.boundDate()
	fetch := c.opts.PickFetchesMeals
	c.mu.Unlock()

	c.record(identity, SourcePick)
	if !fetch {
		return nil
	}
	return c.loadMeals(ctx, date)
}

func (c *Controller) PrevDay(ctx context.Context) error { return c.shiftDay(ctx, -1) }

func (c *Controller) NextDay(ctx context.Context) error { return c.shiftDay(ctx, 1) }

func (c *Controller) shiftDay(ctx context.Context, days int) error {
	c.mu.Lock()
	date := c.boundDate().AddDays(days)
	c.view.SetDate(date.ISO())
	c.mu.Unlock()

	return c.loadMeals(ctx, date)
}

// ChangeDate loads meals for a date picked in the date field. An empty
// value is ignored.
func (c *Controller) ChangeDate(ctx context.Context, iso string) error {
	if strings.TrimSpace(iso) == "" {
		return nil
	}
	date, err := neis.ParseDate(iso)
	if err != nil {
		c.view.Alert(InvalidDateAlert)
		return &ValidationError{Message: InvalidDateAlert}
	}

	c.mu.Lock()
	c.view.SetDate(date.ISO())
	c.mu.Unlock()

	return c.loadMeals(ctx, date)
}

// Close cancels any pending debounced search.
func (c *Controller) Close() {
	c.debounce.Cancel()
	c.suggestGen.next()
}

func (c *Controller) loadMeals(ctx context.Context, date neis.QueryDate) error {
	c.mu.Lock()
	token := c.mealGen.next()
	identity := c.state.Current()
	c.view.SetLoading(true)
	c.view.SetContent("")
	c.mu.Unlock()

	meals, err := c.menus.FetchMeals(ctx, identity, date)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mealGen.isLatest(token) {
		return nil
	}
	c.view.SetLoading(false)
	if err != nil {
		c.view.SetContent(c.render.Error(err))
		return err
	}
	c.view.SetContent(c.render.Meals(meals))
	return nil
}

// boundDate reads the date slot, falling back to today. Callers hold mu.
func (c *Controller) boundDate() neis.QueryDate {
	date, err := neis.ParseDate(c.view.Date())
	if err != nil {
		return c.today()
	}
	return date
}

// Callers hold mu.
func (c *Controller) renderHeader() {
	c.view.SetTitle(c.render.Header(c.state.Current()))
}

// Callers hold mu.
func (c *Controller) hideSuggestions() {
	c.suggestions = nil
	c.view.SetSuggestions("", false)
}

func (c *Controller) record(identity neis.SchoolIdentity, source string) {
	if c.opts.Recorder != nil {
		c.opts.Recorder.RecordSelection(identity, source)
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
