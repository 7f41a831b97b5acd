package render

import (
	"bytes"
	"html/template"
	"strings"

	"SchoolMeal/internal/neis"
)

// Fixed page text
const (
	NoDataNotice       = "해당 날짜의 급식 정보가 없습니다."
	CaloriePlaceholder = "정보 없음"
	ErrorPrefix        = "오류가 발생했습니다: "
)

var templates = template.Must(template.New("render").Parse(`
{{define "title"}}🍽️ {{.Name}} 급식{{end}}

{{define "suggestions"}}{{range $i, $s := .}}<div class="suggestion-item" data-index="{{$i}}">
	<div class="suggestion-school-name">{{$s.Name}}</div>
	<div class="suggestion-school-address">{{$s.OfficeName}}</div>
</div>{{end}}{{end}}

{{define "meals"}}{{range .}}<div class="meal-card">
	<div class="meal-type">{{.MealType}}</div>
	<ul class="menu-list">{{range .Dishes}}<li class="menu-item">{{.}}</li>{{end}}</ul>
	<div class="meal-info">
		<span class="calories">칼로리: {{.Calories}}</span>
		<span class="origin">{{range $i, $line := .Origin}}{{if $i}}<br>{{end}}{{$line}}{{end}}</span>
	</div>
</div>{{else}}<div class="no-data">` + NoDataNotice + `</div>{{end}}{{end}}

{{define "error"}}<div class="error">` + ErrorPrefix + `{{.}}</div>{{end}}
`))

type mealCard struct {
	MealType string
	Dishes   []string
	Calories string
	Origin   []string
}

// Renderer turns school and meal records into page fragments. It has no
// side effects and is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

func New() *Renderer {
	return &Renderer{tmpl: templates}
}

// Header returns the page title markup and the plain school label.
func (r *Renderer) Header(identity neis.SchoolIdentity) (template.HTML, string) {
	return r.execute("title", identity), identity.Name
}

// Suggestions renders one row per record. An empty list renders nothing and
// reports the panel as hidden.
func (r *Renderer) Suggestions(records []neis.SchoolRecord) (template.HTML, bool) {
	if len(records) == 0 {
		return "", false
	}
	return r.execute("suggestions", records), true
}

// Meals renders one card per meal, or a single no-data notice.
func (r *Renderer) Meals(records []neis.MealRecord) template.HTML {
	cards := make([]mealCard, 0, len(records))
	for _, m := range records {
		calories := strings.TrimSpace(m.Calories)
		if calories == "" {
			calories = CaloriePlaceholder
		}
		cards = append(cards, mealCard{
			MealType: m.MealType,
			Dishes:   SplitDishes(m.Dishes),
			Calories: calories,
			Origin:   SplitDishes(m.Origin),
		})
	}
	return r.execute("meals", cards)
}

func (r *Renderer) Error(err error) template.HTML {
	return r.execute("error", err.Error())
}

func (r *Renderer) execute(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTML(`<div class="error">` + template.HTMLEscapeString(ErrorPrefix+err.Error()) + `</div>`)
	}
	return template.HTML(buf.String())
}

// SplitDishes splits delimited dish text into trimmed, non-empty items.
func SplitDishes(text string) []string {
	parts := strings.Split(text, neis.DishDelimiter)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			items = append(items, p)
		}
	}
	return items
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
