package meals

import (
	"SchoolMeal/internal/neis"
	"SchoolMeal/internal/render"
)

type SchoolQuery struct {
	Name string `form:"name" binding:"required"`
	Size int    `form:"size" binding:"omitempty,min=1,max=100"`
}

type MealQuery struct {
	OfficeCode string `form:"office" binding:"required"`
	SchoolCode string `form:"school" binding:"required"`
	Date       string `form:"date" binding:"required"`
}

type Meal struct {
	MealType string   `json:"meal_type"`
	Dishes   []string `json:"dishes"`
	Calories string   `json:"calories"`
	Origin   []string `json:"origin"`
}

type DayMeals struct {
	Date  string `json:"date"`
	Meals []Meal `json:"meals"`
}

func newDayMeals(date neis.QueryDate, records []neis.MealRecord) DayMeals {
	// Avoid nil slices in JSON response
	day := DayMeals{Date: date.ISO(), Meals: []Meal{}}
	for _, r := range records {
		day.Meals = append(day.Meals, Meal{
			MealType: r.MealType,
			Dishes:   render.SplitDishes(r.Dishes),
			Calories: r.Calories,
			Origin:   render.SplitDishes(r.Origin),
		})
	}
	return day
}

//   This project is the school meal lookup service built on the OpenSourceDUTH API backend. It looks up daily cafeteria menus from the NEIS open data service.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
