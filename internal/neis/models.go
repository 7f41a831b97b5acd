package neis

// SchoolIdentity scopes every meal query to exactly one school.
type SchoolIdentity struct {
	Name       string `json:"name"`
	SchoolCode string `json:"school_code"`
	OfficeCode string `json:"office_code"`
}

// Complete reports whether every field needed by a meal query is set.
func (i SchoolIdentity) Complete() bool {
	return i.Name != "" && i.SchoolCode != "" && i.OfficeCode != ""
}

type SchoolRecord struct {
	Name       string `json:"name"`
	SchoolCode string `json:"school_code"`
	OfficeCode string `json:"office_code"`
	OfficeName string `json:"office_name"`
}

func (r SchoolRecord) Identity() SchoolIdentity {
	return SchoolIdentity{
		Name:       r.Name,
		SchoolCode: r.SchoolCode,
		OfficeCode: r.OfficeCode,
	}
}

// MealRecord is one meal service entry. Dishes and Origin keep the raw
// DishDelimiter separated text returned by the API.
type MealRecord struct {
	MealType string `json:"meal_type"`
	Dishes   string `json:"dishes"`
	Calories string `json:"calories"`
	Origin   string `json:"origin"`
}

// Wire rows as returned by the schoolInfo and mealServiceDietInfo datasets.
// Only the columns we use are decoded.

type schoolRow struct {
	SchoolName string `json:"SCHUL_NM"`
	SchoolCode string `json:"SD_SCHUL_CODE"`
	OfficeCode string `json:"ATPT_OFCDC_SC_CODE"`
	OfficeName string `json:"ATPT_OFCDC_SC_NM"`
}

func (r schoolRow) record() SchoolRecord {
	return SchoolRecord{
		Name:       r.SchoolName,
		SchoolCode: r.SchoolCode,
		OfficeCode: r.OfficeCode,
		OfficeName: r.OfficeName,
	}
}

type mealRow struct {
	MealName   string `json:"MMEAL_SC_NM"`
	DishNames  string `json:"DDISH_NM"`
	Calories   string `json:"CAL_INFO"`
	OriginInfo string `json:"ORPLC_INFO"`
}

func (r mealRow) record() MealRecord {
	return MealRecord{
		MealType: r.MealName,
		Dishes:   r.DishNames,
		Calories: r.Calories,
		Origin:   r.OriginInfo,
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
