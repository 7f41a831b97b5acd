package meals

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"SchoolMeal/internal/controller"
	"SchoolMeal/internal/neis"
	"SchoolMeal/internal/v0/common"
)

// Handler exposes the NEIS lookups as plain JSON endpoints
type Handler struct {
	directory controller.Directory
	menus     controller.Menus
}

func NewHandler(directory controller.Directory, menus controller.Menus) *Handler {
	return &Handler{directory: directory, menus: menus}
}

func (h *Handler) GetSchools(c *gin.Context) {
	var q SchoolQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}
	if q.Size == 0 {
		q.Size = neis.SuggestionPageSize
	}

	schools, err := h.directory.SearchSchools(c.Request.Context(), q.Name, q.Size)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, schools)
}

func (h *Handler) GetBestSchool(c *gin.Context) {
	var q SchoolQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	school, err := h.directory.FindBestMatch(c.Request.Context(), q.Name)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, school)
}

func (h *Handler) GetMeals(c *gin.Context) {
	var q MealQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{err.Error()}))
		return
	}

	date, err := neis.ParseAnyDate(q.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"Invalid date format. Please use YYYY-MM-DD or YYYYMMDD"}))
		return
	}

	identity := neis.SchoolIdentity{SchoolCode: q.SchoolCode, OfficeCode: q.OfficeCode}
	records, err := h.menus.FetchMeals(c.Request.Context(), identity, date)
	if err != nil {
		common.Fail(c, err)
		return
	}
	common.Success(c, http.StatusOK, newDayMeals(date, records))
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
