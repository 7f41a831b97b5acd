package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	v0 "SchoolMeal/internal/v0/common"
)

type StatusResponse struct {
	InternalServerLatency string `json:"internal_server_latency"`
	Uptime                string `json:"uptime"`
	Sessions              int    `json:"sessions"`
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// Ping Logic
func ping() time.Duration {
	start := time.Now()
	duration := time.Since(start)
	return duration
}

// SessionCounter reports how many pages are currently open
type SessionCounter interface {
	Count() int
}

type Handler struct {
	sessions SessionCounter
}

func NewHandler(sessions SessionCounter) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) Status(c *gin.Context) {
	data := StatusResponse{
		InternalServerLatency: ping().String(),
		Uptime:                uptime().Truncate(time.Second).String(),
	}
	if h.sessions != nil {
		data.Sessions = h.sessions.Count()
	}
	c.JSON(http.StatusOK, v0.CreateSuccessResponse(data))
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
