package common

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"SchoolMeal/internal/controller"
	"SchoolMeal/internal/neis"
)

// Structs for the API response format

type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	RequestID string    `json:"requestId"`
}

type APIResponse struct {
	Data     interface{} `json:"data"`
	Errors   []string    `json:"errors"`
	Metadata Metadata    `json:"metadata"`
}

// Header carrying a caller supplied request ID
const HeaderRequestID = "X-Request-ID"

// Response functions

func CreateAPIResponse(data interface{}, errors []string, requestID string) APIResponse {
	// If the requestID is blank and not cascading from other functions generate a new one
	if requestID == "" {
		requestID = uuid.New().String()
	}
	return APIResponse{
		Data:   data,
		Errors: errors,
		Metadata: Metadata{
			Timestamp: time.Now(),
			Version:   "v0",
			RequestID: requestID,
		},
	}
}

func CreateSuccessResponse(data interface{}) APIResponse {
	return CreateAPIResponse(
		data,
		[]string{},
		"",
	)
}

func CreateErrorResponse(errors []string) APIResponse {
	return CreateAPIResponse(
		nil,
		errors,
		"",
	)
}

func CreateSuccessResponseWithRequestID(data interface{}, requestID string) APIResponse {
	return CreateAPIResponse(
		data,
		[]string{},
		requestID,
	)
}

func CreateErrorResponseWithRequestID(errors []string, requestID string) APIResponse {
	return CreateAPIResponse(
		nil,
		errors,
		requestID,
	)
}

// Gin helpers

// Success writes data with the caller's request ID, if any
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, CreateSuccessResponseWithRequestID(data, c.GetHeader(HeaderRequestID)))
}

// Fail writes err with the status that matches its kind
func Fail(c *gin.Context, err error) {
	c.JSON(ErrorStatus(err), CreateErrorResponseWithRequestID([]string{err.Error()}, c.GetHeader(HeaderRequestID)))
}

// ErrorStatus maps domain errors onto HTTP status codes
func ErrorStatus(err error) int {
	var validation *controller.ValidationError
	switch {
	case errors.As(err, &validation),
		errors.Is(err, neis.ErrEmptyPattern),
		errors.Is(err, neis.ErrInvalidQuery):
		return http.StatusBadRequest
	case errors.Is(err, neis.ErrNotFound):
		return http.StatusNotFound
	case neis.IsRemote(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
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
