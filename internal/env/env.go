package env

import (
	"os"
	"strconv"
	"time"
)

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Environment variable keys
const (
	// Server
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	// NEIS open API
	EnvNeisBaseURL = "NEIS_BASE_URL"
	EnvNeisAPIKey  = "NEIS_API_KEY"
	EnvNeisTimeout = "NEIS_TIMEOUT"

	// School shown when a page is opened
	EnvDefaultSchoolName = "DEFAULT_SCHOOL_NAME"
	EnvDefaultSchoolCode = "DEFAULT_SCHOOL_CODE"
	EnvDefaultOfficeCode = "DEFAULT_OFFICE_CODE"

	// Page behaviour
	EnvTimezone         = "TIMEZONE"
	EnvSearchDebounce   = "SEARCH_DEBOUNCE"
	EnvPickFetchesMeals = "PICK_FETCHES_MEALS"
	EnvSessionTTL       = "SESSION_TTL"

	// Storage
	EnvHistoryDBPath = "HISTORY_DB_PATH"
)

// Config is the resolved runtime configuration of the API server.
type Config struct {
	Port     string
	LogLevel string

	NeisBaseURL string
	NeisAPIKey  string
	NeisTimeout time.Duration

	DefaultSchoolName string
	DefaultSchoolCode string
	DefaultOfficeCode string

	Timezone         string
	SearchDebounce   time.Duration
	PickFetchesMeals bool
	SessionTTL       time.Duration

	HistoryDBPath string
}

func Load() Config {
	return Config{
		Port:     GetEnv(EnvPort, "9237"),
		LogLevel: GetEnv(EnvLogLevel, "INFO"),

		NeisBaseURL: GetEnv(EnvNeisBaseURL, "https://open.neis.go.kr/hub"),
		NeisAPIKey:  GetEnv(EnvNeisAPIKey, ""),
		NeisTimeout: GetDuration(EnvNeisTimeout, 10*time.Second),

		DefaultSchoolName: GetEnv(EnvDefaultSchoolName, "서울고등학교"),
		DefaultSchoolCode: GetEnv(EnvDefaultSchoolCode, "9290083"),
		DefaultOfficeCode: GetEnv(EnvDefaultOfficeCode, "T10"),

		Timezone:         GetEnv(EnvTimezone, "Asia/Seoul"),
		SearchDebounce:   GetDuration(EnvSearchDebounce, 300*time.Millisecond),
		PickFetchesMeals: GetBool(EnvPickFetchesMeals, false),
		SessionTTL:       GetDuration(EnvSessionTTL, 30*time.Minute),

		HistoryDBPath: GetEnv(EnvHistoryDBPath, "./internal/databases/history.db"),
	}
}

/*
This project is the school meal lookup service built on the OpenSourceDUTH API backend. It looks up daily cafeteria menus from the NEIS open data service.
API Copyright (C) 2025 OpenSourceDUTH
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
