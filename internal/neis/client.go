package neis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://open.neis.go.kr/hub"

	// DishDelimiter separates entries inside DDISH_NM and ORPLC_INFO.
	DishDelimiter = "<br/>"

	SuggestionPageSize = 10
	bestMatchPageSize  = 100
	mealPageSize       = 100

	datasetSchools = "schoolInfo"
	datasetMeals   = "mealServiceDietInfo"

	// Responses are small; anything bigger is not a NEIS answer.
	maxResponseBytes = 4 << 20
)

// Config configures a Client. Zero values fall back to sensible defaults.
type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Metrics    *Metrics
	Logger     *slog.Logger
}

// Client queries the schoolInfo and mealServiceDietInfo datasets.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	metrics *Metrics
	log     *slog.Logger
}

func NewClient(cfg Config) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		hc = httpClient(timeout)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: base,
		apiKey:  cfg.APIKey,
		http:    hc,
		metrics: cfg.Metrics,
		log:     logger.With("component", "neis"),
	}
}

func httpClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// SearchSchools looks schools up by name. An empty result is not an error.
func (c *Client) SearchSchools(ctx context.Context, pattern string, pageSize int) ([]SchoolRecord, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	if pageSize <= 0 {
		pageSize = SuggestionPageSize
	}

	q := url.Values{}
	q.Set("pSize", strconv.Itoa(pageSize))
	q.Set("SCHUL_NM", pattern)

	rows, err := fetchRows[schoolRow](ctx, c, datasetSchools, q)
	if err != nil {
		return nil, err
	}
	records := make([]SchoolRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	return records, nil
}

// FindBestMatch returns the first school the API ranks for pattern.
func (c *Client) FindBestMatch(ctx context.Context, pattern string) (SchoolRecord, error) {
	records, err := c.SearchSchools(ctx, pattern, bestMatchPageSize)
	if err != nil {
		return SchoolRecord{}, err
	}
	if len(records) == 0 {
		return SchoolRecord{}, ErrNotFound
	}
	return records[0], nil
}

// FetchMeals returns the meals served on date, or an empty slice when the
// API has nothing for that day.
func (c *Client) FetchMeals(ctx context.Context, identity SchoolIdentity, date QueryDate) ([]MealRecord, error) {
	if identity.SchoolCode == "" || identity.OfficeCode == "" || date.IsZero() {
		return nil, ErrInvalidQuery
	}

	q := url.Values{}
	q.Set("pSize", strconv.Itoa(mealPageSize))
	q.Set("ATPT_OFCDC_SC_CODE", identity.OfficeCode)
	q.Set("SD_SCHUL_CODE", identity.SchoolCode)
	q.Set("MLSV_YMD", date.Wire())

	rows, err := fetchRows[mealRow](ctx, c, datasetMeals, q)
	if err != nil {
		return nil, err
	}
	meals := make([]MealRecord, 0, len(rows))
	for _, row := range rows {
		meals = append(meals, row.record())
	}
	return meals, nil
}

func fetchRows[T any](ctx context.Context, c *Client, dataset string, q url.Values) ([]T, error) {
	q.Set("Type", "json")
	q.Set("pIndex", "1")
	if c.apiKey != "" {
		q.Set("KEY", c.apiKey)
	}
	endpoint := c.baseURL + "/" + dataset + "?" + q.Encode()

	start := time.Now()
	fail := func(e *RemoteError) ([]T, error) {
		c.metrics.observe(dataset, outcomeFailed, time.Since(start))
		c.log.Warn("neis request failed", "dataset", dataset, "status", e.Status, "code", e.Code, "error", e.Err)
		return nil, e
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fail(&RemoteError{Op: dataset, Err: err})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fail(&RemoteError{Op: dataset, Err: err})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fail(&RemoteError{Op: dataset, Status: resp.StatusCode, Err: err})
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(&RemoteError{Op: dataset, Status: resp.StatusCode, Err: errors.New("unexpected response status")})
	}

	rows, err := decodeRows[T](body, dataset)
	if err != nil {
		var af *apiFailure
		if errors.As(err, &af) {
			return fail(&RemoteError{Op: dataset, Status: resp.StatusCode, Code: af.result.Code, Err: err})
		}
		return fail(&RemoteError{Op: dataset, Status: resp.StatusCode, Err: err})
	}

	outcome := outcomeOK
	if len(rows) == 0 {
		outcome = outcomeEmpty
	}
	c.metrics.observe(dataset, outcome, time.Since(start))
	c.log.Debug("neis request", "dataset", dataset, "rows", len(rows), "elapsed", time.Since(start))
	return rows, nil
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
