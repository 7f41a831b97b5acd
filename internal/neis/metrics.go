package neis

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts and times calls to the NEIS API. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "schoolmeal",
			Subsystem: "neis",
			Name:      "requests_total",
			Help:      "NEIS API calls by dataset and outcome.",
		}, []string{"dataset", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "schoolmeal",
			Subsystem: "neis",
			Name:      "request_duration_seconds",
			Help:      "NEIS API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"dataset"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

// Outcome labels
const (
	outcomeOK     = "ok"
	outcomeEmpty  = "empty"
	outcomeFailed = "error"
)

func (m *Metrics) observe(dataset, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(dataset, outcome).Inc()
	m.duration.WithLabelValues(dataset).Observe(elapsed.Seconds())
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
