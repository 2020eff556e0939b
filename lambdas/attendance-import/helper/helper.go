package helper

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"dayflow.app/dayflow/utils"
)

// Event is one badge-reader row: employee_code,kind,timestamp.
type Event struct {
	EmployeeCode string
	Kind         string // "in" or "out"
	Timestamp    time.Time
	Date         string
}

// DaySession is the per-user/date collapse of raw events: earliest "in",
// latest "out".
type DaySession struct {
	EmployeeCode string
	Date         string
	CheckIn      time.Time
	CheckOut     *time.Time
}

func ParseClockCSV(r io.Reader, loc *time.Location) ([]Event, error) {
	rows, err := utils.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	var events []Event
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i, len(row))
		}

		kind := strings.ToLower(strings.TrimSpace(row[1]))
		if kind != "in" && kind != "out" {
			return nil, fmt.Errorf("row %d: invalid kind %q", i, row[1])
		}

		ts, err := utils.ParseISOTime(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid timestamp: %w", i, err)
		}
		local := ts.In(loc)

		events = append(events, Event{
			EmployeeCode: strings.TrimSpace(row[0]),
			Kind:         kind,
			Timestamp:    local,
			Date:         local.Format("2006-01-02"),
		})
	}

	return events, nil
}

// GroupEvents collapses raw events into one session per (employee, date).
// "out" events with no matching "in" are dropped; the reader double-scans
// badges often enough that silent dedup is the useful behavior.
func GroupEvents(events []Event) []DaySession {
	type key struct {
		code string
		date string
	}
	grouped := make(map[key]*DaySession)

	for _, e := range events {
		k := key{code: e.EmployeeCode, date: e.Date}
		s, exists := grouped[k]
		if !exists {
			s = &DaySession{EmployeeCode: e.EmployeeCode, Date: e.Date}
			grouped[k] = s
		}
		switch e.Kind {
		case "in":
			if s.CheckIn.IsZero() || e.Timestamp.Before(s.CheckIn) {
				s.CheckIn = e.Timestamp
			}
		case "out":
			ts := e.Timestamp
			if s.CheckOut == nil || ts.After(*s.CheckOut) {
				s.CheckOut = &ts
			}
		}
	}

	var sessions []DaySession
	for _, s := range grouped {
		if s.CheckIn.IsZero() {
			continue
		}
		sessions = append(sessions, *s)
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Date != sessions[j].Date {
			return sessions[i].Date < sessions[j].Date
		}
		return sessions[i].EmployeeCode < sessions[j].EmployeeCode
	})

	return sessions
}
