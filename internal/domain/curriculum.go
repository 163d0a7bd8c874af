package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type CurriculumDay struct {
	Day   int    `json:"day"`
	Title string `json:"title"`
	Topic string `json:"topic"`
}

// Curriculum is the generated multi-day plan. The schedule may cover only
// the first few days of the track.
type Curriculum struct {
	TrackName   string          `json:"trackName"`
	Description string          `json:"description"`
	Schedule    []CurriculumDay `json:"schedule"`
}

// Normalize sorts the schedule by day and drops duplicate days, keeping the
// first occurrence.
func (c *Curriculum) Normalize() {
	sort.SliceStable(c.Schedule, func(i, j int) bool {
		return c.Schedule[i].Day < c.Schedule[j].Day
	})
	out := c.Schedule[:0]
	seen := make(map[int]bool, len(c.Schedule))
	for _, d := range c.Schedule {
		if seen[d.Day] {
			continue
		}
		seen[d.Day] = true
		out = append(out, d)
	}
	c.Schedule = out
}

// Validate checks that the schedule is usable as a track.
func (c Curriculum) Validate() error {
	var errs []error
	if strings.TrimSpace(c.TrackName) == "" {
		errs = append(errs, errors.New("trackName is required"))
	}
	if len(c.Schedule) == 0 {
		errs = append(errs, errors.New("schedule is empty"))
	}
	prev := 0
	for i, d := range c.Schedule {
		if d.Day < 1 {
			errs = append(errs, fmt.Errorf("schedule[%d]: day must be >= 1", i))
		}
		if d.Day <= prev {
			errs = append(errs, fmt.Errorf("schedule[%d]: day %d is not ascending", i, d.Day))
		}
		if strings.TrimSpace(d.Topic) == "" {
			errs = append(errs, fmt.Errorf("schedule[%d]: topic is required", i))
		}
		prev = d.Day
	}
	if _, ok := c.DayEntry(1); len(c.Schedule) > 0 && !ok {
		errs = append(errs, errors.New("schedule must contain day 1"))
	}
	return errors.Join(errs...)
}

// DayEntry returns the schedule entry for day.
func (c Curriculum) DayEntry(day int) (CurriculumDay, bool) {
	for _, d := range c.Schedule {
		if d.Day == day {
			return d, true
		}
	}
	return CurriculumDay{}, false
}

// TopicFor returns the scheduled topic for day.
func (c Curriculum) TopicFor(day int) (string, bool) {
	d, ok := c.DayEntry(day)
	if !ok || d.Topic == "" {
		return "", false
	}
	return d.Topic, true
}

// Upcoming returns schedule entries at or after fromDay.
func (c Curriculum) Upcoming(fromDay int) []CurriculumDay {
	var out []CurriculumDay
	for _, d := range c.Schedule {
		if d.Day >= fromDay {
			out = append(out, d)
		}
	}
	return out
}
