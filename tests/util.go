// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cloud.google.com/go/civil"

	"github.com/trezcool/studyplanner/core/activity"
)

var ErrStoreDown = errors.New("store down")

// MemoryStore is an activity.Store keeping the last saved list in memory.
type MemoryStore struct {
	mu       sync.Mutex
	saved    []activity.Activity
	Saves    int
	FailLoad bool
	FailSave bool
}

var _ activity.Store = (*MemoryStore)(nil)

func NewMemoryStore(initial ...activity.Activity) *MemoryStore {
	return &MemoryStore{saved: initial}
}

func (s *MemoryStore) Load(ctx context.Context) ([]activity.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLoad {
		return nil, ErrStoreDown
	}
	r := make([]activity.Activity, len(s.saved))
	copy(r, s.saved)
	return r, nil
}

func (s *MemoryStore) Save(ctx context.Context, activities []activity.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSave {
		return ErrStoreDown
	}
	s.Saves++
	s.saved = activities
	return nil
}

func (s *MemoryStore) Saved() []activity.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

func Date(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := activity.ParseDate(s)
	if err != nil {
		t.Fatalf("Date(%q): %v", s, err)
	}
	return d
}

func Clock(t *testing.T, s string) civil.Time {
	t.Helper()
	c, err := activity.ParseClock(s)
	if err != nil {
		t.Fatalf("Clock(%q): %v", s, err)
	}
	return c
}

// Study builds a study session on `date` from 09:00 lasting `minutes`.
func Study(t *testing.T, title string, date civil.Date, minutes int, subject string, status activity.Status) activity.Activity {
	t.Helper()
	start := civil.Time{Hour: 9}
	end := civil.Time{Hour: 9 + minutes/60, Minute: minutes % 60}
	a := activity.NewStudySession(title, date, start, end, subject, "topic of "+title)
	a.SetStatus(status)
	return a
}

func Assignment(t *testing.T, title string, deadline civil.Date, progress int, subject string) activity.Activity {
	t.Helper()
	a := activity.NewAssignment(title, deadline, civil.Time{Hour: 13}, civil.Time{Hour: 15}, subject, deadline, activity.PriorityHigh)
	if !a.UpdateProgress(progress) {
		t.Fatalf("Assignment(%q): invalid progress %d", title, progress)
	}
	return a
}

func Exam(t *testing.T, title string, date civil.Date, subject string) activity.Activity {
	t.Helper()
	return activity.NewExam(title, date, civil.Time{Hour: 8}, civil.Time{Hour: 10}, subject, "R-101", "Midterm", "Chapters 1-4")
}

// Fill adds the activities to the schedule in order and returns them with their ids.
func Fill(t *testing.T, sched *activity.Schedule, acts ...activity.Activity) []activity.Activity {
	t.Helper()
	added := make([]activity.Activity, 0, len(acts))
	for i := range acts {
		a, err := sched.Add(context.Background(), &acts[i])
		if err != nil {
			t.Fatalf("Fill(): %v", err)
		}
		added = append(added, a)
	}
	return added
}
