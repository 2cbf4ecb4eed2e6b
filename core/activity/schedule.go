package activity

import (
	"context"
	"sync"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"

	"github.com/trezcool/studyplanner/core"
)

var (
	// errors
	ErrNotFound      = errors.New("activity not found")
	ErrNilActivity   = errors.New("activity is nil")
	ErrNotAssignment = errors.New("activity is not an assignment")
	ErrPersist       = errors.New("persisting schedule")
)

// PersistError reports a failed save; the in-memory change it followed is kept.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string        { return "persisting schedule: " + e.Err.Error() }
func (e *PersistError) Unwrap() error        { return e.Err }
func (e *PersistError) Is(target error) bool { return target == ErrPersist }

type (
	// Store persists the whole schedule at once.
	Store interface {
		Load(ctx context.Context) ([]Activity, error)
		Save(ctx context.Context, activities []Activity) error
	}

	// Schedule owns the ordered list of activities and is the only place they are mutated.
	// Every mutation is followed by a full Save on the Store while auto-save is on.
	Schedule struct {
		store    Store
		logger   core.Logger
		items    []Activity
		nextID   int
		autoSave bool
		mutex    sync.RWMutex
	}
)

// NewSchedule loads the store. A failing load is logged and leaves the schedule empty.
func NewSchedule(ctx context.Context, store Store, logger core.Logger) *Schedule {
	s := &Schedule{
		store:    store,
		logger:   logger,
		nextID:   1,
		autoSave: true,
	}
	if err := s.Reload(ctx); err != nil {
		logger.Error("loading schedule", "error", err)
	}
	return s
}

// Reload replaces the in-memory list with the store's content, as on construction.
// An empty store empties the schedule and restarts ids at 1.
func (s *Schedule) Reload(ctx context.Context) error {
	loaded, err := s.store.Load(ctx)
	if err != nil {
		return errors.Wrap(err, "loading schedule")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.items = make([]Activity, 0, len(loaded))
	s.items = append(s.items, loaded...)
	maxID := 0
	for _, a := range loaded {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	s.nextID = maxID + 1
	return nil
}

func (s *Schedule) SetAutoSave(enabled bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.autoSave = enabled
}

// Save persists the schedule regardless of the auto-save setting.
func (s *Schedule) Save(ctx context.Context) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.persist(ctx)
}

func (s *Schedule) persist(ctx context.Context) error {
	if err := s.store.Save(ctx, s.copyItems()); err != nil {
		s.logger.Error("saving schedule", "error", err)
		return &PersistError{Err: err}
	}
	return nil
}

// must hold the write lock
func (s *Schedule) autoPersist(ctx context.Context) error {
	if !s.autoSave {
		return nil
	}
	return s.persist(ctx)
}

func (s *Schedule) copyItems() []Activity {
	r := make([]Activity, len(s.items))
	copy(r, s.items)
	return r
}

func (s *Schedule) indexOf(id int) int {
	for i, a := range s.items {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Create

// Add assigns the next id to `a`, appends it and persists. The returned error wraps ErrPersist
// when only the persist step failed; the activity is in the schedule then.
func (s *Schedule) Add(ctx context.Context, a *Activity) (Activity, error) {
	if a == nil {
		return Activity{}, ErrNilActivity
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	a.ID = s.nextID
	s.nextID++
	s.items = append(s.items, *a)
	return *a, s.autoPersist(ctx)
}

// Read

func (s *Schedule) All() []Activity {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.copyItems()
}

func (s *Schedule) Count() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.items)
}

func (s *Schedule) IsEmpty() bool { return s.Count() == 0 }

func (s *Schedule) Get(id int) (Activity, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], nil
	}
	return Activity{}, ErrNotFound
}

// Filter returns, in schedule order, the activities matching `keep`.
func (s *Schedule) Filter(keep Predicate) []Activity {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	r := make([]Activity, 0)
	for _, a := range s.items {
		if keep(a) {
			r = append(r, a)
		}
	}
	return r
}

func (s *Schedule) Today() []Activity { return s.OnDate(core.Today()) }

// ThisWeek returns the activities from Monday to Sunday of the current week.
func (s *Schedule) ThisWeek() []Activity { return s.Filter(InWeek(core.Today())) }

func (s *Schedule) OnDate(d civil.Date) []Activity { return s.Filter(OnDate(d)) }

// Between returns the activities dated from `from` to `to`, both inclusive.
func (s *Schedule) Between(from, to civil.Date) []Activity { return s.Filter(InRange(from, to)) }

func (s *Schedule) BySubject(subject string) []Activity { return s.Filter(HasSubject(subject)) }

func (s *Schedule) ByStatus(st Status) []Activity { return s.Filter(HasStatus(st)) }

// Search does a case-insensitive substring match on titles.
func (s *Schedule) Search(keyword string) []Activity { return s.Filter(TitleContains(keyword)) }

func (s *Schedule) ByKind(k Kind) []Activity { return s.Filter(OfKind(k)) }

func (s *Schedule) StudySessions() []Activity { return s.ByKind(KindStudySession) }
func (s *Schedule) Assignments() []Activity   { return s.ByKind(KindAssignment) }
func (s *Schedule) Exams() []Activity         { return s.ByKind(KindExam) }

// Overdue returns the unfinished assignments whose deadline passed.
func (s *Schedule) Overdue() []Activity {
	today := core.Today()
	return s.Filter(func(a Activity) bool {
		asg, ok := a.AsAssignment()
		return ok && asg.IsOverdue(today)
	})
}

func (s *Schedule) ExamsToday() []Activity {
	today := core.Today()
	return s.Filter(func(a Activity) bool { return a.Kind() == KindExam && a.IsToday(today) })
}

// Update

// Edit replaces the activity with the given id by `a`, keeping its position and id.
func (s *Schedule) Edit(ctx context.Context, id int, a *Activity) (Activity, error) {
	if a == nil {
		return Activity{}, ErrNilActivity
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Activity{}, ErrNotFound
	}
	a.ID = id
	s.items[i] = *a
	return *a, s.autoPersist(ctx)
}

// UpdateStatus sets the status of an activity. Invalid statuses leave it unchanged.
func (s *Schedule) UpdateStatus(ctx context.Context, id int, st Status) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items[i].SetStatus(st)
	return s.autoPersist(ctx)
}

// UpdateProgress sets an assignment's progress. Values outside [0, 100] leave it unchanged.
func (s *Schedule) UpdateProgress(ctx context.Context, id int, progress int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	if s.items[i].Kind() != KindAssignment {
		return ErrNotAssignment
	}
	s.items[i].UpdateProgress(progress)
	return s.autoPersist(ctx)
}

// Delete

func (s *Schedule) Remove(ctx context.Context, id int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.autoPersist(ctx)
}

// RemoveAll empties the schedule and restarts ids at 1.
func (s *Schedule) RemoveAll(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.items = nil
	s.nextID = 1
	return s.autoPersist(ctx)
}
