package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"dancerfit/admin-dashboard/internal/adminapi"
	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/repository"
	"dancerfit/admin-dashboard/internal/submission"
)

// fakeRemote is an in-memory stand-in for the remote API.
type fakeRemote struct {
	mu        sync.Mutex
	calls     []string
	pages     []int // page argument of every list call
	nextID    int64
	pageSize  int
	exercises []domain.Exercise
	plans     []domain.TrainingPlan
	failNext  error
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{nextID: 1, pageSize: 10}
}

func (f *fakeRemote) begin(name string) error {
	f.calls = append(f.calls, name)
	if err := f.failNext; err != nil {
		f.failNext = nil
		return err
	}
	return nil
}

func (f *fakeRemote) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func paginate[T any](items []T, page, size int) domain.Envelope[T] {
	last := (len(items) + size - 1) / size
	if last < 1 {
		last = 1
	}
	env := domain.Envelope[T]{CurrentPage: page, LastPage: last, Data: []T{}}
	start := (page - 1) * size
	for i := start; i < len(items) && i < start+size; i++ {
		env.Data = append(env.Data, items[i])
	}
	if page < last {
		next := "/page/" + strconv.Itoa(page+1)
		env.NextPageURL = &next
	}
	if page > 1 {
		prev := "/page/" + strconv.Itoa(page-1)
		env.PrevPageURL = &prev
	}
	return env
}

func (f *fakeRemote) ListExercises(_ context.Context, page int) (adminapi.ExercisePages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("ListExercises"); err != nil {
		return adminapi.ExercisePages{}, err
	}
	f.pages = append(f.pages, page)
	var regular, onDemand []domain.Exercise
	for _, ex := range f.exercises {
		if ex.Type == domain.ExerciseTypeOnDemand {
			onDemand = append(onDemand, ex)
		} else {
			regular = append(regular, ex)
		}
	}
	return adminapi.ExercisePages{
		Regular:  paginate(regular, page, f.pageSize),
		OnDemand: paginate(onDemand, page, f.pageSize),
	}, nil
}

func (f *fakeRemote) CreateExercise(_ context.Context, req *submission.Request) (*domain.Exercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreateExercise"); err != nil {
		return nil, err
	}
	ex := exerciseFromRequest(req)
	ex.ID = f.nextID
	f.nextID++
	if ex.Type == domain.ExerciseTypeUnset {
		ex.Type = domain.ExerciseTypeStandalone
	}
	if v, ok := req.Value("training_plan_id"); ok {
		planID, _ := strconv.ParseInt(v, 10, 64)
		ex.TrainingPlanID = &planID
		for i := range f.plans {
			if f.plans[i].ID == planID {
				f.plans[i].Exercises = append(f.plans[i].Exercises, domain.PlanExercise{
					ID: ex.ID, Title: ex.Title, Categories: ex.Categories, Duration: ex.VideoDuration, Level: ex.Level,
				})
			}
		}
	}
	f.exercises = append(f.exercises, ex)
	return &ex, nil
}

func (f *fakeRemote) UpdateExercise(_ context.Context, req *submission.Request) (*domain.Exercise, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdateExercise"); err != nil {
		return nil, err
	}
	for i := range f.exercises {
		if f.exercises[i].ID == req.ID {
			// Fields the request leaves out keep their stored values.
			stored := f.exercises[i]
			updated := exerciseFromRequest(req)
			updated.ID = req.ID
			if _, ok := req.Value("description"); !ok {
				updated.Description = stored.Description
			}
			if len(updated.Tags) == 0 {
				updated.Tags = stored.Tags
			}
			if len(updated.Equipment) == 0 {
				updated.Equipment = stored.Equipment
			}
			f.exercises[i] = updated
			return &updated, nil
		}
	}
	return nil, &adminapi.Error{Status: 404, Message: "Exercise not found"}
}

func (f *fakeRemote) DeleteExercise(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeleteExercise"); err != nil {
		return err
	}
	kept := f.exercises[:0]
	for _, ex := range f.exercises {
		if ex.ID != id {
			kept = append(kept, ex)
		}
	}
	f.exercises = kept
	for i := range f.plans {
		f.plans[i].RemoveExercise(id)
	}
	return nil
}

func (f *fakeRemote) ListPlans(_ context.Context, page int) (domain.Envelope[domain.TrainingPlan], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("ListPlans"); err != nil {
		return domain.Envelope[domain.TrainingPlan]{}, err
	}
	f.pages = append(f.pages, page)
	env := paginate(f.plans, page, f.pageSize)
	// Hand out copies so callers can't reach into the fake's state.
	for i, p := range env.Data {
		p.Exercises = append([]domain.PlanExercise{}, p.Exercises...)
		env.Data[i] = p
	}
	return env, nil
}

func (f *fakeRemote) CreatePlan(_ context.Context, req *submission.Request) (*domain.TrainingPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("CreatePlan"); err != nil {
		return nil, err
	}
	p := planFromRequest(req)
	p.ID = f.nextID
	f.nextID++
	f.plans = append(f.plans, p)
	return &p, nil
}

func (f *fakeRemote) UpdatePlan(_ context.Context, req *submission.Request) (*domain.TrainingPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("UpdatePlan"); err != nil {
		return nil, err
	}
	for i := range f.plans {
		if f.plans[i].ID == req.ID {
			p := planFromRequest(req)
			p.ID = req.ID
			p.Exercises = f.plans[i].Exercises
			f.plans[i] = p
			return &p, nil
		}
	}
	return nil, &adminapi.Error{Status: 404}
}

func (f *fakeRemote) DeletePlan(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.begin("DeletePlan"); err != nil {
		return err
	}
	kept := f.plans[:0]
	for _, p := range f.plans {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.plans = kept
	return nil
}

func exerciseFromRequest(req *submission.Request) domain.Exercise {
	title, _ := req.Value("title")
	level, _ := req.Value("level")
	description, _ := req.Value("description")
	duration, _ := req.Value("video_duration")
	return domain.Exercise{
		Title:         title,
		Categories:    req.Values("categories[]"),
		Level:         domain.Level(level),
		Description:   description,
		Tags:          req.Values("tags[]"),
		Equipment:     req.Values("equipment[]"),
		Type:          req.ExerciseType,
		VideoDuration: duration,
	}
}

func planFromRequest(req *submission.Request) domain.TrainingPlan {
	title, _ := req.Value("title")
	level, _ := req.Value("level")
	description, _ := req.Value("description")
	return domain.TrainingPlan{
		Title:       title,
		Description: description,
		Level:       domain.Level(level),
		Categories:  req.Values("categories[]"),
		Exercises:   []domain.PlanExercise{},
	}
}

// memSessions is an in-memory SessionRepository.
type memSessions struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]domain.Session), now: time.Now}
}

func (m *memSessions) Create(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; ok {
		return repository.ErrDuplicate
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *memSessions) GetByID(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || s.Expired(m.now()) {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (m *memSessions) Touch(_ context.Context, id string, seenAt, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return repository.ErrNotFound
	}
	s.LastSeenAt, s.ExpiresAt = seenAt, expiresAt
	m.sessions[id] = s
	return nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}
