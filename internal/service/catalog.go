package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"dancerfit/admin-dashboard/internal/adminapi"
	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/pagination"
	"dancerfit/admin-dashboard/internal/submission"
)

var ErrUnknownKind = errors.New("unknown exercise collection")

// RemoteAPI is the part of the remote API the catalog drives. *adminapi.Client
// implements it.
type RemoteAPI interface {
	ListExercises(ctx context.Context, page int) (adminapi.ExercisePages, error)
	CreateExercise(ctx context.Context, req *submission.Request) (*domain.Exercise, error)
	UpdateExercise(ctx context.Context, req *submission.Request) (*domain.Exercise, error)
	DeleteExercise(ctx context.Context, id int64) error
	ListPlans(ctx context.Context, page int) (domain.Envelope[domain.TrainingPlan], error)
	CreatePlan(ctx context.Context, req *submission.Request) (*domain.TrainingPlan, error)
	UpdatePlan(ctx context.Context, req *submission.Request) (*domain.TrainingPlan, error)
	DeletePlan(ctx context.Context, id int64) error
}

// ExerciseKind names one of the two exercise collections.
type ExerciseKind int

const (
	KindRegular ExerciseKind = iota + 1
	KindOnDemand
)

func (k ExerciseKind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindOnDemand:
		return "ondemand"
	default:
		return "unknown"
	}
}

// ParseKind reads a tab name. Empty means regular.
func ParseKind(s string) (ExerciseKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular", "standalone":
		return KindRegular, nil
	case "ondemand", "on_demand", "on-demand":
		return KindOnDemand, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// KindOf is the collection an exercise of type t is listed in.
func KindOf(t domain.ExerciseType) ExerciseKind {
	if t == domain.ExerciseTypeOnDemand {
		return KindOnDemand
	}
	return KindRegular
}

// Catalog is the exercise and training plan state of one admin session. Each
// collection has its own cursor, so they page independently.
type Catalog struct {
	api     RemoteAPI
	builder *submission.Builder
	log     *logger.Logger

	regular  *pagination.Cursor[domain.Exercise]
	onDemand *pagination.Cursor[domain.Exercise]
	plans    *pagination.Cursor[domain.TrainingPlan]
}

func NewCatalog(api RemoteAPI, builder *submission.Builder, log *logger.Logger) *Catalog {
	if log == nil {
		log = logger.Nop()
	}
	c := &Catalog{api: api, builder: builder, log: log}
	c.regular = pagination.New("regular exercises", c.exercisePage(KindRegular))
	c.onDemand = pagination.New("on-demand exercises", c.exercisePage(KindOnDemand))
	c.plans = pagination.New("training plans", api.ListPlans)
	return c
}

func (c *Catalog) exercisePage(kind ExerciseKind) pagination.Fetcher[domain.Exercise] {
	return func(ctx context.Context, page int) (domain.Envelope[domain.Exercise], error) {
		pages, err := c.api.ListExercises(ctx, page)
		if err != nil {
			return domain.Envelope[domain.Exercise]{}, err
		}
		if kind == KindOnDemand {
			return pages.OnDemand, nil
		}
		return pages.Regular, nil
	}
}

func (c *Catalog) cursor(kind ExerciseKind) (*pagination.Cursor[domain.Exercise], error) {
	switch kind {
	case KindRegular:
		return c.regular, nil
	case KindOnDemand:
		return c.onDemand, nil
	default:
		return nil, ErrUnknownKind
	}
}

// LoadAll fetches every collection at its current page, concurrently.
func (c *Catalog) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ignoreStale(c.regular.Refresh(gctx)) })
	g.Go(func() error { return ignoreStale(c.onDemand.Refresh(gctx)) })
	g.Go(func() error { return ignoreStale(c.plans.Refresh(gctx)) })
	return g.Wait()
}

// Exercises returns page of the kind collection. Page 0 returns the current
// state, fetching it first if the collection was never loaded.
func (c *Catalog) Exercises(ctx context.Context, kind ExerciseKind, page int) (domain.Envelope[domain.Exercise], error) {
	cur, err := c.cursor(kind)
	if err != nil {
		return domain.Envelope[domain.Exercise]{}, err
	}
	return view(ctx, cur, page)
}

func (c *Catalog) Plans(ctx context.Context, page int) (domain.Envelope[domain.TrainingPlan], error) {
	return view(ctx, c.plans, page)
}

func view[T any](ctx context.Context, cur *pagination.Cursor[T], page int) (domain.Envelope[T], error) {
	if page == 0 {
		if cur.Loaded() {
			return cur.Snapshot(), nil
		}
		page = cur.CurrentPage()
	}
	env, err := cur.Fetch(ctx, page)
	if errors.Is(err, pagination.ErrStale) {
		// A newer request owns the cursor; show what it left.
		return cur.Snapshot(), nil
	}
	return env, err
}

// StepExercises moves the kind collection one page forward or back.
func (c *Catalog) StepExercises(ctx context.Context, kind ExerciseKind, forward bool) (domain.Envelope[domain.Exercise], error) {
	cur, err := c.cursor(kind)
	if err != nil {
		return domain.Envelope[domain.Exercise]{}, err
	}
	return step(ctx, cur, forward)
}

func (c *Catalog) StepPlans(ctx context.Context, forward bool) (domain.Envelope[domain.TrainingPlan], error) {
	return step(ctx, c.plans, forward)
}

func step[T any](ctx context.Context, cur *pagination.Cursor[T], forward bool) (domain.Envelope[T], error) {
	var (
		env domain.Envelope[T]
		err error
	)
	if forward {
		env, err = cur.Next(ctx)
	} else {
		env, err = cur.Previous(ctx)
	}
	if errors.Is(err, pagination.ErrStale) {
		return cur.Snapshot(), nil
	}
	return env, err
}

// FindExercise looks an exercise up in the loaded pages of both collections.
func (c *Catalog) FindExercise(id int64) (*domain.Exercise, bool) {
	for _, cur := range []*pagination.Cursor[domain.Exercise]{c.regular, c.onDemand} {
		for _, ex := range cur.Snapshot().Data {
			if ex.ID == id {
				ex := ex
				return &ex, true
			}
		}
	}
	return nil, false
}

// FindPlan looks a plan up in the loaded page of plans.
func (c *Catalog) FindPlan(id int64) (*domain.TrainingPlan, bool) {
	for _, p := range c.plans.Snapshot().Data {
		if p.ID == id {
			p := p
			return &p, true
		}
	}
	return nil, false
}

// CreateExercise uploads a standalone exercise and refreshes its collection.
// The draft is reset on success and left untouched on failure.
func (c *Catalog) CreateExercise(ctx context.Context, d *submission.ExerciseDraft) (*domain.Exercise, error) {
	req, err := c.builder.ExerciseCreate(d)
	if err != nil {
		return nil, err
	}
	created, err := c.api.CreateExercise(ctx, req)
	if err != nil {
		return nil, err
	}
	c.refreshExercises(ctx, KindOf(d.Type))
	d.Reset()
	return created, nil
}

// AddExerciseToPlan creates an exercise inside plan planID and refreshes the
// plan list and the exercise's collection.
func (c *Catalog) AddExerciseToPlan(ctx context.Context, planID int64, d *submission.ExerciseDraft) (*domain.Exercise, error) {
	d.TrainingPlanID = nil
	if planID > 0 {
		d.TrainingPlanID = &planID
	}
	req, err := c.builder.PlanExerciseCreate(d)
	if err != nil {
		return nil, err
	}
	created, err := c.api.CreateExercise(ctx, req)
	if err != nil {
		return nil, err
	}
	c.refreshPlans(ctx)
	c.refreshExercises(ctx, KindOf(d.Type))
	d.Reset()
	return created, nil
}

// UpdateExercise edits exercise id. Fields left empty fall back to the
// values in the loaded collections.
func (c *Catalog) UpdateExercise(ctx context.Context, id int64, d *submission.ExerciseDraft) (*domain.Exercise, error) {
	prior, _ := c.FindExercise(id)
	req, err := c.builder.ExerciseEdit(id, d, prior)
	if err != nil {
		return nil, err
	}
	updated, err := c.api.UpdateExercise(ctx, req)
	if err != nil {
		return nil, err
	}
	kind := KindOf(d.Type)
	c.refreshExercises(ctx, kind)
	if prior != nil && KindOf(prior.Type) != kind {
		c.refreshExercises(ctx, KindOf(prior.Type))
	}
	return updated, nil
}

// DeleteExercise removes exercise id remotely, then prunes it from every
// exercise collection and every loaded plan without re-fetching.
func (c *Catalog) DeleteExercise(ctx context.Context, id int64) error {
	if err := c.api.DeleteExercise(ctx, id); err != nil {
		return err
	}
	prune := func(env *domain.Envelope[domain.Exercise]) {
		kept := env.Data[:0:0]
		for _, ex := range env.Data {
			if ex.ID != id {
				kept = append(kept, ex)
			}
		}
		env.Data = kept
	}
	c.regular.Update(prune)
	c.onDemand.Update(prune)
	c.plans.Update(func(env *domain.Envelope[domain.TrainingPlan]) {
		for i := range env.Data {
			plan := env.Data[i]
			if plan.RemoveExercise(id) {
				env.Data[i] = plan
			}
		}
	})
	return nil
}

func (c *Catalog) CreatePlan(ctx context.Context, d *submission.PlanDraft) (*domain.TrainingPlan, error) {
	req, err := c.builder.PlanCreate(d)
	if err != nil {
		return nil, err
	}
	created, err := c.api.CreatePlan(ctx, req)
	if err != nil {
		return nil, err
	}
	c.refreshPlans(ctx)
	d.Reset()
	return created, nil
}

func (c *Catalog) UpdatePlan(ctx context.Context, id int64, d *submission.PlanDraft) (*domain.TrainingPlan, error) {
	req, err := c.builder.PlanEdit(id, d)
	if err != nil {
		return nil, err
	}
	updated, err := c.api.UpdatePlan(ctx, req)
	if err != nil {
		return nil, err
	}
	c.refreshPlans(ctx)
	return updated, nil
}

func (c *Catalog) DeletePlan(ctx context.Context, id int64) error {
	if err := c.api.DeletePlan(ctx, id); err != nil {
		return err
	}
	c.plans.Update(func(env *domain.Envelope[domain.TrainingPlan]) {
		kept := env.Data[:0:0]
		for _, p := range env.Data {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		env.Data = kept
	})
	return nil
}

// A failed refresh after a successful write keeps the previous page and is
// only logged; the write itself went through.
func (c *Catalog) refreshExercises(ctx context.Context, kind ExerciseKind) {
	cur, err := c.cursor(kind)
	if err != nil {
		return
	}
	if err := ignoreStale(cur.Refresh(ctx)); err != nil {
		c.log.Warn("refresh after write failed", "collection", cur.Name(), "page", cur.CurrentPage(), "error", err)
	}
}

func (c *Catalog) refreshPlans(ctx context.Context) {
	if err := ignoreStale(c.plans.Refresh(ctx)); err != nil {
		c.log.Warn("refresh after write failed", "collection", c.plans.Name(), "page", c.plans.CurrentPage(), "error", err)
	}
}

func ignoreStale[T any](_ T, err error) error {
	if errors.Is(err, pagination.ErrStale) {
		return nil
	}
	return err
}
