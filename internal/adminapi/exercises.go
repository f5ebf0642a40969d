package adminapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/submission"
)

// ExercisePages is one page of both exercise collections.
type ExercisePages struct {
	Regular  domain.Envelope[domain.Exercise]
	OnDemand domain.Envelope[domain.Exercise]
}

// ListExercises fetches page of the regular and on-demand collections.
func (c *Client) ListExercises(ctx context.Context, page int) (ExercisePages, error) {
	var raw json.RawMessage
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/admin/exercises",
		query:  pageQuery(page),
		auth:   true,
	}, &raw)
	if err != nil {
		return ExercisePages{}, err
	}
	return decodeExercisePages(raw)
}

func decodeExercisePages(raw json.RawMessage) (ExercisePages, error) {
	var split exercisesResponse
	if err := json.Unmarshal(raw, &split); err != nil {
		return ExercisePages{}, fmt.Errorf("%w: exercises: %v", ErrDecode, err)
	}
	onDemand := split.OnDemand
	if onDemand == nil {
		onDemand = split.OnDemandUS
	}
	if split.Regular != nil || onDemand != nil {
		var pages ExercisePages
		if split.Regular != nil {
			pages.Regular = toEnvelope(*split.Regular, wireExercise.toDomain)
		} else {
			pages.Regular = domain.EmptyEnvelope[domain.Exercise]()
		}
		if onDemand != nil {
			pages.OnDemand = toEnvelope(*onDemand, wireExercise.toDomain)
		} else {
			pages.OnDemand = domain.EmptyEnvelope[domain.Exercise]()
		}
		return pages, nil
	}

	// Flat listing: both collections share the paging fields.
	var flat wireEnvelope[wireExercise]
	if err := json.Unmarshal(raw, &flat); err != nil {
		return ExercisePages{}, fmt.Errorf("%w: exercises: %v", ErrDecode, err)
	}
	all := toEnvelope(flat, wireExercise.toDomain)
	pages := ExercisePages{Regular: all, OnDemand: all}
	pages.Regular.Data = []domain.Exercise{}
	pages.OnDemand.Data = []domain.Exercise{}
	for _, ex := range all.Data {
		if ex.Type == domain.ExerciseTypeOnDemand {
			pages.OnDemand.Data = append(pages.OnDemand.Data, ex)
		} else {
			pages.Regular.Data = append(pages.Regular.Data, ex)
		}
	}
	return pages, nil
}

// CreateExercise uploads a standalone or plan-attached exercise, depending on
// req.Op. The server's record is returned when the response carried one.
func (c *Client) CreateExercise(ctx context.Context, req *submission.Request) (*domain.Exercise, error) {
	var path string
	switch req.Op {
	case submission.OpExerciseCreate:
		path = "/admin/add-exercise"
	case submission.OpPlanExerciseCreate:
		path = "/admin/training-plans/add-exercise"
	default:
		return nil, fmt.Errorf("create exercise: unexpected operation %s", req.Op)
	}
	var raw json.RawMessage
	if err := c.do(ctx, c.multipartCall(http.MethodPost, path, req), &raw); err != nil {
		return nil, err
	}
	return decodeRecord(raw, wireExercise.toDomain, func(w wireExercise) bool { return w.ID != 0 }), nil
}

// UpdateExercise sends an edit. The video is never part of it.
func (c *Client) UpdateExercise(ctx context.Context, req *submission.Request) (*domain.Exercise, error) {
	if req.Op != submission.OpExerciseEdit {
		return nil, fmt.Errorf("update exercise: unexpected operation %s", req.Op)
	}
	var raw json.RawMessage
	path := "/admin/exercises/" + strconv.FormatInt(req.ID, 10)
	if err := c.do(ctx, c.multipartCall(http.MethodPut, path, req), &raw); err != nil {
		return nil, err
	}
	return decodeRecord(raw, wireExercise.toDomain, func(w wireExercise) bool { return w.ID != 0 }), nil
}

func (c *Client) DeleteExercise(ctx context.Context, id int64) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/admin/exercises/" + strconv.FormatInt(id, 10),
		auth:   true,
	}, nil)
}

func pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

// decodeRecord reads a record from either {"data": {...}} or the bare
// object. Responses that carry no record yield nil.
func decodeRecord[W, T any](raw json.RawMessage, conv func(W) T, ok func(W) bool) *T {
	if len(raw) == 0 {
		return nil
	}
	var wrapped struct {
		Data *W `json:"data"`
	}
	if json.Unmarshal(raw, &wrapped) == nil && wrapped.Data != nil && ok(*wrapped.Data) {
		out := conv(*wrapped.Data)
		return &out
	}
	var bare W
	if json.Unmarshal(raw, &bare) == nil && ok(bare) {
		out := conv(bare)
		return &out
	}
	return nil
}
