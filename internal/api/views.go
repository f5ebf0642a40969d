package api

import (
	"context"

	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/service"
	"dancerfit/admin-dashboard/internal/storage"
)

// PageResponse is the list shape returned to the dashboard.
type PageResponse[T any] struct {
	Data        []T  `json:"data"`
	CurrentPage int  `json:"current_page"`
	LastPage    int  `json:"last_page"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

func mapPage[S, T any](env domain.Envelope[S], conv func(*S) T) PageResponse[T] {
	out := PageResponse[T]{
		Data:        make([]T, 0, len(env.Data)),
		CurrentPage: env.CurrentPage,
		LastPage:    env.LastPage,
		HasNext:     env.HasNext(),
		HasPrevious: env.HasPrevious(),
	}
	for i := range env.Data {
		out.Data = append(out.Data, conv(&env.Data[i]))
	}
	return out
}

type ExerciseResponse struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Categories     []string `json:"categories"`
	Level          string   `json:"level"`
	LevelLabel     string   `json:"level_label"`
	Tags           []string `json:"tags"`
	Equipment      []string `json:"equipment"`
	Description    string   `json:"description,omitempty"`
	Type           string   `json:"type"`
	VideoURL       string   `json:"video_url,omitempty"`
	ThumbnailURL   string   `json:"thumbnail_url"`
	VideoDuration  string   `json:"video_duration,omitempty"`
	TrainingPlanID *int64   `json:"training_plan_id,omitempty"`
}

type PlanExerciseResponse struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Categories   []string `json:"categories"`
	Duration     string   `json:"duration"`
	Level        string   `json:"level"`
	ThumbnailURL string   `json:"thumbnail_url"`
	VideoURL     string   `json:"video_url,omitempty"`
}

type TrainingPlanResponse struct {
	ID            int64                  `json:"id"`
	Title         string                 `json:"title"`
	Description   string                 `json:"description"`
	Categories    []string               `json:"categories"`
	Level         string                 `json:"level"`
	LevelLabel    string                 `json:"level_label"`
	CoverImageURL string                 `json:"cover_image_url"`
	ExerciseCount int                    `json:"exercise_count"`
	Exercises     []PlanExerciseResponse `json:"exercises"`
}

// mediaMapper resolves storage paths while mapping records to responses.
type mediaMapper struct {
	ctx      context.Context
	media    storage.MediaURLResolver
	fallback string
}

func newMediaMapper(ctx context.Context, media storage.MediaURLResolver) mediaMapper {
	return mediaMapper{ctx: ctx, media: media, fallback: storage.DefaultImageFallback}
}

func (m mediaMapper) video(path string) string {
	u, err := m.media.VideoURL(m.ctx, path)
	if err != nil {
		return ""
	}
	return u
}

func (m mediaMapper) exercise(ex *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:             ex.ID,
		Title:          ex.Title,
		Categories:     nonNil(ex.Categories),
		Level:          string(ex.Level),
		LevelLabel:     ex.Level.Label(),
		Tags:           nonNil(ex.Tags),
		Equipment:      nonNil(ex.Equipment),
		Description:    ex.Description,
		Type:           service.KindOf(ex.Type).String(),
		VideoURL:       m.video(ex.URL),
		ThumbnailURL:   m.media.ImageURL(m.ctx, ex.Thumbnail, m.fallback),
		VideoDuration:  ex.VideoDuration,
		TrainingPlanID: ex.TrainingPlanID,
	}
}

func (m mediaMapper) plan(p *domain.TrainingPlan) TrainingPlanResponse {
	resp := TrainingPlanResponse{
		ID:            p.ID,
		Title:         p.Title,
		Description:   p.Description,
		Categories:    nonNil(p.Categories),
		Level:         string(p.Level),
		LevelLabel:    p.Level.Label(),
		CoverImageURL: m.media.ImageURL(m.ctx, p.CoverImage, m.fallback),
		ExerciseCount: p.ExerciseCount(),
		Exercises:     make([]PlanExerciseResponse, 0, len(p.Exercises)),
	}
	for _, ex := range p.Exercises {
		resp.Exercises = append(resp.Exercises, PlanExerciseResponse{
			ID:           ex.ID,
			Title:        ex.Title,
			Categories:   nonNil(ex.Categories),
			Duration:     ex.Duration,
			Level:        string(ex.Level),
			ThumbnailURL: m.media.ImageURL(m.ctx, ex.Thumbnail, m.fallback),
			VideoURL:     m.video(ex.URL),
		})
	}
	return resp
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
