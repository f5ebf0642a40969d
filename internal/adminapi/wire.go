package adminapi

import (
	"encoding/json"
	"strings"

	"dancerfit/admin-dashboard/internal/domain"
)

// looseList decodes a list the server may send as an array, a JSON-encoded
// string or null.
type looseList []string

func (l *looseList) UnmarshalJSON(b []byte) error {
	*l = domain.ParseTags(b)
	return nil
}

type wireEnvelope[T any] struct {
	CurrentPage int     `json:"current_page"`
	Data        []T     `json:"data"`
	LastPage    int     `json:"last_page"`
	NextPageURL *string `json:"next_page_url"`
	PrevPageURL *string `json:"prev_page_url"`
}

func toEnvelope[W, T any](w wireEnvelope[W], conv func(W) T) domain.Envelope[T] {
	env := domain.Envelope[T]{
		CurrentPage: w.CurrentPage,
		LastPage:    w.LastPage,
		NextPageURL: w.NextPageURL,
		PrevPageURL: w.PrevPageURL,
		Data:        make([]T, 0, len(w.Data)),
	}
	if env.CurrentPage < 1 {
		env.CurrentPage = 1
	}
	if env.LastPage < env.CurrentPage {
		env.LastPage = env.CurrentPage
	}
	for _, item := range w.Data {
		env.Data = append(env.Data, conv(item))
	}
	return env
}

type wireExercise struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Categories     looseList `json:"categories"`
	Level          string    `json:"level"`
	Tags           looseList `json:"tags"`
	Equipment      looseList `json:"equipment"`
	Description    *string   `json:"description"`
	Type           string    `json:"type"`
	URL            *string   `json:"url"`
	Thumbnail      *string   `json:"thumbnail"`
	VideoDuration  *string   `json:"video_duration"`
	TrainingPlanID *int64    `json:"training_plan_id"`
}

func (w wireExercise) toDomain() domain.Exercise {
	return domain.Exercise{
		ID:             w.ID,
		Title:          w.Title,
		Categories:     orEmpty(w.Categories),
		Level:          parseLevel(w.Level),
		Tags:           orEmpty(w.Tags),
		Equipment:      orEmpty(w.Equipment),
		Description:    deref(w.Description),
		Type:           parseExerciseType(w.Type),
		URL:            deref(w.URL),
		Thumbnail:      deref(w.Thumbnail),
		VideoDuration:  deref(w.VideoDuration),
		TrainingPlanID: w.TrainingPlanID,
	}
}

type wirePlanExercise struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Categories looseList `json:"categories"`
	Duration   *string   `json:"duration"`
	Level      string    `json:"level"`
	Thumbnail  *string   `json:"thumbnail"`
	URL        *string   `json:"url"`
}

type wirePlan struct {
	ID          int64              `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description"`
	Categories  looseList          `json:"categories"`
	Level       string             `json:"level"`
	CoverImage  *string            `json:"cover_image"`
	Exercises   []wirePlanExercise `json:"exercises"`
}

func (w wirePlan) toDomain() domain.TrainingPlan {
	p := domain.TrainingPlan{
		ID:          w.ID,
		Title:       w.Title,
		Description: deref(w.Description),
		Categories:  orEmpty(w.Categories),
		Level:       parseLevel(w.Level),
		CoverImage:  deref(w.CoverImage),
		Exercises:   make([]domain.PlanExercise, 0, len(w.Exercises)),
	}
	for _, ex := range w.Exercises {
		p.Exercises = append(p.Exercises, domain.PlanExercise{
			ID:         ex.ID,
			Title:      ex.Title,
			Categories: orEmpty(ex.Categories),
			Duration:   deref(ex.Duration),
			Level:      parseLevel(ex.Level),
			Thumbnail:  deref(ex.Thumbnail),
			URL:        deref(ex.URL),
		})
	}
	return p
}

// exercisesResponse is the split listing. Older servers return a single
// flat envelope instead, see decodeExercisePages.
type exercisesResponse struct {
	Regular    *wireEnvelope[wireExercise] `json:"regular"`
	OnDemand   *wireEnvelope[wireExercise] `json:"ondemand"`
	OnDemandUS *wireEnvelope[wireExercise] `json:"on_demand"`
}

// messageBody is the shape of error and acknowledgement responses.
type messageBody struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token        string          `json:"token"`
	AdminDetails json.RawMessage `json:"admin_details"`
}

type wireAdmin struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// parseLevel keeps unknown levels as-is, lower-cased, so a bad record still
// renders and fails validation on edit.
func parseLevel(s string) domain.Level {
	if l, err := domain.ParseLevel(s); err == nil {
		return l
	}
	return domain.Level(strings.ToLower(strings.TrimSpace(s)))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orEmpty(l looseList) []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
