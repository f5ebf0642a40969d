// internal/domain/training_plan.go
package domain

// PlanExercise is the summary of an exercise as listed inside a training plan.
type PlanExercise struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Categories []string `json:"categories"`
	Duration   string   `json:"duration"`
	Level      Level    `json:"level"`
	Thumbnail  string   `json:"thumbnail,omitempty"`
	URL        string   `json:"url,omitempty"`
}

// TrainingPlan aggregates an ordered list of exercises. The list is a read
// view: exercises join a plan through the plan-attached create endpoint and
// leave it when the exercise itself is deleted.
type TrainingPlan struct {
	ID          int64          `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Categories  []string       `json:"categories"`
	Level       Level          `json:"level"`
	CoverImage  string         `json:"cover_image,omitempty"`
	Exercises   []PlanExercise `json:"exercises"`
}

// ExerciseCount is the number shown on the plan card.
func (p *TrainingPlan) ExerciseCount() int {
	return len(p.Exercises)
}

// HasExercise reports whether the exercise with id is attached to p.
func (p *TrainingPlan) HasExercise(id int64) bool {
	for _, ex := range p.Exercises {
		if ex.ID == id {
			return true
		}
	}
	return false
}

// RemoveExercise detaches the exercise with id, keeping the order of the
// remaining ones. It reports whether anything was removed.
func (p *TrainingPlan) RemoveExercise(id int64) bool {
	kept := p.Exercises[:0:0]
	removed := false
	for _, ex := range p.Exercises {
		if ex.ID == id {
			removed = true
			continue
		}
		kept = append(kept, ex)
	}
	if removed {
		p.Exercises = kept
	}
	return removed
}
