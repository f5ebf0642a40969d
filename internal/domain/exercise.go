// internal/domain/exercise.go
package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

// Level is the difficulty of an exercise or training plan.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists every valid level in display order.
var Levels = []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}

var ErrInvalidLevel = errors.New("invalid level")

// ParseLevel accepts a level in any letter case. An empty string yields an
// empty Level and no error so that drafts can carry "not chosen yet".
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, l := range Levels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", ErrInvalidLevel
}

// Valid reports whether l is one of the known levels.
func (l Level) Valid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

// Label is the capitalised form shown in selectors ("Beginner").
func (l Level) Label() string {
	if l == "" {
		return ""
	}
	return strings.ToUpper(string(l[:1])) + string(l[1:])
}

// ExerciseType distinguishes catalog exercises from on-demand content.
// The remote API spells these values inconsistently; translation to and from
// wire strings lives in the adminapi package only.
type ExerciseType int

const (
	ExerciseTypeUnset ExerciseType = iota
	ExerciseTypeStandalone
	ExerciseTypeOnDemand
)

func (t ExerciseType) String() string {
	switch t {
	case ExerciseTypeStandalone:
		return "standalone"
	case ExerciseTypeOnDemand:
		return "on_demand"
	default:
		return "unset"
	}
}

// Exercise is a single exercise record as held by the dashboard.
type Exercise struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Categories    []string     `json:"categories"`
	Level         Level        `json:"level"`
	Tags          []string     `json:"tags"`
	Equipment     []string     `json:"equipment,omitempty"`
	Description   string       `json:"description,omitempty"`
	Type          ExerciseType `json:"-"`
	URL           string       `json:"url,omitempty"`       // storage path of the video
	Thumbnail     string       `json:"thumbnail,omitempty"` // storage path, empty when none
	VideoDuration string       `json:"video_duration,omitempty"`

	// TrainingPlanID is set when the exercise is attached to a plan.
	TrainingPlanID *int64 `json:"training_plan_id,omitempty"`
}

// ParseTags decodes a tags value that the server may send as a JSON array,
// as a JSON-encoded string holding an array, or as null. Anything that cannot
// be parsed yields an empty slice.
func ParseTags(raw json.RawMessage) []string {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err == nil {
		return nonNil(tags)
	}
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return []string{}
	}
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return []string{}
	}
	if err := json.Unmarshal([]byte(encoded), &tags); err != nil {
		return []string{}
	}
	return nonNil(tags)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
