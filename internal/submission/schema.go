// Package submission validates exercise and training plan drafts against a
// declarative required-field schema and turns valid drafts into requests
// for the remote API.
package submission

import (
	"errors"
	"fmt"
)

// Operation identifies what a draft is being submitted for.
type Operation int

const (
	OpExerciseCreate Operation = iota + 1
	OpPlanExerciseCreate
	OpExerciseEdit
	OpPlanCreate
	OpPlanEdit
)

func (op Operation) String() string {
	switch op {
	case OpExerciseCreate:
		return "exercise_create"
	case OpPlanExerciseCreate:
		return "plan_exercise_create"
	case OpExerciseEdit:
		return "exercise_edit"
	case OpPlanCreate:
		return "plan_create"
	case OpPlanEdit:
		return "plan_edit"
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

// Field names a draft attribute the schema can require.
type Field string

const (
	FieldTrainingPlan  Field = "training_plan_id"
	FieldTitle         Field = "title"
	FieldCategories    Field = "categories"
	FieldLevel         Field = "level"
	FieldDescription   Field = "description"
	FieldTags          Field = "tags"
	FieldEquipment     Field = "equipment"
	FieldVideo         Field = "video"
	FieldVideoDuration Field = "video_duration"
	FieldType          Field = "type"
	FieldCoverImage    Field = "cover_image"
)

// Class groups missing fields that share one user-facing message.
type Class int

const (
	ClassFields Class = iota + 1
	ClassMedia
	ClassPlan
	ClassDuration
)

// Rule ties a required field to the message class reported when it's missing.
type Rule struct {
	Field Field
	Class Class
}

// SchemaOptions holds the policy switches the sources disagree on.
type SchemaOptions struct {
	// PlanExerciseTypeRequired makes type mandatory when adding an exercise
	// to a training plan.
	PlanExerciseTypeRequired bool
}

// Schema is the single table of required fields per operation.
type Schema struct {
	rules    map[Operation][]Rule
	messages map[Operation]map[Class]string
}

const (
	msgFillAll         = "Please fill all required fields"
	msgFillAllExercise = "Please fill all required fields for the exercise."
	msgFillAllPlan     = "Please fill all required fields!"
	msgNoPlan          = "No training plan selected!"
	msgNoVideo         = "Video is required!"
	msgDurationPending = "Video duration is still being detected. Please wait a moment and try again."
)

// NewSchema builds the schema. Rules are checked in order and the first
// missing one decides the message.
func NewSchema(opts SchemaOptions) *Schema {
	exerciseBody := []Rule{
		{FieldTitle, ClassFields},
		{FieldCategories, ClassFields},
		{FieldLevel, ClassFields},
		{FieldDescription, ClassFields},
		{FieldTags, ClassFields},
		{FieldEquipment, ClassFields},
	}

	create := []Rule{{FieldVideo, ClassMedia}, {FieldType, ClassMedia}}
	create = append(create, exerciseBody...)
	create = append(create, Rule{FieldVideoDuration, ClassDuration})

	planExercise := []Rule{{FieldTrainingPlan, ClassPlan}, {FieldVideo, ClassMedia}}
	planExercise = append(planExercise, exerciseBody...)
	if opts.PlanExerciseTypeRequired {
		planExercise = append(planExercise, Rule{FieldType, ClassFields})
	}
	planExercise = append(planExercise, Rule{FieldVideoDuration, ClassDuration})

	return &Schema{
		rules: map[Operation][]Rule{
			OpExerciseCreate:     create,
			OpPlanExerciseCreate: planExercise,
			OpExerciseEdit: {
				{FieldTitle, ClassFields},
				{FieldCategories, ClassFields},
				{FieldLevel, ClassFields},
				{FieldType, ClassFields},
			},
			OpPlanCreate: {
				{FieldTitle, ClassFields},
				{FieldLevel, ClassFields},
				{FieldCategories, ClassFields},
				{FieldCoverImage, ClassFields},
				{FieldDescription, ClassFields},
			},
			OpPlanEdit: {
				{FieldTitle, ClassFields},
				{FieldLevel, ClassFields},
				{FieldCategories, ClassFields},
				{FieldDescription, ClassFields},
			},
		},
		messages: map[Operation]map[Class]string{
			OpExerciseCreate: {
				ClassMedia:    msgFillAll,
				ClassFields:   msgFillAllExercise,
				ClassDuration: msgDurationPending,
			},
			OpPlanExerciseCreate: {
				ClassPlan:     msgNoPlan,
				ClassMedia:    msgNoVideo,
				ClassFields:   msgFillAllExercise,
				ClassDuration: msgDurationPending,
			},
			OpExerciseEdit: {ClassFields: msgFillAll},
			OpPlanCreate:   {ClassFields: msgFillAllPlan},
			OpPlanEdit:     {ClassFields: msgFillAllPlan},
		},
	}
}

// Required lists the fields op requires, in check order.
func (s *Schema) Required(op Operation) []Field {
	rules := s.rules[op]
	out := make([]Field, len(rules))
	for i, r := range rules {
		out[i] = r.Field
	}
	return out
}

// Requires reports whether op requires f.
func (s *Schema) Requires(op Operation, f Field) bool {
	for _, r := range s.rules[op] {
		if r.Field == f {
			return true
		}
	}
	return false
}

// Check runs op's rules against present. It returns nil or a *ValidationError.
func (s *Schema) Check(op Operation, present func(Field) bool) error {
	rules, ok := s.rules[op]
	if !ok {
		return fmt.Errorf("no schema for %s", op)
	}
	var verr *ValidationError
	for _, r := range rules {
		if present(r.Field) {
			continue
		}
		if verr == nil {
			verr = &ValidationError{Op: op, Class: r.Class, Message: s.message(op, r.Class)}
		}
		verr.Missing = append(verr.Missing, r.Field)
	}
	if verr != nil {
		return verr
	}
	return nil
}

func (s *Schema) message(op Operation, c Class) string {
	if m, ok := s.messages[op][c]; ok {
		return m
	}
	return msgFillAll
}

// ErrValidation matches every *ValidationError with errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError blocks a submission before anything is sent.
type ValidationError struct {
	Op      Operation
	Class   Class
	Missing []Field
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
