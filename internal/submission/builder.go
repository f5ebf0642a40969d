package submission

import (
	"strconv"
	"strings"

	"dancerfit/admin-dashboard/internal/domain"
)

// FormField is one text part of a multipart body.
type FormField struct {
	Name  string
	Value string
}

// FormFile is one file part of a multipart body.
type FormFile struct {
	Name   string
	Upload *Upload
}

// Request is a validated submission, ready to be encoded by the API adapter.
// Multi-valued attributes appear as repeated "name[]" fields. The exercise
// type is kept typed; its wire spelling is chosen by the adapter.
type Request struct {
	Op           Operation
	ID           int64 // record being edited, zero on create
	Fields       []FormField
	Files        []FormFile
	ExerciseType domain.ExerciseType
}

// Add appends a text field.
func (r *Request) Add(name, value string) {
	r.Fields = append(r.Fields, FormField{Name: name, Value: value})
}

// AddList appends one "name[]" field per value.
func (r *Request) AddList(name string, values []string) {
	for _, v := range values {
		r.Add(name+"[]", v)
	}
}

// AddFile appends a file part. A nil upload is skipped.
func (r *Request) AddFile(name string, u *Upload) {
	if u == nil {
		return
	}
	r.Files = append(r.Files, FormFile{Name: name, Upload: u})
}

// Values returns every value sent under name, in order.
func (r *Request) Values(name string) []string {
	var out []string
	for _, f := range r.Fields {
		if f.Name == name {
			out = append(out, f.Value)
		}
	}
	return out
}

// Value returns the first value sent under name.
func (r *Request) Value(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// File returns the upload sent under name, if any.
func (r *Request) File(name string) *Upload {
	for _, f := range r.Files {
		if f.Name == name {
			return f.Upload
		}
	}
	return nil
}

// Builder validates drafts and assembles requests.
type Builder struct {
	schema *Schema
}

func NewBuilder(schema *Schema) *Builder {
	return &Builder{schema: schema}
}

// ExerciseCreate builds a standalone exercise upload.
func (b *Builder) ExerciseCreate(d *ExerciseDraft) (*Request, error) {
	if err := b.schema.Check(OpExerciseCreate, d.Has); err != nil {
		return nil, err
	}
	req := &Request{Op: OpExerciseCreate, ExerciseType: d.Type}
	addExerciseBody(req, d)
	req.AddFile(string(FieldVideo), d.Video)
	req.Add(string(FieldVideoDuration), d.VideoDuration)
	return req, nil
}

// PlanExerciseCreate builds an upload that creates an exercise inside the
// training plan named by d.TrainingPlanID.
func (b *Builder) PlanExerciseCreate(d *ExerciseDraft) (*Request, error) {
	if err := b.schema.Check(OpPlanExerciseCreate, d.Has); err != nil {
		return nil, err
	}
	req := &Request{Op: OpPlanExerciseCreate, ExerciseType: d.Type}
	req.Add(string(FieldTrainingPlan), strconv.FormatInt(*d.TrainingPlanID, 10))
	addExerciseBody(req, d)
	req.AddFile(string(FieldVideo), d.Video)
	req.Add(string(FieldVideoDuration), d.VideoDuration)
	return req, nil
}

// ExerciseEdit builds an update for exercise id. Description, tags and
// equipment left empty in d keep the values stored in prior, and are omitted
// when prior has none either (prior may be nil). The video is never part of
// an edit.
func (b *Builder) ExerciseEdit(id int64, d *ExerciseDraft, prior *domain.Exercise) (*Request, error) {
	if err := b.schema.Check(OpExerciseEdit, d.Has); err != nil {
		return nil, err
	}
	if prior == nil {
		prior = &domain.Exercise{}
	}
	req := &Request{Op: OpExerciseEdit, ID: id, ExerciseType: d.Type}
	req.Add(string(FieldTitle), d.Title)
	req.AddList(string(FieldCategories), d.Categories.Values())
	req.Add(string(FieldLevel), string(d.Level))

	// A field with nothing to send is left out so the server keeps its value.
	description := strings.TrimSpace(d.Description)
	if description == "" {
		description = strings.TrimSpace(prior.Description)
	}
	if description != "" {
		req.Add(string(FieldDescription), description)
	}

	tags := d.Tags.Values()
	if len(tags) == 0 {
		tags = prior.Tags
	}
	req.AddList(string(FieldTags), tags)

	equipment := cleanList(d.Equipment)
	if len(equipment) == 0 {
		equipment = cleanList(prior.Equipment)
	}
	req.AddList(string(FieldEquipment), equipment)
	return req, nil
}

// PlanCreate builds a new training plan.
func (b *Builder) PlanCreate(d *PlanDraft) (*Request, error) {
	if err := b.schema.Check(OpPlanCreate, d.Has); err != nil {
		return nil, err
	}
	req := &Request{Op: OpPlanCreate}
	addPlanBody(req, d)
	req.AddFile(string(FieldCoverImage), d.CoverImage)
	return req, nil
}

// PlanEdit builds an update for plan id. Without a new cover image the
// server keeps the current one.
func (b *Builder) PlanEdit(id int64, d *PlanDraft) (*Request, error) {
	if err := b.schema.Check(OpPlanEdit, d.Has); err != nil {
		return nil, err
	}
	req := &Request{Op: OpPlanEdit, ID: id}
	req.Add(string(FieldTrainingPlan), strconv.FormatInt(id, 10))
	addPlanBody(req, d)
	req.AddFile(string(FieldCoverImage), d.CoverImage)
	return req, nil
}

func addExerciseBody(req *Request, d *ExerciseDraft) {
	req.Add(string(FieldTitle), d.Title)
	req.AddList(string(FieldCategories), d.Categories.Values())
	req.Add(string(FieldLevel), string(d.Level))
	req.Add(string(FieldDescription), d.Description)
	req.AddList(string(FieldTags), d.Tags.Values())
	req.AddList(string(FieldEquipment), cleanList(d.Equipment))
}

func addPlanBody(req *Request, d *PlanDraft) {
	req.Add(string(FieldTitle), d.Title)
	req.Add(string(FieldDescription), d.Description)
	req.Add(string(FieldLevel), string(d.Level))
	req.AddList(string(FieldCategories), d.Categories.Values())
}
