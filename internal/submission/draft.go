package submission

import (
	"bytes"
	"io"
	"mime/multipart"
	"strings"

	"dancerfit/admin-dashboard/internal/domain"
)

// Upload is a file chosen for submission. It is opened lazily so large videos
// are streamed rather than held in memory.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	open        func() (io.ReadCloser, error)
}

// NewUpload wraps an opener.
func NewUpload(name, contentType string, size int64, open func() (io.ReadCloser, error)) *Upload {
	return &Upload{Name: name, ContentType: contentType, Size: size, open: open}
}

// FromFileHeader adapts a file received in a multipart request.
func FromFileHeader(fh *multipart.FileHeader) *Upload {
	if fh == nil {
		return nil
	}
	return &Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// BytesUpload keeps the content in memory.
func BytesUpload(name, contentType string, data []byte) *Upload {
	return &Upload{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func (u *Upload) Open() (io.ReadCloser, error) { return u.open() }

func (u *Upload) Filename() string { return u.Name }

// ParseEquipment splits comma separated input, trimming blanks.
func ParseEquipment(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExerciseDraft is an exercise being authored or edited.
type ExerciseDraft struct {
	Title          string
	Categories     *domain.Selection
	Level          domain.Level
	Description    string
	Tags           *domain.Selection
	Equipment      []string
	Type           domain.ExerciseType
	Video          *Upload
	VideoDuration  string
	TrainingPlanID *int64
}

// NewExerciseDraft returns an empty draft with editors over the fixed vocabularies.
func NewExerciseDraft() *ExerciseDraft {
	return &ExerciseDraft{
		Categories: domain.NewCategorySelection(),
		Tags:       domain.NewTagSelection(),
	}
}

// EditDraft pre-populates a draft from a stored exercise.
func EditDraft(ex *domain.Exercise) *ExerciseDraft {
	d := NewExerciseDraft()
	d.Title = ex.Title
	d.Categories.Replace(ex.Categories)
	d.Level = ex.Level
	d.Description = ex.Description
	d.Tags.Replace(ex.Tags)
	d.Equipment = append([]string(nil), ex.Equipment...)
	d.Type = ex.Type
	return d
}

// Has reports whether f holds a usable value.
func (d *ExerciseDraft) Has(f Field) bool {
	switch f {
	case FieldTrainingPlan:
		return d.TrainingPlanID != nil && *d.TrainingPlanID > 0
	case FieldTitle:
		return strings.TrimSpace(d.Title) != ""
	case FieldCategories:
		return d.Categories.Len() > 0
	case FieldLevel:
		return d.Level.Valid()
	case FieldDescription:
		return strings.TrimSpace(d.Description) != ""
	case FieldTags:
		return d.Tags.Len() > 0
	case FieldEquipment:
		return len(cleanList(d.Equipment)) > 0
	case FieldVideo:
		return d.Video != nil
	case FieldVideoDuration:
		return strings.TrimSpace(d.VideoDuration) != ""
	case FieldType:
		return d.Type != domain.ExerciseTypeUnset
	default:
		return false
	}
}

// Reset clears the draft after a successful submission.
func (d *ExerciseDraft) Reset() {
	*d = *NewExerciseDraft()
}

// PlanDraft is a training plan being authored or edited.
type PlanDraft struct {
	Title       string
	Description string
	Categories  *domain.Selection
	Level       domain.Level
	CoverImage  *Upload
}

func NewPlanDraft() *PlanDraft {
	return &PlanDraft{Categories: domain.NewCategorySelection()}
}

// EditPlanDraft pre-populates a draft from a stored plan. The cover image is
// left empty: the server keeps the current one unless a new file is sent.
func EditPlanDraft(p *domain.TrainingPlan) *PlanDraft {
	d := NewPlanDraft()
	d.Title = p.Title
	d.Description = p.Description
	d.Categories.Replace(p.Categories)
	d.Level = p.Level
	return d
}

func (d *PlanDraft) Has(f Field) bool {
	switch f {
	case FieldTitle:
		return strings.TrimSpace(d.Title) != ""
	case FieldDescription:
		return strings.TrimSpace(d.Description) != ""
	case FieldCategories:
		return d.Categories.Len() > 0
	case FieldLevel:
		return d.Level.Valid()
	case FieldCoverImage:
		return d.CoverImage != nil
	default:
		return false
	}
}

func (d *PlanDraft) Reset() {
	*d = *NewPlanDraft()
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
