package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/media"
	"dancerfit/admin-dashboard/internal/service"
	"dancerfit/admin-dashboard/internal/submission"
)

// formValues reads a multi-valued field sent either as "name[]" or "name".
func formValues(c *gin.Context, name string) []string {
	if vs := c.PostFormArray(name + "[]"); len(vs) > 0 {
		return vs
	}
	return c.PostFormArray(name)
}

// fillSelection replaces s with the submitted values, ignoring repeats. A
// value outside the vocabulary is accepted only when s already held it.
func fillSelection(s *domain.Selection, values []string, what string) error {
	prior := make(map[string]bool, s.Len())
	for _, v := range s.Values() {
		prior[v] = true
	}
	s.Reset()
	var accepted []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || s.Contains(v) {
			continue
		}
		if err := s.Toggle(v); err != nil && !prior[v] {
			return fmt.Errorf("unknown %s %q", what, v)
		}
		accepted = append(accepted, v)
	}
	s.Replace(accepted)
	return nil
}

// exerciseTypeFromForm accepts the dashboard tab names. Anything else is unset.
func exerciseTypeFromForm(s string) domain.ExerciseType {
	if strings.TrimSpace(s) == "" {
		return domain.ExerciseTypeUnset
	}
	kind, err := service.ParseKind(s)
	if err != nil {
		return domain.ExerciseTypeUnset
	}
	if kind == service.KindOnDemand {
		return domain.ExerciseTypeOnDemand
	}
	return domain.ExerciseTypeStandalone
}

// fillExerciseDraft copies the text fields of an exercise form into d.
func fillExerciseDraft(c *gin.Context, d *submission.ExerciseDraft) error {
	if v, ok := c.GetPostForm("title"); ok {
		d.Title = strings.TrimSpace(v)
	}
	if vs := formValues(c, "categories"); len(vs) > 0 {
		if err := fillSelection(d.Categories, vs, "category"); err != nil {
			return err
		}
	}
	if v, ok := c.GetPostForm("level"); ok {
		level, err := domain.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("unknown level %q", v)
		}
		d.Level = level
	}
	if v, ok := c.GetPostForm("description"); ok {
		d.Description = strings.TrimSpace(v)
	}
	if vs := formValues(c, "tags"); len(vs) > 0 {
		if err := fillSelection(d.Tags, vs, "tag"); err != nil {
			return err
		}
	}
	if vs := formValues(c, "equipment"); len(vs) > 0 {
		var equipment []string
		for _, v := range vs {
			equipment = append(equipment, submission.ParseEquipment(v)...)
		}
		d.Equipment = equipment
	}
	if v, ok := c.GetPostForm("type"); ok {
		d.Type = exerciseTypeFromForm(v)
	}
	return nil
}

// attachVideo sets the uploaded video and its duration. A posted duration is
// used when it parses; otherwise the file is probed. A probe failure leaves
// the duration empty so validation reports it.
func attachVideo(ctx context.Context, c *gin.Context, d *submission.ExerciseDraft, prober media.Prober, log *logger.Logger) {
	fh, err := c.FormFile("video")
	if err != nil {
		return
	}
	d.Video = submission.FromFileHeader(fh)

	if posted := strings.TrimSpace(c.PostForm("video_duration")); posted != "" {
		if normalized, err := media.NormalizeDuration(posted); err == nil {
			d.VideoDuration = normalized
			return
		}
		log.Debug("ignoring unparsable video_duration", "value", posted)
	}
	duration, err := media.ProbeUpload(ctx, prober, d.Video, log)
	if err != nil {
		return
	}
	d.VideoDuration = duration
}

func fillPlanDraft(c *gin.Context, d *submission.PlanDraft) error {
	if v, ok := c.GetPostForm("title"); ok {
		d.Title = strings.TrimSpace(v)
	}
	if v, ok := c.GetPostForm("description"); ok {
		d.Description = strings.TrimSpace(v)
	}
	if vs := formValues(c, "categories"); len(vs) > 0 {
		if err := fillSelection(d.Categories, vs, "category"); err != nil {
			return err
		}
	}
	if v, ok := c.GetPostForm("level"); ok {
		level, err := domain.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("unknown level %q", v)
		}
		d.Level = level
	}
	if fh, err := c.FormFile("cover_image"); err == nil {
		d.CoverImage = submission.FromFileHeader(fh)
	}
	return nil
}
