package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/media"
	"dancerfit/admin-dashboard/internal/service"
	"dancerfit/admin-dashboard/internal/storage"
	"dancerfit/admin-dashboard/internal/submission"
)

// ExerciseHandler serves the exercise tabs of the dashboard.
type ExerciseHandler struct {
	workspaces *service.Workspaces
	media      storage.MediaURLResolver
	prober     media.Prober
	log        *logger.Logger
}

func NewExerciseHandler(workspaces *service.Workspaces, mediaURLs storage.MediaURLResolver, prober media.Prober, log *logger.Logger) *ExerciseHandler {
	return &ExerciseHandler{workspaces: workspaces, media: mediaURLs, prober: prober, log: log}
}

// catalogFor returns the catalog of the signed-in session.
func catalogFor(c *gin.Context, workspaces *service.Workspaces) (*service.Catalog, bool) {
	session, err := getSessionFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify session from token.")
		return nil, false
	}
	return workspaces.Get(session.ID), true
}

func pageParam(c *gin.Context) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 0, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		abortWithError(c, http.StatusBadRequest, "page must be a positive integer")
		return 0, false
	}
	return page, true
}

type navigation int

const (
	navNone navigation = iota
	navNext
	navPrevious
)

// navParam reads ?nav=next|previous, which pages relative to the last view.
func navParam(c *gin.Context) (navigation, bool) {
	switch strings.ToLower(c.Query("nav")) {
	case "":
		return navNone, true
	case "next":
		return navNext, true
	case "previous", "prev":
		return navPrevious, true
	default:
		abortWithError(c, http.StatusBadRequest, "nav must be next or previous")
		return navNone, false
	}
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		abortWithError(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// ListExercises godoc
// @Summary List one exercise collection
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param tab query string false "regular or ondemand"
// @Param page query int false "page number, defaults to the last viewed page"
// @Param nav query string false "next or previous, relative to the last viewed page"
// @Success 200 {object} PageResponse[ExerciseResponse]
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	catalog, ok := catalogFor(c, h.workspaces)
	if !ok {
		return
	}
	kind, err := service.ParseKind(c.Query("tab"))
	if err != nil {
		respondError(c, h.log, err, "")
		return
	}
	nav, ok := navParam(c)
	if !ok {
		return
	}
	page, ok := pageParam(c)
	if !ok {
		return
	}
	var env domain.Envelope[domain.Exercise]
	if nav == navNone {
		env, err = catalog.Exercises(c.Request.Context(), kind, page)
	} else {
		env, err = catalog.StepExercises(c.Request.Context(), kind, nav == navNext)
	}
	if err != nil {
		respondError(c, h.log, err, "Failed to load exercises")
		return
	}
	c.JSON(http.StatusOK, mapPage(env, newMediaMapper(c.Request.Context(), h.media).exercise))
}

// CreateExercise godoc
// @Summary Upload a new exercise
// @Tags Exercises
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} gin.H "Exercise created"
// @Failure 422 {object} gin.H "Missing required fields"
// @Failure 502 {object} gin.H "Remote API rejected the exercise"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	catalog, ok := catalogFor(c, h.workspaces)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	d := submission.NewExerciseDraft()
	if err := fillExerciseDraft(c, d); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	attachVideo(ctx, c, d, h.prober, h.log)

	created, err := catalog.CreateExercise(ctx, d)
	if err != nil {
		respondError(c, h.log, err, "Failed to add exercise")
		return
	}
	h.respondCreated(c, created, "Exercise added successfully!")
}

// UpdateExercise godoc
// @Summary Edit an exercise
// @Description Fields left out keep their stored values. Uploaded videos are ignored.
// @Tags Exercises
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise ID"
// @Success 200 {object} gin.H "Exercise updated"
// @Failure 422 {object} gin.H "Missing required fields or unknown value"
// @Failure 502 {object} gin.H "Remote API rejected the edit"
// @Router /exercises/{id} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	catalog, ok := catalogFor(c, h.workspaces)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	d := submission.NewExerciseDraft()
	if prior, found := catalog.FindExercise(id); found {
		d = submission.EditDraft(prior)
	}
	if err := fillExerciseDraft(c, d); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	updated, err := catalog.UpdateExercise(c.Request.Context(), id, d)
	if err != nil {
		respondError(c, h.log, err, "Failed to update exercise")
		return
	}
	resp := gin.H{"message": "Exercise updated successfully!"}
	if updated != nil {
		resp["exercise"] = newMediaMapper(c.Request.Context(), h.media).exercise(updated)
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Description Also removes it from every loaded training plan.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path int true "Exercise ID"
// @Success 200 {object} gin.H "Exercise deleted"
// @Failure 502 {object} gin.H "Remote API refused the delete"
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	catalog, ok := catalogFor(c, h.workspaces)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := catalog.DeleteExercise(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted"})
}

func (h *ExerciseHandler) respondCreated(c *gin.Context, created *domain.Exercise, message string) {
	resp := gin.H{"message": message}
	if created != nil {
		resp["exercise"] = newMediaMapper(c.Request.Context(), h.media).exercise(created)
	}
	c.JSON(http.StatusCreated, resp)
}
