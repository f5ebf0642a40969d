package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/logger"
	"dancerfit/admin-dashboard/internal/media"
	"dancerfit/admin-dashboard/internal/service"
	"dancerfit/admin-dashboard/internal/storage"
	"dancerfit/admin-dashboard/internal/submission"
)

// PlanHandler serves the training plans tab.
type PlanHandler struct {
	workspaces *service.Workspaces
	media      storage.MediaURLResolver
	prober     media.Prober
	log        *logger.Logger
}

func NewPlanHandler(workspaces *service.Workspaces, mediaURLs storage.MediaURLResolver, prober media.Prober, log *logger.Logger) *PlanHandler {
	return &PlanHandler{workspaces: workspaces, media: mediaURLs, prober: prober, log: log}
}

// ListPlans godoc
// @Summary List training plans with their exercises
// @Tags TrainingPlans
// @Produce json
// @Security BearerAuth
// @Param page query int false "page number, defaults to the last viewed page"
// @Success 200 {object} PageResponse[TrainingPlanResponse]
// @Router /training-plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	catalog, ok := catalogFor(c, h.workspaces)
	if !ok {
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
	var (
		env domain.Envelope[domain.TrainingPlan]
		err error
	)
	if nav == navNone {
		env, err = catalog.Plans(c.Request.Context(), page)
	} else {
		env, err = catalog.StepPlans(c.Request.Context(), nav == navNext)
	}
	if err != nil {
		respondError(c, h.log, err, "Failed to load training plans")
		return
	}
	c.JSON(http.StatusOK, mapPage(env, newMediaMapper(c.Request.Context(), h.media).plan))
}

// CreatePlan godoc
// @Summary Create a training plan
// @Tags TrainingPlans
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Success 201 {object} gin.H "Training plan created"
// @Failure 422 {object} gin.H "Missing required fields"
// @Router /training-plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	catalog, ok := catalogFor(c, h.workspaces)
	if !ok {
		return
	}
	d := submission.NewPlanDraft()
	if err := fillPlanDraft(c, d); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, err := catalog.CreatePlan(c.Request.Context(), d)
	if err != nil {
		respondError(c, h.log, err, "Failed to create training plan")
		return
	}
	resp := gin.H{"message": "Training plan created successfully!"}
	if created != nil {
		resp["training_plan"] = newMediaMapper(c.Request.Context(), h.media).plan(created)
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdatePlan godoc
// @Summary Edit a training plan
// @Description Without a new cover image the current one stays.
// @Tags TrainingPlans
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Training plan ID"
// @Success 200 {object} gin.H "Training plan updated"
// @Failure 422 {object} gin.H "Missing required fields"
// @Failure 502 {object} gin.H "Remote API rejected the edit"
// @Router /training-plans/{id} [put]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	catalog, ok := catalogFor(c, h.workspaces)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	d := submission.NewPlanDraft()
	if prior, found := catalog.FindPlan(id); found {
		d = submission.EditPlanDraft(prior)
	}
	if err := fillPlanDraft(c, d); err != nil {
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	updated, err := catalog.UpdatePlan(c.Request.Context(), id, d)
	if err != nil {
		respondError(c, h.log, err, "Failed to update training plan")
		return
	}
	resp := gin.H{"message": "Training plan updated successfully!"}
	if updated != nil {
		resp["training_plan"] = newMediaMapper(c.Request.Context(), h.media).plan(updated)
	}
	c.JSON(http.StatusOK, resp)
}

// DeletePlan godoc
// @Summary Delete a training plan
// @Tags TrainingPlans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Training plan ID"
// @Success 200 {object} gin.H "Training plan deleted"
// @Failure 502 {object} gin.H "Remote API refused the delete"
// @Router /training-plans/{id} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	catalog, ok := catalogFor(c, h.workspaces)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := catalog.DeletePlan(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err, "Delete failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Training plan deleted"})
}

// AddExercise godoc
// @Summary Create an exercise inside a training plan
// @Tags TrainingPlans
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Training plan ID"
// @Success 201 {object} gin.H "Exercise created"
// @Failure 422 {object} gin.H "Missing required fields"
// @Failure 502 {object} gin.H "Remote API rejected the exercise"
// @Router /training-plans/{id}/exercises [post]
func (h *PlanHandler) AddExercise(c *gin.Context) {
	catalog, ok := catalogFor(c, h.workspaces)
	if !ok {
		return
	}
	id, ok := idParam(c, "id")
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

	created, err := catalog.AddExerciseToPlan(ctx, id, d)
	if err != nil {
		respondError(c, h.log, err, "Failed to add exercise to plan")
		return
	}
	resp := gin.H{"message": "Exercise added to training plan!"}
	if created != nil {
		resp["exercise"] = newMediaMapper(ctx, h.media).exercise(created)
	}
	c.JSON(http.StatusCreated, resp)
}
