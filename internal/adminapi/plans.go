package adminapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"dancerfit/admin-dashboard/internal/domain"
	"dancerfit/admin-dashboard/internal/submission"
)

func (c *Client) ListPlans(ctx context.Context, page int) (domain.Envelope[domain.TrainingPlan], error) {
	var w wireEnvelope[wirePlan]
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/admin/training-plans",
		query:  pageQuery(page),
		auth:   true,
	}, &w)
	if err != nil {
		return domain.Envelope[domain.TrainingPlan]{}, err
	}
	return toEnvelope(w, wirePlan.toDomain), nil
}

func (c *Client) CreatePlan(ctx context.Context, req *submission.Request) (*domain.TrainingPlan, error) {
	if req.Op != submission.OpPlanCreate {
		return nil, fmt.Errorf("create plan: unexpected operation %s", req.Op)
	}
	return c.sendPlan(ctx, "/admin/training-plans/create", req)
}

// UpdatePlan posts an edit; the plan id travels as training_plan_id.
func (c *Client) UpdatePlan(ctx context.Context, req *submission.Request) (*domain.TrainingPlan, error) {
	if req.Op != submission.OpPlanEdit {
		return nil, fmt.Errorf("update plan: unexpected operation %s", req.Op)
	}
	return c.sendPlan(ctx, "/admin/training-plans/edit", req)
}

func (c *Client) DeletePlan(ctx context.Context, id int64) error {
	return c.do(ctx, call{
		method: http.MethodDelete,
		path:   "/admin/training-plans/" + strconv.FormatInt(id, 10),
		auth:   true,
	}, nil)
}

func (c *Client) sendPlan(ctx context.Context, path string, req *submission.Request) (*domain.TrainingPlan, error) {
	var raw json.RawMessage
	if err := c.do(ctx, c.multipartCall(http.MethodPost, path, req), &raw); err != nil {
		return nil, err
	}
	return decodeRecord(raw, wirePlan.toDomain, func(w wirePlan) bool { return w.ID != 0 }), nil
}
