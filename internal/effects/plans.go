package effects

import (
	"context"

	"gympoint/internal/client"
	"gympoint/internal/store"
)

func (c *Coordinator) LoadPlans(ctx context.Context) error {
	return c.run(store.ScopePlans, store.PlansLoadFailure, func() error {
		plans, err := c.api.ListPlans(ctx)
		if err != nil {
			return err
		}
		c.store.Dispatch(store.Action{Type: store.PlansLoadSuccess, Payload: plans})
		return nil
	})
}

// SavePlan creates the plan when id is 0 and updates it otherwise.
func (c *Coordinator) SavePlan(ctx context.Context, id uint, in client.PlanInput) error {
	err := c.run(store.ScopePlans, store.PlanSaveFailure, func() error {
		if id == 0 {
			if _, err := c.api.CreatePlan(ctx, in); err != nil {
				return err
			}
		} else {
			plan, err := c.api.UpdatePlan(ctx, id, in)
			if err != nil {
				return err
			}
			c.store.Dispatch(store.Action{Type: store.PlanSaveSuccess, Payload: *plan})
		}
		c.notify.Success("Plan saved")
		return nil
	})
	if err != nil {
		return err
	}
	return c.LoadPlans(ctx)
}

func (c *Coordinator) DeletePlan(ctx context.Context, id uint) error {
	return c.run(store.ScopePlans, store.PlanDeleteFailure, func() error {
		if err := c.api.DeletePlan(ctx, id); err != nil {
			return err
		}
		c.store.Dispatch(store.Action{Type: store.PlanDeleteSuccess, Payload: id})
		c.notify.Success("Plan deleted")
		return nil
	})
}
