package effects

import (
	"context"

	"gympoint/internal/client"
	"gympoint/internal/store"
)

func (c *Coordinator) LoadEnrollments(ctx context.Context, filter string, page int) error {
	return c.run(store.ScopeEnrollments, store.EnrollmentsLoadFailure, func() error {
		result, err := c.api.EnrollmentsPage(ctx, filter, page)
		if err != nil {
			return err
		}
		if page < 1 {
			page = 1
		}
		c.store.Dispatch(store.Action{Type: store.EnrollmentsLoadSuccess, Payload: store.EnrollmentsLoaded{
			Items:  result.Enrollments,
			Count:  result.Count,
			Filter: filter,
			Page:   page,
		}})
		return nil
	})
}

// SaveEnrollment creates the enrollment when id is 0 and updates it
// otherwise, then reloads the current page.
func (c *Coordinator) SaveEnrollment(ctx context.Context, id uint, in client.EnrollmentInput) error {
	err := c.run(store.ScopeEnrollments, store.EnrollmentSaveFailure, func() error {
		if id == 0 {
			if _, err := c.api.CreateEnrollment(ctx, in); err != nil {
				return err
			}
		} else {
			enrollment, err := c.api.UpdateEnrollment(ctx, id, in)
			if err != nil {
				return err
			}
			c.store.Dispatch(store.Action{Type: store.EnrollmentSaveSuccess, Payload: *enrollment})
		}
		c.notify.Success("Enrollment saved")
		return nil
	})
	if err != nil {
		return err
	}

	current := c.store.State().Enrollments
	return c.LoadEnrollments(ctx, current.Filter, current.Page)
}

func (c *Coordinator) DeleteEnrollment(ctx context.Context, id uint) error {
	return c.run(store.ScopeEnrollments, store.EnrollmentDeleteFailure, func() error {
		if err := c.api.DeleteEnrollment(ctx, id); err != nil {
			return err
		}
		c.store.Dispatch(store.Action{Type: store.EnrollmentDeleteSuccess, Payload: id})
		c.notify.Success("Enrollment deleted")
		return nil
	})
}
