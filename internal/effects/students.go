package effects

import (
	"context"

	"gympoint/internal/client"
	"gympoint/internal/store"
)

func (c *Coordinator) LoadStudents(ctx context.Context, filter string, page int) error {
	return c.run(store.ScopeStudents, store.StudentsLoadFailure, func() error {
		result, err := c.api.StudentsPage(ctx, filter, page)
		if err != nil {
			return err
		}
		if page < 1 {
			page = 1
		}
		c.store.Dispatch(store.Action{Type: store.StudentsLoadSuccess, Payload: store.StudentsLoaded{
			Items:  result.Students,
			Count:  result.Count,
			Filter: filter,
			Page:   page,
		}})
		return nil
	})
}

// SaveStudent creates the student when id is 0 and updates it otherwise,
// then reloads the current page.
func (c *Coordinator) SaveStudent(ctx context.Context, id uint, in client.StudentInput) error {
	err := c.run(store.ScopeStudents, store.StudentSaveFailure, func() error {
		if id == 0 {
			if _, err := c.api.CreateStudent(ctx, in); err != nil {
				return err
			}
		} else {
			student, err := c.api.UpdateStudent(ctx, id, in)
			if err != nil {
				return err
			}
			c.store.Dispatch(store.Action{Type: store.StudentSaveSuccess, Payload: *student})
		}
		c.notify.Success("Student saved")
		return nil
	})
	if err != nil {
		return err
	}

	current := c.store.State().Students
	return c.LoadStudents(ctx, current.Filter, current.Page)
}

func (c *Coordinator) DeleteStudent(ctx context.Context, id uint) error {
	return c.run(store.ScopeStudents, store.StudentDeleteFailure, func() error {
		if err := c.api.DeleteStudent(ctx, id); err != nil {
			return err
		}
		c.store.Dispatch(store.Action{Type: store.StudentDeleteSuccess, Payload: id})
		c.notify.Success("Student deleted")
		return nil
	})
}
