package effects

import (
	"context"

	"gympoint/internal/model"
	"gympoint/internal/store"
)

func (c *Coordinator) LoadHelpOrders(ctx context.Context) error {
	return c.run(store.ScopeHelpOrders, store.HelpOrdersLoadFailure, func() error {
		orders, err := c.api.ListHelpOrders(ctx)
		if err != nil {
			return err
		}
		c.store.Dispatch(store.Action{Type: store.HelpOrdersLoadSuccess, Payload: orders})
		return nil
	})
}

// OpenHelpOrder selects order and opens the answer modal.
func (c *Coordinator) OpenHelpOrder(order model.HelpOrder) {
	c.store.Dispatch(store.Action{Type: store.HelpOrderOpen, Payload: order})
}

func (c *Coordinator) CloseHelpOrder() {
	c.store.Dispatch(store.Action{Type: store.HelpOrderClose})
}

// AnswerHelpOrder answers the open order and re-fetches the list. It returns
// ErrNoSelection, without calling the API, when no order is open.
func (c *Coordinator) AnswerHelpOrder(ctx context.Context, answer string) error {
	selected := c.store.State().HelpOrders.Selected
	if selected == nil {
		return ErrNoSelection
	}

	err := c.run(store.ScopeHelpOrders, store.HelpOrderAnswerFailure, func() error {
		order, err := c.api.AnswerHelpOrder(ctx, selected.ID, answer)
		if err != nil {
			return err
		}
		c.store.Dispatch(store.Action{Type: store.HelpOrderAnswerSuccess, Payload: *order})
		c.notify.Success("Answer sent")
		return nil
	})
	if err != nil {
		return err
	}
	return c.LoadHelpOrders(ctx)
}
