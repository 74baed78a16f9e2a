package view

import (
	"context"
	"fmt"
	"io"

	"gympoint/internal/model"
	"gympoint/internal/store"
)

const EmptyHelpOrdersText = "All help orders have been answered"

type HelpOrderIntents interface {
	LoadHelpOrders(ctx context.Context) error
	OpenHelpOrder(order model.HelpOrder)
	CloseHelpOrder()
	AnswerHelpOrder(ctx context.Context, answer string) error
}

// HelpOrders is the screen listing unanswered questions with an answer
// modal for the selected one.
type HelpOrders struct {
	intents HelpOrderIntents
	state   StateSource
}

func NewHelpOrders(intents HelpOrderIntents, state StateSource) *HelpOrders {
	return &HelpOrders{intents: intents, state: state}
}

func (v *HelpOrders) Mode(s store.State) Mode {
	return modeOf(s, store.ScopeHelpOrders, s.HelpOrders.Loaded, len(s.HelpOrders.Items))
}

func (v *HelpOrders) Load(ctx context.Context) error {
	return v.intents.LoadHelpOrders(ctx)
}

// Open selects the listed order with that id.
func (v *HelpOrders) Open(id uint) error {
	for _, order := range v.state.State().HelpOrders.Items {
		if order.ID == id {
			v.intents.OpenHelpOrder(order)
			return nil
		}
	}
	return fmt.Errorf("help order %d is not listed", id)
}

func (v *HelpOrders) Close() {
	v.intents.CloseHelpOrder()
}

// Submit sends the answer of the open order. The coordinator re-fetches the
// list on success, so nothing is removed locally.
func (v *HelpOrders) Submit(ctx context.Context, answer string) error {
	return v.intents.AnswerHelpOrder(ctx, answer)
}

func (v *HelpOrders) Render(w io.Writer, s store.State) error {
	switch v.Mode(s) {
	case ModeLoading:
		_, err := fmt.Fprintln(w, loadingText)
		return err
	case ModeEmpty:
		_, err := fmt.Fprintln(w, EmptyHelpOrdersText)
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTUDENT\tQUESTION")
	for _, order := range s.HelpOrders.Items {
		name := ""
		if order.Student != nil {
			name = order.Student.Name
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", order.ID, name, order.Question)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if s.HelpOrders.ModalOpen && s.HelpOrders.Selected != nil {
		_, err := fmt.Fprintf(w, "\nQUESTION FROM STUDENT\n%s\n", s.HelpOrders.Selected.Question)
		return err
	}
	return nil
}
