package view

import (
	"context"
	"fmt"
	"io"

	"gympoint/internal/client"
	"gympoint/internal/store"
)

const EmptyPlansText = "No plans registered"

type PlanIntents interface {
	LoadPlans(ctx context.Context) error
	SavePlan(ctx context.Context, id uint, in client.PlanInput) error
	DeletePlan(ctx context.Context, id uint) error
}

type Plans struct {
	intents PlanIntents
}

func NewPlans(intents PlanIntents) *Plans {
	return &Plans{intents: intents}
}

func (v *Plans) Mode(s store.State) Mode {
	return modeOf(s, store.ScopePlans, s.Plans.Loaded, len(s.Plans.Items))
}

func (v *Plans) Load(ctx context.Context) error {
	return v.intents.LoadPlans(ctx)
}

func (v *Plans) Save(ctx context.Context, id uint, in client.PlanInput) error {
	return v.intents.SavePlan(ctx, id, in)
}

func (v *Plans) Delete(ctx context.Context, id uint) error {
	return v.intents.DeletePlan(ctx, id)
}

func (v *Plans) Render(w io.Writer, s store.State) error {
	switch v.Mode(s) {
	case ModeLoading:
		_, err := fmt.Fprintln(w, loadingText)
		return err
	case ModeEmpty:
		_, err := fmt.Fprintln(w, EmptyPlansText)
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tTITLE\tDURATION\tMONTHLY\tTOTAL")
	for _, p := range s.Plans.Items {
		unit := "months"
		if p.Duration == 1 {
			unit = "month"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d %s\t%.2f\t%.2f\n", p.ID, p.Title, p.Duration, unit, p.Price, p.TotalPrice())
	}
	return tw.Flush()
}
