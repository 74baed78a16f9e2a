package view

import (
	"context"
	"fmt"
	"io"

	"gympoint/internal/client"
	"gympoint/internal/store"
)

const EmptyEnrollmentsText = "No enrollments found"

type EnrollmentIntents interface {
	LoadEnrollments(ctx context.Context, filter string, page int) error
	SaveEnrollment(ctx context.Context, id uint, in client.EnrollmentInput) error
	DeleteEnrollment(ctx context.Context, id uint) error
}

type Enrollments struct {
	intents EnrollmentIntents
}

func NewEnrollments(intents EnrollmentIntents) *Enrollments {
	return &Enrollments{intents: intents}
}

func (v *Enrollments) Mode(s store.State) Mode {
	return modeOf(s, store.ScopeEnrollments, s.Enrollments.Loaded, len(s.Enrollments.Items))
}

func (v *Enrollments) Load(ctx context.Context, filter string, page int) error {
	return v.intents.LoadEnrollments(ctx, filter, page)
}

func (v *Enrollments) Save(ctx context.Context, id uint, in client.EnrollmentInput) error {
	return v.intents.SaveEnrollment(ctx, id, in)
}

func (v *Enrollments) Delete(ctx context.Context, id uint) error {
	return v.intents.DeleteEnrollment(ctx, id)
}

func (v *Enrollments) Render(w io.Writer, s store.State) error {
	switch v.Mode(s) {
	case ModeLoading:
		_, err := fmt.Fprintln(w, loadingText)
		return err
	case ModeEmpty:
		_, err := fmt.Fprintln(w, EmptyEnrollmentsText)
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTUDENT\tPLAN\tSTART\tEND\tPRICE")
	for _, e := range s.Enrollments.Items {
		student, plan := "", ""
		if e.Student != nil {
			student = e.Student.Name
		}
		if e.Plan != nil {
			plan = e.Plan.Title
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%.2f\n", e.ID, student, plan,
			e.StartDate.Format("02/01/2006"), e.EndDate.Format("02/01/2006"), e.Price)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d of %d (%d enrollments)\n", s.Enrollments.Page, pages(s.Enrollments.Count), s.Enrollments.Count)
	return err
}
