package view

import (
	"context"
	"fmt"
	"io"

	"gympoint/internal/client"
	"gympoint/internal/repository"
	"gympoint/internal/store"
)

const EmptyStudentsText = "No students found"

type StudentIntents interface {
	LoadStudents(ctx context.Context, filter string, page int) error
	SaveStudent(ctx context.Context, id uint, in client.StudentInput) error
	DeleteStudent(ctx context.Context, id uint) error
}

type Students struct {
	intents StudentIntents
}

func NewStudents(intents StudentIntents) *Students {
	return &Students{intents: intents}
}

func (v *Students) Mode(s store.State) Mode {
	return modeOf(s, store.ScopeStudents, s.Students.Loaded, len(s.Students.Items))
}

func (v *Students) Load(ctx context.Context, filter string, page int) error {
	return v.intents.LoadStudents(ctx, filter, page)
}

// Save submits the form: id 0 creates, anything else edits that record.
func (v *Students) Save(ctx context.Context, id uint, in client.StudentInput) error {
	return v.intents.SaveStudent(ctx, id, in)
}

func (v *Students) Delete(ctx context.Context, id uint) error {
	return v.intents.DeleteStudent(ctx, id)
}

func (v *Students) Render(w io.Writer, s store.State) error {
	switch v.Mode(s) {
	case ModeLoading:
		_, err := fmt.Fprintln(w, loadingText)
		return err
	case ModeEmpty:
		_, err := fmt.Fprintln(w, EmptyStudentsText)
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tAGE")
	for _, st := range s.Students.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", st.ID, st.Name, st.Email, st.Age)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "page %d of %d (%d students)\n", s.Students.Page, pages(s.Students.Count), s.Students.Count)
	return err
}

func pages(count int64) int64 {
	if count == 0 {
		return 1
	}
	return (count + repository.PageSize - 1) / repository.PageSize
}
