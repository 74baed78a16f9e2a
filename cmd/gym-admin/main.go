// Command gym-admin drives the gym API from a terminal: it signs in with
// the configured administrator and renders one screen per subcommand.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"gympoint/internal/client"
	"gympoint/internal/config"
	"gympoint/internal/effects"
	"gympoint/internal/logger"
	"gympoint/internal/store"
	"gympoint/internal/view"

	"github.com/sirupsen/logrus"
)

const usage = `usage: gym-admin <command> [flags]

commands:
  help-orders                 list unanswered help orders
  answer -id N -text "..."    answer help order N
  students [-q name] [-page]  list students
  student-save [-id N] -name -email -age -weight -height
                              create a student, or edit student N
  student-delete -id N        delete student N
  plans                       list plans
  plan-save [-id N] -title -duration -price
                              create a plan, or edit plan N
  enrollments [-q] [-page]    list enrollments
  enrollment-save [-id N] -student -plan -start YYYY-MM-DD
                              create an enrollment, or edit enrollment N
`

// app bundles the admin wiring: client, store, coordinator and views.
type app struct {
	st      *store.Store
	effects *effects.Coordinator
	out     io.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.MustLoad()
	log := logger.NewWithOutput(cfg.Env, cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(cfg, log)
	defer a.st.Close()

	if err := a.effects.SignIn(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		os.Exit(1)
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		// Intent failures were already shown by the toaster.
		log.WithError(err).Debug("command failed")
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, log logrus.FieldLogger) *app {
	clientCfg := client.DefaultConfig(cfg.Admin.APIURL)
	clientCfg.Logger = log
	api := client.New(clientCfg)

	st := store.New(store.Reduce, store.State{})
	return &app{
		st:      st,
		effects: effects.New(api, st, view.NewToaster(os.Stderr), log),
		out:     os.Stdout,
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	filter := fs.String("q", "", "name filter")
	page := fs.Int("page", 1, "page number")
	id := fs.Uint("id", 0, "record id")
	text := fs.String("text", "", "answer text")

	var student client.StudentInput
	fs.StringVar(&student.Name, "name", "", "student name")
	fs.StringVar(&student.Email, "email", "", "student email")
	fs.IntVar(&student.Age, "age", 0, "student age")
	fs.Float64Var(&student.Weight, "weight", 0, "student weight in kg")
	fs.Float64Var(&student.Height, "height", 0, "student height in m")

	var plan client.PlanInput
	fs.StringVar(&plan.Title, "title", "", "plan title")
	fs.IntVar(&plan.Duration, "duration", 0, "plan duration in months")
	fs.Float64Var(&plan.Price, "price", 0, "monthly price")

	var enrollment client.EnrollmentInput
	fs.UintVar(&enrollment.StudentID, "student", 0, "student id")
	fs.UintVar(&enrollment.PlanID, "plan", 0, "plan id")
	fs.StringVar(&enrollment.StartDate, "start", "", "start date, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd {
	case "help-orders":
		screen := view.NewHelpOrders(a.effects, a.st)
		if err := screen.Load(ctx); err != nil {
			return err
		}
		return screen.Render(a.out, a.st.State())

	case "answer":
		if *id == 0 {
			return fmt.Errorf("answer: -id is required")
		}
		screen := view.NewHelpOrders(a.effects, a.st)
		if err := screen.Load(ctx); err != nil {
			return err
		}
		if err := screen.Open(uint(*id)); err != nil {
			return err
		}
		if err := screen.Submit(ctx, *text); err != nil {
			return err
		}
		return screen.Render(a.out, a.st.State())

	case "students":
		screen := view.NewStudents(a.effects)
		if err := screen.Load(ctx, *filter, *page); err != nil {
			return err
		}
		return screen.Render(a.out, a.st.State())

	case "student-save":
		screen := view.NewStudents(a.effects)
		if err := screen.Save(ctx, uint(*id), student); err != nil {
			return err
		}
		return screen.Render(a.out, a.st.State())

	case "student-delete":
		if *id == 0 {
			return fmt.Errorf("student-delete: -id is required")
		}
		screen := view.NewStudents(a.effects)
		if err := screen.Delete(ctx, uint(*id)); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "deleted student "+strconv.FormatUint(uint64(*id), 10))
		return nil

	case "plans":
		screen := view.NewPlans(a.effects)
		if err := screen.Load(ctx); err != nil {
			return err
		}
		return screen.Render(a.out, a.st.State())

	case "plan-save":
		screen := view.NewPlans(a.effects)
		if err := screen.Save(ctx, uint(*id), plan); err != nil {
			return err
		}
		return screen.Render(a.out, a.st.State())

	case "enrollments":
		screen := view.NewEnrollments(a.effects)
		if err := screen.Load(ctx, *filter, *page); err != nil {
			return err
		}
		return screen.Render(a.out, a.st.State())

	case "enrollment-save":
		screen := view.NewEnrollments(a.effects)
		if err := screen.Save(ctx, uint(*id), enrollment); err != nil {
			return err
		}
		return screen.Render(a.out, a.st.State())
	}

	fmt.Fprint(os.Stderr, usage)
	return flag.ErrHelp
}
