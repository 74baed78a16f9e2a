// Package effects runs the admin intents: each one marks its scope busy,
// calls the API, dispatches the outcome and notifies the user.
package effects

import (
	"context"
	"errors"
	"fmt"

	"gympoint/internal/client"
	"gympoint/internal/model"
	"gympoint/internal/store"

	"github.com/sirupsen/logrus"
)

// FallbackMessage is shown when a failure carries no server text.
const FallbackMessage = "Could not communicate with the server"

var (
	// ErrNoSelection is returned by AnswerHelpOrder when no order is open.
	ErrNoSelection = errors.New("no help order selected")

	errPanic = errors.New("intent panicked")
)

type API interface {
	SignIn(ctx context.Context, email, password string) (*client.Session, error)
	SetToken(token string)

	StudentsPage(ctx context.Context, filter string, page int) (*client.StudentPage, error)
	CreateStudent(ctx context.Context, in client.StudentInput) (uint, error)
	UpdateStudent(ctx context.Context, id uint, in client.StudentInput) (*model.Student, error)
	DeleteStudent(ctx context.Context, id uint) error

	ListPlans(ctx context.Context) ([]model.Plan, error)
	CreatePlan(ctx context.Context, in client.PlanInput) (uint, error)
	UpdatePlan(ctx context.Context, id uint, in client.PlanInput) (*model.Plan, error)
	DeletePlan(ctx context.Context, id uint) error

	EnrollmentsPage(ctx context.Context, filter string, page int) (*client.EnrollmentPage, error)
	CreateEnrollment(ctx context.Context, in client.EnrollmentInput) (uint, error)
	UpdateEnrollment(ctx context.Context, id uint, in client.EnrollmentInput) (*model.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id uint) error

	ListHelpOrders(ctx context.Context) ([]model.HelpOrder, error)
	AnswerHelpOrder(ctx context.Context, id uint, answer string) (*model.HelpOrder, error)
}

type Dispatcher interface {
	Dispatch(a store.Action)
	State() store.State
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

// MessageFrom picks the text shown for err: the server's error text when
// the API sent one, the fallback otherwise.
func MessageFrom(err error) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return FallbackMessage
}

type Coordinator struct {
	api    API
	store  Dispatcher
	notify Notifier
	log    logrus.FieldLogger
}

func New(api API, st Dispatcher, notify Notifier, log logrus.FieldLogger) *Coordinator {
	return &Coordinator{api: api, store: st, notify: notify, log: log}
}

// run holds the busy flag of scope while fn executes. Errors and panics
// from fn dispatch failure and raise an error notification; the flag is
// released on every path.
func (c *Coordinator) run(scope, failure string, fn func() error) (err error) {
	c.store.Dispatch(store.Action{Type: store.BusyAcquire, Payload: scope})
	defer c.store.Dispatch(store.Action{Type: store.BusyRelease, Payload: scope})

	defer func() {
		if r := recover(); r != nil {
			c.log.WithFields(logrus.Fields{"scope": scope, "panic": r}).Error("intent panicked")
			err = fmt.Errorf("%w: %v", errPanic, r)
		}
		if err != nil {
			msg := MessageFrom(err)
			c.log.WithError(err).WithField("scope", scope).Warn("intent failed")
			c.store.Dispatch(store.Action{Type: failure, Payload: msg})
			c.notify.Error(msg)
		}
	}()

	return fn()
}

func (c *Coordinator) SignIn(ctx context.Context, email, password string) error {
	return c.run(store.ScopeAuth, store.AuthSignInFailure, func() error {
		session, err := c.api.SignIn(ctx, email, password)
		if err != nil {
			return err
		}
		c.store.Dispatch(store.Action{Type: store.AuthSignInSuccess, Payload: store.AuthState{
			Token:  session.Token,
			UserID: session.User.ID,
			Name:   session.User.Name,
			Email:  session.User.Email,
		}})
		c.notify.Success("Welcome, " + session.User.Name)
		return nil
	})
}

func (c *Coordinator) SignOut() {
	c.api.SetToken("")
	c.store.Dispatch(store.Action{Type: store.AuthSignOut})
}
