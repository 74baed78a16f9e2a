// Package view renders the admin screens as text and forwards user input to
// the effects coordinator.
package view

import (
	"fmt"
	"io"
	"sync"
	"text/tabwriter"

	"gympoint/internal/store"
)

type Mode int

const (
	ModeLoading Mode = iota
	ModeEmpty
	ModePopulated
)

func (m Mode) String() string {
	switch m {
	case ModeLoading:
		return "loading"
	case ModeEmpty:
		return "empty"
	default:
		return "populated"
	}
}

// modeOf picks exactly one render state for a list slice.
func modeOf(s store.State, scope string, loaded bool, items int) Mode {
	switch {
	case s.IsBusy(scope) || !loaded:
		return ModeLoading
	case items == 0:
		return ModeEmpty
	default:
		return ModePopulated
	}
}

type StateSource interface {
	State() store.State
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

const loadingText = "Loading..."

// Toaster prints notifications to out, one per line.
type Toaster struct {
	mu  sync.Mutex
	out io.Writer
}

func NewToaster(out io.Writer) *Toaster {
	return &Toaster{out: out}
}

func (t *Toaster) Success(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "[ok] %s\n", message)
}

func (t *Toaster) Error(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, "[error] %s\n", message)
}
