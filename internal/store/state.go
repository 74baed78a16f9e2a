package store

import "gympoint/internal/model"

type State struct {
	// Busy counts the calls in flight per scope.
	Busy        map[string]int
	Auth        AuthState
	Students    StudentsState
	Plans       PlansState
	Enrollments EnrollmentsState
	HelpOrders  HelpOrdersState
	LastError   string
}

type AuthState struct {
	SignedIn bool
	Token    string
	UserID   uint
	Name     string
	Email    string
}

type StudentsState struct {
	Items  []model.Student
	Count  int64
	Filter string
	Page   int
	Loaded bool
}

type PlansState struct {
	Items  []model.Plan
	Loaded bool
}

type EnrollmentsState struct {
	Items  []model.Enrollment
	Count  int64
	Filter string
	Page   int
	Loaded bool
}

type HelpOrdersState struct {
	Items     []model.HelpOrder
	Loaded    bool
	Selected  *model.HelpOrder
	ModalOpen bool
}

func (s State) IsBusy(scope string) bool {
	return s.Busy[scope] > 0
}

// clone copies the parts of s a reducer may write to. Slices are never
// mutated in place, so sharing them is safe.
func (s State) clone() State {
	busy := make(map[string]int, len(s.Busy))
	for k, v := range s.Busy {
		busy[k] = v
	}
	s.Busy = busy
	if s.HelpOrders.Selected != nil {
		selected := *s.HelpOrders.Selected
		s.HelpOrders.Selected = &selected
	}
	return s
}
