package store

import "gympoint/internal/model"

type Reducer func(State, Action) State

// Reduce is the reducer of the admin store. It never mutates its input.
func Reduce(prev State, a Action) State {
	s := prev.clone()

	switch a.Type {
	case BusyAcquire:
		scope, _ := a.Payload.(string)
		s.Busy[scope]++
	case BusyRelease:
		scope, _ := a.Payload.(string)
		if s.Busy[scope] > 1 {
			s.Busy[scope]--
		} else {
			delete(s.Busy, scope)
		}

	case AuthSignInSuccess:
		if auth, ok := a.Payload.(AuthState); ok {
			auth.SignedIn = true
			s.Auth = auth
			s.LastError = ""
		}
	case AuthSignOut:
		return State{Busy: s.Busy}

	case StudentsLoadSuccess:
		if loaded, ok := a.Payload.(StudentsLoaded); ok {
			s.Students = StudentsState{Items: loaded.Items, Count: loaded.Count, Filter: loaded.Filter, Page: loaded.Page, Loaded: true}
		}
	case StudentSaveSuccess:
		if student, ok := a.Payload.(model.Student); ok {
			s.Students.Items = replaceStudent(s.Students.Items, student)
		}
	case StudentDeleteSuccess:
		if id, ok := a.Payload.(uint); ok {
			s.Students.Items, s.Students.Count = removeStudent(s.Students.Items, s.Students.Count, id)
		}

	case PlansLoadSuccess:
		if plans, ok := a.Payload.([]model.Plan); ok {
			s.Plans = PlansState{Items: plans, Loaded: true}
		}
	case PlanSaveSuccess:
		if plan, ok := a.Payload.(model.Plan); ok {
			s.Plans.Items = replacePlan(s.Plans.Items, plan)
		}
	case PlanDeleteSuccess:
		if id, ok := a.Payload.(uint); ok {
			s.Plans.Items = removePlan(s.Plans.Items, id)
		}

	case EnrollmentsLoadSuccess:
		if loaded, ok := a.Payload.(EnrollmentsLoaded); ok {
			s.Enrollments = EnrollmentsState{Items: loaded.Items, Count: loaded.Count, Filter: loaded.Filter, Page: loaded.Page, Loaded: true}
		}
	case EnrollmentSaveSuccess:
		if enrollment, ok := a.Payload.(model.Enrollment); ok {
			s.Enrollments.Items = replaceEnrollment(s.Enrollments.Items, enrollment)
		}
	case EnrollmentDeleteSuccess:
		if id, ok := a.Payload.(uint); ok {
			s.Enrollments.Items, s.Enrollments.Count = removeEnrollment(s.Enrollments.Items, s.Enrollments.Count, id)
		}

	case HelpOrdersLoadSuccess:
		if orders, ok := a.Payload.([]model.HelpOrder); ok {
			s.HelpOrders.Items = orders
			s.HelpOrders.Loaded = true
		}
	case HelpOrderOpen:
		if order, ok := a.Payload.(model.HelpOrder); ok {
			s.HelpOrders.Selected = &order
			s.HelpOrders.ModalOpen = true
		}
	case HelpOrderClose, HelpOrderAnswerSuccess:
		s.HelpOrders.Selected = nil
		s.HelpOrders.ModalOpen = false

	case AuthSignInFailure,
		StudentsLoadFailure, StudentSaveFailure, StudentDeleteFailure,
		PlansLoadFailure, PlanSaveFailure, PlanDeleteFailure,
		EnrollmentsLoadFailure, EnrollmentSaveFailure, EnrollmentDeleteFailure,
		HelpOrdersLoadFailure, HelpOrderAnswerFailure:
		msg, _ := a.Payload.(string)
		s.LastError = msg
	}

	return s
}

func replaceStudent(items []model.Student, student model.Student) []model.Student {
	out := make([]model.Student, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ID == student.ID {
			it, found = student, true
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, student)
	}
	return out
}

func removeStudent(items []model.Student, count int64, id uint) ([]model.Student, int64) {
	out := make([]model.Student, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	if len(out) < len(items) && count > 0 {
		count--
	}
	return out, count
}

func replacePlan(items []model.Plan, plan model.Plan) []model.Plan {
	out := make([]model.Plan, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ID == plan.ID {
			it, found = plan, true
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, plan)
	}
	return out
}

func removePlan(items []model.Plan, id uint) []model.Plan {
	out := make([]model.Plan, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}

func replaceEnrollment(items []model.Enrollment, enrollment model.Enrollment) []model.Enrollment {
	out := make([]model.Enrollment, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ID == enrollment.ID {
			it, found = enrollment, true
		}
		out = append(out, it)
	}
	if !found {
		out = append(out, enrollment)
	}
	return out
}

func removeEnrollment(items []model.Enrollment, count int64, id uint) ([]model.Enrollment, int64) {
	out := make([]model.Enrollment, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	if len(out) < len(items) && count > 0 {
		count--
	}
	return out, count
}
