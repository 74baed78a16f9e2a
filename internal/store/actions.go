package store

import "gympoint/internal/model"

// Busy scopes, one per slice that talks to the API.
const (
	ScopeAuth        = "auth"
	ScopeStudents    = "students"
	ScopePlans       = "plans"
	ScopeEnrollments = "enrollments"
	ScopeHelpOrders  = "help_orders"
)

// Action types. Failure actions carry the message shown to the user.
const (
	BusyAcquire = "@busy/ACQUIRE"
	BusyRelease = "@busy/RELEASE"

	AuthSignInSuccess = "@auth/SIGN_IN_SUCCESS"
	AuthSignInFailure = "@auth/SIGN_IN_FAILURE"
	AuthSignOut       = "@auth/SIGN_OUT"

	StudentsLoadSuccess  = "@students/LOAD_SUCCESS"
	StudentsLoadFailure  = "@students/LOAD_FAILURE"
	StudentSaveSuccess   = "@students/SAVE_SUCCESS"
	StudentSaveFailure   = "@students/SAVE_FAILURE"
	StudentDeleteSuccess = "@students/DELETE_SUCCESS"
	StudentDeleteFailure = "@students/DELETE_FAILURE"

	PlansLoadSuccess  = "@plans/LOAD_SUCCESS"
	PlansLoadFailure  = "@plans/LOAD_FAILURE"
	PlanSaveSuccess   = "@plans/SAVE_SUCCESS"
	PlanSaveFailure   = "@plans/SAVE_FAILURE"
	PlanDeleteSuccess = "@plans/DELETE_SUCCESS"
	PlanDeleteFailure = "@plans/DELETE_FAILURE"

	EnrollmentsLoadSuccess  = "@enrollments/LOAD_SUCCESS"
	EnrollmentsLoadFailure  = "@enrollments/LOAD_FAILURE"
	EnrollmentSaveSuccess   = "@enrollments/SAVE_SUCCESS"
	EnrollmentSaveFailure   = "@enrollments/SAVE_FAILURE"
	EnrollmentDeleteSuccess = "@enrollments/DELETE_SUCCESS"
	EnrollmentDeleteFailure = "@enrollments/DELETE_FAILURE"

	HelpOrdersLoadSuccess  = "@help_orders/LOAD_SUCCESS"
	HelpOrdersLoadFailure  = "@help_orders/LOAD_FAILURE"
	HelpOrderOpen          = "@help_orders/OPEN"
	HelpOrderClose         = "@help_orders/CLOSE"
	HelpOrderAnswerSuccess = "@help_orders/ANSWER_SUCCESS"
	HelpOrderAnswerFailure = "@help_orders/ANSWER_FAILURE"
)

type Action struct {
	Type    string
	Payload interface{}
}

// StudentsLoaded is the payload of StudentsLoadSuccess.
type StudentsLoaded struct {
	Items  []model.Student
	Count  int64
	Filter string
	Page   int
}

// EnrollmentsLoaded is the payload of EnrollmentsLoadSuccess.
type EnrollmentsLoaded struct {
	Items  []model.Enrollment
	Count  int64
	Filter string
	Page   int
}
