package validation

// CreateStudent has no upper bound on age beyond what the stored int holds;
// UpdateStudent requires a whole number of years up to 120. The difference
// is kept on purpose, see DESIGN.md.
type CreateStudent struct {
	Name   string   `json:"name" validate:"required"`
	Email  string   `json:"email" validate:"required,email"`
	Age    *float64 `json:"age" validate:"required,fitsint"`
	Weight *float64 `json:"weight" validate:"required,gt=0,lte=250"`
	Height *float64 `json:"height" validate:"required,gt=0"`
}

type UpdateStudent struct {
	Name   string   `json:"name" validate:"required"`
	Email  string   `json:"email" validate:"required,email"`
	Age    *float64 `json:"age" validate:"required,gt=0,lte=120,integer"`
	Weight *float64 `json:"weight" validate:"required,gt=0,lte=250"`
	Height *float64 `json:"height" validate:"required,gt=0"`
}

type Plan struct {
	Title    string   `json:"title" validate:"required"`
	Duration *float64 `json:"duration" validate:"required,gt=0,integer,fitsint"`
	Price    *float64 `json:"price" validate:"required,gt=0"`
}

type Enrollment struct {
	StudentID uint   `json:"student_id" validate:"required,gt=0"`
	PlanID    uint   `json:"plan_id" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

type Question struct {
	Question string `json:"question" validate:"required,notblank"`
}

type Answer struct {
	Answer string `json:"answer" validate:"required,notblank"`
}

type Session struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DateLayout is the start_date wire format.
const DateLayout = "2006-01-02"
