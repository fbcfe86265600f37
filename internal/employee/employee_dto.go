package employee

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" binding:"required,max=50"`
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Org          string `json:"org"`
	Department   string `json:"department"`
	Division     string `json:"division"`
	Unit         string `json:"unit"`
	LevelP       string `json:"level_p" binding:"max=20"`
	VacationDays *int   `json:"vacation_days" binding:"omitempty,min=0"`
	BusinessDays *int   `json:"business_days" binding:"omitempty,min=0"`
	SickDays     *int   `json:"sick_days" binding:"omitempty,min=0"`
}

type UpdateEmployeeRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Org          string `json:"org"`
	Department   string `json:"department"`
	Division     string `json:"division"`
	Unit         string `json:"unit"`
	LevelP       string `json:"level_p" binding:"max=20"`
	VacationDays *int   `json:"vacation_days" binding:"omitempty,min=0"`
	BusinessDays *int   `json:"business_days" binding:"omitempty,min=0"`
	SickDays     *int   `json:"sick_days" binding:"omitempty,min=0"`
}

type ListFilter struct {
	Org        string
	Department string
	LevelP     string
}

type EmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Org          string `json:"org,omitempty"`
	Department   string `json:"department,omitempty"`
	Division     string `json:"division,omitempty"`
	Unit         string `json:"unit,omitempty"`
	LevelP       string `json:"level_p,omitempty"`
	VacationDays *int   `json:"vacation_days,omitempty"`
	BusinessDays *int   `json:"business_days,omitempty"`
	SickDays     *int   `json:"sick_days,omitempty"`
}
