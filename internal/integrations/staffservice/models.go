package staffservice

// EmployeeRole роль сотрудника в StaffService
type EmployeeRole string

const (
	RoleAdmin           EmployeeRole = "admin"
	RoleReceptionist    EmployeeRole = "receptionist"
	RoleInstructor      EmployeeRole = "instructor"
	RolePersonalTrainer EmployeeRole = "personal_trainer"
)

// Employee модель сотрудника из StaffService
type Employee struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Role   EmployeeRole `json:"role"`
	Active bool         `json:"active"`
}

// CanTeach возвращает true, если роль сотрудника позволяет вести занятия
func (e *Employee) CanTeach() bool {
	return e.Active && (e.Role == RoleInstructor || e.Role == RolePersonalTrainer)
}

// ErrorResponse модель ошибки от StaffService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
