package employee

type CreateEmployeeRequest struct {
	Code     string `json:"code" binding:"required,max=10"`
	Name     string `json:"name" binding:"required,max=20"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN GENERAL"`
}

type UpdateEmployeeRequest struct {
	Name string `json:"name" binding:"required,max=20"`
	// Password is optional; empty means "keep the current one"
	Password string `json:"password"`
	Role     string `json:"role" binding:"required,oneof=ADMIN GENERAL"`
}

type EmployeeResponse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// EmployeeOption is the slim shape cached for select boxes.
type EmployeeOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}
