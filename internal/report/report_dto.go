package report

type CreateReportRequest struct {
	ReportDate string `json:"report_date" binding:"required,datetime=2006-01-02"`
	Title      string `json:"title" binding:"required,max=100"`
	Content    string `json:"content" binding:"required,max=600"`
}

type UpdateReportRequest struct {
	ReportDate string `json:"report_date" binding:"required,datetime=2006-01-02"`
	Title      string `json:"title" binding:"required,max=100"`
	Content    string `json:"content" binding:"required,max=600"`
}

type ReportResponse struct {
	ID           uint   `json:"id"`
	ReportDate   string `json:"report_date"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	EmployeeCode string `json:"employee_code"`
	EmployeeName string `json:"employee_name,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}
