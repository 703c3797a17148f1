package notification

type NotificationResponse struct {
	ID           uint   `json:"id"`
	ReportID     uint   `json:"report_id"`
	EmployeeCode string `json:"employee_code"`
	Message      string `json:"message"`
	CreatedAt    string `json:"created_at"`
}
