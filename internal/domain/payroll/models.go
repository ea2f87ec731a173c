package payroll

import "errors"

const Collection = "payroll"

var (
	ErrNotFound       = errors.New("payroll record not found")
	ErrInvalidAmounts = errors.New("invalid salary values")
)

type Record struct {
	ID         int     `json:"id"`
	EmployeeID int     `json:"employee_id"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	BaseSalary float64 `json:"base_salary"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
	NetPay     float64 `json:"net_pay"`
	TaxStatus  bool    `json:"tax_status"`
	PFStatus   bool    `json:"pf_status"`
	ESIStatus  bool    `json:"esi_status"`
	CreatedAt  string  `json:"created_at,omitempty"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
}

// View is a record joined with the employee name at read time.
type View struct {
	Record
	EmployeeName string `json:"employeeName"`
}
