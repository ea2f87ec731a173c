package employee

// Collection is the record store name backing this domain.
const Collection = "employees"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusPending  = "Pending"
)

type PersonalContact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type Document struct {
	Name       string `json:"name"`
	Type       string `json:"type,omitempty"`
	URL        string `json:"url,omitempty"`
	UploadedAt string `json:"uploaded_at,omitempty"`
}

type Employee struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Username        string           `json:"username,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Role            string           `json:"role,omitempty"`
	Department      string           `json:"department,omitempty"`
	ReportingTo     *int             `json:"reporting_to"`
	JoiningDate     string           `json:"joining_date,omitempty"`
	EmployeeID      string           `json:"employee_id,omitempty"`
	Location        string           `json:"location,omitempty"`
	Salary          float64          `json:"salary"`
	Avatar          string           `json:"avatar,omitempty"`
	Status          string           `json:"status"`
	PasswordHash    string           `json:"password_hash,omitempty"`
	Photo           string           `json:"photo,omitempty"`
	PersonalContact *PersonalContact `json:"personal_contact,omitempty"`
	Documents       []Document       `json:"documents,omitempty"`
}

// Sanitized returns a copy safe to return to clients. The hash field is
// omitempty, so the empty value never reaches the wire.
func (e Employee) Sanitized() Employee {
	e.PasswordHash = ""
	return e
}
