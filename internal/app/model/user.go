package model

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is the authenticated identity returned by the backend on login/signup.
type User struct {
	UID      int      `json:"uid"`
	UserName string   `json:"user_name"`
	Role     UserRole `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Customer is the mailing/contact profile keyed 1:1 to a User. It is created
// lazily on the first checkout-readiness step, so a logged-in user may have
// no Customer yet.
type Customer struct {
	CustomerID   int    `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	PhoneNumber  string `json:"phone_number"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
	UID          int    `json:"uid"`
}

// ProfileFields carries the mutable Customer fields for the upsert call.
type ProfileFields struct {
	CustomerName string `json:"customer_name"`
	PhoneNumber  string `json:"phone_number"`
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}
