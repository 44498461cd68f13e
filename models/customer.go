package models

// Customer represents a customer in the database
type Customer struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	SchoolID   int64  `json:"schoolId"`
	SchoolName string `json:"schoolName,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Email      string `json:"email,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

// CreateCustomerRequest represents the request body for registering a customer
// Example: {"name": "Maria Silva", "schoolId": 1, "phone": "+5583999990000", "email": "maria@example.com"}
type CreateCustomerRequest struct {
	Name     string `json:"name"`
	SchoolID int64  `json:"schoolId"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// CustomerListResponse represents the response for listing customers
type CustomerListResponse struct {
	Customers []Customer `json:"customers"`
}
