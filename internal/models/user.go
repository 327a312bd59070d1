package models

import "time"

// User is created from a login/register response and cached for the
// session; it is destroyed on logout.
type User struct {
	ID        string    `json:"_id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Addresses []Address `json:"addresses"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// FullName joins first and last name for display.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Address serves both shipping and billing; billing may alias shipping.
type Address struct {
	ID        string `json:"_id,omitempty"`
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

// Complete reports whether every field checkout requires is filled in.
// There is no server-side address validation on the client.
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" &&
		a.ZipCode != "" && a.Country != ""
}

// LoginCredentials is the payload for POST /auth/login.
type LoginCredentials struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// RegisterData is the payload for POST /auth/register.
type RegisterData struct {
	FirstName string `json:"firstName" form:"firstName" binding:"required"`
	LastName  string `json:"lastName" form:"lastName" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Password  string `json:"password" form:"password" binding:"required"`
	Phone     string `json:"phone,omitempty" form:"phone"`
}

// AuthPayload is the data half of a successful login/register envelope.
type AuthPayload struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
