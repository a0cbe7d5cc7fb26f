package models

// DefaultLoginMessage is returned on every accepted login form
const DefaultLoginMessage = "Login successful :)"

// LoginRequest is the form posted to /login
type LoginRequest struct {
	Username string `form:"username" binding:"required,max=20"`
	Password Secret `form:"password" binding:"required,min=2,max=20"`
}

// LoginOut is the login response. Password is carried but never serialized.
type LoginOut struct {
	Username string `json:"username"`
	Password Secret `json:"-"`
	Message  string `json:"message"`
}
