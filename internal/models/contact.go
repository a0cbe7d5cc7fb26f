package models

// ContactRequest represents a contact form submission
type ContactRequest struct {
	FirstName string `form:"first_name" binding:"required,min=1,max=20"`
	LastName  string `form:"last_name" binding:"required,min=1,max=20"`
	Email     string `form:"email" binding:"required,email"`
	Message   string `form:"message" binding:"required,min=20"`
}

// ContactMeta carries the optional request metadata sent along with the form
type ContactMeta struct {
	UserAgent *string
	Ads       *string
}
