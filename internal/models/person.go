package models

import (
	"strconv"
	"strings"
)

// HairColor is the closed set of accepted hair colors
type HairColor string

const (
	HairColorWhite  HairColor = "white"
	HairColorBlack  HairColor = "black"
	HairColorBrown  HairColor = "brown"
	HairColorYellow HairColor = "yellow"
	HairColorRed    HairColor = "red"
)

// HairColors lists every valid HairColor in declaration order
var HairColors = []HairColor{
	HairColorWhite,
	HairColorBlack,
	HairColorBrown,
	HairColorYellow,
	HairColorRed,
}

// IsValid reports whether h is one of the declared hair colors
func (h HairColor) IsValid() bool {
	switch h {
	case HairColorWhite, HairColorBlack, HairColorBrown, HairColorYellow, HairColorRed:
		return true
	}
	return false
}

// Secret is a write-only string: it is accepted on input but never
// serialized or printed in clear text
type Secret string

const secretMask = "**********"

// MarshalJSON masks the value
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`"` + secretMask + `"`), nil
}

// String masks the value so secrets don't leak through %v or loggers
func (s Secret) String() string {
	return secretMask
}

// Reveal returns the clear-text value
func (s Secret) Reveal() string {
	return string(s)
}

// PersonBase holds the fields shared by person input and output
type PersonBase struct {
	FirstName string     `json:"first_name" binding:"required,min=1,max=50"`
	LastName  string     `json:"last_name" binding:"required,min=1,max=50"`
	Age       int        `json:"age" binding:"required,gt=0,lte=115"`
	HairColor *HairColor `json:"hair_color" binding:"omitempty,haircolor"`
	IsMarried *bool      `json:"is_married"`
}

// Person is the create/update payload
type Person struct {
	PersonBase
	Password Secret `json:"password" binding:"required,min=8"`
}

// PersonOut is the public view of a person, without the password
type PersonOut struct {
	PersonBase
}

// ToOut drops the password
func (p *Person) ToOut() PersonOut {
	return PersonOut{PersonBase: p.PersonBase}
}

// Location is where a person lives. Every key must be present; any string,
// including "", is accepted.
type Location struct {
	City    *string `json:"city" binding:"required"`
	State   *string `json:"state" binding:"required"`
	Country *string `json:"country" binding:"required"`
}

// PersonQuery holds the query parameters of the person search
type PersonQuery struct {
	Name *string `form:"name" binding:"omitempty,min=1,max=50"`
	Age  string  `form:"age" binding:"required,min=1,max=50"`
}

// PersonID is a positive decimal integer of any size, kept as received
type PersonID string

// Canonical is the id without leading zeros
func (id PersonID) Canonical() string {
	trimmed := strings.TrimLeft(string(id), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// Int converts the id; ok is false when it does not fit in an int
func (id PersonID) Int() (int, bool) {
	n, err := strconv.Atoi(string(id))
	return n, err == nil
}

// IsValid reports whether id is all digits and greater than zero
func (id PersonID) IsValid() bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return id.Canonical() != "0"
}

// PersonIDParam is the :person_id path parameter
type PersonIDParam struct {
	PersonID PersonID `uri:"person_id" binding:"required,personid"`
}

// UpdatePersonRequest is the body of PUT /person/:person_id
type UpdatePersonRequest struct {
	Person   Person   `json:"person"`
	Location Location `json:"location"`
}

// PersonWithLocation is the flat merge of a person and its location
type PersonWithLocation struct {
	PersonBase
	Password Secret `json:"password"`
	Location
}

const (
	// PersonExistsMessage confirms a known person id
	PersonExistsMessage = "It exists!"
	// PersonNotFoundMessage is returned for unknown person ids
	PersonNotFoundMessage = "¡This person doesn't exist!"
)
