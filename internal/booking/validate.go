// Package booking implements the reservation pipeline: holder validation,
// segment materialization from the route catalogs, and the atomic booking
// transaction.
package booking

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/starford/skyroute/internal/apperr"
)

var phoneRe = regexp.MustCompile(`^[0-9+()\-\s]{7,20}$`)

// Person is the input shape for a holder or companion. Category is free
// text resolved against the catalog; Seat is optional and randomized when
// empty.
type Person struct {
	GivenName       string `json:"given_name"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname,omitempty"`
	BirthDate       string `json:"birth_date"`
	Nationality     string `json:"nationality"`
	Category        string `json:"category"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Seat            string `json:"seat,omitempty"`
}

// Validate checks the registration contract. Failures wrap
// apperr.ErrValidation with the field breakdown.
func (p Person) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.GivenName, validation.Required),
		validation.Field(&p.PaternalSurname, validation.Required),
		validation.Field(&p.BirthDate, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&p.Nationality, validation.Required),
		validation.Field(&p.Category, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Phone, validation.Required, validation.Match(phoneRe)),
	)
	if err != nil {
		return fmt.Errorf("%w: %s", apperr.ErrValidation, err)
	}
	return nil
}

// validateFlightDate accepts a date (YYYY-MM-DD) or a date-time
// (YYYY-MM-DD HH:MM:SS), nothing else.
func validateFlightDate(s string) error {
	var layout string
	switch len(s) {
	case 10:
		layout = "2006-01-02"
	case 19:
		layout = "2006-01-02 15:04:05"
	default:
		return apperr.Validationf("flight date %q must be YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", s)
	}
	if _, err := time.Parse(layout, s); err != nil {
		return apperr.Validationf("flight date %q: %v", s, err)
	}
	return nil
}
