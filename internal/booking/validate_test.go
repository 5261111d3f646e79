package booking

import (
	"errors"
	"testing"

	"github.com/starford/skyroute/internal/apperr"
)

func validPerson() Person {
	return Person{
		GivenName:       "Frodo",
		PaternalSurname: "Baggins",
		BirthDate:       "2968-09-22",
		Nationality:     "Shire",
		Category:        "general",
		Email:           "frodo@shire.me",
		Phone:           "+1 555 000 1111",
	}
}

func TestPersonValidate(t *testing.T) {
	if err := validPerson().Validate(); err != nil {
		t.Fatalf("valid person rejected: %v", err)
	}

	cases := map[string]func(*Person){
		"missing given name":  func(p *Person) { p.GivenName = "" },
		"missing surname":     func(p *Person) { p.PaternalSurname = "" },
		"missing birth date":  func(p *Person) { p.BirthDate = "" },
		"malformed birthdate": func(p *Person) { p.BirthDate = "22/09/2968" },
		"missing category":    func(p *Person) { p.Category = "" },
		"bad email":           func(p *Person) { p.Email = "frodo@" },
		"bad phone":           func(p *Person) { p.Phone = "call me" },
	}
	for name, mutate := range cases {
		p := validPerson()
		mutate(&p)
		if err := p.Validate(); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", name, err)
		}
	}

	// Maternal surname stays optional.
	p := validPerson()
	p.MaternalSurname = ""
	if err := p.Validate(); err != nil {
		t.Errorf("optional maternal surname rejected: %v", err)
	}
}

func TestValidateFlightDate(t *testing.T) {
	for _, ok := range []string{"2026-10-01", "2026-10-01 15:30:00"} {
		if err := validateFlightDate(ok); err != nil {
			t.Errorf("validateFlightDate(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"", "2026-13-01", "01/10/2026", "2026-10-01T15:30:00"} {
		if err := validateFlightDate(bad); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("validateFlightDate(%q) = %v, want ErrValidation", bad, err)
		}
	}
}
