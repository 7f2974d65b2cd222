/**
 * @description
 * Application draft model. The public membership form is a multi-step wizard;
 * each step is an explicit struct with a total validation function that
 * reports every problem in the step, not just the first. The steps compose
 * into an ApplicationDraft which is validated as a whole before a record is
 * created.
 */
package domain

import (
	"net/mail"
	"regexp"
	"strings"
)

var (
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	panPattern   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	tanPattern   = regexp.MustCompile(`^[A-Z]{4}[0-9]{5}[A-Z]{2}$`)
	cinPattern   = regexp.MustCompile(`^[LU][0-9]{5}[A-Za-z]{2}[0-9]{4}[A-Za-z]{3}[0-9]{6}$`)
)

// ValidGSTIN reports whether s matches the 15-character GSTIN shape.
func ValidGSTIN(s string) bool { return gstinPattern.MatchString(s) }

// ValidPAN reports whether s matches the 10-character PAN shape.
func ValidPAN(s string) bool { return panPattern.MatchString(s) }

// ValidTAN reports whether s matches the 11-character TAN shape.
func ValidTAN(s string) bool { return tanPattern.MatchString(s) }

// ValidCIN reports whether s matches the 21-character CIN shape.
func ValidCIN(s string) bool { return cinPattern.MatchString(s) }

func validEmail(s string) bool {
	_, err := mail.ParseAddress(s)
	return err == nil
}

func requireField(errs []FieldError, field, value string) []FieldError {
	if strings.TrimSpace(value) == "" {
		return append(errs, FieldError{Field: field, Message: "is required"})
	}
	return errs
}

// CompanyStep holds the company identity fields captured by the first
// wizard step.
type CompanyStep struct {
	CompanyName    string `json:"company_name"`
	CompanyAddress string `json:"company_address"`
	CompanyEmail   string `json:"company_email"`
	CompanyPhone   string `json:"company_phone"`
}

// Validate returns every problem in the step.
func (s CompanyStep) Validate() []FieldError {
	var errs []FieldError
	errs = requireField(errs, "company_name", s.CompanyName)
	errs = requireField(errs, "company_address", s.CompanyAddress)
	if s.CompanyEmail == "" {
		errs = append(errs, FieldError{Field: "company_email", Message: "is required"})
	} else if !validEmail(s.CompanyEmail) {
		errs = append(errs, FieldError{Field: "company_email", Message: "is not a valid email address"})
	}
	errs = requireField(errs, "company_phone", s.CompanyPhone)
	return errs
}

// RegistrationStep holds the statutory registration numbers.
type RegistrationStep struct {
	GSTIN string `json:"gstin"`
	PAN   string `json:"pan"`
	TAN   string `json:"tan"`
	CIN   string `json:"cin"`
}

// Validate checks each registration number against its fixed shape.
func (s RegistrationStep) Validate() []FieldError {
	var errs []FieldError
	checks := []struct {
		field, value, message string
		ok                    func(string) bool
	}{
		{"gstin", s.GSTIN, "must be a valid 15-character GSTIN", ValidGSTIN},
		{"pan", s.PAN, "must be a valid 10-character PAN", ValidPAN},
		{"tan", s.TAN, "must be a valid 11-character TAN", ValidTAN},
		{"cin", s.CIN, "must be a valid CIN", ValidCIN},
	}
	for _, c := range checks {
		if c.value == "" {
			errs = append(errs, FieldError{Field: c.field, Message: "is required"})
		} else if !c.ok(c.value) {
			errs = append(errs, FieldError{Field: c.field, Message: c.message})
		}
	}
	return errs
}

// ContactsStep holds the contact person and the head-of-company contact.
type ContactsStep struct {
	ContactName        string `json:"contact_name"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	ContactDesignation string `json:"contact_designation"`
	HeadName           string `json:"head_name"`
	HeadEmail          string `json:"head_email"`
	HeadPhone          string `json:"head_phone"`
}

// Validate returns every problem in the step.
func (s ContactsStep) Validate() []FieldError {
	var errs []FieldError
	errs = requireField(errs, "contact_name", s.ContactName)
	if s.ContactEmail == "" {
		errs = append(errs, FieldError{Field: "contact_email", Message: "is required"})
	} else if !validEmail(s.ContactEmail) {
		errs = append(errs, FieldError{Field: "contact_email", Message: "is not a valid email address"})
	}
	errs = requireField(errs, "contact_phone", s.ContactPhone)
	errs = requireField(errs, "head_name", s.HeadName)
	if s.HeadEmail != "" && !validEmail(s.HeadEmail) {
		errs = append(errs, FieldError{Field: "head_email", Message: "is not a valid email address"})
	}
	return errs
}

// MembershipStep holds the tier chosen on the final wizard step.
type MembershipStep struct {
	MembershipType TierType `json:"membership_type"`
}

// Validate returns every problem in the step.
func (s MembershipStep) Validate() []FieldError {
	if s.MembershipType == "" {
		return []FieldError{{Field: "membership_type", Message: "is required"}}
	}
	if !s.MembershipType.Valid() {
		return []FieldError{{Field: "membership_type", Message: "must be one of associate, allied, premier"}}
	}
	return nil
}

// ApplicationDraft is the composition of all wizard steps submitted as one
// application.
type ApplicationDraft struct {
	Company      CompanyStep      `json:"company"`
	Registration RegistrationStep `json:"registration"`
	Contacts     ContactsStep     `json:"contacts"`
	Membership   MembershipStep   `json:"membership"`
}

// Validate composes the per-step validations. A nil return means the draft
// is ready for submission.
func (d ApplicationDraft) Validate() *ValidationError {
	var errs []FieldError
	errs = append(errs, d.Company.Validate()...)
	errs = append(errs, d.Registration.Validate()...)
	errs = append(errs, d.Contacts.Validate()...)
	errs = append(errs, d.Membership.Validate()...)
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// NewMemberApplication builds the record that submission persists. The draft
// must already be validated.
func (d ApplicationDraft) NewMemberApplication() *MemberApplication {
	return &MemberApplication{
		Status:             StatusSubmitted,
		CompanyName:        strings.TrimSpace(d.Company.CompanyName),
		CompanyAddress:     strings.TrimSpace(d.Company.CompanyAddress),
		CompanyEmail:       d.Company.CompanyEmail,
		CompanyPhone:       d.Company.CompanyPhone,
		GSTIN:              d.Registration.GSTIN,
		PAN:                d.Registration.PAN,
		TAN:                d.Registration.TAN,
		CIN:                d.Registration.CIN,
		ContactName:        strings.TrimSpace(d.Contacts.ContactName),
		ContactEmail:       d.Contacts.ContactEmail,
		ContactPhone:       d.Contacts.ContactPhone,
		ContactDesignation: d.Contacts.ContactDesignation,
		HeadName:           strings.TrimSpace(d.Contacts.HeadName),
		HeadEmail:          d.Contacts.HeadEmail,
		HeadPhone:          d.Contacts.HeadPhone,
		MembershipType:     d.Membership.MembershipType,
	}
}
