package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationNumberShapes(t *testing.T) {
	cases := []struct {
		name  string
		check func(string) bool
		value string
		valid bool
	}{
		{"gstin ok", ValidGSTIN, "09AANCS8991E1ZK", true},
		{"gstin lowercase entity letter", ValidGSTIN, "09aANCS8991E1ZK", false},
		{"gstin too short", ValidGSTIN, "09AANCS8991EZK", false},
		{"gstin missing Z", ValidGSTIN, "09AANCS8991E1AK", false},
		{"gstin entity digit zero", ValidGSTIN, "09AANCS8991E0ZK", false},

		{"pan ok", ValidPAN, "AANCS8991E", true},
		{"pan lowercase", ValidPAN, "aancs8991e", false},
		{"pan too long", ValidPAN, "AANCS8991EE", false},
		{"pan digits first", ValidPAN, "8991AANCSE", false},

		{"tan ok", ValidTAN, "DELA09999BX", true},
		{"tan ten chars", ValidTAN, "DELA09999B", false},
		{"tan lowercase", ValidTAN, "dela09999bx", false},

		{"cin listed ok", ValidCIN, "L17110MH1990PLC054828", true},
		{"cin unlisted ok", ValidCIN, "U72900DL2015PTC283475", true},
		{"cin bad prefix", ValidCIN, "X72900DL2015PTC283475", false},
		{"cin short", ValidCIN, "U72900DL2015PTC28347", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, tc.check(tc.value))
		})
	}
}

func validDraft() ApplicationDraft {
	return ApplicationDraft{
		Company: CompanyStep{
			CompanyName:    "Sterling Fabrication Pvt Ltd",
			CompanyAddress: "Plot 14, MIDC, Pune",
			CompanyEmail:   "accounts@sterlingfab.example",
			CompanyPhone:   "+91 98220 11111",
		},
		Registration: RegistrationStep{
			GSTIN: "09AANCS8991E1ZK",
			PAN:   "AANCS8991E",
			TAN:   "DELA09999BX",
			CIN:   "U72900DL2015PTC283475",
		},
		Contacts: ContactsStep{
			ContactName:  "R. Iyer",
			ContactEmail: "r.iyer@sterlingfab.example",
			ContactPhone: "+91 98220 22222",
			HeadName:     "S. Deshpande",
		},
		Membership: MembershipStep{MembershipType: TierAssociate},
	}
}

func TestDraftValidateAcceptsCompleteDraft(t *testing.T) {
	require.Nil(t, validDraft().Validate())
}

func TestDraftValidateReportsEveryProblem(t *testing.T) {
	draft := validDraft()
	draft.Company.CompanyName = ""
	draft.Company.CompanyEmail = "not-an-email"
	draft.Registration.PAN = "short"
	draft.Registration.CIN = ""
	draft.Membership.MembershipType = "platinum"

	verr := draft.Validate()
	require.NotNil(t, verr)

	fields := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{
		"company_name", "company_email", "pan", "cin", "membership_type",
	}, fields)
}

func TestDraftToMemberApplication(t *testing.T) {
	member := validDraft().NewMemberApplication()
	assert.Equal(t, StatusSubmitted, member.Status)
	assert.Equal(t, "Sterling Fabrication Pvt Ltd", member.CompanyName)
	assert.Equal(t, TierAssociate, member.MembershipType)
	assert.False(t, member.CertificateSent)
}
