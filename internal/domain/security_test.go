package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	cases := []struct {
		role    string
		cap     Capability
		allowed bool
	}{
		{"admin", CapRejectApplication, true},
		{"admin", CapDownloadCertificate, true},
		{"staff", CapDownloadCertificate, true},
		{"staff", CapRejectApplication, false},
		{"viewer", CapDownloadCertificate, false},
		{"", CapRejectApplication, false},
	}
	for _, tc := range cases {
		id := Identity{Subject: "someone@aim.example", Role: tc.role}
		assert.Equal(t, tc.allowed, Authorize(id, tc.cap),
			"role %q capability %s", tc.role, tc.cap)
	}
}
