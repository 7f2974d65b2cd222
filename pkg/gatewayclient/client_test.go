package gatewayclient

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient() *Client {
	return NewClient("https://gateway.example/", "AIM_MERCHANT", "https://api.aim.example/payments/callback", "test-secret")
}

func TestCreateOrderSignsFields(t *testing.T) {
	c := testClient()

	order, err := c.CreateOrder(42, "accounts@sterlingfab.example", decimal.NewFromInt(5900))
	require.NoError(t, err)

	assert.Equal(t, "https://gateway.example/checkout", order.RedirectURL)
	assert.Equal(t, "5900.00", order.Fields["amount"])
	assert.Equal(t, "INR", order.Fields["currency"])
	assert.Contains(t, order.Fields["order_id"], "AIM-42-")

	// The posted signature must verify against the other fields.
	assert.Equal(t, c.SignFields(order.Fields), order.Fields["signature"])
}

func TestCreateOrderRequiresCredentials(t *testing.T) {
	c := NewClient("https://gateway.example", "", "https://api.aim.example/payments/callback", "")

	_, err := c.CreateOrder(42, "accounts@sterlingfab.example", decimal.NewFromInt(5900))
	require.Error(t, err)
}

func TestSignFieldsIsOrderIndependent(t *testing.T) {
	c := testClient()

	sig := c.SignFields(map[string]string{"amount": "5900.00", "currency": "INR"})
	same := c.SignFields(map[string]string{"currency": "INR", "amount": "5900.00"})
	assert.Equal(t, sig, same)

	// An existing signature entry does not feed back into the digest.
	withSig := c.SignFields(map[string]string{"amount": "5900.00", "currency": "INR", "signature": "junk"})
	assert.Equal(t, sig, withSig)
}

func TestVerifyCallback(t *testing.T) {
	c := testClient()
	body := []byte(`{"member_id":42,"status":"captured","reference_id":"pay_N8f2kQ"}`)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write(body)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.True(t, c.VerifyCallback(signature, body))
}

func TestVerifyCallbackRejectsTampering(t *testing.T) {
	c := testClient()
	body := []byte(`{"member_id":42,"status":"captured"}`)

	mac := hmac.New(sha256.New, []byte("test-secret"))
	mac.Write(body)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	tampered := []byte(`{"member_id":43,"status":"captured"}`)
	assert.False(t, c.VerifyCallback(signature, tampered))
	assert.False(t, c.VerifyCallback("", body))
	assert.False(t, c.VerifyCallback("bogus", body))
}
