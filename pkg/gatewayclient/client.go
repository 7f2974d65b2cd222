/**
 * @description
 * This package provides the adapter for the external payment gateway. It
 * builds the signed form fields an applicant's browser posts to the gateway
 * checkout page, and verifies the HMAC signature of the callback the gateway
 * sends back.
 *
 * @notes
 * - The gateway itself is an external collaborator; this adapter only covers
 *   the "initiate payment" and "receive callback" surface.
 * - Outbound fields are signed over a canonical sorted key=value string so
 *   field ordering on the form cannot break verification.
 */
package gatewayclient

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client signs payment orders and verifies gateway callbacks.
type Client struct {
	BaseURL     string
	MerchantID  string
	CallbackURL string
	secret      []byte
}

// NewClient creates a new gateway adapter.
func NewClient(baseURL, merchantID, callbackURL, secret string) *Client {
	return &Client{
		BaseURL:     baseURL,
		MerchantID:  merchantID,
		CallbackURL: callbackURL,
		secret:      []byte(secret),
	}
}

// PaymentOrder is the redirect target plus the signed form fields the client
// posts to the gateway.
type PaymentOrder struct {
	RedirectURL string            `json:"redirect_url"`
	Fields      map[string]string `json:"fields"`
}

// CreateOrder builds a signed checkout order for a member's fee.
func (c *Client) CreateOrder(memberID int64, email string, amount decimal.Decimal) (*PaymentOrder, error) {
	if c.MerchantID == "" || len(c.secret) == 0 {
		return nil, fmt.Errorf("gateway credentials are not configured")
	}

	fields := map[string]string{
		"merchant_id":  c.MerchantID,
		"order_id":     fmt.Sprintf("AIM-%d-%s", memberID, uuid.NewString()),
		"amount":       amount.StringFixed(2),
		"currency":     "INR",
		"customer":     email,
		"callback_url": c.CallbackURL,
	}
	fields["signature"] = c.SignFields(fields)

	return &PaymentOrder{
		RedirectURL: strings.TrimSuffix(c.BaseURL, "/") + "/checkout",
		Fields:      fields,
	}, nil
}

// SignFields computes the hex HMAC-SHA256 over the canonical sorted
// key=value representation of fields, excluding any existing signature.
func (c *Client) SignFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}

	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyCallback checks the signature the gateway sends with its callback.
// The signature is the base64 HMAC-SHA256 of the raw request body.
func (c *Client) VerifyCallback(signature string, body []byte) bool {
	if signature == "" || len(c.secret) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
