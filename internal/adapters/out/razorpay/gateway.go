// internal/adapters/out/razorpay/gateway.go
package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway implements usecase.PaymentGateway against Razorpay.
//
// Order creation goes through the official client; signature checks are
// recomputed locally (HMAC-SHA256 over "<orderId>|<paymentId>" with the
// key secret, hex-encoded) so verification needs no network round trip.
type Gateway struct {
	client *razorpay.Client
	secret string
}

func New(keyID, keySecret string) (*Gateway, error) {
	keyID = strings.TrimSpace(keyID)
	keySecret = strings.TrimSpace(keySecret)
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay: key id and secret are required")
	}
	return &Gateway{
		client: razorpay.NewClient(keyID, keySecret),
		secret: keySecret,
	}, nil
}

// CreateOrder registers the amount (minor unit) with Razorpay and returns
// the gateway order id ("order_...").
func (g *Gateway) CreateOrder(ctx context.Context, amountCents int64, currency, receipt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("razorpay: client is nil")
	}
	if amountCents <= 0 {
		return "", errors.New("razorpay: amount must be positive")
	}
	if currency = strings.TrimSpace(currency); currency == "" {
		currency = "INR"
	}

	data := map[string]interface{}{
		"amount":   amountCents,
		"currency": currency,
		"receipt":  strings.TrimSpace(receipt),
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay: order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return "", errors.New("razorpay: order create returned no id")
	}
	return id, nil
}

// VerifySignature checks the checkout callback signature.
func (g *Gateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	if g == nil {
		return false
	}
	return VerifySignature(gatewayOrderID, paymentID, signature, g.secret)
}

// VerifySignature recomputes the expected signature and compares in
// constant time.
func VerifySignature(gatewayOrderID, paymentID, signature, secret string) bool {
	gatewayOrderID = strings.TrimSpace(gatewayOrderID)
	paymentID = strings.TrimSpace(paymentID)
	signature = strings.TrimSpace(signature)
	if gatewayOrderID == "" || paymentID == "" || signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
