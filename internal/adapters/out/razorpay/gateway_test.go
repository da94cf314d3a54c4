// internal/adapters/out/razorpay/gateway_test.go
package razorpay_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sudipto39/Shop-Xpress/internal/adapters/out/razorpay"
)

func sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	t.Parallel()
	const secret = "test_secret"

	good := sign("order_abc", "pay_xyz", secret)
	assert.True(t, razorpay.VerifySignature("order_abc", "pay_xyz", good, secret))

	// whitespace around callback fields is tolerated
	assert.True(t, razorpay.VerifySignature(" order_abc ", "pay_xyz", " "+good+" ", secret))

	assert.False(t, razorpay.VerifySignature("order_abc", "pay_xyz", good, "other_secret"))
	assert.False(t, razorpay.VerifySignature("order_other", "pay_xyz", good, secret))
	assert.False(t, razorpay.VerifySignature("order_abc", "pay_other", good, secret))
	assert.False(t, razorpay.VerifySignature("order_abc", "pay_xyz", "tampered", secret))
	assert.False(t, razorpay.VerifySignature("", "pay_xyz", good, secret))
	assert.False(t, razorpay.VerifySignature("order_abc", "", good, secret))
	assert.False(t, razorpay.VerifySignature("order_abc", "pay_xyz", "", secret))
}

func TestNewRequiresCredentials(t *testing.T) {
	t.Parallel()

	_, err := razorpay.New("", "secret")
	assert.Error(t, err)
	_, err = razorpay.New("key", " ")
	assert.Error(t, err)

	g, err := razorpay.New("rzp_test_key", "secret")
	assert.NoError(t, err)
	assert.NotNil(t, g)
}
