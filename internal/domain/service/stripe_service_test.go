package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPayload(secret string, timestamp int64, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	svc := NewStripeService("sk_test", "whsec_test")
	payload := []byte(`{"type":"checkout.session.completed"}`)
	now := time.Now().Unix()

	header := fmt.Sprintf("t=%d,v1=%s", now, signPayload("whsec_test", now, payload))
	assert.NoError(t, svc.VerifyWebhookSignature(payload, header))

	// Wrong secret.
	header = fmt.Sprintf("t=%d,v1=%s", now, signPayload("whsec_other", now, payload))
	assert.Error(t, svc.VerifyWebhookSignature(payload, header))

	// Tampered payload.
	header = fmt.Sprintf("t=%d,v1=%s", now, signPayload("whsec_test", now, payload))
	assert.Error(t, svc.VerifyWebhookSignature([]byte(`{}`), header))

	// Stale timestamp.
	old := time.Now().Add(-10 * time.Minute).Unix()
	header = fmt.Sprintf("t=%d,v1=%s", old, signPayload("whsec_test", old, payload))
	assert.Error(t, svc.VerifyWebhookSignature(payload, header))

	// Malformed header.
	assert.Error(t, svc.VerifyWebhookSignature(payload, "garbage"))
}

func TestParseEvent(t *testing.T) {
	svc := NewStripeService("sk_test", "whsec_test")

	event, err := svc.ParseEvent([]byte(`{"id":"evt_1","type":"customer.subscription.updated","data":{"object":{"id":"sub_1","status":"past_due","current_period_end":1764547200}}}`))
	require.NoError(t, err)
	assert.Equal(t, "customer.subscription.updated", event.Type)
	assert.Equal(t, "sub_1", event.Data.Object.ID)
	assert.Equal(t, "past_due", event.Data.Object.Status)

	_, err = svc.ParseEvent([]byte(`not json`))
	assert.Error(t, err)
}
