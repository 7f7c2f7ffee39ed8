package exts

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	WebhookSignatureHeader = "webhook-signature"
	// WebhookTolerance is how old a signed delivery may be.
	WebhookTolerance = time.Hour
)

// SignWebhook signs "<time>.<body>" the way deliveries are verified.
func SignWebhook(secret string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// WebhookSignatureValue is the header value for a delivery signed at timestamp.
func WebhookSignatureValue(secret string, timestamp int64, body []byte) string {
	return fmt.Sprintf("time=%d,sig1=%s", timestamp, SignWebhook(secret, timestamp, body))
}

func parseWebhookSignature(header string) (int64, string, error) {
	var timestamp int64
	var signature string
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "time":
			parsed, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, "", fmt.Errorf("invalid timestamp: %v", err)
			}
			timestamp = parsed
		case "sig1":
			signature = value
		}
	}
	if timestamp == 0 || len(signature) == 0 {
		return 0, "", fmt.Errorf("malformed signature header")
	}
	return timestamp, signature, nil
}

// VerifyWebhook rejects deliveries whose signature does not match the raw body or that
// are older than WebhookTolerance.
func VerifyWebhook(secret string, now func() time.Time) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(secret) == 0 {
			return fiber.NewError(fiber.StatusServiceUnavailable, "webhooks are not configured")
		}
		timestamp, signature, err := parseWebhookSignature(c.Get(WebhookSignatureHeader))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		if now().Sub(time.Unix(timestamp, 0)) > WebhookTolerance {
			return fiber.NewError(fiber.StatusUnauthorized, "signature expired")
		}
		expected := SignWebhook(secret, timestamp, c.Body())
		if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
			return fiber.NewError(fiber.StatusUnauthorized, "signature mismatch")
		}
		return c.Next()
	}
}
