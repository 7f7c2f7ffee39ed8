package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrInvalidSignature = errors.New("invalid signature")

// RecoverAddress returns the checksum address that personal-signed the payload.
// The payload is "<hex signature> <message>"; a bare signature is checked against
// fallbackMessage.
func RecoverAddress(payload string, fallbackMessage string) (string, error) {
	payload = strings.TrimSpace(payload)
	sigHex, message, found := strings.Cut(payload, " ")
	if !found {
		message = fallbackMessage
	}
	if len(sigHex) == 0 || len(message) == 0 {
		return "", fmt.Errorf("%w: missing signature or message", ErrInvalidSignature)
	}
	if !strings.HasPrefix(sigHex, "0x") && !strings.HasPrefix(sigHex, "0X") {
		sigHex = "0x" + sigHex
	}

	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return "", fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidSignature, crypto.SignatureLength, len(sig))
	}

	// Wallets sign with v in {27, 28}, recovery expects {0, 1}.
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return "", fmt.Errorf("%w: bad recovery id", ErrInvalidSignature)
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	return crypto.PubkeyToAddress(*pub).Hex(), nil
}
