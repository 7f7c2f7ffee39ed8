package gap

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const serviceTokenTTL = 10 * time.Minute

// ServiceTokenSource issues the short lived token sibling services use to
// authenticate this backend. Tokens are reused until close to expiry.
type ServiceTokenSource struct {
	secret []byte
	issuer string

	mu      sync.Mutex
	cached  map[string]string
	expires map[string]time.Time
	now     func() time.Time
}

func NewServiceTokenSource(secret string) *ServiceTokenSource {
	return &ServiceTokenSource{
		secret:  []byte(secret),
		issuer:  "stations-api",
		cached:  make(map[string]string),
		expires: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (v *ServiceTokenSource) Token(audience string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	if token, ok := v.cached[audience]; ok && now.Add(time.Minute).Before(v.expires[audience]) {
		return token, nil
	}

	expires := now.Add(serviceTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    v.issuer,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})
	signed, err := token.SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("unable to sign service token: %v", err)
	}

	v.cached[audience] = signed
	v.expires[audience] = expires
	return signed, nil
}
