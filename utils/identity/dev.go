package identity

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const devIssuer = "tutorslink-dev"

// DevClaims is the JWT claims shape used by the HS256 dev verifier.
type DevClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// DevVerifier validates HS256 tokens minted locally with SignDevToken.
// It exists so development and tests can run without the Google CA; it
// is only wired when AUTH_DEV_SECRET is configured and must never be
// enabled in production.
type DevVerifier struct {
	secret []byte
}

// NewDevVerifier creates a verifier for locally signed dev tokens.
func NewDevVerifier(secret string) *DevVerifier {
	return &DevVerifier{secret: []byte(secret)}
}

func (d *DevVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &DevClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return d.secret, nil
	}, jwt.WithIssuer(devIssuer), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*DevClaims)
	if !ok || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
	}, nil
}

// SignDevToken mints an HS256 token accepted by DevVerifier.
func SignDevToken(secret, subject, email, name string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := DevClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    devIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
