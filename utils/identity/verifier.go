package identity

import (
	"context"
	"errors"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

var (
	// ErrInvalidToken covers signature, audience and expiry failures.
	ErrInvalidToken = errors.New("invalid identity token")
	// ErrNoVerifier means the service was wired without a token
	// verifier. A deployment problem, not a caller problem; it maps to
	// 500, never 401.
	ErrNoVerifier = errors.New("no token verifier configured")
)

// Claims are the identity assertions extracted from a verified token.
// Nothing in a token is trusted before the signature check passes.
type Claims struct {
	Subject string // provider-issued stable user id
	Email   string
	Name    string
}

// TokenVerifier validates an externally issued identity token and
// returns its claims. Implementations must verify the signature,
// audience and expiry before extracting anything.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}

// GoogleVerifier validates Firebase/Google ID tokens against Google's
// published certificates. The audience must match the Firebase project.
type GoogleVerifier struct {
	projectID string
}

// NewGoogleVerifier creates a verifier for the given Firebase project.
func NewGoogleVerifier(projectID string) *GoogleVerifier {
	return &GoogleVerifier{projectID: projectID}
}

func (g *GoogleVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(token, []string{g.projectID}); err != nil {
		return nil, ErrInvalidToken
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claimSet.Sub == "" {
		return nil, ErrInvalidToken
	}

	return &Claims{
		Subject: claimSet.Sub,
		Email:   claimSet.Email,
		Name:    claimSet.Name,
	}, nil
}
