package client

import (
	"context"
	"log"
	"sync"
)

// Authenticator exchanges credentials for a token with the identity
// provider. The API itself never sees passwords.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (token string, err error)
	SignUp(ctx context.Context, email, password string) (token string, err error)
}

// AuthState is what observers receive on every auth change. Token is
// empty when signed out.
type AuthState struct {
	Token string
	Email string
}

// AuthController coordinates sign-in, sign-up and sign-out for one
// user session. Submissions are serialized so a double click cannot
// race two logins, and observers are notified of every state change.
type AuthController struct {
	auth Authenticator
	api  *Client

	// submitMu serializes SignIn/SignUp end to end; mu only guards
	// state reads and observer registration.
	submitMu sync.Mutex

	mu        sync.Mutex
	state     AuthState
	observers []func(AuthState)
}

// NewAuthController creates a controller bound to the given identity
// provider and API client. The controller installs itself as the
// client's token provider.
func NewAuthController(auth Authenticator, api *Client) *AuthController {
	c := &AuthController{auth: auth, api: api}
	api.token = func(ctx context.Context) (string, error) {
		return c.Token(), nil
	}
	return c
}

// Token returns the current bearer token, empty when signed out.
func (c *AuthController) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Token
}

// OnAuthStateChanged registers an observer called with the current
// state immediately and on every subsequent change.
func (c *AuthController) OnAuthStateChanged(fn func(AuthState)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	state := c.state
	c.mu.Unlock()
	fn(state)
}

// SignIn authenticates and registers the account with the API.
// Registration is best-effort: the API upserts the user on first
// authenticated request anyway, so a transient failure here never
// turns a successful login into an error.
func (c *AuthController) SignIn(ctx context.Context, email, password string) error {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	token, err := c.auth.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	c.setState(AuthState{Token: token, Email: email})

	if err := c.api.RegisterUser(ctx, nil); err != nil {
		log.Printf("register after sign-in failed: %v", err)
	}
	return nil
}

// SignUp creates the account with the identity provider, then
// registers it with the API, with the same best-effort semantics as
// SignIn.
func (c *AuthController) SignUp(ctx context.Context, email, password string) error {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()

	token, err := c.auth.SignUp(ctx, email, password)
	if err != nil {
		return err
	}
	c.setState(AuthState{Token: token, Email: email})

	if err := c.api.RegisterUser(ctx, nil); err != nil {
		log.Printf("register after sign-up failed: %v", err)
	}
	return nil
}

// SignOut clears the session.
func (c *AuthController) SignOut() {
	c.submitMu.Lock()
	defer c.submitMu.Unlock()
	c.setState(AuthState{})
}

func (c *AuthController) setState(state AuthState) {
	c.mu.Lock()
	c.state = state
	observers := make([]func(AuthState), len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
}
