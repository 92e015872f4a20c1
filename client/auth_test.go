package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuth is an Authenticator with scripted results.
type stubAuth struct {
	mu      sync.Mutex
	token   string
	err     error
	inCalls int
	block   chan struct{}
}

func (s *stubAuth) SignIn(ctx context.Context, email, password string) (string, error) {
	s.mu.Lock()
	s.inCalls++
	s.mu.Unlock()
	if s.block != nil {
		<-s.block
	}
	return s.token, s.err
}

func (s *stubAuth) SignUp(ctx context.Context, email, password string) (string, error) {
	return s.token, s.err
}

func registerServer(t *testing.T, status int, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			*calls++
		}
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": status < 300})
	}))
}

func TestSignInRegistersWithAPI(t *testing.T) {
	var calls int32
	server := registerServer(t, http.StatusOK, &calls)
	defer server.Close()

	auth := &stubAuth{token: "tok-1"}
	controller := NewAuthController(auth, New(server.URL))

	require.NoError(t, controller.SignIn(context.Background(), "a@b.co", "pw"))
	assert.Equal(t, "tok-1", controller.Token())
	assert.EqualValues(t, 1, calls)
}

func TestSignInSurvivesRegisterFailure(t *testing.T) {
	server := registerServer(t, http.StatusInternalServerError, nil)
	defer server.Close()

	auth := &stubAuth{token: "tok-1"}
	controller := NewAuthController(auth, New(server.URL))

	// Registration failing must not fail the login; the server upserts
	// the account on the next authenticated request anyway.
	require.NoError(t, controller.SignIn(context.Background(), "a@b.co", "pw"))
	assert.Equal(t, "tok-1", controller.Token())
}

func TestSignInPropagatesProviderError(t *testing.T) {
	server := registerServer(t, http.StatusOK, nil)
	defer server.Close()

	auth := &stubAuth{err: errors.New("wrong password")}
	controller := NewAuthController(auth, New(server.URL))

	assert.Error(t, controller.SignIn(context.Background(), "a@b.co", "pw"))
	assert.Empty(t, controller.Token())
}

func TestSignInSerializesSubmissions(t *testing.T) {
	server := registerServer(t, http.StatusOK, nil)
	defer server.Close()

	auth := &stubAuth{token: "tok-1", block: make(chan struct{})}
	controller := NewAuthController(auth, New(server.URL))

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = controller.SignIn(context.Background(), "a@b.co", "pw")
		}()
	}

	// Only one submission may be in flight while the first blocks.
	assert.Eventually(t, func() bool {
		auth.mu.Lock()
		defer auth.mu.Unlock()
		return auth.inCalls == 1
	}, time.Second, 10*time.Millisecond)

	close(auth.block)
	wg.Wait()

	auth.mu.Lock()
	defer auth.mu.Unlock()
	assert.Equal(t, 2, auth.inCalls)
}

func TestObserversSeeEveryChange(t *testing.T) {
	server := registerServer(t, http.StatusOK, nil)
	defer server.Close()

	auth := &stubAuth{token: "tok-1"}
	controller := NewAuthController(auth, New(server.URL))

	var states []AuthState
	controller.OnAuthStateChanged(func(state AuthState) {
		states = append(states, state)
	})

	require.NoError(t, controller.SignIn(context.Background(), "a@b.co", "pw"))
	controller.SignOut()

	require.Len(t, states, 3)
	assert.Empty(t, states[0].Token) // initial state on subscribe
	assert.Equal(t, "tok-1", states[1].Token)
	assert.Equal(t, "a@b.co", states[1].Email)
	assert.Empty(t, states[2].Token)
}
