package auth

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-service/internal/domain"
)

const testSecret = "test_signing_secret_key_very_long_for_testing"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0).UTC()}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestTokenService(t *testing.T, clock *fakeClock) TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{Secret: []byte(testSecret)}, WithClock(clock.Now))
	require.NoError(t, err)
	return svc
}

func TestTokenService_RoundTrip(t *testing.T) {
	clock := newFakeClock()
	svc := newTestTokenService(t, clock)

	token, err := svc.Issue(domain.Identity{Username: "alice", UserID: 7}, 30*time.Minute)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{Username: "alice", UserID: 7}, identity)
}

func TestTokenService_ExpiresAfterLifetime(t *testing.T) {
	clock := newFakeClock()
	svc := newTestTokenService(t, clock)

	token, err := svc.Issue(domain.Identity{Username: "alice", UserID: 7}, 30*time.Minute)
	require.NoError(t, err)

	clock.Advance(31 * time.Minute)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_ExpiryBoundary(t *testing.T) {
	clock := newFakeClock()
	svc := newTestTokenService(t, clock)

	token, err := svc.Issue(domain.Identity{Username: "bob", UserID: 3}, time.Minute)
	require.NoError(t, err)

	clock.Advance(time.Minute - time.Second)
	_, err = svc.Verify(token)
	require.NoError(t, err, "one second before exp must still verify")

	clock.Advance(time.Second)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "exactly at exp must fail")
}

func TestTokenService_DefaultLifetime(t *testing.T) {
	clock := newFakeClock()
	svc := newTestTokenService(t, clock)
	assert.Equal(t, DefaultTokenLifetime, svc.Lifetime())

	token, err := svc.Issue(domain.Identity{Username: "carol", UserID: 1}, 0)
	require.NoError(t, err)

	clock.Advance(29 * time.Minute)
	_, err = svc.Verify(token)
	require.NoError(t, err)

	clock.Advance(time.Minute)
	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := newTestTokenService(t, newFakeClock())

	token, err := svc.Issue(domain.Identity{Username: "alice", UserID: 7}, time.Hour)
	require.NoError(t, err)

	sigStart := strings.LastIndex(token, ".") + 1
	for i := sigStart; i < len(token); i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		_, err := svc.Verify(tampered)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "position %d", i)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	clock := newFakeClock()
	issuer, err := NewTokenService(TokenConfig{Secret: []byte("another secret")}, WithClock(clock.Now))
	require.NoError(t, err)

	token, err := issuer.Issue(domain.Identity{Username: "mallory", UserID: 1}, time.Hour)
	require.NoError(t, err)

	_, err = newTestTokenService(t, clock).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTestTokenService(t, newFakeClock())

	for _, token := range []string{"", "not-a-token", "a.b.c", "eyJhbGciOiJIUzI1NiJ9..", "..."} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	clock := newFakeClock()
	svc := newTestTokenService(t, clock)
	exp := jwt.NewNumericDate(clock.Now().Add(time.Hour))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "alice", "user_id": 7, "exp": exp,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = svc.Verify(none)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "alice", "user_id": 7, "exp": exp,
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = svc.Verify(hs512)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenService_MissingClaims(t *testing.T) {
	clock := newFakeClock()
	svc := newTestTokenService(t, clock)
	exp := jwt.NewNumericDate(clock.Now().Add(time.Hour))

	cases := map[string]jwt.MapClaims{
		"missing sub":     {"user_id": 7, "exp": exp},
		"empty sub":       {"sub": "", "user_id": 7, "exp": exp},
		"missing user_id": {"sub": "alice", "exp": exp},
		"missing exp":     {"sub": "alice", "user_id": 7},
	}
	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, err = svc.Verify(token)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
		})
	}
}

func TestTokenService_IssueRequiresUsername(t *testing.T) {
	svc := newTestTokenService(t, newFakeClock())

	_, err := svc.Issue(domain.Identity{UserID: 7}, time.Minute)
	assert.ErrorIs(t, err, ErrInvalidIdentity)
}

func TestNewTokenService_Config(t *testing.T) {
	_, err := NewTokenService(TokenConfig{})
	assert.Error(t, err)

	_, err = NewTokenService(TokenConfig{Secret: []byte("s"), Algorithm: "RS256"})
	assert.Error(t, err)

	svc, err := NewTokenService(TokenConfig{Secret: []byte("s"), Algorithm: "hs512", Lifetime: time.Hour})
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.Lifetime())

	token, err := svc.Issue(domain.Identity{Username: "dave", UserID: 2}, 0)
	require.NoError(t, err)
	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "dave", identity.Username)
}

func TestTokenService_SecretIsCopied(t *testing.T) {
	secret := []byte(testSecret)
	svc, err := NewTokenService(TokenConfig{Secret: secret})
	require.NoError(t, err)

	token, err := svc.Issue(domain.Identity{Username: "erin", UserID: 4}, time.Minute)
	require.NoError(t, err)

	secret[0] ^= 0xff
	_, err = svc.Verify(token)
	assert.NoError(t, err)
}

func TestTokenService_Concurrent(t *testing.T) {
	svc := newTestTokenService(t, newFakeClock())

	var wg sync.WaitGroup
	for i := 1; i <= 16; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			token, err := svc.Issue(domain.Identity{Username: "user", UserID: id}, time.Minute)
			if !assert.NoError(t, err) {
				return
			}
			identity, err := svc.Verify(token)
			if assert.NoError(t, err) {
				assert.Equal(t, id, identity.UserID)
			}
		}(int64(i))
	}
	wg.Wait()
}
