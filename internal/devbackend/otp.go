package devbackend

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/shopmanagement/portal/internal/core/domain"
)

const (
	purposeRegistration = "REGISTRATION"
	purposeReset        = "PASSWORD_RESET"
)

type otpEntry struct {
	code    string
	expires time.Time
}

// otpStore keeps one outstanding code per purpose and identifier.
type otpStore struct {
	mu      sync.Mutex
	entries map[string]*otpEntry
	ttl     time.Duration
}

func newOTPStore(ttl time.Duration) *otpStore {
	return &otpStore{entries: make(map[string]*otpEntry), ttl: ttl}
}

func otpKey(purpose, identifier string) string {
	return purpose + ":" + identifier
}

// issue replaces any outstanding code for the pair.
func (s *otpStore) issue(purpose, identifier string, now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[otpKey(purpose, identifier)] = &otpEntry{code: code, expires: now.Add(s.ttl)}
	return code, nil
}

// verify checks code; consume drops it once matched.
func (s *otpStore) verify(purpose, identifier, code string, now time.Time, consume bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := otpKey(purpose, identifier)
	e, ok := s.entries[key]
	if !ok || now.After(e.expires) || e.code != code {
		return domain.ErrInvalidOTP
	}
	if consume {
		delete(s.entries, key)
	}
	return nil
}
