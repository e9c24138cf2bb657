package services

import (
	"math/rand"
	"strconv"
	"sync"
)

// OTPStore holds pending one-time codes keyed by email, in process memory
// only. The signup flow and the password-reset flow each get their own
// instance so a code requested for one can never satisfy the other.
type OTPStore struct {
	mu    sync.Mutex
	codes map[string]int
}

func NewOTPStore() *OTPStore {
	return &OTPStore{codes: make(map[string]int)}
}

// Generate draws a six-digit code for the email and stores it, replacing any
// code already pending for that address.
func (s *OTPStore) Generate(email string) int {
	code := 100000 + rand.Intn(900000)

	s.mu.Lock()
	s.codes[email] = code
	s.mu.Unlock()

	return code
}

// Verify compares the submitted code against the pending one. A match
// consumes the code; a mismatch leaves it in place so the user can retry.
func (s *OTPStore) Verify(email, submitted string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	code, ok := s.codes[email]
	if !ok || strconv.Itoa(code) != submitted {
		return false
	}

	delete(s.codes, email)
	return true
}
