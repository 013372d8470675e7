package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/pytracker/tracker-service/internal/domain"
)

// ErrBadCredentials is returned by verifiers on mismatch.
var ErrBadCredentials = errors.New("bad credentials")

// CredentialVerifier abstracts how a login password is checked and how a
// registration password is stored. The demo deployment uses one shared
// secret for every account; the hardened mode keeps per-user hashes behind
// the same interface.
type CredentialVerifier interface {
	Verify(user *domain.User, password string) error
	Hash(password string) (string, error)
}

// SharedSecretVerifier accepts a single configured secret for all users.
// This is deliberately demo-grade: it exists so a client can exercise an
// authenticated session, not to protect anything.
type SharedSecretVerifier struct {
	secret string
}

// NewSharedSecretVerifier builds the verifier.
func NewSharedSecretVerifier(secret string) *SharedSecretVerifier {
	return &SharedSecretVerifier{secret: secret}
}

// Verify compares the supplied password against the shared secret.
func (v *SharedSecretVerifier) Verify(_ *domain.User, password string) error {
	if subtle.ConstantTimeCompare([]byte(password), []byte(v.secret)) != 1 {
		return ErrBadCredentials
	}
	return nil
}

// Hash stores nothing: the shared secret is not per-user state.
func (v *SharedSecretVerifier) Hash(_ string) (string, error) {
	return "", nil
}

// BcryptVerifier checks per-user bcrypt hashes.
type BcryptVerifier struct {
	cost int
}

// NewBcryptVerifier builds the verifier with the given cost.
func NewBcryptVerifier(cost int) *BcryptVerifier {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptVerifier{cost: cost}
}

// Verify compares the password against the user's stored hash.
func (v *BcryptVerifier) Verify(user *domain.User, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrBadCredentials
	}
	return nil
}

// Hash produces the hash stored on registration.
func (v *BcryptVerifier) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
