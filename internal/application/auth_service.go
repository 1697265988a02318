package application

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// BadCredentialsReason is the reason the service gives for rejected credentials.
const BadCredentialsReason = "Bad credentials"

// AuthService issues and checks update tokens of the booking twin.
type AuthService struct {
	username     string
	passwordHash []byte
	logger       *zap.Logger

	mu     sync.RWMutex
	tokens map[string]struct{}
}

// NewAuthService creates an AuthService accepting one account. Only a bcrypt
// hash of the password is kept.
func NewAuthService(username, password string, logger *zap.Logger) (*AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash account password: %w", err)
	}
	return &AuthService{
		username:     username,
		passwordHash: hash,
		logger:       logger,
		tokens:       make(map[string]struct{}),
	}, nil
}

// Issue returns a fresh token when the credentials match.
func (s *AuthService) Issue(username, password string) (string, bool) {
	if !s.Matches(username, password) {
		s.logger.Info("rejected credentials", zap.String("username", username))
		return "", false
	}

	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:15]

	s.mu.Lock()
	s.tokens[token] = struct{}{}
	s.mu.Unlock()

	return token, true
}

// Valid reports whether token was issued by this service.
func (s *AuthService) Valid(token string) bool {
	if token == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[token]
	return ok
}

// Matches reports whether the credentials belong to the account.
func (s *AuthService) Matches(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passOK := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
