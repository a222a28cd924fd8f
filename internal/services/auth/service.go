package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/taichi6930/race-schedule-api-sub006/internal/dependencies/random"
)

// Errors
var (
	ErrInvalidAPIKey     = errors.New("invalid api key")
	ErrAuthNotConfigured = errors.New("no api key configured")
)

const (
	// KeyPrefix marks generated API keys
	KeyPrefix = "rs_"
	// KeyLength is the number of random characters after the prefix
	KeyLength = 40
)

// Config holds configuration for the auth service
type Config struct {
	// APIKeyHash is the bcrypt hash of the key that may write schedule data.
	// Empty disables writes.
	APIKeyHash string
}

// Service checks API keys presented on write requests
type Service struct {
	hash []byte
}

// New creates a new auth Service. A non-empty hash must be a bcrypt hash.
func New(cfg Config) (*Service, error) {
	if cfg.APIKeyHash == "" {
		return &Service{}, nil
	}
	hash := []byte(cfg.APIKeyHash)
	if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("api key hash: %w", err)
	}
	return &Service{hash: hash}, nil
}

// Enabled reports whether a key has been configured
func (s *Service) Enabled() bool {
	return len(s.hash) > 0
}

// Authenticate checks key against the configured hash
func (s *Service) Authenticate(key string) error {
	if !s.Enabled() {
		return ErrAuthNotConfigured
	}
	if key == "" {
		return ErrInvalidAPIKey
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(key)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}

// APIKey is a freshly generated key and the hash to configure on the server
type APIKey struct {
	Key  string
	Hash string
}

// GenerateKey creates a random key and its bcrypt hash
func GenerateKey(r random.Random) (APIKey, error) {
	token, err := r.Token(KeyLength)
	if err != nil {
		return APIKey{}, fmt.Errorf("generate api key: %w", err)
	}
	key := KeyPrefix + token
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return APIKey{}, err
	}
	return APIKey{Key: key, Hash: string(hash)}, nil
}
