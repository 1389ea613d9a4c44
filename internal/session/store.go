// Package session provides the local user registry and the
// authentication signal consumed by the transport layer.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Profile is the public part of a registered user.
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type user struct {
	profile      Profile
	passwordHash []byte
}

// Store keeps registered users in memory and issues signed session
// tokens. It does not gate any cart or order operation itself; gating is
// a transport-layer concern.
type Store struct {
	mu     sync.RWMutex
	users  map[string]user // keyed by email
	secret []byte
	ttl    time.Duration
}

// NewStore creates a session store signing tokens with the given secret.
func NewStore(secret string, ttl time.Duration) *Store {
	return &Store{
		users:  make(map[string]user),
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Register adds a new user with a bcrypt-hashed password.
// Returns ErrUserAlreadyExists if the email is already registered.
func (s *Store) Register(name, email, password string) (Profile, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return Profile{}, ErrUserAlreadyExists
	}
	profile := Profile{
		ID:    uuid.New(),
		Name:  name,
		Email: email,
	}
	s.users[email] = user{profile: profile, passwordHash: hash}

	return profile, nil
}

// SignIn verifies the credentials and returns a signed session token.
// Returns ErrInvalidCredentials if the email is unknown or the password
// does not match.
func (s *Store) SignIn(email, password string) (string, error) {
	s.mu.RLock()
	u, ok := s.users[email]
	s.mu.RUnlock()

	if !ok {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   u.profile.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ProfileByID returns the profile of a registered user by ID.
// Returns ErrInvalidToken if no user matches, since the only source of
// user IDs at runtime is a verified session token.
func (s *Store) ProfileByID(id uuid.UUID) (Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.profile.ID == id {
			return u.profile, nil
		}
	}
	return Profile{}, ErrInvalidToken
}

// Verify checks a session token and returns the profile of the user it
// belongs to. This is the "is a user authenticated" signal.
// Returns ErrInvalidToken for expired, malformed or unknown tokens.
func (s *Store) Verify(tokenString string) (Profile, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Profile{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Profile{}, ErrInvalidToken
	}

	return s.ProfileByID(userID)
}
