package store

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. The password is stored only as a bcrypt
// hash and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"createdAt"`
	PasswordHash string    `json:"-"`
}

// UserStore is a mutex-guarded in-memory user repository. Uniqueness of
// username and email is the caller's responsibility; the store only
// provides the lookups needed for the pre-checks.
type UserStore struct {
	mu     sync.Mutex
	users  []User
	nextID int64

	hashCost int
	now      func() time.Time
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		nextID:   1,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}

// SetHashCost overrides the bcrypt cost (for testing).
func (s *UserStore) SetHashCost(cost int) {
	s.hashCost = cost
}

// FindByUsername returns the user with the given username, or false.
func (s *UserStore) FindByUsername(username string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

// FindByEmail returns the user with the given email, or false.
func (s *UserStore) FindByEmail(email string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return User{}, false
}

// GetByID returns the user with the given id, or false.
func (s *UserStore) GetByID(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// CreateUser hashes the password and appends a new user with the next
// sequential id.
func (s *UserStore) CreateUser(username, password, email string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := User{
		ID:           strconv.FormatInt(s.nextID, 10),
		Username:     username,
		Email:        email,
		CreatedAt:    s.now().UTC(),
		PasswordHash: string(hash),
	}
	s.nextID++
	s.users = append(s.users, user)

	return user, nil
}

// ValidateCredentials looks up the user by username and compares the
// supplied password against the stored hash. Returns false if the user is
// unknown or the password does not match.
func (s *UserStore) ValidateCredentials(username, password string) (User, bool) {
	user, ok := s.FindByUsername(username)
	if !ok {
		return User{}, false
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, false
	}
	return user, true
}

// Count returns the number of registered users.
func (s *UserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.users)
}
