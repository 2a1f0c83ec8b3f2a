package security

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed = errors.New("password hashing failed")
	MinPasswordLen   = 8
)

// PasswordHasher provides interface for password operations
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a new password hasher using bcrypt
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (b *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(bytes), nil
}

func (b *bcryptHasher) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var commonPasswords = map[string]struct{}{
	"password":   {},
	"password1":  {},
	"12345678":   {},
	"123456789":  {},
	"1234567890": {},
	"qwerty123":  {},
	"iloveyou":   {},
	"admin123":   {},
	"welcome1":   {},
	"abc12345":   {},
	"letmein1":   {},
	"football":   {},
	"baseball":   {},
	"sunshine":   {},
	"princess":   {},
}

// ValidatePassword returns the reasons a password is rejected, if any.
// personal holds user attributes (email, names) the password must not mirror.
func ValidatePassword(password string, personal ...string) []string {
	var problems []string

	if len(password) < MinPasswordLen {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}

	lower := strings.ToLower(password)
	if _, ok := commonPasswords[lower]; ok {
		problems = append(problems, "This password is too common.")
	}

	numeric := password != ""
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		problems = append(problems, "This password is entirely numeric.")
	}

	for _, attr := range personal {
		attr = strings.ToLower(strings.TrimSpace(attr))
		if i := strings.Index(attr, "@"); i > 0 {
			attr = attr[:i]
		}
		if len(attr) >= 3 && strings.Contains(lower, attr) {
			problems = append(problems, "The password is too similar to your personal information.")
			break
		}
	}

	return problems
}
