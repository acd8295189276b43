package service

import (
	"fmt"
	"strings"
	"unicode"

	"taskdesk/internal/models"
)

const (
	MinUsernameLen = 3
	MaxUsernameLen = 64
	// bcrypt only looks at the first 72 bytes and rejects longer input
	MaxPasswordBytes = 72

	MaxTitleLen = 200
)

// validateCredentials normalizes and checks sign-up input.
func validateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if len(username) < MinUsernameLen {
		return "", invalid("username", fmt.Sprintf("must be at least %d characters", MinUsernameLen))
	}
	if len(username) > MaxUsernameLen {
		return "", invalid("username", fmt.Sprintf("must be at most %d characters", MaxUsernameLen))
	}
	for _, r := range username {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return "", invalid("username", "can only contain letters, digits, '_', '-', '.'")
		}
	}

	if strings.TrimSpace(password) == "" {
		return "", invalid("password", "is empty")
	}
	if len(password) > MaxPasswordBytes {
		return "", invalid("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes))
	}
	return username, nil
}

// validateKind rejects record kinds the service does not serve.
func validateKind(kind string) error {
	switch kind {
	case models.KindTask, models.KindTicket:
		return nil
	default:
		return invalid("kind", fmt.Sprintf("%q is not supported", kind))
	}
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return invalid("title", "is required")
	}
	if len(title) > MaxTitleLen {
		return invalid("title", fmt.Sprintf("must be at most %d characters", MaxTitleLen))
	}
	return nil
}
