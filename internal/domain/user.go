package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// User is a member of the workspace who can report and be assigned tickets.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Avatar       string    `json:"avatar,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Initials derives the display avatar from the space-separated words of a
// name, e.g. "Maya Patel" -> "MP".
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
