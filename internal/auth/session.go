// Package auth holds the process-wide session state: the bearer credential
// and the UI theme mode. Both live behind explicit accessors and are
// injected into whatever needs them.
package auth

import (
	"strings"
	"sync"
)

// ThemeMode selects the display theme persisted across sessions.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Session is a concurrency-safe store for the credential token and theme
// mode. The zero value is not usable; construct it with NewSession.
type Session struct {
	mu    sync.RWMutex
	token string
	theme ThemeMode
}

// NewSession creates a session seeded with an initial token. The token goes
// through the same sentinel normalization as SetToken.
func NewSession(initialToken string) *Session {
	s := &Session{theme: ThemeLight}
	s.SetToken(initialToken)
	return s
}

// NormalizeToken maps the known "no credential" sentinels to the empty
// string: absent values, blanks, and the literal strings "null" and
// "undefined" that leak out of browser storage.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "null" || token == "undefined" {
		return ""
	}
	return token
}

// Token returns the current credential, or "" when there is none.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasCredential reports whether a usable credential is present.
func (s *Session) HasCredential() bool {
	return s.Token() != ""
}

// SetToken stores a credential after normalizing sentinel values.
func (s *Session) SetToken(raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = NormalizeToken(raw)
}

// Clear removes the stored credential.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Theme returns the current theme mode.
func (s *Session) Theme() ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme flips between light and dark and returns the new mode.
func (s *Session) ToggleTheme() ThemeMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.theme == ThemeLight {
		s.theme = ThemeDark
	} else {
		s.theme = ThemeLight
	}
	return s.theme
}
