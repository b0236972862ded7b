package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Session is the CLI's local login state. Nothing here is shared with the server
// beyond the bearer token.
type Session struct {
	Server      string `yaml:"server,omitempty"`
	Token       string `yaml:"token,omitempty"`
	StudentID   int64  `yaml:"student_id,omitempty"`
	StudentName string `yaml:"student_name,omitempty"`
}

// LoggedIn reports whether a student token is held
func (s *Session) LoggedIn() bool {
	return s.Token != "" && s.StudentID > 0
}

// DefaultSessionPath returns ~/.classpoints/session.yaml
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".classpoints-session.yaml"
	}
	return filepath.Join(home, ".classpoints", "session.yaml")
}

// LoadSession reads the session file. A missing file is an empty session.
func LoadSession(path string) (*Session, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Session{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := yaml.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session %s: %w", path, err)
	}
	return &session, nil
}

// Save writes the session file, readable only by the current user
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	raw, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// ClearSession removes the session file
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
