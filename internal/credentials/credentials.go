// internal/credentials/credentials.go
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name for keyring storage
	KeyringService = "pricewatch"
	// FallbackDir is the directory for file-based secrets when no keyring is available
	FallbackDir = ".pricewatch/credentials"
)

// ErrNotFound is returned when no password is stored for the account
var ErrNotFound = errors.New("no stored password")

// Store keeps the mail password in the OS keyring, falling back to a private file in
// environments without one (Codespaces, CI, headless servers)
type Store struct {
	service string
	dir     string

	once     sync.Once
	fileOnly bool
}

// NewStore creates a Store with the default service name and fallback directory
func NewStore() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to locate home directory: %w", err)
	}
	return &Store{service: KeyringService, dir: filepath.Join(home, FallbackDir)}, nil
}

// NewStoreAt creates a Store with an explicit service and fallback directory
func NewStoreAt(service, dir string) *Store {
	return &Store{service: service, dir: dir}
}

// useFile checks once whether the keyring is usable
func (s *Store) useFile() bool {
	s.once.Do(func() {
		if os.Getenv("CODESPACES") != "" || os.Getenv("CI") != "" {
			s.fileOnly = true
			return
		}
		probe := "_probe_keyring_access_"
		if err := keyring.Set(s.service, probe, "probe"); err != nil {
			log.Debug().Err(err).Msg("Keyring unavailable, using file storage")
			s.fileOnly = true
			return
		}
		keyring.Delete(s.service, probe)
	})
	return s.fileOnly
}

func (s *Store) path(user string) (string, error) {
	if user == "" || strings.ContainsAny(user, `/\`) || user == "." || user == ".." {
		return "", fmt.Errorf("invalid account name %q", user)
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, user+".secret"), nil
}

// SetPassword stores password for user
func (s *Store) SetPassword(user, password string) error {
	if user == "" {
		return fmt.Errorf("account name cannot be empty")
	}

	if s.useFile() {
		path, err := s.path(user)
		if err != nil {
			return fmt.Errorf("failed to get credentials path: %w", err)
		}
		if err := os.WriteFile(path, []byte(password), 0600); err != nil {
			return fmt.Errorf("failed to save credentials file: %w", err)
		}
		return nil
	}

	if err := keyring.Set(s.service, user, password); err != nil {
		return fmt.Errorf("failed to save to keyring: %w", err)
	}
	return nil
}

// Password loads the stored password for user
func (s *Store) Password(user string) (string, error) {
	if user == "" {
		return "", fmt.Errorf("account name cannot be empty")
	}

	if s.useFile() {
		path, err := s.path(user)
		if err != nil {
			return "", fmt.Errorf("failed to get credentials path: %w", err)
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		if err != nil {
			return "", fmt.Errorf("failed to load credentials file: %w", err)
		}
		return string(data), nil
	}

	password, err := keyring.Get(s.service, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load from keyring: %w", err)
	}
	return password, nil
}

// DeletePassword removes the stored password for user. Deleting a missing entry is not an error.
func (s *Store) DeletePassword(user string) error {
	if user == "" {
		return fmt.Errorf("account name cannot be empty")
	}

	if s.useFile() {
		path, err := s.path(user)
		if err != nil {
			return fmt.Errorf("failed to get credentials path: %w", err)
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete credentials file: %w", err)
		}
		return nil
	}

	if err := keyring.Delete(s.service, user); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}
