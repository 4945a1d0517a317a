package userdir

import (
	"errors"
	"regexp"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/jaekwang-park/todo-web/internal/model"
)

var (
	ErrUserExists      = errors.New("username already taken")
	ErrInvalidUsername = errors.New("username must be at least 4 alphanumeric characters")
	ErrWeakPassword    = errors.New("password must be at least 4 characters")
)

const minPasswordLength = 4

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{4,}$`)

// Directory is the process-wide username → credential map. Passwords are
// stored as bcrypt hashes; the plaintext never leaves Register or Verify.
type Directory struct {
	mu    sync.RWMutex
	users map[string]model.Credential
}

func New() *Directory {
	return &Directory{users: make(map[string]model.Credential)}
}

// Load rebuilds a directory from a persisted snapshot.
func Load(snapshot map[string]model.Credential) *Directory {
	d := New()
	for name, cred := range snapshot {
		d.users[name] = cred
	}
	return d
}

func (d *Directory) Exists(username string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.users[username]
	return ok
}

// Verify reports whether the user exists and the password matches the
// stored hash.
func (d *Directory) Verify(username, password string) bool {
	d.mu.RLock()
	cred, ok := d.users[username]
	d.mu.RUnlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)) == nil
}

// Register adds a new credential record. The username must be at least
// four alphanumeric characters and not already taken; the password must
// be at least four characters.
func (d *Directory) Register(username, password string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[username]; ok {
		return ErrUserExists
	}
	d.users[username] = model.Credential{Password: string(hash)}
	return nil
}

// Snapshot returns a copy of the directory for persistence.
func (d *Directory) Snapshot() map[string]model.Credential {
	d.mu.RLock()
	defer d.mu.RUnlock()
	snapshot := make(map[string]model.Credential, len(d.users))
	for name, cred := range d.users {
		snapshot[name] = cred
	}
	return snapshot
}
