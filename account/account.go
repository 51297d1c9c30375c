package account

import (
	"encoding/base64"
	"errors"
	"strings"

	"todovault/logger"
	"todovault/model"
	"todovault/store"
)

const minPasswordLen = 8

var (
	ErrInvalidInput     = errors.New("username and password must not be empty")
	ErrWeakPassword     = errors.New("password must be at least 8 characters long")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrDuplicateUser    = errors.New("username already exists")
	ErrAuthFailed       = errors.New("invalid username or password")
	ErrNotLoggedIn      = errors.New("no user is logged in")
)

// Manager owns signup/login/logout and the single-slot session. At most one
// user is authenticated at a time; the session lives only in memory.
type Manager struct {
	bridge  *store.Bridge
	logger  *logger.Logger
	current string
}

// NewManager creates a logged-out manager over the given bridge.
func NewManager(bridge *store.Bridge, l *logger.Logger) *Manager {
	return &Manager{bridge: bridge, logger: l}
}

// Current returns the authenticated username, if any.
func (m *Manager) Current() (string, bool) {
	return m.current, m.current != ""
}

// Signup registers a new account with an empty task list and logs it in.
func (m *Manager) Signup(username, password, confirm string) ([]model.Task, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}
	if password != confirm {
		return nil, ErrPasswordMismatch
	}

	accounts, err := m.bridge.LoadAccounts()
	if err != nil {
		return nil, err
	}
	if _, exists := accounts[username]; exists {
		return nil, ErrDuplicateUser
	}

	accounts[username] = model.StoredUser{
		Password: obfuscate(password),
		Tasks:    []model.Task{},
	}
	if err := m.bridge.SaveAccounts(accounts); err != nil {
		return nil, err
	}

	m.logger.Info("account created", "username", username)
	return m.Login(username, password)
}

// Login authenticates a user and loads their task list. Unknown usernames
// and wrong passwords both report ErrAuthFailed: which one it was is not
// leaked to the caller.
func (m *Manager) Login(username, password string) ([]model.Task, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	accounts, err := m.bridge.LoadAccounts()
	if err != nil {
		return nil, err
	}
	user, ok := accounts[username]
	if !ok || user.Password != obfuscate(password) {
		return nil, ErrAuthFailed
	}

	tasks, err := m.bridge.LoadTasks(username)
	if err != nil {
		return nil, err
	}

	m.current = username
	m.logger.Info("user logged in", "username", username)
	return tasks, nil
}

// Logout clears the session. Stored data is untouched.
func (m *Manager) Logout() {
	if m.current != "" {
		m.logger.Info("user logged out", "username", m.current)
	}
	m.current = ""
}

// SaveTasks persists the task list of the logged-in user.
func (m *Manager) SaveTasks(tasks []model.Task) error {
	if m.current == "" {
		return ErrNotLoggedIn
	}
	return m.bridge.SaveTasks(m.current, tasks)
}

// obfuscate applies the reversible base64 encoding the stored document
// uses for passwords. This is not a hash and not secure; swapping in a
// salted slow hash would change the stored format and the login semantics,
// so it is an explicit non-goal here.
func obfuscate(password string) string {
	return base64.StdEncoding.EncodeToString([]byte(password))
}
