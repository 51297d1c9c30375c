package store

import (
	"encoding/json"
	"fmt"

	"todovault/logger"
	"todovault/model"
)

// Bridge moves the accounts document between the domain types and the KV
// store. The document is one blob under a fixed key; every save is a whole
// read-modify-write, never a partial update.
type Bridge struct {
	kv     KV
	logger *logger.Logger
}

// NewBridge creates a bridge over the given KV store.
func NewBridge(kv KV, l *logger.Logger) *Bridge {
	return &Bridge{kv: kv, logger: l}
}

// LoadAccounts reads the whole accounts document. An absent key is a first
// run and yields an empty document; malformed content is ErrCorruptStore
// and is never silently replaced.
func (b *Bridge) LoadAccounts() (model.Accounts, error) {
	raw, ok, err := b.kv.Get(model.AccountsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.NewAccounts(), nil
	}

	var accounts model.Accounts
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		b.logger.Error("accounts document is not valid JSON, refusing to reset it",
			"key", model.AccountsKey,
			"error", err.Error())
		return nil, fmt.Errorf("%w: %v", ErrCorruptStore, err)
	}
	if accounts == nil {
		accounts = model.NewAccounts()
	}
	for name, user := range accounts {
		if user.Tasks == nil {
			user.Tasks = []model.Task{}
			accounts[name] = user
		}
	}
	return accounts, nil
}

// SaveAccounts writes the whole accounts document back.
func (b *Bridge) SaveAccounts(accounts model.Accounts) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return b.kv.Set(model.AccountsKey, string(data))
}

// SaveTasks replaces one user's task list inside the document and rewrites
// the whole document.
func (b *Bridge) SaveTasks(username string, tasks []model.Task) error {
	accounts, err := b.LoadAccounts()
	if err != nil {
		return err
	}
	user, ok := accounts[username]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, username)
	}

	user.Tasks = make([]model.Task, len(tasks))
	copy(user.Tasks, tasks)
	accounts[username] = user
	return b.SaveAccounts(accounts)
}

// LoadTasks returns one user's task list exactly as stored. The stored
// order already encodes the display order, so this is a straight
// deserialize; runtime IDs are assigned fresh.
func (b *Bridge) LoadTasks(username string) ([]model.Task, error) {
	accounts, err := b.LoadAccounts()
	if err != nil {
		return nil, err
	}
	user, ok := accounts[username]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, username)
	}

	tasks := make([]model.Task, len(user.Tasks))
	copy(tasks, user.Tasks)
	for i := range tasks {
		tasks[i].ID = model.NewID()
	}
	return tasks, nil
}

// LoadTheme returns the persisted theme preference, defaulting to light.
func (b *Bridge) LoadTheme() model.Theme {
	raw, ok, err := b.kv.Get(model.ThemeKey)
	if err != nil || !ok {
		return model.ThemeLight
	}
	if model.Theme(raw) == model.ThemeDark {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// SaveTheme persists the theme preference.
func (b *Bridge) SaveTheme(t model.Theme) error {
	return b.kv.Set(model.ThemeKey, string(t))
}
