package model

import "github.com/google/uuid"

// AccountsKey is the fixed storage key for the whole accounts document.
const AccountsKey = "todoAppUsers"

// ThemeKey is the storage key for the UI theme preference.
const ThemeKey = "todoAppTheme"

// Theme selects the UI color palette.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Task is an individual todo item. The ID exists only at runtime; stored
// tasks are identified by their position in the list.
type Task struct {
	ID        string `json:"-"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// StoredUser is one account as it lives inside the accounts document.
// Password holds the obfuscated (base64, reversible) form, never plaintext.
type StoredUser struct {
	Password string `json:"password"`
	Tasks    []Task `json:"tasks"`
}

// Accounts is the full persisted document: username -> account.
type Accounts map[string]StoredUser

// NewAccounts returns an initialized empty document.
func NewAccounts() Accounts {
	return Accounts{}
}

// NewTask creates an incomplete task with a fresh runtime ID.
func NewTask(text string) Task {
	return Task{ID: NewID(), Text: text}
}

// NewID returns a fresh opaque task identifier.
func NewID() string {
	return uuid.NewString()
}
