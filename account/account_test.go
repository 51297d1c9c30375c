package account

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todovault/logger"
	"todovault/model"
	"todovault/store"
)

func newManager(t *testing.T) (*Manager, *store.Bridge) {
	t.Helper()
	bridge := store.NewBridge(store.NewMemKV(), logger.Noop())
	return NewManager(bridge, logger.Noop()), bridge
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		wantErr  error
	}{
		{"empty username", "", "password1", "password1", ErrInvalidInput},
		{"empty password", "alice", "", "", ErrInvalidInput},
		{"short password", "alice", "short1", "short1", ErrWeakPassword},
		{"mismatch", "alice", "password1", "password2", ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newManager(t)
			_, err := m.Signup(tt.username, tt.password, tt.confirm)
			assert.ErrorIs(t, err, tt.wantErr)

			_, loggedIn := m.Current()
			assert.False(t, loggedIn)
		})
	}
}

func TestSignupCreatesAccountAndLogsIn(t *testing.T) {
	m, bridge := newManager(t)

	tasks, err := m.Signup("alice", "password1", "password1")
	require.NoError(t, err)
	assert.Empty(t, tasks)

	username, loggedIn := m.Current()
	require.True(t, loggedIn)
	assert.Equal(t, "alice", username)

	accounts, err := bridge.LoadAccounts()
	require.NoError(t, err)
	stored, ok := accounts["alice"]
	require.True(t, ok)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("password1")), stored.Password)
	assert.Empty(t, stored.Tasks)
}

func TestSignupDuplicateUser(t *testing.T) {
	m, _ := newManager(t)
	_, err := m.Signup("alice", "password1", "password1")
	require.NoError(t, err)

	_, err = m.Signup("alice", "other1234", "other1234")
	assert.ErrorIs(t, err, ErrDuplicateUser)
}

func TestLoginDoesNotLeakWhichCheckFailed(t *testing.T) {
	m, _ := newManager(t)
	_, err := m.Signup("alice", "password1", "password1")
	require.NoError(t, err)
	m.Logout()

	_, wrongPassword := m.Login("alice", "wrongpass1")
	_, unknownUser := m.Login("bob", "password1")

	assert.ErrorIs(t, wrongPassword, ErrAuthFailed)
	assert.ErrorIs(t, unknownUser, ErrAuthFailed)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	_, loggedIn := m.Current()
	assert.False(t, loggedIn)
}

func TestLoginLoadsStoredTasks(t *testing.T) {
	m, bridge := newManager(t)
	_, err := m.Signup("alice", "password1", "password1")
	require.NoError(t, err)

	stored := []model.Task{
		{Text: "done", Completed: true},
		{Text: "todo"},
	}
	require.NoError(t, bridge.SaveTasks("alice", stored))
	m.Logout()

	tasks, err := m.Login("alice", "password1")
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "done", tasks[0].Text)
	assert.True(t, tasks[0].Completed)
	assert.Equal(t, "todo", tasks[1].Text)
	assert.False(t, tasks[1].Completed)
	assert.NotEmpty(t, tasks[0].ID)
}

func TestLoginEmptyFields(t *testing.T) {
	m, _ := newManager(t)
	_, err := m.Login("", "password1")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = m.Login("alice", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogoutClearsSessionOnly(t *testing.T) {
	m, bridge := newManager(t)
	_, err := m.Signup("alice", "password1", "password1")
	require.NoError(t, err)
	require.NoError(t, m.SaveTasks([]model.Task{{ID: "x", Text: "keep me"}}))

	m.Logout()
	_, loggedIn := m.Current()
	assert.False(t, loggedIn)

	tasks, err := bridge.LoadTasks("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "keep me", tasks[0].Text)
}

func TestSaveTasksRequiresLogin(t *testing.T) {
	m, _ := newManager(t)
	err := m.SaveTasks([]model.Task{{Text: "orphan"}})
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestCorruptStoreSurfacesOnLogin(t *testing.T) {
	kv := store.NewMemKV()
	require.NoError(t, kv.Set(model.AccountsKey, "{not json"))
	m := NewManager(store.NewBridge(kv, logger.Noop()), logger.Noop())

	_, err := m.Login("alice", "password1")
	assert.ErrorIs(t, err, store.ErrCorruptStore)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}
