package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"todovault/account"
	"todovault/app"
	"todovault/model"
	"todovault/store"
)

type screen int

const (
	screenAuth screen = iota
	screenTasks
)

type authForm int

const (
	formLogin authForm = iota
	formSignup
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeAddTask
	modeEditTask
	modeMoveTask
	modeConfirmDelete
)

// Model is the bubbletea front end. All mutations run inside Update and
// persist synchronously before the next message is handled.
type Model struct {
	acct   *account.Manager
	bridge *store.Bridge
	svc    *app.Service
	drag   *app.Drag

	screen screen
	form   authForm
	fields []string
	field  int

	mode      uiMode
	cursor    int
	input     string
	editID    string
	confirmID string

	theme model.Theme

	status    string
	statusErr bool

	width  int
	height int
}

// NewModel creates the initial model on the auth screen.
func NewModel(acct *account.Manager, bridge *store.Bridge) *Model {
	m := &Model{
		acct:   acct,
		bridge: bridge,
		theme:  bridge.LoadTheme(),
	}
	m.resetAuth(formLogin)
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenAuth {
			return m.updateAuth(msg)
		}
		switch m.mode {
		case modeAddTask, modeEditTask:
			m.updateInputMode(msg)
		case modeMoveTask:
			m.updateMoveMode(msg)
		case modeConfirmDelete:
			m.updateConfirmMode(msg)
		default:
			if quit := m.updateNormalMode(msg); quit {
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// --- auth screen ---

func (m *Model) resetAuth(form authForm) {
	m.screen = screenAuth
	m.form = form
	m.field = 0
	if form == formSignup {
		m.fields = make([]string, 3)
	} else {
		m.fields = make([]string, 2)
	}
}

func (m *Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "ctrl+s":
		if m.form == formLogin {
			m.resetAuth(formSignup)
			m.setStatus("Creating a new account", false)
		} else {
			m.resetAuth(formLogin)
			m.setStatus("Logging in to an existing account", false)
		}
	case "tab", "down":
		m.field = (m.field + 1) % len(m.fields)
	case "shift+tab", "up":
		m.field = (m.field + len(m.fields) - 1) % len(m.fields)
	case "enter":
		if m.field < len(m.fields)-1 {
			m.field++
			return m, nil
		}
		m.submitAuth()
	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			m.fields[m.field] = trimLastRune(m.fields[m.field])
		case tea.KeySpace:
			m.fields[m.field] += " "
		case tea.KeyRunes:
			m.fields[m.field] += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *Model) submitAuth() {
	var tasks []model.Task
	var err error
	if m.form == formSignup {
		tasks, err = m.acct.Signup(m.fields[0], m.fields[1], m.fields[2])
	} else {
		tasks, err = m.acct.Login(m.fields[0], m.fields[1])
	}
	if err != nil {
		m.setStatus(authErrorMessage(err), true)
		return
	}

	m.svc = app.NewService(tasks)
	m.drag = app.NewDrag(m.svc)
	m.screen = screenTasks
	m.mode = modeNormal
	m.cursor = 0
	username, _ := m.acct.Current()
	m.setStatus("Welcome, "+username, false)
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, account.ErrInvalidInput):
		return "Please fill in all fields"
	case errors.Is(err, account.ErrWeakPassword):
		return "Password must be at least 8 characters long"
	case errors.Is(err, account.ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, account.ErrDuplicateUser):
		return "Username already exists"
	case errors.Is(err, account.ErrAuthFailed):
		return "Invalid username or password"
	case errors.Is(err, store.ErrCorruptStore):
		return "Stored data is corrupt; refusing to overwrite it"
	default:
		return err.Error()
	}
}

// --- tasks screen ---

func (m *Model) updateNormalMode(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q":
		return true
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "a":
		m.mode = modeAddTask
		m.input = ""
	case "e":
		m.startEdit()
	case " ", "x":
		m.toggleAtCursor()
	case "d":
		m.startDelete()
	case "m":
		m.startMove()
	case "t":
		m.toggleTheme()
	case "l":
		m.acct.Logout()
		m.svc = nil
		m.drag = nil
		m.resetAuth(formLogin)
		m.setStatus("Logged out", false)
	}
	return false
}

func (m *Model) updateInputMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input = ""
		m.editID = ""
	case "enter":
		if m.mode == modeAddTask {
			m.commitAdd()
		} else {
			m.commitEdit()
		}
	default:
		switch msg.Type {
		case tea.KeyBackspace, tea.KeyCtrlH:
			m.input = trimLastRune(m.input)
		case tea.KeySpace:
			m.input += " "
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		}
	}
}

func (m *Model) updateMoveMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc":
		m.drag.Cancel()
		m.mode = modeNormal
		m.setStatus("Move cancelled", false)
	case "j", "down":
		m.moveCandidate(1)
	case "k", "up":
		m.moveCandidate(-1)
	case "enter":
		if err := m.drag.Drop(); err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.persist("Task moved")
		}
		m.mode = modeNormal
	}
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "y", "enter":
		if err := m.svc.Delete(m.confirmID); err != nil {
			m.setStatus(err.Error(), true)
		} else {
			m.persist("Task deleted")
		}
		m.confirmID = ""
		m.mode = modeNormal
		m.clampCursor()
	case "n", "esc":
		m.confirmID = ""
		m.mode = modeNormal
		m.setStatus("Delete cancelled", false)
	}
}

func (m *Model) commitAdd() {
	if _, err := m.svc.Add(m.input); err != nil {
		if errors.Is(err, app.ErrEmptyText) {
			m.setStatus("Task text must not be empty", true)
		} else {
			m.setStatus(err.Error(), true)
		}
		return
	}
	m.input = ""
	m.mode = modeNormal
	m.cursor = m.svc.Len() - 1
	m.persist("Task added")
}

func (m *Model) startEdit() {
	task, ok := m.taskAtCursor()
	if !ok {
		return
	}
	if task.Completed {
		m.setStatus("Completed tasks cannot be edited", true)
		return
	}
	m.mode = modeEditTask
	m.editID = task.ID
	m.input = task.Text
}

func (m *Model) commitEdit() {
	if _, err := m.svc.Edit(m.editID, m.input); err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyText):
			m.setStatus("Task text must not be empty", true)
		case errors.Is(err, app.ErrCompletedTask):
			m.setStatus("Completed tasks cannot be edited", true)
		default:
			m.setStatus(err.Error(), true)
		}
		return
	}
	m.input = ""
	m.editID = ""
	m.mode = modeNormal
	m.persist("Task updated")
}

func (m *Model) toggleAtCursor() {
	task, ok := m.taskAtCursor()
	if !ok {
		return
	}
	toggled, err := m.svc.Toggle(task.ID)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	if toggled.Completed {
		m.cursor = 0
		m.persist("Task completed")
	} else {
		m.cursor = m.svc.Len() - 1
		m.persist("Task reopened")
	}
}

func (m *Model) startDelete() {
	task, ok := m.taskAtCursor()
	if !ok {
		return
	}
	m.mode = modeConfirmDelete
	m.confirmID = task.ID
}

func (m *Model) startMove() {
	task, ok := m.taskAtCursor()
	if !ok {
		return
	}
	if err := m.drag.Start(task.ID); err != nil {
		if errors.Is(err, app.ErrCompletedTask) {
			m.setStatus("Completed tasks cannot be moved", true)
		} else {
			m.setStatus(err.Error(), true)
		}
		return
	}
	m.mode = modeMoveTask
	m.setStatus("Select a destination, enter to drop, esc to cancel", false)
}

// moveCandidate advances the drop candidate through the incomplete tasks.
func (m *Model) moveCandidate(delta int) {
	movedID, ok := m.drag.Moved()
	if !ok {
		return
	}
	candidates := make([]model.Task, 0)
	for _, t := range m.svc.Incomplete() {
		if t.ID != movedID {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return
	}

	idx := -1
	if id, ok := m.drag.Candidate(); ok {
		for i, t := range candidates {
			if t.ID == id {
				idx = i
				break
			}
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(candidates) {
		idx = len(candidates) - 1
	}
	if err := m.drag.Over(candidates[idx].ID); err != nil {
		m.setStatus(err.Error(), true)
	}
}

func (m *Model) toggleTheme() {
	if m.theme == model.ThemeLight {
		m.theme = model.ThemeDark
	} else {
		m.theme = model.ThemeLight
	}
	if err := m.bridge.SaveTheme(m.theme); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.setStatus("Theme: "+string(m.theme), false)
}

// persist flushes the current list for the logged-in user. Every mutation
// goes through here; there is no batching.
func (m *Model) persist(okStatus string) {
	if err := m.acct.SaveTasks(m.svc.Tasks()); err != nil {
		m.setStatus("Saving failed: "+err.Error(), true)
		return
	}
	m.setStatus(okStatus, false)
}

func (m *Model) taskAtCursor() (model.Task, bool) {
	tasks := m.svc.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= m.svc.Len() {
		m.cursor = m.svc.Len() - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	return string(runes[:len(runes)-1])
}
