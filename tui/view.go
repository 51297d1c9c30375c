package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"todovault/model"
)

type palette struct {
	title     lipgloss.Style
	subtle    lipgloss.Style
	cursor    lipgloss.Style
	completed lipgloss.Style
	dragging  lipgloss.Style
	candidate lipgloss.Style
	statusOK  lipgloss.Style
	statusErr lipgloss.Style
	input     lipgloss.Style
}

func newPalette(theme model.Theme) palette {
	if theme == model.ThemeDark {
		return palette{
			title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
			subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			cursor:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240")),
			dragging:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
			candidate: lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("114")),
			statusOK:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
			statusErr: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
			input:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		}
	}
	return palette{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
		subtle:    lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		cursor:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("125")),
		completed: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("247")),
		dragging:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130")),
		candidate: lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("28")),
		statusOK:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		statusErr: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
		input:     lipgloss.NewStyle().Foreground(lipgloss.Color("0")),
	}
}

func (m *Model) View() string {
	p := newPalette(m.theme)
	if m.screen == screenAuth {
		return m.viewAuth(p)
	}
	return m.viewTasks(p)
}

func (m *Model) viewAuth(p palette) string {
	var b strings.Builder

	b.WriteString(p.title.Render("todovault") + "\n")
	b.WriteString(p.subtle.Render(time.Now().Format("Monday, January 2, 2006")) + "\n\n")

	labels := []string{"Username", "Password"}
	if m.form == formSignup {
		b.WriteString(p.title.Render("Sign up") + "\n\n")
		labels = append(labels, "Confirm password")
	} else {
		b.WriteString(p.title.Render("Log in") + "\n\n")
	}

	for i, label := range labels {
		value := m.fields[i]
		if i > 0 {
			value = strings.Repeat("*", len([]rune(value)))
		}
		marker := "  "
		if i == m.field {
			marker = p.cursor.Render("> ")
			value += "_"
		}
		b.WriteString(fmt.Sprintf("%s%s: %s\n", marker, label, p.input.Render(value)))
	}

	b.WriteString("\n")
	if m.form == formSignup {
		b.WriteString(p.subtle.Render("enter submit · tab next field · ctrl+s log in instead · esc quit") + "\n")
	} else {
		b.WriteString(p.subtle.Render("enter submit · tab next field · ctrl+s sign up instead · esc quit") + "\n")
	}
	b.WriteString(m.viewStatus(p))
	return b.String()
}

func (m *Model) viewTasks(p palette) string {
	var b strings.Builder

	username, _ := m.acct.Current()
	b.WriteString(p.title.Render("todovault") + p.subtle.Render(" · "+username) + "\n")
	b.WriteString(p.subtle.Render(time.Now().Format("Monday, January 2, 2006")) + "\n\n")

	tasks := m.svc.Tasks()
	if len(tasks) == 0 {
		b.WriteString(p.subtle.Render("No tasks yet. Press 'a' to add one.") + "\n")
	}

	draggedID := ""
	candidateID := ""
	if m.mode == modeMoveTask {
		draggedID, _ = m.drag.Moved()
		candidateID, _ = m.drag.Candidate()
	}

	for i, t := range tasks {
		marker := "  "
		if m.mode != modeMoveTask && i == m.cursor {
			marker = p.cursor.Render("> ")
		}

		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}

		line := box + " " + t.Text
		switch {
		case t.ID == draggedID:
			line = p.dragging.Render(line + "  (moving)")
		case t.ID == candidateID:
			line = p.candidate.Render(line)
		case t.Completed:
			line = p.completed.Render(line)
		}

		if m.mode == modeEditTask && t.ID == m.editID {
			line = p.cursor.Render("> ") + p.input.Render(m.input+"_")
			marker = ""
		}
		b.WriteString(marker + line + "\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case modeAddTask:
		b.WriteString("New task: " + p.input.Render(m.input+"_") + "\n")
		b.WriteString(p.subtle.Render("enter save · esc cancel") + "\n")
	case modeEditTask:
		b.WriteString(p.subtle.Render("enter save · esc cancel") + "\n")
	case modeMoveTask:
		b.WriteString(p.subtle.Render("j/k pick destination · enter drop · esc cancel") + "\n")
	case modeConfirmDelete:
		b.WriteString(p.statusErr.Render("Delete this task? (y/n)") + "\n")
	default:
		b.WriteString(p.subtle.Render("a add · e edit · space toggle · d delete · m move · t theme · l logout · q quit") + "\n")
	}

	b.WriteString(m.viewStatus(p))
	return b.String()
}

func (m *Model) viewStatus(p palette) string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return p.statusErr.Render(m.status) + "\n"
	}
	return p.statusOK.Render(m.status) + "\n"
}
