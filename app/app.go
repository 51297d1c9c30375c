package app

import (
	"errors"
	"strings"

	"todovault/model"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrEmptyText     = errors.New("task text must not be empty")
	ErrCompletedTask = errors.New("operation not allowed on a completed task")
)

// Service holds one user's task list and enforces its ordering rules.
//
// The externally observable order is always: completed tasks first, most
// recently completed at the top, followed by incomplete tasks in manual
// order. Every operation keeps that partition intact.
type Service struct {
	tasks []model.Task
}

// NewService creates a service around a copy of the provided tasks.
// The slice is installed as-is: stored order already encodes the final
// display order, so no re-sorting happens here.
func NewService(tasks []model.Task) *Service {
	s := &Service{}
	s.Replace(tasks)
	return s
}

// Replace swaps in a freshly loaded task list, preserving its order.
func (s *Service) Replace(tasks []model.Task) {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = model.NewID()
		}
	}
	s.tasks = out
}

// Tasks returns all tasks as a copy, in display order.
func (s *Service) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get returns a task by id.
func (s *Service) Get(id string) (model.Task, error) {
	idx := s.indexOf(id)
	if idx == -1 {
		return model.Task{}, ErrTaskNotFound
	}
	return s.tasks[idx], nil
}

// Add appends a new incomplete task at the end of the list.
func (s *Service) Add(text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	task := model.NewTask(text)
	s.tasks = append(s.tasks, task)
	return task, nil
}

// Toggle flips a task's completion state and repositions it: newly
// completed tasks move to the very top, newly incomplete tasks move to the
// end of the list.
func (s *Service) Toggle(id string) (model.Task, error) {
	idx := s.indexOf(id)
	if idx == -1 {
		return model.Task{}, ErrTaskNotFound
	}

	task := s.tasks[idx]
	task.Completed = !task.Completed
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)

	if task.Completed {
		s.tasks = append([]model.Task{task}, s.tasks...)
	} else {
		s.tasks = append(s.tasks, task)
	}
	return task, nil
}

// Edit replaces a task's text in place. Completed tasks cannot be edited.
func (s *Service) Edit(id, text string) (model.Task, error) {
	idx := s.indexOf(id)
	if idx == -1 {
		return model.Task{}, ErrTaskNotFound
	}
	if s.tasks[idx].Completed {
		return model.Task{}, ErrCompletedTask
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrEmptyText
	}
	s.tasks[idx].Text = text
	return s.tasks[idx], nil
}

// Delete removes a task wherever it sits.
func (s *Service) Delete(id string) error {
	idx := s.indexOf(id)
	if idx == -1 {
		return ErrTaskNotFound
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	return nil
}

// Reorder moves an incomplete task next to another incomplete task.
//
// Positions are compared within the incomplete segment only: when the moved
// task started above the target it lands immediately after it, otherwise
// immediately before. That reproduces drop-after when moving down and
// drop-before when moving up. Completed tasks never move.
func (s *Service) Reorder(movedID, targetID string) error {
	movedIdx := s.indexOf(movedID)
	targetIdx := s.indexOf(targetID)
	if movedIdx == -1 || targetIdx == -1 {
		return ErrTaskNotFound
	}
	if s.tasks[movedIdx].Completed || s.tasks[targetIdx].Completed {
		return ErrCompletedTask
	}
	if movedID == targetID {
		return nil
	}

	movedPos := s.incompletePosition(movedIdx)
	targetPos := s.incompletePosition(targetIdx)

	moved := s.tasks[movedIdx]
	s.tasks = append(s.tasks[:movedIdx], s.tasks[movedIdx+1:]...)

	insertAt := s.indexOf(targetID)
	if movedPos < targetPos {
		insertAt++
	}

	s.tasks = append(s.tasks, model.Task{})
	copy(s.tasks[insertAt+1:], s.tasks[insertAt:])
	s.tasks[insertAt] = moved
	return nil
}

// Incomplete returns only the incomplete tasks, in manual order.
func (s *Service) Incomplete() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Completed returns only the completed tasks, most recent first.
func (s *Service) Completed() []model.Task {
	out := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Len reports the total number of tasks.
func (s *Service) Len() int {
	return len(s.tasks)
}

func (s *Service) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// incompletePosition converts a list index into a position among the
// incomplete tasks only.
func (s *Service) incompletePosition(idx int) int {
	pos := 0
	for i := 0; i < idx; i++ {
		if !s.tasks[i].Completed {
			pos++
		}
	}
	return pos
}
