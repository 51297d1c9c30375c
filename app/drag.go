package app

import "errors"

var (
	ErrDragActive   = errors.New("a drag is already in progress")
	ErrDragInactive = errors.New("no drag in progress")
)

type dragState int

const (
	dragIdle dragState = iota
	dragMoving
)

// Drag is the reorder interaction state machine: idle until a drag starts
// on an incomplete task, then tracking a drop candidate until the drag ends.
// Only Drop mutates the task list; every other path returns to idle with
// the list untouched.
type Drag struct {
	svc       *Service
	state     dragState
	movedID   string
	candidate string
}

// NewDrag creates an idle drag machine bound to a task list service.
func NewDrag(svc *Service) *Drag {
	return &Drag{svc: svc}
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.state == dragMoving
}

// Moved returns the id of the task being dragged, if any.
func (d *Drag) Moved() (string, bool) {
	if d.state != dragMoving {
		return "", false
	}
	return d.movedID, true
}

// Candidate returns the current drop candidate, if any.
func (d *Drag) Candidate() (string, bool) {
	if d.state != dragMoving || d.candidate == "" {
		return "", false
	}
	return d.candidate, true
}

// Start begins a drag on an incomplete task.
func (d *Drag) Start(id string) error {
	if d.state == dragMoving {
		return ErrDragActive
	}
	task, err := d.svc.Get(id)
	if err != nil {
		return err
	}
	if task.Completed {
		return ErrCompletedTask
	}
	d.state = dragMoving
	d.movedID = id
	d.candidate = ""
	return nil
}

// Over marks a task as the current drop candidate. Hovering a completed
// task clears the candidate instead: dropping there must not reorder.
// This is advisory only and never touches the task list.
func (d *Drag) Over(id string) error {
	if d.state != dragMoving {
		return ErrDragInactive
	}
	task, err := d.svc.Get(id)
	if err != nil {
		return err
	}
	if task.Completed || task.ID == d.movedID {
		d.candidate = ""
		return nil
	}
	d.candidate = id
	return nil
}

// Drop commits the drag. With a valid candidate it reorders the list;
// without one it is a plain cancel. Either way the machine returns to idle.
func (d *Drag) Drop() error {
	if d.state != dragMoving {
		return ErrDragInactive
	}
	movedID, candidate := d.movedID, d.candidate
	d.reset()
	if candidate == "" {
		return nil
	}
	return d.svc.Reorder(movedID, candidate)
}

// Cancel abandons the drag without mutating the list.
func (d *Drag) Cancel() {
	d.reset()
}

func (d *Drag) reset() {
	d.state = dragIdle
	d.movedID = ""
	d.candidate = ""
}
