// Package undo keeps the linear history of scene changes.
package undo

import "github.com/example/kidspaint/internal/scene"

// Command is a reversible scene change. Commands hold plain values only, so
// undoing never depends on live references.
type Command interface {
	Apply(s *scene.Scene)
	Revert(s *scene.Scene)
	Label() string
}

// Coordinator owns the undo and redo stacks. It has no depth limit.
type Coordinator struct {
	undo []Command
	redo []Command
}

// New returns an empty history.
func New() *Coordinator { return &Coordinator{} }

// Do applies cmd to s and records it.
func (c *Coordinator) Do(s *scene.Scene, cmd Command) {
	cmd.Apply(s)
	c.Record(cmd)
}

// Record pushes a command whose effect is already in the scene, such as a
// sticker transform that was previewed live.
func (c *Coordinator) Record(cmd Command) {
	c.undo = append(c.undo, cmd)
	c.redo = c.redo[:0]
}

// Undo reverts the newest command. It reports false when history is empty.
func (c *Coordinator) Undo(s *scene.Scene) bool {
	n := len(c.undo)
	if n == 0 {
		return false
	}
	cmd := c.undo[n-1]
	c.undo = c.undo[:n-1]
	cmd.Revert(s)
	c.redo = append(c.redo, cmd)
	return true
}

// Redo reapplies the most recently undone command.
func (c *Coordinator) Redo(s *scene.Scene) bool {
	n := len(c.redo)
	if n == 0 {
		return false
	}
	cmd := c.redo[n-1]
	c.redo = c.redo[:n-1]
	cmd.Apply(s)
	c.undo = append(c.undo, cmd)
	return true
}

func (c *Coordinator) CanUndo() bool { return len(c.undo) > 0 }
func (c *Coordinator) CanRedo() bool { return len(c.redo) > 0 }

// UndoLabel names the step Undo would revert, or "".
func (c *Coordinator) UndoLabel() string {
	if len(c.undo) == 0 {
		return ""
	}
	return c.undo[len(c.undo)-1].Label()
}

// RedoLabel names the step Redo would apply, or "".
func (c *Coordinator) RedoLabel() string {
	if len(c.redo) == 0 {
		return ""
	}
	return c.redo[len(c.redo)-1].Label()
}

// Reset forgets all history.
func (c *Coordinator) Reset() {
	c.undo = nil
	c.redo = nil
}
