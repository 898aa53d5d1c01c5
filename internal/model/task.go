package model

import (
	"errors"
	"strings"
)

var (
	ErrEmptyText = errors.New("model: task text is required")
	ErrEmptyName = errors.New("model: profile name is required")
	ErrEmptyID   = errors.New("model: profile id is required")
)

type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	return nil
}

// Profile is a named task list. Tasks keep insertion order.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

func (p Profile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyID
	}
	for _, t := range p.Tasks {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a copy whose task slice does not alias p's.
func (p Profile) Clone() Profile {
	out := p
	out.Tasks = CloneTasks(p.Tasks)
	return out
}

func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

const (
	DefaultProfileID   = "default"
	DefaultProfileName = "Default List"
)

func DefaultProfiles() []Profile {
	return []Profile{{ID: DefaultProfileID, Name: DefaultProfileName, Tasks: []Task{}}}
}

func (p Profile) CompletedCount() int {
	n := 0
	for _, t := range p.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
