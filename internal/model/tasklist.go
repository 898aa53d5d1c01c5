package model

import "strings"

// AddTask appends a new open task. Blank text leaves the list unchanged.
// The new id is above every id already in tasks.
func AddTask(tasks []Task, text string, ids *IDSource) ([]Task, Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return tasks, Task{}, false
	}
	task := Task{ID: ids.NextAfter(maxTaskID(tasks)), Text: text}
	out := make([]Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	out = append(out, task)
	return out, task, true
}

func ToggleTask(tasks []Task, id int64) ([]Task, bool) {
	idx := indexOfTask(tasks, id)
	if idx < 0 {
		return tasks, false
	}
	out := CloneTasks(tasks)
	out[idx].Completed = !out[idx].Completed
	return out, true
}

func DeleteTask(tasks []Task, id int64) ([]Task, bool) {
	idx := indexOfTask(tasks, id)
	if idx < 0 {
		return tasks, false
	}
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:idx]...)
	out = append(out, tasks[idx+1:]...)
	return out, true
}

func ClearTasks() []Task {
	return []Task{}
}

func FindTask(tasks []Task, id int64) (Task, bool) {
	idx := indexOfTask(tasks, id)
	if idx < 0 {
		return Task{}, false
	}
	return tasks[idx], true
}

func indexOfTask(tasks []Task, id int64) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func maxTaskID(tasks []Task) int64 {
	var max int64
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}
