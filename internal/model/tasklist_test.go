package model

import (
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	at := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestAddTaskIgnoresBlankText(t *testing.T) {
	ids := NewIDSource()
	tasks := []Task{}
	for _, in := range []string{"", "   ", "\t\n"} {
		var changed bool
		tasks, _, changed = AddTask(tasks, in, ids)
		if changed {
			t.Fatalf("expected no change for %q", in)
		}
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d tasks", len(tasks))
	}
}

func TestAddTaskTrimsAndAppends(t *testing.T) {
	ids := NewIDSource()
	tasks, first, _ := AddTask(nil, "  buy milk  ", ids)
	tasks, second, _ := AddTask(tasks, "walk dog", ids)
	if len(tasks) != 2 || tasks[0].Text != "buy milk" || tasks[1].Text != "walk dog" {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	if first.Completed || second.Completed {
		t.Fatal("new tasks must start open")
	}
	if second.ID <= first.ID {
		t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
	}
}

func TestIDSourceSameMillisecondNeverCollides(t *testing.T) {
	ids := NewIDSourceAt(fixedClock())
	seen := make(map[int64]bool)
	var prev int64
	for i := 0; i < 100; i++ {
		id := ids.Next()
		if seen[id] || id <= prev {
			t.Fatalf("id %d not unique and increasing (prev %d)", id, prev)
		}
		seen[id] = true
		prev = id
	}
}

func TestAddTaskStaysAboveExistingIDs(t *testing.T) {
	ids := NewIDSourceAt(fixedClock())
	existing := []Task{{ID: 1 << 60, Text: "from the future"}}
	tasks, added, _ := AddTask(existing, "next", ids)
	if added.ID <= existing[0].ID {
		t.Fatalf("expected id above %d, got %d", existing[0].ID, added.ID)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
}

func TestToggleDeleteAndClear(t *testing.T) {
	ids := NewIDSource()
	var tasks []Task
	var a, b, c Task
	tasks, a, _ = AddTask(tasks, "A", ids)
	tasks, b, _ = AddTask(tasks, "B", ids)
	tasks, c, _ = AddTask(tasks, "C", ids)

	original := CloneTasks(tasks)
	toggled, changed := ToggleTask(tasks, b.ID)
	if !changed || !toggled[1].Completed {
		t.Fatalf("expected B completed: %+v", toggled)
	}
	if tasks[1].Completed {
		t.Fatal("toggle must not modify its input")
	}
	toggled, _ = ToggleTask(toggled, b.ID)
	if toggled[1].Completed {
		t.Fatal("second toggle should reopen B")
	}

	if _, changed := ToggleTask(tasks, 999); changed {
		t.Fatal("toggle of unknown id must be a no-op")
	}
	if _, changed := DeleteTask(tasks, 999); changed {
		t.Fatal("delete of unknown id must be a no-op")
	}

	remaining, changed := DeleteTask(tasks, b.ID)
	if !changed || len(remaining) != 2 || remaining[0].ID != a.ID || remaining[1].ID != c.ID {
		t.Fatalf("unexpected list after delete: %+v", remaining)
	}
	for i := range original {
		if tasks[i] != original[i] {
			t.Fatal("delete must not modify its input")
		}
	}

	if cleared := ClearTasks(); cleared == nil || len(cleared) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", cleared)
	}
}

func TestRandomSequencePreservesOrderAndToggles(t *testing.T) {
	ids := NewIDSourceAt(fixedClock())
	var tasks []Task
	type expect struct {
		text      string
		completed bool
	}
	want := map[int64]*expect{}
	var order []int64

	for i := 0; i < 20; i++ {
		var task Task
		tasks, task, _ = AddTask(tasks, string(rune('a'+i)), ids)
		want[task.ID] = &expect{text: task.Text}
		order = append(order, task.ID)
	}
	for i, id := range order {
		switch i % 4 {
		case 0:
			tasks, _ = DeleteTask(tasks, id)
			delete(want, id)
		case 1:
			tasks, _ = ToggleTask(tasks, id)
			want[id].completed = true
		case 2:
			tasks, _ = ToggleTask(tasks, id)
			tasks, _ = ToggleTask(tasks, id)
		}
	}

	if len(tasks) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(tasks))
	}
	pos := 0
	for _, id := range order {
		w, ok := want[id]
		if !ok {
			continue
		}
		got := tasks[pos]
		if got.ID != id || got.Text != w.text || got.Completed != w.completed {
			t.Fatalf("position %d: got %+v, want id=%d %+v", pos, got, id, *w)
		}
		pos++
	}
}
