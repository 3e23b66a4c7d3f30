package core

import "testing"

func TestTaskListDispatchOrder(t *testing.T) {
	var tl TaskList
	var order []string
	mk := func(name string, wake uint64) *Task {
		return &Task{WakeAt: wake, Run: func(*Task) uint8 {
			order = append(order, name)
			return TaskDone
		}}
	}

	tl.Schedule(mk("c", 300))
	tl.Schedule(mk("a", 100))
	tl.Schedule(mk("b", 200))

	tl.Dispatch(99)
	if len(order) != 0 {
		t.Fatalf("nothing was due at 99, ran %v", order)
	}

	tl.Dispatch(100)
	tl.Dispatch(250)
	tl.Dispatch(1000)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("expected %v, got %v", want, order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], order[i])
		}
	}
	if !tl.Empty() {
		t.Error("expected empty list after all tasks ran")
	}
}

func TestTaskListSameWakeKeepsScheduleOrder(t *testing.T) {
	var tl TaskList
	var order []string
	mk := func(name string) *Task {
		return &Task{WakeAt: 50, Run: func(*Task) uint8 {
			order = append(order, name)
			return TaskDone
		}}
	}

	tl.Schedule(mk("x"))
	tl.Schedule(mk("y"))
	tl.Schedule(mk("z"))
	tl.Dispatch(50)

	if len(order) != 3 || order[0] != "x" || order[1] != "y" || order[2] != "z" {
		t.Errorf("expected schedule order preserved, got %v", order)
	}
}

func TestTaskListReschedule(t *testing.T) {
	var tl TaskList
	count := 0
	task := &Task{WakeAt: 10, Run: func(task *Task) uint8 {
		count++
		if count == 3 {
			return TaskDone
		}
		task.WakeAt += 10
		return TaskReschedule
	}}
	tl.Schedule(task)

	tl.Dispatch(9)
	if count != 0 {
		t.Fatalf("expected no runs before wake, got %d", count)
	}

	tl.Dispatch(10)
	if count != 1 {
		t.Fatalf("expected 1 run at wake, got %d", count)
	}

	// A single dispatch drains everything that falls due, including the
	// rescheduled runs at 20 and 30.
	tl.Dispatch(30)
	if count != 3 {
		t.Fatalf("expected 3 runs by 30, got %d", count)
	}
	if !tl.Empty() {
		t.Error("expected empty list after the task finished")
	}
}
