package core

// Task is a housekeeping callback scheduled on the driver loop's microsecond
// clock. Handlers run in poller context, never from interrupts.
type Task struct {
	WakeAt uint64 // uptime in microseconds
	Run    func(*Task) uint8
	next   *Task
}

// Task handler results.
const (
	TaskDone       = 0
	TaskReschedule = 1
)

// TaskList keeps pending tasks ordered by wake time. Scheduling is safe from
// interrupt context; Dispatch belongs to the driver loop.
type TaskList struct {
	head *Task
}

// Schedule inserts t by wake time. Tasks due at the same instant run in
// scheduling order.
func (tl *TaskList) Schedule(t *Task) {
	state := disableInterrupts()
	tl.insert(t)
	restoreInterrupts(state)
}

func (tl *TaskList) insert(t *Task) {
	if tl.head == nil || t.WakeAt < tl.head.WakeAt {
		t.next = tl.head
		tl.head = t
		return
	}

	cur := tl.head
	for cur.next != nil && cur.next.WakeAt <= t.WakeAt {
		cur = cur.next
	}
	t.next = cur.next
	cur.next = t
}

// Dispatch runs every task due at now. The list manipulation is masked but
// handlers run with interrupts live, so they may write to serial. A handler
// returning TaskReschedule must have moved WakeAt forward first.
func (tl *TaskList) Dispatch(now uint64) {
	for {
		state := disableInterrupts()
		t := tl.head
		if t == nil || t.WakeAt > now {
			restoreInterrupts(state)
			return
		}
		tl.head = t.next
		t.next = nil
		restoreInterrupts(state)

		if t.Run(t) == TaskReschedule {
			tl.Schedule(t)
		}
	}
}

// Empty reports whether nothing is scheduled.
func (tl *TaskList) Empty() bool {
	return tl.head == nil
}
