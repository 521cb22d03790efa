package reactive

import (
	"fmt"
	"weak"
)

// TaskKind enumerates the closed set of deferred actions.
type TaskKind uint8

const (
	TaskRunEffect TaskKind = iota + 1
	TaskUpdateBinding
	TaskUpdateWidget
	TaskHandleEvent
	TaskUpdateAnimation
)

func (k TaskKind) String() string {
	switch k {
	case TaskRunEffect:
		return "run_effect"
	case TaskUpdateBinding:
		return "update_binding"
	case TaskUpdateWidget:
		return "update_widget"
	case TaskHandleEvent:
		return "handle_event"
	case TaskUpdateAnimation:
		return "update_animation"
	default:
		return fmt.Sprintf("task(%d)", k)
	}
}

// Task is one queued action. Only the fields of its kind are set. Targets that can be
// torn down (effects, bindings, handlers) are held weakly and re-checked on execution.
type Task struct {
	kind TaskKind

	effect weak.Pointer[effectBody]

	binding   weak.Pointer[Binding]
	direction BindingDirection

	handler weak.Pointer[Handler]
	payload any

	widget WidgetID
	update func(Widget)

	window WindowID
	node   NodeID
}

// Kind returns the task's kind.
func (t Task) Kind() TaskKind {
	return t.kind
}

func runEffectTask(body *effectBody) Task {
	return Task{kind: TaskRunEffect, effect: weak.Make(body)}
}

func updateBindingTask(b *Binding, dir BindingDirection) Task {
	return Task{kind: TaskUpdateBinding, binding: weak.Make(b), direction: dir}
}

func updateWidgetTask(widget WidgetID, update func(Widget)) Task {
	return Task{kind: TaskUpdateWidget, widget: widget, update: update}
}

func handleEventTask(h *Handler, payload any) Task {
	return Task{kind: TaskHandleEvent, handler: weak.Make(h), payload: payload}
}

func updateAnimationTask(window WindowID, id NodeID) Task {
	return Task{kind: TaskUpdateAnimation, window: window, node: id}
}

// taskQueue is a FIFO. Tasks pushed while draining run in the same flush.
type taskQueue struct {
	tasks []Task
	head  int
}

func (q *taskQueue) push(t Task) {
	q.tasks = append(q.tasks, t)
}

func (q *taskQueue) pop() (Task, bool) {
	if q.head >= len(q.tasks) {
		return Task{}, false
	}
	t := q.tasks[q.head]
	q.tasks[q.head] = Task{}
	q.head++
	if q.head == len(q.tasks) {
		q.tasks = q.tasks[:0]
		q.head = 0
	}
	return t, true
}

func (q *taskQueue) len() int {
	return len(q.tasks) - q.head
}

// pending lists queued kinds in order, for snapshots.
func (q *taskQueue) pending() []TaskKind {
	out := make([]TaskKind, 0, q.len())
	for _, t := range q.tasks[q.head:] {
		out = append(out, t.kind)
	}
	return out
}
