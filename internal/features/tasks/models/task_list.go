package tasks_models

import (
	"encoding/json"
	"iter"
)

// TaskList is a read-only ordered sequence of tasks. It holds its own copies,
// and every accessor hands out copies, so callers cannot change its contents.
type TaskList struct {
	tasks []Task
}

func NewTaskList(tasks []*Task) TaskList {
	copied := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		copied = append(copied, cloneTask(*task))
	}

	return TaskList{tasks: copied}
}

func (l TaskList) Len() int {
	return len(l.tasks)
}

func (l TaskList) At(i int) Task {
	return cloneTask(l.tasks[i])
}

func (l TaskList) All() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, task := range l.tasks {
			if !yield(cloneTask(task)) {
				return
			}
		}
	}
}

func (l TaskList) Slice() []Task {
	tasks := make([]Task, len(l.tasks))
	for i, task := range l.tasks {
		tasks[i] = cloneTask(task)
	}

	return tasks
}

// Filter returns the tasks matching keep, in their original order.
func (l TaskList) Filter(keep func(Task) bool) TaskList {
	matched := make([]Task, 0)
	for _, task := range l.tasks {
		if keep(task) {
			matched = append(matched, cloneTask(task))
		}
	}

	return TaskList{tasks: matched}
}

func (l TaskList) MarshalJSON() ([]byte, error) {
	if l.tasks == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(l.tasks)
}

// pointer fields are copied so no two tasks share them
func cloneTask(task Task) Task {
	if task.DueDate != nil {
		dueDate := *task.DueDate
		task.DueDate = &dueDate
	}
	if task.AssigneeID != nil {
		assigneeID := *task.AssigneeID
		task.AssigneeID = &assigneeID
	}
	if task.ReporterID != nil {
		reporterID := *task.ReporterID
		task.ReporterID = &reporterID
	}

	return task
}
