package task

// Collection is an ordered, mutable task list with change observers.
// It is the single source of truth for the view layer and must only be
// touched from the goroutine that owns it; observers are notified
// synchronously, before the mutating call returns.
type Collection struct {
	tasks     []Task
	nextSub   int
	observers map[int]func()
}

func NewCollection(tasks []Task) *Collection {
	return &Collection{
		tasks:     tasks,
		observers: make(map[int]func()),
	}
}

// Subscribe registers fn to run after every mutation. The returned func
// removes the subscription.
func (c *Collection) Subscribe(fn func()) func() {
	id := c.nextSub
	c.nextSub++
	c.observers[id] = fn
	return func() { delete(c.observers, id) }
}

func (c *Collection) notify() {
	for _, fn := range c.observers {
		fn()
	}
}

// Tasks returns a copy of the collection in order. Mutating the returned
// slice does not affect the collection.
func (c *Collection) Tasks() []Task {
	out := make([]Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *Collection) Len() int {
	return len(c.tasks)
}

// Get returns the task with the given ID.
func (c *Collection) Get(id int) (Task, bool) {
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// NextID returns an identifier not used by any current task.
func (c *Collection) NextID() int {
	max := 0
	for _, t := range c.tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// Append adds t at the end of the collection.
func (c *Collection) Append(t Task) {
	c.tasks = append(c.tasks, t)
	c.notify()
}

// Update replaces the task whose ID matches t.ID, keeping its position.
func (c *Collection) Update(t Task) bool {
	for i := range c.tasks {
		if c.tasks[i].ID == t.ID {
			c.tasks[i] = t
			c.notify()
			return true
		}
	}
	return false
}

// Remove deletes the task with the given ID, preserving order.
func (c *Collection) Remove(id int) bool {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			c.notify()
			return true
		}
	}
	return false
}

// RemoveIf deletes every task matching pred and returns how many were
// removed. Observers are notified once, and only when something changed.
func (c *Collection) RemoveIf(pred func(Task) bool) int {
	kept := c.tasks[:0]
	removed := 0
	for _, t := range c.tasks {
		if pred(t) {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	c.tasks = kept
	if removed > 0 {
		c.notify()
	}
	return removed
}
