package input

// Handler receives a dispatched event.
type Handler func(Event)

// Subscription identifies one handler registration. The zero value is not
// a valid subscription.
type Subscription struct {
	id     uint64
	action Action
	phase  Phase
}

// Valid reports whether s came from Subscribe.
func (s Subscription) Valid() bool {
	return s.id != 0
}

type subscriptionKey struct {
	action Action
	phase  Phase
}

type handlerEntry struct {
	id uint64
	fn Handler
}

// ActionMap queues device events and dispatches them to subscribers once per
// tick. It is not safe for concurrent use; devices and the tick loop share
// the game thread.
type ActionMap struct {
	enabled  bool
	queue    []Event
	handlers map[subscriptionKey][]handlerEntry
	nextID   uint64
}

func NewActionMap() *ActionMap {
	return &ActionMap{
		handlers: make(map[subscriptionKey][]handlerEntry),
	}
}

// Enable starts accepting events.
func (m *ActionMap) Enable() {
	m.enabled = true
}

// Disable stops accepting events and drops anything still queued.
func (m *ActionMap) Disable() {
	m.enabled = false
	m.queue = m.queue[:0]
}

func (m *ActionMap) Enabled() bool {
	return m.enabled
}

// Subscribe registers fn for one action edge.
func (m *ActionMap) Subscribe(action Action, phase Phase, fn Handler) Subscription {
	if fn == nil {
		return Subscription{}
	}
	m.nextID++
	key := subscriptionKey{action: action, phase: phase}
	m.handlers[key] = append(m.handlers[key], handlerEntry{id: m.nextID, fn: fn})
	return Subscription{id: m.nextID, action: action, phase: phase}
}

// Unsubscribe removes a registration. Returns false if it was not present.
func (m *ActionMap) Unsubscribe(s Subscription) bool {
	key := subscriptionKey{action: s.action, phase: s.phase}
	entries := m.handlers[key]
	for i, e := range entries {
		if e.id == s.id {
			entries = append(entries[:i], entries[i+1:]...)
			if len(entries) == 0 {
				delete(m.handlers, key)
			} else {
				m.handlers[key] = entries
			}
			return true
		}
	}
	return false
}

// SubscriptionCount returns the number of live registrations.
func (m *ActionMap) SubscriptionCount() int {
	n := 0
	for _, entries := range m.handlers {
		n += len(entries)
	}
	return n
}

// Push queues an event for the next Flush. Ignored while disabled.
func (m *ActionMap) Push(e Event) {
	if !m.enabled {
		return
	}
	m.queue = append(m.queue, e)
}

// Pending returns the number of queued events.
func (m *ActionMap) Pending() int {
	return len(m.queue)
}

// Flush dispatches queued events in order. Events pushed by handlers during
// the flush are held for the next one.
func (m *ActionMap) Flush() int {
	if len(m.queue) == 0 {
		return 0
	}
	batch := m.queue
	m.queue = nil
	for _, e := range batch {
		key := subscriptionKey{action: e.Action, phase: e.Phase}
		// copy so handlers may unsubscribe while being called
		entries := append([]handlerEntry(nil), m.handlers[key]...)
		for _, h := range entries {
			h.fn(e)
		}
	}
	return len(batch)
}
