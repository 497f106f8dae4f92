package wizard

// Entry is one navigable point in the wizard history. State holds the
// encoded session snapshot taken when the stage was entered.
type Entry struct {
	Stage    Stage
	Fragment string
	State    string
}

type History interface {
	Push(e Entry)
	Replace(e Entry)
	Back() (Entry, bool)
	Forward() (Entry, bool)
	Current() (Entry, bool)
}

// MemoryHistory is a browser-like history stack. Pushing drops every entry
// after the current one.
type MemoryHistory struct {
	entries []Entry
	index   int
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{index: -1}
}

func (h *MemoryHistory) Push(e Entry) {
	h.entries = append(h.entries[:h.index+1], e)
	h.index = len(h.entries) - 1
}

func (h *MemoryHistory) Replace(e Entry) {
	if h.index < 0 {
		h.Push(e)
		return
	}
	h.entries[h.index] = e
}

func (h *MemoryHistory) Back() (Entry, bool) {
	if h.index <= 0 {
		return Entry{}, false
	}
	h.index--

	return h.entries[h.index], true
}

func (h *MemoryHistory) Forward() (Entry, bool) {
	if h.index >= len(h.entries)-1 {
		return Entry{}, false
	}
	h.index++

	return h.entries[h.index], true
}

func (h *MemoryHistory) Current() (Entry, bool) {
	if h.index < 0 {
		return Entry{}, false
	}

	return h.entries[h.index], true
}

func (h *MemoryHistory) Len() int {
	return len(h.entries)
}
