// Package tutorial tracks one-shot tutorial popups and steps through their
// pages.
package tutorial

// Kind names a tutorial sequence.
type Kind int

const (
	UI Kind = iota
	Thought
	Rhythm
	EmotionNote
)

func (k Kind) String() string {
	switch k {
	case UI:
		return "ui"
	case Thought:
		return "thought"
	case Rhythm:
		return "rhythm"
	case EmotionNote:
		return "emotion-note"
	default:
		return "unknown"
	}
}

// DefaultPages returns the built-in tutorial texts.
func DefaultPages() map[Kind][]string {
	return map[Kind][]string{
		UI: {
			"Energy is the bar on the left. It widens your beam and powers your jumps.",
			"The run ends when you go to bed. Try to keep to your schedule.",
		},
		Thought: {
			"Before every jump you may pick a thought.",
			"Thoughts cost energy but can change how you feel or how far you jump.",
		},
		Rhythm: {
			"Notes fly toward you. Press UP as a note reaches the line.",
			"Hits give energy and build your combo. Misses break it.",
		},
		EmotionNote: {
			"Colored notes are emotions: DOWN for anxiety, RIGHT for frustration, LEFT for despair.",
			"Missing an emotion note makes that feeling stronger.",
		},
	}
}

// Manager shows each tutorial at most once per run. While a sequence is
// active the run is paused.
type Manager struct {
	enabled bool
	pages   map[Kind][]string
	shown   map[Kind]bool

	active bool
	kind   Kind
	index  int
}

// New creates a manager. With enabled false no tutorial is ever shown.
func New(enabled bool, pages map[Kind][]string) *Manager {
	if pages == nil {
		pages = DefaultPages()
	}
	return &Manager{
		enabled: enabled,
		pages:   pages,
		shown:   make(map[Kind]bool),
	}
}

// Enabled reports whether tutorials are on.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// Shown reports whether k was already activated this run.
func (m *Manager) Shown(k Kind) bool {
	return m.shown[k]
}

// Activate starts k if tutorials are on and it was not shown yet. It
// reports whether the sequence started.
func (m *Manager) Activate(k Kind) bool {
	if !m.enabled || m.shown[k] || m.active {
		return false
	}
	m.shown[k] = true
	if len(m.pages[k]) == 0 {
		return false
	}
	m.active = true
	m.kind = k
	m.index = 0
	return true
}

// Active reports whether a sequence is on screen.
func (m *Manager) Active() bool {
	return m.active
}

// Page returns the active sequence, the current page text and its
// position.
func (m *Manager) Page() (k Kind, text string, index, total int) {
	if !m.active {
		return 0, "", 0, 0
	}
	p := m.pages[m.kind]
	return m.kind, p[m.index], m.index, len(p)
}

// Dismiss moves to the next page, closing the sequence after the last.
func (m *Manager) Dismiss() {
	if !m.active {
		return
	}
	m.index++
	if m.index >= len(m.pages[m.kind]) {
		m.active = false
		m.index = 0
	}
}

// Back returns to the previous page.
func (m *Manager) Back() {
	if m.active && m.index > 0 {
		m.index--
	}
}

// Skip closes the active sequence and turns tutorials off.
func (m *Manager) Skip() {
	m.active = false
	m.index = 0
	m.enabled = false
}

// SuppressEmotionNotes keeps the first activities to energy notes until
// emotion notes have been explained.
func (m *Manager) SuppressEmotionNotes() bool {
	return m.enabled && !m.shown[EmotionNote]
}

// NoteVisible starts the rhythm tutorial.
func (m *Manager) NoteVisible() {
	m.Activate(Rhythm)
}

// EmotionNoteVisible starts the emotion note tutorial.
func (m *Manager) EmotionNoteVisible() {
	m.Activate(EmotionNote)
}
