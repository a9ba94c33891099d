package host

import "sync"

// Key identifies a physical key independent of the windowing backend.
// Backends translate their own codes through a static table; anything
// without a mapping arrives as KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeyNum0
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9

	KeyBackslash
	KeyCloseBracket
	KeyComma
	KeyEqual
	KeyHyphen
	KeyNonUSBackslash
	KeyNonUSPound
	KeyOpenBracket
	KeyPeriod
	KeyQuote
	KeySemicolon
	KeySeparator
	KeySlash
	KeySpace

	KeyCapsLock
	KeyLeftAlt
	KeyLeftControl
	KeyLeftMeta
	KeyLeftShift
	KeyLockingCapsLock
	KeyLockingNumLock
	KeyLockingScrollLock
	KeyRightAlt
	KeyRightControl
	KeyRightMeta
	KeyRightShift
	KeyScrollLock

	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyDeleteForward
	KeyBackspace
	KeyEscape
	KeyInsert
	KeyEnter
	KeyTab
)

// Modifiers is a bitmask of modifier keys held during an event.
type Modifiers uint8

const (
	ModCapsLock Modifiers = 1 << iota
	ModShift
	ModControl
	ModAlt
	ModMeta
	ModNumPad
	ModHelp
	ModFunction
)

// EventKind discriminates Event payloads.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouseMove
)

// Event is one normalized input event. Key events carry the key, the
// full modifier mask at the time of the event, and press/repeat state.
// Mouse events carry relative motion.
type Event struct {
	Kind    EventKind
	Key     Key
	Mods    Modifiers
	Pressed bool
	Repeat  bool
	DX, DY  float64
}

// modifierKeys maps modifier bits to the key reported when a level
// change is synthesized into a press or release. Bits without a key
// identity (numeric pad, help, function) update the mask but emit no
// event.
var modifierKeys = []struct {
	bit Modifiers
	key Key
}{
	{ModCapsLock, KeyCapsLock},
	{ModShift, KeyLeftShift},
	{ModControl, KeyLeftControl},
	{ModAlt, KeyLeftAlt},
	{ModMeta, KeyLeftMeta},
}

// InputQueue buffers raw input reports from the windowing backend and
// hands them to the frame driver as discrete events in arrival order.
// Modifier-level reports are compared bit by bit against the previously
// observed mask, and each changed bit becomes its own synthetic press
// or release. Safe for any non-real-time goroutine; the audio side
// never touches it.
type InputQueue struct {
	mu       sync.Mutex
	pending  []Event
	prevMods Modifiers
}

// Key buffers a discrete key event reported by the backend.
func (q *InputQueue) Key(key Key, mods Modifiers, pressed, repeat bool) {
	q.mu.Lock()
	q.pending = append(q.pending, Event{
		Kind:    EventKey,
		Key:     key,
		Mods:    mods,
		Pressed: pressed,
		Repeat:  repeat,
	})
	q.mu.Unlock()
}

// SetModifiers reports the current modifier level state. Every bit that
// differs from the previous report is synthesized into a press (bit now
// set) or release (bit now clear) carrying the new full mask.
func (q *InputQueue) SetModifiers(mods Modifiers) {
	q.mu.Lock()
	defer q.mu.Unlock()

	changed := q.prevMods ^ mods
	q.prevMods = mods
	if changed == 0 {
		return
	}

	for _, m := range modifierKeys {
		if changed&m.bit == 0 {
			continue
		}
		q.pending = append(q.pending, Event{
			Kind:    EventKey,
			Key:     m.key,
			Mods:    mods,
			Pressed: mods&m.bit != 0,
		})
	}
}

// MouseMove buffers relative pointer motion.
func (q *InputQueue) MouseMove(dx, dy float64) {
	q.mu.Lock()
	q.pending = append(q.pending, Event{
		Kind: EventMouseMove,
		DX:   dx,
		DY:   dy,
	})
	q.mu.Unlock()
}

// Modifiers returns the most recently reported modifier mask.
func (q *InputQueue) Modifiers() Modifiers {
	q.mu.Lock()
	m := q.prevMods
	q.mu.Unlock()
	return m
}

// Drain applies every buffered event in order and clears the queue.
// Events are applied outside the lock so handlers may report new input;
// the backing storage is kept for reuse when possible.
func (q *InputQueue) Drain(apply func(Event)) {
	q.mu.Lock()
	events := q.pending
	q.pending = nil
	q.mu.Unlock()

	for i := range events {
		apply(events[i])
	}

	q.mu.Lock()
	if q.pending == nil {
		q.pending = events[:0]
	}
	q.mu.Unlock()
}
