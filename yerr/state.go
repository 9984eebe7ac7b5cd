package yerr

import (
	"os"
	"sync"
)

// State is the per-Context, per-goroutine error buffer described in
// spec.md §4.7 and §5 ("Error state is thread-local: each thread observes
// its own last-error/error-list view"). Go has no true thread-local
// storage, so a Context hands callers an opaque Token at entry (see the
// context package's Attach/Detach) and State is keyed by that Token
// instead of by OS thread, which gives the same observable guarantee for
// the goroutine that called Attach.
type State struct {
	mu       sync.Mutex
	level    Level
	opts     Option
	override map[Token]Option
	debug    DebugGroup
	callback Callback

	chains map[Token]*chain
}

// Token identifies one attached caller (conventionally one goroutine).
type Token uint64

type chain struct {
	first, last *Item
	len         int
}

// NewState returns a State with OptStoreAll enabled and level Warning,
// matching the teacher's default of "report everything, keep going".
func NewState() *State {
	return &State{
		level:    LWarning,
		opts:     OptStoreAll | OptLog,
		override: map[Token]Option{},
		chains:   map[Token]*chain{},
	}
}

// SetLevel sets the process-wide minimum level that is logged/stored.
func (s *State) SetLevel(l Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = l
}

// SetOptions sets the process-wide option bitfield.
func (s *State) SetOptions(o Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = o
}

// SetThreadOptions overrides the option bitfield for tok only, leaving
// other callers' view of State untouched.
func (s *State) SetThreadOptions(tok Token, o Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override[tok] = o
}

// ClearThreadOptions removes tok's override, reverting it to the
// process-wide option bitfield.
func (s *State) ClearThreadOptions(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.override, tok)
}

// SetCallback installs the log sink. With a nil callback, Log writes
// OptLog messages to stderr.
func (s *State) SetCallback(cb Callback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callback = cb
}

// SetDebugGroups stores the debug-group bitfield. Log does not consult
// it, and no build tag gates it.
func (s *State) SetDebugGroups(g DebugGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debug = g
}

func (s *State) optsFor(tok Token) Option {
	if o, ok := s.override[tok]; ok {
		return o
	}
	return s.opts
}

// Log records one error/warning/verbose/debug event for tok, appending it
// to tok's chain per the active STORE/STORE_LAST option and invoking the
// callback if LOG is set.
func (s *State) Log(tok Token, it Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if it.Level > s.level {
		return
	}

	opts := s.optsFor(tok)
	if opts&OptStoreLast != 0 {
		s.chains[tok] = &chain{}
		s.appendLocked(tok, it)
	} else if opts&OptStoreAll != 0 {
		s.appendLocked(tok, it)
	}

	if opts&OptLog != 0 {
		if s.callback != nil {
			s.callback(it.Level, it.Code, it.Message)
		} else {
			it.Fprint(os.Stderr)
		}
	}
}

// appendLocked appends it to tok's chain using the circular-tail trick:
// first.prev always points at last, so both ends are O(1) reachable
// without a separate tail field on the State.
func (s *State) appendLocked(tok Token, it Item) {
	c := s.chains[tok]
	if c == nil {
		c = &chain{}
		s.chains[tok] = c
	}
	node := &Item{
		Level: it.Level, Code: it.Code, ValidationCode: it.ValidationCode,
		Message: it.Message, Path: it.Path, AppTag: it.AppTag,
	}
	if c.first == nil {
		node.prev = node
		c.first = node
		c.last = node
	} else {
		c.last.next = node
		node.prev = c.last
		c.last = node
		c.first.prev = c.last
	}
	c.len++
}

// LastMessage returns the most recent message recorded for tok, or "".
func (s *State) LastMessage(tok Token) string {
	it := s.last(tok)
	if it == nil {
		return ""
	}
	return it.Message
}

// LastPath returns the most recent path recorded for tok.
func (s *State) LastPath(tok Token) string {
	it := s.last(tok)
	if it == nil {
		return ""
	}
	return it.Path
}

// LastCode returns the most recent Code recorded for tok.
func (s *State) LastCode(tok Token) Code {
	it := s.last(tok)
	if it == nil {
		return Success
	}
	return it.Code
}

// LastValidationCode returns the most recent ValidationCode for tok.
func (s *State) LastValidationCode(tok Token) ValidationCode {
	it := s.last(tok)
	if it == nil {
		return VNone
	}
	return it.ValidationCode
}

// LastAppTag returns the most recent app-tag for tok.
func (s *State) LastAppTag(tok Token) string {
	it := s.last(tok)
	if it == nil {
		return ""
	}
	return it.AppTag
}

func (s *State) last(tok Token) *Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.chains[tok]
	if c == nil {
		return nil
	}
	return c.last
}

// All returns the full chain for tok, oldest first.
func (s *State) All(tok Token) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.chains[tok]
	if c == nil || c.first == nil {
		return nil
	}
	var out []Item
	for it := c.first; it != nil; it = it.next {
		out = append(out, *it)
	}
	return out
}

// Clear drops the full chain for tok.
func (s *State) Clear(tok Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chains, tok)
}

// Len reports the chain length for tok, used to check the STORE_LAST <= 1
// invariant (spec.md §8 property 7) in tests.
func (s *State) Len(tok Token) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.chains[tok]
	if c == nil {
		return 0
	}
	return c.len
}
