package intake

import (
	"sync"
)

// Listener receives every batch a slot admits
type Listener func(files []File)

// Slot validates and accumulates candidate files for one upload point
type Slot struct {
	name          string
	title         string
	description   string
	acceptedTypes []string
	accepted      map[string]bool
	maxCount      int
	listener      Listener

	mu           sync.RWMutex
	files        []File
	errorMessage string
}

// SlotOption configures a Slot
type SlotOption func(*Slot)

// WithListener registers the callback invoked with each admitted batch
func WithListener(listener Listener) SlotOption {
	return func(s *Slot) {
		s.listener = listener
	}
}

// WithLabels sets the title and description shown for the slot
func WithLabels(title, description string) SlotOption {
	return func(s *Slot) {
		s.title = title
		s.description = description
	}
}

// NewSlot creates an empty slot accepting the given media types
func NewSlot(name string, acceptedTypes []string, maxCount int, opts ...SlotOption) *Slot {
	s := &Slot{
		name:          name,
		title:         name,
		acceptedTypes: append([]string(nil), acceptedTypes...),
		accepted:      make(map[string]bool, len(acceptedTypes)),
		maxCount:      maxCount,
	}
	for _, t := range acceptedTypes {
		s.accepted[t] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check reports whether the batch would be admitted without mutating the slot
func (s *Slot) Check(candidates []File) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.check(candidates)
}

func (s *Slot) check(candidates []File) error {
	var rejected []string
	for _, f := range candidates {
		if !s.accepted[f.MediaType] {
			rejected = append(rejected, f.Name)
		}
	}
	if len(rejected) > 0 {
		return newMediaTypeError(s.name, s.acceptedTypes, rejected)
	}
	if len(s.files)+len(candidates) > s.maxCount {
		return newCapacityError(s.name, s.maxCount)
	}
	return nil
}

// Submit admits the whole batch or none of it. A rejection is recorded as the
// slot's error message; an admission clears it and notifies the listener.
func (s *Slot) Submit(candidates []File) {
	s.mu.Lock()
	if err := s.check(candidates); err != nil {
		if ve, ok := err.(*ValidationError); ok {
			s.errorMessage = ve.Message
		} else {
			s.errorMessage = err.Error()
		}
		s.mu.Unlock()
		return
	}
	if len(candidates) == 0 {
		s.mu.Unlock()
		return
	}

	s.files = append(s.files, candidates...)
	s.errorMessage = ""
	batch := append([]File(nil), candidates...)
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		listener(batch)
	}
}

// Remove drops the first file with the given name. Unknown names are ignored.
func (s *Slot) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.files {
		if f.Name == name {
			s.files = append(s.files[:i:i], s.files[i+1:]...)
			return
		}
	}
}

// Clear drops every admitted file and the last error
func (s *Slot) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = nil
	s.errorMessage = ""
}

// Files returns a copy of the admitted files in arrival order
func (s *Slot) Files() []File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]File(nil), s.files...)
}

// First returns the earliest admitted file
func (s *Slot) First() (File, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.files) == 0 {
		return File{}, false
	}
	return s.files[0], true
}

// Len returns the number of admitted files
func (s *Slot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Error returns the message of the last rejected batch, or "" after a successful drop
func (s *Slot) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errorMessage
}

// Name returns the slot identifier
func (s *Slot) Name() string { return s.name }

// Title returns the display title
func (s *Slot) Title() string { return s.title }

// Description returns the display hint
func (s *Slot) Description() string { return s.description }

// MaxCount returns the slot capacity
func (s *Slot) MaxCount() int { return s.maxCount }

// AcceptedTypes returns the accepted media types
func (s *Slot) AcceptedTypes() []string {
	return append([]string(nil), s.acceptedTypes...)
}
