package progress

import "sync"

// ProgressObserver receives progress notifications.
type ProgressObserver interface {
	Update(calcIndex int, progress float64)
}

// ProgressSubject fans progress notifications out to registered observers
// in registration order. It is safe for concurrent use.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds observer. Nil observers are ignored.
func (s *ProgressSubject) Register(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes the first registration of observer, if any.
func (s *ProgressSubject) Unregister(observer ProgressObserver) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// Notify delivers a sample to every observer synchronously.
func (s *ProgressSubject) Notify(calcIndex int, progress float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.Update(calcIndex, progress)
	}
}

func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// AsCallback returns a ProgressCallback that notifies observers on behalf of
// calculator calcIndex.
func (s *ProgressSubject) AsCallback(calcIndex int) ProgressCallback {
	return func(progress float64) {
		s.Notify(calcIndex, progress)
	}
}
