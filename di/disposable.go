package di

// Disposable is implemented by services that hold resources to release when
// their container goes away.
type Disposable interface {
	Dispose()
}

type disposableFunc struct {
	fn       func()
	disposed bool
}

func (d *disposableFunc) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	d.fn()
}

// ToDisposable turns fn into a Disposable that runs fn at most once.
func ToDisposable(fn func()) Disposable {
	return &disposableFunc{fn: fn}
}

// DisposableStore collects disposables and releases them together.
//
// The zero value is ready to use and logs nothing. DisposableStore is not
// safe for concurrent use.
type DisposableStore struct {
	log      Logger
	items    []Disposable
	disposed bool
}

// NewDisposableStore returns a store that reports misuse to log (nil
// discards it).
func NewDisposableStore(log Logger) *DisposableStore {
	return &DisposableStore{log: log}
}

// Add registers d. It returns ErrSelfRegistration if d is the store itself.
//
// Adding to a store that was already disposed does not dispose d: it is
// dropped with a warning and leaks.
func (s *DisposableStore) Add(d Disposable) error {
	if other, ok := d.(*DisposableStore); ok && other == s {
		return ErrSelfRegistration
	}
	if d == nil {
		return nil
	}
	if s.disposed {
		s.logger().Info("di: adding a disposable to a store that has already been disposed, the disposable is leaked")
		return nil
	}
	s.items = append(s.items, d)
	return nil
}

// Len returns the number of disposables currently held.
func (s *DisposableStore) Len() int { return len(s.items) }

// IsDisposed reports whether Dispose has been called.
func (s *DisposableStore) IsDisposed() bool { return s.disposed }

// Dispose releases every held disposable, last added first, and marks the
// store disposed. Later calls do nothing.
func (s *DisposableStore) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.Clear()
}

// Clear releases every held disposable, last added first, but keeps the
// store usable.
func (s *DisposableStore) Clear() {
	items := s.items
	s.items = nil
	for i := len(items) - 1; i >= 0; i-- {
		items[i].Dispose()
	}
}

func (s *DisposableStore) logger() Logger {
	if s.log == nil {
		return nullLogger{}
	}
	return s.log
}
