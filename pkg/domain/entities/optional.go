package entities

// Optional holds a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	valid bool
}

// Some wraps a present value
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, valid: true}
}

// None returns an absent value
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the wrapped value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.valid
}

// Valid reports whether a value is present
func (o Optional[T]) Valid() bool {
	return o.valid
}

// OrElse returns the wrapped value, or def when absent
func (o Optional[T]) OrElse(def T) T {
	if !o.valid {
		return def
	}
	return o.value
}

// Map applies f to a present value. Absent stays absent.
func Map[T, U any](o Optional[T], f func(T) U) Optional[U] {
	if !o.valid {
		return None[U]()
	}
	return Some(f(o.value))
}
