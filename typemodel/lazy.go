package typemodel

import "sync/atomic"

// lazy is a write-once memoization cell. Racing first readers may each run
// compute, but exactly one result is published and every reader observes
// it. A failed computation publishes nothing, so the next call retries.
type lazy[T any] struct {
	v atomic.Pointer[T]
}

func (l *lazy[T]) get(compute func() (T, error)) (T, error) {
	if p := l.v.Load(); p != nil {
		return *p, nil
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	l.v.CompareAndSwap(nil, &v)
	return *l.v.Load(), nil
}

// must is get for computations that cannot fail.
func (l *lazy[T]) must(compute func() T) T {
	v, _ := l.get(func() (T, error) { return compute(), nil })
	return v
}

func (l *lazy[T]) done() bool {
	return l.v.Load() != nil
}
