package store

import "context"

func load[T any](ctx context.Context, s *Store, c *collection[T], kind Kind, fetch func(context.Context) ([]T, error)) Result {
	s.mu.Lock()
	c.loading = true
	s.mu.Unlock()

	items, err := fetch(ctx)

	s.mu.Lock()
	c.loading = false
	if err != nil {
		res := s.fail(kind, "load", err)
		c.err = res.Error
		s.mu.Unlock()
		return res
	}
	if items == nil {
		items = []T{}
	}
	c.items = items
	c.loaded = true
	c.err = ""
	s.mu.Unlock()
	return Result{Success: true}
}

func ensure[T any](ctx context.Context, s *Store, c *collection[T], kind Kind, fetch func(context.Context) ([]T, error)) Result {
	s.mu.RLock()
	loaded := c.loaded
	s.mu.RUnlock()
	if loaded {
		return Result{Success: true}
	}
	return load(ctx, s, c, kind, fetch)
}

// prepend stores a created record at the head of the collection.
func prepend[T any](s *Store, c *collection[T], kind Kind, op string, idOf func(T) int64, call func() (T, error)) Result {
	item, err := call()
	if err != nil {
		return s.fail(kind, op, err)
	}
	s.mu.Lock()
	c.items = append([]T{item}, c.items...)
	s.mu.Unlock()
	return Result{Success: true, ID: idOf(item)}
}

// replace swaps the cached record with the same id for the returned one.
func replace[T any](s *Store, c *collection[T], kind Kind, op string, idOf func(T) int64, call func() (T, error)) Result {
	item, err := call()
	if err != nil {
		return s.fail(kind, op, err)
	}
	id := idOf(item)
	s.mu.Lock()
	next := make([]T, len(c.items))
	for i, cur := range c.items {
		if idOf(cur) == id {
			next[i] = item
		} else {
			next[i] = cur
		}
	}
	c.items = next
	s.mu.Unlock()
	return Result{Success: true, ID: id}
}

// remove drops the record with id after a successful delete.
func remove[T any](s *Store, c *collection[T], kind Kind, id int64, idOf func(T) int64, call func() error) Result {
	if err := call(); err != nil {
		return s.fail(kind, "delete", err)
	}
	s.mu.Lock()
	next := make([]T, 0, len(c.items))
	for _, cur := range c.items {
		if idOf(cur) != id {
			next = append(next, cur)
		}
	}
	c.items = next
	s.mu.Unlock()
	return Result{Success: true, ID: id}
}
