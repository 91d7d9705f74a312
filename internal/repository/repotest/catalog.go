package repotest

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/jwalitptl/hospital-admin/internal/model"
	"github.com/jwalitptl/hospital-admin/internal/repository"
)

// Catalog is an in-memory CatalogRepository. T must embed model.Base;
// archivable T must also embed model.Archivable.
type Catalog[T any] struct {
	mu       sync.Mutex
	rows     map[int64]T
	active   map[int64]bool
	nextID   int64
	failures map[string]error

	// Unique, when set, returns the value that must be unique per record.
	Unique func(T) string
	// Lists counts List calls so tests can observe caching.
	Lists int
}

func NewCatalog[T any]() *Catalog[T] {
	return &Catalog[T]{
		rows:     make(map[int64]T),
		active:   make(map[int64]bool),
		failures: make(map[string]error),
	}
}

func (c *Catalog[T]) FailOn(op string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[op] = err
}

func (c *Catalog[T]) List(_ context.Context, filter model.ListFilter) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Lists++
	if err := c.failures["list"]; err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(c.rows))
	for id := range c.rows {
		if !filter.IncludeArchived && !c.active[id] {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.withActive(id))
	}
	return out, nil
}

func (c *Catalog[T]) Get(_ context.Context, id int64) (*T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rows[id]; !ok {
		return nil, fmt.Errorf("get: %w", repository.ErrNotFound)
	}
	rec := c.withActive(id)
	return &rec, nil
}

func (c *Catalog[T]) Create(_ context.Context, rec *T) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failures["insert"]; err != nil {
		return 0, err
	}
	if err := c.checkUnique(0, *rec); err != nil {
		return 0, err
	}

	c.nextID++
	any(rec).(model.Record).SetID(c.nextID)
	c.rows[c.nextID] = *rec
	c.active[c.nextID] = true
	return c.nextID, nil
}

func (c *Catalog[T]) Update(_ context.Context, id int64, rec *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rows[id]; !ok {
		return fmt.Errorf("update: %w", repository.ErrNotFound)
	}
	if err := c.checkUnique(id, *rec); err != nil {
		return err
	}
	any(rec).(model.Record).SetID(id)
	c.rows[id] = *rec
	return nil
}

func (c *Catalog[T]) Delete(_ context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failures["delete"]; err != nil {
		return err
	}

	if _, ok := c.rows[id]; !ok {
		return fmt.Errorf("delete: %w", repository.ErrNotFound)
	}
	delete(c.rows, id)
	delete(c.active, id)
	return nil
}

func (c *Catalog[T]) SetActive(_ context.Context, id int64, active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rows[id]; !ok {
		return fmt.Errorf("archive: %w", repository.ErrNotFound)
	}
	c.active[id] = active
	return nil
}

func (c *Catalog[T]) checkUnique(id int64, rec T) error {
	if c.Unique == nil {
		return nil
	}
	key := c.Unique(rec)
	for otherID, other := range c.rows {
		if otherID != id && c.Unique(other) == key {
			return fmt.Errorf("unique %q: %w", key, repository.ErrDuplicate)
		}
	}
	return nil
}

// withActive copies the archive flag into records that embed model.Archivable.
func (c *Catalog[T]) withActive(id int64) T {
	rec := c.rows[id]
	v := reflect.ValueOf(&rec).Elem()
	if v.Kind() == reflect.Struct {
		if f := v.FieldByName("IsActive"); f.IsValid() && f.Kind() == reflect.Bool {
			f.SetBool(c.active[id])
		}
	}
	return rec
}
