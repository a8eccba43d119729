package service

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

// EditorView is what the admin list renders: the sorted, filtered items and
// the last error, if any.
type EditorView[T domain.CatalogEntity] struct {
	Items  []T              `json:"items"`
	Total  int              `json:"total"`
	Sort   domain.SortState `json:"sort"`
	Filter string           `json:"filter,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// Editor is the admin CRUD list for one entity type. Every successful
// mutation re-fetches the full list from the backend; a failure records a
// visible error and leaves the list as it was.
type Editor[T domain.CatalogEntity] struct {
	mu      sync.Mutex
	kind    domain.EntityKind
	backend ports.CatalogBackend[T]
	items   []T
	sort    domain.SortState
	filter  string
	err     string
	log     zerolog.Logger
}

// NewEditor returns an empty editor; call Refresh to load it.
func NewEditor[T domain.CatalogEntity](kind domain.EntityKind, backend ports.CatalogBackend[T], log zerolog.Logger) *Editor[T] {
	return &Editor[T]{kind: kind, backend: backend, log: log}
}

// Refresh replaces the list with the backend's.
func (e *Editor[T]) Refresh(ctx context.Context) (EditorView[T], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.refreshLocked(ctx); err != nil {
		return e.viewLocked(), err
	}
	return e.viewLocked(), nil
}

// SortBy toggles the sort on column.
func (e *Editor[T]) SortBy(column string) EditorView[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.sort = e.sort.Toggle(column)
	return e.viewLocked()
}

// SetFilter sets the free-text filter.
func (e *Editor[T]) SetFilter(query string) EditorView[T] {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.filter = query
	return e.viewLocked()
}

// View returns the current list without contacting the backend.
func (e *Editor[T]) View() EditorView[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Save creates or updates entity, then re-fetches the list.
func (e *Editor[T]) Save(ctx context.Context, entity T, image *ports.ImageUpload) (EditorView[T], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.backend.Save(ctx, entity, image); err != nil {
		e.fail("save", err)
		return e.viewLocked(), fmt.Errorf("save %s: %w", e.kind, err)
	}
	e.log.Info().Str("kind", string(e.kind)).Int64("id", entity.EntityID()).Msg("catalog entity saved")

	if err := e.refreshLocked(ctx); err != nil {
		return e.viewLocked(), err
	}
	return e.viewLocked(), nil
}

// Delete removes the entity with id, then re-fetches the list.
func (e *Editor[T]) Delete(ctx context.Context, id int64) (EditorView[T], error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.backend.Delete(ctx, id); err != nil {
		e.fail("delete", err)
		return e.viewLocked(), fmt.Errorf("delete %s %d: %w", e.kind, id, err)
	}
	e.log.Info().Str("kind", string(e.kind)).Int64("id", id).Msg("catalog entity deleted")

	if err := e.refreshLocked(ctx); err != nil {
		return e.viewLocked(), err
	}
	return e.viewLocked(), nil
}

func (e *Editor[T]) refreshLocked(ctx context.Context) error {
	items, err := e.backend.List(ctx)
	if err != nil {
		e.fail("fetch", err)
		return fmt.Errorf("fetch %ss: %w", e.kind, err)
	}
	e.items = items
	e.err = ""
	return nil
}

func (e *Editor[T]) fail(op string, err error) {
	e.err = fmt.Sprintf("Failed to %s %s: %v", op, e.kind, err)
	e.log.Warn().Err(err).Str("kind", string(e.kind)).Str("op", op).Msg("catalog editor operation failed")
}

// viewLocked sorts a copy of the items (stable, so equal keys keep backend
// order) and then applies the filter.
func (e *Editor[T]) viewLocked() EditorView[T] {
	items := slices.Clone(e.items)
	if e.sort.Column != "" {
		col, desc := e.sort.Column, e.sort.Direction == domain.Descending
		slices.SortStableFunc(items, func(a, b T) int {
			c := a.CompareBy(col, b)
			if desc {
				return -c
			}
			return c
		})
	}

	visible := make([]T, 0, len(items))
	for _, it := range items {
		if domain.MatchesFilter(it, e.filter) {
			visible = append(visible, it)
		}
	}

	return EditorView[T]{
		Items:  visible,
		Total:  len(e.items),
		Sort:   e.sort,
		Filter: e.filter,
		Error:  e.err,
	}
}
