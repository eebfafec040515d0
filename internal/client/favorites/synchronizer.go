// Package favorites keeps the local favorite flags of product cards in step
// with the backend. Toggles are applied optimistically and rolled back on
// failure. Refresh replaces the whole local set with the server's answer.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/beautystore/internal/client/client"
	"github.com/dmitrijs2005/beautystore/internal/client/models"
	"github.com/dmitrijs2005/beautystore/internal/logging"
)

// Backend is the slice of client.Client the synchronizer needs.
type Backend interface {
	InsertFavorite(ctx context.Context, userID, productID string) error
	DeleteFavorite(ctx context.Context, userID, productID string) error
	ListFavorites(ctx context.Context, userID string) ([]models.FavoriteRow, error)
}

type item struct {
	value   bool
	state   State
	err     error
	product *models.Product

	// state before a refresh marked the item reconciling
	prevState State
	// toggle this item is waiting on while pending
	epoch uint64
	// a refresh overwrote the optimistic value while the toggle was in flight
	reconciled bool
}

type Synchronizer struct {
	backend Backend
	logger  logging.Logger

	mu         sync.Mutex
	items      map[string]*item
	inflight   map[string]uint64
	toggleSeq  uint64
	generation uint64
	refreshSeq uint64
}

func NewSynchronizer(backend Backend, logger logging.Logger) *Synchronizer {
	return &Synchronizer{
		backend:  backend,
		logger:   logger.With("module", "favorites"),
		items:    make(map[string]*item),
		inflight: make(map[string]uint64),
	}
}

// Track seeds a product card. An already tracked product keeps its flag and
// only has its product details updated.
func (s *Synchronizer) Track(p models.Product, initial bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prod := p
	if it, ok := s.items[p.ID]; ok {
		it.product = &prod
		return
	}
	it := &item{value: initial, state: StateSynced, product: &prod}
	if epoch, busy := s.inflight[p.ID]; busy {
		it.state = StatePending
		it.epoch = epoch
		it.reconciled = true
	}
	s.items[p.ID] = it
}

// Toggle flips the product's favorite flag at once and then asks the backend
// to insert or delete the favorite row. On failure the prior value is
// restored and the error is returned. It returns the value the card should
// now show.
func (s *Synchronizer) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	s.mu.Lock()
	if _, busy := s.inflight[productID]; busy {
		v := s.valueLocked(productID)
		s.mu.Unlock()
		return v, ErrTogglePending
	}

	it, ok := s.items[productID]
	if !ok {
		it = &item{state: StateSynced}
		s.items[productID] = it
	}
	prior := it.value
	next := !prior

	s.toggleSeq++
	epoch := s.toggleSeq
	gen := s.generation
	s.inflight[productID] = epoch

	it.value = next
	it.state = StatePending
	it.err = nil
	it.epoch = epoch
	it.reconciled = false
	s.mu.Unlock()

	var err error
	if next {
		err = s.backend.InsertFavorite(ctx, userID, productID)
	} else {
		err = s.backend.DeleteFavorite(ctx, userID, productID)
	}
	if err != nil {
		err = asRemoteError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inflight[productID] == epoch {
		delete(s.inflight, productID)
	}

	cur, ok := s.items[productID]
	if !ok || cur.epoch != epoch || cur.state != StatePending {
		s.logger.Debug(ctx, "discarding superseded toggle result", "product_id", productID)
		if err != nil {
			return prior, err
		}
		return next, nil
	}

	// The view that started the toggle is gone: settle the item to what the
	// backend now holds but surface no error state to the current view.
	if gen != s.generation {
		switch {
		case err == nil:
			cur.value = next
		case !cur.reconciled:
			cur.value = prior
		}
		cur.state = StateSynced
		cur.err = nil
		s.logger.Debug(ctx, "settled toggle started by a detached view", "product_id", productID, "value", cur.value)
		if err != nil {
			return prior, err
		}
		return next, nil
	}

	if err != nil {
		if !cur.reconciled {
			cur.value = prior
		}
		cur.state = StateError
		cur.err = err
		s.logger.Warn(ctx, "favorite toggle failed, rolled back", "product_id", productID, "value", cur.value, "error", err)
		return cur.value, err
	}

	cur.value = next
	cur.state = StateSynced
	cur.err = nil
	s.logger.Debug(ctx, "favorite toggled", "product_id", productID, "value", next)
	return next, nil
}

// Refresh fetches the user's favorites joined with their products and
// replaces the local set with that answer. Favorites whose product no longer
// exists are dropped. Products with a toggle in flight stay pending but take
// the fetched value.
func (s *Synchronizer) Refresh(ctx context.Context, userID string) error {
	s.mu.Lock()
	s.refreshSeq++
	seq := s.refreshSeq
	gen := s.generation
	for _, it := range s.items {
		if it.state == StatePending || it.state == StateReconciling {
			continue
		}
		it.prevState = it.state
		it.state = StateReconciling
	}
	s.mu.Unlock()

	rows, err := s.backend.ListFavorites(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || seq != s.refreshSeq {
		s.logger.Debug(ctx, "discarding stale favorites refresh")
		return ErrStale
	}

	if err != nil {
		for _, it := range s.items {
			if it.state == StateReconciling {
				it.state = it.prevState
			}
		}
		s.logger.Warn(ctx, "favorites refresh failed", "error", err)
		return asRemoteError(err)
	}

	fresh := make(map[string]*item, len(rows))
	for _, row := range rows {
		if row.Product == nil {
			s.logger.Warn(ctx, "dropping orphaned favorite", "product_id", row.ProductID)
			continue
		}
		p := *row.Product
		fresh[row.ProductID] = &item{value: true, state: StateSynced, product: &p}
	}

	for id, old := range s.items {
		if _, ok := fresh[id]; !ok {
			fresh[id] = &item{value: false, state: StateSynced, product: old.product}
		}
	}

	for id, epoch := range s.inflight {
		it, ok := fresh[id]
		if !ok {
			it = &item{value: false}
			fresh[id] = it
		}
		it.state = StatePending
		it.epoch = epoch
		it.reconciled = true
	}

	s.items = fresh
	return nil
}

// Detach marks the current view as gone. Results of refreshes already in
// flight are discarded. The last known flags stay in place until a refresh
// succeeds, so a failed reload does not forget which products are
// favorites. Toggles in flight still complete remotely; their result settles
// the item without reporting an error state.
func (s *Synchronizer) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	for _, it := range s.items {
		if it.state == StateReconciling {
			it.state = it.prevState
		}
	}
}

// Reset detaches the current view and forgets every flag. It is used when
// the session ends, so the next user starts from an empty set.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.items = make(map[string]*item)
}

func (s *Synchronizer) Status(productID string) Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[productID]
	if !ok {
		if _, busy := s.inflight[productID]; busy {
			return Status{State: StatePending}
		}
		return Status{State: StateSynced}
	}
	return Status{Value: it.value, State: it.state, Err: it.err}
}

func (s *Synchronizer) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueLocked(productID)
}

func (s *Synchronizer) valueLocked(productID string) bool {
	it, ok := s.items[productID]
	return ok && it.value
}

// Favorites returns the products currently flagged as favorite, sorted by
// name. Products known only by id are left out.
func (s *Synchronizer) Favorites() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Product, 0, len(s.items))
	for _, it := range s.items {
		if it.value && it.product != nil {
			out = append(out, *it.product)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func asRemoteError(err error) error {
	if errors.Is(err, client.ErrRemoteCall) || errors.Is(err, client.ErrUnauthorized) {
		return err
	}
	return fmt.Errorf("%w: %w", client.ErrRemoteCall, err)
}
