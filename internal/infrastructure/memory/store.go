// Package memory implementa los puertos de repositorio en memoria.
// Se usa en tests de casos de uso y handlers; respeta los mismos contratos que el adapter de PostgreSQL
// (orden por created_at, filtro de dueño por la línea de producto, borrado en cascada de movimientos,
// (nil, nil) cuando no existe, rollback de Run ante error).
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/stock-analytics/internal/domain"
	"github.com/jhoicas/stock-analytics/internal/domain/entity"
	"github.com/jhoicas/stock-analytics/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Store guarda usuarios, líneas de producto y movimientos.
// FindErr, si no es nil, se devuelve en cada FindMovements (simula una caída del store).
type Store struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	users     map[string]*entity.User
	lines     map[string]*entity.ProductLine
	movements []*entity.StockMovement

	FindErr   error
	findCalls int
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		users: make(map[string]*entity.User),
		lines: make(map[string]*entity.ProductLine),
	}
}

// FindCalls cantidad de llamadas a FindMovements.
func (s *Store) FindCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findCalls
}

// Movements copia de los movimientos guardados, en orden de inserción.
func (s *Store) Movements() []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StockMovement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, *m)
	}
	return out
}

// Run ejecuta fn con el propio store como repositorios. Si fn falla se restaura el estado previo.
// Las transacciones se serializan entre sí.
func (s *Store) Run(ctx context.Context, fn func(repository.ProductLineRepository, repository.StockMovementRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	lines := make(map[string]entity.ProductLine, len(s.lines))
	for id, l := range s.lines {
		lines[id] = *l
	}
	movements := append([]*entity.StockMovement(nil), s.movements...)
	s.mu.Unlock()

	if err := fn(lineRepo{s}, movementRepo{s}); err != nil {
		s.mu.Lock()
		s.lines = make(map[string]*entity.ProductLine, len(lines))
		for id, l := range lines {
			s.lines[id] = &l
		}
		s.movements = movements
		s.mu.Unlock()
		return err
	}
	return nil
}

// ── UserRepository ────────────────────────────────────────────────────────────

// Users expone el store como UserRepository.
func (s *Store) Users() repository.UserRepository { return userRepo{s} }

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == user.Email {
			return domain.ErrDuplicate
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ── ProductLineRepository ─────────────────────────────────────────────────────

// Lines expone el store como ProductLineRepository.
func (s *Store) Lines() repository.ProductLineRepository { return lineRepo{s} }

type lineRepo struct{ s *Store }

func (r lineRepo) Create(ctx context.Context, line *entity.ProductLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.lines[line.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *line
	r.s.lines[line.ID] = &cp
	return nil
}

func (r lineRepo) GetByID(ctx context.Context, id string) (*entity.ProductLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r lineRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductLine, error) {
	return r.GetByID(ctx, id)
}

func (r lineRepo) Update(ctx context.Context, line *entity.ProductLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lines[line.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stock := l.CurrentStock
	cp := *line
	cp.CurrentStock = stock
	r.s.lines[line.ID] = &cp
	return nil
}

func (r lineRepo) UpdateStock(ctx context.Context, id string, currentStock decimal.Decimal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.lines[id]
	if !ok {
		return domain.ErrNotFound
	}
	l.CurrentStock = currentStock
	return nil
}

func (r lineRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.ProductLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := make([]*entity.ProductLine, 0, len(r.s.lines))
	for _, l := range r.s.lines {
		if userID == "" || l.UserID == userID {
			cp := *l
			all = append(all, &cp)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Name != all[j].Name {
			return all[i].Name < all[j].Name
		}
		return all[i].ID < all[j].ID
	})
	if offset >= len(all) {
		return []*entity.ProductLine{}, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r lineRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.lines, id)
	// ON DELETE CASCADE
	kept := r.s.movements[:0]
	for _, m := range r.s.movements {
		if m.ProductLineID != id {
			kept = append(kept, m)
		}
	}
	r.s.movements = kept
	return nil
}

// ── StockMovementRepository ───────────────────────────────────────────────────

// StockMovements expone el store como StockMovementRepository.
func (s *Store) StockMovements() repository.StockMovementRepository { return movementRepo{s} }

type movementRepo struct{ s *Store }

func (r movementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	cp.ProductLine = nil
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r movementRepo) FindMovements(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.findCalls++
	if r.s.FindErr != nil {
		return nil, r.s.FindErr
	}
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.s.movements {
		if m.CreatedAt.Before(f.From) || m.CreatedAt.After(f.To) {
			continue
		}
		// El dueño es el de la línea, no quien registró el movimiento (un admin puede mover líneas ajenas).
		l, hasLine := r.s.lines[m.ProductLineID]
		if !hasLine {
			continue
		}
		if f.UserID != "" && l.UserID != f.UserID {
			continue
		}
		if f.ProductLineID != "" && m.ProductLineID != f.ProductLineID {
			continue
		}
		cp := *m
		line := *l
		cp.ProductLine = &line
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
