package discovery

import (
	"discovery-service/internal/core/domain"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type RegistryConfig struct {
	MaxViews int
	IdleTTL  time.Duration
}

// Registry хранит открытые экраны поиска, у каждого свое состояние
type Registry struct {
	fetcher *PageFetcher
	cfg     RegistryConfig

	mu    sync.Mutex
	views map[uuid.UUID]*View
}

func NewRegistry(fetcher *PageFetcher, cfg RegistryConfig) (*Registry, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("page fetcher cannot be nil")
	}
	if cfg.MaxViews <= 0 {
		cfg.MaxViews = 1000
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	return &Registry{
		fetcher: fetcher,
		cfg:     cfg,
		views:   make(map[uuid.UUID]*View),
	}, nil
}

// Open создает новый экран. При переполнении сначала выселяются простаивающие.
func (r *Registry) Open(vendorType domain.VendorType) (*View, error) {
	executor, err := NewExecutor(vendorType, r.fetcher)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	var evicted []*View
	if len(r.views) >= r.cfg.MaxViews {
		evicted = r.takeIdleLocked(time.Now())
	}
	if len(r.views) >= r.cfg.MaxViews {
		r.mu.Unlock()
		closeViews(evicted)
		return nil, domain.ErrTooManyViews
	}
	view := NewView(uuid.New(), executor)
	r.views[view.ID()] = view
	r.mu.Unlock()

	closeViews(evicted)
	return view, nil
}

// Get продлевает жизнь экрана, чтобы его не выселили между Get и загрузкой
func (r *Registry) Get(id uuid.UUID) (*View, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view, ok := r.views[id]
	if !ok {
		return nil, domain.ErrViewNotFound
	}
	view.touch()
	return view, nil
}

// Close закрывает экран и удаляет его из реестра
func (r *Registry) Close(id uuid.UUID) error {
	r.mu.Lock()
	view, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if !ok {
		return domain.ErrViewNotFound
	}
	view.Close()
	return nil
}

// EvictIdle закрывает экраны, к которым не обращались дольше IdleTTL.
// Экраны с незавершенной загрузкой не трогаются.
func (r *Registry) EvictIdle(now time.Time) int {
	r.mu.Lock()
	evicted := r.takeIdleLocked(now)
	r.mu.Unlock()

	closeViews(evicted)
	return len(evicted)
}

// takeIdleLocked только удаляет экраны из карты, закрывает их вызывающий без блокировки
func (r *Registry) takeIdleLocked(now time.Time) []*View {
	var idle []*View
	for id, view := range r.views {
		if view.Busy() || now.Sub(view.LastAccess()) <= r.cfg.IdleTTL {
			continue
		}
		delete(r.views, id)
		idle = append(idle, view)
	}
	return idle
}

func closeViews(views []*View) {
	for _, view := range views {
		view.Close()
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func (r *Registry) IdleTTL() time.Duration {
	return r.cfg.IdleTTL
}
