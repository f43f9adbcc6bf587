package session_repo

import (
	"context"
	"sync"

	"tarot_slots/internal/repository"
	"tarot_slots/internal/service/spin"
)

type repo struct {
	mtx      sync.RWMutex
	sessions map[string]*spin.Controller
}

func NewSessionRepository() repository.SessionRepository {
	return &repo{
		sessions: make(map[string]*spin.Controller),
	}
}

func (r *repo) Create(_ context.Context, id string, ctrl *spin.Controller) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.sessions[id] = ctrl
	return nil
}

// Get - сессия по id, repository.ErrSessionNotFound если ее нет
func (r *repo) Get(_ context.Context, id string) (*spin.Controller, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	ctrl, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	return ctrl, nil
}

func (r *repo) Delete(_ context.Context, id string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}
