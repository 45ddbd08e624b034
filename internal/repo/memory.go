package repo

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Repository used by tests and by the server when
// no database is configured. Runs are lost on restart.
type Memory struct {
	mu       sync.Mutex
	users    map[string]memUser
	analyses []Analysis
	nextUser int
	nextRun  int
}

type memUser struct {
	id    int
	email string
	hash  string
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]memUser)}
}

func (m *Memory) CreateUser(_ context.Context, login, email, password string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[login]; ok {
		return 0, ErrDuplicate
	}
	for _, u := range m.users {
		if u.email == email {
			return 0, ErrDuplicate
		}
	}
	m.nextUser++
	m.users[login] = memUser{id: m.nextUser, email: email, hash: password}
	return m.nextUser, nil
}

func (m *Memory) GetByLogin(_ context.Context, login string) (int, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[login]
	if !ok {
		return 0, "", ErrNotFound
	}
	return u.id, u.hash, nil
}

func (m *Memory) SaveAnalysis(_ context.Context, a Analysis) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextRun++
	a.ID = m.nextRun
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	m.analyses = append(m.analyses, a)
	return a.ID, nil
}

func (m *Memory) ListAnalyses(_ context.Context, userID, limit int) ([]Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	out := make([]Analysis, 0)
	for _, a := range m.analyses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) GetAnalysis(_ context.Context, userID, id int) (Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.analyses {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return Analysis{}, ErrNotFound
}
