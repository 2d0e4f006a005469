package service

import (
	"context"
	"sync"

	"github.com/aidar/circles/internal/domain"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, userID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type fakeCircleRepo struct {
	mu      sync.Mutex
	circles map[string]*domain.Circle
	deleted []string
}

func newFakeCircleRepo(circles ...*domain.Circle) *fakeCircleRepo {
	r := &fakeCircleRepo{circles: make(map[string]*domain.Circle)}
	for _, c := range circles {
		r.circles[c.ID] = c
	}
	return r
}

func (r *fakeCircleRepo) Create(_ context.Context, circle *domain.Circle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *circle
	r.circles[circle.ID] = &cp
	return nil
}

func (r *fakeCircleRepo) GetByID(_ context.Context, circleID string) (*domain.Circle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.circles[circleID]
	if !ok {
		return nil, domain.ErrCircleNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCircleRepo) List(context.Context) ([]*domain.Circle, error) { return nil, nil }

func (r *fakeCircleRepo) ListByHost(context.Context, string) ([]*domain.Circle, error) {
	return nil, nil
}

func (r *fakeCircleRepo) ListFollowing(context.Context, string) ([]*domain.Circle, error) {
	return nil, nil
}

func (r *fakeCircleRepo) Update(_ context.Context, circle *domain.Circle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.circles[circle.ID]; !ok {
		return domain.ErrCircleNotFound
	}
	cp := *circle
	r.circles[circle.ID] = &cp
	return nil
}

func (r *fakeCircleRepo) Delete(_ context.Context, circleID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.circles, circleID)
	r.deleted = append(r.deleted, circleID)
	return nil
}

type fakeRegistrationRepo struct {
	err        error
	registered map[string][]string
}

func (r *fakeRegistrationRepo) Register(_ context.Context, circleID, userID string) error {
	if r.err != nil {
		return r.err
	}
	if r.registered == nil {
		r.registered = make(map[string][]string)
	}
	r.registered[circleID] = append(r.registered[circleID], userID)
	return nil
}

func (r *fakeRegistrationRepo) Unregister(_ context.Context, circleID, userID string) error {
	if r.err != nil {
		return r.err
	}
	users := r.registered[circleID]
	for i, id := range users {
		if id == userID {
			r.registered[circleID] = append(users[:i], users[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRegistrationRepo) ListUsers(_ context.Context, circleID string) ([]domain.RegisteredUser, error) {
	users := []domain.RegisteredUser{}
	for _, id := range r.registered[circleID] {
		users = append(users, domain.RegisteredUser{ID: id})
	}
	return users, nil
}

func (r *fakeRegistrationRepo) ListCircles(context.Context, string) ([]*domain.Circle, error) {
	return nil, nil
}

type fakeTagRepo struct {
	tags map[string][]domain.Tag
}

func (r *fakeTagRepo) ListByCircle(_ context.Context, circleID string) ([]domain.Tag, error) {
	return r.tags[circleID], nil
}

func (r *fakeTagRepo) ListAll(context.Context) ([]domain.Tag, error) { return nil, nil }

func (r *fakeTagRepo) Add(_ context.Context, circleID string, tag domain.Tag) error {
	if r.tags == nil {
		r.tags = make(map[string][]domain.Tag)
	}
	r.tags[circleID] = append(r.tags[circleID], tag)
	return nil
}

func (r *fakeTagRepo) Remove(context.Context, string, domain.Tag) error { return nil }

type countingObserver struct {
	registered, unregistered int
}

func (o *countingObserver) Registered(string)   { o.registered++ }
func (o *countingObserver) Unregistered(string) { o.unregistered++ }

type fakeFlagRepo struct {
	flags []domain.Flag
}

func (r *fakeFlagRepo) Add(_ context.Context, flag *domain.Flag) error {
	for _, f := range r.flags {
		if f.CircleID == flag.CircleID && f.FlagUserID == flag.FlagUserID {
			return domain.ErrAlreadyFlagged
		}
	}
	r.flags = append(r.flags, *flag)
	return nil
}

func (r *fakeFlagRepo) ListByCircle(_ context.Context, circleID string) ([]domain.Flag, error) {
	out := []domain.Flag{}
	for _, f := range r.flags {
		if f.CircleID == circleID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFlagRepo) RemoveByUser(_ context.Context, circleID, userID string) error {
	kept := r.flags[:0]
	for _, f := range r.flags {
		if f.CircleID != circleID || f.FlagUserID != userID {
			kept = append(kept, f)
		}
	}
	r.flags = kept
	return nil
}

func (r *fakeFlagRepo) ListFlagged(context.Context) ([]*domain.FlaggedCircle, error) {
	return []*domain.FlaggedCircle{}, nil
}

func (r *fakeFlagRepo) ClearCircle(_ context.Context, circleID string) error {
	kept := r.flags[:0]
	for _, f := range r.flags {
		if f.CircleID != circleID {
			kept = append(kept, f)
		}
	}
	r.flags = kept
	return nil
}
