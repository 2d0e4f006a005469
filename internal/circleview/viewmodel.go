// Package circleview holds the state of a single circle page: the circle
// itself, its tags, its registrations and whether the current user is
// registered. Present maps that state to what the page shows.
package circleview

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/aidar/circles/internal/domain"
)

// Backend is the part of the circles API the page needs
type Backend interface {
	GetCircle(ctx context.Context, circleID string) (*domain.Circle, error)
	GetTags(ctx context.Context, circleID string) ([]domain.Tag, error)
	GetRegistrations(ctx context.Context, circleID string) ([]domain.RegisteredUser, error)
	Register(ctx context.Context, circleID string) (string, error)
	Unregister(ctx context.Context, circleID string) (string, error)
}

// ResourceStatus tracks one fetched resource
type ResourceStatus int

const (
	StatusLoading ResourceStatus = iota
	StatusLoaded
	StatusFailed
)

func (s ResourceStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of the view-model
type State struct {
	Circle        domain.Circle
	Tags          []domain.Tag
	Registrations []domain.RegisteredUser
	IsRegistered  bool

	CircleStatus        ResourceStatus
	TagsStatus          ResourceStatus
	RegistrationsStatus ResourceStatus
}

// Ready reports whether every fetch has finished, successfully or not
func (s State) Ready() bool {
	return s.CircleStatus != StatusLoading &&
		s.TagsStatus != StatusLoading &&
		s.RegistrationsStatus != StatusLoading
}

var errNilCircle = errors.New("empty circle payload")

// ViewModel owns the page state of one circle
type ViewModel struct {
	backend  Backend
	session  Session
	circleID string
	logger   *slog.Logger

	// toggleMu serializes registration mutations
	toggleMu sync.Mutex

	mu    sync.Mutex
	state State
}

// New creates a view-model in its initial state. The circle reads as live
// until the real one is fetched.
func New(backend Backend, session Session, circleID string, logger *slog.Logger) *ViewModel {
	if logger == nil {
		logger = slog.Default()
	}
	return &ViewModel{
		backend:  backend,
		session:  session,
		circleID: circleID,
		logger:   logger.With("circle_id", circleID, "user_id", session.UserID),
		state: State{
			Circle:        domain.Circle{ID: circleID, IsLive: true},
			Tags:          []domain.Tag{},
			Registrations: []domain.RegisteredUser{},
		},
	}
}

// Session returns the session the view-model was created with
func (vm *ViewModel) Session() Session {
	return vm.session
}

// Load fetches the circle, its tags and its registrations concurrently and
// waits for all three. A failed fetch is logged and leaves its piece of
// state untouched. Only cancellation of ctx is returned; results that
// arrive after cancellation are discarded.
func (vm *ViewModel) Load(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		vm.fetchCircle(ctx)
		return nil
	})
	g.Go(func() error {
		vm.fetchTags(ctx)
		return nil
	})
	g.Go(func() error {
		vm.fetchRegistrations(ctx)
		return nil
	})

	_ = g.Wait()
	return ctx.Err()
}

func (vm *ViewModel) fetchCircle(ctx context.Context) {
	circle, err := vm.backend.GetCircle(ctx, vm.circleID)
	if err == nil && circle == nil {
		err = errNilCircle
	}
	if ctx.Err() != nil {
		return
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err != nil {
		vm.logger.Error("Failed to fetch circle", "error", err)
		vm.state.CircleStatus = StatusFailed
		return
	}
	vm.state.Circle = *circle
	vm.state.CircleStatus = StatusLoaded
}

func (vm *ViewModel) fetchTags(ctx context.Context) {
	tags, err := vm.backend.GetTags(ctx, vm.circleID)
	if ctx.Err() != nil {
		return
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err != nil {
		vm.logger.Error("Failed to fetch tags", "error", err)
		vm.state.TagsStatus = StatusFailed
		return
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	vm.state.Tags = tags
	vm.state.TagsStatus = StatusLoaded
}

func (vm *ViewModel) fetchRegistrations(ctx context.Context) {
	users, err := vm.backend.GetRegistrations(ctx, vm.circleID)
	if ctx.Err() != nil {
		return
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err != nil {
		vm.logger.Error("Failed to fetch registrations", "error", err)
		vm.state.RegistrationsStatus = StatusFailed
		return
	}
	if users == nil {
		users = []domain.RegisteredUser{}
	}
	vm.state.Registrations = users
	vm.state.RegistrationsStatus = StatusLoaded
	vm.recomputeLocked()
}

// RecomputeMembership derives IsRegistered from the current registrations
func (vm *ViewModel) RecomputeMembership() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.recomputeLocked()
}

func (vm *ViewModel) recomputeLocked() {
	vm.state.IsRegistered = domain.ContainsUser(vm.state.Registrations, vm.session.UserID)
}

// ToggleRegistration registers the user if not registered and unregisters
// otherwise. The local flag flips only after the backend confirms; on
// failure the state is unchanged and the error is returned.
func (vm *ViewModel) ToggleRegistration(ctx context.Context) error {
	vm.toggleMu.Lock()
	defer vm.toggleMu.Unlock()

	vm.mu.Lock()
	registered := vm.state.IsRegistered
	vm.mu.Unlock()

	var (
		msg string
		err error
	)
	if registered {
		msg, err = vm.backend.Unregister(ctx, vm.circleID)
	} else {
		msg, err = vm.backend.Register(ctx, vm.circleID)
	}
	if err != nil {
		vm.logger.Error("Failed to toggle registration", "registered", registered, "error", err)
		return err
	}

	vm.mu.Lock()
	vm.state.IsRegistered = !registered
	vm.mu.Unlock()

	vm.logger.Info("Registration toggled", "registered", !registered, "msg", msg)
	return nil
}

// Snapshot returns a copy of the current state
func (vm *ViewModel) Snapshot() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	s := vm.state
	s.Tags = slices.Clone(vm.state.Tags)
	s.Registrations = slices.Clone(vm.state.Registrations)
	return s
}
