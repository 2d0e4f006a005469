package circleview

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/circles/internal/domain"
)

var errBackend = errors.New("backend unavailable")

type fakeBackend struct {
	mu sync.Mutex

	circle        *domain.Circle
	tags          []domain.Tag
	registrations []domain.RegisteredUser

	circleErr, tagsErr, regsErr error
	registerErr, unregisterErr  error

	// block, when set, holds every fetch until ctx is done
	block bool

	registrationFetches int
	registerCalls       int
	unregisterCalls     int
}

func (f *fakeBackend) wait(ctx context.Context) error {
	if !f.block {
		return nil
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeBackend) GetCircle(ctx context.Context, _ string) (*domain.Circle, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.circleErr != nil {
		return nil, f.circleErr
	}
	c := *f.circle
	return &c, nil
}

func (f *fakeBackend) GetTags(ctx context.Context, _ string) ([]domain.Tag, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.tags, f.tagsErr
}

func (f *fakeBackend) GetRegistrations(ctx context.Context, _ string) ([]domain.RegisteredUser, error) {
	f.mu.Lock()
	f.registrationFetches++
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.registrations, f.regsErr
}

func (f *fakeBackend) Register(context.Context, string) (string, error) {
	f.registerCalls++
	if f.registerErr != nil {
		return "", f.registerErr
	}
	return "registered", nil
}

func (f *fakeBackend) Unregister(context.Context, string) (string, error) {
	f.unregisterCalls++
	if f.unregisterErr != nil {
		return "", f.unregisterErr
	}
	return "unregistered", nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func upcomingCircle() *domain.Circle {
	return &domain.Circle{
		ID:                "c1",
		HostID:            "h1",
		Title:             "Morning talk",
		IsLive:            false,
		ParticipantsLimit: 10,
		Username:          "host",
	}
}

func TestNew_InitialState(t *testing.T) {
	vm := New(&fakeBackend{}, Session{UserID: "u2"}, "c1", discardLogger())

	s := vm.Snapshot()
	assert.True(t, s.Circle.IsLive)
	assert.Empty(t, s.Tags)
	assert.Empty(t, s.Registrations)
	assert.False(t, s.IsRegistered)
	assert.Equal(t, StatusLoading, s.CircleStatus)
	assert.Equal(t, StatusLoading, s.TagsStatus)
	assert.Equal(t, StatusLoading, s.RegistrationsStatus)
	assert.False(t, s.Ready())
}

func TestScenario_NonHostRegistersForUpcomingCircle(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{
		circle:        upcomingCircle(),
		tags:          []domain.Tag{"music"},
		registrations: []domain.RegisteredUser{},
	}
	vm := New(backend, Session{UserID: "u2"}, "c1", discardLogger())

	require.NoError(t, vm.Load(ctx))
	s := vm.Snapshot()
	require.True(t, s.Ready())
	assert.False(t, s.IsRegistered)

	page := Present(s, "u2")
	assert.Equal(t, StatusTextUpcoming, page.Status)
	assert.Equal(t, []string{LabelInterested, LabelSignUp}, page.Labels())

	require.NoError(t, vm.ToggleRegistration(ctx))
	page = Present(vm.Snapshot(), "u2")
	assert.Equal(t, []string{LabelInterested, LabelGoing}, page.Labels())
	assert.Equal(t, ClassRegisterActive, page.Buttons[1].Class)

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, page))
	assert.Contains(t, buf.String(), "Not live yet")
	assert.Contains(t, buf.String(), "I'm going!")
	assert.Contains(t, buf.String(), "Tags: music")
}

func TestToggleRegistration_NoRefetch(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{circle: upcomingCircle()}
	vm := New(backend, Session{UserID: "u2"}, "c1", discardLogger())
	require.NoError(t, vm.Load(ctx))

	require.NoError(t, vm.ToggleRegistration(ctx))
	assert.True(t, vm.Snapshot().IsRegistered)

	require.NoError(t, vm.ToggleRegistration(ctx))
	assert.False(t, vm.Snapshot().IsRegistered)

	assert.Equal(t, 1, backend.registerCalls)
	assert.Equal(t, 1, backend.unregisterCalls)
	assert.Equal(t, 1, backend.registrationFetches)
}

func TestToggleRegistration_FailureKeepsState(t *testing.T) {
	ctx := context.Background()

	t.Run("register", func(t *testing.T) {
		backend := &fakeBackend{circle: upcomingCircle(), registerErr: errBackend}
		vm := New(backend, Session{UserID: "u2"}, "c1", discardLogger())
		require.NoError(t, vm.Load(ctx))

		err := vm.ToggleRegistration(ctx)
		assert.ErrorIs(t, err, errBackend)
		assert.False(t, vm.Snapshot().IsRegistered)
	})

	t.Run("unregister", func(t *testing.T) {
		backend := &fakeBackend{
			circle:        upcomingCircle(),
			registrations: []domain.RegisteredUser{{ID: "u2"}},
			unregisterErr: errBackend,
		}
		vm := New(backend, Session{UserID: "u2"}, "c1", discardLogger())
		require.NoError(t, vm.Load(ctx))
		require.True(t, vm.Snapshot().IsRegistered)

		err := vm.ToggleRegistration(ctx)
		assert.ErrorIs(t, err, errBackend)
		assert.True(t, vm.Snapshot().IsRegistered)
		assert.Zero(t, backend.registerCalls)
	})
}

func TestRecomputeMembership(t *testing.T) {
	ctx := context.Background()

	backend := &fakeBackend{
		circle:        upcomingCircle(),
		registrations: []domain.RegisteredUser{{ID: "u1"}, {ID: "u2"}},
	}
	vm := New(backend, Session{UserID: "u2"}, "c1", discardLogger())
	require.NoError(t, vm.Load(ctx))
	assert.True(t, vm.Snapshot().IsRegistered)

	vm.RecomputeMembership()
	vm.RecomputeMembership()
	assert.True(t, vm.Snapshot().IsRegistered)

	other := New(backend, Session{UserID: "u3"}, "c1", discardLogger())
	require.NoError(t, other.Load(ctx))
	other.RecomputeMembership()
	assert.False(t, other.Snapshot().IsRegistered)
}

func TestLoad_SilentDegrade(t *testing.T) {
	backend := &fakeBackend{
		circleErr: errBackend,
		tags:      []domain.Tag{"a", "b"},
		regsErr:   errBackend,
	}
	vm := New(backend, Session{UserID: "u2"}, "c1", discardLogger())

	require.NoError(t, vm.Load(context.Background()))

	s := vm.Snapshot()
	assert.True(t, s.Ready())
	assert.Equal(t, StatusFailed, s.CircleStatus)
	assert.Equal(t, StatusLoaded, s.TagsStatus)
	assert.Equal(t, StatusFailed, s.RegistrationsStatus)

	// defaults survive a failed fetch
	assert.True(t, s.Circle.IsLive)
	assert.Empty(t, s.Registrations)
	assert.Equal(t, []domain.Tag{"a", "b"}, s.Tags)

	page := Present(s, "u2")
	assert.Equal(t, StatusTextLive, page.Status)
	assert.Empty(t, page.Buttons)
}

func TestLoad_Cancelled(t *testing.T) {
	backend := &fakeBackend{circle: upcomingCircle(), block: true}
	vm := New(backend, Session{UserID: "u2"}, "c1", discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := vm.Load(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	s := vm.Snapshot()
	assert.Equal(t, StatusLoading, s.CircleStatus)
	assert.Equal(t, StatusLoading, s.TagsStatus)
	assert.Equal(t, StatusLoading, s.RegistrationsStatus)
	assert.True(t, s.Circle.IsLive)
}

func TestSnapshot_IsCopy(t *testing.T) {
	backend := &fakeBackend{circle: upcomingCircle(), tags: []domain.Tag{"x"}}
	vm := New(backend, Session{UserID: "u2"}, "c1", discardLogger())
	require.NoError(t, vm.Load(context.Background()))

	s := vm.Snapshot()
	s.Tags[0] = "changed"
	assert.Equal(t, []domain.Tag{"x"}, vm.Snapshot().Tags)
}

func TestSessionFromToken(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u2",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("any-secret"))
	require.NoError(t, err)

	s, err := SessionFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u2", s.UserID)
	assert.Equal(t, token, s.AccessToken)

	_, err = SessionFromToken("not-a-token")
	assert.Error(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = SessionFromToken(noSub)
	assert.ErrorIs(t, err, errNoSubject)
}
