package circleview

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/circles/internal/domain"
)

func loadedState(c domain.Circle, regs ...domain.RegisteredUser) State {
	return State{
		Circle:              c,
		Tags:                []domain.Tag{},
		Registrations:       regs,
		IsRegistered:        false,
		CircleStatus:        StatusLoaded,
		TagsStatus:          StatusLoaded,
		RegistrationsStatus: StatusLoaded,
	}
}

func TestPresent_HostLiveCircle(t *testing.T) {
	page := Present(loadedState(domain.Circle{HostID: "h1", IsLive: true}), "h1")

	assert.Equal(t, StatusTextLive, page.Status)
	assert.True(t, page.IsHost)
	assert.Equal(t, []Button{{Label: LabelLiveNow, Class: ClassLiveActive}}, page.Buttons)
	assert.NotContains(t, page.Labels(), LabelInterested)
	assert.NotContains(t, page.Labels(), LabelSignUp)
	assert.Empty(t, page.StartsAt)
}

func TestPresent_HostUpcomingCircle(t *testing.T) {
	page := Present(loadedState(domain.Circle{HostID: "h1"}), "h1")

	assert.Equal(t, StatusTextUpcoming, page.Status)
	assert.Equal(t, []Button{{Label: LabelGoLive, Class: ClassLive}}, page.Buttons)
}

func TestPresent_NonHost(t *testing.T) {
	start := time.Date(2026, 11, 1, 18, 30, 0, 0, time.UTC)
	c := domain.Circle{HostID: "h1", StartDate: start, ParticipantsLimit: 50, Username: "hosty"}

	page := Present(loadedState(c, domain.RegisteredUser{ID: "u1"}), "u2")
	assert.Equal(t, []Button{
		{Label: LabelInterested, Class: ClassInterested},
		{Label: LabelSignUp, Class: ClassRegister},
	}, page.Buttons)
	assert.NotContains(t, page.Labels(), LabelLiveNow)
	assert.NotContains(t, page.Labels(), LabelGoLive)
	assert.Equal(t, FormatStart(start), page.StartsAt)
	assert.Equal(t, 1, page.SignUps)
	assert.Equal(t, 50, page.Capacity)
	assert.Equal(t, "hosty", page.Host)

	c.IsLive = true
	page = Present(loadedState(c), "u2")
	assert.Equal(t, StatusTextLive, page.Status)
	assert.Empty(t, page.Buttons)
}

func TestPresent_EmptyUserIsNeverHost(t *testing.T) {
	page := Present(loadedState(domain.Circle{}), "")
	assert.False(t, page.IsHost)
}

func TestRenderPage(t *testing.T) {
	page := Page{
		Status:      StatusTextUpcoming,
		Title:       "Evening jazz",
		Host:        "h",
		Tags:        []string{"jazz", "music"},
		StartsAt:    "Sun, 01 Nov 2026 18:30 UTC",
		Capacity:    20,
		SignUps:     3,
		Description: "Bring a drink",
		Buttons:     []Button{{Label: LabelInterested}, {Label: LabelSignUp}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderPage(&buf, page))
	out := buf.String()

	assert.Contains(t, out, "[Not live yet] Evening jazz")
	assert.Contains(t, out, "Tags: jazz, music")
	assert.Contains(t, out, "Starts: Sun, 01 Nov 2026 18:30 UTC")
	assert.Contains(t, out, "Capacity: 20")
	assert.Contains(t, out, "Signed up: 3")
	assert.Contains(t, out, "Bring a drink")
	assert.Contains(t, out, "[ I'm interested! ] [ Sign me up! ]")
	assert.NotContains(t, out, "(loading)")
}
