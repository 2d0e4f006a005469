package participants

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/circles/internal/domain"
)

func participant(id string, tracks ...domain.TrackType) domain.Participant {
	return domain.Participant{SessionID: "s-" + id, UserID: id, Name: id, PublishedTracks: tracks}
}

func TestClassify(t *testing.T) {
	ps := []domain.Participant{
		participant("a", domain.TrackTypeAudio),
		participant("b"),
		participant("c", domain.TrackTypeVideo),
		participant("d", domain.TrackTypeVideo, domain.TrackTypeAudio),
		participant("e", domain.TrackTypeScreenShare),
	}

	g := Classify(ps)

	assert.Equal(t, []domain.Participant{ps[0], ps[3]}, g.Speakers)
	assert.Equal(t, []domain.Participant{ps[1], ps[2], ps[4]}, g.Listeners)
	assert.Len(t, ps, len(g.Speakers)+len(g.Listeners))
}

func TestClassify_Empty(t *testing.T) {
	for _, in := range [][]domain.Participant{nil, {}} {
		g := Classify(in)
		assert.NotNil(t, g.Speakers)
		assert.NotNil(t, g.Listeners)
		assert.Empty(t, g.Speakers)
		assert.Empty(t, g.Listeners)
	}
}

func TestHasAudio(t *testing.T) {
	assert.True(t, HasAudio(participant("a", domain.TrackTypeAudio)))
	assert.False(t, HasAudio(participant("b", domain.TrackTypeVideo)))
	assert.False(t, HasAudio(participant("c")))
}

func TestRenderPanel(t *testing.T) {
	g := Classify([]domain.Participant{
		participant("alice", domain.TrackTypeAudio),
		{SessionID: "s-2", UserID: "u2"},
	})

	var buf bytes.Buffer
	require.NoError(t, RenderPanel(&buf, g))

	out := buf.String()
	assert.Contains(t, out, "Speakers (1)")
	assert.Contains(t, out, "* alice")
	assert.Contains(t, out, "Listeners (1)")
	assert.Contains(t, out, "* u2")
	assert.NotContains(t, out, "at the moment")
}

func TestRenderPanel_Placeholders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPanel(&buf, Classify(nil)))

	out := buf.String()
	assert.Contains(t, out, "Speakers (0)")
	assert.Contains(t, out, "No speakers at the moment.")
	assert.Contains(t, out, "Listeners (0)")
	assert.Contains(t, out, "No listeners at the moment.")
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	snapshot := `[
		{"session_id":"s1","user_id":"u1","name":"Ann","published_tracks":["AUDIO"]},
		{"session_id":"s2","user_id":"u2","name":"Bo","published_tracks":[2]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(snapshot), 0o600))

	ps, err := FileSource{Path: path}.Participants(context.Background())
	require.NoError(t, err)
	require.Len(t, ps, 2)

	g := Classify(ps)
	require.Len(t, g.Speakers, 1)
	assert.Equal(t, "Ann", g.Speakers[0].Name)
	require.Len(t, g.Listeners, 1)
	assert.Equal(t, []domain.TrackType{domain.TrackTypeVideo}, g.Listeners[0].PublishedTracks)
}

func TestFileSource_Missing(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Participants(context.Background())
	assert.Error(t, err)
}
