// Package participants splits call participants into speakers and listeners
// and renders the participants panel.
package participants

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/aidar/circles/internal/domain"
)

// Groups is the speaker/listener partition of a participant list
type Groups struct {
	Speakers  []domain.Participant
	Listeners []domain.Participant
}

// HasAudio reports whether p publishes an audio track
func HasAudio(p domain.Participant) bool {
	return p.Publishes(domain.TrackTypeAudio)
}

// Classify partitions ps by audio publication. Input order is kept inside
// each group.
func Classify(ps []domain.Participant) Groups {
	g := Groups{
		Speakers:  []domain.Participant{},
		Listeners: []domain.Participant{},
	}
	for _, p := range ps {
		if HasAudio(p) {
			g.Speakers = append(g.Speakers, p)
		} else {
			g.Listeners = append(g.Listeners, p)
		}
	}
	return g
}

// Source supplies the current participant list of a call
type Source interface {
	Participants(ctx context.Context) ([]domain.Participant, error)
}

// FileSource reads a JSON array of participants from disk
type FileSource struct {
	Path string
}

func (s FileSource) Participants(ctx context.Context) ([]domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open participants snapshot: %w", err)
	}
	defer f.Close()

	var ps []domain.Participant
	if err := json.NewDecoder(f).Decode(&ps); err != nil {
		return nil, fmt.Errorf("decode participants snapshot %s: %w", s.Path, err)
	}
	return ps, nil
}

const panelText = `Speakers ({{len .Speakers}})
{{- range .Speakers}}
  * {{displayName .}}
{{- else}}
  No speakers at the moment.
{{- end}}

Listeners ({{len .Listeners}})
{{- range .Listeners}}
  * {{displayName .}}
{{- else}}
  No listeners at the moment.
{{- end}}
`

var panelTmpl = template.Must(template.New("panel").
	Funcs(template.FuncMap{"displayName": displayName}).
	Parse(panelText))

func displayName(p domain.Participant) string {
	if p.Name != "" {
		return p.Name
	}
	if p.UserID != "" {
		return p.UserID
	}
	return p.SessionID
}

// RenderPanel writes the two participant sections to w
func RenderPanel(w io.Writer, g Groups) error {
	if err := panelTmpl.Execute(w, g); err != nil {
		return fmt.Errorf("render participants panel: %w", err)
	}
	return nil
}
