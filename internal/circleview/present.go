package circleview

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"
)

const (
	StatusTextLive     = "Live"
	StatusTextUpcoming = "Not live yet"

	LabelInterested = "I'm interested!"
	LabelSignUp     = "Sign me up!"
	LabelGoing      = "I'm going!"
	LabelLiveNow    = "Live now"
	LabelGoLive     = "Go live"

	ClassInterested     = "interested-btn"
	ClassRegister       = "register-btn"
	ClassRegisterActive = "register-btn-active"
	ClassLive           = "live-btn"
	ClassLiveActive     = "live-btn-active"
)

const startLayout = "Mon, 02 Jan 2006 15:04 MST"

// Button is a page control
type Button struct {
	Label string
	Class string
}

// Page is what the circle page shows for a given state and viewer
type Page struct {
	Status      string
	Title       string
	Host        string
	Tags        []string
	StartsAt    string
	Capacity    int
	SignUps     int
	Description string
	IsHost      bool
	Loading     bool
	Buttons     []Button
}

// Present maps view-model state to page content for the viewer userID.
// Host and non-host controls never appear together.
func Present(s State, userID string) Page {
	c := s.Circle
	p := Page{
		Status:      StatusTextUpcoming,
		Title:       c.Title,
		Host:        c.Username,
		Tags:        s.Tags,
		Capacity:    c.ParticipantsLimit,
		SignUps:     len(s.Registrations),
		Description: c.Description,
		IsHost:      c.IsHost(userID),
		Loading:     !s.Ready(),
	}
	if c.IsLive {
		p.Status = StatusTextLive
	} else {
		p.StartsAt = FormatStart(c.StartDate)
	}

	switch {
	case p.IsHost && c.IsLive:
		p.Buttons = []Button{{Label: LabelLiveNow, Class: ClassLiveActive}}
	case p.IsHost:
		p.Buttons = []Button{{Label: LabelGoLive, Class: ClassLive}}
	case !c.IsLive:
		register := Button{Label: LabelSignUp, Class: ClassRegister}
		if s.IsRegistered {
			register = Button{Label: LabelGoing, Class: ClassRegisterActive}
		}
		p.Buttons = []Button{{Label: LabelInterested, Class: ClassInterested}, register}
	}

	return p
}

// Labels returns the button labels in display order
func (p Page) Labels() []string {
	labels := make([]string, 0, len(p.Buttons))
	for _, b := range p.Buttons {
		labels = append(labels, b.Label)
	}
	return labels
}

const pageText = `{{if .Loading}}(loading)
{{end}}[{{.Status}}] {{.Title}}
{{- if .Tags}}
Tags: {{join .Tags ", "}}
{{- end}}
{{- if .Host}}
Host: {{.Host}}
{{- end}}
{{- if .StartsAt}}
Starts: {{.StartsAt}}
{{- end}}
{{- if .Capacity}}
Capacity: {{.Capacity}}
{{- end}}
Signed up: {{.SignUps}}
{{- if .Description}}

{{.Description}}
{{- end}}
{{- if .Buttons}}

{{range .Buttons}}[ {{.Label}} ] {{end}}
{{- end}}
`

var pageTmpl = template.Must(template.New("page").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(pageText))

// RenderPage writes the page as text
func RenderPage(w io.Writer, p Page) error {
	if err := pageTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("render circle page: %w", err)
	}
	return nil
}

// FormatStart formats a scheduled start, empty for the zero time
func FormatStart(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(startLayout)
}
