package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TrackType тип опубликованного медиа-трека
type TrackType int

const (
	TrackTypeUnspecified TrackType = iota
	TrackTypeAudio
	TrackTypeVideo
	TrackTypeScreenShare
)

var trackTypeNames = map[TrackType]string{
	TrackTypeUnspecified: "UNSPECIFIED",
	TrackTypeAudio:       "AUDIO",
	TrackTypeVideo:       "VIDEO",
	TrackTypeScreenShare: "SCREEN_SHARE",
}

func (t TrackType) String() string {
	if name, ok := trackTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TrackType(%d)", int(t))
}

// MarshalJSON сериализует тип трека по имени
func (t TrackType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON принимает как имя ("AUDIO"), так и число
func (t *TrackType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		for tt, n := range trackTypeNames {
			if strings.EqualFold(n, name) {
				*t = tt
				return nil
			}
		}
		return fmt.Errorf("unknown track type %q", name)
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid track type: %s", data)
	}
	*t = TrackType(n)
	return nil
}

// Participant участник звонка (данные принадлежат медиа-SDK, здесь только чтение)
type Participant struct {
	SessionID       string      `json:"session_id"`
	UserID          string      `json:"user_id"`
	Name            string      `json:"name"`
	PublishedTracks []TrackType `json:"published_tracks"`
}

// Publishes проверяет, публикует ли участник трек данного типа
func (p *Participant) Publishes(t TrackType) bool {
	for _, tt := range p.PublishedTracks {
		if tt == t {
			return true
		}
	}
	return false
}
