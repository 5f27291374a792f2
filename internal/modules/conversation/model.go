// README: Conversation session state: messages, itinerary, citations, transient UI flags.
package conversation

import (
	"time"

	"voyage/internal/modules/itinerary"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is immutable once appended. Ordering is insertion order and the
// timestamp is assigned exactly once, at append time.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Citation struct {
	Source  string `json:"source"`
	Type    string `json:"type,omitempty"`
	POI     string `json:"poi,omitempty"`
	Section string `json:"section,omitempty"`
}

// State is the single source of truth for one session. Two citation streams
// coexist: Sources (general, deduplicated by source label, append-only) and
// Enrichment (ordered, never deduplicated against Sources).
type State struct {
	ID        string               `json:"id"`
	Messages  []Message            `json:"messages"`
	Itinerary *itinerary.Itinerary `json:"itinerary,omitempty"`

	Sources         []Citation        `json:"sources"`
	Enrichment      []Citation        `json:"enrichment"`
	POIDescriptions map[string]string `json:"poiDescriptions,omitempty"`

	IsLoading      bool   `json:"isLoading"`
	LastError      string `json:"lastError,omitempty"`
	EmailModalOpen bool   `json:"emailModalOpen"`
	EmailSending   bool   `json:"emailSending"`
	EmailSuccess   string `json:"emailSuccess,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// errGen invalidates pending auto-clear timers when a newer error lands.
	errGen uint64
}

func (s *State) HasItinerary() bool {
	return s.Itinerary != nil && len(s.Itinerary.Days) > 0
}

func (s *State) appendMessage(role Role, content string) Message {
	m := Message{Role: role, Content: content, Timestamp: time.Now()}
	s.Messages = append(s.Messages, m)
	s.UpdatedAt = m.Timestamp
	return m
}

// hasSource reports whether a general citation with this exact label is
// already recorded. Dedupe is an exact match on the label as received.
func (s *State) hasSource(label string) bool {
	for _, c := range s.Sources {
		if c.Source == label {
			return true
		}
	}
	return false
}
