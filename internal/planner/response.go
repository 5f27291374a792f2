// README: Wire shapes returned by the planner backend.
package planner

import (
	"encoding/json"

	"voyage/internal/modules/itinerary"
)

// Backend action discriminants. Responses that match none of these still
// decode; the reconciler maps them to its fallback branch.
const (
	ActionAsk         = "ask"
	ActionItinerary   = "itinerary"
	ActionEditApplied = "edit_applied"
	ActionError       = "error"
)

// Citation as sent by the backend. The wire form is either an object or a
// bare string; a bare string carries only the source label.
type Citation struct {
	Source  string `json:"source"`
	Type    string `json:"type,omitempty"`
	POI     string `json:"poi,omitempty"`
	Section string `json:"section,omitempty"`
}

func (c *Citation) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		c.Source = s
		return nil
	}
	type plain Citation
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Citation(p)
	return nil
}

// Response is the union of every field any planner endpoint may return.
// Which fields are meaningful depends on the branch the reconciler selects.
type Response struct {
	Action          string               `json:"action"`
	Message         string               `json:"message"`
	Itinerary       *itinerary.Itinerary `json:"itinerary"`
	POICount        int                  `json:"poi_count"`
	RAGLoaded       bool                 `json:"rag_loaded"`
	RAGCitations    []Citation           `json:"rag_citations"`
	RAGDescriptions map[string]string    `json:"rag_descriptions"`
	Changes         []map[string]any     `json:"changes"`
	Answer          string               `json:"answer"`
	Explanation     string               `json:"explanation"`
	Citations       []Citation           `json:"citations"`
}

// Readiness is the health/ready probe result.
type Readiness struct {
	Ready         bool `json:"ready"`
	LLMConfigured bool `json:"llm_configured"`
}
