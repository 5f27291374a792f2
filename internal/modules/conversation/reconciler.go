// README: Folds heterogeneous planner responses into session state.
package conversation

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"voyage/internal/planner"
)

// fallbackMessage is what the user sees when a 2xx response matches no
// recognized shape. Never raised as an error.
const fallbackMessage = "Something went wrong. Please try again."

// variant is the closed set of response shapes reconciliation handles. The
// branch precedence is fixed: ask, itinerary, edit_applied, answer,
// explanation, error, then fallback.
type variant int

const (
	variantAsk variant = iota
	variantItinerary
	variantEditApplied
	variantAnswer
	variantExplanation
	variantError
	variantFallback
)

// classifyResponse selects the branch. A response missing the fields its
// discriminant requires is treated as unrecognized rather than crashing.
func classifyResponse(resp *planner.Response) variant {
	switch {
	case resp == nil:
		return variantFallback
	case resp.Action == planner.ActionAsk && resp.Message != "":
		return variantAsk
	case resp.Action == planner.ActionItinerary && resp.Itinerary != nil && len(resp.Itinerary.Days) > 0:
		return variantItinerary
	case resp.Action == planner.ActionEditApplied && resp.Itinerary != nil && len(resp.Itinerary.Days) > 0:
		return variantEditApplied
	case resp.Answer != "":
		return variantAnswer
	case resp.Explanation != "":
		return variantExplanation
	case resp.Action == planner.ActionError && resp.Message != "":
		return variantError
	default:
		return variantFallback
	}
}

// Reconcile folds one backend response into the session: it appends exactly
// one assistant message, replaces the itinerary wholesale when the branch
// carries one, and merges general citations. Returns the assistant text.
func Reconcile(resp *planner.Response, st *State) string {
	var content string

	switch classifyResponse(resp) {
	case variantAsk:
		content = resp.Message

	case variantItinerary:
		st.Itinerary = resp.Itinerary
		if resp.RAGCitations != nil {
			st.Enrichment = toCitations(resp.RAGCitations)
		}
		if resp.RAGDescriptions != nil {
			st.POIDescriptions = resp.RAGDescriptions
		}
		poiCount := resp.POICount
		if poiCount == 0 {
			poiCount = resp.Itinerary.POICount()
		}
		ragInfo := ""
		if resp.RAGLoaded {
			ragInfo = fmt.Sprintf("\n\nEnriched with travel guide information from %d sources", len(resp.RAGCitations))
		}
		content = fmt.Sprintf("%s\n\nI've created a %d-day itinerary with %d places to visit.%s",
			resp.Message, resp.Itinerary.DayCount(), poiCount, ragInfo)

	case variantEditApplied:
		st.Itinerary = resp.Itinerary
		content = fmt.Sprintf("%s\n\nYour itinerary has been updated! %d changes made.",
			resp.Message, len(resp.Changes))

	case variantAnswer:
		content = resp.Answer + citationSuffix(resp.Citations)

	case variantExplanation:
		content = resp.Explanation + citationSuffix(resp.Citations)

	case variantError:
		content = resp.Message

	default:
		content = fallbackMessage
	}

	st.appendMessage(RoleAssistant, content)
	if resp != nil {
		mergeSources(st, resp.Citations)
	}
	return content
}

// mergeSources appends general citations whose source label is not already
// present. Labels are compared exactly as received; type is defaulted to
// "general" but plays no part in dedupe.
func mergeSources(st *State, incoming []planner.Citation) {
	for _, c := range incoming {
		if c.Source == "" || st.hasSource(c.Source) {
			continue
		}
		st.Sources = append(st.Sources, Citation{
			Source:  c.Source,
			Type:    orGeneral(c.Type),
			POI:     c.POI,
			Section: c.Section,
		})
	}
}

func citationSuffix(citations []planner.Citation) string {
	if len(citations) == 0 {
		return ""
	}
	labels := lo.Map(citations, func(c planner.Citation, _ int) string { return c.Source })
	return "\n\nSources: " + strings.Join(labels, ", ")
}

func toCitations(in []planner.Citation) []Citation {
	return lo.Map(in, func(c planner.Citation, _ int) Citation {
		return Citation{Source: c.Source, Type: c.Type, POI: c.POI, Section: c.Section}
	})
}

func orGeneral(t string) string {
	if t == "" {
		return "general"
	}
	return t
}
