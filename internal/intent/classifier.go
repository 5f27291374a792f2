// README: Intent classifier; maps raw user text to a planner operation.
package intent

import (
	"regexp"
	"strings"
)

type Kind string

const (
	KindPlan     Kind = "plan"
	KindEdit     Kind = "edit"
	KindQuestion Kind = "question"
)

// Edit fragments imply a structural change to an existing plan. Question
// fragments imply a query about feasibility, rationale or weather. The two
// sets are checked in that order: edit wins when both match ("why add day 2"
// is an edit). This ordering must not change; swapping it silently misroutes
// the request to the wrong endpoint.
var editFragments = []string{
	"make day",
	"swap",
	"reduce",
	"add ",
	"remove",
	"change day",
}

var questionFragments = []string{
	"why",
	"what if",
	"doable",
	"feasible",
	"realistic",
	"rain",
	"weather",
	"is this plan",
}

var (
	dayNumberPattern  = regexp.MustCompile(`day\s*\d+`)
	daySpelledPattern = regexp.MustCompile(`day\s*(one|two|three|four|five)`)
)

// Classify decides which planner operation the text should invoke. Without an
// itinerary every utterance is a fresh planning request; the backend decides
// whether to merge or replace.
func Classify(text string, hasItinerary bool) Kind {
	if !hasItinerary {
		return KindPlan
	}

	lower := strings.ToLower(text)
	for _, f := range editFragments {
		if strings.Contains(lower, f) {
			return KindEdit
		}
	}
	if dayNumberPattern.MatchString(lower) || daySpelledPattern.MatchString(lower) {
		return KindEdit
	}
	for _, f := range questionFragments {
		if strings.Contains(lower, f) {
			return KindQuestion
		}
	}
	return KindPlan
}
