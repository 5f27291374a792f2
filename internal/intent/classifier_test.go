package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		hasItinerary bool
		want         Kind
	}{
		{
			name:         "no itinerary always plans",
			text:         "why is this plan feasible",
			hasItinerary: false,
			want:         KindPlan,
		},
		{
			name:         "no itinerary plans even for edit phrasing",
			text:         "swap day 2 and day 3",
			hasItinerary: false,
			want:         KindPlan,
		},
		{
			name:         "fresh planning request",
			text:         "Plan a 3-day trip to Jaipur",
			hasItinerary: false,
			want:         KindPlan,
		},
		{
			name:         "swap routes to edit",
			text:         "swap day 2 and day 3",
			hasItinerary: true,
			want:         KindEdit,
		},
		{
			name:         "make day routes to edit",
			text:         "Make day 2 more relaxed",
			hasItinerary: true,
			want:         KindEdit,
		},
		{
			name:         "remove routes to edit",
			text:         "remove the fort visit",
			hasItinerary: true,
			want:         KindEdit,
		},
		{
			name:         "numeric day reference routes to edit",
			text:         "day 2 looks too packed",
			hasItinerary: true,
			want:         KindEdit,
		},
		{
			name:         "spelled day reference routes to edit",
			text:         "can you lighten day two",
			hasItinerary: true,
			want:         KindEdit,
		},
		{
			name:         "edit wins over question",
			text:         "why add day 2",
			hasItinerary: true,
			want:         KindEdit,
		},
		{
			name:         "why routes to question",
			text:         "why is this plan feasible",
			hasItinerary: true,
			want:         KindQuestion,
		},
		{
			name:         "weather routes to question",
			text:         "what happens if the weather turns bad",
			hasItinerary: true,
			want:         KindQuestion,
		},
		{
			name:         "doable routes to question",
			text:         "is all of this doable in one morning",
			hasItinerary: true,
			want:         KindQuestion,
		},
		{
			name:         "case insensitive",
			text:         "IS THIS PLAN REALISTIC",
			hasItinerary: true,
			want:         KindQuestion,
		},
		{
			name:         "unmatched text with itinerary replans",
			text:         "plan a weekend in Udaipur instead",
			hasItinerary: true,
			want:         KindPlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.text, tt.hasItinerary); got != tt.want {
				t.Errorf("Classify(%q, %v) = %v, want %v", tt.text, tt.hasItinerary, got, tt.want)
			}
		})
	}
}
