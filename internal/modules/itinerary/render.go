// README: Read-only projections from the itinerary model to display structures.
package itinerary

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// DayView is what a display surface gets: blocks with no POIs are filtered
// out here, never deleted from the model.
type DayView struct {
	Day              int      `json:"day"`
	Date             string   `json:"date,omitempty"`
	Blocks           []Block  `json:"blocks"`
	TotalTravelTime  int      `json:"totalTravelTime,omitempty"`
	FeasibilityScore *float64 `json:"feasibilityScore,omitempty"`
}

type View struct {
	Days     []DayView `json:"days"`
	DayCount int       `json:"dayCount"`
	POICount int       `json:"poiCount"`
}

func Render(it *Itinerary) View {
	if it == nil {
		return View{}
	}
	days := lo.Map(it.Days, func(d Day, _ int) DayView {
		return DayView{
			Day:              d.Day,
			Date:             d.Date,
			Blocks:           lo.Filter(d.Blocks, func(b Block, _ int) bool { return len(b.POIs) > 0 }),
			TotalTravelTime:  d.TotalTravelTime,
			FeasibilityScore: d.FeasibilityScore,
		}
	})
	return View{Days: days, DayCount: it.DayCount(), POICount: it.POICount()}
}

// Summary produces the one-line stats string shown in chat and headers,
// e.g. "3-day itinerary with 12 places to visit".
func Summary(it *Itinerary) string {
	return fmt.Sprintf("%d-day itinerary with %d places to visit", it.DayCount(), it.POICount())
}

// BlockLabel renders a block heading such as "Morning" or
// "Afternoon (12:00 - 17:00)".
func BlockLabel(b Block) string {
	kind := b.Kind
	if kind == "" {
		kind = BlockOther
	}
	label := strings.ToUpper(kind[:1]) + kind[1:]
	if b.Time != nil {
		label += fmt.Sprintf(" (%s - %s)", b.Time.Start, b.Time.End)
	}
	return label
}
