// README: Itinerary aggregate; wire shapes match the planner backend's JSON.
package itinerary

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// Block kinds as emitted by the planner backend.
const (
	BlockMorning   = "morning"
	BlockAfternoon = "afternoon"
	BlockEvening   = "evening"
	BlockOther     = "other"
)

type POI struct {
	ID            string `json:"poiId"`
	Name          string `json:"name"`
	Category      string `json:"category,omitempty"`
	Duration      int    `json:"duration,omitempty"`
	ArrivalTime   string `json:"arrivalTime,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
}

type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Block struct {
	Kind          string      `json:"type"`
	POIs          []POI       `json:"pois"`
	TravelTime    int         `json:"travelTime,omitempty"`
	TotalDuration int         `json:"totalDuration,omitempty"`
	Time          *TimeWindow `json:"time,omitempty"`
}

type Day struct {
	Day              int      `json:"day"`
	Date             string   `json:"date,omitempty"`
	Blocks           []Block  `json:"blocks"`
	TotalTravelTime  int      `json:"totalTravelTime,omitempty"`
	FeasibilityScore *float64 `json:"feasibilityScore,omitempty"`
}

// Itinerary is replaced wholesale on every successful plan or edit; the
// client never patches days or blocks in place.
type Itinerary struct {
	Days []Day `json:"days"`
}

func (it *Itinerary) DayCount() int {
	if it == nil {
		return 0
	}
	return len(it.Days)
}

// POICount sums points of interest across every block of every day.
func (it *Itinerary) POICount() int {
	if it == nil {
		return 0
	}
	return lo.SumBy(it.Days, func(d Day) int {
		return lo.SumBy(d.Blocks, func(b Block) int {
			return len(b.POIs)
		})
	})
}

var ErrEmpty = errors.New("itinerary has no days")

// Validate checks the structural invariants the client relies on: at least
// one day, positive day indexes, feasibility scores inside [0,1].
func (it *Itinerary) Validate() error {
	if it.DayCount() == 0 {
		return ErrEmpty
	}
	for _, d := range it.Days {
		if d.Day < 1 {
			return fmt.Errorf("day index %d is not 1-based", d.Day)
		}
		if d.FeasibilityScore != nil && (*d.FeasibilityScore < 0 || *d.FeasibilityScore > 1) {
			return fmt.Errorf("day %d feasibility score %v outside [0,1]", d.Day, *d.FeasibilityScore)
		}
	}
	return nil
}
