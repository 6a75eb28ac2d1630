package models

import "time"

// DateLayout is the wire and storage format for plan dates.
const DateLayout = "2006-01-02"

// Weather is the snapshot attached to a day by the recommendation gateway.
type Weather struct {
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Description string  `json:"description"`
}

// DayPlan is one calendar day inside a weekly plan.
type DayPlan struct {
	Date      string   `json:"date"`
	DayOfWeek string   `json:"day_of_week"`
	Occasion  string   `json:"occasion"`
	Weather   *Weather `json:"weather,omitempty"`
	Outfit    *Outfit  `json:"outfit,omitempty"`
	Locked    bool     `json:"locked"`
}

// WeeklyPlan is an ordered run of day plans. ID is empty until first save.
// All transitions return a fresh value; a plan held by a caller is never
// mutated underneath it.
type WeeklyPlan struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Days      []DayPlan `json:"days"`
}

// NewWeeklyPlan builds numDays consecutive unlocked days starting at start.
func NewWeeklyPlan(userID, name string, start time.Time, numDays int, defaultOccasion string) WeeklyPlan {
	if numDays < 1 {
		numDays = 1
	}
	days := make([]DayPlan, 0, numDays)
	for i := 0; i < numDays; i++ {
		date := start.AddDate(0, 0, i)
		days = append(days, DayPlan{
			Date:      date.Format(DateLayout),
			DayOfWeek: date.Weekday().String(),
			Occasion:  defaultOccasion,
		})
	}
	return WeeklyPlan{
		UserID:    userID,
		Name:      name,
		StartDate: days[0].Date,
		EndDate:   days[len(days)-1].Date,
		Days:      days,
	}
}

// Day returns the plan entry for the date, or nil when outside the range.
func (p WeeklyPlan) Day(date string) *DayPlan {
	for i := range p.Days {
		if p.Days[i].Date == date {
			return &p.Days[i]
		}
	}
	return nil
}

// WithOccasion sets the occasion for the date. Lock and outfit are untouched.
func (p WeeklyPlan) WithOccasion(date, occasion string) WeeklyPlan {
	next := p.clone()
	if day := next.Day(date); day != nil {
		day.Occasion = occasion
	}
	return next
}

// ToggleLock flips the lock on the date. Locking a day without an outfit is
// a no-op: there is nothing to freeze. Unlocking keeps the outfit and only
// re-enables the day for regeneration.
func (p WeeklyPlan) ToggleLock(date string) WeeklyPlan {
	next := p.clone()
	if day := next.Day(date); day != nil {
		if !day.Locked && day.Outfit == nil {
			return next
		}
		day.Locked = !day.Locked
	}
	return next
}

// WithDayResult overwrites the outfit and weather for the date. Callers must
// check lock state first; this is a plain field replacement.
func (p WeeklyPlan) WithDayResult(date string, outfit *Outfit, weather *Weather) WeeklyPlan {
	next := p.clone()
	if day := next.Day(date); day != nil {
		day.Outfit = outfit
		day.Weather = weather
	}
	return next
}

// GenerationTarget pairs a date with its occasion for a gateway request.
type GenerationTarget struct {
	Date     string `json:"date"`
	Occasion string `json:"occasion"`
}

// Targets computes the effective generation set: the requested dates (all
// plan dates when requested is empty) minus every locked day. Locked days
// are excluded even when explicitly requested.
func (p WeeklyPlan) Targets(requested []string) []GenerationTarget {
	want := make(map[string]struct{}, len(requested))
	for _, date := range requested {
		want[date] = struct{}{}
	}
	var targets []GenerationTarget
	for _, day := range p.Days {
		if day.Locked {
			continue
		}
		if len(requested) > 0 {
			if _, ok := want[day.Date]; !ok {
				continue
			}
		}
		targets = append(targets, GenerationTarget{Date: day.Date, Occasion: day.Occasion})
	}
	return targets
}

func (p WeeklyPlan) clone() WeeklyPlan {
	next := p
	next.Days = make([]DayPlan, len(p.Days))
	copy(next.Days, p.Days)
	for i := range next.Days {
		if next.Days[i].Weather != nil {
			w := *next.Days[i].Weather
			next.Days[i].Weather = &w
		}
		if next.Days[i].Outfit != nil {
			o := *next.Days[i].Outfit
			o.ClothingItems = append([]string(nil), o.ClothingItems...)
			next.Days[i].Outfit = &o
		}
	}
	return next
}
