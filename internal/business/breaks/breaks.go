package breaks

import (
	"math"
	"sort"
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/google/uuid"
)

const (
	minBreakLength    = 15
	maxBreakHours     = 6
	defaultBreakColor = "#F7EBF7"
)

// Outcome is the result of placing new breaks into one day.
type Outcome struct {
	Placed []*model.Event
	// Dropped holds breaks no gap could take, at their unplaced position.
	Dropped []*model.Event
}

// ShouldGenerate reports whether the day still owes breaks: the user wants breaks, the day has
// events, the breaks already on it do not cover the break budget and events leave room.
func ShouldGenerate(workingHours float64, pref *model.UserPreference, events []*model.Event) bool {
	if pref == nil || pref.BreakLength <= 0 || len(events) == 0 {
		return false
	}

	minBreakHours := float64(pref.BreakLength) / 60 * float64(pref.MinNumberOfBreaks)
	budget := math.Max(minBreakHours, mustBeBreakHours(workingHours, pref))

	var breakHours, eventHours float64
	for _, e := range events {
		if e.IsBreak {
			breakHours += e.Length().Hours()
		} else {
			eventHours += e.Length().Hours()
		}
	}

	if breakHours >= budget {
		return false
	}
	if eventHours >= workingHours {
		return false
	}

	return true
}

// Generate creates the breaks still owed on day, all sitting on the start of the first
// non-break event. Adjust moves them into gaps. day is a host wall clock.
func Generate(workingHours float64, pref *model.UserPreference, events []*model.Event, day model.WallClock, calendarID string) []*model.Event {
	if pref == nil || pref.BreakLength <= 0 {
		return nil
	}

	var hoursUsed float64
	for _, e := range events {
		hoursUsed += e.Length().Hours()
	}

	hoursAvailable := math.Max(workingHours-hoursUsed, mustBeBreakHours(workingHours, pref))
	if hoursAvailable <= 0 {
		return nil
	}

	breakLengthHours := float64(pref.BreakLength) / 60
	toGenerate := math.Min(breakLengthHours*float64(pref.MinNumberOfBreaks), hoursAvailable)

	var breakHoursUsed float64
	for _, e := range events {
		if !e.IsBreak {
			continue
		}
		start, _, err := e.HostRange(day.Zone)
		if err != nil || !start.SameDay(day) {
			continue
		}
		breakHoursUsed += e.Length().Hours()
	}

	owed := toGenerate - breakHoursUsed
	if owed > hoursAvailable {
		return nil
	}

	n := int(math.Floor(owed / breakLengthHours))
	if n < 1 || toGenerate > maxBreakHours {
		return nil
	}

	var mirror *model.Event
	for _, e := range events {
		if !e.IsBreak {
			mirror = e
			break
		}
	}
	if mirror == nil {
		return nil
	}

	return newBreaks(pref, n, mirror, calendarID)
}

func newBreaks(pref *model.UserPreference, n int, mirror *model.Event, calendarID string) []*model.Event {
	length := pref.BreakLength
	if length < minBreakLength {
		length = minBreakLength
	}

	if calendarID == "" {
		calendarID = mirror.CalendarID
	}

	color := pref.BreakColor
	if color == "" {
		color = defaultBreakColor
	}

	res := make([]*model.Event, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, &model.Event{
			ID:         model.EventKey{ID: uuid.NewString(), CalendarID: calendarID},
			UserID:     pref.UserID,
			CalendarID: calendarID,
			Title:      model.BreakTitle,
			Notes:      model.BreakTitle,
			StartDate:  mirror.StartDate,
			EndDate:    mirror.StartDate.Add(time.Duration(length) * time.Minute),
			Timezone:   mirror.Timezone,
			Priority:   1,
			Modifiable: true,
			Duration:   length,
			Color:      color,
			IsBreak:    true,
			UserModified: model.UserModified{
				UserModifiedDuration: true,
				UserModifiedColor:    true,
			},
			Method: model.MethodCreate,
		})
	}

	return res
}

type interval struct {
	start, end model.WallClock
}

func (i interval) overlaps(o interval) bool {
	return i.start.Before(o.end) && o.start.Before(i.end)
}

// Adjust moves every new break to end where one of the day's non-break events starts. A gap is
// taken only when it lies inside the work window and overlaps neither the day's events nor a break
// placed before it. Breaks without a gap are dropped. day is a host wall clock, placed breaks are
// expressed on it; when day falls inside the work window no break starts before it.
func Adjust(events, newBreaks []*model.Event, pref *model.UserPreference, day model.WallClock) (Outcome, error) {
	var out Outcome
	if len(newBreaks) == 0 {
		return out, nil
	}

	window, ok := pref.Window(day.ISOWeekday())
	if !ok {
		out.Dropped = newBreaks
		return out, nil
	}
	workStart, workEnd := window.Bounds(day)
	if day.After(workStart) {
		workStart = day
	}
	work := interval{start: workStart, end: workEnd}

	busy := make([]interval, 0, len(events)+len(newBreaks))
	var anchors []model.WallClock
	for _, e := range events {
		start, end, err := e.HostRange(day.Zone)
		if err != nil {
			return Outcome{}, err
		}
		busy = append(busy, interval{start: start, end: end})
		if !e.IsBreak {
			anchors = append(anchors, start)
		}
	}
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].Before(anchors[j])
	})

	length := pref.BreakLength
	if length < minBreakLength {
		length = minBreakLength
	}

	for _, b := range newBreaks {
		placed := false
		for _, end := range anchors {
			candidate := interval{start: end.Add(-time.Duration(length) * time.Minute), end: end}
			if !fits(candidate, work, busy) {
				continue
			}

			moved := b.Clone()
			moved.StartDate = candidate.start
			moved.EndDate = candidate.end
			moved.Timezone = day.Zone

			out.Placed = append(out.Placed, moved)
			busy = append(busy, candidate)
			placed = true
			break
		}

		if !placed {
			out.Dropped = append(out.Dropped, b)
		}
	}

	return out, nil
}

func fits(candidate, work interval, busy []interval) bool {
	if candidate.start.Before(work.start) || candidate.end.After(work.end) {
		return false
	}
	for _, b := range busy {
		if candidate.overlaps(b) {
			return false
		}
	}
	return true
}

func mustBeBreakHours(workingHours float64, pref *model.UserPreference) float64 {
	return workingHours * (1 - float64(pref.MaxWorkLoadPercent)/100)
}
