package cascade

import (
	"time"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/google/uuid"
)

// Inputs are the sources an event's defaults are resolved from. Only Event is required.
type Inputs struct {
	Event      *model.Event
	Previous   *model.Event
	Category   *model.Category
	Preference *model.UserPreference
}

// source yields a candidate value, ok is false when the source does not apply.
type source[T any] func() (T, bool)

func pick[T any](sources ...source[T]) (T, bool) {
	for _, s := range sources {
		if v, ok := s(); ok {
			return v, true
		}
	}

	var zero T
	return zero, false
}

// resolve keeps current when the attribute is locked by the user, otherwise takes the first
// applicable source and falls back to current.
func resolve[T any](current T, locked bool, sources ...source[T]) T {
	if locked {
		return current
	}
	if v, ok := pick(sources...); ok {
		return v
	}
	return current
}

type copyFlag func(model.CopyFlags) bool

var (
	copyAvailability      copyFlag = func(f model.CopyFlags) bool { return f.CopyAvailability }
	copyTimePreference    copyFlag = func(f model.CopyFlags) bool { return f.CopyTimePreference }
	copyPriorityLevel     copyFlag = func(f model.CopyFlags) bool { return f.CopyPriorityLevel }
	copyModifiable        copyFlag = func(f model.CopyFlags) bool { return f.CopyModifiable }
	copyIsBreak           copyFlag = func(f model.CopyFlags) bool { return f.CopyIsBreak }
	copyIsMeeting         copyFlag = func(f model.CopyFlags) bool { return f.CopyIsMeeting }
	copyIsExternalMeeting copyFlag = func(f model.CopyFlags) bool { return f.CopyIsExternalMeeting }
	copyDuration          copyFlag = func(f model.CopyFlags) bool { return f.CopyDuration }
	copyColor             copyFlag = func(f model.CopyFlags) bool { return f.CopyColor }
)

// copied yields the previous event's value when owner carries the copy flag. Every tier copies
// from the previous event, they differ in whose flag opens the copy.
func copied[T any](owner *model.CopyFlags, flag copyFlag, prev *model.Event, value func(*model.Event) T) source[T] {
	return func() (T, bool) {
		var zero T
		if owner == nil || prev == nil || !flag(*owner) {
			return zero, false
		}
		return value(prev), true
	}
}

func fixed[T any](v T, ok bool) source[T] {
	return func() (T, bool) {
		return v, ok
	}
}

func deref[T any](p *T) source[T] {
	return func() (T, bool) {
		if p == nil {
			var zero T
			return zero, false
		}
		return *p, true
	}
}

// nonZero lets s apply only when it yields a value other than the zero value.
func nonZero[T comparable](s source[T]) source[T] {
	return func() (T, bool) {
		v, ok := s()
		var zero T
		return v, ok && v != zero
	}
}

func (in Inputs) previousFlags() *model.CopyFlags {
	if in.Previous == nil {
		return nil
	}
	return &in.Previous.CopyFlags
}

func (in Inputs) categoryFlags() *model.CopyFlags {
	if in.Category == nil {
		return nil
	}
	return &in.Category.CopyFlags
}

func (in Inputs) preferenceFlags() *model.CopyFlags {
	if in.Preference == nil {
		return nil
	}
	return &in.Preference.CopyFlags
}

// tiers builds the fixed resolution order: previous event, category copy, category default,
// preference copy.
func tiers[T any](in Inputs, flag copyFlag, value func(*model.Event) T, defaults ...source[T]) []source[T] {
	res := []source[T]{
		copied(in.previousFlags(), flag, in.Previous, value),
		copied(in.categoryFlags(), flag, in.Previous, value),
	}
	res = append(res, defaults...)
	return append(res, copied(in.preferenceFlags(), flag, in.Previous, value))
}

func transparencyOf(e *model.Event) model.Transparency { return e.Transparency }
func priorityOf(e *model.Event) int                   { return e.Priority }
func modifiableOf(e *model.Event) bool                { return e.Modifiable }
func isBreakOf(e *model.Event) bool                   { return e.IsBreak }
func isMeetingOf(e *model.Event) bool                 { return e.IsMeeting }
func isExternalMeetingOf(e *model.Event) bool         { return e.IsExternalMeeting }
func colorOf(e *model.Event) string                   { return e.Color }
func preferredTimeOf(e *model.Event) string           { return e.PreferredTime }
func preferredDayOfWeekOf(e *model.Event) int         { return e.PreferredDayOfWeek }
func preferredStartOf(e *model.Event) string          { return e.PreferredStartTimeRange }
func preferredEndOf(e *model.Event) string            { return e.PreferredEndTimeRange }

// durationOf is the stored duration in minutes, or the event's own length when none is stored.
func durationOf(e *model.Event) int {
	if e.Duration > 0 {
		return e.Duration
	}
	return int(e.Length().Minutes())
}

// Apply resolves every overridable attribute of in.Event and returns the resolved copy.
// Attributes the user modified are never touched.
func Apply(in Inputs) *model.Event {
	e := in.Event
	res := e.Clone()
	cat := in.Category

	availability := fixed(model.Transparency(""), false)
	priority := fixed(0, false)
	color := fixed("", false)
	modifiable, isBreak := fixed(false, false), fixed(false, false)
	isMeeting, isExternal := fixed(false, false), fixed(false, false)
	labelMeeting, labelExternal := fixed(false, false), fixed(false, false)
	if cat != nil {
		if cat.DefaultAvailability != nil {
			availability = fixed(transparencyFor(*cat.DefaultAvailability), true)
		}
		priority = nonZero(deref(cat.DefaultPriorityLevel))
		modifiable = deref(cat.DefaultModifiable)
		isBreak = deref(cat.DefaultIsBreak)
		isMeeting = deref(cat.DefaultIsMeeting)
		isExternal = deref(cat.DefaultIsExternalMeeting)
		color = fixed(cat.Color, cat.Color != "")
		labelMeeting = fixed(true, cat.Label() == model.LabelMeeting)
		labelExternal = fixed(true, cat.Label() == model.LabelExternalMeeting)
	}

	res.Transparency = resolve(e.Transparency, e.UserModifiedAvailability, tiers(in, copyAvailability, transparencyOf, availability)...)
	res.Priority = resolve(e.Priority, e.UserModifiedPriorityLevel, tiers(in, copyPriorityLevel, priorityOf, priority)...)
	res.Modifiable = resolve(e.Modifiable, e.UserModifiedModifiable, tiers(in, copyModifiable, modifiableOf, modifiable)...)
	res.IsBreak = resolve(e.IsBreak, e.UserModifiedIsBreak, tiers(in, copyIsBreak, isBreakOf, isBreak)...)
	res.IsMeeting = resolve(e.IsMeeting, e.UserModifiedIsMeeting, tiers(in, copyIsMeeting, isMeetingOf, labelMeeting, isMeeting)...)
	res.IsExternalMeeting = resolve(e.IsExternalMeeting, e.UserModifiedIsExternalMeeting, tiers(in, copyIsExternalMeeting, isExternalMeetingOf, labelExternal, isExternal)...)
	res.Color = resolve(e.Color, e.UserModifiedColor, tiers(in, copyColor, colorOf, color)...)

	if res.Priority == 0 && !e.UserModifiedPriorityLevel {
		res.Priority = 1
	}

	locked := e.UserModifiedTimePreference
	res.PreferredTime = resolve(e.PreferredTime, locked, timeTiers(in, preferredTimeOf)...)
	res.PreferredDayOfWeek = resolve(e.PreferredDayOfWeek, locked, timeTiers(in, preferredDayOfWeekOf)...)
	res.PreferredStartTimeRange = resolve(e.PreferredStartTimeRange, locked, timeTiers(in, preferredStartOf)...)
	res.PreferredEndTimeRange = resolve(e.PreferredEndTimeRange, locked, timeTiers(in, preferredEndOf)...)
	res.PreferredTimeRanges = resolve(e.PreferredTimeRanges, locked, rangeTiers(in)...)

	if !e.UserModifiedDuration {
		d, ok := pick(copied(in.previousFlags(), copyDuration, in.Previous, durationOf),
			copied(in.categoryFlags(), copyDuration, in.Previous, durationOf),
			copied(in.preferenceFlags(), copyDuration, in.Previous, durationOf),
		)
		if ok && d > 0 {
			res.Duration = d
			res.EndDate = res.StartDate.Add(time.Duration(d) * time.Minute)
		}
	}

	if in.Previous != nil {
		if in.Previous.Unlink {
			res.CopyFlags = model.CopyFlags{}
			res.Unlink = true
		} else {
			res.CopyFlags = in.Previous.CopyFlags
			res.Unlink = false
		}
	}

	return res
}

// timeTiers copies a preferred time attribute only when the previous event has one set.
func timeTiers[T comparable](in Inputs, value func(*model.Event) T) []source[T] {
	return []source[T]{
		nonZero(copied(in.previousFlags(), copyTimePreference, in.Previous, value)),
		nonZero(copied(in.categoryFlags(), copyTimePreference, in.Previous, value)),
		nonZero(copied(in.preferenceFlags(), copyTimePreference, in.Previous, value)),
	}
}

func rangeTiers(in Inputs) []source[[]model.PreferredTimeRange] {
	e := in.Event
	fromPrevious := func(owner *model.CopyFlags) source[[]model.PreferredTimeRange] {
		return func() ([]model.PreferredTimeRange, bool) {
			if owner == nil || in.Previous == nil || !owner.CopyTimePreference || len(in.Previous.PreferredTimeRanges) == 0 {
				return nil, false
			}
			return rebind(in.Previous.PreferredTimeRanges, e), true
		}
	}
	categoryDefault := func() ([]model.PreferredTimeRange, bool) {
		if in.Category == nil || len(in.Category.DefaultTimePreference) == 0 {
			return nil, false
		}
		return rebind(in.Category.DefaultTimePreference, e), true
	}

	return []source[[]model.PreferredTimeRange]{
		fromPrevious(in.previousFlags()),
		fromPrevious(in.categoryFlags()),
		categoryDefault,
		fromPrevious(in.preferenceFlags()),
	}
}

// rebind copies ranges onto e with fresh ids.
func rebind(ranges []model.PreferredTimeRange, e *model.Event) []model.PreferredTimeRange {
	res := make([]model.PreferredTimeRange, len(ranges))
	for i, r := range ranges {
		r.ID = uuid.NewString()
		r.EventID = e.ID
		r.UserID = e.UserID
		res[i] = r
	}
	return res
}

func transparencyFor(available bool) model.Transparency {
	if available {
		return model.TransparencyTransparent
	}
	return model.TransparencyOpaque
}
