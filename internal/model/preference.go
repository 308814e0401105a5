package model

// DayTime is a wall-clock time of day for one ISO weekday.
type DayTime struct {
	Day     int `json:"day"`
	Hour    int `json:"hour"`
	Minutes int `json:"minutes"`
}

type UserPreference struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"userId"`
	StartTimes          []DayTime `json:"startTimes"`
	EndTimes            []DayTime `json:"endTimes"`
	BreakLength         int       `json:"breakLength"`
	MinNumberOfBreaks   int       `json:"minNumberOfBreaks"`
	MaxWorkLoadPercent  int       `json:"maxWorkLoadPercent"`
	MaxNumberOfMeetings int       `json:"maxNumberOfMeetings"`
	BackToBackMeetings  bool      `json:"backToBackMeetings"`
	BreakColor          string    `json:"breakColor,omitempty"`
	CopyFlags
}

// Window returns the work-day window stored for isoDay.
func (p *UserPreference) Window(isoDay int) (DayWindow, bool) {
	var w DayWindow
	var hasStart, hasEnd bool

	for _, s := range p.StartTimes {
		if s.Day == isoDay {
			w.StartHour, w.StartMinute = s.Hour, s.Minutes
			hasStart = true
			break
		}
	}
	for _, e := range p.EndTimes {
		if e.Day == isoDay {
			w.EndHour, w.EndMinute = e.Hour, e.Minutes
			hasEnd = true
			break
		}
	}

	return w, hasStart && hasEnd
}

type Calendar struct {
	ID            string `json:"id"`
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	GlobalPrimary bool   `json:"globalPrimary"`
}
