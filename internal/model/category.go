package model

// CategoryLabel tags the categories that carry meaning beyond their defaults.
type CategoryLabel int

const (
	LabelNone CategoryLabel = iota
	LabelMeeting
	LabelExternalMeeting
)

const (
	meetingLabelName         = "meeting"
	externalMeetingLabelName = "external meeting"
)

func LabelOf(name string) CategoryLabel {
	switch name {
	case meetingLabelName:
		return LabelMeeting
	case externalMeetingLabelName:
		return LabelExternalMeeting
	default:
		return LabelNone
	}
}

func (l CategoryLabel) Name() string {
	switch l {
	case LabelMeeting:
		return meetingLabelName
	case LabelExternalMeeting:
		return externalMeetingLabelName
	default:
		return ""
	}
}

type Category struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Color  string `json:"color,omitempty"`

	DefaultAvailability      *bool                `json:"defaultAvailability,omitempty"`
	DefaultPriorityLevel     *int                 `json:"defaultPriorityLevel,omitempty"`
	DefaultIsBreak           *bool                `json:"defaultIsBreak,omitempty"`
	DefaultIsMeeting         *bool                `json:"defaultIsMeeting,omitempty"`
	DefaultIsExternalMeeting *bool                `json:"defaultIsExternalMeeting,omitempty"`
	DefaultModifiable        *bool                `json:"defaultModifiable,omitempty"`
	DefaultReminders         []int                `json:"defaultReminders,omitempty"`
	DefaultTimeBlocking      *BufferTimes         `json:"defaultTimeBlocking,omitempty"`
	DefaultTimePreference    []PreferredTimeRange `json:"defaultTimePreference,omitempty"`

	CopyFlags
}

func (c *Category) Label() CategoryLabel {
	return LabelOf(c.Name)
}

// Classification is the label to score vector returned for one event, aligned by index.
type Classification struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}
