package categories

import (
	"github.com/SergeyKozhin/schedule-assist/internal/database"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

var baseQuery = database.PSQL.
	Select(
		"c.id",
		"c.user_id",
		"c.name",
		"c.color",
		"c.default_availability",
		"c.default_priority_level",
		"c.default_is_break",
		"c.default_is_meeting",
		"c.default_is_external_meeting",
		"c.default_modifiable",
		"c.default_reminders",
		"c.default_time_blocking",
		"c.default_time_preference",
		"c.copy_flags",
	).
	From(database.CategoriesTable + " c")

type categoryDTO struct {
	ID                       string
	UserID                   string
	Name                     string
	Color                    *string
	DefaultAvailability      *bool
	DefaultPriorityLevel     *int
	DefaultIsBreak           *bool
	DefaultIsMeeting         *bool
	DefaultIsExternalMeeting *bool
	DefaultModifiable        *bool
	DefaultReminders         []int32
	DefaultTimeBlocking      *model.BufferTimes
	DefaultTimePreference    []model.PreferredTimeRange
	CopyFlags                model.CopyFlags
}

func mapToCategory(dto *categoryDTO) *model.Category {
	c := &model.Category{
		ID:                       dto.ID,
		UserID:                   dto.UserID,
		Name:                     dto.Name,
		DefaultAvailability:      dto.DefaultAvailability,
		DefaultPriorityLevel:     dto.DefaultPriorityLevel,
		DefaultIsBreak:           dto.DefaultIsBreak,
		DefaultIsMeeting:         dto.DefaultIsMeeting,
		DefaultIsExternalMeeting: dto.DefaultIsExternalMeeting,
		DefaultModifiable:        dto.DefaultModifiable,
		DefaultTimeBlocking:      dto.DefaultTimeBlocking,
		DefaultTimePreference:    dto.DefaultTimePreference,
		CopyFlags:                dto.CopyFlags,
	}
	if dto.Color != nil {
		c.Color = *dto.Color
	}
	if len(dto.DefaultReminders) > 0 {
		c.DefaultReminders = make([]int, len(dto.DefaultReminders))
		for i, m := range dto.DefaultReminders {
			c.DefaultReminders[i] = int(m)
		}
	}

	return c
}
