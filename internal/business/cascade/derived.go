package cascade

import (
	"github.com/SergeyKozhin/schedule-assist/internal/business/buffers"
	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/google/uuid"
)

// CategoryReminders builds reminders from the category's default offsets. Nothing is built when
// the user set reminders by hand, the category does not copy reminders or the previous event's
// reminders take over.
func CategoryReminders(e *model.Event, c *model.Category, previous *model.Event) []model.Reminder {
	if c == nil || e.UserModifiedReminders || !c.CopyReminders {
		return nil
	}
	if previous != nil && previous.CopyReminders {
		return nil
	}

	res := make([]model.Reminder, 0, len(c.DefaultReminders))
	for _, minutes := range c.DefaultReminders {
		res = append(res, model.Reminder{
			ID:       uuid.NewString(),
			EventID:  e.ID,
			UserID:   e.UserID,
			Minutes:  minutes,
			Timezone: e.Timezone,
		})
	}

	return res
}

// PreviousReminders copies the previous event's reminders onto e when the previous event asks for it.
func PreviousReminders(e, previous *model.Event, reminders []model.Reminder) []model.Reminder {
	if previous == nil || !previous.CopyReminders {
		return nil
	}
	return copyReminders(e, reminders)
}

// PreferenceReminders copies the previous event's reminders onto e when the user's preference asks for it.
func PreferenceReminders(e, previous *model.Event, pref *model.UserPreference, reminders []model.Reminder) []model.Reminder {
	if previous == nil || pref == nil || !pref.CopyReminders {
		return nil
	}
	return copyReminders(e, reminders)
}

func copyReminders(e *model.Event, reminders []model.Reminder) []model.Reminder {
	if e.UserModifiedReminders || len(reminders) == 0 {
		return nil
	}

	res := make([]model.Reminder, len(reminders))
	for i, r := range reminders {
		r.ID = uuid.NewString()
		r.EventID = e.ID
		r.UserID = e.UserID
		r.Deleted = false
		res[i] = r
	}
	return res
}

// CategoryBuffers mints buffer events from the category's default time blocking. The previous
// event's buffers win whenever it copies time blocking.
func CategoryBuffers(e *model.Event, c *model.Category, previous *model.Event) (*model.Event, model.BufferEvents) {
	if c == nil || e.UserModifiedTimeBlocking || !c.CopyTimeBlocking {
		return e, model.BufferEvents{}
	}
	if previous != nil && previous.CopyTimeBlocking {
		return e, model.BufferEvents{}
	}

	return buffers.Mint(e, c.DefaultTimeBlocking)
}

// PreviousBuffers mints buffer events matching the previous event's time blocking.
func PreviousBuffers(e, previous *model.Event) (*model.Event, model.BufferEvents) {
	if previous == nil || !previous.CopyTimeBlocking || e.UserModifiedTimeBlocking {
		return e, model.BufferEvents{}
	}
	return buffers.Mint(e, previous.TimeBlocking)
}

// PreferenceBuffers is PreviousBuffers opened by the user's preference instead of the previous event.
func PreferenceBuffers(e, previous *model.Event, pref *model.UserPreference) (*model.Event, model.BufferEvents) {
	if previous == nil || pref == nil || !pref.CopyTimeBlocking || e.UserModifiedTimeBlocking {
		return e, model.BufferEvents{}
	}
	return buffers.Mint(e, previous.TimeBlocking)
}

// mergeBuffers lets the buffers in next replace the ones in acc side by side.
func mergeBuffers(acc, next model.BufferEvents) model.BufferEvents {
	if next.BeforeEvent != nil {
		acc.BeforeEvent = next.BeforeEvent
	}
	if next.AfterEvent != nil {
		acc.AfterEvent = next.AfterEvent
	}
	return acc
}

// uniqueByMinutes keeps the first reminder per offset.
func uniqueByMinutes(reminders []model.Reminder) []model.Reminder {
	seen := make(map[int]struct{}, len(reminders))
	res := make([]model.Reminder, 0, len(reminders))
	for _, r := range reminders {
		if _, ok := seen[r.Minutes]; ok {
			continue
		}
		seen[r.Minutes] = struct{}{}
		res = append(res, r)
	}
	return res
}
