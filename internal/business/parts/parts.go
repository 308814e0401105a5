package parts

import (
	"sort"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
	"github.com/google/uuid"
)

// Generate slices an event into grid-sized parts. A trailing remainder shorter than the grid
// becomes one more part. All parts share the event's group.
func Generate(e *model.Event, hostID string, grid model.Grid) []model.EventPart {
	minutes := int(e.Length().Minutes())
	if minutes <= 0 {
		return nil
	}

	step := int(grid)
	total := minutes / step
	if minutes%step > 0 {
		total++
	}

	groupID := e.ID.String()
	res := make([]model.EventPart, 0, total)
	for i := 1; i <= total; i++ {
		res = append(res, model.EventPart{
			GroupID:         groupID,
			EventID:         e.ID,
			Part:            i,
			LastPart:        total,
			MeetingPart:     i,
			MeetingLastPart: total,
			HostID:          hostID,
			Event:           e,
		})
	}

	return res
}

// GenerateAll slices every event in order.
func GenerateAll(events []*model.Event, hostID string, grid model.Grid) []model.EventPart {
	var res []model.EventPart
	for _, e := range events {
		res = append(res, Generate(e, hostID, grid)...)
	}
	return res
}

// StitchPre joins the parts of the pre-event buffers of target with the target's own parts
// into one group numbered buffer first.
func StitchPre(parts []model.EventPart, target model.EventKey) []model.EventPart {
	var before, actual []model.EventPart
	for _, p := range parts {
		switch {
		case p.Event != nil && p.Event.IsPreEvent && p.Event.ForEventID == target:
			before = append(before, p)
		case p.EventID == target:
			actual = append(actual, p)
		}
	}

	return renumber(uuid.NewString(), before, actual)
}

// StitchPost joins the target's parts with its post-event buffer parts. When the target already
// has a pre-event buffer, that buffer's parts lead the chain so the whole sequence is numbered
// pre, target, post. Pre buffers are found by their forEventId, the target's preEventId is only
// used when no buffer points back at it.
func StitchPost(parts []model.EventPart, target model.EventKey) []model.EventPart {
	var before, actual, after []model.EventPart
	var preEventID model.EventKey

	for _, p := range parts {
		switch {
		case p.Event != nil && p.Event.IsPreEvent && p.Event.ForEventID == target:
			before = append(before, p)
		case p.Event != nil && p.Event.IsPostEvent && p.Event.ForEventID == target:
			after = append(after, p)
		case p.EventID == target:
			actual = append(actual, p)
			if p.Event != nil && preEventID.IsZero() {
				preEventID = p.Event.PreEventID
			}
		}
	}

	if len(before) == 0 && !preEventID.IsZero() {
		for _, p := range parts {
			if p.EventID == preEventID {
				before = append(before, p)
			}
		}
	}

	return renumber(uuid.NewString(), before, actual, after)
}

// StitchAllPre stitches every event that has pre-event buffer parts and puts the stitched
// chains after the untouched parts.
func StitchAllPre(parts []model.EventPart) []model.EventPart {
	return stitchAll(parts, func(e *model.Event) bool { return e.IsPreEvent }, StitchPre)
}

// StitchAllPost is StitchAllPre for post-event buffers.
func StitchAllPost(parts []model.EventPart) []model.EventPart {
	return stitchAll(parts, func(e *model.Event) bool { return e.IsPostEvent }, StitchPost)
}

func stitchAll(parts []model.EventPart, isBuffer func(*model.Event) bool, stitch func([]model.EventPart, model.EventKey) []model.EventPart) []model.EventPart {
	var targets []model.EventKey
	seen := make(map[model.EventKey]struct{})
	for _, p := range parts {
		if p.Event == nil || !isBuffer(p.Event) || p.Event.ForEventID.IsZero() {
			continue
		}
		if _, ok := seen[p.Event.ForEventID]; ok {
			continue
		}
		seen[p.Event.ForEventID] = struct{}{}
		targets = append(targets, p.Event.ForEventID)
	}

	if len(targets) == 0 {
		return parts
	}

	var stitched []model.EventPart
	for _, target := range targets {
		stitched = append(stitched, stitch(parts, target)...)
	}

	replaced := make(map[model.EventKey]struct{}, len(stitched))
	for _, p := range stitched {
		replaced[p.EventID] = struct{}{}
	}

	res := make([]model.EventPart, 0, len(parts))
	for _, p := range parts {
		if _, ok := replaced[p.EventID]; !ok {
			res = append(res, p)
		}
	}

	return append(res, stitched...)
}

// renumber sorts each segment by part, concatenates them and numbers the chain 1..N under groupID.
func renumber(groupID string, segments ...[]model.EventPart) []model.EventPart {
	var res []model.EventPart
	for _, seg := range segments {
		sorted := append([]model.EventPart(nil), seg...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Part < sorted[j].Part
		})
		res = append(res, sorted...)
	}

	for i := range res {
		res[i].GroupID = groupID
		res[i].Part = i + 1
		res[i].LastPart = len(res)
	}

	return res
}
