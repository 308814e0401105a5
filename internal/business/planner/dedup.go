package planner

import (
	"reflect"

	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

// dedup keeps the first of every group of deeply equal items, in order.
func dedup[T any](items []T) []T {
	if items == nil {
		return nil
	}

	res := make([]T, 0, len(items))
	for _, it := range items {
		seen := false
		for _, kept := range res {
			if reflect.DeepEqual(it, kept) {
				seen = true
				break
			}
		}
		if !seen {
			res = append(res, it)
		}
	}

	return res
}

// uniqueByID keeps the first event of every id.
func uniqueByID(events []*model.Event) []*model.Event {
	seen := make(map[model.EventKey]bool, len(events))
	res := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if e == nil || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		res = append(res, e)
	}
	return res
}

// withoutIDs drops the events sharing an id with one of drop.
func withoutIDs(events, drop []*model.Event) []*model.Event {
	if len(drop) == 0 {
		return events
	}

	ids := make(map[model.EventKey]bool, len(drop))
	for _, e := range drop {
		ids[e.ID] = true
	}

	res := make([]*model.Event, 0, len(events))
	for _, e := range events {
		if !ids[e.ID] {
			res = append(res, e)
		}
	}
	return res
}
