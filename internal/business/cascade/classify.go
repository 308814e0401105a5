package cascade

import (
	"github.com/SergeyKozhin/schedule-assist/internal/model"
)

// Sentence is the text classified for an event.
func Sentence(e *model.Event) string {
	if e.Notes == "" {
		return e.Title
	}
	return e.Title + ": " + e.Notes
}

// BestMatch returns the highest scoring label whose score is strictly above threshold.
// Ties keep the label seen first.
func BestMatch(c model.Classification, threshold float64) (string, bool) {
	best, found := "", false
	var bestScore float64
	for i, label := range c.Labels {
		if i >= len(c.Scores) {
			break
		}
		score := c.Scores[i]
		if score > threshold && (!found || score > bestScore) {
			best, bestScore, found = label, score, true
		}
	}

	return best, found
}

// BestMatchAny returns the highest scoring label regardless of any threshold.
func BestMatchAny(c model.Classification) (string, bool) {
	best, found := "", false
	var bestScore float64
	for i, label := range c.Labels {
		if i >= len(c.Scores) {
			break
		}
		if !found || c.Scores[i] > bestScore {
			best, bestScore, found = label, c.Scores[i], true
		}
	}

	return best, found
}

// MeetingCategories picks the "meeting" and "external meeting" categories that apply to e:
// the ones scoring above threshold and the ones matching a meeting flag already set on e.
func MeetingCategories(e *model.Event, c model.Classification, categories []*model.Category, threshold float64) []*model.Category {
	byLabel := make(map[model.CategoryLabel]*model.Category, 2)
	for _, cat := range categories {
		if l := cat.Label(); l != model.LabelNone {
			if _, ok := byLabel[l]; !ok {
				byLabel[l] = cat
			}
		}
	}

	score := func(l model.CategoryLabel) (float64, bool) {
		for i, label := range c.Labels {
			if model.LabelOf(label) == l && i < len(c.Scores) {
				return c.Scores[i], true
			}
		}
		return 0, false
	}

	var res []*model.Category
	for _, l := range []model.CategoryLabel{model.LabelMeeting, model.LabelExternalMeeting} {
		cat, ok := byLabel[l]
		if !ok {
			continue
		}

		s, classified := score(l)
		if !classified {
			continue
		}

		flagged := (l == model.LabelMeeting && e.IsMeeting) || (l == model.LabelExternalMeeting && e.IsExternalMeeting)
		if s > threshold || flagged {
			res = append(res, cat)
		}
	}

	return res
}

// Unique drops repeated categories by id, keeping the first.
func Unique(categories []*model.Category) []*model.Category {
	seen := make(map[string]struct{}, len(categories))
	res := make([]*model.Category, 0, len(categories))
	for _, c := range categories {
		if c == nil {
			continue
		}
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		res = append(res, c)
	}
	return res
}

func findByName(categories []*model.Category, name string) *model.Category {
	for _, c := range categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func names(categories []*model.Category) []string {
	res := make([]string, len(categories))
	for i, c := range categories {
		res[i] = c.Name
	}
	return res
}
