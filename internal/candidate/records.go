package candidate

import (
	"encoding/json"
	"os"
	"sort"
)

type Records struct {
	RunID string    `json:"run_id,omitempty"`
	Items []*Record `json:"items"`
}

func (r *Records) Len() int {
	return len(r.Items)
}

func (r *Records) Names() []string {
	names := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		names = append(names, item.Name)
	}
	return names
}

// SortByScore orders records by TotalScore descending. Equal scores keep their current order.
func (r *Records) SortByScore() {
	sort.SliceStable(r.Items, func(i, j int) bool {
		return r.Items[i].TotalScore > r.Items[j].TotalScore
	})
}

// Ranked returns a copy of the collection sorted by score.
func (r *Records) Ranked() *Records {
	ranked := &Records{RunID: r.RunID, Items: append([]*Record(nil), r.Items...)}
	ranked.SortByScore()
	return ranked
}

// Exclude removes records with the given names, preserving the order of the rest.
// It returns the removed names.
func (r *Records) Exclude(names []string) []string {
	return r.RemoveFunc(func(rec *Record) bool {
		for _, name := range names {
			if rec.Name == name {
				return true
			}
		}
		return false
	})
}

// RemoveFunc removes every record for which drop returns true and returns their names.
func (r *Records) RemoveFunc(drop func(*Record) bool) []string {
	var removed []string
	kept := r.Items[:0]
	for _, item := range r.Items {
		if drop(item) {
			removed = append(removed, item.Name)
			continue
		}
		kept = append(kept, item)
	}
	for i := len(kept); i < len(r.Items); i++ {
		r.Items[i] = nil
	}
	r.Items = kept
	return removed
}

// ReportTop returns the n best candidates in a printable form.
func (r *Records) ReportTop(n int) []map[string]any {
	ranked := r.Ranked()
	if n <= 0 || n > ranked.Len() {
		n = ranked.Len()
	}

	report := make([]map[string]any, 0, n)
	for i, item := range ranked.Items[:n] {
		report = append(report, map[string]any{
			"rank":        i + 1,
			"name":        item.Name,
			"total_score": item.TotalScore,
			"institution": item.Education.Institution,
			"grade":       item.Education.GradeDisplay,
			"skills":      item.SkillList(),
			"gen_ai_tier": item.NextGenTier,
			"ai_ml_tier":  item.ClassicalTier,
		})
	}
	return report
}

func (r *Records) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
