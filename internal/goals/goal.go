// Package goals owns the draft and committed daily goal lists: creation
// with validation, completion rewards, the save snapshot, and the
// today/tomorrow planning split.
package goals

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Arnav-W-Coder/LevelUp/internal/progress"
)

// Goal is one planned daily item. Only durable fields live here;
// presentation state stays in the UI layer.
type Goal struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Category    progress.Category `json:"category"`
	Description string            `json:"description,omitempty"`
	Time        string            `json:"time,omitempty"`
	IsCompleted bool              `json:"isCompleted"`
}

// Templates lists the selectable goal titles per category.
var Templates = map[progress.Category][]string{
	progress.Mind:           {"Read a Nonfiction Book", "Learn a New Skill", "Improve in School/College", "Improve in Job", "Other"},
	progress.Body:           {"Exercise", "Diet", "Sports", "Drink Water", "Other"},
	progress.Spirit:         {"Meditate", "Read a Book", "Time with Friends", "Time with Family", "Religion", "Non-VideoGame/TV Hobby"},
	progress.Accountability: {"Journal", "Self Reflection", "Plan Improvement", "Other"},
}

// newGoalID builds a unique id from the creation timestamp and a random
// suffix. IDs are never reused.
func newGoalID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// ByCategory partitions goals into the four category buckets. Pure and
// recomputed on demand; never persisted.
func ByCategory(gs []Goal) map[progress.Category][]Goal {
	out := make(map[progress.Category][]Goal, progress.NumCategories)
	for _, c := range progress.AllCategories() {
		out[c] = nil
	}
	for _, g := range gs {
		out[g.Category] = append(out[g.Category], g)
	}
	return out
}
