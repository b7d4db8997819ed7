// Package planner holds the deterministic daily-plan generator. The AI
// gateway uses it when the model path fails; the task store uses it to
// guarantee every pending task ends up in some time block.
package planner

import (
	"fmt"
	"sort"
	"time"

	"ai-task-manager/internal/models"
)

// FallbackScore is the productivity score reported by locally generated plans.
const FallbackScore = 75

// BuildPlan distributes tasks into sequential time blocks ordered by
// priority (urgent > high > medium > low, ties by input order). Energy is
// assigned by position: first third high, middle third medium, rest low.
func BuildPlan(tasks []models.Task, prefs models.PlanPreferences) models.DailyPlan {
	prefs = prefs.Normalize()

	ordered := make([]models.Task, len(tasks))
	copy(ordered, tasks)
	sort.SliceStable(ordered, func(i, j int) bool {
		return models.PriorityRank(ordered[i].Priority) < models.PriorityRank(ordered[j].Priority)
	})

	plan := models.DailyPlan{
		Title:              "Your Focused Day",
		Blocks:             make([]models.TimeBlock, 0, len(ordered)),
		Insights:           []string{"Plan generated locally from task priorities."},
		Recommendations:    []string{"Tackle high-energy blocks first, then coast through the rest."},
		ProductivityScore:  FallbackScore,
		TotalEstimatedTime: totalTime(len(ordered), prefs.BlockMinutes),
	}

	cursor := parseClock(prefs.StartTime)
	for i, t := range ordered {
		end := cursor.Add(time.Duration(prefs.BlockMinutes) * time.Minute)
		plan.Blocks = append(plan.Blocks, models.TimeBlock{
			ID:        fmt.Sprintf("block-%d", i+1),
			TaskID:    t.ID,
			Title:     t.Title,
			StartTime: cursor.Format("15:04"),
			EndTime:   end.Format("15:04"),
			Priority:  t.Priority,
			Energy:    energyForPosition(i, len(ordered)),
			BlockType: "focus",
		})
		cursor = end.Add(time.Duration(prefs.BreakMinutes) * time.Minute)
	}
	return plan
}

// EnsureCoverage post-processes a plan so that its blocks reference every
// task exactly once: blocks pointing at unknown or already-covered tasks are
// dropped, and filler blocks are appended for any task the plan omitted.
func EnsureCoverage(plan models.DailyPlan, tasks []models.Task, prefs models.PlanPreferences) models.DailyPlan {
	prefs = prefs.Normalize()

	byID := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	covered := make(map[string]bool, len(tasks))
	kept := plan.Blocks[:0:0]
	for _, b := range plan.Blocks {
		if _, known := byID[b.TaskID]; !known || covered[b.TaskID] {
			continue
		}
		covered[b.TaskID] = true
		kept = append(kept, b)
	}
	plan.Blocks = kept

	var missing []models.Task
	for _, t := range tasks {
		if !covered[t.ID] {
			missing = append(missing, t)
		}
	}
	if len(missing) == 0 {
		return plan
	}

	// Resume the schedule after the last kept block, or at the preferred
	// start when the model returned nothing usable.
	cursor := parseClock(prefs.StartTime)
	if len(plan.Blocks) > 0 {
		cursor = parseClock(plan.Blocks[len(plan.Blocks)-1].EndTime).
			Add(time.Duration(prefs.BreakMinutes) * time.Minute)
	}

	filler := BuildPlan(missing, prefs)
	for i, b := range filler.Blocks {
		end := cursor.Add(time.Duration(prefs.BlockMinutes) * time.Minute)
		b.ID = fmt.Sprintf("block-fill-%d", i+1)
		b.StartTime = cursor.Format("15:04")
		b.EndTime = end.Format("15:04")
		plan.Blocks = append(plan.Blocks, b)
		cursor = end.Add(time.Duration(prefs.BreakMinutes) * time.Minute)
	}
	plan.TotalEstimatedTime = totalTime(len(plan.Blocks), prefs.BlockMinutes)
	return plan
}

func energyForPosition(i, total int) models.EnergyLevel {
	if total <= 0 {
		return models.EnergyMedium
	}
	switch {
	case i < (total+2)/3:
		return models.EnergyHigh
	case i < 2*(total+2)/3:
		return models.EnergyMedium
	default:
		return models.EnergyLow
	}
}

func totalTime(blocks, blockMinutes int) string {
	minutes := blocks * blockMinutes
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%d hours", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// parseClock parses "HH:MM" onto an arbitrary fixed day; only the clock
// component is ever formatted back out.
func parseClock(s string) time.Time {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, _ = time.Parse("15:04", "09:00")
	}
	return t
}
