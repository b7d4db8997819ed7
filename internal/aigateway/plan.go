package aigateway

import (
	"context"
	"log"

	"ai-task-manager/internal/models"
	"ai-task-manager/internal/planner"
)

// GenerateDailyPlan schedules the given tasks into time blocks. A fast-tier
// model attempt runs first; when it fails, returns malformed output or an
// empty block list, the deterministic local generator takes over. Either way
// the returned plan covers every input task.
func (c *Client) GenerateDailyPlan(ctx context.Context, tasks []models.Task, prefs models.PlanPreferences) models.DailyPlan {
	if len(tasks) == 0 {
		return models.DailyPlan{
			Title:             "Nothing scheduled",
			Blocks:            []models.TimeBlock{},
			Insights:          []string{"No pending tasks to plan."},
			Recommendations:   []string{"Add a task to get a schedule."},
			ProductivityScore: planner.FallbackScore,
		}
	}

	if len(c.cfg.SpeedModels) > 0 {
		model := c.cfg.SpeedModels[0]
		text, err := c.completeRaced(ctx, model, planSystemPrompt, planUserPrompt(tasks, prefs), 0.4, 900, c.cfg.PlanTimeout)
		if err == nil {
			var plan models.DailyPlan
			if perr := decodeJSON(text, &plan); perr == nil && len(plan.Blocks) > 0 {
				return planner.EnsureCoverage(plan, tasks, prefs)
			} else if perr != nil {
				log.Printf("aigateway: plan parse failed (%s): %v", model, perr)
			} else {
				log.Printf("aigateway: plan from %s had no time blocks, using local generator", model)
			}
		} else {
			log.Printf("aigateway: plan call failed (%s): %v", model, err)
		}
	}

	return planner.BuildPlan(tasks, prefs)
}
