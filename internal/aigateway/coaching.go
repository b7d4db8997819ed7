package aigateway

import (
	"context"
	"fmt"
	"log"

	"ai-task-manager/internal/models"
)

const maxForegroundInsights = 3

// ProvideCoaching asks a fast model for productivity insights derived from
// the context summary, truncated to three entries. Any failure yields a
// fixed two-item advisory list. A detached background call may later cache a
// richer set under a timestamped key; the caller never waits for it.
func (c *Client) ProvideCoaching(ctx context.Context, summary models.ContextSummary) []models.AIInsight {
	if len(c.cfg.SpeedModels) == 0 {
		return fallbackInsights(summary)
	}
	model := c.cfg.SpeedModels[0]

	text, err := c.completeRaced(ctx, model, coachSystemPrompt, coachUserPrompt(summary), 0.6, 500, c.cfg.CoachTimeout)
	if err != nil {
		log.Printf("aigateway: coaching call failed (%s): %v", model, err)
		return fallbackInsights(summary)
	}

	insights, perr := parseInsights(text)
	if perr != nil {
		log.Printf("aigateway: coaching parse failed (%s): %v", model, perr)
		return fallbackInsights(summary)
	}
	if len(insights) > maxForegroundInsights {
		insights = insights[:maxForegroundInsights]
	}

	c.spawn(func() { c.coachInBackground(summary) })
	return insights
}

// coachInBackground runs a quality-tier pass and caches the richer set under
// a timestamped key, so a later insight refresh within the same session can
// pick it up.
func (c *Client) coachInBackground(summary models.ContextSummary) {
	if len(c.cfg.QualityModels) == 0 {
		return
	}
	model := c.cfg.QualityModels[0]

	text, err := c.completeRaced(context.Background(), model, coachSystemPrompt, coachUserPrompt(summary), 0.6, 900, c.cfg.QualityTimeout)
	if err != nil {
		log.Printf("aigateway: background coaching failed (%s): %v", model, err)
		return
	}
	insights, perr := parseInsights(text)
	if perr != nil {
		log.Printf("aigateway: background coaching parse failed (%s): %v", model, perr)
		return
	}
	key := fmt.Sprintf("coaching|%d", c.now().Unix())
	c.insights.Set(key, insights, c.cfg.CacheTTL)
}

func parseInsights(text string) ([]models.AIInsight, error) {
	var insights []models.AIInsight
	if err := decodeJSON(text, &insights); err != nil {
		return nil, err
	}
	for i := range insights {
		switch insights[i].Type {
		case models.InsightProductivity, models.InsightPattern, models.InsightSuggestion, models.InsightWarning:
		default:
			insights[i].Type = models.InsightSuggestion
		}
	}
	return insights, nil
}

func fallbackInsights(summary models.ContextSummary) []models.AIInsight {
	return []models.AIInsight{
		{
			Type:        models.InsightProductivity,
			Title:       "Keep your list moving",
			Description: fmt.Sprintf("You have %d pending tasks. Knock out the smallest one first to build momentum.", summary.Pending),
			Actionable:  true,
			Priority:    1,
		},
		{
			Type:        models.InsightSuggestion,
			Title:       "Batch similar work",
			Description: "Group tasks from the same category into one sitting to cut context switching.",
			Actionable:  true,
			Priority:    2,
		},
	}
}
