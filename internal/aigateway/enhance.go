package aigateway

import (
	"context"
	"fmt"
	"log"
	"strings"

	"ai-task-manager/internal/models"
)

func enhanceKey(raw string, background bool) string {
	if background {
		return "enhance:bg|" + raw
	}
	return "enhance:fg|" + raw
}

// EnhanceTask turns raw task input into a fully-populated TaskEnhancement.
// Repeated identical input within a session is served from the cache without
// a network call. The operation never fails: when every model attempt is
// exhausted a deterministic fallback built from the input is returned.
//
// A successful foreground call schedules a detached background call against
// the quality tier; its result silently replaces the cached entry when it is
// richer, and the original caller never sees it.
func (c *Client) EnhanceTask(ctx context.Context, raw string, background bool) models.TaskEnhancement {
	raw = strings.TrimSpace(raw)
	key := enhanceKey(raw, background)
	if cached, ok := c.enhancements.Get(key); ok {
		return cached
	}

	primary := c.cfg.LightningModels
	timeout := c.cfg.LightningTimeout
	if background {
		primary = c.cfg.QualityModels
		timeout = c.cfg.QualityTimeout
	}

	if len(primary) > 0 {
		model := primary[0]
		text, err := c.completeRaced(ctx, model, enhanceSystemPrompt, enhanceUserPrompt(raw, background), 0.7, 600, timeout)
		if err == nil {
			if enh, perr := parseEnhancement(text, raw); perr == nil {
				enh.ModelUsed = model
				c.enhancements.Set(key, enh, c.cfg.CacheTTL)
				if !background {
					c.spawn(func() { c.refine(raw) })
				}
				return enh
			} else {
				log.Printf("aigateway: enhance parse failed (%s): %v", model, perr)
			}
		} else {
			log.Printf("aigateway: enhance call failed (%s): %v", model, err)
		}
	}

	for _, model := range c.cfg.SpeedModels {
		text, err := c.completeRaced(ctx, model, enhanceSystemPrompt, enhanceUserPrompt(raw, background), 0.7, 600, c.cfg.SpeedTimeout)
		if err != nil {
			log.Printf("aigateway: enhance fallback failed (%s): %v", model, err)
			continue
		}
		enh, perr := parseEnhancement(text, raw)
		if perr != nil {
			log.Printf("aigateway: enhance fallback parse failed (%s): %v", model, perr)
			continue
		}
		enh.ModelUsed = model
		c.enhancements.Set(key, enh, c.cfg.CacheTTL)
		if !background {
			c.spawn(func() { c.refine(raw) })
		}
		return enh
	}

	// Not cached: a retry for the same input should get another shot at the
	// model tiers instead of the canned object.
	return fallbackEnhancement(raw)
}

// refine runs the background quality pass and upgrades the foreground cache
// entry only when the result carries more subtasks than what the user
// already has.
func (c *Client) refine(raw string) {
	enh := c.EnhanceTask(context.Background(), raw, true)
	key := enhanceKey(raw, false)
	if current, ok := c.enhancements.Get(key); ok && len(enh.Subtasks) <= len(current.Subtasks) {
		return
	}
	c.enhancements.Set(key, enh, c.cfg.CacheTTL)
}

// parseEnhancement decodes model output and normalizes it so the result
// always satisfies the TaskEnhancement contract.
func parseEnhancement(text, raw string) (models.TaskEnhancement, error) {
	var enh models.TaskEnhancement
	if err := decodeJSON(text, &enh); err != nil {
		return models.TaskEnhancement{}, err
	}

	enh.OriginalTask = raw
	if strings.TrimSpace(enh.EnhancedTitle) == "" {
		enh.EnhancedTitle = raw
	}
	if !models.ValidPriority(enh.Priority) {
		enh.Priority = models.PriorityMedium
	}
	if strings.TrimSpace(enh.Category) == "" {
		enh.Category = models.DefaultCategory
	}
	if strings.TrimSpace(enh.EstimatedTime) == "" {
		enh.EstimatedTime = "30 minutes"
	}
	if len(enh.Subtasks) == 0 {
		enh.Subtasks = []string{raw}
	}
	return enh, nil
}

// fallbackEnhancement builds the deterministic result used when every model
// attempt failed.
func fallbackEnhancement(raw string) models.TaskEnhancement {
	return models.TaskEnhancement{
		OriginalTask:  raw,
		EnhancedTitle: raw,
		Description:   fmt.Sprintf("Complete: %s", raw),
		Subtasks:      []string{raw},
		Priority:      models.PriorityMedium,
		EstimatedTime: "30 minutes",
		Category:      models.DefaultCategory,
	}
}

// ParseNaturalLanguage extracts title, due date/time and priority from raw
// input with a single aggressive-timeout attempt against the fastest model.
// Any failure returns the input as the title with medium priority.
func (c *Client) ParseNaturalLanguage(ctx context.Context, input string) models.ParsedTask {
	input = strings.TrimSpace(input)
	fallback := models.ParsedTask{Title: input, Priority: models.PriorityMedium}

	if len(c.cfg.LightningModels) == 0 {
		return fallback
	}
	model := c.cfg.LightningModels[0]
	today := c.now().Format(models.DateLayout)

	text, err := c.completeRaced(ctx, model, parseSystemPrompt, parseUserPrompt(input, today), 0.2, 200, c.cfg.ParseTimeout)
	if err != nil {
		log.Printf("aigateway: nlp parse call failed (%s): %v", model, err)
		return fallback
	}

	var parsed models.ParsedTask
	if err := decodeJSON(text, &parsed); err != nil {
		log.Printf("aigateway: nlp parse decode failed (%s): %v", model, err)
		return fallback
	}
	if strings.TrimSpace(parsed.Title) == "" {
		parsed.Title = input
	}
	if !models.ValidPriority(parsed.Priority) {
		parsed.Priority = models.PriorityMedium
	}
	return parsed
}
