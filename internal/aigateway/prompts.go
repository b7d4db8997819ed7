package aigateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"ai-task-manager/internal/models"
)

const enhanceSystemPrompt = `You are a task planning assistant.
You MUST output ONLY a valid JSON object, no prose, no Markdown outside the JSON.
Given a raw task description, return:
{
"enhancedTitle": string,
"description": string,
"subtasks": [string],
"priority": "low" | "medium" | "high" | "urgent",
"estimatedTime": string,
"category": string,
"deadline": string (optional, "YYYY-MM-DD"),
"dependencies": [string] (optional)
}
Keep the original intent. Do not invent deadlines that were not implied.`

const parseSystemPrompt = `You extract structured fields from a raw task sentence.
Output ONLY a JSON object:
{"title": string, "dueDate": "YYYY-MM-DD" or null, "dueTime": "HH:MM" or null, "priority": "low"|"medium"|"high"|"urgent", "tags": [string]}
Strip date/time phrases from the title. Never guess a date that was not stated.`

const planSystemPrompt = `You are a daily schedule planner.
Output ONLY a JSON object shaped as:
{"title": string, "totalEstimatedTime": string,
"timeBlocks": [{"id": string, "taskId": string, "title": string, "startTime": "HH:MM", "endTime": "HH:MM", "priority": string, "energy": "high"|"medium"|"low", "blockType": "focus"|"break"}],
"insights": [string], "recommendations": [string], "productivityScore": number}
Every task you are given must appear in exactly one time block. Use the provided task ids verbatim.`

const coachSystemPrompt = `You are a productivity coach.
Output ONLY a JSON array of at most 3 objects:
[{"type": "productivity"|"pattern"|"suggestion"|"warning", "title": string, "description": string, "actionable": boolean, "priority": number}]
Base every insight on the statistics you are given; do not invent tasks.`

func enhanceUserPrompt(raw string, background bool) string {
	var b strings.Builder
	b.WriteString("task_raw: ")
	b.WriteString(raw)
	b.WriteString("\n")
	if background {
		b.WriteString("depth: full\n")
		b.WriteString("subtask_count: 5-6\n")
	} else {
		b.WriteString("depth: quick\n")
		b.WriteString("subtask_count: 3-4\n")
	}
	return b.String()
}

func parseUserPrompt(input, today string) string {
	var b strings.Builder
	b.WriteString("today: ")
	b.WriteString(today)
	b.WriteString("\n")
	b.WriteString("input: ")
	b.WriteString(input)
	b.WriteString("\n")
	return b.String()
}

func planUserPrompt(tasks []models.Task, prefs models.PlanPreferences) string {
	prefs = prefs.Normalize()

	type planTask struct {
		ID            string              `json:"id"`
		Title         string              `json:"title"`
		Priority      models.TaskPriority `json:"priority"`
		EstimatedTime string              `json:"estimatedTime,omitempty"`
		DueTime       string              `json:"dueTime,omitempty"`
	}
	compact := make([]planTask, 0, len(tasks))
	for _, t := range tasks {
		compact = append(compact, planTask{
			ID:            t.ID,
			Title:         t.Title,
			Priority:      t.Priority,
			EstimatedTime: t.EstimatedTime,
			DueTime:       t.DueTime,
		})
	}
	payload, _ := json.Marshal(compact)

	var b strings.Builder
	b.WriteString("start_time: ")
	b.WriteString(prefs.StartTime)
	b.WriteString("\n")
	fmt.Fprintf(&b, "block_minutes: %d\n", prefs.BlockMinutes)
	fmt.Fprintf(&b, "break_minutes: %d\n", prefs.BreakMinutes)
	b.WriteString("tasks: ")
	b.Write(payload)
	b.WriteString("\n")
	return b.String()
}

func coachUserPrompt(summary models.ContextSummary) string {
	payload, _ := json.Marshal(summary)
	var b strings.Builder
	b.WriteString("task_statistics: ")
	b.Write(payload)
	b.WriteString("\n")
	return b.String()
}
