package models

// EnergyLevel labels how demanding a scheduled block is expected to be.
type EnergyLevel string

const (
	EnergyHigh   EnergyLevel = "high"
	EnergyMedium EnergyLevel = "medium"
	EnergyLow    EnergyLevel = "low"
)

// TimeBlock is a scheduled slot in a DailyPlan associating one task with a
// start/end time, priority and energy label.
type TimeBlock struct {
	ID        string       `json:"id"`
	TaskID    string       `json:"taskId"`
	Title     string       `json:"title"`
	StartTime string       `json:"startTime"` // "15:04"
	EndTime   string       `json:"endTime"`   // "15:04"
	Priority  TaskPriority `json:"priority"`
	Energy    EnergyLevel  `json:"energy"`
	BlockType string       `json:"blockType"` // "focus" or "break"
}

// DailyPlan is the single current scheduler view; generating a new plan
// overwrites the previous one, plans are never versioned.
type DailyPlan struct {
	Title              string      `json:"title"`
	TotalEstimatedTime string      `json:"totalEstimatedTime"`
	Blocks             []TimeBlock `json:"timeBlocks"`
	Insights           []string    `json:"insights"`
	Recommendations    []string    `json:"recommendations"`
	ProductivityScore  int         `json:"productivityScore"` // 0..100
}

// PlanPreferences tune plan generation.
type PlanPreferences struct {
	StartTime    string `json:"startTime"`    // "15:04", default "09:00"
	BlockMinutes int    `json:"blockMinutes"` // default 45
	BreakMinutes int    `json:"breakMinutes"` // default 10
}

// Normalize fills zero-valued preferences with defaults.
func (p PlanPreferences) Normalize() PlanPreferences {
	if p.StartTime == "" {
		p.StartTime = "09:00"
	}
	if p.BlockMinutes <= 0 {
		p.BlockMinutes = 45
	}
	if p.BreakMinutes < 0 {
		p.BreakMinutes = 10
	}
	return p
}
