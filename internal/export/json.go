package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/focusboard/internal/diary"
	"github.com/sadopc/focusboard/internal/tasks"
)

// Bundle is the data written by an export.
type Bundle struct {
	Tasks  []tasks.Task
	Diary  []diary.Entry
	Badges []string
	Now    time.Time
}

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Tasks      []jsonTask  `json:"tasks"`
	Diary      []jsonEntry `json:"diary"`
	Badges     []string    `json:"badges"`
}

type jsonTask struct {
	ID            int64  `json:"id"`
	Text          string `json:"text"`
	Priority      string `json:"priority"`
	WorkType      string `json:"work_type"`
	EstimatedTime int    `json:"estimated_minutes,omitempty"`
	DueDate       string `json:"due_date,omitempty"`
	Completed     bool   `json:"completed"`
	CreatedAt     string `json:"created_at"`
	CompletedAt   string `json:"completed_at,omitempty"`
	Rescheduled   bool   `json:"rescheduled,omitempty"`
}

type jsonEntry struct {
	ID     int64         `json:"id"`
	Date   string        `json:"date"`
	Text   string        `json:"text"`
	Prompt string        `json:"prompt,omitempty"`
	Mood   string        `json:"mood,omitempty"`
	Rating int           `json:"productivity_rating,omitempty"`
	Media  []diary.Media `json:"media,omitempty"`
}

func ToJSON(b Bundle, path string) error {
	now := b.Now
	if now.IsZero() {
		now = time.Now()
	}
	export := jsonExport{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Tasks:      []jsonTask{},
		Diary:      []jsonEntry{},
		Badges:     b.Badges,
	}
	if export.Badges == nil {
		export.Badges = []string{}
	}

	for _, t := range b.Tasks {
		export.Tasks = append(export.Tasks, jsonTask{
			ID:            t.ID,
			Text:          t.Text,
			Priority:      string(t.Priority),
			WorkType:      t.WorkType,
			EstimatedTime: t.EstimatedTime,
			DueDate:       formatTime(t.DueDate),
			Completed:     t.Completed,
			CreatedAt:     t.CreatedAt.Local().Format(time.RFC3339),
			CompletedAt:   formatTime(t.CompletedAt),
			Rescheduled:   t.Rescheduled,
		})
	}
	for _, e := range b.Diary {
		je := jsonEntry{
			ID:     e.ID,
			Date:   e.Date.Local().Format(time.RFC3339),
			Text:   e.Text,
			Prompt: e.Prompt,
			Mood:   string(e.MoodValue()),
			Rating: e.Rating(),
		}
		if e.Extension != nil {
			je.Media = e.MediaFiles
		}
		export.Diary = append(export.Diary, je)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}
