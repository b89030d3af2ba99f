package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/focusboard/internal/diary"
	"github.com/sadopc/focusboard/internal/tasks"
)

// ToCSV writes the tasks to path and the diary entries next to it, at
// DiaryPath(path).
func ToCSV(b Bundle, path string) error {
	if err := TasksToCSV(b.Tasks, path); err != nil {
		return err
	}
	return DiaryToCSV(b.Diary, DiaryPath(path))
}

// DiaryPath derives the diary file name from the tasks file name:
// tasks.csv becomes tasks_diary.csv.
func DiaryPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_diary" + ext
}

func TasksToCSV(ts []tasks.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Header
	if err := w.Write([]string{"ID", "Text", "Priority", "Work Type", "Estimate (min)", "Due", "Completed", "Created", "Completed At", "Rescheduled"}); err != nil {
		return err
	}

	for _, t := range ts {
		est := ""
		if t.EstimatedTime > 0 {
			est = strconv.Itoa(t.EstimatedTime)
		}
		row := []string{
			strconv.FormatInt(t.ID, 10),
			t.Text,
			string(t.Priority),
			t.WorkType,
			est,
			formatTime(t.DueDate),
			strconv.FormatBool(t.Completed),
			t.CreatedAt.Local().Format(time.RFC3339),
			formatTime(t.CompletedAt),
			strconv.FormatBool(t.Rescheduled),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func DiaryToCSV(entries []diary.Entry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write([]string{"ID", "Date", "Mood", "Rating", "Prompt", "Text", "Media"}); err != nil {
		return err
	}

	for _, e := range entries {
		rating := ""
		if e.Extension != nil {
			rating = strconv.Itoa(e.ProductivityRating)
		}
		var media []string
		if e.Extension != nil {
			for _, m := range e.MediaFiles {
				media = append(media, m.Name)
			}
		}
		row := []string{
			strconv.FormatInt(e.ID, 10),
			e.Date.Local().Format(time.RFC3339),
			string(e.MoodValue()),
			rating,
			e.Prompt,
			e.Text,
			strings.Join(media, ";"),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Filename returns a timestamped export file name such as
// focusboard_20260304_140000.json.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("focusboard_%s.%s", now.Format("20060102_150405"), format)
}
