package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/focusboard/internal/diary"
	"github.com/sadopc/focusboard/internal/tasks"
)

func sampleData() Bundle {
	now := time.Date(2026, 3, 4, 14, 0, 0, 0, time.UTC)
	done := now.Add(-time.Hour)
	due := now.Add(24 * time.Hour)

	return Bundle{
		Now: now,
		Tasks: []tasks.Task{
			{
				ID:            1,
				Text:          "Write report",
				Priority:      tasks.PriorityHigh,
				WorkType:      "work",
				EstimatedTime: 45,
				DueDate:       &due,
				Completed:     true,
				CreatedAt:     now.Add(-2 * time.Hour),
				CompletedAt:   &done,
			},
			{
				ID:        2,
				Text:      "Gym",
				Priority:  tasks.PriorityLow,
				WorkType:  "health",
				CreatedAt: now,
			},
		},
		Diary: []diary.Entry{
			{ID: 10, Text: "plain", Date: now},
			{
				ID:   11,
				Text: "with mood",
				Date: now,
				Extension: &diary.Extension{
					Mood:               diary.MoodHappy,
					ProductivityRating: 4,
					MediaFiles:         []diary.Media{{Type: diary.MediaImage, URL: "a.png", Name: "desk.png"}},
				},
			},
		},
		Badges: []string{"first_step"},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][1] != "Text" {
		t.Fatalf("unexpected header %v", records[0])
	}

	row := records[1]
	if row[1] != "Write report" || row[2] != "high" || row[4] != "45" || row[6] != "true" {
		t.Fatalf("unexpected first row %v", row)
	}
	if row[8] == "" {
		t.Fatal("completed task should have a completion time")
	}

	// Optional fields are blank.
	row = records[2]
	if row[4] != "" || row[5] != "" || row[8] != "" {
		t.Fatalf("expected blank optional fields, got %v", row)
	}
}

func TestToCSVWritesDiary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.csv")
	if err := ToCSV(sampleData(), path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, filepath.Join(filepath.Dir(path), "test_diary.csv"))
	if len(records) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(records))
	}
	if records[1][2] != "" || records[1][3] != "" {
		t.Fatalf("plain entry should have no mood or rating, got %v", records[1])
	}
	want := []string{"happy", "4"}
	if records[2][2] != want[0] || records[2][3] != want[1] || records[2][6] != "desk.png" {
		t.Fatalf("unexpected extended row %v", records[2])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(Bundle{}, path); err != nil {
		t.Fatal(err)
	}
	if n := len(readCSV(t, path)); n != 1 {
		t.Fatalf("expected 1 row (header only), got %d", n)
	}
	if n := len(readCSV(t, DiaryPath(path))); n != 1 {
		t.Fatalf("expected 1 diary row (header only), got %d", n)
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(Bundle{}, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVReportsFlushError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	ts := []tasks.Task{{ID: 1, Text: "write report", CreatedAt: time.Now()}}
	if err := TasksToCSV(ts, "/dev/full"); err == nil {
		t.Fatal("expected tasks flush error on a full device")
	}
	if err := DiaryToCSV([]diary.Entry{{ID: 1, Text: "note", Date: time.Now()}}, "/dev/full"); err == nil {
		t.Fatal("expected diary flush error on a full device")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	b := Bundle{Tasks: []tasks.Task{{ID: 1, Text: `say "hi", then leave`, CreatedAt: time.Now()}}}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(b, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][1] != `say "hi", then leave` {
		t.Fatalf("text not preserved: %q", records[1][1])
	}
}

func TestDiaryPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"out.csv", "out_diary.csv"},
		{"/tmp/a/b.csv", "/tmp/a/b_diary.csv"},
		{"noext", "noext_diary"},
	}
	for _, tt := range tests {
		if got := DiaryPath(tt.in); got != tt.want {
			t.Errorf("DiaryPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleData(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if result.ExportedAt != "2026-03-04T14:00:00Z" {
		t.Fatalf("exported_at = %q", result.ExportedAt)
	}
	if len(result.Tasks) != 2 || len(result.Diary) != 2 {
		t.Fatalf("expected 2 tasks and 2 entries, got %d and %d", len(result.Tasks), len(result.Diary))
	}
	if result.Tasks[0].EstimatedTime != 45 || result.Tasks[0].DueDate == "" {
		t.Fatalf("unexpected first task %+v", result.Tasks[0])
	}
	if result.Tasks[1].DueDate != "" || result.Tasks[1].CompletedAt != "" {
		t.Fatal("unset times should be omitted")
	}
	if result.Diary[1].Mood != "happy" || len(result.Diary[1].Media) != 1 {
		t.Fatalf("unexpected diary entry %+v", result.Diary[1])
	}
	if len(result.Badges) != 1 || result.Badges[0] != "first_step" {
		t.Fatalf("badges = %v", result.Badges)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(Bundle{}, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"tasks", "diary", "badges"} {
		if string(raw[k]) != "[]" {
			t.Fatalf("%s should be an empty array, got %s", k, raw[k])
		}
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(Bundle{}, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 3, 4, 14, 5, 9, 0, time.UTC)
	if got := Filename("csv", now); got != "focusboard_20260304_140509.csv" {
		t.Fatalf("Filename = %q", got)
	}
}
