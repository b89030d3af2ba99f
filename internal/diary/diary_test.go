package diary

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/focusboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newDiary(t *testing.T) (*Store, *clock, *store.Store) {
	t.Helper()
	db, err := store.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	clk := &clock{t: time.Date(2026, 5, 4, 20, 0, 0, 0, time.UTC)}
	return New(db, WithClock(clk.now)), clk, db
}

func TestAddPlainEntry(t *testing.T) {
	d, clk, _ := newDiary(t)

	e, err := d.Add(NewEntry{Text: " Good day "})
	require.NoError(t, err)
	assert.Equal(t, "Good day", e.Text)
	assert.Equal(t, clk.t, e.Date)
	assert.Nil(t, e.Extension)
	assert.Equal(t, Mood(""), e.MoodValue())
	assert.Equal(t, 0, e.Rating())
	assert.Equal(t, "☆☆☆☆☆", e.Stars())
}

func TestAddEmptyIgnored(t *testing.T) {
	d, _, _ := newDiary(t)
	_, err := d.Add(NewEntry{Text: "\n\t"})
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Equal(t, 0, d.Len())
}

func TestAddWithExtension(t *testing.T) {
	d, _, _ := newDiary(t)

	e, err := d.Add(NewEntry{Text: "Shipped it", Extension: &Extension{ProductivityRating: 4}})
	require.NoError(t, err)
	require.NotNil(t, e.Extension)
	assert.Equal(t, MoodNeutral, e.MoodValue(), "missing mood defaults to neutral")
	assert.Equal(t, "★★★★☆", e.Stars())

	_, err = d.Add(NewEntry{Text: "x", Extension: &Extension{Mood: "bored"}})
	assert.ErrorIs(t, err, ErrInvalidMood)
	_, err = d.Add(NewEntry{Text: "x", Extension: &Extension{ProductivityRating: 6}})
	assert.ErrorIs(t, err, ErrInvalidRating)
	assert.Equal(t, 1, d.Len())
}

func TestExtensionIsCopied(t *testing.T) {
	d, _, _ := newDiary(t)
	ext := &Extension{Mood: MoodHappy, MediaFiles: []Media{{Type: MediaImage, URL: "a.png", Name: "a.png"}}}

	e, _ := d.Add(NewEntry{Text: "pic", Extension: ext})
	ext.Mood = MoodSad
	ext.MediaFiles[0].Name = "changed"

	assert.Equal(t, MoodHappy, e.MoodValue())
	assert.Equal(t, "a.png", d.All()[0].MediaFiles[0].Name)
}

func TestFilters(t *testing.T) {
	d, clk, _ := newDiary(t)
	for i := 0; i < 7; i++ {
		clk.t = clk.t.Add(time.Hour)
		mood := MoodNeutral
		if i%2 == 0 {
			mood = MoodHappy
		}
		d.Add(NewEntry{Text: "entry", Extension: &Extension{Mood: mood, ProductivityRating: i % 6}})
	}

	assert.Len(t, d.Filter(FilterAll), 7)
	assert.Len(t, d.Filter(FilterHappy), 4)
	assert.Len(t, d.Filter(FilterProductive), 2) // ratings 4 and 5

	recent := d.Filter(FilterRecent)
	require.Len(t, recent, RecentLimit)
	assert.True(t, recent[0].Date.After(recent[1].Date), "recent is newest first")
}

func TestClear(t *testing.T) {
	d, _, db := newDiary(t)
	d.Add(NewEntry{Text: "a"})
	require.NoError(t, d.Clear())
	assert.Equal(t, 0, d.Len())

	fresh := New(db)
	require.NoError(t, fresh.Load())
	assert.Equal(t, 0, fresh.Len())
}

func TestRoundTrip(t *testing.T) {
	d, clk, db := newDiary(t)
	d.Add(NewEntry{Text: "plain"})
	clk.t = clk.t.Add(time.Minute)
	d.Add(NewEntry{
		Text:   "What was your biggest achievement today?\n\nFinished the draft",
		Prompt: "What was your biggest achievement today?",
		Extension: &Extension{
			Mood:               MoodExcited,
			ProductivityRating: 5,
			MediaFiles:         []Media{{Type: MediaAudio, URL: "x.mp3", Name: "memo.mp3"}},
		},
	})
	want := d.All()

	fresh := New(db)
	require.NoError(t, fresh.Load())
	assert.Equal(t, want, fresh.All())
}

func TestMoodEmoji(t *testing.T) {
	assert.Equal(t, "😊", MoodHappy.Emoji())
	assert.Equal(t, "😐", Mood("unknown").Emoji())
}

// ============================================================
// Media
// ============================================================

func TestMediaTypeOf(t *testing.T) {
	typ, err := MediaTypeOf("photo.PNG")
	require.NoError(t, err)
	assert.Equal(t, MediaImage, typ)

	typ, err = MediaTypeOf("talk.mp4")
	require.NoError(t, err)
	assert.Equal(t, MediaVideo, typ)

	_, err = MediaTypeOf("notes.txt")
	assert.ErrorIs(t, err, ErrUnsupportedMedia)
}

func TestMediaTypeOfCommonFormats(t *testing.T) {
	tests := []struct {
		name string
		want MediaType
	}{
		{"voice.mp3", MediaAudio},
		{"memo.WAV", MediaAudio},
		{"clip.m4a", MediaAudio},
		{"song.flac", MediaAudio},
		{"call.ogg", MediaAudio},
		{"screen.mov", MediaVideo},
		{"demo.webm", MediaVideo},
		{"holiday.mkv", MediaVideo},
		{"scan.jpeg", MediaImage},
		{"icon.webp", MediaImage},
		{"phone.heic", MediaImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := MediaTypeOf(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, typ)
		})
	}
}

func TestMediaLibraryImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "sunset.png")
	require.NoError(t, os.WriteFile(src, []byte("png-bytes"), 0o644))

	lib := MediaLibrary{Dir: filepath.Join(dir, "media")}
	m, err := lib.Import(src)
	require.NoError(t, err)
	assert.Equal(t, MediaImage, m.Type)
	assert.Equal(t, "sunset.png", m.Name)
	assert.NotEqual(t, "sunset.png", m.URL)

	data, err := os.ReadFile(lib.Path(m))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}
