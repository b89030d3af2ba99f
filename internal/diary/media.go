package diary

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedMedia = errors.New("unsupported media type")

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaAudio MediaType = "audio"
)

// Media references an attached file. URL is an opaque content handle.
type Media struct {
	Type MediaType `json:"type"`
	URL  string    `json:"url"`
	Name string    `json:"name"`
}

// mediaExtensions is consulted before the host MIME table, which varies
// between systems and misses common audio formats on some of them.
var mediaExtensions = map[string]MediaType{
	".png":  MediaImage,
	".jpg":  MediaImage,
	".jpeg": MediaImage,
	".gif":  MediaImage,
	".webp": MediaImage,
	".bmp":  MediaImage,
	".svg":  MediaImage,
	".heic": MediaImage,
	".mp4":  MediaVideo,
	".m4v":  MediaVideo,
	".mov":  MediaVideo,
	".webm": MediaVideo,
	".mkv":  MediaVideo,
	".avi":  MediaVideo,
	".mp3":  MediaAudio,
	".wav":  MediaAudio,
	".ogg":  MediaAudio,
	".m4a":  MediaAudio,
	".aac":  MediaAudio,
	".flac": MediaAudio,
	".opus": MediaAudio,
}

// MediaTypeOf classifies a file name by extension, falling back to the MIME
// top-level type for extensions outside the built-in table.
func MediaTypeOf(name string) (MediaType, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if typ, ok := mediaExtensions[ext]; ok {
		return typ, nil
	}
	mt := mime.TypeByExtension(ext)
	top, _, _ := strings.Cut(mt, "/")
	switch MediaType(top) {
	case MediaImage, MediaVideo, MediaAudio:
		return MediaType(top), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedMedia, name)
}

// MediaLibrary copies attachments into a private directory so entries keep
// working after the original file moves.
type MediaLibrary struct {
	Dir string
}

// Import copies the file at path into the library and returns its reference.
func (l MediaLibrary) Import(path string) (Media, error) {
	typ, err := MediaTypeOf(path)
	if err != nil {
		return Media{}, err
	}
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return Media{}, fmt.Errorf("create media directory: %w", err)
	}

	src, err := os.Open(path)
	if err != nil {
		return Media{}, fmt.Errorf("open media: %w", err)
	}
	defer src.Close()

	handle := uuid.NewString() + strings.ToLower(filepath.Ext(path))
	dst, err := os.Create(filepath.Join(l.Dir, handle))
	if err != nil {
		return Media{}, fmt.Errorf("create media copy: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return Media{}, fmt.Errorf("copy media: %w", err)
	}
	if err := dst.Close(); err != nil {
		return Media{}, fmt.Errorf("close media copy: %w", err)
	}

	return Media{Type: typ, URL: handle, Name: filepath.Base(path)}, nil
}

// Path resolves a content handle inside the library.
func (l MediaLibrary) Path(m Media) string {
	return filepath.Join(l.Dir, m.URL)
}
