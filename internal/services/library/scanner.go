package library

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"
	"github.com/samber/lo"

	"github.com/compas-audio/compas/internal/domain"
	"github.com/compas-audio/compas/internal/logger"
	"github.com/compas-audio/compas/internal/ports"
)

var audioExtensions = []string{".mp3", ".flac", ".ogg", ".opus", ".m4a", ".wav"}

type Scanner struct {
	root string
}

func NewScanner(root string) ports.LibraryService {
	return &Scanner{root: root}
}

// Scan walks the music directory and builds the track list, sorted by
// title. Unreadable files are skipped, not fatal.
func (s *Scanner) Scan() ([]domain.Track, error) {
	var tracks []domain.Track

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Log.WithError(err).Warnf("Skipping %s", path)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !lo.Contains(audioExtensions, ext) {
			return nil
		}

		tracks = append(tracks, s.readTrack(path, ext))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(tracks, func(i, j int) bool {
		return strings.ToLower(tracks[i].Title) < strings.ToLower(tracks[j].Title)
	})

	logger.Log.Infof("Library scan finished: %d tracks under %s", len(tracks), s.root)
	return tracks, nil
}

// readTrack extracts metadata, falling back to the file name when the file
// carries no usable tags.
func (s *Scanner) readTrack(path, ext string) domain.Track {
	track := domain.Track{
		Path:  path,
		Title: strings.TrimSuffix(filepath.Base(path), ext),
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Log.WithError(err).Warnf("Could not open %s", path)
		return track
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return track
	}

	if title := strings.TrimSpace(meta.Title()); title != "" {
		track.Title = title
	}
	track.Artist = strings.TrimSpace(meta.Artist())
	track.Album = strings.TrimSpace(meta.Album())

	return track
}
