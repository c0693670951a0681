package library

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/conorfennell/benkyou/internal/gitsource"
	"github.com/conorfennell/benkyou/internal/parser"
)

// ErrDeckNotFound is returned by Find when no deck has the requested name.
var ErrDeckNotFound = errors.New("deck not found")

// DeckFile is a vocabulary file found under a source. Name is the file's
// base name without extension and is the key its progress is saved under.
type DeckFile struct {
	Name   string
	Path   string
	Source string
}

// Syncer brings a git source up to date in a local directory.
type Syncer func(repoURL, localPath string) error

// Library resolves deck files from local directories and git remotes.
type Library struct {
	ReposDir string
	Sync     Syncer
}

// New returns a library that checks git sources out under reposDir.
func New(reposDir string) *Library {
	return &Library{ReposDir: reposDir, Sync: gitsource.Sync}
}

// Scan walks every source and returns the deck files found, sorted by name.
// A source that fails does not stop the others; its error is returned
// alongside whatever was found.
func (l *Library) Scan(sources []string, syncGit bool) ([]DeckFile, []error) {
	var decks []DeckFile
	var errs []error

	for _, source := range sources {
		dir := source
		if gitsource.IsGitURL(source) {
			localPath, err := gitsource.LocalPath(l.ReposDir, source)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if syncGit {
				if err := l.Sync(source, localPath); err != nil {
					errs = append(errs, err)
					continue
				}
			}
			dir = localPath
		}

		found, err := walk(dir, source)
		if err != nil {
			slog.Error("Error walking deck source", "source", source, "error", err)
			errs = append(errs, fmt.Errorf("scanning %s: %w", source, err))
			continue
		}
		slog.Debug("Deck source scanned", "source", source, "decks", len(found))
		decks = append(decks, found...)
	}

	sort.SliceStable(decks, func(i, j int) bool { return decks[i].Name < decks[j].Name })
	return decks, errs
}

// Find returns the deck called name.
func Find(decks []DeckFile, name string) (DeckFile, error) {
	for _, d := range decks {
		if d.Name == name {
			return d, nil
		}
	}
	return DeckFile{}, fmt.Errorf("%w: %s", ErrDeckNotFound, name)
}

func walk(dir, source string) ([]DeckFile, error) {
	var decks []DeckFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if parser.IsDeckFile(path) {
			decks = append(decks, DeckFile{
				Name:   strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
				Path:   path,
				Source: source,
			})
		}
		return nil
	})
	return decks, err
}
