package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/neight-app/neight/internal/logging"
)

// Document is a settings document: one flat JSON object. The store treats
// it as opaque data, so unknown keys survive a load/save round trip.
type Document map[string]any

// readStatus classifies one attempt to read a candidate file.
type readStatus int

const (
	readFound      readStatus = iota // parsed as a JSON object
	readMissing                      // no file at this path
	readUnreadable                   // the file exists but could not be read
	readMalformed                    // the content is not a JSON object
)

// readDocument reads and decodes one candidate file. Comments and trailing
// commas are tolerated; anything else that fails to decode as a top-level
// JSON object is malformed.
func readDocument(path string) (Document, readStatus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, readMissing, err
		}
		return nil, readUnreadable, err
	}
	var doc Document
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return nil, readMalformed, err
	}
	if doc == nil {
		return nil, readMalformed, errors.New("top-level value is not an object")
	}
	return doc, readFound, nil
}

// writeDocument writes the document to path as indented UTF-8 JSON,
// replacing any existing content. The write goes through a temp file and
// a rename so a failed write cannot truncate an existing document.
func writeDocument(path string, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

// logRead records why a candidate yielded no document.
func logRead(path string, status readStatus, err error) {
	switch status {
	case readMissing:
		logging.Debug().Str("path", path).Msg("no settings file")
	case readUnreadable:
		logging.Warn().Str("path", path).Err(err).Msg("settings file unreadable")
	case readMalformed:
		logging.Warn().Str("path", path).Err(err).Msg("settings file malformed, ignoring")
	}
}

// Store owns the settings document's on-disk location for one process.
//
// The active path is resolved once, eagerly, at construction. Load and Save
// stick to it, with one exception: a Save that fails on the primary location
// permanently moves the store to the fallback (see Save). Load never fails
// and Save never reports an error; a lost preferences write must not take
// down the editing session.
//
// The store is not safe for concurrent use. The host calls it from its
// single control goroutine.
type Store struct {
	res      Resolution
	migrated func(source, active string)
}

// New creates a store over the default candidate locations for this process.
func New() *Store {
	return NewWithCandidates(DefaultCandidates())
}

// NewWithCandidates creates a store over an explicit candidate set.
func NewWithCandidates(c Candidates) *Store {
	s := &Store{res: Resolve(c)}
	logging.Debug().
		Str("active", s.res.Active).
		Str("rule", string(s.res.Rule)).
		Msg("settings path resolved")
	return s
}

// NotifyMigrations registers fn to run, synchronously inside Load, after a
// document is moved onto the active path from source. The store knows
// nothing about the event bus; the host hangs its announcements here.
func (s *Store) NotifyMigrations(fn func(source, active string)) {
	s.migrated = fn
}

// Resolution returns the resolution this store currently operates under.
func (s *Store) Resolution() Resolution {
	return s.res
}

// ActivePath returns the location Load and Save currently use.
func (s *Store) ActivePath() string {
	return s.res.Active
}

// Load returns the settings document from the active path. A missing,
// unreadable, or malformed file means "no document", never an error: the
// store then tries the primary location (when the fallback is active) and
// the legacy files, and finally returns an empty document on a true first
// run. Documents found off the active path are migrated onto it; a legacy
// source file is deleted afterwards, a primary one is left in place.
func (s *Store) Load() Document {
	doc, status, err := readDocument(s.res.Active)
	if status == readFound {
		return doc
	}
	logRead(s.res.Active, status, err)

	// An older install may still have a document next to the program
	// while the fallback is active. Adopt it without deleting it.
	if s.res.Active == s.res.Fallback {
		if doc, status, _ := readDocument(s.res.Primary); status == readFound {
			s.Save(doc)
			if s.migrated != nil {
				s.migrated(s.res.Primary, s.res.Active)
			}
			logging.Info().
				Str("source", s.res.Primary).
				Str("active", s.res.Active).
				Msg("adopted settings from primary location")
			return doc
		}
	}

	for _, legacy := range s.res.Legacy {
		doc, status, _ := readDocument(legacy)
		if status != readFound {
			continue
		}
		s.Save(doc)
		if err := os.Remove(legacy); err != nil {
			logging.Warn().Str("path", legacy).Err(err).Msg("migrated legacy settings file left behind")
		}
		if s.migrated != nil {
			s.migrated(legacy, s.res.Active)
		}
		logging.Info().
			Str("source", legacy).
			Str("active", s.res.Active).
			Msg("migrated legacy settings")
		return doc
	}

	return Document{}
}

// Save writes the document to the active path, best effort. A failure on
// the primary location retargets the store to the fallback and retries
// once; if that also fails the write is abandoned. The caller keeps its
// in-memory document either way, the persisted copy just goes stale.
func (s *Store) Save(doc Document) {
	if doc == nil {
		doc = Document{}
	}
	err := writeDocument(s.res.Active, doc)
	if err == nil {
		return
	}
	if s.res.Active != s.res.Primary {
		logging.Error().Str("path", s.res.Active).Err(err).Msg("settings write failed")
		return
	}
	logging.Warn().Str("path", s.res.Active).Err(err).Msg("settings write failed on primary, retrying on fallback")
	if err := writeDocument(s.res.Fallback, doc); err != nil {
		logging.Error().Str("path", s.res.Fallback).Err(err).Msg("settings write failed on fallback, giving up")
		return
	}
	// The primary location rejected a write and the fallback took it.
	// Stay on the fallback from now on rather than failing on the
	// primary before every save.
	s.res.Active = s.res.Fallback
	s.res.Rule = RuleSaveRetargeted
	logging.Info().Str("active", s.res.Active).Msg("settings retargeted to fallback location")
}
