package projections

import (
	"context"
	"errors"
	"strings"
	"sync"

	"workshoppass/internal/adapters/storage/roster"
	"workshoppass/internal/domain/slug"
	"workshoppass/internal/domain/student"
)

// Terminal resolution states. The transient loading state lives in the
// caller; resolution itself always lands on one of these or an error.
const (
	PassFound    = "found"
	PassNotFound = "not_found"
)

// Where the resolved record came from.
const (
	SourceCache         = "cache"
	SourceRoster        = "roster"
	SourceReconstructed = "reconstructed"
)

// Cache is the session-scoped override store consulted before the roster.
// The resolver reads it once per resolution and writes once on the first
// successful resolution; it is never a source of truth over the roster,
// only a continuity layer.
type Cache interface {
	Get(slug string) (student.Record, bool)
	Put(slug string, rec student.Record)
}

// SessionCache is the in-memory Cache used by the web front end.
type SessionCache struct {
	mu      sync.Mutex
	records map[string]student.Record
}

// NewSessionCache creates an empty SessionCache.
func NewSessionCache() *SessionCache {
	return &SessionCache{records: make(map[string]student.Record)}
}

// Get returns a previously resolved record.
func (c *SessionCache) Get(slug string) (student.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[slug]
	return rec, ok
}

// Put stores a resolution. First write wins: later resolutions never
// overwrite what a session already saw.
func (c *SessionCache) Put(slug string, rec student.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.records[slug]; !ok {
		c.records[slug] = rec
	}
}

// ResolvePassQuery carries the raw, URL-decoded path identifier.
type ResolvePassQuery struct {
	Identifier string
}

// ResolvePassDeps holds dependencies for pass resolution.
type ResolvePassDeps struct {
	RosterStore roster.Store
	Cache       Cache // optional

	// ClosedRoster switches the unknown-identifier policy: when true the
	// roster is authoritative and unknown slugs land on not_found; when
	// false (the default) a plausible record is reconstructed from the
	// identifier.
	ClosedRoster    bool
	RegistrationURL string // actionable link shown on the not_found view

	// Defaults applied to reconstructed records.
	DefaultWorkshop string
	BaseURL         string
}

// ResolvePassResult carries the resolution outcome.
type ResolvePassResult struct {
	State           string
	Source          string
	Record          student.Record
	RegistrationURL string // set when State == PassNotFound
}

// QueryResolvePass maps a path identifier to a student record.
// PRE: query.Identifier is already URL-decoded
// POST: Returns found (from cache, roster, or reconstruction per policy) or
// not_found; storage failures other than not-found are returned as errors
// INVARIANT: A roster hit always returns the stored record, never the
// reconstructed fallback
func QueryResolvePass(ctx context.Context, query ResolvePassQuery, deps ResolvePassDeps) (ResolvePassResult, error) {
	// Deriving from the raw identifier normalizes stray case and
	// punctuation without rejecting slightly mangled links.
	s := slug.Derive(query.Identifier)
	if s == "" {
		return ResolvePassResult{State: PassNotFound, RegistrationURL: deps.RegistrationURL}, nil
	}

	if deps.Cache != nil {
		if rec, ok := deps.Cache.Get(s); ok {
			return ResolvePassResult{State: PassFound, Source: SourceCache, Record: rec}, nil
		}
	}

	if deps.RosterStore != nil {
		rec, err := deps.RosterStore.GetBySlug(ctx, s)
		switch {
		case err == nil:
			if deps.Cache != nil {
				deps.Cache.Put(s, rec)
			}
			return ResolvePassResult{State: PassFound, Source: SourceRoster, Record: rec}, nil
		case !errors.Is(err, roster.ErrNotFound):
			return ResolvePassResult{}, err
		}
	}

	if deps.ClosedRoster {
		return ResolvePassResult{State: PassNotFound, RegistrationURL: deps.RegistrationURL}, nil
	}

	rec := student.Record{
		Name:     slug.ToDisplayName(s),
		Slug:     s,
		Workshop: deps.DefaultWorkshop,
	}
	if deps.BaseURL != "" {
		rec.PassURL = strings.TrimSuffix(deps.BaseURL, "/") + "/pass/" + s
	}
	if deps.Cache != nil {
		deps.Cache.Put(s, rec)
	}
	return ResolvePassResult{State: PassFound, Source: SourceReconstructed, Record: rec}, nil
}
