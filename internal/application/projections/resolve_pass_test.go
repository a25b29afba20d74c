package projections

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"workshoppass/internal/adapters/storage/roster"
	"workshoppass/internal/domain/student"
)

type stubRoster struct {
	records  map[string]student.Record
	failWith error
}

func (s *stubRoster) GetBySlug(_ context.Context, slug string) (student.Record, error) {
	if s.failWith != nil {
		return student.Record{}, s.failWith
	}
	rec, ok := s.records[slug]
	if !ok {
		return student.Record{}, fmt.Errorf("%w: %s", roster.ErrNotFound, slug)
	}
	return rec, nil
}

func (s *stubRoster) Save(_ context.Context, _ student.Record) error { return nil }

func (s *stubRoster) List(_ context.Context) ([]student.Record, error) { return nil, nil }

var rahul = student.Record{
	ID:      "id-1",
	Name:    "Rahul SHARMA", // deliberately not what reconstruction would produce
	Slug:    "rahul-sharma",
	PassURL: "https://x.com/pass/rahul-sharma",
}

// TestResolveRosterHitReturnsStoredRecord verifies a roster match is
// returned exactly, never the reconstructed fallback.
func TestResolveRosterHitReturnsStoredRecord(t *testing.T) {
	deps := ResolvePassDeps{
		RosterStore: &stubRoster{records: map[string]student.Record{"rahul-sharma": rahul}},
	}

	res, err := QueryResolvePass(context.Background(), ResolvePassQuery{Identifier: "rahul-sharma"}, deps)
	if err != nil {
		t.Fatalf("QueryResolvePass() error = %v", err)
	}
	if res.State != PassFound || res.Source != SourceRoster {
		t.Errorf("state/source = %s/%s, want found/roster", res.State, res.Source)
	}
	if res.Record != rahul {
		t.Errorf("Record = %+v, want stored record %+v", res.Record, rahul)
	}
}

// TestResolveOpenPolicyReconstructs verifies unknown identifiers synthesize
// a record under the open-roster policy.
func TestResolveOpenPolicyReconstructs(t *testing.T) {
	deps := ResolvePassDeps{
		RosterStore:     &stubRoster{records: map[string]student.Record{}},
		DefaultWorkshop: "AI Bootcamp",
		BaseURL:         "https://x.com/",
	}

	res, err := QueryResolvePass(context.Background(), ResolvePassQuery{Identifier: "priya-patel"}, deps)
	if err != nil {
		t.Fatalf("QueryResolvePass() error = %v", err)
	}
	if res.State != PassFound || res.Source != SourceReconstructed {
		t.Fatalf("state/source = %s/%s, want found/reconstructed", res.State, res.Source)
	}
	if res.Record.Name != "Priya Patel" {
		t.Errorf("reconstructed name = %q, want %q", res.Record.Name, "Priya Patel")
	}
	if res.Record.PassURL != "https://x.com/pass/priya-patel" {
		t.Errorf("reconstructed PassURL = %q", res.Record.PassURL)
	}
	if res.Record.Workshop != "AI Bootcamp" {
		t.Errorf("reconstructed Workshop = %q", res.Record.Workshop)
	}
}

// TestResolveClosedPolicyRejectsUnknown verifies the closed-roster policy
// lands unknown identifiers on not_found with the registration link.
func TestResolveClosedPolicyRejectsUnknown(t *testing.T) {
	deps := ResolvePassDeps{
		RosterStore:     &stubRoster{records: map[string]student.Record{}},
		ClosedRoster:    true,
		RegistrationURL: "https://x.com/register",
	}

	res, err := QueryResolvePass(context.Background(), ResolvePassQuery{Identifier: "nobody-here"}, deps)
	if err != nil {
		t.Fatalf("QueryResolvePass() error = %v", err)
	}
	if res.State != PassNotFound {
		t.Errorf("State = %s, want not_found", res.State)
	}
	if res.RegistrationURL != "https://x.com/register" {
		t.Errorf("RegistrationURL = %q", res.RegistrationURL)
	}
}

// TestResolveClosedPolicyStillFindsKnown verifies the closed policy only
// affects unknown identifiers.
func TestResolveClosedPolicyStillFindsKnown(t *testing.T) {
	deps := ResolvePassDeps{
		RosterStore:  &stubRoster{records: map[string]student.Record{"rahul-sharma": rahul}},
		ClosedRoster: true,
	}

	res, err := QueryResolvePass(context.Background(), ResolvePassQuery{Identifier: "rahul-sharma"}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if res.State != PassFound || res.Record != rahul {
		t.Errorf("closed policy broke roster hit: %+v", res)
	}
}

// TestResolveCachePreferred verifies a cached override wins over the roster.
func TestResolveCachePreferred(t *testing.T) {
	cache := NewSessionCache()
	override := student.Record{Name: "Cached Name", Slug: "rahul-sharma"}
	cache.Put("rahul-sharma", override)

	deps := ResolvePassDeps{
		RosterStore: &stubRoster{records: map[string]student.Record{"rahul-sharma": rahul}},
		Cache:       cache,
	}

	res, err := QueryResolvePass(context.Background(), ResolvePassQuery{Identifier: "rahul-sharma"}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if res.Source != SourceCache || res.Record != override {
		t.Errorf("cache not preferred: %+v", res)
	}
}

// TestResolveCacheWriteOnce verifies the first resolution is the one the
// session keeps.
func TestResolveCacheWriteOnce(t *testing.T) {
	cache := NewSessionCache()
	cache.Put("a-b", student.Record{Name: "First"})
	cache.Put("a-b", student.Record{Name: "Second"})

	rec, ok := cache.Get("a-b")
	if !ok || rec.Name != "First" {
		t.Errorf("cache overwrote first resolution: %+v", rec)
	}
}

// TestResolveNormalizesIdentifier verifies mangled identifiers resolve to
// their canonical slug.
func TestResolveNormalizesIdentifier(t *testing.T) {
	deps := ResolvePassDeps{
		RosterStore: &stubRoster{records: map[string]student.Record{"rahul-sharma": rahul}},
	}

	res, err := QueryResolvePass(context.Background(), ResolvePassQuery{Identifier: "Rahul Sharma"}, deps)
	if err != nil {
		t.Fatal(err)
	}
	if res.Source != SourceRoster {
		t.Errorf("normalized identifier should hit roster, got %s", res.Source)
	}
}

// TestResolveEmptyIdentifier verifies unusable identifiers land on
// not_found even under the open policy.
func TestResolveEmptyIdentifier(t *testing.T) {
	res, err := QueryResolvePass(context.Background(), ResolvePassQuery{Identifier: "!!!"}, ResolvePassDeps{})
	if err != nil {
		t.Fatal(err)
	}
	if res.State != PassNotFound {
		t.Errorf("State = %s, want not_found", res.State)
	}
}

// TestResolveStorageFailureIsError verifies non-not-found storage errors
// surface as errors instead of silently reconstructing.
func TestResolveStorageFailureIsError(t *testing.T) {
	deps := ResolvePassDeps{
		RosterStore: &stubRoster{failWith: errors.New("disk on fire")},
	}

	_, err := QueryResolvePass(context.Background(), ResolvePassQuery{Identifier: "rahul-sharma"}, deps)
	if err == nil {
		t.Error("storage failure should return an error")
	}
}
