package services

import (
	"context"
	"fmt"
	"testing"

	"nestly_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ==========================
// Test fakes
// ==========================

type stubPreferences struct {
	prefs models.UserPreferences
	err   error
}

func (s *stubPreferences) GetForUser(ctx context.Context, userID string) (models.UserPreferences, error) {
	if s.err != nil {
		return models.UserPreferences{}, s.err
	}
	return s.prefs, nil
}

type stubProperties struct {
	byID       map[string]models.Property
	candidates []models.Property
}

func (s *stubProperties) GetProperty(ctx context.Context, propertyID string) (models.Property, error) {
	p, ok := s.byID[propertyID]
	if !ok {
		return models.Property{}, ErrPropertyNotFound
	}
	return p, nil
}

func (s *stubProperties) GetCandidates(ctx context.Context, prefs models.UserPreferences) ([]models.Property, error) {
	return s.candidates, nil
}

// memoryScoreStore keeps records in a map and hands out synthetic, strictly
// increasing timestamps so ordering is observable in tests.
type memoryScoreStore struct {
	records   map[string]models.MatchScore
	upserts   int
	failUpsert map[string]error
	clock     int
}

func newMemoryScoreStore() *memoryScoreStore {
	return &memoryScoreStore{records: map[string]models.MatchScore{}, failUpsert: map[string]error{}}
}

func storeKey(userID, propertyID string) string { return userID + "/" + propertyID }

func (m *memoryScoreStore) tick() string {
	m.clock++
	return fmt.Sprintf("2026-01-01T00:%02d:%02dZ", m.clock/60, m.clock%60)
}

func (m *memoryScoreStore) Upsert(ctx context.Context, userID, propertyID string, breakdown map[string]int, total int) (models.MatchScore, error) {
	if err, ok := m.failUpsert[propertyID]; ok {
		return models.MatchScore{}, err
	}
	m.upserts++
	now := m.tick()
	record, ok := m.records[storeKey(userID, propertyID)]
	if !ok {
		record = models.MatchScore{UserID: userID, PropertyID: propertyID, CreatedAt: now}
	}
	record.Total = total
	record.Breakdown = breakdown
	record.UpdatedAt = now
	m.records[storeKey(userID, propertyID)] = record
	return record, nil
}

func (m *memoryScoreStore) Get(ctx context.Context, userID, propertyID string) (*models.MatchScore, error) {
	record, ok := m.records[storeKey(userID, propertyID)]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (m *memoryScoreStore) GetForUser(ctx context.Context, userID string) ([]models.MatchScore, error) {
	var out []models.MatchScore
	for _, record := range m.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

func perfectFixture() (models.UserPreferences, models.Property) {
	prefs := models.UserPreferences{
		UserID:      "u1",
		BudgetMin:   2000,
		BudgetMax:   3000,
		Bedrooms:    []int{1, 2},
		Amenities:   []string{"gym", "pool"},
		Locations:   []string{"austin"},
		PetFriendly: true,
		Furnished:   true,
		Parking:     true,
	}
	property := models.Property{
		PropertyID:  "p1",
		Price:       2800,
		Bedrooms:    1,
		City:        "Austin",
		Amenities:   []string{"gym", "pool", "laundry"},
		PetFriendly: true,
		Furnished:   true,
		Parking:     true,
	}
	return prefs, property
}

func newTestService(prefs *stubPreferences, properties *stubProperties, store ScoreStore) *MatchScoreService {
	return &MatchScoreService{
		Preferences: prefs,
		Properties:  properties,
		Store:       store,
		Weights:     DefaultScoreWeights(),
		Log:         zap.NewNop(),
	}
}

// ==========================
// ComputeOne
// ==========================

func TestComputeOnePerfectMatchScoresHundred(t *testing.T) {
	prefs, property := perfectFixture()
	store := newMemoryScoreStore()
	svc := newTestService(
		&stubPreferences{prefs: prefs},
		&stubProperties{byID: map[string]models.Property{"p1": property}},
		store,
	)

	score, err := svc.ComputeOne(context.Background(), "u1", "p1")
	require.NoError(t, err)

	assert.Equal(t, 100, score.Total)
	for factor, sub := range score.Breakdown {
		assert.Equal(t, 100, sub, "factor %s", factor)
	}
	assert.NotEmpty(t, score.CreatedAt)
}

func TestComputeOneIsIdempotent(t *testing.T) {
	prefs, property := perfectFixture()
	store := newMemoryScoreStore()
	svc := newTestService(
		&stubPreferences{prefs: prefs},
		&stubProperties{byID: map[string]models.Property{"p1": property}},
		store,
	)
	ctx := context.Background()

	first, err := svc.ComputeOne(ctx, "u1", "p1")
	require.NoError(t, err)
	second, err := svc.ComputeOne(ctx, "u1", "p1")
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, first.Breakdown, second.Breakdown)
	assert.Equal(t, first.CreatedAt, second.CreatedAt, "refresh must not reset creation time")
}

func TestComputeOneOverBudgetStaysBelowHundred(t *testing.T) {
	prefs, property := perfectFixture()
	property.Price = 5000
	store := newMemoryScoreStore()
	svc := newTestService(
		&stubPreferences{prefs: prefs},
		&stubProperties{byID: map[string]models.Property{"p1": property}},
		store,
	)

	score, err := svc.ComputeOne(context.Background(), "u1", "p1")
	require.NoError(t, err)

	assert.Less(t, score.Total, 100)
	assert.Equal(t, 0, score.Breakdown[models.FactorBudget])
}

func TestComputeOneWithoutUserContext(t *testing.T) {
	store := newMemoryScoreStore()
	svc := newTestService(
		&stubPreferences{err: ErrNotAuthenticated},
		&stubProperties{},
		store,
	)

	_, err := svc.ComputeOne(context.Background(), "", "p1")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, store.upserts)
}

func TestComputeOneUnknownProperty(t *testing.T) {
	prefs, _ := perfectFixture()
	store := newMemoryScoreStore()
	svc := newTestService(
		&stubPreferences{prefs: prefs},
		&stubProperties{byID: map[string]models.Property{}},
		store,
	)

	_, err := svc.ComputeOne(context.Background(), "u1", "gone")
	assert.ErrorIs(t, err, ErrPropertyNotFound)
	assert.Zero(t, store.upserts)
}

func TestComputeOneSurfacesStoreFailure(t *testing.T) {
	prefs, property := perfectFixture()
	store := newMemoryScoreStore()
	store.failUpsert["p1"] = &PersistenceError{Op: "upsert score", Err: context.DeadlineExceeded}
	svc := newTestService(
		&stubPreferences{prefs: prefs},
		&stubProperties{byID: map[string]models.Property{"p1": property}},
		store,
	)

	_, err := svc.ComputeOne(context.Background(), "u1", "p1")

	var persistence *PersistenceError
	assert.ErrorAs(t, err, &persistence)
}

// ==========================
// RecomputeAll
// ==========================

func TestRecomputeAllCollectsPerItemFailures(t *testing.T) {
	prefs, _ := perfectFixture()

	byID := map[string]models.Property{}
	var candidates []models.Property
	for i := 1; i <= 5; i++ {
		p := models.Property{PropertyID: fmt.Sprintf("p%d", i), Price: 2500, Bedrooms: 1, City: "Austin"}
		candidates = append(candidates, p)
		if i != 3 { // the third candidate no longer resolves
			byID[p.PropertyID] = p
		}
	}

	store := newMemoryScoreStore()
	svc := newTestService(
		&stubPreferences{prefs: prefs},
		&stubProperties{byID: byID, candidates: candidates},
		store,
	)

	summary, err := svc.RecomputeAll(context.Background(), "u1")

	assert.Equal(t, 4, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, "p3", summary.Failures[0].PropertyID)

	var partial *PartialFailure
	require.ErrorAs(t, err, &partial)
	assert.Len(t, partial.Failures, 1)
}

func TestRecomputeAllAllSucceed(t *testing.T) {
	prefs, property := perfectFixture()
	store := newMemoryScoreStore()
	svc := newTestService(
		&stubPreferences{prefs: prefs},
		&stubProperties{
			byID:       map[string]models.Property{"p1": property},
			candidates: []models.Property{property},
		},
		store,
	)

	summary, err := svc.RecomputeAll(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Zero(t, summary.Failed)
}

func TestRecomputeAllStopsOnCancellation(t *testing.T) {
	prefs, property := perfectFixture()
	store := newMemoryScoreStore()
	svc := newTestService(
		&stubPreferences{prefs: prefs},
		&stubProperties{
			byID:       map[string]models.Property{"p1": property},
			candidates: []models.Property{property, property, property},
		},
		store,
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RecomputeAll(ctx, "u1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.upserts, "no item may be written after cancellation")
}

// ==========================
// Rank
// ==========================

func TestRankSortsFiltersAndLimits(t *testing.T) {
	prefs, _ := perfectFixture()
	store := newMemoryScoreStore()

	properties := map[string]models.Property{
		"p1": {PropertyID: "p1"},
		"p2": {PropertyID: "p2"},
		"p3": {PropertyID: "p3"},
		// p4 intentionally unresolvable
	}

	seed := func(propertyID string, total int) {
		_, err := store.Upsert(context.Background(), "u1", propertyID, map[string]int{models.FactorBudget: total}, total)
		require.NoError(t, err)
	}
	seed("p1", 95)
	seed("p2", 95) // same total, updated later, must rank first
	seed("p3", 90)
	seed("p4", 99) // highest total but its property is gone

	svc := newTestService(&stubPreferences{prefs: prefs}, &stubProperties{byID: properties}, store)

	ranked, err := svc.Rank(context.Background(), "u1", 10)
	require.NoError(t, err)

	require.Len(t, ranked, 3)
	assert.Equal(t, "p2", ranked[0].PropertyID)
	assert.Equal(t, "p1", ranked[1].PropertyID)
	assert.Equal(t, "p3", ranked[2].PropertyID)

	limited, err := svc.Rank(context.Background(), "u1", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

// ==========================
// Lookup
// ==========================

func TestLookupUnseenPairIsZeroAndWriteFree(t *testing.T) {
	prefs, _ := perfectFixture()
	store := newMemoryScoreStore()
	svc := newTestService(&stubPreferences{prefs: prefs}, &stubProperties{}, store)

	total := svc.Lookup(context.Background(), "u1", "never-scored")

	assert.Zero(t, total)
	assert.Zero(t, store.upserts, "lookup must never trigger a computation")
}

func TestLookupReturnsStoredTotal(t *testing.T) {
	prefs, _ := perfectFixture()
	store := newMemoryScoreStore()
	_, err := store.Upsert(context.Background(), "u1", "p1", map[string]int{models.FactorBudget: 73}, 73)
	require.NoError(t, err)

	svc := newTestService(&stubPreferences{prefs: prefs}, &stubProperties{}, store)

	assert.Equal(t, 73, svc.Lookup(context.Background(), "u1", "p1"))
}
