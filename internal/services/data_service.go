package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/catalog"
	"github.com/vytor/artikelfinder/internal/errors"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

// maxSnapshotBytes bounds an uploaded snapshot.
const maxSnapshotBytes = 8 << 20

// ImportReport describes what an import kept.
type ImportReport struct {
	Favorites int  `json:"favorites"`
	WordStats int  `json:"word_stats"`
	Streak    int  `json:"streak"`
	Legacy    bool `json:"legacy"`
	// Dropped names entries that did not match the catalog.
	Dropped []string `json:"dropped,omitempty"`
}

// DataService exports, imports and wipes all user data
type DataService interface {
	Export(ctx context.Context) (*models.Snapshot, error)
	// Import replaces favorites, stats and streak with the snapshot read from r.
	Import(ctx context.Context, r io.Reader) (*ImportReport, error)
	// ResetAll deletes favorites, stats, streak and settings.
	ResetAll(ctx context.Context) error
}

type dataService struct {
	catalog      *catalog.Catalog
	snapshotRepo repository.SnapshotRepository
	clock        calendar.Clock
	validate     *validator.Validate
}

// NewDataService creates a new DataService
func NewDataService(cat *catalog.Catalog, snapshotRepo repository.SnapshotRepository, clock calendar.Clock) DataService {
	return &dataService{
		catalog:      cat,
		snapshotRepo: snapshotRepo,
		clock:        clock,
		validate:     newValidator(),
	}
}

func (s *dataService) Export(ctx context.Context) (*models.Snapshot, error) {
	log := logger.FromContext(ctx)
	log.Debug("exporting user data")

	snap, err := s.snapshotRepo.Export(ctx)
	if err != nil {
		log.Error("failed to export data: %v", err)
		return nil, errors.NewInternalError(err)
	}
	now := s.clock.Now().UTC()
	snap.Version = models.SnapshotVersion
	snap.ExportedAt = &now

	log.Info("data exported: favorites=%d, word_stats=%d", len(snap.Favorites), len(snap.WordStats))
	return &snap, nil
}

func (s *dataService) Import(ctx context.Context, r io.Reader) (*ImportReport, error) {
	log := logger.FromContext(ctx)
	log.Debug("importing user data")

	body, err := io.ReadAll(io.LimitReader(r, maxSnapshotBytes+1))
	if err != nil {
		return nil, errors.NewBadRequestError("could not read snapshot")
	}
	if len(body) > maxSnapshotBytes {
		return nil, errors.NewBadRequestError("snapshot too large")
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(body, &keys); err != nil {
		return nil, errors.NewBadRequestError("snapshot is not a JSON object")
	}
	for _, key := range []string{"favorites", "streakData"} {
		if _, ok := keys[key]; !ok {
			return nil, errors.NewValidationError("snapshot", "missing "+key)
		}
	}
	_, hasStats := keys["wordStats"]
	_, hasLegacy := keys["quizStats"]
	if !hasStats && !hasLegacy {
		return nil, errors.NewValidationError("snapshot", "missing wordStats")
	}

	var snap models.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, errors.NewBadRequestError(fmt.Sprintf("invalid snapshot: %v", err))
	}
	if snap.Version > models.SnapshotVersion {
		return nil, errors.NewValidationError("version", fmt.Sprintf("unsupported snapshot version %d", snap.Version))
	}
	if err := s.validate.Struct(snap); err != nil {
		return nil, validationError(err)
	}

	clean, report := s.normalize(ctx, snap)
	report.Legacy = hasLegacy && !hasStats

	if err := s.snapshotRepo.ReplaceAll(ctx, clean); err != nil {
		log.Error("failed to import data: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("data imported: favorites=%d, word_stats=%d, streak=%d, dropped=%d",
		report.Favorites, report.WordStats, report.Streak, len(report.Dropped))
	return report, nil
}

// normalize maps every entry onto catalog ids. Unknown favorites and stats are
// dropped, duplicate stats are summed, and legacy text-keyed stats go to the
// lowest id sharing that word.
func (s *dataService) normalize(ctx context.Context, snap models.Snapshot) (models.Snapshot, *ImportReport) {
	log := logger.FromContext(ctx)
	report := &ImportReport{}

	favorites := make([]int64, 0, len(snap.Favorites))
	seen := make(map[int64]struct{}, len(snap.Favorites))
	for _, id := range snap.Favorites {
		if !s.catalog.Has(id) {
			report.Dropped = append(report.Dropped, fmt.Sprintf("favorite %d", id))
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		favorites = append(favorites, id)
	}

	merged := make(map[int64]models.WordStat)
	add := func(id int64, correct, incorrect int) {
		w, _ := s.catalog.Get(id)
		st := merged[id]
		st.WordID, st.Word = id, w.Word
		st.Correct += correct
		st.Incorrect += incorrect
		merged[id] = st
	}
	for _, st := range snap.WordStats {
		if !s.catalog.Has(st.WordID) {
			report.Dropped = append(report.Dropped, fmt.Sprintf("word stat %d", st.WordID))
			continue
		}
		add(st.WordID, st.Correct, st.Incorrect)
	}
	for _, word := range slices.Sorted(maps.Keys(snap.QuizStats)) {
		ids := s.catalog.IDsForWord(word)
		if len(ids) == 0 {
			report.Dropped = append(report.Dropped, fmt.Sprintf("word stat %q", word))
			continue
		}
		legacy := snap.QuizStats[word]
		add(ids[0], legacy.Correct, legacy.Incorrect)
	}

	stats := make([]models.WordStat, 0, len(merged))
	for _, id := range slices.Sorted(maps.Keys(merged)) {
		if st := merged[id]; st.Total() > 0 {
			stats = append(stats, st)
		}
	}

	for _, d := range report.Dropped {
		log.Warn("import: dropping %s not in catalog", d)
	}

	report.Favorites = len(favorites)
	report.WordStats = len(stats)
	report.Streak = snap.StreakData.Streak
	return models.Snapshot{
		Version:    models.SnapshotVersion,
		Favorites:  favorites,
		WordStats:  stats,
		StreakData: snap.StreakData,
	}, report
}

func (s *dataService) ResetAll(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("resetting all user data")

	if err := s.snapshotRepo.DeleteAll(ctx); err != nil {
		log.Error("failed to reset data: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
