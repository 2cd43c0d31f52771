package services

import (
	"math"
	"sort"
	"sync"
	"time"

	"bab-arcade/packages/core/models"
	"bab-arcade/packages/core/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// HistoryStore keeps the matches played by humans.
type HistoryStore interface {
	Add(record *models.MatchRecord) error
	List(profileID uint, offset, limit int) ([]models.MatchRecord, int64, error)
	// All returns the records of the profile, oldest first.
	All(profileID uint) ([]models.MatchRecord, error)
}

type GormHistoryStore struct {
	db *gorm.DB
}

func NewGormHistoryStore(db *gorm.DB) *GormHistoryStore {
	return &GormHistoryStore{
		db: db,
	}
}

func (s *GormHistoryStore) Add(record *models.MatchRecord) error {
	return s.db.Create(record).Error
}

func (s *GormHistoryStore) List(profileID uint, offset, limit int) ([]models.MatchRecord, int64, error) {
	var records []models.MatchRecord
	var total int64

	query := s.db.Model(&models.MatchRecord{}).Where("profile_id = ?", profileID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (s *GormHistoryStore) All(profileID uint) ([]models.MatchRecord, error) {
	var records []models.MatchRecord
	if err := s.db.Where("profile_id = ?", profileID).Order("created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

type MemoryHistoryStore struct {
	mu      sync.RWMutex
	records []models.MatchRecord
}

func NewMemoryHistoryStore() *MemoryHistoryStore {
	return &MemoryHistoryStore{}
}

func (s *MemoryHistoryStore) Add(record *models.MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	s.records = append(s.records, *record)
	return nil
}

func (s *MemoryHistoryStore) List(profileID uint, offset, limit int) ([]models.MatchRecord, int64, error) {
	all, _ := s.All(profileID)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))
	if offset >= len(all) {
		return []models.MatchRecord{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *MemoryHistoryStore) All(profileID uint) ([]models.MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MatchRecord
	for _, r := range s.records {
		if r.ProfileID == profileID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type HistoryService struct {
	store HistoryStore
	now   func() time.Time
	log   *logrus.Entry
}

func NewHistoryService(store HistoryStore, logger logrus.FieldLogger) *HistoryService {
	return &HistoryService{
		store: store,
		now:   time.Now,
		log:   logger.WithField("component", "history"),
	}
}

// Record stores a finished match seen from the tracked competitor.
func (s *HistoryService) Record(profileID uint, mode models.Mode, difficulty models.Difficulty, tracked string, team1, team2 models.Competitor, result models.MatchResult) (*models.MatchRecord, error) {
	record := &models.MatchRecord{
		ID:             uuid.New(),
		ProfileID:      profileID,
		Mode:           mode,
		Difficulty:     difficulty,
		TrackedCode:    tracked,
		Team1Code:      team1.Code,
		Team2Code:      team2.Code,
		Team1Score:     result.Team1Score,
		Team2Score:     result.Team2Score,
		Team1Penalties: result.Team1Penalties,
		Team2Penalties: result.Team2Penalties,
		CreatedAt:      s.now(),
	}
	switch result.Winner() {
	case models.Team1Wins:
		record.WinnerCode = team1.Code
	case models.Team2Wins:
		record.WinnerCode = team2.Code
	}

	if err := s.store.Add(record); err != nil {
		s.log.WithError(err).WithField("profile", profileID).Error("failed to store match record")
		return nil, err
	}
	return record, nil
}

func (s *HistoryService) List(profileID uint, page, pageSize int) (*models.PaginatedMatchRecordResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	records, total, err := s.store.List(profileID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	return &models.PaginatedMatchRecordResponse{
		Data:       records,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Stats aggregates every recorded match of the profile, oldest first. The
// rating is an Elo walk against the fixed strength of each difficulty.
func (s *HistoryService) Stats(profileID uint) (*models.Stats, error) {
	records, err := s.store.All(profileID)
	if err != nil {
		return nil, err
	}

	stats := &models.Stats{Rating: utils.StartingRating, PeakRating: utils.StartingRating}
	weekAgo := s.now().AddDate(0, 0, -7)
	for _, r := range records {
		stats.Played++
		if !r.CreatedAt.Before(weekAgo) {
			stats.MatchesLast7Days++
		}

		forGoals, againstGoals := r.Team1Score, r.Team2Score
		if r.TrackedCode == r.Team2Code {
			forGoals, againstGoals = againstGoals, forGoals
		}
		stats.GoalsFor += int64(forGoals)
		stats.GoalsAgainst += int64(againstGoals)

		score := 0.0
		switch r.WinnerCode {
		case "":
			stats.Drawn++
			score = 0.5
		case r.TrackedCode:
			stats.Won++
			score = 1
		default:
			stats.Lost++
		}
		stats.Rating += utils.RatingChange(stats.Rating, utils.OpponentRating(r.Difficulty), score)
		stats.PeakRating = math.Max(stats.PeakRating, stats.Rating)
		if r.Team1Penalties != nil {
			if r.WinnerCode == r.TrackedCode {
				stats.ShootoutsWon++
			} else {
				stats.ShootoutsLost++
			}
		}
	}
	return stats, nil
}
