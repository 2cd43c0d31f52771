package services

import (
	"errors"
	"sync"
	"time"

	"bab-arcade/packages/core/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CompetitionStore keeps at most one league and one tournament per profile.
type CompetitionStore interface {
	LoadLeague(profileID uint) (*models.LeagueSave, error)
	SaveLeague(save *models.LeagueSave) error
	DeleteLeague(profileID uint) error
	LoadTournament(profileID uint) (*models.TournamentSave, error)
	SaveTournament(save *models.TournamentSave) error
	DeleteTournament(profileID uint) error
}

type GormCompetitionStore struct {
	db *gorm.DB
}

func NewGormCompetitionStore(db *gorm.DB) *GormCompetitionStore {
	return &GormCompetitionStore{
		db: db,
	}
}

func (s *GormCompetitionStore) LoadLeague(profileID uint) (*models.LeagueSave, error) {
	var save models.LeagueSave

	result := s.db.Where("profile_id = ?", profileID).First(&save)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveLeague
		}
		return nil, result.Error
	}

	return &save, nil
}

// SaveLeague inserts the profile's league or replaces the stored one.
func (s *GormCompetitionStore) SaveLeague(save *models.LeagueSave) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tracked_code", "state", "updated_at"}),
	}).Create(save).Error
}

func (s *GormCompetitionStore) DeleteLeague(profileID uint) error {
	result := s.db.Where("profile_id = ?", profileID).Delete(&models.LeagueSave{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoActiveLeague
	}

	return nil
}

func (s *GormCompetitionStore) LoadTournament(profileID uint) (*models.TournamentSave, error) {
	var save models.TournamentSave

	result := s.db.Where("profile_id = ?", profileID).First(&save)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveTournament
		}
		return nil, result.Error
	}

	return &save, nil
}

func (s *GormCompetitionStore) SaveTournament(save *models.TournamentSave) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
	}).Create(save).Error
}

func (s *GormCompetitionStore) DeleteTournament(profileID uint) error {
	result := s.db.Where("profile_id = ?", profileID).Delete(&models.TournamentSave{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoActiveTournament
	}

	return nil
}

// MemoryCompetitionStore keeps saves in process. Values are deep-copied on
// the way in and out.
type MemoryCompetitionStore struct {
	mu          sync.RWMutex
	leagues     map[uint]models.LeagueSave
	tournaments map[uint]models.TournamentSave
}

func NewMemoryCompetitionStore() *MemoryCompetitionStore {
	return &MemoryCompetitionStore{
		leagues:     make(map[uint]models.LeagueSave),
		tournaments: make(map[uint]models.TournamentSave),
	}
}

func (s *MemoryCompetitionStore) LoadLeague(profileID uint) (*models.LeagueSave, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	save, ok := s.leagues[profileID]
	if !ok {
		return nil, ErrNoActiveLeague
	}
	out := copyLeagueSave(save)
	return &out, nil
}

func (s *MemoryCompetitionStore) SaveLeague(save *models.LeagueSave) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if prev, ok := s.leagues[save.ProfileID]; ok {
		save.ID = prev.ID
		save.CreatedAt = prev.CreatedAt
	} else {
		save.ID = uint(len(s.leagues) + 1)
		save.CreatedAt = now
	}
	save.UpdatedAt = now
	s.leagues[save.ProfileID] = copyLeagueSave(*save)
	return nil
}

func (s *MemoryCompetitionStore) DeleteLeague(profileID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leagues[profileID]; !ok {
		return ErrNoActiveLeague
	}
	delete(s.leagues, profileID)
	return nil
}

func (s *MemoryCompetitionStore) LoadTournament(profileID uint) (*models.TournamentSave, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	save, ok := s.tournaments[profileID]
	if !ok {
		return nil, ErrNoActiveTournament
	}
	out := copyTournamentSave(save)
	return &out, nil
}

func (s *MemoryCompetitionStore) SaveTournament(save *models.TournamentSave) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if prev, ok := s.tournaments[save.ProfileID]; ok {
		save.ID = prev.ID
		save.CreatedAt = prev.CreatedAt
	} else {
		save.ID = uint(len(s.tournaments) + 1)
		save.CreatedAt = now
	}
	save.UpdatedAt = now
	s.tournaments[save.ProfileID] = copyTournamentSave(*save)
	return nil
}

func (s *MemoryCompetitionStore) DeleteTournament(profileID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tournaments[profileID]; !ok {
		return ErrNoActiveTournament
	}
	delete(s.tournaments, profileID)
	return nil
}

func copyLeagueSave(save models.LeagueSave) models.LeagueSave {
	save.State = datatypes.NewJSONType(save.State.Data().Clone())
	return save
}

func copyTournamentSave(save models.TournamentSave) models.TournamentSave {
	save.State = datatypes.NewJSONType(save.State.Data().Clone())
	return save
}
