package fixtures

import (
	"errors"
	"fmt"

	authModels "bab-arcade/packages/auth/models"
	authServices "bab-arcade/packages/auth/services"
	authUtils "bab-arcade/packages/auth/utils"
	"bab-arcade/packages/core/models"
	"bab-arcade/packages/core/services"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultCompetitors is the catalog a fresh install starts with.
var DefaultCompetitors = []models.Competitor{
	{Code: "GS", Name: "Galatasaray", Color1: "#A90432", Color2: "#FDB912"},
	{Code: "FB", Name: "Fenerbahçe", Color1: "#163962", Color2: "#FFED00"},
	{Code: "BJK", Name: "Beşiktaş", Color1: "#000000", Color2: "#FFFFFF"},
	{Code: "TS", Name: "Trabzonspor", Color1: "#8A1538", Color2: "#5BC2E7"},
	{Code: "BSK", Name: "Başakşehir", Color1: "#F47920", Color2: "#1B2A4A"},
	{Code: "KSP", Name: "Kasımpaşa", Color1: "#1D428A", Color2: "#FFFFFF"},
	{Code: "ANT", Name: "Antalyaspor", Color1: "#E30613", Color2: "#FFFFFF"},
	{Code: "KON", Name: "Konyaspor", Color1: "#00853F", Color2: "#FFFFFF"},
	{Code: "SAM", Name: "Samsunspor", Color1: "#E30613", Color2: "#FFFFFF"},
	{Code: "GOZ", Name: "Göztepe", Color1: "#FFD200", Color2: "#E30613"},
	{Code: "ALN", Name: "Alanyaspor", Color1: "#F7931E", Color2: "#00843D"},
	{Code: "SVS", Name: "Sivasspor", Color1: "#E30613", Color2: "#FFFFFF"},
}

// demoProfiles all share the PIN 1234. The first one is an admin.
var demoProfiles = []string{"admin", "kaleci", "forvet", "libero"}

const demoPIN = "1234"

type Fixtures struct {
	db       *gorm.DB
	catalog  services.Catalog
	profiles authServices.ProfileStore
	log      *logrus.Entry
}

func NewFixtures(db *gorm.DB, catalog services.Catalog, profiles authServices.ProfileStore, logger logrus.FieldLogger) *Fixtures {
	return &Fixtures{
		db:       db,
		catalog:  catalog,
		profiles: profiles,
		log:      logger.WithField("component", "fixtures"),
	}
}

// GenerateTestData seeds the competitor catalog and a few demo profiles.
// Rows that already exist are left alone.
func (f *Fixtures) GenerateTestData() error {
	f.log.Info("starting fixtures generation")

	added, err := f.seedCompetitors()
	if err != nil {
		return fmt.Errorf("failed to seed competitors: %w", err)
	}

	created, err := f.seedProfiles()
	if err != nil {
		return fmt.Errorf("failed to seed profiles: %w", err)
	}

	f.log.WithFields(logrus.Fields{
		"competitors": added,
		"profiles":    created,
	}).Info("fixtures generated")
	return nil
}

func (f *Fixtures) seedCompetitors() (int, error) {
	added := 0
	for _, c := range DefaultCompetitors {
		comp := c
		err := f.catalog.Create(&comp)
		if errors.Is(err, services.ErrCompetitorExists) {
			continue
		}
		if err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

func (f *Fixtures) seedProfiles() (int, error) {
	created := 0
	for i, nickname := range demoProfiles {
		if _, err := f.profiles.ProfileByNickname(nickname); err == nil {
			continue
		} else if !errors.Is(err, authServices.ErrProfileNotFound) {
			return created, err
		}

		hash, err := authUtils.HashPIN(demoPIN)
		if err != nil {
			return created, err
		}
		profile := &authModels.Profile{
			Nickname: nickname,
			PINHash:  hash,
			Roles:    authModels.DefaultRoles(),
		}
		if i == 0 {
			profile.AddRole(authModels.RoleAdmin)
		}
		if err := f.profiles.CreateProfile(profile); err != nil {
			return created, err
		}
		created++
		f.log.WithFields(logrus.Fields{"nickname": nickname, "id": profile.ID}).Debug("created profile")
	}
	return created, nil
}

// ClearAllData empties every table the service owns.
func (f *Fixtures) ClearAllData() error {
	if f.db == nil {
		return errors.New("clearing data needs a database")
	}
	f.log.Info("clearing all fixture data")

	// Delete in correct order due to foreign key constraints
	tables := []interface{}{
		&models.MatchRecord{},
		&models.TournamentSave{},
		&models.LeagueSave{},
		&models.Competitor{},
		&authModels.RefreshToken{},
		&authModels.Profile{},
	}

	for _, table := range tables {
		if err := f.db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return fmt.Errorf("failed to clear table %T: %w", table, err)
		}
	}

	sequences := []string{
		"ALTER SEQUENCE profiles_id_seq RESTART WITH 1",
		"ALTER SEQUENCE refresh_tokens_id_seq RESTART WITH 1",
		"ALTER SEQUENCE league_saves_id_seq RESTART WITH 1",
		"ALTER SEQUENCE tournament_saves_id_seq RESTART WITH 1",
	}
	for _, seq := range sequences {
		if err := f.db.Exec(seq).Error; err != nil {
			f.log.WithError(err).WithField("sql", seq).Warn("could not reset sequence")
		}
	}

	f.log.Info("all fixture data cleared")
	return nil
}
