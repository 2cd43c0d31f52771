package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2026_01_02_000000_create_competitors_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS competitors (
						code VARCHAR(8) PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						color1 VARCHAR(32),
						color2 VARCHAR(32)
					);
					CREATE INDEX IF NOT EXISTS idx_competitors_name ON competitors(name);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS competitors CASCADE").Error
			},
		},
		{
			Name: "2026_01_02_000100_create_competition_saves",
			Up: func(db *gorm.DB) error {
				// Saves embed their own copy of the competitors, so there is no
				// foreign key to the catalog.
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS league_saves (
						id BIGSERIAL PRIMARY KEY,
						profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
						tracked_code VARCHAR(8) NOT NULL,
						state JSONB NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_league_saves_profile_id ON league_saves(profile_id);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS tournament_saves (
						id BIGSERIAL PRIMARY KEY,
						profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
						state JSONB NOT NULL,
						created_at TIMESTAMP DEFAULT NOW(),
						updated_at TIMESTAMP DEFAULT NOW()
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_tournament_saves_profile_id ON tournament_saves(profile_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS tournament_saves CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS league_saves CASCADE").Error
			},
		},
		{
			Name: "2026_01_02_000200_create_match_records_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS match_records (
						id UUID PRIMARY KEY,
						profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
						mode VARCHAR(20) NOT NULL,
						difficulty VARCHAR(20) NOT NULL,
						tracked_code VARCHAR(8) NOT NULL,
						team1_code VARCHAR(8) NOT NULL,
						team2_code VARCHAR(8) NOT NULL,
						team1_score INT NOT NULL,
						team2_score INT NOT NULL,
						team1_penalties INT NULL,
						team2_penalties INT NULL,
						winner_code VARCHAR(8),
						created_at TIMESTAMP DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_match_records_profile_id ON match_records(profile_id);
					CREATE INDEX IF NOT EXISTS idx_match_records_created_at ON match_records(created_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS match_records CASCADE").Error
			},
		},
	}
}
