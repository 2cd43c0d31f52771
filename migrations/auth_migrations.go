package migrations

import "gorm.io/gorm"

func GetAuthMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2026_01_01_000000_create_profiles_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS profiles (
						id SERIAL PRIMARY KEY,
						nickname VARCHAR(32) NOT NULL,
						pin_hash VARCHAR(255) NOT NULL,
						roles JSONB DEFAULT '["user"]'::jsonb,
						last_login TIMESTAMP NULL,
						login_count INTEGER DEFAULT 0,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						deleted_at TIMESTAMP NULL
					);
					CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_nickname ON profiles(nickname);
					CREATE INDEX IF NOT EXISTS idx_profiles_deleted_at ON profiles(deleted_at);
					CREATE INDEX IF NOT EXISTS idx_profiles_roles ON profiles USING GIN (roles);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS profiles CASCADE").Error
			},
		},
		{
			Name: "2026_01_01_000100_create_refresh_tokens_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS refresh_tokens (
						id SERIAL PRIMARY KEY,
						profile_id INTEGER NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
						token VARCHAR(255) UNIQUE NOT NULL,
						expires_at TIMESTAMP NOT NULL,
						created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
						updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
					);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_profile_id ON refresh_tokens(profile_id);
					CREATE INDEX IF NOT EXISTS idx_refresh_tokens_expires_at ON refresh_tokens(expires_at);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS refresh_tokens CASCADE").Error
			},
		},
	}
}
