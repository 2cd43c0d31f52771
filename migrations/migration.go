package migrations

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db         *gorm.DB
	migrations []MigrationDefinition
	log        *logrus.Entry
}

// NewMigrator makes sure the bookkeeping table exists.
func NewMigrator(db *gorm.DB, logger logrus.FieldLogger) (*Migrator, error) {
	if err := db.AutoMigrate(&Migration{}); err != nil {
		return nil, fmt.Errorf("create migrations table: %w", err)
	}
	return &Migrator{
		db:  db,
		log: logger.WithField("component", "migrator"),
	}, nil
}

func (m *Migrator) AddMigration(migration MigrationDefinition) {
	m.migrations = append(m.migrations, migration)
}

// AddMigrations appends definitions in order.
func (m *Migrator) AddMigrations(migrations ...MigrationDefinition) {
	m.migrations = append(m.migrations, migrations...)
}

// Migrate runs every pending migration, all of them in one new batch.
func (m *Migrator) Migrate() error {
	m.log.Info("running database migrations")

	batch, err := m.latestBatch()
	if err != nil {
		return err
	}
	batch++

	applied := 0
	for _, migration := range m.migrations {
		done, err := m.hasRun(migration.Name)
		if err != nil {
			return err
		}
		if done {
			continue
		}

		m.log.WithField("migration", migration.Name).Info("migrating")
		err = m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return fmt.Errorf("migration %s failed: %w", migration.Name, err)
			}
			if err := tx.Create(&Migration{Name: migration.Name, Batch: batch}).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", migration.Name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		applied++
	}

	m.log.WithField("applied", applied).Info("migration completed")
	return nil
}

// Rollback undoes the latest steps batches.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}
	m.log.WithField("steps", steps).Info("rolling back")

	batch, err := m.latestBatch()
	if err != nil {
		return err
	}

	for i := 0; i < steps && batch > 0; i++ {
		var records []Migration
		if err := m.db.Where("batch = ?", batch).Order("id DESC").Find(&records).Error; err != nil {
			return err
		}

		for _, record := range records {
			migration := m.findMigration(record.Name)
			if migration == nil {
				return fmt.Errorf("migration definition not found: %s", record.Name)
			}
			if migration.Down == nil {
				return fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			m.log.WithField("migration", record.Name).Info("rolling back")
			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Down(tx); err != nil {
					return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
				}
				if err := tx.Delete(&record).Error; err != nil {
					return fmt.Errorf("failed to remove migration record %s: %w", record.Name, err)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}

		batch--
	}

	m.log.Info("rollback completed")
	return nil
}

// Status lists the applied migrations, oldest first.
func (m *Migrator) Status() ([]Migration, error) {
	var records []Migration
	err := m.db.Order("batch ASC, id ASC").Find(&records).Error
	return records, err
}

// Pending names the migrations not applied yet.
func (m *Migrator) Pending() ([]string, error) {
	var pending []string
	for _, migration := range m.migrations {
		done, err := m.hasRun(migration.Name)
		if err != nil {
			return nil, err
		}
		if !done {
			pending = append(pending, migration.Name)
		}
	}
	return pending, nil
}

func (m *Migrator) hasRun(name string) (bool, error) {
	var count int64
	err := m.db.Model(&Migration{}).Where("name = ?", name).Count(&count).Error
	return count > 0, err
}

func (m *Migrator) latestBatch() (int, error) {
	var migration Migration
	err := m.db.Order("batch DESC").First(&migration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return migration.Batch, err
}

func (m *Migrator) findMigration(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}

// All returns every migration of the service in the order they must run.
func All() []MigrationDefinition {
	return append(GetAuthMigrations(), GetCoreMigrations()...)
}
