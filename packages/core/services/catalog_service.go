package services

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"bab-arcade/packages/core/models"

	"gorm.io/gorm"
)

// Catalog is the fixed list of competitors a profile can pick from.
type Catalog interface {
	List() ([]models.Competitor, error)
	Get(code string) (*models.Competitor, error)
	Create(c *models.Competitor) error
	Delete(code string) error
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db: db,
	}
}

func (s *CatalogService) List() ([]models.Competitor, error) {
	var competitors []models.Competitor
	if err := s.db.Order("name ASC").Find(&competitors).Error; err != nil {
		return nil, err
	}
	return competitors, nil
}

func (s *CatalogService) Get(code string) (*models.Competitor, error) {
	var competitor models.Competitor

	result := s.db.Where("code = ?", code).First(&competitor)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCompetitorNotFound, code)
		}
		return nil, result.Error
	}

	return &competitor, nil
}

func (s *CatalogService) Create(c *models.Competitor) error {
	if _, err := s.Get(c.Code); err == nil {
		return fmt.Errorf("%w: %s", ErrCompetitorExists, c.Code)
	}
	return s.db.Create(c).Error
}

// Delete removes a competitor from the catalog. Leagues and tournaments
// already running keep their own copy.
func (s *CatalogService) Delete(code string) error {
	result := s.db.Where("code = ?", code).Delete(&models.Competitor{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrCompetitorNotFound, code)
	}

	return nil
}

// MemoryCatalog serves a catalog held in process.
type MemoryCatalog struct {
	mu          sync.RWMutex
	competitors []models.Competitor
}

func NewMemoryCatalog(competitors []models.Competitor) *MemoryCatalog {
	c := &MemoryCatalog{competitors: append([]models.Competitor(nil), competitors...)}
	c.sort()
	return c
}

func (c *MemoryCatalog) List() ([]models.Competitor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Competitor(nil), c.competitors...), nil
}

func (c *MemoryCatalog) Get(code string) (*models.Competitor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, comp := range c.competitors {
		if comp.Code == code {
			cp := comp
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCompetitorNotFound, code)
}

func (c *MemoryCatalog) Create(comp *models.Competitor) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.competitors {
		if existing.Code == comp.Code {
			return fmt.Errorf("%w: %s", ErrCompetitorExists, comp.Code)
		}
	}
	c.competitors = append(c.competitors, *comp)
	c.sort()
	return nil
}

func (c *MemoryCatalog) Delete(code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, comp := range c.competitors {
		if comp.Code == code {
			c.competitors = append(c.competitors[:i], c.competitors[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrCompetitorNotFound, code)
}

func (c *MemoryCatalog) sort() {
	sort.SliceStable(c.competitors, func(i, j int) bool {
		return c.competitors[i].Name < c.competitors[j].Name
	})
}
