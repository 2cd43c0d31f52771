package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"bab-arcade/packages/auth/models"
	"bab-arcade/packages/auth/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNicknameTaken       = errors.New("nickname already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)

// ProfileStore persists profiles and their refresh tokens.
type ProfileStore interface {
	CreateProfile(p *models.Profile) error
	ProfileByID(id uint) (*models.Profile, error)
	ProfileByNickname(nickname string) (*models.Profile, error)
	SaveProfile(p *models.Profile) error

	SaveRefreshToken(t *models.RefreshToken) error
	RefreshToken(token string) (*models.RefreshToken, error)
	DeleteRefreshToken(token string) error
	DeleteProfileTokens(profileID uint) error
	DeleteExpiredTokens(now time.Time) (int64, error)
}

type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) CreateProfile(p *models.Profile) error {
	var count int64
	if err := s.db.Model(&models.Profile{}).Where("LOWER(nickname) = LOWER(?)", p.Nickname).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrNicknameTaken
	}
	return s.db.Create(p).Error
}

func (s *GormProfileStore) ProfileByID(id uint) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormProfileStore) ProfileByNickname(nickname string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.Where("LOWER(nickname) = LOWER(?)", nickname).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormProfileStore) SaveProfile(p *models.Profile) error {
	return s.db.Save(p).Error
}

func (s *GormProfileStore) SaveRefreshToken(t *models.RefreshToken) error {
	return s.db.Save(t).Error
}

func (s *GormProfileStore) RefreshToken(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.Where("token = ?", token).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	return &rt, nil
}

func (s *GormProfileStore) DeleteRefreshToken(token string) error {
	return s.db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (s *GormProfileStore) DeleteProfileTokens(profileID uint) error {
	return s.db.Where("profile_id = ?", profileID).Delete(&models.RefreshToken{}).Error
}

func (s *GormProfileStore) DeleteExpiredTokens(now time.Time) (int64, error) {
	result := s.db.Where("expires_at < ?", now).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

// MemoryProfileStore backs tests and database-less runs.
type MemoryProfileStore struct {
	mu          sync.Mutex
	nextID      uint
	nextTokenID uint
	profiles    map[uint]models.Profile
	tokens      map[string]models.RefreshToken
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[uint]models.Profile),
		tokens:   make(map[string]models.RefreshToken),
	}
}

func (s *MemoryProfileStore) CreateProfile(p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.profiles {
		if strings.EqualFold(existing.Nickname, p.Nickname) {
			return ErrNicknameTaken
		}
	}
	s.nextID++
	p.ID = s.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	s.profiles[p.ID] = *p
	return nil
}

func (s *MemoryProfileStore) ProfileByID(id uint) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return &p, nil
}

func (s *MemoryProfileStore) ProfileByNickname(nickname string) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if strings.EqualFold(p.Nickname, nickname) {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (s *MemoryProfileStore) SaveProfile(p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.UpdatedAt = time.Now()
	s.profiles[p.ID] = *p
	return nil
}

func (s *MemoryProfileStore) SaveRefreshToken(t *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		s.nextTokenID++
		t.ID = s.nextTokenID
	}
	s.tokens[t.Token] = *t
	return nil
}

func (s *MemoryProfileStore) RefreshToken(token string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.tokens[token]
	if !ok {
		return nil, ErrInvalidRefreshToken
	}
	return &rt, nil
}

func (s *MemoryProfileStore) DeleteRefreshToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
	return nil
}

func (s *MemoryProfileStore) DeleteProfileTokens(profileID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, t := range s.tokens {
		if t.ProfileID == profileID {
			delete(s.tokens, key)
		}
	}
	return nil
}

func (s *MemoryProfileStore) DeleteExpiredTokens(now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for key, t := range s.tokens {
		if t.IsExpired(now) {
			delete(s.tokens, key)
			n++
		}
	}
	return n, nil
}

// ProfileService signs profiles in and out.
type ProfileService struct {
	store      ProfileStore
	issuer     *utils.TokenIssuer
	refreshTTL time.Duration
	now        func() time.Time
	log        *logrus.Entry
}

func NewProfileService(store ProfileStore, issuer *utils.TokenIssuer, refreshTTL time.Duration, logger logrus.FieldLogger) *ProfileService {
	if refreshTTL <= 0 {
		refreshTTL = utils.RefreshTokenExpiry
	}
	return &ProfileService{
		store:      store,
		issuer:     issuer,
		refreshTTL: refreshTTL,
		now:        time.Now,
		log:        logger.WithField("component", "auth"),
	}
}

func (s *ProfileService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	hash, err := utils.HashPIN(req.PIN)
	if err != nil {
		return nil, err
	}

	now := s.now()
	profile := &models.Profile{
		Nickname:   strings.TrimSpace(req.Nickname),
		PINHash:    hash,
		Roles:      models.DefaultRoles(),
		LastLogin:  &now,
		LoginCount: 1,
	}
	if err := s.store.CreateProfile(profile); err != nil {
		return nil, err
	}

	s.log.WithField("profile", profile.ID).Info("profile registered")
	return s.issue(*profile)
}

func (s *ProfileService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	profile, err := s.store.ProfileByNickname(strings.TrimSpace(req.Nickname))
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPIN(req.PIN, profile.PINHash) {
		s.log.WithField("profile", profile.ID).Warn("wrong PIN")
		return nil, ErrInvalidCredentials
	}

	profile.TouchLogin(s.now())
	if err := s.store.SaveProfile(profile); err != nil {
		return nil, err
	}
	return s.issue(*profile)
}

// Refresh rotates the refresh token and hands out a new access token.
func (s *ProfileService) Refresh(token string) (*models.TokenResponse, error) {
	rt, err := s.store.RefreshToken(token)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if rt.IsExpired(now) {
		_ = s.store.DeleteRefreshToken(token)
		return nil, ErrInvalidRefreshToken
	}

	profile, err := s.store.ProfileByID(rt.ProfileID)
	if err != nil {
		return nil, err
	}
	access, err := s.issuer.Generate(*profile)
	if err != nil {
		return nil, err
	}

	next, err := utils.NewRefreshToken(profile.ID, now, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteRefreshToken(token); err != nil {
		return nil, err
	}
	if err := s.store.SaveRefreshToken(next); err != nil {
		return nil, err
	}

	return s.tokenResponse(access, next.Token), nil
}

func (s *ProfileService) Logout(token string) error {
	return s.store.DeleteRefreshToken(token)
}

func (s *ProfileService) LogoutAll(profileID uint) error {
	return s.store.DeleteProfileTokens(profileID)
}

func (s *ProfileService) Get(profileID uint) (*models.Profile, error) {
	return s.store.ProfileByID(profileID)
}

// CleanExpiredTokens drops refresh tokens past their expiry.
func (s *ProfileService) CleanExpiredTokens() (int64, error) {
	n, err := s.store.DeleteExpiredTokens(s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.WithField("count", n).Info("expired refresh tokens removed")
	}
	return n, nil
}

func (s *ProfileService) issue(profile models.Profile) (*models.AuthResponse, error) {
	access, err := s.issuer.Generate(profile)
	if err != nil {
		return nil, err
	}

	// one refresh token per profile
	if err := s.store.DeleteProfileTokens(profile.ID); err != nil {
		return nil, err
	}
	rt, err := utils.NewRefreshToken(profile.ID, s.now(), s.refreshTTL)
	if err != nil {
		return nil, err
	}
	if err := s.store.SaveRefreshToken(rt); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		TokenResponse: *s.tokenResponse(access, rt.Token),
		Profile:       profile,
	}, nil
}

func (s *ProfileService) tokenResponse(access, refresh string) *models.TokenResponse {
	return &models.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.issuer.TTL().Seconds()),
		TokenType:    "Bearer",
	}
}
