package fixtures

import (
	"io"
	"testing"

	authModels "bab-arcade/packages/auth/models"
	authServices "bab-arcade/packages/auth/services"
	authUtils "bab-arcade/packages/auth/utils"
	"bab-arcade/packages/core/engine"
	"bab-arcade/packages/core/services"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestGenerateTestDataIsIdempotent(t *testing.T) {
	catalog := services.NewMemoryCatalog(nil)
	profiles := authServices.NewMemoryProfileStore()
	f := NewFixtures(nil, catalog, profiles, quietLogger())

	require.NoError(t, f.GenerateTestData())
	require.NoError(t, f.GenerateTestData())

	list, err := catalog.List()
	require.NoError(t, err)
	assert.Len(t, list, len(DefaultCompetitors))

	admin, err := profiles.ProfileByNickname("admin")
	require.NoError(t, err)
	assert.True(t, admin.HasRole(authModels.RoleAdmin))
	assert.True(t, authUtils.CheckPIN(demoPIN, admin.PINHash))

	player, err := profiles.ProfileByNickname("kaleci")
	require.NoError(t, err)
	assert.False(t, player.HasRole(authModels.RoleAdmin))
}

func TestDefaultCatalogIsPlayable(t *testing.T) {
	codes := make(map[string]bool)
	for _, c := range DefaultCompetitors {
		assert.False(t, codes[c.Code], "duplicate code %s", c.Code)
		codes[c.Code] = true
	}

	league, err := engine.NewLeague(DefaultCompetitors)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCompetitors)-1, league.TotalRounds())
}

func TestClearAllDataNeedsADatabase(t *testing.T) {
	f := NewFixtures(nil, services.NewMemoryCatalog(nil), authServices.NewMemoryProfileStore(), quietLogger())
	assert.Error(t, f.ClearAllData())
}
