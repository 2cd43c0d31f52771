package core

import (
	"bab-arcade/packages/auth"
	authModels "bab-arcade/packages/auth/models"
	"bab-arcade/packages/core/cron"
	"bab-arcade/packages/core/engine"
	"bab-arcade/packages/core/handlers"
	"bab-arcade/packages/core/match"
	"bab-arcade/packages/core/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Dependencies are the stores and knobs the core module is built from.
type Dependencies struct {
	Catalog      services.Catalog
	Competitions services.CompetitionStore
	History      services.HistoryStore
	Simulator    *engine.Simulator
	Clock        match.Clock
	Match        match.Config
	Schedule     cron.Config
	Auth         *auth.Module
	Logger       logrus.FieldLogger
}

type Module struct {
	CompetitorHandler *handlers.CompetitorHandler
	LeagueHandler     *handlers.LeagueHandler
	LeagueService     *services.LeagueService
	TournamentHandler *handlers.TournamentHandler
	TournamentService *services.TournamentService
	MatchHandler      *handlers.MatchHandler
	MatchService      *services.MatchService
	StatsHandler      *handlers.StatsHandler
	HistoryService    *services.HistoryService
	Scheduler         *cron.Scheduler
	auth              *auth.Module
	log               *logrus.Entry
}

func NewModule(deps Dependencies) *Module {
	locks := services.NewKeyedMutex()

	leagueService := services.NewLeagueService(deps.Competitions, deps.Catalog, deps.Simulator, locks, deps.Logger)
	tournamentService := services.NewTournamentService(deps.Competitions, deps.Catalog, deps.Simulator, locks, deps.Logger)
	historyService := services.NewHistoryService(deps.History, deps.Logger)
	matchService := services.NewMatchService(deps.Catalog, leagueService, tournamentService, historyService, deps.Clock, deps.Match, deps.Logger)

	var cleaner cron.TokenCleaner
	if deps.Auth != nil {
		cleaner = deps.Auth.Profiles
	}
	scheduler := cron.NewScheduler(matchService, cleaner, deps.Schedule, deps.Logger)

	return &Module{
		CompetitorHandler: handlers.NewCompetitorHandler(deps.Catalog),
		LeagueHandler:     handlers.NewLeagueHandler(leagueService),
		LeagueService:     leagueService,
		TournamentHandler: handlers.NewTournamentHandler(tournamentService),
		TournamentService: tournamentService,
		MatchHandler:      handlers.NewMatchHandler(matchService),
		MatchService:      matchService,
		StatsHandler:      handlers.NewStatsHandler(historyService),
		HistoryService:    historyService,
		Scheduler:         scheduler,
		auth:              deps.Auth,
		log:               deps.Logger.WithField("component", "core"),
	}
}

func (m *Module) SetupRoutes(r *gin.Engine) {
	jwt := m.auth.JWTMiddleware()
	admin := auth.RequireRole(authModels.RoleAdmin)

	competitors := r.Group("/competitors")
	{
		competitors.GET("", m.CompetitorHandler.GetCompetitors)
		competitors.GET("/:code", m.CompetitorHandler.GetCompetitor)
		competitors.POST("", jwt, admin, m.CompetitorHandler.CreateCompetitor)
		competitors.DELETE("/:code", jwt, admin, m.CompetitorHandler.DeleteCompetitor)
	}

	league := r.Group("/league", jwt)
	{
		league.POST("", m.LeagueHandler.StartLeague)
		league.GET("", m.LeagueHandler.GetLeague)
		league.DELETE("", m.LeagueHandler.AbandonLeague)
		league.GET("/next", m.LeagueHandler.GetNextFixture)
		league.POST("/simulate-week", m.LeagueHandler.SimulateWeek)
	}

	tournament := r.Group("/tournament", jwt)
	{
		tournament.POST("", m.TournamentHandler.StartTournament)
		tournament.GET("", m.TournamentHandler.GetTournament)
		tournament.DELETE("", m.TournamentHandler.AbandonTournament)
		tournament.GET("/next", m.TournamentHandler.GetNextFixture)
		tournament.POST("/simulate", m.TournamentHandler.SimulateTournament)
	}

	matches := r.Group("/matches", jwt)
	{
		matches.POST("", m.MatchHandler.StartMatch)
		matches.GET("/current", m.MatchHandler.GetCurrentMatch)
		matches.GET("/history", m.StatsHandler.GetHistory)
		matches.GET("/stats", m.StatsHandler.GetStats)
		matches.GET("/:id", m.MatchHandler.GetMatch)
		matches.POST("/:id/goal", m.MatchHandler.Goal)
		matches.POST("/:id/pause", m.MatchHandler.Pause)
		matches.POST("/:id/resume", m.MatchHandler.Resume)
		matches.POST("/:id/continue", m.MatchHandler.Continue)
		matches.POST("/:id/shootout", m.MatchHandler.Shootout)
		matches.POST("/:id/finish", m.MatchHandler.Finish)
		matches.POST("/:id/forfeit", m.MatchHandler.Forfeit)
	}
}

// StartScheduler starts the idle match reaper and the token cleanup.
func (m *Module) StartScheduler() error {
	m.log.Info("starting core module scheduler")
	return m.Scheduler.Start()
}

func (m *Module) StopScheduler() {
	m.log.Info("stopping core module scheduler")
	m.Scheduler.Stop()
}

// RunNow runs every scheduled job once.
func (m *Module) RunNow() {
	m.Scheduler.RunNow()
}
