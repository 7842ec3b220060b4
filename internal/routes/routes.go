package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"sisdna-portal/internal/cache"
	"sisdna-portal/internal/repositories"
	"sisdna-portal/internal/services"
	"sisdna-portal/pkg/config"
	"sisdna-portal/pkg/middleware"
	"sisdna-portal/pkg/service"
)

// InitRouter wires repositories, services and controllers and mounts the
// public and staff route groups. The public surface is the citizen
// directory and the location selector; everything else sits behind auth.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	defensoriaRepo := repositories.NewDefensoriaRepository(dbConn)
	responsableRepo := repositories.NewResponsableRepository(dbConn)
	caracteristicaRepo := repositories.NewCaracteristicaRepository(dbConn)
	ubigeoRepo := repositories.NewUbigeoRepository(dbConn)
	supervisionRepo := repositories.NewSupervisionRepository(dbConn)
	seguimientoRepo := repositories.NewSeguimientoRepository(dbConn)
	fichaRepo := repositories.NewFichaRepository(dbConn)
	supervisorRepo := repositories.NewSupervisorRepository(dbConn)
	modalidadRepo := repositories.NewModalidadRepository(dbConn)
	syncEstadoRepo := repositories.NewSyncEstadoRepository(dbConn)
	cierreTipoRepo := repositories.NewCierreTipoRepository(dbConn)
	reporteRepo := repositories.NewReporteRepository(dbConn)
	userRepo := repositories.NewUserRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	dictionaries := cache.NewDictionaryCache(redisClient, logger, cfg.Cache.DictionaryTTL)

	defensoriaSvc := services.NewDefensoriaService(defensoriaRepo, responsableRepo, caracteristicaRepo, ubigeoRepo, &cfg.Sisdna, logger)
	supervisionSvc := services.NewSupervisionService(
		supervisionRepo, defensoriaRepo, seguimientoRepo, fichaRepo,
		supervisorRepo, modalidadRepo, cierreTipoRepo, ubigeoRepo,
		dictionaries, &cfg.Sisdna, logger,
	)
	syncDefensoriaSvc := services.NewSyncDefensoriaService(defensoriaRepo, syncEstadoRepo, ubigeoRepo, dictionaries, logger)
	syncSupervisionSvc := services.NewSyncSupervisionService(supervisionRepo, defensoriaRepo, supervisorRepo, modalidadRepo, ubigeoRepo, syncDefensoriaSvc, logger)
	ubigeoSvc := services.NewUbigeoService(ubigeoRepo, dictionaries, logger)
	reporteSvc := services.NewReporteService(reporteRepo, caracteristicaRepo, ubigeoRepo, defensoriaSvc, logger)
	authSvc := services.NewAuthService(userRepo, cacheRepo, jwtSvc, &cfg.Auth, logger)

	secure := api.Group("", authMW.Auth)

	runAuthRouter(api, secure, authSvc, logger)
	runDefensoriaRouter(api, secure, defensoriaSvc, logger)
	runSupervisionRouter(secure, supervisionSvc, logger)
	runSincronizacionRouter(secure, syncDefensoriaSvc, syncSupervisionSvc, logger)
	runUbigeoRouter(api, ubigeoSvc, logger)
	runReporteRouter(secure, reporteSvc, logger)
}
