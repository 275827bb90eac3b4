package router

import (
	"time"

	"rapifarma/internal/config"
	"rapifarma/internal/handler"
	"rapifarma/internal/infra"
	"rapifarma/internal/middleware"
	"rapifarma/internal/repository"
	"rapifarma/internal/service"
	"rapifarma/internal/store"
	"rapifarma/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository/Store ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, storageCB *infra.CircuitBreaker, storage *infra.Storage, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories y stores ────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	cuadreRepo := repository.NewCuadreRepository(db)
	cuentaRepo := repository.NewCuentaRepository(db)
	pagoRepo := repository.NewPagoRepository(db)
	listaRepo := repository.NewListaRepository(db)

	carts := store.NewRedisCartStore(rdb)
	overlays := store.NewRedisOverlayStore(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	cuadreSvc := service.NewCuadreService(cuadreRepo, dispatcher)
	cuentaSvc := service.NewCuentaService(cuentaRepo)
	pagoSvc := service.NewPagoService(pagoRepo, cuentaRepo, overlays)
	ordenSvc := service.NewOrdenService(carts, listaRepo)
	listaSvc := service.NewListaService(listaRepo, cfg.LotesBatchSize)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	cuadresH := handler.NewCuadresHandler(cuadreSvc)
	cuentasH := handler.NewCuentasHandler(cuentaSvc)
	pagosH := handler.NewPagosHandler(pagoSvc)
	ordenesH := handler.NewOrdenesHandler(ordenSvc, cfg.PDFStoragePath)
	listasH := handler.NewListasHandler(listaSvc, cfg.ExcelMaxMB)
	storageH := handler.NewStorageHandler(storage)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, storageCB))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Cuadres de caja — scoped to the pharmacies the user can access
		agg := v1.Group("/agg", middleware.RequirePermiso("cuadres"))
		{
			agg.POST("/cuadre/:farmaciaId", middleware.RequireFarmacia("farmaciaId"), cuadresH.Crear)
		}
		cuadres := v1.Group("/cuadres", middleware.RequirePermiso("cuadres"))
		{
			cuadres.GET("/:farmaciaId", middleware.RequireFarmacia("farmaciaId"), cuadresH.Listar)
			cuadres.GET("/:farmaciaId/:cuadreId", middleware.RequireFarmacia("farmaciaId"), cuadresH.Obtener)
			cuadres.PATCH("/:farmaciaId/:cuadreId/estado", middleware.RequireFarmacia("farmaciaId"), cuadresH.CambiarEstado)
		}

		cuentas := v1.Group("/cuentas-por-pagar", middleware.RequirePermiso("cuentas"))
		{
			cuentas.POST("", cuentasH.Crear)
			cuentas.GET("", cuentasH.Listar)
			cuentas.GET("/:id", cuentasH.Obtener)
			cuentas.PATCH("/:id/estatus", cuentasH.CambiarEstatus)
			cuentas.PATCH("/:id/tipo", cuentasH.CambiarTipo)
			// Edición pendiente de pago (overlay por usuario)
			cuentas.PUT("/:id/edicion", middleware.RequirePermiso("pagos"), pagosH.GuardarEdicion)
			cuentas.GET("/:id/edicion", middleware.RequirePermiso("pagos"), pagosH.ObtenerEdicion)
			cuentas.DELETE("/:id/edicion", middleware.RequirePermiso("pagos"), pagosH.EliminarEdicion)
			cuentas.PATCH("/:id/edicion/moneda", middleware.RequirePermiso("pagos"), pagosH.CambiarMoneda)
		}

		pagos := v1.Group("/pagoscpp", middleware.RequirePermiso("pagos"))
		{
			pagos.POST("", pagosH.Registrar)
			pagos.POST("/masivo", pagosH.RegistrarMasivo)
			pagos.GET("/total", pagosH.TotalAPagar)
		}

		listas := v1.Group("/listas-comparativas", middleware.RequirePermiso("listas"))
		{
			listas.POST("/excel", listasH.ImportarExcel)
			listas.POST("/batch", listasH.ImportarBatch)
			listas.GET("", listasH.Buscar)
		}

		orden := v1.Group("/orden-compra", middleware.RequirePermiso("ordenes"))
		{
			orden.POST("/items", ordenesH.AgregarItem)
			orden.PUT("/items", ordenesH.ActualizarCantidad)
			orden.DELETE("/items/:listaId/:farmacia", ordenesH.EliminarItem)
			orden.DELETE("", ordenesH.Vaciar)
			orden.GET("", ordenesH.Agrupar)
			orden.GET("/pdf", ordenesH.ExportarPDF)
		}

		v1.POST("/presigned-url", storageH.PresignedURL)

		usuarios := v1.Group("/usuarios", middleware.RequirePermiso("usuarios"))
		{
			usuarios.POST("", authH.CrearUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
