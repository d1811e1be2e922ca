package router

import (
	"github.com/guilhermegamabs/fiado-v2/internal/config"
	"github.com/guilhermegamabs/fiado-v2/internal/handler"
	"github.com/guilhermegamabs/fiado-v2/internal/middleware"
	"github.com/guilhermegamabs/fiado-v2/internal/repository"
	"github.com/guilhermegamabs/fiado-v2/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	fiadoRepo := repository.NewFiadoRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	despesaRepo := repository.NewDespesaRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	fiadoSvc := service.NewFiadoService(fiadoRepo, clienteRepo)
	clienteSvc := service.NewClienteService(clienteRepo, fiadoSvc)
	financeiroSvc := service.NewFinanceiroService(caixaRepo, despesaRepo, fiadoRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc, fiadoSvc)
	financeiroH := handler.NewFinanceiroHandler(financeiroSvc)
	dashboardH := handler.NewDashboardHandler(fiadoSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.GET("/dashboard", dashboardH.Totais)

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", clientesH.Listar)
			clientes.POST("", clientesH.Criar)
			clientes.GET("/:id", clientesH.Detalhe)
			clientes.DELETE("/:id", clientesH.Excluir)
			clientes.POST("/:id/fiados", clientesH.RegistrarFiado)
			clientes.POST("/:id/pagamentos", clientesH.RegistrarPagamento)
		}

		financeiro := v1.Group("/financeiro")
		{
			financeiro.GET("", financeiroH.Relatorio)
			financeiro.GET("/relatorio.pdf", financeiroH.RelatorioPDF)
			financeiro.POST("/caixa", financeiroH.FecharCaixa)
			financeiro.POST("/despesas", financeiroH.NovaDespesa)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
