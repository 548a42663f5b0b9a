package router

import (
	"time"

	"github.com/fydhel24/proyecto-ventas-sub000/internal/config"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/handler"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/infra"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/middleware"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/repository"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/service"
	"github.com/fydhel24/proyecto-ventas-sub000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, smtpCB *infra.CircuitBreaker) *gin.Engine {
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

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	sucursalRepo := repository.NewSucursalRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	inventarioRepo := repository.NewInventarioRepository(db)
	movimientoRepo := repository.NewMovimientoRepository(db)
	cajaRepo := repository.NewCajaRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	reservaRepo := repository.NewReservaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	proveedorRepo := repository.NewProveedorRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	sucursalSvc := service.NewSucursalService(sucursalRepo)
	productoSvc := service.NewProductoService(productoRepo)
	inventarioSvc := service.NewInventarioService(inventarioRepo, productoRepo)
	movimientoSvc := service.NewMovimientoService(movimientoRepo, inventarioRepo, inventarioSvc)
	cajaSvc := service.NewCajaService(cajaRepo, sucursalRepo, dispatcher)
	ventaSvc := service.NewVentaService(ventaRepo, inventarioRepo, productoRepo, cajaSvc, dispatcher)
	reservaSvc := service.NewReservaService(reservaRepo, inventarioRepo, ventaSvc)
	compraSvc := service.NewCompraService(compraRepo, movimientoRepo, productoRepo, proveedorRepo, inventarioSvc, cfg.MargenVentaPct)
	proveedorSvc := service.NewProveedorService(proveedorRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usuariosH := handler.NewUsuariosHandler(authSvc)
	sucursalesH := handler.NewSucursalesHandler(sucursalSvc)
	productosH := handler.NewProductosHandler(productoSvc)
	inventarioH := handler.NewInventarioHandler(inventarioSvc, movimientoSvc)
	cajaH := handler.NewCajaHandler(cajaSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	reservasH := handler.NewReservasHandler(reservaSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	proveedoresH := handler.NewProveedoresHandler(proveedorSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, smtpCB))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	todos := middleware.RequireRole("cajero", "supervisor", "administrador")
	v1 := r.Group("/v1", jwtMW)
	{
		// Catalogo — all authenticated roles can read, administrador writes
		v1.GET("/productos", todos, productosH.Listar)
		v1.GET("/productos/:id", todos, productosH.Obtener)
		prods := v1.Group("/productos", middleware.RequireRole("administrador"))
		{
			prods.POST("", productosH.Crear)
			prods.PUT("/:id", productosH.Actualizar)
			prods.DELETE("/:id", productosH.Desactivar)
			prods.PATCH("/:id/reactivar", productosH.Reactivar)
		}

		v1.GET("/sucursales", todos, sucursalesH.Listar)
		v1.GET("/sucursales/:id", todos, sucursalesH.Obtener)
		sucs := v1.Group("/sucursales", middleware.RequireRole("administrador"))
		{
			sucs.POST("", sucursalesH.Crear)
			sucs.PUT("/:id", sucursalesH.Actualizar)
			sucs.DELETE("/:id", sucursalesH.Desactivar)
		}

		// Inventario y movimientos
		v1.GET("/inventario", todos, inventarioH.Listar)
		v1.GET("/inventario/:id/kardex", todos, inventarioH.Kardex)
		mov := v1.Group("/movimientos", middleware.RequireRole("supervisor", "administrador"))
		{
			mov.POST("/transferencias", inventarioH.CrearTransferencia)
			mov.POST("/solicitudes", inventarioH.CrearSolicitud)
			mov.POST("/solicitudes/:id/confirmar", inventarioH.ConfirmarSolicitud)
			mov.GET("", inventarioH.ListarMovimientos)
			mov.GET("/:id", inventarioH.ObtenerMovimiento)
		}

		// Cajas
		cajas := v1.Group("/cajas")
		{
			cajas.POST("/abrir", todos, cajaH.Abrir)
			cajas.POST("/cerrar", todos, cajaH.Cerrar)
			cajas.POST("/abrir-todas", middleware.RequireRole("administrador"), cajaH.AbrirTodas)
			cajas.POST("/cerrar-todas", middleware.RequireRole("administrador"), cajaH.CerrarTodas)
			cajas.GET("", middleware.RequireRole("supervisor", "administrador"), cajaH.Listar)
			cajas.GET("/:id", todos, cajaH.Obtener)
		}

		// Ventas
		v1.POST("/ventas", todos, ventasH.Registrar)
		v1.GET("/ventas", todos, ventasH.Listar)
		v1.GET("/ventas/:id", todos, ventasH.Obtener)
		v1.POST("/ventas/:id/anular", middleware.RequireRole("supervisor", "administrador"), ventasH.Anular)
		v1.PATCH("/ventas/:id/estado-pedido", todos, ventasH.ActualizarEstadoPedido)

		// Reservas
		reservas := v1.Group("/reservas", todos)
		{
			reservas.POST("", reservasH.Crear)
			reservas.GET("", reservasH.Listar)
			reservas.GET("/:id", reservasH.Obtener)
			reservas.POST("/:id/completar", reservasH.Completar)
			reservas.POST("/:id/cancelar", reservasH.Cancelar)
		}

		// Compras y proveedores — supervisor/administrador
		compras := v1.Group("/compras", middleware.RequireRole("supervisor", "administrador"))
		{
			compras.POST("", comprasH.Registrar)
			compras.GET("", comprasH.Listar)
			compras.GET("/:id", comprasH.Obtener)
		}
		prov := v1.Group("/proveedores", middleware.RequireRole("supervisor", "administrador"))
		{
			prov.POST("", proveedoresH.Crear)
			prov.GET("", proveedoresH.Listar)
			prov.GET("/:id", proveedoresH.Obtener)
			prov.PUT("/:id", proveedoresH.Actualizar)
			prov.DELETE("/:id", proveedoresH.Desactivar)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("administrador"))
		{
			usuarios.POST("", usuariosH.Crear)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Actualizar)
			usuarios.DELETE("/:id", usuariosH.Desactivar)
			usuarios.PATCH("/:id/reactivar", usuariosH.Reactivar)
		}
	}

	return r
}
