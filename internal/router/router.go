// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/autorunai/moto-backend/internal/chatwoot"
	"github.com/autorunai/moto-backend/internal/config"
	"github.com/autorunai/moto-backend/internal/handlers"
	"github.com/autorunai/moto-backend/internal/middleware"
	"github.com/autorunai/moto-backend/internal/nocodb"
	"github.com/autorunai/moto-backend/internal/services"
)

func Initialize(cfg *config.Config) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.AllowedOrigins))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Wire the NocoDB-backed stores, with the advisor cache in front
	nocoClient := nocodb.NewClient(cfg.NocoDB)
	advisorStore := nocodb.NewAdvisorStore(nocoClient, cfg.NocoDB.AdvisorsTable)
	motoStore := nocodb.NewMotoStore(nocoClient, cfg.NocoDB.PricesTable)
	cachedAdvisors := services.NewCachedAdvisorRepository(
		advisorStore, time.Duration(cfg.NocoDB.CacheTTL)*time.Second)

	advisorService := services.NewAdvisorService(cachedAdvisors)
	motoService := services.NewMotoService(motoStore)
	chatService := services.NewChatwootService(
		chatwoot.NewClient(cfg.Chatwoot), motoService, cfg.Chatwoot.AgentMap)

	advisorHandler := handlers.NewAdvisorHandler(advisorService, cachedAdvisors)
	motoHandler := handlers.NewMotoHandler(motoService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"version":   "1.0.0",
		})
	})

	v1 := r.Group("/v1")
	{
		asesores := v1.Group("/asesores")
		{
			asesores.GET("", advisorHandler.ListActive)
			asesores.GET("/resolve/:identifier", advisorHandler.Resolve)
		}

		motos := v1.Group("/motos")
		{
			motos.GET("", motoHandler.List)
			motos.GET("/buscar", motoHandler.Search)
			motos.GET("/:id", motoHandler.GetByID)
			motos.GET("/:id/precios", motoHandler.Prices)
		}

		v1.GET("/stats/catalogo", motoHandler.Stats)

		chat := v1.Group("/chat")
		chat.Use(middleware.ChatRateLimit())
		{
			chat.POST("/interes", chatHandler.SendInterest)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminRateLimit())
		admin.Use(middleware.AdminRequired(cfg.Admin.APIKey))
		{
			adminAsesores := admin.Group("/asesores")
			{
				adminAsesores.GET("", advisorHandler.List)
				adminAsesores.GET("/:id", advisorHandler.GetByID)
				adminAsesores.POST("", advisorHandler.Create)
				adminAsesores.PUT("/:id", advisorHandler.Update)
				adminAsesores.PUT("/:id/estado", advisorHandler.SetStatus)
				adminAsesores.DELETE("/:id", advisorHandler.Delete)
			}

			adminMotos := admin.Group("/motos")
			{
				adminMotos.POST("", motoHandler.Create)
				adminMotos.PUT("/:id", motoHandler.Update)
				adminMotos.PUT("/:id/estado", motoHandler.SetStatus)
				adminMotos.DELETE("/:id", motoHandler.Delete)
			}

			admin.POST("/cache/invalidate", advisorHandler.InvalidateCache)
		}
	}

	return r
}
