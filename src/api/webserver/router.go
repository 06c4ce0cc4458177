package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/slonskitech/slownik/src/api/config"
	"github.com/slonskitech/slownik/src/api/dictionary"
	"gorm.io/gorm"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	store := dictionary.NewStore(db)
	sessions := NewSessions(cfg)
	pubH := NewPublic(store, rdb, cfg)
	subH := NewSubmissions(store)
	catH := NewCategories(store)
	posH := NewPartsOfSpeech(store)
	entH := NewEntries(store)

	v1 := r.Group("/v1")
	{
		v1.GET("/dictionary/index", pubH.Index)
		v1.GET("/dictionary/featured", pubH.Featured)
		v1.GET("/dictionary/recent", pubH.Recent)
		v1.GET("/dictionary/:slug", pubH.GetBySlug)
		v1.GET("/search", pubH.Search)
		v1.POST("/submissions", pubH.Submit)

		admin := v1.Group("/admin")
		{
			admin.POST("/login", sessions.Login)
			admin.POST("/logout", sessions.Logout)
			admin.GET("/session", sessions.Probe)
			// Stats stay open, matching the public dashboard widget.
			admin.GET("/stats", entH.Stats)

			secured := admin.Group("")
			secured.Use(sessions.Middleware())
			{
				secured.GET("/submissions", subH.List)
				secured.PATCH("/submissions/:id", subH.Review)

				secured.GET("/categories", catH.List)
				secured.POST("/categories", catH.Create)
				secured.PATCH("/categories/:id", catH.Update)
				secured.DELETE("/categories/:id", catH.Delete)

				secured.GET("/parts-of-speech", posH.List)
				secured.POST("/parts-of-speech", posH.Create)
				secured.PATCH("/parts-of-speech/:id", posH.Update)
				secured.DELETE("/parts-of-speech/:id", posH.Delete)

				secured.GET("/entries", entH.List)
				secured.GET("/entries/:id", entH.Get)
				secured.PATCH("/entries/:id", entH.Update)
			}
		}
	}
}
