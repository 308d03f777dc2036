package controllers

import (
	"net/http"

	"Pickme/api/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initializeRoutes() {

	s.Router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.Router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))

	admin := middlewares.AdminKeyMiddleware(s.Config.AdminKey)

	v1 := s.Router.Group("/api/v1")
	{
		// Catalog routes
		v1.GET("/catalogs", s.GetCatalogs)
		v1.GET("/catalogs/:id", s.GetCatalog)
		v1.POST("/catalogs", admin, s.CreateCatalog)
		v1.PUT("/catalogs/:id/items", admin, s.ReplaceCatalogItems)
		v1.DELETE("/catalogs/:id", admin, s.DeleteCatalog)
		v1.GET("/catalogs/:id/champions", s.GetCatalogChampions)

		// Tournament routes
		v1.POST("/catalogs/:id/tournaments", s.StartTournament)
		v1.GET("/tournaments/:id", s.GetTournament)
		v1.POST("/tournaments/:id/selection", middlewares.SelectionRateLimitMiddleware(), s.SelectWinner)
		v1.DELETE("/tournaments/:id", s.AbandonTournament)
		v1.GET("/tournaments/:id/champion/description", s.DescribeChampion)
	}
}
