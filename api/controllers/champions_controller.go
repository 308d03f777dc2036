package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"Pickme/api/cache"
	"Pickme/api/describe"
	"Pickme/api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	championsCacheTTL     = 60 * time.Second
	defaultChampionsLimit = 10
	maxChampionsLimit     = 50
)

// GetCatalogChampions ranks the items of a catalog by tournaments won.
func (server *Server) GetCatalogChampions(c *gin.Context) {
	catalog, err := resolveCatalogByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		if catalogNotFound(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error retrieving catalog"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultChampionsLimit)))
	if err != nil || limit < 1 {
		limit = defaultChampionsLimit
	}
	if limit > maxChampionsLimit {
		limit = maxChampionsLimit
	}

	cacheKey := championsCacheKey(catalog.ID, limit)
	ctx := context.Background()

	// 1. Try Redis first
	if cached, err := cache.Get(ctx, cacheKey); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	// 2. Fallback to DB
	standings, err := models.ChampionStandings(server.DB, catalog.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error retrieving champions"})
		return
	}

	payload, err := json.Marshal(gin.H{
		"status": http.StatusOK,
		"response": ChampionsEnvelope{
			CatalogID: catalog.PublicID.String(),
			Champions: standings,
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error encoding champions"})
		return
	}

	// 3. Store in cache
	_ = cache.Set(ctx, cacheKey, payload, championsCacheTTL)

	c.Data(http.StatusOK, "application/json", payload)
}

// DescribeChampion asks the description service about the winner of a
// finished tournament and for a few related recommendations.
func (server *Server) DescribeChampion(c *gin.Context) {
	if server.Describer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": http.StatusServiceUnavailable, "error": describe.ErrUnavailable.Error()})
		return
	}

	session, err := resolveSession(server.Sessions, c.Param("id"))
	if err != nil {
		tournamentNotFound(c, err)
		return
	}
	champion, ok := session.Champion()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"status": http.StatusConflict, "error": "Tournament is not finished"})
		return
	}

	topic := server.Config.SeedCatalogTopic
	var catalog models.Catalog
	if found, err := catalog.FindCatalogByID(server.DB, session.CatalogID); err == nil && found.Topic != "" {
		topic = found.Topic
	}
	subject := describe.SubjectFromTitle(champion.Title)

	ctx := c.Request.Context()
	description, err := server.Describer.Describe(ctx, topic, subject)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, describe.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		}
		server.Logger.Warn("describe champion", zap.String("subject", subject), zap.Error(err))
		c.JSON(status, gin.H{"status": status, "error": "Description unavailable"})
		return
	}

	recommendations, err := server.Describer.Recommend(ctx, description)
	if err != nil {
		server.Logger.Warn("recommend from description", zap.String("subject", subject), zap.Error(err))
		recommendations = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": DescriptionDTO{
		Subject:         subject,
		Topic:           topic,
		Description:     description,
		Recommendations: recommendations,
	}})
}
