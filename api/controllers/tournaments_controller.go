package controllers

import (
	"errors"
	"net/http"

	"Pickme/api/bracket"
	"Pickme/api/itemsource"
	"Pickme/api/models"
	"Pickme/api/sessions"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func tournamentNotFound(c *gin.Context, err error) bool {
	if errors.Is(err, sessions.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "Tournament not found"})
		return true
	}
	return false
}

// StartTournament shuffles a catalog into a new bracket and returns the first
// pair.
func (server *Server) StartTournament(c *gin.Context) {
	catalog, err := resolveCatalogByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		if catalogNotFound(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error retrieving catalog"})
		return
	}

	ctx := c.Request.Context()
	items, err := itemsource.CatalogSource{DB: server.DB, CatalogID: catalog.ID}.Load(ctx)
	if err != nil {
		server.Logger.Error("load catalog items", zap.Uint("catalog", catalog.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error loading catalog items"})
		return
	}

	session, err := server.Sessions.Create(catalog.ID, items)
	if err != nil {
		if errors.Is(err, bracket.ErrEmptyBracket) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": http.StatusUnprocessableEntity, "error": "Catalog has no items"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error starting tournament"})
		return
	}
	server.Metrics.TournamentsStarted.Inc()

	view := session.View()
	if view.Finished {
		server.recordResult(session)
	}

	server.Logger.Debug("tournament started",
		zap.String("tournament", session.ID.String()),
		zap.Uint("catalog", catalog.ID),
		zap.Int("contestants", session.Contestants),
	)
	c.JSON(http.StatusCreated, gin.H{"status": http.StatusCreated, "response": tournamentToDTO(server.DB, view)})
}

func (server *Server) GetTournament(c *gin.Context) {
	session, err := resolveSession(server.Sessions, c.Param("id"))
	if err != nil {
		tournamentNotFound(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": tournamentToDTO(server.DB, session.View())})
}

// SelectWinner applies one pick. The body names the pair by its match number
// so that a repeated click cannot decide the following pair.
func (server *Server) SelectWinner(c *gin.Context) {
	session, err := resolveSession(server.Sessions, c.Param("id"))
	if err != nil {
		tournamentNotFound(c, err)
		return
	}

	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil || req.Match == nil {
		server.Metrics.RejectedSelections.WithLabelValues("malformed").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "error": "index and match are required"})
		return
	}

	view, err := session.Select(*req.Match, *req.Index)
	switch {
	case errors.Is(err, sessions.ErrStaleSelection):
		server.Metrics.RejectedSelections.WithLabelValues("stale").Inc()
		c.JSON(http.StatusConflict, gin.H{
			"status":   http.StatusConflict,
			"error":    "That pair has already been decided",
			"response": tournamentToDTO(server.DB, view),
		})
		return
	case errors.Is(err, bracket.ErrInvalidSelection):
		server.Metrics.RejectedSelections.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"status": http.StatusBadRequest, "error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error applying selection"})
		return
	}
	server.Metrics.Selections.Inc()

	if view.Finished {
		server.recordResult(session)
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": tournamentToDTO(server.DB, view)})
}

// AbandonTournament drops a session before it finishes.
func (server *Server) AbandonTournament(c *gin.Context) {
	session, err := resolveSession(server.Sessions, c.Param("id"))
	if err != nil {
		tournamentNotFound(c, err)
		return
	}
	if err := server.Sessions.Delete(session.ID); err != nil {
		tournamentNotFound(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": "Tournament abandoned"})
}

// recordResult stores the champion once per session.
func (server *Server) recordResult(session *sessions.Session) {
	champion, matches, ok := session.ClaimResult()
	if !ok {
		return
	}

	result := models.TournamentResult{
		CatalogID:     session.CatalogID,
		ChampionTitle: champion.Title,
		ChampionLink:  champion.MediaLink,
		Contestants:   session.Contestants,
		Matches:       matches,
	}
	if errs := result.Validate(); len(errs) > 0 {
		server.Logger.Error("invalid tournament result",
			zap.String("tournament", session.ID.String()),
			zap.Any("errors", errs),
		)
		return
	}
	if _, err := result.SaveResult(server.DB); err != nil {
		server.Logger.Error("save tournament result", zap.String("tournament", session.ID.String()), zap.Error(err))
		sentry.CaptureException(err)
		return
	}

	server.Metrics.TournamentsFinished.Inc()
	invalidateChampionsCache(session.CatalogID)
	server.Logger.Info("tournament finished",
		zap.String("tournament", session.ID.String()),
		zap.String("champion", champion.Title),
		zap.Int("matches", matches),
	)
}
