package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"Pickme/api/bracket"
	"Pickme/api/itemsource"
	"Pickme/api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type catalogRequest struct {
	Title string         `json:"title"`
	Topic string         `json:"topic"`
	Items []bracket.Item `json:"items"`
}

// readCatalogRequest accepts either a JSON body or a plain link list, in
// which case title and topic come from the query string.
func readCatalogRequest(c *gin.Context) (catalogRequest, map[string]string) {
	errList := map[string]string{}
	req := catalogRequest{}

	if strings.HasPrefix(c.ContentType(), "text/plain") {
		items, err := itemsource.ParseItems(c.Request.Body)
		if err != nil {
			errList["Invalid_link_list"] = err.Error()
			return req, errList
		}
		req.Title = c.Query("title")
		req.Topic = c.Query("topic")
		req.Items = items
		return req, nil
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		errList["Invalid_body"] = "Unable to get request"
		return req, errList
	}
	if err := json.Unmarshal(body, &req); err != nil {
		errList["Unmarshal_error"] = "Cannot unmarshal body"
		return req, errList
	}
	return req, nil
}

// resolveItemLinks looks up links for title-only items and answers the
// request itself when that fails.
func (server *Server) resolveItemLinks(c *gin.Context, items []bracket.Item) bool {
	err := itemsource.ResolveLinks(c.Request.Context(), items, server.Resolver)
	switch {
	case err == nil:
		return true
	case errors.Is(err, itemsource.ErrMissingLink):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": http.StatusUnprocessableEntity, "error": map[string]string{"Missing_link": err.Error()}})
	case errors.Is(err, itemsource.ErrNoVideoFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": http.StatusUnprocessableEntity, "error": map[string]string{"No_video_found": err.Error()}})
	default:
		server.Logger.Error("resolve item links", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"status": http.StatusBadGateway, "error": "Error looking up video links"})
	}
	return false
}

func catalogNotFound(c *gin.Context, err error) bool {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, errInvalidIdentifier) {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "error": "Catalog not found"})
		return true
	}
	return false
}

// GetCatalogs lists the stored catalogs with their item counts.
func (server *Server) GetCatalogs(c *gin.Context) {
	catalog := models.Catalog{}
	catalogs, err := catalog.FindAllCatalogs(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error retrieving catalogs"})
		return
	}

	ids := make([]uint, 0, len(catalogs))
	for _, cat := range catalogs {
		ids = append(ids, cat.ID)
	}
	counts, err := models.CountItems(server.DB, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error counting catalog items"})
		return
	}

	out := make([]CatalogSummaryDTO, 0, len(catalogs))
	for i := range catalogs {
		out = append(out, catalogToSummaryDTO(&catalogs[i], counts[catalogs[i].ID]))
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": out})
}

func (server *Server) GetCatalog(c *gin.Context) {
	catalog, err := resolveCatalogByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		if catalogNotFound(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error retrieving catalog"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": catalogToDTO(catalog)})
}

// CreateCatalog stores a new item list. Admin only.
func (server *Server) CreateCatalog(c *gin.Context) {
	req, errList := readCatalogRequest(c)
	if len(errList) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": http.StatusUnprocessableEntity, "error": errList})
		return
	}
	if !server.resolveItemLinks(c, req.Items) {
		return
	}

	catalog := models.Catalog{Title: req.Title, Topic: req.Topic}
	for _, item := range req.Items {
		catalog.Items = append(catalog.Items, models.CatalogItem{Title: item.Title, MediaLink: item.MediaLink})
	}
	catalog.Prepare()
	if errorMessages := catalog.Validate(); len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": http.StatusUnprocessableEntity, "error": errorMessages})
		return
	}

	created, err := catalog.SaveCatalog(server.DB)
	if err != nil {
		server.Logger.Error("save catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error saving catalog"})
		return
	}

	server.Logger.Info("catalog created",
		zap.String("catalog_id", created.PublicID.String()),
		zap.Int("items", len(created.Items)),
	)
	c.JSON(http.StatusCreated, gin.H{"status": http.StatusCreated, "response": catalogToDTO(created)})
}

// ReplaceCatalogItems swaps the contents of a catalog. Tournaments already
// running keep the items they started with.
func (server *Server) ReplaceCatalogItems(c *gin.Context) {
	catalog, err := resolveCatalogByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		if catalogNotFound(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error retrieving catalog"})
		return
	}

	req, errList := readCatalogRequest(c)
	if len(errList) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": http.StatusUnprocessableEntity, "error": errList})
		return
	}
	if !server.resolveItemLinks(c, req.Items) {
		return
	}

	candidate := models.Catalog{Title: catalog.Title}
	for _, item := range req.Items {
		candidate.Items = append(candidate.Items, models.CatalogItem{Title: item.Title, MediaLink: item.MediaLink})
	}
	candidate.Prepare()
	if errorMessages := candidate.Validate(); len(errorMessages) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": http.StatusUnprocessableEntity, "error": errorMessages})
		return
	}

	updated, err := catalog.ReplaceItems(server.DB, candidate.BracketItems())
	if err != nil {
		server.Logger.Error("replace catalog items", zap.Uint("catalog", catalog.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error updating catalog"})
		return
	}
	invalidateChampionsCache(updated.ID)

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": catalogToDTO(updated)})
}

// DeleteCatalog removes a catalog together with its stored results.
func (server *Server) DeleteCatalog(c *gin.Context) {
	catalog, err := resolveCatalogByIdentifier(server.DB, c.Param("id"))
	if err != nil {
		if catalogNotFound(c, err) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error retrieving catalog"})
		return
	}

	if _, err := catalog.DeleteCatalog(server.DB); err != nil {
		server.Logger.Error("delete catalog", zap.Uint("catalog", catalog.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"status": http.StatusInternalServerError, "error": "Error deleting catalog"})
		return
	}
	invalidateChampionsCache(catalog.ID)

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": "Catalog deleted"})
}
