package controllers

import (
	"errors"
	"strconv"
	"strings"

	"Pickme/api/models"
	"Pickme/api/sessions"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errInvalidIdentifier = errors.New("invalid identifier")

// resolveCatalogByIdentifier accepts a public uuid or a numeric id.
func resolveCatalogByIdentifier(db *gorm.DB, identifier string) (*models.Catalog, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil, errInvalidIdentifier
	}
	var catalog models.Catalog
	if publicID, err := uuid.Parse(trimmed); err == nil {
		return catalog.FindCatalogByPublicID(db, publicID)
	}
	if numericID, err := strconv.ParseUint(trimmed, 10, 32); err == nil {
		return catalog.FindCatalogByID(db, uint(numericID))
	}
	return nil, gorm.ErrRecordNotFound
}

func resolveSession(store *sessions.Store, identifier string) (*sessions.Session, error) {
	id, err := uuid.Parse(strings.TrimSpace(identifier))
	if err != nil {
		return nil, sessions.ErrNotFound
	}
	return store.Get(id)
}
