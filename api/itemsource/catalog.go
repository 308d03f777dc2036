package itemsource

import (
	"context"

	"Pickme/api/bracket"
	"Pickme/api/models"

	"gorm.io/gorm"
)

// CatalogSource loads a stored catalog in position order.
type CatalogSource struct {
	DB        *gorm.DB
	CatalogID uint
}

func (s CatalogSource) Load(ctx context.Context) ([]bracket.Item, error) {
	var catalog models.Catalog
	found, err := catalog.FindCatalogByID(s.DB.WithContext(ctx), s.CatalogID)
	if err != nil {
		return nil, err
	}
	return found.BracketItems(), nil
}
