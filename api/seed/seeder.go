// Package seed fills an empty database with a starter catalog read from the
// configured link list.
package seed

import (
	"context"
	"fmt"

	"Pickme/api/config"
	"Pickme/api/itemsource"
	"Pickme/api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SourceFromConfig picks the link list location: S3 when a bucket and key are
// set, otherwise a local file. It returns nil when neither is configured.
func SourceFromConfig(ctx context.Context, cfg config.Config) (itemsource.Source, error) {
	if cfg.LinkListBucket != "" && cfg.LinkListKey != "" {
		client, err := itemsource.NewS3Client(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		return itemsource.S3Source{Client: client, Bucket: cfg.LinkListBucket, Key: cfg.LinkListKey}, nil
	}
	if cfg.LinkListPath != "" {
		return itemsource.FileSource{Path: cfg.LinkListPath}, nil
	}
	return nil, nil
}

// Load creates one catalog from src unless catalogs already exist. It returns
// the created catalog, or nil when nothing was seeded.
func Load(ctx context.Context, db *gorm.DB, src itemsource.Source, title, topic string, logger *zap.Logger) (*models.Catalog, error) {
	if src == nil {
		logger.Info("no link list configured, skipping catalog seed")
		return nil, nil
	}

	var count int64
	if err := db.Model(&models.Catalog{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("seed: count catalogs: %w", err)
	}
	if count > 0 {
		logger.Debug("catalogs present, skipping seed", zap.Int64("catalogs", count))
		return nil, nil
	}

	items, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed: load link list: %w", err)
	}

	catalog := models.Catalog{Title: title, Topic: topic}
	for _, item := range items {
		catalog.Items = append(catalog.Items, models.CatalogItem{Title: item.Title, MediaLink: item.MediaLink})
	}
	catalog.Prepare()
	if errs := catalog.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("seed: invalid catalog: %v", errs)
	}

	created, err := catalog.SaveCatalog(db)
	if err != nil {
		return nil, fmt.Errorf("seed: save catalog: %w", err)
	}

	logger.Info("seeded catalog",
		zap.String("catalog_id", created.PublicID.String()),
		zap.String("title", created.Title),
		zap.Int("items", len(created.Items)),
	)
	return created, nil
}
