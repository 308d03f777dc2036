package models

import (
	"errors"
	"html"
	"strings"
	"time"

	"Pickme/api/bracket"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Catalog is a stored item list a tournament can be started from.
type Catalog struct {
	ID        uint          `gorm:"primary_key;autoIncrement" json:"id"`
	PublicID  uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"public_id"`
	Title     string        `gorm:"size:255;not null" json:"title"`
	Topic     string        `gorm:"size:255" json:"topic"`
	Items     []CatalogItem `gorm:"foreignKey:CatalogID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type CatalogItem struct {
	ID        uint   `gorm:"primary_key;autoIncrement" json:"id"`
	CatalogID uint   `gorm:"not null;index" json:"catalog_id"`
	Position  int    `gorm:"not null" json:"position"`
	Title     string `gorm:"size:255;not null" json:"title"`
	MediaLink string `gorm:"size:1024;not null" json:"media_link"`
}

func (c *Catalog) BeforeCreate(tx *gorm.DB) error {
	if c.PublicID == uuid.Nil {
		c.PublicID = uuid.New()
	}
	return nil
}

func (ci CatalogItem) ToBracketItem() bracket.Item {
	return bracket.Item{Title: ci.Title, MediaLink: ci.MediaLink}
}

// BracketItems returns the catalog contents in position order.
func (c *Catalog) BracketItems() []bracket.Item {
	out := make([]bracket.Item, len(c.Items))
	for i, item := range c.Items {
		out[i] = item.ToBracketItem()
	}
	return out
}

func (c *Catalog) Prepare() {
	c.Title = html.EscapeString(strings.TrimSpace(c.Title))
	c.Topic = html.EscapeString(strings.TrimSpace(c.Topic))
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	for i := range c.Items {
		c.Items[i].Title = strings.TrimSpace(c.Items[i].Title)
		c.Items[i].MediaLink = strings.TrimSpace(c.Items[i].MediaLink)
		c.Items[i].Position = i
	}
}

func (c *Catalog) Validate() map[string]string {
	var err error
	errorsMap := make(map[string]string)

	if c.Title == "" {
		err = errors.New("required title")
		errorsMap["Required_title"] = err.Error()
	}
	if len(c.Items) == 0 {
		err = errors.New("required items")
		errorsMap["Required_items"] = err.Error()
	}
	for _, item := range c.Items {
		if item.Title == "" || item.MediaLink == "" {
			err = errors.New("every item needs a title and a media link")
			errorsMap["Invalid_item"] = err.Error()
			break
		}
	}

	return errorsMap
}

//
// ===============================
// DATABASE OPERATIONS
// ===============================
//

// SaveCatalog creates the catalog together with its items.
func (c *Catalog) SaveCatalog(db *gorm.DB) (*Catalog, error) {
	if err := db.Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) FindCatalogByID(db *gorm.DB, id uint) (*Catalog, error) {
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Where("id = ?", id).First(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) FindCatalogByPublicID(db *gorm.DB, publicID uuid.UUID) (*Catalog, error) {
	err := db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Where("public_id = ?", publicID).First(c).Error
	if err != nil {
		return nil, err
	}
	return c, nil
}

// FindAllCatalogs lists catalogs without their items, newest first.
func (c *Catalog) FindAllCatalogs(db *gorm.DB) ([]Catalog, error) {
	catalogs := []Catalog{}
	err := db.Order("created_at DESC").Order("id DESC").Limit(100).Find(&catalogs).Error
	if err != nil {
		return []Catalog{}, err
	}
	return catalogs, nil
}

// CountItems returns the number of items per catalog id.
func CountItems(db *gorm.DB, catalogIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(catalogIDs))
	if len(catalogIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CatalogID uint
		Count     int64
	}
	err := db.Model(&CatalogItem{}).
		Select("catalog_id, COUNT(*) AS count").
		Where("catalog_id IN ?", catalogIDs).
		Group("catalog_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CatalogID] = row.Count
	}
	return counts, nil
}

// ReplaceItems swaps the catalog contents in one transaction.
func (c *Catalog) ReplaceItems(db *gorm.DB, items []bracket.Item) (*Catalog, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalog_id = ?", c.ID).Delete(&CatalogItem{}).Error; err != nil {
			return err
		}

		rows := make([]CatalogItem, len(items))
		for i, item := range items {
			rows[i] = CatalogItem{
				CatalogID: c.ID,
				Position:  i,
				Title:     strings.TrimSpace(item.Title),
				MediaLink: strings.TrimSpace(item.MediaLink),
			}
		}
		if len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		c.Items = rows
		c.UpdatedAt = time.Now()
		return tx.Model(&Catalog{}).Where("id = ?", c.ID).Update("updated_at", c.UpdatedAt).Error
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) DeleteCatalog(db *gorm.DB) (int64, error) {
	var affected int64
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("catalog_id = ?", c.ID).Delete(&CatalogItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("catalog_id = ?", c.ID).Delete(&TournamentResult{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Catalog{}, c.ID)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	return affected, err
}
