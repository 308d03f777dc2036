package controllers

import (
	"Pickme/api/models"

	"gorm.io/gorm"
)

type idPublicPair struct {
	ID       uint
	PublicID string
}

func loadCatalogPublicIDMap(db *gorm.DB, ids []uint) map[uint]string {
	if len(ids) == 0 {
		return map[uint]string{}
	}

	var rows []idPublicPair
	if err := db.Model(&models.Catalog{}).
		Select("id", "public_id").
		Where("id IN ?", ids).
		Scan(&rows).Error; err != nil {
		return map[uint]string{}
	}

	result := make(map[uint]string, len(rows))
	for _, row := range rows {
		result[row.ID] = row.PublicID
	}
	return result
}

func resolveCatalogPublicID(db *gorm.DB, catalogID uint) string {
	if db == nil || catalogID == 0 {
		return ""
	}
	return loadCatalogPublicIDMap(db, []uint{catalogID})[catalogID]
}
