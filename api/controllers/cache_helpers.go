package controllers

import (
	"context"
	"fmt"

	"Pickme/api/cache"
)

func championsCacheKey(catalogID uint, limit int) string {
	return fmt.Sprintf("catalog_champions:%d:%d", catalogID, limit)
}

func invalidateChampionsCache(catalogID uint) {
	if catalogID == 0 {
		return
	}
	_ = cache.DeleteByPrefix(context.Background(), fmt.Sprintf("catalog_champions:%d:", catalogID))
}
