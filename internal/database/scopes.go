package database

import (
	"gorm.io/gorm"

	"github.com/giftwise-dev/giftwise-api/internal/utils"
)

// Paginate scopes a query to one page of results. Event listings are the
// only unbounded collection in the API, so this is their windowing scope.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
