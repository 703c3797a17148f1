// Package softdelete holds the query scope that hides logically removed
// rows. Every repository read goes through Active; callers never filter
// delete_flg themselves.
package softdelete

import "gorm.io/gorm"

func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("delete_flg = ?", false)
	}
}
