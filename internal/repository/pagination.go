package repository

import "gorm.io/gorm"

// applyPagination 统一分页，page 从 1 开始；pageSize 不大于 0 时不分页，返回全部
func applyPagination(db *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return db
	}
	if page <= 0 {
		page = 1
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return db.Offset((page - 1) * pageSize).Limit(pageSize)
}
