package model

import (
	"time"
)

// GORM이 CreatedAt, UpdatedAt을 자동으로 관리
type BaseEntity struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"column:created_at;not null"` // GORM이 자동 관리
	UpdatedAt time.Time `gorm:"column:updated_at;not null"` // GORM이 자동 관리
}
