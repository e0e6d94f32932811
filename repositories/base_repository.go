package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound repository katmanının ortak "kayıt yok" hatası.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IBaseRepository tüm entity repository'lerinin paylaştığı temel işlemler.
type IBaseRepository[T any] interface {
	Create(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, entity *T) error
	Count(ctx context.Context) (int64, error)
	SetAllowedSortColumns(columns []string)
	AllowedSortColumn(column string) bool
}

// BaseRepository generik temel repository.
type BaseRepository[T any] struct {
	db          *gorm.DB
	allowedSort map[string]bool
}

// NewBaseRepository verilen bağlantı ile temel repository oluşturur.
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	return &BaseRepository[T]{db: db, allowedSort: map[string]bool{}}
}

// SetAllowedSortColumns sıralamaya izin verilen sütunları tanımlar.
func (r *BaseRepository[T]) SetAllowedSortColumns(columns []string) {
	r.allowedSort = make(map[string]bool, len(columns))
	for _, c := range columns {
		r.allowedSort[c] = true
	}
}

// AllowedSortColumn sütun sıralamaya açık mı?
func (r *BaseRepository[T]) AllowedSortColumn(column string) bool {
	return r.allowedSort[column]
}

func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *BaseRepository[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	var entity T
	err := r.db.WithContext(ctx).Model(&entity).Count(&count).Error
	return count, err
}
