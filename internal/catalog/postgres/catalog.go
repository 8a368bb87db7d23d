package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/registroos/registro-os/internal/catalog"
	catalogDatamodel "github.com/registroos/registro-os/internal/core/datamodel/catalog"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) catalog.RepositoryAPI {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetByKind(kind string) ([]*catalogDatamodel.Item, error) {
	var items []*catalogDatamodel.Item
	err := r.db.Where("kind = ?", kind).Order("code ASC").Find(&items).Error
	return items, err
}

func (r *CatalogRepository) GetByID(id int64) (*catalogDatamodel.Item, error) {
	var item catalogDatamodel.Item
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository) GetByKindAndCode(kind, code string) (*catalogDatamodel.Item, error) {
	var item catalogDatamodel.Item
	err := r.db.Where("kind = ? AND code = ?", kind, code).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *CatalogRepository) Create(item *catalogDatamodel.Item) error {
	return r.db.Create(item).Error
}

func (r *CatalogRepository) Update(item *catalogDatamodel.Item) error {
	item.UpdatedAt = time.Now()
	return r.db.Save(item).Error
}
