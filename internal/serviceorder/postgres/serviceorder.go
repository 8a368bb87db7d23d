package postgres

import (
	"time"

	"gorm.io/gorm"

	orderDatamodel "github.com/registroos/registro-os/internal/core/datamodel/serviceorder"
	"github.com/registroos/registro-os/internal/serviceorder"
)

type ServiceOrderRepository struct {
	db *gorm.DB
}

func NewServiceOrderRepository(db *gorm.DB) serviceorder.RepositoryAPI {
	return &ServiceOrderRepository{db: db}
}

func (r *ServiceOrderRepository) Create(o *orderDatamodel.ServiceOrder) error {
	return r.db.Create(o).Error
}

func (r *ServiceOrderRepository) GetByID(id int64) (*orderDatamodel.ServiceOrder, error) {
	var o orderDatamodel.ServiceOrder
	err := r.db.Where("id = ?", id).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *ServiceOrderRepository) GetByNumber(number string) (*orderDatamodel.ServiceOrder, error) {
	var o orderDatamodel.ServiceOrder
	err := r.db.Where("number = ?", number).First(&o).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *ServiceOrderRepository) GetAll(limit, offset int) ([]*orderDatamodel.ServiceOrder, error) {
	var orders []*orderDatamodel.ServiceOrder
	err := r.db.Order("number ASC").
		Limit(limit).
		Offset(offset).
		Find(&orders).Error
	return orders, err
}

func (r *ServiceOrderRepository) Update(o *orderDatamodel.ServiceOrder) error {
	o.UpdatedAt = time.Now()
	return r.db.Save(o).Error
}
