package postgres

import (
	"time"

	"gorm.io/gorm"

	"github.com/registroos/registro-os/internal"
	"github.com/registroos/registro-os/internal/apontamento"
	apontamentoDatamodel "github.com/registroos/registro-os/internal/core/datamodel/apontamento"
	orderDatamodel "github.com/registroos/registro-os/internal/core/datamodel/serviceorder"
	"github.com/registroos/registro-os/internal/serviceorder"
)

type ApontamentoRepository struct {
	db *gorm.DB
}

func NewApontamentoRepository(db *gorm.DB) apontamento.RepositoryAPI {
	return &ApontamentoRepository{db: db}
}

// CreateForOrder inserts the entry inside a transaction that re-reads the
// order status first. The service already checked the status, but a portal
// refresh can move the order to a terminal status between that check and this
// write; the recheck closes the race.
func (r *ApontamentoRepository) CreateForOrder(a *apontamentoDatamodel.Apontamento) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var order orderDatamodel.ServiceOrder
		if err := tx.Where("id = ?", a.OrderID).First(&order).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrOrderNotFound
			}
			return err
		}

		if serviceorder.Status(order.Status).BlocksApontamento() {
			return internal.ErrOrderBlocked
		}

		return tx.Create(a).Error
	})
}

func (r *ApontamentoRepository) GetByID(id int64) (*apontamentoDatamodel.Apontamento, error) {
	var a apontamentoDatamodel.Apontamento
	err := r.db.Where("id = ?", id).First(&a).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *ApontamentoRepository) GetByUserID(userID int64, limit, offset int) ([]*apontamentoDatamodel.Apontamento, error) {
	var entries []*apontamentoDatamodel.Apontamento
	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *ApontamentoRepository) GetBySector(sector string, limit, offset int) ([]*apontamentoDatamodel.Apontamento, error) {
	var entries []*apontamentoDatamodel.Apontamento
	err := r.db.Where("sector = ?", sector).
		Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

func (r *ApontamentoRepository) Update(a *apontamentoDatamodel.Apontamento) error {
	a.UpdatedAt = time.Now()
	return r.db.Save(a).Error
}
