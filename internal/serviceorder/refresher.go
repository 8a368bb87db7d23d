package serviceorder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/registroos/registro-os/internal"
)

// PortalClient fetches order snapshots from the external client portal. The
// portal is a separate system; this package only consumes whatever it last
// reported and never blocks apontamento flow on it.
type PortalClient interface {
	FetchOrder(ctx context.Context, number string) (*OrderSnapshot, error)
}

// Refresher pulls a fresh snapshot for one order and applies it through the
// order service.
type Refresher struct {
	portal PortalClient
	orders *Service
	logger *slog.Logger
}

func NewRefresher(portal PortalClient, orders *Service, logger *slog.Logger) *Refresher {
	return &Refresher{
		portal: portal,
		orders: orders,
		logger: logger,
	}
}

func (r *Refresher) RefreshOrder(ctx context.Context, id int64) (*ServiceOrder, error) {
	order, err := r.orders.GetByID(id)
	if err != nil {
		return nil, err
	}

	snap, err := r.portal.FetchOrder(ctx, order.Number)
	if errors.Is(err, internal.ErrOrderNotFound) {
		// the portal not knowing an order is not a failure; keep our record
		r.logger.Warn("portal has no record for order", "order_id", id, "number", order.Number)
		return order, nil
	}
	if err != nil {
		r.logger.Error("portal fetch failed", "error", err, "order_id", id, "number", order.Number)
		return nil, internal.NewInternalError("falha ao consultar o portal", err)
	}
	if snap == nil {
		r.logger.Warn("portal has no record for order", "order_id", id, "number", order.Number)
		return order, nil
	}

	return r.orders.ApplySnapshot(ctx, *snap)
}
