package serviceorder_test

import (
	"context"
	"log/slog"
	"os"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/registroos/registro-os/internal"
	orderDatamodel "github.com/registroos/registro-os/internal/core/datamodel/serviceorder"
	"github.com/registroos/registro-os/internal/core/events"
	"github.com/registroos/registro-os/internal/serviceorder"
)

type mockOrderRepository struct {
	byID     map[int64]*orderDatamodel.ServiceOrder
	byNumber map[string]*orderDatamodel.ServiceOrder
	nextID   int64
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{
		byID:     make(map[int64]*orderDatamodel.ServiceOrder),
		byNumber: make(map[string]*orderDatamodel.ServiceOrder),
		nextID:   1,
	}
}

func (m *mockOrderRepository) Create(o *orderDatamodel.ServiceOrder) error {
	o.ID = m.nextID
	m.nextID++
	copied := *o
	m.byID[o.ID] = &copied
	m.byNumber[o.Number] = &copied
	return nil
}

func (m *mockOrderRepository) GetByID(id int64) (*orderDatamodel.ServiceOrder, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, internal.ErrOrderNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *mockOrderRepository) GetByNumber(number string) (*orderDatamodel.ServiceOrder, error) {
	o, ok := m.byNumber[number]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}

func (m *mockOrderRepository) GetAll(limit, offset int) ([]*orderDatamodel.ServiceOrder, error) {
	var result []*orderDatamodel.ServiceOrder
	for _, o := range m.byID {
		copied := *o
		result = append(result, &copied)
	}
	return result, nil
}

func (m *mockOrderRepository) Update(o *orderDatamodel.ServiceOrder) error {
	if _, ok := m.byID[o.ID]; !ok {
		return internal.ErrOrderNotFound
	}
	copied := *o
	m.byID[o.ID] = &copied
	m.byNumber[o.Number] = &copied
	return nil
}

// portal stub for refresher tests
type stubPortal struct {
	snapshots map[string]*serviceorder.OrderSnapshot
	err       error
}

func (s *stubPortal) FetchOrder(ctx context.Context, number string) (*serviceorder.OrderSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.snapshots[number], nil
}

var _ = Describe("ServiceOrder Service", func() {
	var (
		service *serviceorder.Service
		repo    *mockOrderRepository
		bus     *events.EventBus
		ctx     context.Context
	)

	BeforeEach(func() {
		testLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		repo = newMockOrderRepository()
		bus = events.NewEventBus(testLogger)
		service = serviceorder.NewService(repo, bus, testLogger)
		ctx = context.Background()
	})

	Describe("Create", func() {
		It("normalizes the order number with zero padding", func() {
			order, err := service.Create(serviceorder.CreateOrderDTO{Number: "1234", Client: "Cliente A"})

			Expect(err).NotTo(HaveOccurred())
			Expect(order.Number).To(Equal("01234"))
			Expect(order.Source).To(Equal(serviceorder.SourceManual))
		})

		It("rejects a duplicate even when padded differently", func() {
			_, err := service.Create(serviceorder.CreateOrderDTO{Number: "01234", Client: "Cliente A"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(serviceorder.CreateOrderDTO{Number: "1234", Client: "Cliente B"})

			Expect(err).To(MatchError(internal.ErrDuplicateOrder))
		})

		It("rejects negative budgeted hours", func() {
			_, err := service.Create(serviceorder.CreateOrderDTO{
				Number:        "02222",
				Client:        "Cliente A",
				BudgetedHours: map[string]float64{"mecanica": -4},
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ApplySnapshot", func() {
		It("imports an unknown order with source portal", func() {
			order, err := service.ApplySnapshot(ctx, serviceorder.OrderSnapshot{
				Number: "1234",
				Status: "EM ANDAMENTO",
				Client: "Cliente Portal",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(order.Source).To(Equal(serviceorder.SourcePortal))
			Expect(order.Number).To(Equal("01234"))
			Expect(order.Status).To(Equal(serviceorder.StatusEmAndamento))
		})

		It("moves an existing order to the reported status", func() {
			created, err := service.Create(serviceorder.CreateOrderDTO{Number: "01234", Client: "Cliente A"})
			Expect(err).NotTo(HaveOccurred())

			order, err := service.ApplySnapshot(ctx, serviceorder.OrderSnapshot{
				Number: "01234",
				Status: "OS CANCELADA",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(order.ID).To(Equal(created.ID))
			Expect(order.Status).To(Equal(serviceorder.StatusCancelada))
			Expect(order.Status.BlocksApontamento()).To(BeTrue())
			Expect(order.RefreshedAt).NotTo(BeNil())
		})

		It("publishes a status change event exactly when the status moved", func() {
			_, err := service.Create(serviceorder.CreateOrderDTO{Number: "01234", Client: "Cliente A"})
			Expect(err).NotTo(HaveOccurred())

			var mu sync.Mutex
			received := 0
			done := make(chan struct{}, 2)
			bus.Subscribe(events.EventOrderStatusChanged, func(ctx context.Context, event events.Event) error {
				mu.Lock()
				received++
				mu.Unlock()
				done <- struct{}{}
				return nil
			})

			_, err = service.ApplySnapshot(ctx, serviceorder.OrderSnapshot{Number: "01234", Status: "EM ANDAMENTO"})
			Expect(err).NotTo(HaveOccurred())
			Eventually(done).Should(Receive())

			// same status again: no event
			_, err = service.ApplySnapshot(ctx, serviceorder.OrderSnapshot{Number: "01234", Status: "EM ANDAMENTO"})
			Expect(err).NotTo(HaveOccurred())
			Consistently(done).ShouldNot(Receive())

			mu.Lock()
			defer mu.Unlock()
			Expect(received).To(Equal(1))
		})

		It("keeps existing fields when the snapshot omits them", func() {
			_, err := service.Create(serviceorder.CreateOrderDTO{Number: "01234", Client: "Cliente A", Equipment: "Motor 50cv"})
			Expect(err).NotTo(HaveOccurred())

			order, err := service.ApplySnapshot(ctx, serviceorder.OrderSnapshot{Number: "01234", Status: "EM ANDAMENTO"})

			Expect(err).NotTo(HaveOccurred())
			Expect(order.Client).To(Equal("Cliente A"))
			Expect(order.Equipment).To(Equal("Motor 50cv"))
		})
	})

	Describe("Refresher", func() {
		It("pulls the portal snapshot and applies it", func() {
			created, err := service.Create(serviceorder.CreateOrderDTO{Number: "01234", Client: "Cliente A"})
			Expect(err).NotTo(HaveOccurred())

			portal := &stubPortal{snapshots: map[string]*serviceorder.OrderSnapshot{
				"01234": {Number: "01234", Status: "TERMINADA - EXPEDIDA"},
			}}
			refresher := serviceorder.NewRefresher(portal, service, slog.New(slog.NewTextHandler(os.Stderr, nil)))

			order, err := refresher.RefreshOrder(ctx, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal(serviceorder.StatusTerminadaExpedida))
			Expect(order.Status.BlocksApontamento()).To(BeTrue())
		})

		It("returns the stored order untouched when the portal has no record", func() {
			created, err := service.Create(serviceorder.CreateOrderDTO{Number: "01234", Client: "Cliente A"})
			Expect(err).NotTo(HaveOccurred())

			refresher := serviceorder.NewRefresher(&stubPortal{snapshots: map[string]*serviceorder.OrderSnapshot{}}, service, slog.New(slog.NewTextHandler(os.Stderr, nil)))

			order, err := refresher.RefreshOrder(ctx, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal(created.Status))
		})

		It("keeps the stored order when the portal answers not found", func() {
			created, err := service.Create(serviceorder.CreateOrderDTO{Number: "01234", Client: "Cliente A"})
			Expect(err).NotTo(HaveOccurred())

			refresher := serviceorder.NewRefresher(&stubPortal{err: internal.ErrOrderNotFound}, service, slog.New(slog.NewTextHandler(os.Stderr, nil)))

			order, err := refresher.RefreshOrder(ctx, created.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(order.Status).To(Equal(created.Status))
			Expect(order.RefreshedAt).To(BeNil())
		})

		It("wraps portal failures instead of passing them raw", func() {
			created, err := service.Create(serviceorder.CreateOrderDTO{Number: "01234", Client: "Cliente A"})
			Expect(err).NotTo(HaveOccurred())

			refresher := serviceorder.NewRefresher(&stubPortal{err: context.DeadlineExceeded}, service, slog.New(slog.NewTextHandler(os.Stderr, nil)))

			_, err = refresher.RefreshOrder(ctx, created.ID)

			Expect(err).To(HaveOccurred())
			var appErr *internal.AppError
			Expect(err).To(BeAssignableToTypeOf(appErr))
		})
	})
})
