package apontamento_test

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/registroos/registro-os/internal"
	"github.com/registroos/registro-os/internal/access"
	"github.com/registroos/registro-os/internal/apontamento"
	apontamentoDatamodel "github.com/registroos/registro-os/internal/core/datamodel/apontamento"
	"github.com/registroos/registro-os/internal/core/events"
	"github.com/registroos/registro-os/internal/serviceorder"
	"github.com/registroos/registro-os/internal/user"
)

func TestApontamento(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Apontamento Suite")
}

// Mock repository for testing
type mockApontamentoRepository struct {
	entries     map[int64]*apontamentoDatamodel.Apontamento
	createError error
	nextID      int64
}

func newMockApontamentoRepository() *mockApontamentoRepository {
	return &mockApontamentoRepository{
		entries: make(map[int64]*apontamentoDatamodel.Apontamento),
		nextID:  1,
	}
}

func (m *mockApontamentoRepository) CreateForOrder(a *apontamentoDatamodel.Apontamento) error {
	if m.createError != nil {
		return m.createError
	}
	a.ID = m.nextID
	m.nextID++
	copied := *a
	m.entries[a.ID] = &copied
	return nil
}

func (m *mockApontamentoRepository) GetByID(id int64) (*apontamentoDatamodel.Apontamento, error) {
	entry, ok := m.entries[id]
	if !ok {
		return nil, internal.ErrApontamentoNotFound
	}
	copied := *entry
	return &copied, nil
}

func (m *mockApontamentoRepository) GetByUserID(userID int64, limit, offset int) ([]*apontamentoDatamodel.Apontamento, error) {
	var result []*apontamentoDatamodel.Apontamento
	for _, e := range m.entries {
		if e.UserID == userID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockApontamentoRepository) GetBySector(sector string, limit, offset int) ([]*apontamentoDatamodel.Apontamento, error) {
	var result []*apontamentoDatamodel.Apontamento
	for _, e := range m.entries {
		if e.Sector == sector {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *mockApontamentoRepository) Update(a *apontamentoDatamodel.Apontamento) error {
	if _, ok := m.entries[a.ID]; !ok {
		return internal.ErrApontamentoNotFound
	}
	copied := *a
	m.entries[a.ID] = &copied
	return nil
}

type mockOrderGetter struct {
	orders map[int64]*serviceorder.ServiceOrder
}

func (m *mockOrderGetter) GetByID(id int64) (*serviceorder.ServiceOrder, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, internal.ErrOrderNotFound
	}
	return order, nil
}

type mockCauseValidator struct {
	known map[string]bool
}

func (m *mockCauseValidator) IsValidFailureCause(code string) bool {
	return m.known[code]
}

var _ = Describe("Apontamento Service", func() {
	var (
		service    *apontamento.Service
		repo       *mockApontamentoRepository
		orders     *mockOrderGetter
		causes     *mockCauseValidator
		evaluator  *access.Evaluator
		bus        *events.EventBus
		testLogger *slog.Logger

		technician *user.User
		supervisor *user.User
		admin      *user.User
		planner    *user.User

		ctx context.Context
	)

	const sectorMecanica = "Mecanica Dia"

	BeforeEach(func() {
		testLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))

		repo = newMockApontamentoRepository()
		orders = &mockOrderGetter{orders: map[int64]*serviceorder.ServiceOrder{
			1: {ID: 1, Number: "01234", Status: serviceorder.StatusEmAndamento},
			2: {ID: 2, Number: "05678", Status: serviceorder.StatusCancelada},
			3: {ID: 3, Number: "09999", Status: serviceorder.StatusTerminadaExpedida},
		}}
		causes = &mockCauseValidator{known: map[string]bool{
			"ISOLACAO_DEGRADADA":   true,
			"ROLAMENTO_DANIFICADO": true,
		}}
		evaluator = access.NewEvaluator([]string{sectorMecanica, "Bobinagem"}, testLogger)
		bus = events.NewEventBus(testLogger)

		service = apontamento.NewService(repo, orders, evaluator, causes, bus, testLogger)

		technician = &user.User{
			ID:                10,
			Role:              user.RoleUser,
			Sector:            sectorMecanica,
			WorksInProduction: true,
			IsApproved:        true,
			IsActive:          true,
		}
		supervisor = &user.User{
			ID:       20,
			Role:     user.RoleSupervisor,
			Sector:   sectorMecanica,
			IsActive: true,
		}
		admin = &user.User{
			ID:       30,
			Role:     user.RoleAdmin,
			IsActive: true,
		}
		planner = &user.User{
			ID:       40,
			Role:     user.RolePCP,
			Sector:   "PCP",
			IsActive: true,
		}

		ctx = context.Background()
	})

	validCreate := func() apontamento.CreateApontamentoDTO {
		return apontamento.CreateApontamentoDTO{
			OrderID:    1,
			Sector:     sectorMecanica,
			StartedAt:  time.Now().Add(-2 * time.Hour),
			FinishedAt: time.Now().Add(-1 * time.Hour),
		}
	}

	Describe("Create", func() {
		Context("when a production technician logs work in their own sector", func() {
			It("creates the entry unapproved with status CONCLUIDO", func() {
				entry, err := service.Create(ctx, technician, validCreate())

				Expect(err).NotTo(HaveOccurred())
				Expect(entry.ID).NotTo(BeZero())
				Expect(entry.Status).To(Equal(apontamento.StatusConcluido))
				Expect(entry.SupervisorApproved).To(BeFalse())
				Expect(entry.UserID).To(Equal(technician.ID))
			})

			It("accepts a sector spelled with accents and different case", func() {
				dto := validCreate()
				dto.Sector = "mecânica dia"

				_, err := service.Create(ctx, technician, dto)

				Expect(err).NotTo(HaveOccurred())
			})
		})

		Context("when the requester lacks development access", func() {
			It("rejects a PCP user", func() {
				_, err := service.Create(ctx, planner, validCreate())

				Expect(err).To(MatchError(internal.ErrAccessDenied))
			})

			It("rejects a technician logging under another production sector", func() {
				dto := validCreate()
				dto.Sector = "Bobinagem"

				_, err := service.Create(ctx, technician, dto)

				Expect(err).To(MatchError(internal.ErrAccessDenied))
			})

			It("rejects a technician outside the production allow-list", func() {
				dto := validCreate()
				dto.Sector = "Comercial"

				_, err := service.Create(ctx, technician, dto)

				Expect(err).To(MatchError(internal.ErrAccessDenied))
			})

			It("allows an admin into any sector", func() {
				dto := validCreate()
				dto.Sector = "Comercial"

				_, err := service.Create(ctx, admin, dto)

				Expect(err).NotTo(HaveOccurred())
			})
		})

		Context("when the order status blocks new entries", func() {
			It("rejects a cancelled order", func() {
				dto := validCreate()
				dto.OrderID = 2

				_, err := service.Create(ctx, technician, dto)

				Expect(err).To(MatchError(internal.ErrOrderBlocked))
			})

			It("rejects a cancelled order even for an admin", func() {
				dto := validCreate()
				dto.OrderID = 2

				_, err := service.Create(ctx, admin, dto)

				Expect(err).To(MatchError(internal.ErrOrderBlocked))
			})

			It("rejects a shipped order", func() {
				dto := validCreate()
				dto.OrderID = 3

				_, err := service.Create(ctx, technician, dto)

				Expect(err).To(MatchError(internal.ErrOrderBlocked))
			})
		})

		Context("when the order does not exist", func() {
			It("returns not found before checking anything else about the order", func() {
				dto := validCreate()
				dto.OrderID = 999

				_, err := service.Create(ctx, technician, dto)

				Expect(err).To(MatchError(internal.ErrOrderNotFound))
			})
		})

		Context("when the entry is rework", func() {
			It("requires a cause code", func() {
				dto := validCreate()
				dto.IsRework = true

				_, err := service.Create(ctx, technician, dto)

				Expect(err).To(MatchError(internal.ErrMissingReworkCause))
			})

			It("rejects an empty cause code", func() {
				dto := validCreate()
				dto.IsRework = true
				empty := ""
				dto.ReworkCauseCode = &empty

				_, err := service.Create(ctx, technician, dto)

				Expect(err).To(MatchError(internal.ErrMissingReworkCause))
			})

			It("rejects a cause code the catalog does not know", func() {
				dto := validCreate()
				dto.IsRework = true
				code := "CAUSA_INVENTADA"
				dto.ReworkCauseCode = &code

				_, err := service.Create(ctx, technician, dto)

				Expect(err).To(MatchError(internal.ErrUnknownReworkCause))
			})

			It("accepts a recognized cause code", func() {
				dto := validCreate()
				dto.IsRework = true
				code := "ISOLACAO_DEGRADADA"
				dto.ReworkCauseCode = &code

				entry, err := service.Create(ctx, technician, dto)

				Expect(err).NotTo(HaveOccurred())
				Expect(entry.IsRework).To(BeTrue())
				Expect(entry.ReworkCauseCode).To(HaveValue(Equal(code)))
			})
		})

		Context("when a cause code is sent on a non-rework entry", func() {
			It("drops the stray code instead of failing", func() {
				dto := validCreate()
				code := "ISOLACAO_DEGRADADA"
				dto.ReworkCauseCode = &code

				entry, err := service.Create(ctx, technician, dto)

				Expect(err).NotTo(HaveOccurred())
				Expect(entry.ReworkCauseCode).To(BeNil())
			})
		})

		Context("with malformed fields", func() {
			It("rejects a period that ends before it starts", func() {
				dto := validCreate()
				dto.StartedAt, dto.FinishedAt = dto.FinishedAt, dto.StartedAt

				_, err := service.Create(ctx, technician, dto)

				var appErr *internal.AppError
				Expect(err).To(BeAssignableToTypeOf(appErr))
			})
		})
	})

	Describe("Approve", func() {
		var entryID int64

		BeforeEach(func() {
			entry, err := service.Create(ctx, technician, validCreate())
			Expect(err).NotTo(HaveOccurred())
			entryID = entry.ID
		})

		It("sets the approval flag without touching the status", func() {
			entry, err := service.Approve(ctx, entryID, supervisor)

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.SupervisorApproved).To(BeTrue())
			Expect(entry.Status).To(Equal(apontamento.StatusConcluido))
			Expect(entry.ApprovedBy).To(HaveValue(Equal(supervisor.ID)))
			Expect(entry.ApprovedAt).NotTo(BeNil())
		})

		It("is a no-op on an already approved entry", func() {
			first, err := service.Approve(ctx, entryID, supervisor)
			Expect(err).NotTo(HaveOccurred())

			second, err := service.Approve(ctx, entryID, supervisor)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ApprovedAt).To(Equal(first.ApprovedAt))
		})

		It("denies a supervisor from another sector", func() {
			other := &user.User{ID: 21, Role: user.RoleSupervisor, Sector: "Bobinagem", IsActive: true}

			_, err := service.Approve(ctx, entryID, other)

			Expect(err).To(MatchError(internal.ErrAccessDenied))
		})

		It("lets an admin approve across sectors", func() {
			entry, err := service.Approve(ctx, entryID, admin)

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.SupervisorApproved).To(BeTrue())
		})

		It("denies a plain technician", func() {
			_, err := service.Approve(ctx, entryID, technician)

			Expect(err).To(MatchError(internal.ErrAccessDenied))
		})
	})

	Describe("Reject", func() {
		var entryID int64

		BeforeEach(func() {
			entry, err := service.Create(ctx, technician, validCreate())
			Expect(err).NotTo(HaveOccurred())
			entryID = entry.ID
		})

		It("moves the entry to REJEITADO and records the reason", func() {
			entry, err := service.Reject(ctx, entryID, supervisor, "horas acima do orçado")

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.Status).To(Equal(apontamento.StatusRejeitado))
			Expect(entry.RejectionReason).To(HaveValue(Equal("horas acima do orçado")))
			Expect(entry.SupervisorApproved).To(BeFalse())
		})

		It("requires a reason", func() {
			_, err := service.Reject(ctx, entryID, supervisor, "")

			Expect(err).To(HaveOccurred())
		})

		It("refuses to reject an approved entry", func() {
			_, err := service.Approve(ctx, entryID, supervisor)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Reject(ctx, entryID, supervisor, "tarde demais")

			Expect(err).To(MatchError(internal.ErrApontamentoLocked))
		})
	})

	Describe("Update", func() {
		var entryID int64

		BeforeEach(func() {
			entry, err := service.Create(ctx, technician, validCreate())
			Expect(err).NotTo(HaveOccurred())
			entryID = entry.ID
		})

		It("lets the owner correct observations before approval", func() {
			obs := "trocado rolamento dianteiro"
			entry, err := service.Update(entryID, technician, apontamento.UpdateApontamentoDTO{Observations: &obs})

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.Observations).To(Equal(obs))
		})

		It("locks the entry after approval", func() {
			_, err := service.Approve(ctx, entryID, supervisor)
			Expect(err).NotTo(HaveOccurred())

			obs := "ajuste tardio"
			_, err = service.Update(entryID, technician, apontamento.UpdateApontamentoDTO{Observations: &obs})

			Expect(err).To(MatchError(internal.ErrApontamentoLocked))
		})

		It("denies another technician", func() {
			other := &user.User{ID: 11, Role: user.RoleUser, Sector: sectorMecanica, WorksInProduction: true, IsActive: true}

			obs := "não é meu apontamento"
			_, err := service.Update(entryID, other, apontamento.UpdateApontamentoDTO{Observations: &obs})

			Expect(err).To(MatchError(internal.ErrAccessDenied))
		})
	})

	Describe("SetGlobalResult", func() {
		var entryID int64

		BeforeEach(func() {
			entry, err := service.Create(ctx, technician, validCreate())
			Expect(err).NotTo(HaveOccurred())
			entryID = entry.ID
		})

		It("records APROVADO", func() {
			entry, err := service.SetGlobalResult(entryID, supervisor, apontamento.GlobalResultDTO{Result: apontamento.GlobalResultAprovado})

			Expect(err).NotTo(HaveOccurred())
			Expect(entry.GlobalResult).To(HaveValue(Equal("APROVADO")))
		})

		It("rejects anything outside APROVADO/REPROVADO", func() {
			_, err := service.SetGlobalResult(entryID, supervisor, apontamento.GlobalResultDTO{Result: "TALVEZ"})

			Expect(err).To(HaveOccurred())
		})

		It("denies a technician", func() {
			_, err := service.SetGlobalResult(entryID, technician, apontamento.GlobalResultDTO{Result: apontamento.GlobalResultAprovado})

			Expect(err).To(MatchError(internal.ErrAccessDenied))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			_, err := service.Create(ctx, technician, validCreate())
			Expect(err).NotTo(HaveOccurred())

			other := &user.User{ID: 11, Role: user.RoleUser, Sector: "Bobinagem", WorksInProduction: true, IsActive: true}
			dto := validCreate()
			dto.Sector = "Bobinagem"
			_, err = service.Create(ctx, other, dto)
			Expect(err).NotTo(HaveOccurred())
		})

		It("shows a technician only their own entries", func() {
			entries, err := service.List(technician, 20, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].UserID).To(Equal(technician.ID))
		})

		It("shows a supervisor their whole sector", func() {
			entries, err := service.List(supervisor, 20, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Sector).To(Equal(sectorMecanica))
		})
	})
})
