package catalog_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/registroos/registro-os/internal/catalog"
	catalogPostgres "github.com/registroos/registro-os/internal/catalog/postgres"
	catalogDatamodel "github.com/registroos/registro-os/internal/core/datamodel/catalog"
	"github.com/registroos/registro-os/internal/transport"
)

func TestCatalog(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Catalog Suite")
}

var _ = Describe("Catalog Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    catalog.RepositoryAPI
		service *catalog.Service
		handler *catalog.Handler
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&catalogDatamodel.Item{})
		Expect(err).NotTo(HaveOccurred())

		repo = catalogPostgres.NewCatalogRepository(db)
		service = catalog.NewService(repo, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = catalog.NewHandler(baseHandler, service)

		seed := []*catalog.Item{
			catalog.NewItem(catalog.KindFailureCause, "ISOLACAO_DEGRADADA", "Isolacao degradada"),
			catalog.NewItem(catalog.KindFailureCause, "ROLAMENTO_DANIFICADO", "Rolamento danificado"),
			catalog.NewItem(catalog.KindMachineType, "MOTOR_INDUCAO", "Motor de inducao"),
		}
		for _, item := range seed {
			Expect(repo.Create(catalog.ToDataModel(item))).To(Succeed())
		}

		retired := catalog.NewItem(catalog.KindFailureCause, "CAUSA_ANTIGA", "Nao usada mais")
		model := catalog.ToDataModel(retired)
		Expect(repo.Create(model)).To(Succeed())
		model.IsActive = false
		Expect(repo.Update(model)).To(Succeed())
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	requestWithKind := func(method, target, kind string) *http.Request {
		req := httptest.NewRequest(method, target, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("kind", kind)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	It("lists only active items of the requested kind", func() {
		req := requestWithKind(http.MethodGet, "/catalogos/failure_causes", "failure_causes")
		w := httptest.NewRecorder()

		handler.ListItems(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var response struct {
			Kind  string          `json:"kind"`
			Items []*catalog.Item `json:"items"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())

		codes := make([]string, len(response.Items))
		for i, item := range response.Items {
			codes[i] = item.Code
		}
		Expect(codes).To(ConsistOf("ISOLACAO_DEGRADADA", "ROLAMENTO_DANIFICADO"))
	})

	It("rejects an unknown catalog kind", func() {
		req := requestWithKind(http.MethodGet, "/catalogos/whatever", "whatever")
		w := httptest.NewRecorder()

		handler.ListItems(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	Describe("IsValidFailureCause", func() {
		It("accepts an active cause", func() {
			Expect(service.IsValidFailureCause("ISOLACAO_DEGRADADA")).To(BeTrue())
		})

		It("rejects a retired cause", func() {
			Expect(service.IsValidFailureCause("CAUSA_ANTIGA")).To(BeFalse())
		})

		It("rejects a code from another catalog", func() {
			Expect(service.IsValidFailureCause("MOTOR_INDUCAO")).To(BeFalse())
		})

		It("rejects blank codes", func() {
			Expect(service.IsValidFailureCause("   ")).To(BeFalse())
		})
	})

	Describe("Create through the service", func() {
		It("refuses a duplicate code within the same catalog", func() {
			_, err := service.Create(catalog.KindFailureCause, "ISOLACAO_DEGRADADA", "duplicado")

			Expect(err).To(HaveOccurred())
		})

		It("allows the same code in a different catalog", func() {
			_, err := service.Create(catalog.KindTestType, "ISOLACAO_DEGRADADA", "ensaio homonimo")

			Expect(err).NotTo(HaveOccurred())
		})
	})
})
