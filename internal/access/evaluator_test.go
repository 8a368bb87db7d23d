package access_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/registroos/registro-os/internal/access"
	"github.com/registroos/registro-os/internal/user"
)

func TestAccess(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Access Suite")
}

var _ = Describe("Evaluator", func() {
	var evaluator *access.Evaluator

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		evaluator = access.NewEvaluator([]string{
			"Laboratorio de Ensaios Eletricos Motores",
			"Mecanica Dia",
			"Bobinagem",
		}, logger)
	})

	Describe("administrative roles", func() {
		DescribeTable("pass regardless of sector or production flag",
			func(role user.Role) {
				u := &user.User{ID: 1, Role: role, Sector: "Vendas", WorksInProduction: false}
				Expect(evaluator.CanAccessDevelopment(u, "Mecanica Dia")).To(BeTrue())
			},
			Entry("admin", user.RoleAdmin),
			Entry("supervisor", user.RoleSupervisor),
			Entry("gestao", user.RoleGestao),
		)
	})

	Describe("production users", func() {
		It("denies users outside production even with an allowed sector", func() {
			u := &user.User{ID: 2, Role: user.RoleUser, Sector: "Mecanica Dia", WorksInProduction: false}
			Expect(evaluator.CanAccessDevelopment(u, "Mecanica Dia")).To(BeFalse())
		})

		It("grants production users assigned to an allow-listed sector", func() {
			u := &user.User{ID: 3, Role: user.RoleUser, Sector: "Laboratorio de Ensaios Eletricos Motores", WorksInProduction: true}
			Expect(evaluator.CanAccessDevelopment(u, "Laboratorio de Ensaios Eletricos Motores")).To(BeTrue())
		})

		It("matches sectors across accent and case variants", func() {
			u := &user.User{ID: 4, Role: user.RoleUser, Sector: "LABORATÓRIO DE ENSAIOS ELÉTRICOS MOTORES", WorksInProduction: true}
			Expect(evaluator.CanAccessDevelopment(u, "laboratorio de ensaios eletricos motores")).To(BeTrue())
		})

		It("denies production users requesting a sector other than their own", func() {
			u := &user.User{ID: 10, Role: user.RoleUser, Sector: "Mecanica Dia", WorksInProduction: true}
			Expect(evaluator.CanAccessDevelopment(u, "Bobinagem")).To(BeFalse())
		})

		It("denies production users assigned to a non-production sector", func() {
			u := &user.User{ID: 5, Role: user.RoleUser, Sector: "Vendas", WorksInProduction: true}
			Expect(evaluator.CanAccessDevelopment(u, "Vendas")).To(BeFalse())
		})
	})

	Describe("other roles", func() {
		It("denies PCP unconditionally", func() {
			u := &user.User{ID: 6, Role: user.RolePCP, Sector: "Mecanica Dia", WorksInProduction: true}
			Expect(evaluator.CanAccessDevelopment(u, "Mecanica Dia")).To(BeFalse())
		})

		It("denies unknown roles", func() {
			u := &user.User{ID: 7, Role: user.ParseRole("OPERADOR"), Sector: "Mecanica Dia", WorksInProduction: true}
			Expect(evaluator.CanAccessDevelopment(u, "Mecanica Dia")).To(BeFalse())
		})
	})

	Describe("malformed users", func() {
		It("fails closed on nil user", func() {
			Expect(evaluator.CanAccessDevelopment(nil, "Mecanica Dia")).To(BeFalse())
		})

		It("fails closed on missing role", func() {
			u := &user.User{ID: 8, Sector: "Mecanica Dia", WorksInProduction: true}
			Expect(evaluator.CanAccessDevelopment(u, "Mecanica Dia")).To(BeFalse())
		})

		It("fails closed on production user with missing sector", func() {
			u := &user.User{ID: 9, Role: user.RoleUser, WorksInProduction: true}
			Expect(evaluator.CanAccessDevelopment(u, "Mecanica Dia")).To(BeFalse())
		})
	})
})
