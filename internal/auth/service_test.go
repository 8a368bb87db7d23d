package auth_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/registroos/registro-os/internal"
	"github.com/registroos/registro-os/internal/auth"
	"github.com/registroos/registro-os/internal/user"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Suite")
}

type mockUserRepository struct {
	usersByEmail map[string]*user.User
	usersByID    map[int64]*user.User
	hashes       map[string]string
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		usersByEmail: make(map[string]*user.User),
		usersByID:    make(map[int64]*user.User),
		hashes:       make(map[string]string),
	}
}

func (m *mockUserRepository) add(u *user.User, password string) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	m.usersByEmail[u.Email] = u
	m.usersByID[u.ID] = u
	m.hashes[u.Email] = string(hash)
}

func (m *mockUserRepository) GetByEmail(email string) (string, *user.User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return "", nil, internal.ErrUserNotFound
	}
	return m.hashes[email], u, nil
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.usersByID[id]
	if !ok {
		return nil, internal.ErrUserNotFound
	}
	return u, nil
}

var _ = Describe("Auth Service", func() {
	var (
		service *auth.Service
		repo    *mockUserRepository
	)

	const (
		accessSecret  = "test-access-secret-0123456789abcdef"
		refreshSecret = "test-refresh-secret-0123456789abcdef"
	)

	newService := func(accessTTL, refreshTTL time.Duration) *auth.Service {
		gen := auth.NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
		return auth.NewService(repo, gen)
	}

	BeforeEach(func() {
		repo = newMockUserRepository()
		repo.add(&user.User{
			ID:         1,
			Email:      "tecnico@registro-os.local",
			Role:       user.RoleUser,
			Sector:     "Mecanica Dia",
			IsApproved: true,
			IsActive:   true,
		}, "senha-correta")

		service = newService(15*time.Minute, 24*time.Hour)
	})

	Describe("Authenticate", func() {
		It("returns a token pair for valid credentials", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "tecnico@registro-os.local",
				Password: "senha-correta",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(tokens.AccessToken).NotTo(BeEmpty())
			Expect(tokens.RefreshToken).NotTo(BeEmpty())
			Expect(tokens.AccessToken).NotTo(Equal(tokens.RefreshToken))
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "tecnico@registro-os.local",
				Password: "senha-errada",
			})

			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("rejects an unknown email with the same error as a bad password", func() {
			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "ninguem@registro-os.local",
				Password: "qualquer",
			})

			Expect(err).To(MatchError(internal.ErrInvalidCredentials))
		})

		It("rejects a deactivated account even with the right password", func() {
			repo.add(&user.User{
				ID:         2,
				Email:      "inativo@registro-os.local",
				IsApproved: true,
				IsActive:   false,
			}, "senha")

			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "inativo@registro-os.local",
				Password: "senha",
			})

			Expect(err).To(MatchError(internal.ErrUserInactive))
		})

		It("rejects an account still waiting for admin approval", func() {
			repo.add(&user.User{
				ID:       3,
				Email:    "pendente@registro-os.local",
				IsActive: true,
			}, "senha")

			_, err := service.Authenticate(auth.LoginDTO{
				Email:    "pendente@registro-os.local",
				Password: "senha",
			})

			Expect(err).To(MatchError(internal.ErrUserNotApproved))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("resolves the user behind a fresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "tecnico@registro-os.local",
				Password: "senha-correta",
			})
			Expect(err).NotTo(HaveOccurred())

			u, err := service.ValidateAccessToken(tokens.AccessToken)

			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(int64(1)))
			Expect(u.Role).To(Equal(user.RoleUser))
		})

		It("rejects an expired token", func() {
			shortLived := newService(time.Nanosecond, 24*time.Hour)
			tokens, err := shortLived.Authenticate(auth.LoginDTO{
				Email:    "tecnico@registro-os.local",
				Password: "senha-correta",
			})
			Expect(err).NotTo(HaveOccurred())

			time.Sleep(10 * time.Millisecond)
			_, err = shortLived.ValidateAccessToken(tokens.AccessToken)

			Expect(err).To(MatchError(internal.ErrTokenExpired))
		})

		It("rejects a refresh token presented as an access token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "tecnico@registro-os.local",
				Password: "senha-correta",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(tokens.RefreshToken)

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})

		It("rejects garbage", func() {
			_, err := service.ValidateAccessToken("not-a-token")

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})
	})

	Describe("RefreshTokens", func() {
		It("issues a new pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "tecnico@registro-os.local",
				Password: "senha-correta",
			})
			Expect(err).NotTo(HaveOccurred())

			renewed, err := service.RefreshTokens(tokens.RefreshToken)

			Expect(err).NotTo(HaveOccurred())
			Expect(renewed.AccessToken).NotTo(BeEmpty())
			Expect(renewed.RefreshToken).NotTo(BeEmpty())
		})

		It("rejects an access token presented as a refresh token", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "tecnico@registro-os.local",
				Password: "senha-correta",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.RefreshTokens(tokens.AccessToken)

			Expect(err).To(MatchError(internal.ErrInvalidToken))
		})

		It("rejects refresh for a user deactivated since login", func() {
			tokens, err := service.Authenticate(auth.LoginDTO{
				Email:    "tecnico@registro-os.local",
				Password: "senha-correta",
			})
			Expect(err).NotTo(HaveOccurred())

			repo.usersByID[1].IsActive = false
			defer func() { repo.usersByID[1].IsActive = true }()

			_, err = service.RefreshTokens(tokens.RefreshToken)

			Expect(err).To(MatchError(internal.ErrUserInactive))
		})
	})
})
