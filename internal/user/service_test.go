package user

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/railtrace/railway-assets/internal"
	userDatamodel "github.com/railtrace/railway-assets/internal/core/datamodel/user"
	"github.com/railtrace/railway-assets/internal/rbac"
)

func TestUser(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "User Module Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	users     map[string]*userDatamodel.User
	listErr   error
	createErr error
	updateErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*userDatamodel.User{}}
}

func (m *mockUserRepository) List(filter ListFilter) ([]*userDatamodel.User, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*userDatamodel.User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Division != "" && u.Division != filter.Division {
			continue
		}
		if filter.Active != nil && u.IsActive != *filter.Active {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) GetByID(id string) (*userDatamodel.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *u
	return &clone, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepository) Create(u *userDatamodel.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *mockUserRepository) Update(u *userDatamodel.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	clone := *u
	m.users[u.ID] = &clone
	return nil
}

func (m *mockUserRepository) Deactivate(id string) error {
	if u, ok := m.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

var _ = ginkgo.Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		service *Service
	)

	seedUser := func(id, email, role string, active bool) {
		hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
		repo.users[id] = &userDatamodel.User{
			ID:           id,
			Email:        email,
			Name:         "Seeded User",
			PasswordHash: string(hash),
			Role:         role,
			Division:     "Northern",
			IsActive:     active,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}
	}

	ginkgo.BeforeEach(func() {
		repo = newMockUserRepository()
		service = NewService(repo, bcrypt.MinCost, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("should create a user with a hashed password", func() {
			resp, err := service.Create(CreateUserDTO{
				Email:    "new@railway.gov.in",
				Name:     "New User",
				Password: "secret123",
				Role:     "den",
				Division: "Western",
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.Role).To(gomega.Equal("den"))
			gomega.Expect(resp.IsActive).To(gomega.BeTrue())

			stored := repo.users[resp.ID]
			gomega.Expect(stored.PasswordHash).ToNot(gomega.Equal("secret123"))
			gomega.Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123"))).To(gomega.Succeed())
		})

		ginkgo.It("should reject a duplicate email", func() {
			seedUser("u1", "taken@railway.gov.in", "admin", true)

			_, err := service.Create(CreateUserDTO{
				Email:    "taken@railway.gov.in",
				Name:     "Dup",
				Password: "secret123",
				Role:     "admin",
			})

			gomega.Expect(errors.Is(err, internal.ErrEmailTaken)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject an unknown role", func() {
			_, err := service.Create(CreateUserDTO{
				Email:    "x@railway.gov.in",
				Name:     "X",
				Password: "secret123",
				Role:     "superuser",
			})

			var appErr *internal.AppError
			gomega.Expect(errors.As(err, &appErr)).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeValidationFailed))
		})

		ginkgo.It("should reject a short password", func() {
			_, err := service.Create(CreateUserDTO{
				Email:    "x@railway.gov.in",
				Name:     "X",
				Password: "short",
				Role:     "den",
			})

			var appErr *internal.AppError
			gomega.Expect(errors.As(err, &appErr)).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("should wrap repository failures carrying the cause", func() {
			repo.listErr = errors.New("connection reset")

			_, err := service.List(ListFilter{})

			var appErr *internal.AppError
			gomega.Expect(errors.As(err, &appErr)).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeInternal))
			gomega.Expect(errors.Is(err, repo.listErr)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("GetByID", func() {
		ginkgo.It("should return the user", func() {
			seedUser("u1", "a@railway.gov.in", "drm", true)

			resp, err := service.GetByID("u1")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.Email).To(gomega.Equal("a@railway.gov.in"))
			gomega.Expect(resp.RoleLabel).To(gomega.Equal(rbac.RoleDRM.Label()))
		})

		ginkgo.It("should map a missing row to not found", func() {
			_, err := service.GetByID("missing")
			gomega.Expect(errors.Is(err, internal.ErrUserNotFound)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Update", func() {
		ginkgo.It("should apply only the provided fields", func() {
			seedUser("u1", "a@railway.gov.in", "den", true)
			newName := "Renamed"

			resp, err := service.Update("u1", UpdateUserDTO{Name: &newName})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.Name).To(gomega.Equal("Renamed"))
			gomega.Expect(resp.Role).To(gomega.Equal("den"))
		})

		ginkgo.It("should reject an unknown role", func() {
			seedUser("u1", "a@railway.gov.in", "den", true)
			badRole := "root"

			_, err := service.Update("u1", UpdateUserDTO{Role: &badRole})

			var appErr *internal.AppError
			gomega.Expect(errors.As(err, &appErr)).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
		})
	})

	ginkgo.Describe("Deactivate", func() {
		ginkgo.It("should flip the active flag", func() {
			seedUser("u1", "a@railway.gov.in", "inspector", true)

			gomega.Expect(service.Deactivate("u1")).To(gomega.Succeed())
			gomega.Expect(repo.users["u1"].IsActive).To(gomega.BeFalse())
		})

		ginkgo.It("should report not found for a missing user", func() {
			err := service.Deactivate("missing")
			gomega.Expect(errors.Is(err, internal.ErrUserNotFound)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("VerifyPassword", func() {
		ginkgo.It("should accept matching credentials", func() {
			seedUser("u1", "a@railway.gov.in", "sr_den", true)

			resp, err := service.VerifyPassword("a@railway.gov.in", "secret123")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(resp.Role).To(gomega.Equal("sr_den"))
		})

		ginkgo.It("should reject a wrong password", func() {
			seedUser("u1", "a@railway.gov.in", "sr_den", true)

			_, err := service.VerifyPassword("a@railway.gov.in", "wrong")
			gomega.Expect(errors.Is(err, internal.ErrInvalidCredentials)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject an inactive user", func() {
			seedUser("u1", "a@railway.gov.in", "sr_den", false)

			_, err := service.VerifyPassword("a@railway.gov.in", "secret123")
			gomega.Expect(errors.Is(err, internal.ErrUserInactive)).To(gomega.BeTrue())
		})
	})
})
