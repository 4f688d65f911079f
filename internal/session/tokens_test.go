package session

import (
	"errors"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/railtrace/railway-assets/internal"
	"github.com/railtrace/railway-assets/internal/rbac"
)

var _ = ginkgo.Describe("JWTTokenGenerator", func() {
	var (
		generator *JWTTokenGenerator
		user      *User
	)

	ginkgo.BeforeEach(func() {
		generator = NewJWTTokenGenerator("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
		user = &User{
			ID:    "demo_admin",
			Email: "admin@railway.gov.in",
			Name:  "Admin User",
			Role:  rbac.RoleAdmin,
		}
	})

	ginkgo.It("should round-trip an access token", func() {
		token, err := generator.GenerateAccessToken(user)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		claims, err := generator.ValidateToken(token)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(claims.UserID).To(gomega.Equal("demo_admin"))
		gomega.Expect(claims.Email).To(gomega.Equal("admin@railway.gov.in"))
		gomega.Expect(claims.Role).To(gomega.Equal("admin"))
	})

	ginkgo.It("should round-trip a refresh token", func() {
		token, err := generator.GenerateRefreshToken(user)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		claims, err := generator.ValidateToken(token)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(claims.UserID).To(gomega.Equal("demo_admin"))
	})

	ginkgo.It("should reject a token signed with a different secret", func() {
		other := NewJWTTokenGenerator("someone-else", "someone-else", 15*time.Minute, 7*24*time.Hour)
		token, err := other.GenerateAccessToken(user)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = generator.ValidateToken(token)
		gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())
	})

	ginkgo.It("should reject an expired token", func() {
		expired := NewJWTTokenGenerator("access-secret", "refresh-secret", -time.Minute, 7*24*time.Hour)
		token, err := expired.GenerateAccessToken(user)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		_, err = generator.ValidateToken(token)
		gomega.Expect(errors.Is(err, internal.ErrTokenExpired)).To(gomega.BeTrue())
	})

	ginkgo.It("should reject garbage input", func() {
		_, err := generator.ValidateToken("not-a-token")
		gomega.Expect(errors.Is(err, internal.ErrInvalidToken)).To(gomega.BeTrue())
	})
})
