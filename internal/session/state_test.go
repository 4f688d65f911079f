package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/railtrace/railway-assets/internal/rbac"
)

var _ = ginkgo.Describe("State", func() {
	var (
		ctx   context.Context
		state *State
	)

	someUser := func(id string) *User {
		return &User{
			ID:        id,
			Email:     id + "@railway.gov.in",
			Name:      "Test User",
			Role:      rbac.RoleAdmin,
			CreatedAt: time.Now(),
			LastLogin: time.Now(),
		}
	}

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		state = NewState(nil, slog.Default())
	})

	ginkgo.It("should start with no session", func() {
		gomega.Expect(state.Current()).To(gomega.BeNil())
	})

	ginkgo.It("should install a resolution whose token is still live", func() {
		token := state.Begin()

		applied := state.Set(ctx, token, someUser("u1"), "local")

		gomega.Expect(applied).To(gomega.BeTrue())
		gomega.Expect(state.Current().ID).To(gomega.Equal("u1"))
	})

	ginkgo.It("should discard a resolution begun before a clear", func() {
		stale := state.Begin()
		state.Clear(ctx)

		applied := state.Set(ctx, stale, someUser("u1"), "local")

		gomega.Expect(applied).To(gomega.BeFalse())
		gomega.Expect(state.Current()).To(gomega.BeNil())
	})

	ginkgo.It("should accept resolutions begun after a clear", func() {
		state.Clear(ctx)
		fresh := state.Begin()

		applied := state.Set(ctx, fresh, someUser("u2"), "local")

		gomega.Expect(applied).To(gomega.BeTrue())
		gomega.Expect(state.Current().ID).To(gomega.Equal("u2"))
	})

	ginkgo.It("should let the latest of two live resolutions win", func() {
		first := state.Begin()
		second := state.Begin()

		gomega.Expect(state.Set(ctx, second, someUser("newer"), "remote")).To(gomega.BeTrue())
		gomega.Expect(state.Set(ctx, first, someUser("older"), "local")).To(gomega.BeTrue())

		// Both tokens are live; last writer wins. Fencing only guards
		// against resurrecting a session after an explicit clear.
		gomega.Expect(state.Current().ID).To(gomega.Equal("older"))
	})

	ginkgo.It("should return a copy from Current", func() {
		token := state.Begin()
		state.Set(ctx, token, someUser("u3"), "local")

		snapshot := state.Current()
		snapshot.Name = "mutated"

		gomega.Expect(state.Current().Name).To(gomega.Equal("Test User"))
	})

	ginkgo.It("should tolerate repeated clears", func() {
		state.Clear(ctx)
		state.Clear(ctx)

		gomega.Expect(state.Current()).To(gomega.BeNil())
	})
})
