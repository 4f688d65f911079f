package identity

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestIdentity(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Identity Module Suite")
}

// providerStub serves /v1/session with a swappable identity.
type providerStub struct {
	mu      sync.Mutex
	current *Identity
}

func (p *providerStub) set(ident *Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = ident
}

func (p *providerStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		ident := p.current
		p.mu.Unlock()

		if ident == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_ = json.NewEncoder(w).Encode(ident)
	})
}

var _ = ginkgo.Describe("Client Subscribe", func() {
	var (
		stub    *providerStub
		server  *httptest.Server
		client  *Client
		updates chan *Identity
	)

	ginkgo.BeforeEach(func() {
		stub = &providerStub{current: &Identity{ID: "uid-1", Email: "den@railway.gov.in"}}
		server = httptest.NewServer(stub.handler())
		client = NewClient(Config{
			BaseURL:      server.URL,
			Timeout:      time.Second,
			PollInterval: 20 * time.Millisecond,
		}, slog.Default())
		updates = make(chan *Identity, 8)
	})

	ginkgo.AfterEach(func() {
		server.Close()
	})

	ginkgo.It("should deliver the current identity synchronously", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		err := client.Subscribe(ctx, func(ident *Identity) { updates <- ident })

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(updates).To(gomega.Receive(gomega.Equal(&Identity{ID: "uid-1", Email: "den@railway.gov.in"})))
	})

	ginkgo.It("should keep delivering changes for the lifetime of the subscription context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		err := client.Subscribe(ctx, func(ident *Identity) { updates <- ident })
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Eventually(updates).Should(gomega.Receive())

		stub.set(&Identity{ID: "uid-2", Email: "drm@railway.gov.in"})

		var next *Identity
		gomega.Eventually(updates, time.Second).Should(gomega.Receive(&next))
		gomega.Expect(next.ID).To(gomega.Equal("uid-2"))
	})

	ginkgo.It("should stop polling once the subscription context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())

		err := client.Subscribe(ctx, func(ident *Identity) { updates <- ident })
		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Eventually(updates).Should(gomega.Receive())

		cancel()
		stub.set(&Identity{ID: "uid-2", Email: "drm@railway.gov.in"})

		gomega.Consistently(updates, 200*time.Millisecond).ShouldNot(gomega.Receive())
	})

	ginkgo.It("should fail the subscription when the provider is unreachable", func() {
		server.Close()

		err := client.Subscribe(context.Background(), func(ident *Identity) { updates <- ident })

		gomega.Expect(err).To(gomega.MatchError(ErrUnavailable))
	})
})
