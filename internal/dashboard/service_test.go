package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestDashboard(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Dashboard Module Suite")
}

type stubPendingCounter struct {
	count int
	err   error
}

func (s *stubPendingCounter) CountPending() (int, error) {
	return s.count, s.err
}

var _ = ginkgo.Describe("Dashboard Service", func() {
	var (
		ctx     context.Context
		server  *httptest.Server
		pending *stubPendingCounter
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		pending = &stubPendingCounter{count: 3}
	})

	ginkgo.AfterEach(func() {
		if server != nil {
			server.Close()
			server = nil
		}
	})

	newService := func(handler http.HandlerFunc) *Service {
		server = httptest.NewServer(handler)
		client := NewProductsClient(Config{BaseURL: server.URL, Timeout: 2 * time.Second})
		return NewService(client, pending, slog.Default())
	}

	ginkgo.It("should count products by status", func() {
		service := newService(func(w http.ResponseWriter, r *http.Request) {
			gomega.Expect(r.URL.Path).To(gomega.Equal("/api/getProductsFast"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"products":[
				{"id":"p1","name":"Rail Clip","status":"manufactured"},
				{"id":"p2","name":"Rail Clip","status":"manufactured"},
				{"id":"p3","name":"Sleeper","status":"installed"},
				{"id":"p4","name":"Fish Plate","status":""}
			]}`))
		})

		summary, err := service.GetSummary(ctx)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(summary.TotalProducts).To(gomega.Equal(4))
		gomega.Expect(summary.FeedDegraded).To(gomega.BeFalse())
		gomega.Expect(summary.ProductsByStatus).To(gomega.Equal([]StatusCount{
			{Status: "installed", Count: 1},
			{Status: "manufactured", Count: 2},
			{Status: "unknown", Count: 1},
		}))
		gomega.Expect(summary.PendingInspections).To(gomega.Equal(3))
	})

	ginkgo.It("should degrade when the feed errors", func() {
		service := newService(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		summary, err := service.GetSummary(ctx)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(summary.FeedDegraded).To(gomega.BeTrue())
		gomega.Expect(summary.TotalProducts).To(gomega.BeZero())
		gomega.Expect(summary.PendingInspections).To(gomega.Equal(3))
	})

	ginkgo.It("should serve an empty feed", func() {
		service := newService(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"products":[]}`))
		})

		summary, err := service.GetSummary(ctx)

		gomega.Expect(err).ToNot(gomega.HaveOccurred())
		gomega.Expect(summary.TotalProducts).To(gomega.BeZero())
		gomega.Expect(summary.ProductsByStatus).To(gomega.BeEmpty())
	})
})
