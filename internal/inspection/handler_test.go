package inspection

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/railtrace/railway-assets/internal"
	"github.com/railtrace/railway-assets/internal/rbac"
	"github.com/railtrace/railway-assets/internal/transport"
)

type mockInspectionService struct {
	recorded    *RecordInspectionDTO
	inspectorID string
	listUserID  string
	listPerms   []string
}

func (m *mockInspectionService) Record(inspectorID, inspectorName string, dto RecordInspectionDTO) (*Inspection, error) {
	m.inspectorID = inspectorID
	m.recorded = &dto
	return &Inspection{ID: 1, AssetTag: dto.AssetTag, Status: StatusPendingApproval}, nil
}

func (m *mockInspectionService) List(filter ListFilter, userPermissions []string, userID string) ([]*Inspection, error) {
	m.listPerms = userPermissions
	m.listUserID = userID
	return nil, nil
}

func (m *mockInspectionService) GetByID(id int64) (*Inspection, error) {
	return nil, ErrInspectionNotFound
}

func (m *mockInspectionService) Approve(inspectionID int64, approverID string, userPermissions []string) error {
	return nil
}

func (m *mockInspectionService) Reject(inspectionID int64, approverID, reason string, userPermissions []string) error {
	return nil
}

var _ = ginkgo.Describe("Inspection Handler", func() {
	var (
		service *mockInspectionService
		handler *Handler
	)

	authed := func(r *http.Request) *http.Request {
		ctx := internal.ContextWithUser(r.Context(), &internal.AuthUser{
			ID:          "demo_inspector",
			Email:       "inspector@railway.gov.in",
			Role:        string(rbac.RoleInspector),
			Permissions: rbac.PermissionsForRole(rbac.RoleInspector),
		})
		return r.WithContext(ctx)
	}

	ginkgo.BeforeEach(func() {
		service = &mockInspectionService{}
		handler = NewHandler(transport.NewBaseHandler(nil), service)
	})

	ginkgo.Describe("RecordInspection", func() {
		ginkgo.It("should record under the context user's identity", func() {
			body := strings.NewReader(`{"asset_tag":"RAIL-2024-0042","condition":"good"}`)
			req := authed(httptest.NewRequest(http.MethodPost, "/inspections", body))
			rec := httptest.NewRecorder()

			handler.RecordInspection(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))
			gomega.Expect(service.inspectorID).To(gomega.Equal("demo_inspector"))
			gomega.Expect(service.recorded.AssetTag).To(gomega.Equal("RAIL-2024-0042"))
		})

		ginkgo.It("should reject a request without a context user", func() {
			req := httptest.NewRequest(http.MethodPost, "/inspections", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()

			handler.RecordInspection(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(service.recorded).To(gomega.BeNil())
		})
	})

	ginkgo.Describe("ListInspections", func() {
		ginkgo.It("should pass the context user's permissions to the service", func() {
			req := authed(httptest.NewRequest(http.MethodGet, "/inspections", nil))
			rec := httptest.NewRecorder()

			handler.ListInspections(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(service.listUserID).To(gomega.Equal("demo_inspector"))
			gomega.Expect(service.listPerms).To(gomega.ContainElement(rbac.PermInspectionsRecord))
		})

		ginkgo.It("should reject a request without a context user", func() {
			req := httptest.NewRequest(http.MethodGet, "/inspections", nil)
			rec := httptest.NewRecorder()

			handler.ListInspections(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})
