package inspection

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"gorm.io/gorm"

	inspectionDatamodel "github.com/railtrace/railway-assets/internal/core/datamodel/inspection"
	"github.com/railtrace/railway-assets/internal/rbac"
)

func TestInspection(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Inspection Module Suite")
}

// Mock repository for testing
type mockInspectionRepository struct {
	records   map[int64]*inspectionDatamodel.Inspection
	nextID    int64
	createErr error
	updateErr error
	lastList  ListFilter
}

func newMockInspectionRepository() *mockInspectionRepository {
	return &mockInspectionRepository{records: map[int64]*inspectionDatamodel.Inspection{}, nextID: 1}
}

func (m *mockInspectionRepository) List(filter ListFilter) ([]*inspectionDatamodel.Inspection, error) {
	m.lastList = filter
	var out []*inspectionDatamodel.Inspection
	for _, r := range m.records {
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.Division != "" && r.Division != filter.Division {
			continue
		}
		if filter.InspectorID != "" && r.InspectorID != filter.InspectorID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *mockInspectionRepository) GetByID(id int64) (*inspectionDatamodel.Inspection, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *r
	return &clone, nil
}

func (m *mockInspectionRepository) Create(record *inspectionDatamodel.Inspection) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	record.ID = m.nextID
	m.nextID++
	clone := *record
	m.records[record.ID] = &clone
	return record.ID, nil
}

func (m *mockInspectionRepository) CountByStatus(status string) (int, error) {
	count := 0
	for _, r := range m.records {
		if r.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockInspectionRepository) UpdateStatus(id int64, status, approverID string, processedAt time.Time) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if r, ok := m.records[id]; ok {
		r.Status = status
		r.ApprovedBy = &approverID
		r.ProcessedAt = &processedAt
	}
	return nil
}

var _ = ginkgo.Describe("Inspection Service", func() {
	var (
		repo    *mockInspectionRepository
		service *Service
	)

	approverPerms := rbac.PermissionsForRole(rbac.RoleSrDEN)
	inspectorPerms := rbac.PermissionsForRole(rbac.RoleInspector)

	ginkgo.BeforeEach(func() {
		repo = newMockInspectionRepository()
		service = NewService(repo, slog.Default())
	})

	ginkgo.Describe("Record", func() {
		ginkgo.It("should create a pending record with a display hash", func() {
			inspection, err := service.Record("demo_inspector", "inspector@railway.gov.in", RecordInspectionDTO{
				AssetTag:  "RAIL-2024-0042",
				AssetType: "rail_section",
				Division:  "Northern",
				Section:   "Delhi",
				Condition: ConditionGood,
			})

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(inspection.ID).To(gomega.BeNumerically(">", 0))
			gomega.Expect(inspection.Status).To(gomega.Equal(StatusPendingApproval))
			gomega.Expect(inspection.BlockchainHash).To(gomega.HavePrefix("0x"))
			gomega.Expect(inspection.BlockchainHash).To(gomega.HaveLen(66))
		})

		ginkgo.It("should reject a record without an asset tag", func() {
			_, err := service.Record("demo_inspector", "inspector@railway.gov.in", RecordInspectionDTO{
				Condition: ConditionGood,
			})

			var validationErr ValidationError
			gomega.Expect(errors.As(err, &validationErr)).To(gomega.BeTrue())
		})

		ginkgo.It("should reject an unknown condition", func() {
			_, err := service.Record("demo_inspector", "inspector@railway.gov.in", RecordInspectionDTO{
				AssetTag:  "RAIL-2024-0042",
				Condition: "excellent",
			})

			var validationErr ValidationError
			gomega.Expect(errors.As(err, &validationErr)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("List", func() {
		ginkgo.It("should scope users without the view permission to their own records", func() {
			_, err := service.List(ListFilter{}, []string{rbac.PermInspectionsRecord}, "demo_inspector")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.lastList.InspectorID).To(gomega.Equal("demo_inspector"))
		})

		ginkgo.It("should not scope users holding the view permission", func() {
			_, err := service.List(ListFilter{}, approverPerms, "demo_sr_den")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.lastList.InspectorID).To(gomega.BeEmpty())
		})

		ginkgo.It("should cap the page size", func() {
			_, err := service.List(ListFilter{Limit: 10000}, approverPerms, "demo_sr_den")

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(repo.lastList.Limit).To(gomega.Equal(50))
		})
	})

	ginkgo.Describe("Approve", func() {
		record := func() int64 {
			inspection, err := service.Record("demo_inspector", "inspector@railway.gov.in", RecordInspectionDTO{
				AssetTag:  "RAIL-2024-0042",
				Condition: ConditionFair,
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			return inspection.ID
		}

		ginkgo.It("should approve a pending record", func() {
			id := record()

			gomega.Expect(service.Approve(id, "demo_sr_den", approverPerms)).To(gomega.Succeed())

			stored := repo.records[id]
			gomega.Expect(stored.Status).To(gomega.Equal(StatusApproved))
			gomega.Expect(*stored.ApprovedBy).To(gomega.Equal("demo_sr_den"))
		})

		ginkgo.It("should deny approval without the permission", func() {
			id := record()

			err := service.Approve(id, "demo_inspector", inspectorPerms)

			gomega.Expect(errors.Is(err, ErrUnauthorizedAccess)).To(gomega.BeTrue())
			gomega.Expect(repo.records[id].Status).To(gomega.Equal(StatusPendingApproval))
		})

		ginkgo.It("should refuse to approve twice", func() {
			id := record()
			gomega.Expect(service.Approve(id, "demo_sr_den", approverPerms)).To(gomega.Succeed())

			err := service.Approve(id, "demo_sr_den", approverPerms)
			gomega.Expect(errors.Is(err, ErrInvalidInspectionStatus)).To(gomega.BeTrue())
		})

		ginkgo.It("should report a missing record", func() {
			err := service.Approve(999, "demo_sr_den", approverPerms)
			gomega.Expect(errors.Is(err, ErrInspectionNotFound)).To(gomega.BeTrue())
		})
	})

	ginkgo.Describe("Reject", func() {
		ginkgo.It("should reject a pending record", func() {
			inspection, err := service.Record("demo_inspector", "inspector@railway.gov.in", RecordInspectionDTO{
				AssetTag:  "RAIL-2024-0099",
				Condition: ConditionPoor,
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Reject(inspection.ID, "demo_sr_den", "photos missing", approverPerms)).To(gomega.Succeed())
			gomega.Expect(repo.records[inspection.ID].Status).To(gomega.Equal(StatusRejected))
		})
	})
})
