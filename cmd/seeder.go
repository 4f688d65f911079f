package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/railtrace/railway-assets/internal/inspection"
	"github.com/railtrace/railway-assets/internal/session"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with the demo credential accounts and a handful of sample inspections.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if _, err := db.Exec("DELETE FROM inspections"); err != nil {
				log.Fatalf("failed to clear inspections: %v", err)
			}
			if _, err := db.Exec("DELETE FROM users"); err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		for _, cred := range session.DemoCredentials() {
			var exists int
			if err := db.Get(&exists, "SELECT 1 FROM users WHERE email = $1", cred.Email); err == nil {
				fmt.Println("user already exists, skipping:", cred.Email)
				continue
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(cred.Password), cfg.Auth.BCryptCost)
			if err != nil {
				log.Fatalf("failed to hash password for %s: %v", cred.Email, err)
			}

			_, err = db.Exec(`INSERT INTO users (id, email, name, password_hash, role, division, section, is_active, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, true, now(), now())`,
				uuid.NewString(), cred.Email, cred.Name, string(hash), cred.Role.String(), cred.Division, cred.Section)
			if err != nil {
				log.Fatalf("failed to insert user %s: %v", cred.Email, err)
			}
			fmt.Println("Seeded user:", cred.Email)
		}

		var inspectorID string
		if err := db.Get(&inspectorID, "SELECT id FROM users WHERE role = 'inspector' LIMIT 1"); err != nil {
			log.Fatalf("failed to find seeded inspector: %v", err)
		}

		samples := []inspection.RecordInspectionDTO{
			{AssetTag: "RAIL-2024-0001", AssetType: "rail_section", Division: "Northern", Section: "Delhi", Condition: inspection.ConditionGood},
			{AssetTag: "RAIL-2024-0002", AssetType: "rail_section", Division: "Northern", Section: "Delhi", Condition: inspection.ConditionFair, Notes: "minor surface wear"},
			{AssetTag: "SLPR-2024-0317", AssetType: "sleeper", Division: "Northern", Section: "Delhi", Condition: inspection.ConditionPoor, Notes: "cracking near fastener"},
		}

		for _, dto := range samples {
			var exists int
			if err := db.Get(&exists, "SELECT 1 FROM inspections WHERE asset_tag = $1", dto.AssetTag); err == nil {
				fmt.Println("inspection already exists, skipping:", dto.AssetTag)
				continue
			}

			record := inspection.NewInspection(inspectorID, "inspector@railway.gov.in", dto)
			_, err := db.Exec(`INSERT INTO inspections
				(asset_tag, asset_type, inspector_id, inspector_name, division, section, condition, notes, status, blockchain_hash, inspected_at, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())`,
				record.AssetTag, record.AssetType, record.InspectorID, record.InspectorName,
				record.Division, record.Section, record.Condition, record.Notes,
				record.Status, record.BlockchainHash, record.InspectedAt)
			if err != nil {
				log.Fatalf("failed to insert inspection %s: %v", dto.AssetTag, err)
			}
			fmt.Println("Seeded inspection:", dto.AssetTag)
		}
	},
}
