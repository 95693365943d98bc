// Package scheduler runs the nightly inspection sweep: vehicles and
// equipment whose periodic inspection date has passed get flagged, and
// department management is notified by email.
package scheduler

import (
	"context"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/vzo-kneginec/fire-brigade-api/databases"
	templates "github.com/vzo-kneginec/fire-brigade-api/templates/html"
)

var managementRoles = []string{"predsjednik", "zapovjednik", "zamjenik_zapovjednika"}

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron *cron.Cron
	VDB  databases.VehicleDatabase
	EDB  databases.EquipmentDatabase
	UDB  databases.UserDatabase
}

// New creates a new scheduler instance
func New(vdb databases.VehicleDatabase, edb databases.EquipmentDatabase, udb databases.UserDatabase) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
		VDB:  vdb,
		EDB:  edb,
		UDB:  udb,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Sweep overdue inspections daily at 5 AM UTC
	_, err := s.cron.AddFunc("0 5 * * *", s.SweepInspections)
	if err != nil {
		zap.S().Errorw("failed to register inspection sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("inspection scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("inspection scheduler stopped")
}

// SweepInspections flags overdue vehicles and equipment and mails the
// affected departments. Exported so an operator can trigger it manually.
func (s *Scheduler) SweepInspections() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	now := time.Now()
	overdueFilter := bson.M{
		"next_inspection":    bson.M{"$ne": nil, "$lt": now},
		"inspection_overdue": false,
	}

	overdueVehicles := make(map[string][]string)
	vehicles, err := s.VDB.Find(ctx, overdueFilter)
	if err != nil {
		zap.S().Errorw("failed to find overdue vehicles", "error", err)
	}
	for _, v := range vehicles {
		if _, err := s.VDB.UpdateOne(ctx, bson.M{"_id": v.ID}, bson.M{"$set": bson.M{"inspection_overdue": true}}); err != nil {
			zap.S().Errorw("failed to flag vehicle", "error", err, "vehicleId", v.ID)
			continue
		}
		overdueVehicles[v.Department] = append(overdueVehicles[v.Department], v.Name)
	}

	overdueEquipment := make(map[string][]string)
	equipment, err := s.EDB.Find(ctx, overdueFilter)
	if err != nil {
		zap.S().Errorw("failed to find overdue equipment", "error", err)
	}
	for _, e := range equipment {
		if _, err := s.EDB.UpdateOne(ctx, bson.M{"_id": e.ID}, bson.M{"$set": bson.M{"inspection_overdue": true}}); err != nil {
			zap.S().Errorw("failed to flag equipment", "error", err, "equipmentId", e.ID)
			continue
		}
		overdueEquipment[e.Department] = append(overdueEquipment[e.Department], e.Name)
	}

	department := make(map[string]bool)
	for d := range overdueVehicles {
		department[d] = true
	}
	for d := range overdueEquipment {
		department[d] = true
	}
	for d := range department {
		s.notifyDepartment(ctx, d, overdueVehicles[d], overdueEquipment[d])
	}

	zap.S().Infow("inspection sweep complete",
		"vehiclesFlagged", len(vehicles),
		"equipmentFlagged", len(equipment),
		"departmentsNotified", len(department),
	)
}

func (s *Scheduler) notifyDepartment(ctx context.Context, department string, vehicles, equipment []string) {
	recipients, err := s.UDB.Find(ctx, bson.M{
		"department": department,
		"role":       bson.M{"$in": managementRoles},
		"is_active":  true,
	})
	if err != nil {
		zap.S().Errorw("failed to find department management", "error", err, "department", department)
		return
	}

	subject := "Istekli pregledi - " + department
	htmlContent := templates.RenderInspectionOverdueEmail(department, vehicles, equipment)
	plainText := "Za vas odjel postoje vozila ili oprema s isteklim pregledom. Provjerite evidenciju."

	for _, u := range recipients {
		if u.Email == "" {
			continue
		}
		if err := s.sendEmail(u.Email, u.FullName, subject, htmlContent, plainText); err != nil {
			zap.S().Errorw("failed to send inspection notice", "error", err, "to", u.Email)
		}
	}
}

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("VZO Kneginec", "no-reply@vzo-kneginec.hr")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", toEmail)
	}
	return nil
}
