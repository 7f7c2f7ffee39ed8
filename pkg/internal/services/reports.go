package services

import (
	"context"
	"fmt"

	"github.com/diirtv/stations/pkg/internal/database"
	"github.com/diirtv/stations/pkg/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

type ReportPublishInput struct {
	AuthenticityInput
	SubmittedByID string `validate:"required"`
	PublishID     string `validate:"required"`
	Reason        string `validate:"required"`
}

// ReportPublish records a report. Reporting the same publish for the same reason twice
// keeps a single row.
func ReportPublish(ctx context.Context, cred Credentials, in ReportPublishInput) (models.Report, error) {
	var report models.Report
	if _, _, err := AuthorizeStation(ctx, cred, in.AuthenticityInput, in.SubmittedByID); err != nil {
		return report, err
	}
	if !lo.Contains(models.ReportReasons, in.Reason) {
		return report, ErrBadUserInput(fmt.Sprintf("unknown report reason %q", in.Reason))
	}
	if _, err := GetPublishWithID(ctx, in.PublishID); err != nil {
		return report, err
	}

	report = models.Report{SubmittedByID: in.SubmittedByID, PublishID: in.PublishID, Reason: in.Reason}
	tx := database.C.WithContext(ctx)
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&report).Error; err != nil {
		return report, fmt.Errorf("unable to create report: %v", err)
	}
	if err := tx.Where("submitted_by_id = ? AND publish_id = ? AND reason = ?", in.SubmittedByID, in.PublishID, in.Reason).
		First(&report).Error; err != nil {
		return report, fmt.Errorf("unable to get report: %v", err)
	}
	return report, nil
}
