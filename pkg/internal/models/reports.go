package models

const (
	ReportReasonAdult      = "adult"
	ReportReasonViolent    = "violent"
	ReportReasonHateful    = "hateful"
	ReportReasonHarassment = "harassment"
	ReportReasonHarmful    = "harmful"
	ReportReasonAbuse      = "abuse"
	ReportReasonTerrorism  = "terrorism"
	ReportReasonSpam       = "spam"
	ReportReasonMislead    = "mislead"
)

var ReportReasons = []string{
	ReportReasonAdult, ReportReasonViolent, ReportReasonHateful, ReportReasonHarassment,
	ReportReasonHarmful, ReportReasonAbuse, ReportReasonTerrorism, ReportReasonSpam,
	ReportReasonMislead,
}

type Report struct {
	BaseModel

	SubmittedByID string `json:"submitted_by_id" gorm:"uniqueIndex:idx_report_triple;size:36"`
	PublishID     string `json:"publish_id" gorm:"uniqueIndex:idx_report_triple;size:36"`
	Reason        string `json:"reason" gorm:"uniqueIndex:idx_report_triple;size:32"`
}
