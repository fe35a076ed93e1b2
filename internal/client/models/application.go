package models

import (
	"fmt"
	"time"

	"github.com/dkozyrev/jobtrack/internal/common"
)

// ApplicationStatus tracks where an application is in the pipeline.
type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusScreening ApplicationStatus = "screening"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusWithdrawn ApplicationStatus = "withdrawn"
)

// ApplicationStatuses lists every valid status, in pipeline order.
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied, StatusScreening, StatusInterview,
	StatusOffer, StatusRejected, StatusAccepted, StatusWithdrawn,
}

// ParseApplicationStatus validates s against the closed status set.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	for _, st := range ApplicationStatuses {
		if ApplicationStatus(s) == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", common.ErrInvalidStatus, s)
}

// Application is one tracked job application, owned by a profile.
type Application struct {
	ID        string
	ProfileID string
	Company   string
	Role      string
	Status    ApplicationStatus
	Link      string
	Notes     string

	// AppliedAt is when the user submitted the application.
	AppliedAt time.Time

	// UpdatedAt is the last local modification time; cloud sync resolves
	// conflicts last-write-wins on this field.
	UpdatedAt time.Time
}
