package domain

import "time"

// DashboardMetrics is the aggregate the dashboard renders. Either mapped
// whole from upstream stats or computed whole from the local store; the two
// sources are never merged.
type DashboardMetrics struct {
	TotalUsers              int            `json:"totalUsers"`
	StatusCounts            map[Status]int `json:"statusCounts"`
	MedicalProfessionals    int            `json:"medicalProfessionals"`
	NonMedicalProfessionals int            `json:"nonMedicalProfessionals"`
	NonVerifiedUsers        int            `json:"nonVerifiedUsers"`
	DocumentsPending        int            `json:"documentsPending"`
	DocumentsFlagged        int            `json:"documentsFlagged"`
	UpdatedAt               time.Time      `json:"updatedAt"`
}

// ZeroStatusCounts returns a counts map with every lifecycle state present,
// so JSON consumers always see all four keys.
func ZeroStatusCounts() map[Status]int {
	return map[Status]int{
		StatusPending:     0,
		StatusUnderReview: 0,
		StatusVerified:    0,
		StatusRejected:    0,
	}
}
