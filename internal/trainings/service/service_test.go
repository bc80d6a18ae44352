package service

import (
	"testing"

	"kurscrm_backend/internal/trainings/transport"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from, to transport.EnrollmentStatus
		want     bool
	}{
		{transport.StatusPotential, transport.StatusEnrolled, true},
		{transport.StatusPotential, transport.StatusDropped, true},
		{transport.StatusPotential, transport.StatusCompleted, false},
		{transport.StatusEnrolled, transport.StatusCompleted, true},
		{transport.StatusEnrolled, transport.StatusDropped, true},
		{transport.StatusEnrolled, transport.StatusPotential, false},
		{transport.StatusCompleted, transport.StatusEnrolled, false},
		{transport.StatusCompleted, transport.StatusDropped, false},
		{transport.StatusDropped, transport.StatusEnrolled, true},
		{transport.StatusDropped, transport.StatusCompleted, false},
		{transport.StatusEnrolled, transport.StatusEnrolled, true},
	}
	for _, tt := range tests {
		if got := ValidTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("ValidTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
