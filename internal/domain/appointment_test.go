package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobylov03/salon/pkg/types"
)

func makeAppointment(id int64, start, end types.TimeString, status AppointmentStatus) *Appointment {
	return &Appointment{
		ID:        id,
		ClientID:  1,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
}

func TestAppointment_RecomputeEndTime(t *testing.T) {
	appt := &Appointment{
		StartTime: "10:00",
		Services: []ServiceSelection{
			{ServiceID: 1, Title: "Стрижка", Price: 1500, DurationMinutes: 60},
			{ServiceID: 2, Title: "Укладка", Price: 800, DurationMinutes: 30},
		},
	}

	require.NoError(t, appt.RecomputeEndTime())
	assert.Equal(t, types.TimeString("11:30"), appt.EndTime)
	assert.Equal(t, 90, appt.TotalDurationMinutes())
	assert.Equal(t, 2300.0, appt.TotalPrice())

	// Состав не помещается в сутки
	appt.StartTime = "23:30"
	assert.Error(t, appt.RecomputeEndTime())
}

func TestAppointment_CoversSlot(t *testing.T) {
	appt := makeAppointment(1, "10:00", "11:00", StatusConfirmed)

	// Начало включено, конец исключён
	assert.True(t, appt.CoversSlot("10:00"))
	assert.True(t, appt.CoversSlot("10:30"))
	assert.False(t, appt.CoversSlot("11:00"))
	assert.False(t, appt.CoversSlot("09:30"))
}

func TestFindOverlap(t *testing.T) {
	day := []*Appointment{
		makeAppointment(1, "09:00", "10:00", StatusConfirmed),
		makeAppointment(2, "10:00", "11:00", StatusConfirmed),
		makeAppointment(3, "11:00", "12:00", StatusCancelled),
		makeAppointment(4, "14:00", "15:00", StatusPending),
	}

	tests := []struct {
		name      string
		start     types.TimeString
		end       types.TimeString
		excludeID int64
		wantID    int64 // 0 - пересечений нет
	}{
		{name: "inside existing", start: "10:30", end: "11:30", wantID: 2},
		{name: "exact match", start: "09:00", end: "10:00", wantID: 1},
		{name: "spans two", start: "09:30", end: "10:30", wantID: 1},
		{name: "touching boundaries do not overlap", start: "12:00", end: "14:00", wantID: 0},
		{name: "cancelled does not occupy", start: "11:00", end: "12:00", wantID: 0},
		{name: "free gap", start: "12:00", end: "13:00", wantID: 0},
		{name: "exclude self", start: "10:00", end: "11:00", excludeID: 2, wantID: 0},
		{name: "overlap with pending", start: "14:30", end: "16:00", wantID: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindOverlap(day, tt.start, tt.end, tt.excludeID)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestSortByStartTime(t *testing.T) {
	appointments := []*Appointment{
		makeAppointment(3, "15:00", "16:00", StatusConfirmed),
		makeAppointment(1, "09:00", "10:00", StatusConfirmed),
		makeAppointment(2, "12:00", "13:00", StatusConfirmed),
	}

	SortByStartTime(appointments)

	assert.Equal(t, int64(1), appointments[0].ID)
	assert.Equal(t, int64(2), appointments[1].ID)
	assert.Equal(t, int64(3), appointments[2].ID)
}
