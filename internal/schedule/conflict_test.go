package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     int
		want                           bool
	}{
		{name: "candidate starts inside existing", aStart: 630, aEnd: 690, bStart: 600, bEnd: 660, want: true},
		{name: "candidate ends inside existing", aStart: 570, aEnd: 630, bStart: 600, bEnd: 660, want: true},
		{name: "candidate contains existing", aStart: 540, aEnd: 720, bStart: 600, bEnd: 660, want: true},
		{name: "candidate inside existing", aStart: 615, aEnd: 645, bStart: 600, bEnd: 660, want: true},
		{name: "identical intervals", aStart: 600, aEnd: 660, bStart: 600, bEnd: 660, want: true},
		{name: "touching at end does not overlap", aStart: 540, aEnd: 600, bStart: 600, bEnd: 660, want: false},
		{name: "touching at start does not overlap", aStart: 660, aEnd: 720, bStart: 600, bEnd: 660, want: false},
		{name: "disjoint before", aStart: 480, aEnd: 540, bStart: 600, bEnd: 660, want: false},
		{name: "disjoint after", aStart: 720, aEnd: 780, bStart: 600, bEnd: 660, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// O predicado é simétrico.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestCheckStaffConflict(t *testing.T) {
	ws := WorkSchedule{
		WorkStart: 540,
		WorkEnd:   1080,
		Lunch:     &Period{Start: 720, End: 780},
	}

	live := []ExistingBooking{
		{
			StaffName:   "Marina",
			ServiceName: "Corte feminino",
			Start:       600,
			Duration:    60,
			Status:      StatusConfirmed,
		},
		{
			StaffName:   "Marina",
			ServiceName: "Escova",
			Start:       840,
			Duration:    45,
			Status:      StatusCancelled, // não bloqueia
		},
	}

	t.Run("free candidate passes", func(t *testing.T) {
		assert.Nil(t, CheckStaffConflict(ws, 660, 60, live))
	})

	t.Run("overlap with live booking reports details", func(t *testing.T) {
		c := CheckStaffConflict(ws, 630, 60, live)
		require.NotNil(t, c)
		assert.Equal(t, "Marina", c.StaffName)
		assert.Equal(t, "Corte feminino", c.ServiceName)
		assert.Equal(t, Period{Start: 600, End: 660}, c.Period)
		assert.Equal(t, "10:00 - 11:00", c.TimeRange())
	})

	t.Run("cancelled booking does not block", func(t *testing.T) {
		assert.Nil(t, CheckStaffConflict(ws, 840, 45, live))
	})

	t.Run("lunch blocks without booking details", func(t *testing.T) {
		c := CheckStaffConflict(ws, 700, 60, live)
		require.NotNil(t, c)
		assert.Empty(t, c.StaffName)
		assert.Equal(t, Period{Start: 720, End: 780}, c.Period)
	})

	t.Run("spilling past closing blocks", func(t *testing.T) {
		c := CheckStaffConflict(ws, 1050, 60, nil)
		require.NotNil(t, c)
		assert.Empty(t, c.StaffName)
	})

	t.Run("starting before opening blocks", func(t *testing.T) {
		require.NotNil(t, CheckStaffConflict(ws, 480, 60, nil))
	})

	t.Run("last slot of the day passes", func(t *testing.T) {
		assert.Nil(t, CheckStaffConflict(ws, 1020, 60, nil))
	})
}

// Cliente com horário confirmado com a profissional A não pode reservar
// horário sobreposto com a profissional B, ainda que a agenda de B
// esteja livre.
func TestCheckClientConflictAcrossStaff(t *testing.T) {
	clientDay := []ExistingBooking{
		{
			StaffName:   "Ana",
			ServiceName: "Manicure",
			ClientID:    7,
			Start:       600, // 10:00-11:00
			Duration:    60,
			Status:      StatusConfirmed,
		},
	}

	// Agenda da profissional B livre: o validador de profissional aprova.
	wsB := WorkSchedule{WorkStart: 540, WorkEnd: 1080}
	assert.Nil(t, CheckStaffConflict(wsB, 630, 45, nil))

	// Mas o validador de cliente barra 10:30-11:15.
	c := CheckClientConflict(630, 45, clientDay)
	require.NotNil(t, c)
	assert.Equal(t, "Ana", c.StaffName)
	assert.Equal(t, "Manicure", c.ServiceName)
	assert.Equal(t, "10:00 - 11:00", c.TimeRange())
}

func TestCheckClientConflictCases(t *testing.T) {
	existing := []ExistingBooking{
		{StaffName: "Ana", ServiceName: "Manicure", Start: 600, Duration: 60, Status: StatusPending},
	}

	tests := []struct {
		name     string
		start    int
		duration int
		conflict bool
	}{
		{name: "candidate starts inside existing", start: 630, duration: 60, conflict: true},
		{name: "candidate ends inside existing", start: 570, duration: 60, conflict: true},
		{name: "candidate fully contains existing", start: 570, duration: 120, conflict: true},
		{name: "back to back before", start: 540, duration: 60, conflict: false},
		{name: "back to back after", start: 660, duration: 60, conflict: false},
		{name: "disjoint", start: 900, duration: 30, conflict: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CheckClientConflict(tt.start, tt.duration, existing)
			if tt.conflict {
				assert.NotNil(t, c)
			} else {
				assert.Nil(t, c)
			}
		})
	}
}

func TestCheckClientConflictIgnoresInactive(t *testing.T) {
	existing := []ExistingBooking{
		{Start: 600, Duration: 60, Status: StatusCancelled},
		{Start: 600, Duration: 60, Status: StatusCompleted},
	}

	assert.Nil(t, CheckClientConflict(600, 60, existing))
}
