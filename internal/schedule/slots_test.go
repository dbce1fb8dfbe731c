package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotStarts(slots []Period) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = FormatClock(s.Start)
	}
	return out
}

func generateForDay(t *testing.T, cfg DayConfig, bookings []ExistingBooking, duration int) []Period {
	t.Helper()

	ws, err := Resolve(cfg, nil)
	require.NoError(t, err)

	occupied := BuildOccupied(ws, bookings)
	gaps := FreeGaps(ws, occupied)

	return GenerateSlots(gaps, occupied, duration, ws.SlotInterval, ws)
}

// Dia vazio: 09:00-18:00 com almoço 12:00-13:00, serviço de 60 min em
// grade de 60. O meio-dia não aparece.
func TestGenerateSlotsEmptyDay(t *testing.T) {
	slots := generateForDay(t, DayConfig{
		StartTime:       "09:00",
		EndTime:         "18:00",
		LunchStart:      "12:00",
		LunchEnd:        "13:00",
		SlotIntervalMin: 60,
	}, nil, 60)

	assert.Equal(t, []string{
		"09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00",
	}, slotStarts(slots))
	assert.NotContains(t, slotStarts(slots), "12:00")
}

// Agendamento de 90 min às 09:00: o primeiro início válido depois dele
// é 10:30, seguindo a grade a partir do início do intervalo livre.
func TestGenerateSlotsAfterMorningBooking(t *testing.T) {
	slots := generateForDay(t, DayConfig{
		StartTime:       "09:00",
		EndTime:         "18:00",
		LunchStart:      "12:00",
		LunchEnd:        "13:00",
		SlotIntervalMin: 60,
	}, []ExistingBooking{
		{Start: 540, Duration: 90, Status: StatusConfirmed}, // 09:00-10:30
	}, 60)

	starts := slotStarts(slots)
	assert.Equal(t, "10:30", starts[0])
	assert.NotContains(t, starts, "09:00")
	assert.NotContains(t, starts, "10:00")
	assert.Contains(t, starts, "13:00")
}

// Intervalo livre exatamente do tamanho do serviço rende um único horário,
// no início do intervalo.
func TestGenerateSlotsExactFitGap(t *testing.T) {
	slots := generateForDay(t, DayConfig{
		StartTime:       "09:00",
		EndTime:         "18:00",
		SlotIntervalMin: 60,
	}, []ExistingBooking{
		{Start: 540, Duration: 60, Status: StatusConfirmed},  // 09:00-10:00
		{Start: 660, Duration: 60, Status: StatusConfirmed},  // 11:00-12:00
		{Start: 720, Duration: 360, Status: StatusConfirmed}, // resto do dia
	}, 60)

	assert.Equal(t, []string{"10:00"}, slotStarts(slots))
}

func TestGenerateSlotsGapSmallerThanDuration(t *testing.T) {
	slots := generateForDay(t, DayConfig{
		StartTime:       "09:00",
		EndTime:         "10:30",
		SlotIntervalMin: 30,
	}, []ExistingBooking{
		{Start: 570, Duration: 60, Status: StatusConfirmed}, // sobra 09:00-09:30
	}, 60)

	assert.Empty(t, slots)
}

// Nove agendamentos consecutivos de 60 min cobrindo 09:00-18:00: dia lotado.
func TestGenerateSlotsFullyBookedDay(t *testing.T) {
	var bookings []ExistingBooking
	for i := 0; i < 9; i++ {
		bookings = append(bookings, ExistingBooking{
			Start:    540 + i*60,
			Duration: 60,
			Status:   StatusConfirmed,
		})
	}

	slots := generateForDay(t, DayConfig{
		StartTime:       "09:00",
		EndTime:         "18:00",
		SlotIntervalMin: 60,
	}, bookings, 60)

	assert.Empty(t, slots)
}

// Janela corrida de 9 horas, serviço e grade de 15 min: 36 inícios.
func TestGenerateSlotsUnconstrainedFifteenMinuteGrid(t *testing.T) {
	slots := generateForDay(t, DayConfig{
		StartTime:       "09:00",
		EndTime:         "18:00",
		SlotIntervalMin: 15,
	}, nil, 15)

	assert.Len(t, slots, 36)
}

func TestGenerateSlotsNeverSpillPastClosing(t *testing.T) {
	slots := generateForDay(t, DayConfig{
		StartTime:       "09:00",
		EndTime:         "10:30",
		SlotIntervalMin: 60,
	}, nil, 60)

	// 09:00 cabe; 10:00 terminaria 11:00, depois do fechamento.
	assert.Equal(t, []string{"09:00"}, slotStarts(slots))
}

func TestGenerateSlotsDegenerateInput(t *testing.T) {
	ws := WorkSchedule{WorkStart: 540, WorkEnd: 1080, SlotInterval: 30}
	gaps := []Period{{Start: 540, End: 1080}}

	assert.Nil(t, GenerateSlots(gaps, nil, 0, 30, ws))
	assert.Nil(t, GenerateSlots(gaps, nil, -15, 30, ws))
	assert.Nil(t, GenerateSlots(gaps, nil, 30, 0, ws))
	assert.Nil(t, GenerateSlots(nil, nil, 30, 30, ws))
}

// A função é defensiva: mesmo recebendo um intervalo que não respeita a
// lista de ocupados, nenhum candidato emitido toca período ocupado.
func TestGenerateSlotsDefensiveOccupiedCheck(t *testing.T) {
	ws := WorkSchedule{WorkStart: 540, WorkEnd: 1080, SlotInterval: 60}
	occupied := []Period{{Start: 600, End: 660}} // 10:00-11:00

	// Intervalo "errado" cobrindo o dia inteiro, como se ninguém tivesse
	// subtraído os ocupados.
	slots := GenerateSlots([]Period{{Start: 540, End: 1080}}, occupied, 60, 60, ws)

	for _, s := range slots {
		for _, occ := range occupied {
			assert.False(t, Overlaps(s.Start, s.End, occ.Start, occ.End),
				"slot %s overlaps occupied period", FormatClock(s.Start))
		}
	}
	assert.NotContains(t, slotStarts(slots), "10:00")
}

func TestGenerateSlotsDeduplicatesMergedGapLists(t *testing.T) {
	ws := WorkSchedule{WorkStart: 540, WorkEnd: 1080, SlotInterval: 60}

	// Chamador que fundiu listas de origens diferentes pode repetir o
	// mesmo intervalo; cada início sai uma única vez.
	gaps := []Period{
		{Start: 540, End: 720},
		{Start: 540, End: 720},
	}

	slots := GenerateSlots(gaps, nil, 60, 60, ws)
	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, slotStarts(slots))
}

func TestGenerateSlotsInvariants(t *testing.T) {
	ws, err := Resolve(DayConfig{
		StartTime:       "08:00",
		EndTime:         "19:00",
		LunchStart:      "12:30",
		LunchEnd:        "13:15",
		SlotIntervalMin: 25,
	}, nil)
	require.NoError(t, err)

	bookings := []ExistingBooking{
		{Start: 500, Duration: 45, Status: StatusConfirmed},
		{Start: 615, Duration: 30, Status: StatusPending},
		{Start: 900, Duration: 75, Status: StatusConfirmed},
		{Start: 905, Duration: 20, Status: StatusPending}, // sobreposto de propósito
	}

	occupied := BuildOccupied(ws, bookings)
	gaps := FreeGaps(ws, occupied)
	slots := GenerateSlots(gaps, occupied, 40, ws.SlotInterval, ws)

	// Ordenação estritamente crescente, sem duplicatas.
	for i := 1; i < len(slots); i++ {
		assert.Greater(t, slots[i].Start, slots[i-1].Start)
	}

	for _, s := range slots {
		assert.Equal(t, 40, s.Len())
		assert.GreaterOrEqual(t, s.Start, ws.WorkStart)
		assert.LessOrEqual(t, s.End, ws.WorkEnd)

		// Nenhum candidato toca período ocupado.
		for _, occ := range occupied {
			assert.False(t, Overlaps(s.Start, s.End, occ.Start, occ.End))
		}

		// Cada candidato cabe inteiro em exatamente um intervalo livre.
		containing := 0
		for _, g := range gaps {
			if s.Start >= g.Start && s.End <= g.End {
				containing++
			}
		}
		assert.Equal(t, 1, containing)
	}
}
