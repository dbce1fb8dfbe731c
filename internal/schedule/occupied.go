package schedule

import "sort"

// BookingStatus é o status de um agendamento do ponto de vista do motor
// de disponibilidade. Apenas pending e confirmed bloqueiam horário.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Blocks informa se o status participa do cálculo de conflitos.
func (s BookingStatus) Blocks() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ExistingBooking é o recorte de um agendamento já persistido que o
// motor recebe do chamador: minutos do dia, duração e o contexto
// necessário para mensagens de conflito.
type ExistingBooking struct {
	StaffName   string
	ServiceName string
	ClientID    uint
	Start       int
	Duration    int
	Status      BookingStatus
}

// Period retorna o intervalo ocupado pelo agendamento.
func (b ExistingBooking) Period() Period {
	return Period{Start: b.Start, End: b.Start + b.Duration}
}

// BuildOccupied monta a lista ordenada de períodos ocupados do
// profissional no dia: almoço + agendamentos ativos. Períodos que se
// tocam ou se sobrepõem são fundidos, então a saída nunca contém
// sobreposição mesmo com entrada patológica.
func BuildOccupied(ws WorkSchedule, bookings []ExistingBooking) []Period {
	var periods []Period

	if ws.Lunch != nil {
		periods = append(periods, *ws.Lunch)
	}

	for _, b := range bookings {
		if !b.Status.Blocks() || b.Duration <= 0 {
			continue
		}
		periods = append(periods, b.Period())
	}

	if len(periods) == 0 {
		return nil
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Start < periods[j].Start
	})

	merged := periods[:1]
	for _, p := range periods[1:] {
		last := &merged[len(merged)-1]
		if p.Start <= last.End {
			if p.End > last.End {
				last.End = p.End
			}
			continue
		}
		merged = append(merged, p)
	}

	return merged
}
