package schedule

// Overlaps testa interseção de dois intervalos meio-abertos [aStart, aEnd)
// e [bStart, bEnd). É o único predicado de sobreposição do motor: os
// validadores de profissional e de cliente usam exatamente este teste.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// Conflict descreve o que bloqueou um candidato. StaffName e ServiceName
// vazios significam bloqueio do próprio expediente (almoço ou fechamento),
// sem agendamento envolvido.
type Conflict struct {
	StaffName   string
	ServiceName string
	Period      Period
}

// TimeRange formata o intervalo do conflito para mensagens ao usuário.
func (c *Conflict) TimeRange() string {
	return FormatClock(c.Period.Start) + " - " + FormatClock(c.Period.End)
}

// CheckStaffConflict revalida um candidato contra a agenda viva do
// profissional no momento da escrita. Nunca confia na lista de horários
// renderizada antes: outro agendamento pode ter sido criado no meio
// tempo. Retorna nil quando o candidato está livre.
func CheckStaffConflict(ws WorkSchedule, start, duration int, live []ExistingBooking) *Conflict {
	end := start + duration

	if start < ws.WorkStart || end > ws.WorkEnd {
		return &Conflict{Period: Period{Start: ws.WorkStart, End: ws.WorkEnd}}
	}

	if ws.Lunch != nil && Overlaps(start, end, ws.Lunch.Start, ws.Lunch.End) {
		return &Conflict{Period: *ws.Lunch}
	}

	for _, b := range live {
		if !b.Status.Blocks() || b.Duration <= 0 {
			continue
		}
		p := b.Period()
		if Overlaps(start, end, p.Start, p.End) {
			return &Conflict{
				StaffName:   b.StaffName,
				ServiceName: b.ServiceName,
				Period:      p,
			}
		}
	}

	return nil
}

// CheckClientConflict impede que o mesmo cliente segure dois serviços em
// horários sobrepostos no mesmo dia, com qualquer profissional. Regra de
// negócio independente da agenda do profissional.
func CheckClientConflict(start, duration int, clientBookings []ExistingBooking) *Conflict {
	end := start + duration

	for _, b := range clientBookings {
		if !b.Status.Blocks() || b.Duration <= 0 {
			continue
		}
		p := b.Period()
		if Overlaps(start, end, p.Start, p.End) {
			return &Conflict{
				StaffName:   b.StaffName,
				ServiceName: b.ServiceName,
				Period:      p,
			}
		}
	}

	return nil
}
