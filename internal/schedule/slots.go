package schedule

import "sort"

// GenerateSlots emite os horários candidatos para a duração pedida.
//
// Para cada intervalo livre grande o suficiente, caminha do início do
// intervalo em passos de `interval` e emite o candidato quando ele cabe
// inteiro no intervalo, não passa do fim do expediente e não toca nenhum
// período ocupado. Os dois últimos testes são redundantes quando os
// intervalos vêm de FreeGaps, mas mantêm a função correta se chamada
// com intervalos de outra origem.
func GenerateSlots(gaps []Period, occupied []Period, duration, interval int, ws WorkSchedule) []Period {
	if duration <= 0 || interval <= 0 {
		return nil
	}

	var slots []Period
	seen := map[int]bool{}

	for _, gap := range gaps {
		if gap.Len() < duration {
			continue
		}

		for start := gap.Start; start <= gap.End-duration; start += interval {
			end := start + duration

			if end > gap.End || end > ws.WorkEnd {
				break
			}

			if overlapsAny(start, end, occupied) {
				continue
			}

			if seen[start] {
				continue
			}
			seen[start] = true

			slots = append(slots, Period{Start: start, End: end})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Start < slots[j].Start
	})

	return slots
}

func overlapsAny(start, end int, occupied []Period) bool {
	for _, occ := range occupied {
		if Overlaps(start, end, occ.Start, occ.End) {
			return true
		}
	}
	return false
}
