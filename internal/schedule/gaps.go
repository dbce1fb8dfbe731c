package schedule

// FreeGaps calcula o complemento dos períodos ocupados dentro da janela
// de expediente [WorkStart, WorkEnd). A entrada deve estar ordenada e
// sem sobreposição (saída de BuildOccupied). Intervalos de comprimento
// zero nunca são emitidos.
func FreeGaps(ws WorkSchedule, occupied []Period) []Period {
	var gaps []Period

	cursor := ws.WorkStart

	for _, occ := range occupied {
		if occ.End <= cursor {
			continue
		}
		if occ.Start >= ws.WorkEnd {
			break
		}

		if cursor < occ.Start {
			end := occ.Start
			if end > ws.WorkEnd {
				end = ws.WorkEnd
			}
			if end > cursor {
				gaps = append(gaps, Period{Start: cursor, End: end})
			}
		}

		if occ.End > cursor {
			cursor = occ.End
		}
	}

	if cursor < ws.WorkEnd {
		gaps = append(gaps, Period{Start: cursor, End: ws.WorkEnd})
	}

	return gaps
}
