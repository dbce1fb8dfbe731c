package schedule

// Period é um intervalo meio-aberto [Start, End) em minutos do dia.
type Period struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len retorna a duração do intervalo em minutos.
func (p Period) Len() int {
	return p.End - p.Start
}

const (
	// MinSlotInterval é a granularidade mínima aceita para evitar
	// iteração degenerada com passos muito pequenos.
	MinSlotInterval = 15

	// DefaultSlotInterval é usado quando o profissional não configura
	// um intervalo e oferece zero ou vários serviços.
	DefaultSlotInterval = 15
)

// DayConfig espelha a linha de expediente persistida por dia da semana.
// Horários em "HH:MM"; almoço opcional (ambos vazios ou ambos preenchidos);
// SlotIntervalMin zero significa "não configurado".
type DayConfig struct {
	StartTime       string
	EndTime         string
	LunchStart      string
	LunchEnd        string
	SlotIntervalMin int
}

// WorkSchedule é o expediente efetivo de um profissional em um dia,
// já validado e resolvido para minutos do dia.
type WorkSchedule struct {
	WorkStart    int
	WorkEnd      int
	Lunch        *Period
	SlotInterval int
}

// ConfigError indica expediente mal configurado pelo dono do salão.
// É fatal para o cálculo de horários e deve voltar como erro de
// configuração, nunca como "sem horários".
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid schedule config: " + e.Reason
}

// Resolve valida a configuração bruta do dia e resolve a granularidade.
//
// Regra de granularidade: intervalo explícito vale, com piso de
// MinSlotInterval; sem intervalo explícito, se o profissional oferece
// exatamente uma duração distinta de serviço, a grade alinha nela;
// caso contrário vale DefaultSlotInterval.
func Resolve(cfg DayConfig, serviceDurations []int) (WorkSchedule, error) {
	workStart, err := ParseClock(cfg.StartTime)
	if err != nil {
		return WorkSchedule{}, &ConfigError{Reason: "work start: " + err.Error()}
	}

	workEnd, err := ParseClock(cfg.EndTime)
	if err != nil {
		return WorkSchedule{}, &ConfigError{Reason: "work end: " + err.Error()}
	}

	if workStart >= workEnd {
		return WorkSchedule{}, &ConfigError{Reason: "work start must be before work end"}
	}

	ws := WorkSchedule{
		WorkStart: workStart,
		WorkEnd:   workEnd,
	}

	hasLunchStart := cfg.LunchStart != ""
	hasLunchEnd := cfg.LunchEnd != ""

	if hasLunchStart != hasLunchEnd {
		return WorkSchedule{}, &ConfigError{Reason: "lunch window partially specified"}
	}

	if hasLunchStart {
		lunchStart, err := ParseClock(cfg.LunchStart)
		if err != nil {
			return WorkSchedule{}, &ConfigError{Reason: "lunch start: " + err.Error()}
		}

		lunchEnd, err := ParseClock(cfg.LunchEnd)
		if err != nil {
			return WorkSchedule{}, &ConfigError{Reason: "lunch end: " + err.Error()}
		}

		if lunchStart >= lunchEnd {
			return WorkSchedule{}, &ConfigError{Reason: "lunch start must be before lunch end"}
		}

		if lunchStart < workStart || lunchEnd > workEnd {
			return WorkSchedule{}, &ConfigError{Reason: "lunch window outside work window"}
		}

		ws.Lunch = &Period{Start: lunchStart, End: lunchEnd}
	}

	ws.SlotInterval = resolveInterval(cfg.SlotIntervalMin, serviceDurations)

	return ws, nil
}

func resolveInterval(explicit int, serviceDurations []int) int {
	if explicit > 0 {
		if explicit < MinSlotInterval {
			return MinSlotInterval
		}
		return explicit
	}

	distinct := map[int]bool{}
	for _, d := range serviceDurations {
		if d > 0 {
			distinct[d] = true
		}
	}

	// Um único serviço: a grade alinha exatamente na duração dele,
	// produzindo uma lista de horários mais densa e significativa do
	// que uma grade arbitrária de 15 minutos.
	if len(distinct) == 1 {
		for d := range distinct {
			return d
		}
	}

	return DefaultSlotInterval
}
