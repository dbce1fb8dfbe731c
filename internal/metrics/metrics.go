package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_bookings_created_total",
		Help: "Agendamentos criados com sucesso.",
	})

	// kind: staff_conflict | client_conflict
	BookingConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_booking_conflicts_total",
		Help: "Tentativas de agendamento rejeitadas por conflito.",
	}, []string{"kind"})

	AvailabilityRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_availability_requests_total",
		Help: "Consultas de disponibilidade atendidas.",
	})

	AvailabilityCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_availability_cache_hits_total",
		Help: "Consultas de disponibilidade respondidas pelo cache.",
	})
)
