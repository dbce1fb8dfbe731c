package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFreeGaps(t *testing.T) {
	ws := WorkSchedule{WorkStart: 540, WorkEnd: 1080} // 09:00-18:00

	tests := []struct {
		name     string
		occupied []Period
		want     []Period
	}{
		{
			name: "empty day is one big gap",
			want: []Period{{Start: 540, End: 1080}},
		},
		{
			name:     "single middle block",
			occupied: []Period{{Start: 720, End: 780}},
			want:     []Period{{Start: 540, End: 720}, {Start: 780, End: 1080}},
		},
		{
			name:     "block at opening",
			occupied: []Period{{Start: 540, End: 600}},
			want:     []Period{{Start: 600, End: 1080}},
		},
		{
			name:     "block at closing",
			occupied: []Period{{Start: 1020, End: 1080}},
			want:     []Period{{Start: 540, End: 1020}},
		},
		{
			name:     "fully occupied day",
			occupied: []Period{{Start: 540, End: 1080}},
			want:     nil,
		},
		{
			name:     "block overhanging opening",
			occupied: []Period{{Start: 480, End: 600}},
			want:     []Period{{Start: 600, End: 1080}},
		},
		{
			name:     "block overhanging closing",
			occupied: []Period{{Start: 1020, End: 1140}},
			want:     []Period{{Start: 540, End: 1020}},
		},
		{
			name:     "block entirely before window",
			occupied: []Period{{Start: 420, End: 480}},
			want:     []Period{{Start: 540, End: 1080}},
		},
		{
			name:     "block entirely after window",
			occupied: []Period{{Start: 1140, End: 1200}},
			want:     []Period{{Start: 540, End: 1080}},
		},
		{
			name: "several blocks leave the complement",
			occupied: []Period{
				{Start: 540, End: 630},
				{Start: 720, End: 780},
				{Start: 900, End: 960},
			},
			want: []Period{
				{Start: 630, End: 720},
				{Start: 780, End: 900},
				{Start: 960, End: 1080},
			},
		},
		{
			name:     "adjacent blocks produce no zero length gap",
			occupied: []Period{{Start: 540, End: 720}, {Start: 720, End: 900}},
			want:     []Period{{Start: 900, End: 1080}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeGaps(ws, tt.occupied)
			assert.Equal(t, tt.want, got)

			for _, g := range got {
				assert.Greater(t, g.End, g.Start)
			}

			// Rodar duas vezes sobre a mesma entrada dá o mesmo resultado.
			assert.Equal(t, got, FreeGaps(ws, tt.occupied))
		})
	}
}

// A união de ocupados (recortados na janela) e livres reconstrói
// exatamente [WorkStart, WorkEnd), sem buracos nem sobreposição.
func TestFreeGapsCoverageInvariant(t *testing.T) {
	ws := WorkSchedule{WorkStart: 540, WorkEnd: 1080}

	cases := [][]Period{
		nil,
		{{Start: 720, End: 780}},
		{{Start: 540, End: 600}, {Start: 660, End: 690}, {Start: 1050, End: 1080}},
		{{Start: 480, End: 570}, {Start: 700, End: 701}, {Start: 1000, End: 1200}},
	}

	for _, occupied := range cases {
		gaps := FreeGaps(ws, occupied)

		covered := make([]bool, ws.WorkEnd-ws.WorkStart)

		mark := func(p Period) {
			for m := p.Start; m < p.End; m++ {
				if m < ws.WorkStart || m >= ws.WorkEnd {
					continue
				}
				idx := m - ws.WorkStart
				assert.False(t, covered[idx], "minute %d covered twice", m)
				covered[idx] = true
			}
		}

		for _, occ := range occupied {
			mark(occ)
		}
		for _, g := range gaps {
			mark(g)
		}

		for i, c := range covered {
			assert.True(t, c, "minute %d uncovered", ws.WorkStart+i)
		}
	}
}
