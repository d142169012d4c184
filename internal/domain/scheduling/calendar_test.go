package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

func strPtr(s string) *string { return &s }

func TestResolveOpenStatus(t *testing.T) {
	openDay := &models.ClinicDaySchedule{
		Weekday:   1,
		OpenTime:  strPtr("08:00"),
		CloseTime: strPtr("18:00"),
	}

	tests := []struct {
		name       string
		day        *models.ClinicDaySchedule
		exc        *models.ClosureException
		wantOpen   bool
		wantReason string
	}{
		{
			name:       "dia sem configuração é fechado",
			day:        nil,
			wantOpen:   false,
			wantReason: ReasonNotOpenThisDay,
		},
		{
			name:       "dia marcado como fechado",
			day:        &models.ClinicDaySchedule{Weekday: 7, IsClosed: true},
			wantOpen:   false,
			wantReason: ReasonClosedThisDay,
		},
		{
			name:       "dia aberto sem janela configurada",
			day:        &models.ClinicDaySchedule{Weekday: 3, OpenTime: strPtr("08:00")},
			wantOpen:   false,
			wantReason: ReasonClosedThisDay,
		},
		{
			name: "exceção de fechamento com motivo",
			day:  openDay,
			exc: &models.ClosureException{
				Reason:   "Feriado municipal",
				IsClosed: true,
			},
			wantOpen:   false,
			wantReason: "Feriado municipal",
		},
		{
			name:       "exceção de fechamento sem motivo",
			day:        openDay,
			exc:        &models.ClosureException{IsClosed: true},
			wantOpen:   false,
			wantReason: ReasonClosedOnDate,
		},
		{
			name:     "exceção com is_closed falso não fecha o dia",
			day:      openDay,
			exc:      &models.ClosureException{Reason: "Meio período", IsClosed: false},
			wantOpen: true,
		},
		{
			name:     "dia aberto sem exceção",
			day:      openDay,
			wantOpen: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveOpenStatus(tt.day, tt.exc)

			assert.Equal(t, tt.wantOpen, got.Open)
			assert.Equal(t, tt.wantReason, got.Reason)

			if tt.wantOpen {
				if assert.NotNil(t, got.Window) {
					assert.Equal(t, "08:00", got.Window.OpenTime)
					assert.Equal(t, "18:00", got.Window.CloseTime)
				}
			} else {
				assert.Nil(t, got.Window)
			}
		})
	}
}

func TestWithinWindow(t *testing.T) {
	w := DayWindow{OpenTime: "09:00", CloseTime: "17:00"}
	day := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)

	at := func(h, m int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"antes da abertura", at(8, 59), false},
		{"exatamente na abertura", at(9, 0), true},
		{"meio do expediente", at(12, 30), true},
		{"um minuto antes do fechamento", at(16, 59), true},
		{"exatamente no fechamento", at(17, 0), false},
		{"depois do fechamento", at(17, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinWindow(tt.at, w))
		})
	}
}

func TestAtClockKeepsDateAndLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata indisponível")
	}

	day := time.Date(2026, time.March, 10, 23, 45, 0, 0, loc)
	got := AtClock(day, "08:30")

	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, 10, got.Day())
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, loc, got.Location())
}

func TestISOWeekday(t *testing.T) {
	// 2023-01-01 foi um domingo; 2023-01-02, uma segunda.
	sunday := time.Date(2023, time.January, 1, 10, 0, 0, 0, time.UTC)
	monday := time.Date(2023, time.January, 2, 10, 0, 0, 0, time.UTC)
	saturday := time.Date(2023, time.January, 7, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 7, ISOWeekday(sunday))
	assert.Equal(t, 1, ISOWeekday(monday))
	assert.Equal(t, 6, ISOWeekday(saturday))
}
