package scheduling

import (
	"context"
	"time"

	"github.com/michaelgigihub/dental-clinic-api/internal/models"
)

// Mensagens retornadas quando a clínica não atende no horário pedido.
const (
	ReasonNotOpenThisDay = "Clínica não abre neste dia."
	ReasonClosedThisDay  = "Clínica fechada neste dia."
	ReasonClosedOnDate   = "Clínica fechada nesta data."
)

// DayWindow é a janela de atendimento de um dia, no formato "15:04".
type DayWindow struct {
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
}

// OpenStatus é a resposta do calendário para "a clínica está aberta em T?".
type OpenStatus struct {
	Open   bool
	Reason string
	Window *DayWindow
}

// Calendar é a fonte única de verdade sobre o expediente da clínica.
// Implementações buscam o expediente semanal e as exceções de fechamento
// e delegam a decisão a ResolveOpenStatus.
type Calendar interface {
	IsOpenAt(ctx context.Context, at time.Time) (OpenStatus, error)
}

// ResolveOpenStatus decide se a clínica atende, dado o expediente do dia
// (nil quando não configurado) e a exceção da data (nil quando não há).
//
// Dias sem configuração são sempre fechados: um dia não configurado
// jamais admite agendamento.
func ResolveOpenStatus(
	day *models.ClinicDaySchedule,
	exc *models.ClosureException,
) OpenStatus {

	if day == nil {
		return OpenStatus{Open: false, Reason: ReasonNotOpenThisDay}
	}

	if day.IsClosed || day.OpenTime == nil || day.CloseTime == nil {
		return OpenStatus{Open: false, Reason: ReasonClosedThisDay}
	}

	if exc != nil && exc.IsClosed {
		reason := exc.Reason
		if reason == "" {
			reason = ReasonClosedOnDate
		}
		return OpenStatus{Open: false, Reason: reason}
	}

	return OpenStatus{
		Open: true,
		Window: &DayWindow{
			OpenTime:  *day.OpenTime,
			CloseTime: *day.CloseTime,
		},
	}
}

// WithinWindow verifica se o horário de `at` cai dentro da janela,
// intervalo semiaberto [open, close): agendar exatamente no horário de
// fechamento não é permitido.
func WithinWindow(at time.Time, w DayWindow) bool {
	open := AtClock(at, w.OpenTime)
	close := AtClock(at, w.CloseTime)
	return !at.Before(open) && at.Before(close)
}

// AtClock ancora um horário "15:04" na data (e localidade) de `day`.
func AtClock(day time.Time, hm string) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		t.Hour(), t.Minute(), 0, 0,
		day.Location(),
	)
}

// ISOWeekday converte o weekday do Go (domingo = 0) para ISO-8601
// (segunda = 1 ... domingo = 7).
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
