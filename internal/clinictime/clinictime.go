package clinictime

import (
	"sync"
	"time"
)

// A clínica opera em um único fuso horário; todos os horários do sistema
// são interpretados nele. Configurado uma vez no boot via Init.
const DefaultTimezone = "America/Sao_Paulo"

var (
	mu  sync.RWMutex
	loc = mustLoad(DefaultTimezone)
)

func mustLoad(tz string) *time.Location {
	l, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return l
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Init define o fuso da clínica. Valores inválidos mantêm o padrão.
func Init(tz string) {
	if !IsValid(tz) {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	loc = mustLoad(tz)
}

func Location() *time.Location {
	mu.RLock()
	defer mu.RUnlock()
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, Location())
}

func ParseDateTime(dateStr, timeStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		Location(),
	)
}
