package report

import (
	"fmt"
	"time"

	"github.com/placacenter/pos-api/internal/domain"
)

// Granularidades soportadas por el reporte de ventas.
const (
	GranularityDay     = "day"
	GranularityWeek    = "week"
	GranularityISOWeek = "isoweek"
	GranularityMonth   = "month"
	GranularityYear    = "year"
)

// ValidGranularity indica si la granularidad es una de las soportadas.
func ValidGranularity(g string) bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityISOWeek, GranularityMonth, GranularityYear:
		return true
	}
	return false
}

// PeriodKey deriva la clave de bucket de un timestamp. Todas las claves
// ordenan cronológicamente como texto:
//
//	day     -> 2025-03-17
//	week    -> 2025-03-17 (lunes de la semana)
//	isoweek -> 2025-W12   (año y semana ISO-8601)
//	month   -> 2025-03
//	year    -> 2025
func PeriodKey(granularity string, t time.Time) (string, error) {
	switch granularity {
	case GranularityDay:
		return t.Format("2006-01-02"), nil
	case GranularityWeek:
		return startOfWeek(t).Format("2006-01-02"), nil
	case GranularityISOWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), nil
	case GranularityMonth:
		return t.Format("2006-01"), nil
	case GranularityYear:
		return t.Format("2006"), nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// startOfWeek devuelve el lunes de la semana de t (semana ISO: lunes-domingo).
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // domingo
	}
	day := t.AddDate(0, 0, -(weekday - 1))
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
