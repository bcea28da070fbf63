package analytics

import (
	"fmt"
	"time"

	"github.com/jhoicas/stock-analytics/internal/domain"
)

// DateLayout formato de fecha calendario usado en buckets y parámetros.
const DateLayout = "2006-01-02"

var shortMonthNames = [...]string{
	"Ene", "Feb", "Mar", "Abr", "May", "Jun",
	"Jul", "Ago", "Sep", "Oct", "Nov", "Dic",
}

// MonthRange devuelve el primer y el último instante del mes en loc.
// El fin es 23:59:59 del último día (sin fracción de segundo) y ambos extremos son inclusivos.
func MonthRange(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// DaysIn número de días del mes (considera años bisiestos).
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ShortMonthName etiqueta corta legible del mes, ej: "Mar".
func ShortMonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return shortMonthNames[month-1]
}

// ParsePeriod convierte los strings de fecha (YYYY-MM-DD) en un rango inclusivo expresado en loc.
// Por defecto el rango va del primer día del mes de now hasta el final del día de now.
// to se extiende hasta las 23:59:59 de ese día. Entradas mal formadas envuelven domain.ErrInvalidInput.
func ParsePeriod(fromStr, toStr string, now time.Time, loc *time.Location) (from, to time.Time, err error) {
	if loc == nil {
		loc = time.UTC
	}
	now = now.In(loc)

	if toStr == "" {
		to = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		to, err = time.ParseInLocation(DateLayout, toStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: to inválido %q", domain.ErrInvalidInput, toStr)
		}
	}
	// inclusive hasta el final del día; time.Date y no Add para no correrse en días con cambio de horario
	to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, loc)

	if fromStr == "" {
		// Primer día del mes actual
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		from, err = time.ParseInLocation(DateLayout, fromStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: from inválido %q", domain.ErrInvalidInput, fromStr)
		}
	}

	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from no puede ser posterior a to", domain.ErrInvalidInput)
	}
	return from, to, nil
}
