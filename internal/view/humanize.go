package view

import (
	"fmt"
	"math"
	"time"
)

// DaysElapsed es el piso de la diferencia en días entre ts y now.
func DaysElapsed(ts, now time.Time) int {
	return int(math.Floor(float64(now.Sub(ts).Milliseconds()) / dayMillis))
}

// HumanizeTimestamp etiqueta la última actividad en la barra lateral.
// Fechas futuras se muestran como "Today".
func HumanizeTimestamp(ts, now time.Time, dates *DateFormatter) string {
	days := DaysElapsed(ts, now)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return dates.Format(ts)
	}
}
