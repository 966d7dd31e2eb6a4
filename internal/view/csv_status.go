package view

import (
	"fmt"
	"math"
	"time"

	"csv-chat/internal/domain"
)

const dayMillis = 24 * 60 * 60 * 1000

// CSVStatusView es lo que muestra el indicador de CSV bajo el hilo.
type CSVStatusView struct {
	Visible       bool             `json:"visible"`
	Status        domain.CSVStatus `json:"status,omitempty"`
	Text          string           `json:"text,omitempty"`
	Filename      string           `json:"filename,omitempty"`
	DaysRemaining *int             `json:"days_remaining,omitempty"`
	Action        string           `json:"action,omitempty"`
}

// DaysRemaining redondea hacia arriba la diferencia en días. Un vencimiento
// ya pasado hace menos de un día da 0; más atrás da valores negativos.
func DaysRemaining(expiry, now time.Time) int {
	diff := expiry.Sub(now).Milliseconds()
	return int(math.Ceil(float64(diff) / dayMillis))
}

// ExpiryText arma "Expires in N day(s)" sin pisos ni casos especiales.
func ExpiryText(days int) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("Expires in %d %s", days, unit)
}

// DescribeCSVStatus deriva la vista del indicador a partir del estado guardado.
// Un estado vacío equivale a none; uno desconocido no se muestra.
func DescribeCSVStatus(status domain.CSVStatus, filename string, expiry *time.Time, now time.Time) CSVStatusView {
	switch status {
	case "", domain.CSVStatusNone:
		return CSVStatusView{
			Visible: true,
			Status:  domain.CSVStatusNone,
			Text:    "No CSV uploaded",
			Action:  "Upload CSV",
		}
	case domain.CSVStatusExpired:
		return CSVStatusView{
			Visible: true,
			Status:  domain.CSVStatusExpired,
			Text:    "CSV expired - Re-upload to continue",
			Action:  "Upload CSV",
		}
	case domain.CSVStatusActive:
		v := CSVStatusView{
			Visible:  true,
			Status:   domain.CSVStatusActive,
			Filename: filename,
			Text:     "Expiry unknown",
			Action:   "Replace",
		}
		if expiry != nil {
			days := DaysRemaining(*expiry, now)
			v.DaysRemaining = &days
			v.Text = ExpiryText(days)
		}
		return v
	default:
		return CSVStatusView{}
	}
}
