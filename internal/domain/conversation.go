package domain

import (
	"errors"
	"strings"
	"time"
)

// CSVStatus indica el estado del CSV adjunto a una conversación.
type CSVStatus string

const (
	CSVStatusNone    CSVStatus = "none"
	CSVStatusActive  CSVStatus = "active"
	CSVStatusExpired CSVStatus = "expired"
)

var (
	ErrConversationInvalid = errors.New("conversation invalid")
	ErrCSVFieldsWithoutCSV = errors.New("csv filename or expiry present without csv")
	ErrCSVFieldsMissing    = errors.New("csv filename or expiry missing")
)

type Conversation struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Timestamp   time.Time  `json:"timestamp"`
	CSVStatus   CSVStatus  `json:"csv_status"`
	CSVFilename string     `json:"csv_filename,omitempty"`
	CSVExpiry   *time.Time `json:"csv_expiry,omitempty"`
}

// HasCSV es true cuando la conversación tiene (o tuvo) un CSV asociado.
func (c Conversation) HasCSV() bool {
	return c.CSVStatus == CSVStatusActive || c.CSVStatus == CSVStatusExpired
}

// Validate comprueba el invariante de datos semilla: filename y expiry solo
// existen cuando el estado es active o expired.
func (c Conversation) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrConversationInvalid
	}
	if c.HasCSV() {
		if c.CSVFilename == "" || c.CSVExpiry == nil {
			return ErrCSVFieldsMissing
		}
		return nil
	}
	if c.CSVFilename != "" || c.CSVExpiry != nil {
		return ErrCSVFieldsWithoutCSV
	}
	return nil
}
