package repository

import (
	"time"

	"csv-chat/internal/domain"
)

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func atPtr(value string) *time.Time {
	t := at(value)
	return &t
}

func cost(v float64) *float64 {
	return &v
}

// MockConversations devuelve las conversaciones de ejemplo de la maqueta.
func MockConversations() []domain.Conversation {
	return []domain.Conversation{
		{
			ID:          "1",
			Title:       "Food Spending Analysis",
			Timestamp:   at("2025-01-18T10:30:00"),
			CSVStatus:   domain.CSVStatusActive,
			CSVExpiry:   atPtr("2025-01-25T10:30:00"),
			CSVFilename: "transactions.csv",
		},
		{
			ID:          "2",
			Title:       "Q4 Sales Report",
			Timestamp:   at("2025-01-17T15:20:00"),
			CSVStatus:   domain.CSVStatusExpired,
			CSVExpiry:   atPtr("2025-01-10T15:20:00"),
			CSVFilename: "sales_q4.csv",
		},
		{
			ID:          "3",
			Title:       "Customer Demographics",
			Timestamp:   at("2025-01-16T09:00:00"),
			CSVStatus:   domain.CSVStatusActive,
			CSVExpiry:   atPtr("2025-01-23T09:00:00"),
			CSVFilename: "customers.csv",
		},
	}
}

// MockMessages devuelve los mensajes de ejemplo agrupados por conversación.
func MockMessages() map[string][]domain.Message {
	return map[string][]domain.Message{
		"1": {
			{ID: "m1", Role: domain.RoleUser, Content: "How much did I spend on food last month?", Timestamp: at("2025-01-18T10:31:00")},
			{ID: "m2", Role: domain.RoleAssistant, Content: "You spent ₹33,468.31 on food last month.", Timestamp: at("2025-01-18T10:31:05"), Cost: cost(0.0012)},
			{ID: "m3", Role: domain.RoleUser, Content: "Show me a chart of spending by category", Timestamp: at("2025-01-18T10:32:00")},
			{ID: "m4", Role: domain.RoleAssistant, Content: "Here is your spending breakdown by category", Timestamp: at("2025-01-18T10:32:10"), Cost: cost(0.0024), HasPlot: true},
		},
		"2": {
			{ID: "m5", Role: domain.RoleUser, Content: "What were the top selling products?", Timestamp: at("2025-01-17T15:21:00")},
			{ID: "m6", Role: domain.RoleAssistant, Content: "The top 3 selling products were: Product A ($12,450), Product B ($9,230), and Product C ($7,890).", Timestamp: at("2025-01-17T15:21:08"), Cost: cost(0.0015)},
		},
		"3": {},
	}
}
