package view

import (
	"fmt"
	"time"

	"csv-chat/internal/domain"
	"csv-chat/internal/service"
)

const (
	DefaultTitle        = "New Conversation"
	PlotPlaceholder     = "[Plot visualization would appear here]"
	EmptyThreadTitle    = "Start a conversation"
	EmptyThreadHint     = "Upload a CSV file and ask questions about your data"
	ComposerPlaceholder = "Ask me anything about your data..."
	ComposerHint        = "Press Enter to send, Shift+Enter for new line"
)

type ConversationItem struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	When   string `json:"when"`
	Active bool   `json:"active"`
}

type MessageView struct {
	ID        string      `json:"id"`
	Role      domain.Role `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	CostText  string      `json:"cost_text,omitempty"`
	Plot      string      `json:"plot,omitempty"`
}

type EmptyThread struct {
	Title string `json:"title"`
	Hint  string `json:"hint"`
}

type Composer struct {
	Placeholder string `json:"placeholder"`
	Hint        string `json:"hint"`
}

// ChatPage es el modelo completo que renderizan la página HTML, la API JSON y la CLI.
type ChatPage struct {
	ActiveConversationID string             `json:"active_conversation_id"`
	Title                string             `json:"title"`
	SidebarOpen          bool               `json:"sidebar_open"`
	Conversations        []ConversationItem `json:"conversations"`
	Messages             []MessageView      `json:"messages"`
	Empty                *EmptyThread       `json:"empty,omitempty"`
	CSVStatus            CSVStatusView      `json:"csv_status"`
	Composer             Composer           `json:"composer"`
}

// HeaderTitle usa el título de la conversación o el texto por defecto.
func HeaderTitle(conv *domain.Conversation) string {
	if conv == nil || conv.Title == "" {
		return DefaultTitle
	}
	return conv.Title
}

// CostText formatea el costo con cuatro decimales. Un costo cero no se muestra.
func CostText(cost *float64) string {
	if cost == nil || *cost == 0 {
		return ""
	}
	return fmt.Sprintf("Cost: $%.4f", *cost)
}

func NewMessageView(msg domain.Message) MessageView {
	v := MessageView{
		ID:        msg.ID,
		Role:      msg.Role,
		Content:   msg.Content,
		Timestamp: msg.Timestamp,
		CostText:  CostText(msg.Cost),
	}
	if msg.HasPlot {
		v.Plot = PlotPlaceholder
	}
	return v
}

// BuildChatPage deriva el modelo de página desde el estado del ViewModel.
func BuildChatPage(state service.ViewState, now time.Time, dates *DateFormatter) ChatPage {
	page := ChatPage{
		ActiveConversationID: state.ActiveConversationID,
		Title:                HeaderTitle(state.ActiveConversation),
		SidebarOpen:          state.SidebarOpen,
		Conversations:        make([]ConversationItem, 0, len(state.Conversations)),
		Messages:             make([]MessageView, 0, len(state.Messages)),
		Composer: Composer{
			Placeholder: ComposerPlaceholder,
			Hint:        ComposerHint,
		},
	}

	for _, conv := range state.Conversations {
		page.Conversations = append(page.Conversations, ConversationItem{
			ID:     conv.ID,
			Title:  conv.Title,
			When:   HumanizeTimestamp(conv.Timestamp, now, dates),
			Active: conv.ID == state.ActiveConversationID,
		})
	}

	for _, msg := range state.Messages {
		page.Messages = append(page.Messages, NewMessageView(msg))
	}
	if len(page.Messages) == 0 {
		page.Empty = &EmptyThread{Title: EmptyThreadTitle, Hint: EmptyThreadHint}
	}

	if conv := state.ActiveConversation; conv != nil {
		page.CSVStatus = DescribeCSVStatus(conv.CSVStatus, conv.CSVFilename, conv.CSVExpiry, now)
	} else {
		page.CSVStatus = DescribeCSVStatus("", "", nil, now)
	}

	return page
}
