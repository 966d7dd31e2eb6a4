package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ChatTemplate es el nombre del template de la página de chat.
const ChatTemplate = "chat.tmpl"

// HTMLData envuelve la página con datos de presentación extra.
type HTMLData struct {
	Page   ChatPage
	Locale string
}

// Templates parsea los templates embebidos; gin los usa vía SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))
}

// RenderText imprime la página en texto plano para la terminal.
func RenderText(w io.Writer, page ChatPage) error {
	var b strings.Builder

	if page.SidebarOpen {
		b.WriteString("── Conversations ──\n")
		for _, item := range page.Conversations {
			marker := " "
			if item.Active {
				marker = "*"
			}
			fmt.Fprintf(&b, "%s [%s] %s (%s)\n", marker, item.ID, item.Title, item.When)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "== %s ==\n", page.Title)
	if page.Empty != nil {
		fmt.Fprintf(&b, "%s\n%s\n", page.Empty.Title, page.Empty.Hint)
	}
	for _, msg := range page.Messages {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
		if msg.Plot != "" {
			fmt.Fprintf(&b, "    %s\n", msg.Plot)
		}
		if msg.CostText != "" {
			fmt.Fprintf(&b, "    %s\n", msg.CostText)
		}
	}

	if page.CSVStatus.Visible {
		b.WriteString("\n[csv] ")
		if page.CSVStatus.Filename != "" {
			b.WriteString(page.CSVStatus.Filename + " - ")
		}
		fmt.Fprintf(&b, "%s (%s)\n", page.CSVStatus.Text, page.CSVStatus.Action)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
