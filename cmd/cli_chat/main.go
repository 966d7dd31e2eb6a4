package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"csv-chat/internal/app"
	"csv-chat/internal/config"
	"csv-chat/internal/service"
	"csv-chat/internal/view"
)

const helpText = `Comandos:
  /list         muestra la conversación actual con la barra lateral
  /open <id>    selecciona una conversación
  /sidebar      muestra u oculta la barra lateral
  /new          nueva conversación (no disponible en la maqueta)
  /help         esta ayuda
  /quit         salir
Cualquier otra línea se envía como mensaje.
`

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	seed, err := app.LoadSeed(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("cargar semilla: %v", err)
	}

	vm := service.NewChatViewModel(logger, seed, service.ViewModelOptions{
		DefaultConversationID: cfg.DefaultConversationID,
		SidebarOpen:           cfg.SidebarOpen,
	})

	fmt.Print(helpText)
	if err := runREPL(os.Stdin, os.Stdout, vm, view.NewDateFormatter(cfg.DateLocale), time.Now); err != nil {
		log.Fatal(err)
	}
}

// runREPL lee intenciones línea a línea y vuelve a imprimir la vista tras cada una.
func runREPL(in io.Reader, out io.Writer, vm *service.ChatViewModel, dates *view.DateFormatter, now func() time.Time) error {
	reader := bufio.NewReader(in)
	render := func() error {
		return view.RenderText(out, view.BuildChatPage(vm.State(), now(), dates))
	}

	if err := render(); err != nil {
		return err
	}
	for {
		fmt.Fprint(out, "> ")
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		done := err == io.EOF

		cmd := strings.TrimSpace(line)
		switch {
		case cmd == "":
			// Igual que el compositor: nada que enviar.
		case cmd == "/quit":
			return nil
		case cmd == "/help":
			fmt.Fprint(out, helpText)
		case cmd == "/list":
			if err := render(); err != nil {
				return err
			}
		case cmd == "/sidebar":
			vm.ToggleSidebar()
			if err := render(); err != nil {
				return err
			}
		case cmd == "/new":
			vm.NewChat()
			fmt.Fprintln(out, "Nueva conversación no disponible todavía.")
		case cmd == "/open" || strings.HasPrefix(cmd, "/open "):
			id := strings.TrimSpace(strings.TrimPrefix(cmd, "/open"))
			vm.SelectConversation(id)
			if err := render(); err != nil {
				return err
			}
		default:
			vm.SendMessage(strings.TrimRight(line, "\r\n"))
			if err := render(); err != nil {
				return err
			}
		}

		if done {
			return nil
		}
	}
}
