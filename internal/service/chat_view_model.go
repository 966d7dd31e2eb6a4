package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"csv-chat/internal/domain"
	"csv-chat/internal/repository"
)

// DefaultConversationID es la conversación activa al abrir la página.
const DefaultConversationID = "1"

// MessageIDGenerator produce ids únicos y crecientes para mensajes nuevos.
type MessageIDGenerator interface {
	NextID() string
}

type uuidV7Generator struct{}

// NewMessageIDGenerator usa UUIDv7: el reloj de milisegundos más la secuencia
// interna de uuid garantizan ids distintos y ordenados aun en llamadas seguidas.
func NewMessageIDGenerator() MessageIDGenerator {
	return uuidV7Generator{}
}

func (uuidV7Generator) NextID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "m" + uuid.NewString()
	}
	return "m" + id.String()
}

type ViewModelOptions struct {
	DefaultConversationID string
	SidebarOpen           bool
	IDs                   MessageIDGenerator
	Now                   func() time.Time
}

// ViewState es una foto coherente del estado derivado para las vistas.
type ViewState struct {
	Conversations        []domain.Conversation
	ActiveConversationID string
	ActiveConversation   *domain.Conversation
	Messages             []domain.Message
	SidebarOpen          bool
}

// ChatViewModel mantiene la selección activa y la copia mutable de mensajes.
// Ninguna operación falla: ids desconocidos degradan a una vista vacía.
type ChatViewModel struct {
	mu            sync.Mutex
	logger        *zap.Logger
	conversations []domain.Conversation
	activeID      string
	messages      map[string][]domain.Message
	sidebarOpen   bool
	ids           MessageIDGenerator
	now           func() time.Time
}

func NewChatViewModel(logger *zap.Logger, seed repository.Snapshot, opts ViewModelOptions) *ChatViewModel {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.DefaultConversationID == "" {
		opts.DefaultConversationID = DefaultConversationID
	}
	if opts.IDs == nil {
		opts.IDs = NewMessageIDGenerator()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	conversations := make([]domain.Conversation, len(seed.Conversations))
	copy(conversations, seed.Conversations)
	messages := make(map[string][]domain.Message, len(seed.Messages))
	for id, seq := range seed.Messages {
		messages[id] = domain.CloneMessages(seq)
	}

	return &ChatViewModel{
		logger:        logger,
		conversations: conversations,
		activeID:      opts.DefaultConversationID,
		messages:      messages,
		sidebarOpen:   opts.SidebarOpen,
		ids:           opts.IDs,
		now:           opts.Now,
	}
}

// SelectConversation cambia la conversación activa sin validar que exista.
func (vm *ChatViewModel) SelectConversation(id string) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.activeID = id
	if _, ok := vm.findLocked(id); !ok {
		vm.logger.Debug("selected unknown conversation", zap.String("conversation_id", id))
	}
}

// SendMessage agrega un mensaje de usuario a la conversación activa. No recorta
// ni valida el contenido: eso es responsabilidad de quien llama.
func (vm *ChatViewModel) SendMessage(content string) domain.Message {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	msg := domain.Message{
		ID:        vm.ids.NextID(),
		Role:      domain.RoleUser,
		Content:   content,
		Timestamp: vm.now().UTC(),
	}
	vm.messages[vm.activeID] = append(vm.messages[vm.activeID], msg)
	vm.logger.Debug("message appended",
		zap.String("conversation_id", vm.activeID),
		zap.String("message_id", msg.ID),
		zap.Int("thread_len", len(vm.messages[vm.activeID])),
	)
	return msg
}

// ToggleSidebar invierte la visibilidad del panel lateral y devuelve el nuevo valor.
func (vm *ChatViewModel) ToggleSidebar() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.sidebarOpen = !vm.sidebarOpen
	return vm.sidebarOpen
}

// NewChat solo registra la intención; crear conversaciones queda fuera de la maqueta.
func (vm *ChatViewModel) NewChat() {
	vm.logger.Info("new chat requested")
}

func (vm *ChatViewModel) ActiveConversationID() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.activeID
}

func (vm *ChatViewModel) ActiveConversation() (domain.Conversation, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.findLocked(vm.activeID)
}

// CurrentMessages devuelve una copia de la secuencia activa (vacía si no hay).
func (vm *ChatViewModel) CurrentMessages() []domain.Message {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return domain.CloneMessages(vm.messages[vm.activeID])
}

// MessagesFor devuelve una copia de la secuencia de cualquier conversación.
func (vm *ChatViewModel) MessagesFor(id string) []domain.Message {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return domain.CloneMessages(vm.messages[id])
}

func (vm *ChatViewModel) Conversations() []domain.Conversation {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	out := make([]domain.Conversation, len(vm.conversations))
	copy(out, vm.conversations)
	return out
}

func (vm *ChatViewModel) SidebarOpen() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.sidebarOpen
}

// State arma la foto completa bajo un solo lock.
func (vm *ChatViewModel) State() ViewState {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	state := ViewState{
		Conversations:        make([]domain.Conversation, len(vm.conversations)),
		ActiveConversationID: vm.activeID,
		Messages:             domain.CloneMessages(vm.messages[vm.activeID]),
		SidebarOpen:          vm.sidebarOpen,
	}
	copy(state.Conversations, vm.conversations)
	if conv, ok := vm.findLocked(vm.activeID); ok {
		state.ActiveConversation = &conv
	}
	return state
}

func (vm *ChatViewModel) findLocked(id string) (domain.Conversation, bool) {
	for _, conv := range vm.conversations {
		if conv.ID == id {
			return conv, true
		}
	}
	return domain.Conversation{}, false
}
