package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/tmc/langchaingo/llms"

	"calassist/internal/assistant"
	"calassist/internal/llm"
	"calassist/internal/logging"
)

// maxToolRounds bounds how many times one user turn may loop through
// the model after tool results.
const maxToolRounds = 4

func newChatCmd() *cobra.Command {
	var model string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive assistant session",
		Long: `Starts an interactive session: your messages go to the configured
language model with the calendar tool catalog attached, and the
assistant executes whatever tools the model asks for.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context(), model)
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "override the configured model")
	return cmd
}

func runChat(ctx context.Context, modelOverride string) error {
	logger := setupLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	env, err := buildEnv(ctx, cfg, logger)
	if err != nil {
		return err
	}
	stopRefresher := startRefresher(ctx, cfg, env, logger)
	defer stopRefresher()

	model := cfg.LLM.Model
	if modelOverride != "" {
		model = modelOverride
	}
	adapter, err := llm.NewOpenAIAdapter(model, cfg.LLM.BaseURL)
	if err != nil {
		return err
	}

	registry := assistant.NewDefaultRegistry()
	router := assistant.NewRouter(registry, env)
	session := &chatSession{
		adapter:  adapter,
		router:   router,
		tools:    llm.ToolDefs(registry.Specs()),
		store:    newMemoryStore(),
		registry: registry,
	}

	fmt.Println("calassist ready. Type a request, or 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		reply, err := session.turn(ctx, input)
		if err != nil {
			logger.Error("turn failed", logging.Err(err))
			fmt.Printf("Sorry, something went wrong: %v\n", err)
			continue
		}
		fmt.Println(reply)
	}
	return scanner.Err()
}

type chatSession struct {
	adapter  llm.Adapter
	router   *assistant.Router
	tools    []llms.Tool
	store    assistant.ConversationStore
	registry *assistant.Registry
}

// turn runs one user message through the model, executing tool calls
// until the model answers in plain text.
func (s *chatSession) turn(ctx context.Context, userMessage string) (string, error) {
	history, err := s.history(userMessage)
	if err != nil {
		return "", err
	}
	_ = s.store.Append(assistant.ConversationEntry{Role: llm.RoleUser, Content: userMessage, At: time.Now()})

	for round := 0; round < maxToolRounds; round++ {
		reply, err := s.adapter.Generate(ctx, history, s.tools)
		if err != nil {
			return "", err
		}

		calls := reply.ToolCalls
		if len(calls) == 0 {
			// Some models write the call out as text instead.
			if parsed := llm.FallbackCalls(reply.Text, s.registry); len(parsed) > 0 {
				return s.executeDirect(ctx, parsed, userMessage)
			}
			_ = s.store.Append(assistant.ConversationEntry{Role: llm.RoleAssistant, Content: reply.Text, At: time.Now()})
			return reply.Text, nil
		}

		history = append(history, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   reply.Text,
			ToolCalls: calls,
		})
		for _, tc := range calls {
			result := s.execute(ctx, llm.DecodeCall(tc), userMessage)
			history = append(history, llm.Message{
				Role:       llm.RoleTool,
				ToolCallID: tc.ID,
				Content:    result,
			})
		}
	}

	return "", fmt.Errorf("model kept requesting tools after %d rounds", maxToolRounds)
}

// execute dispatches one call and renders its outcome for the model.
func (s *chatSession) execute(ctx context.Context, call assistant.Call, userMessage string) string {
	res, err := s.router.Execute(ctx, call, userMessage)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return res.Text
}

// executeDirect runs pseudo-calls parsed from plain text and returns
// their output straight to the user, skipping a summary round.
func (s *chatSession) executeDirect(ctx context.Context, calls []assistant.Call, userMessage string) (string, error) {
	var parts []string
	for _, call := range calls {
		parts = append(parts, s.execute(ctx, call, userMessage))
	}
	out := strings.Join(parts, "\n\n")
	_ = s.store.Append(assistant.ConversationEntry{Role: llm.RoleAssistant, Content: out, At: time.Now()})
	return out, nil
}

// history builds the model conversation: system prompt, stored
// exchanges, current message.
func (s *chatSession) history(userMessage string) ([]llm.Message, error) {
	system := fmt.Sprintf(
		"You are a calendar assistant. Today is %s. Use the provided tools for anything involving the calendar or email drafts; never invent event data. Resolve relative dates against today's date.",
		time.Now().Format("Monday, January 2, 2006"))

	messages := []llm.Message{{Role: llm.RoleSystem, Content: system}}

	entries, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		messages = append(messages, llm.Message{Role: e.Role, Content: e.Content})
	}

	return append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage}), nil
}

// memoryStore keeps the conversation for the lifetime of the session.
type memoryStore struct {
	mu      sync.Mutex
	entries []assistant.ConversationEntry
}

func newMemoryStore() *memoryStore {
	return &memoryStore{}
}

func (m *memoryStore) Append(entry assistant.ConversationEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryStore) Load() ([]assistant.ConversationEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]assistant.ConversationEntry(nil), m.entries...), nil
}

func (m *memoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}
