package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nerdjerry/ai-projects/internal/adapter/llm"
	"github.com/nerdjerry/ai-projects/internal/adapter/store"
	"github.com/nerdjerry/ai-projects/internal/usecase"
)

var (
	chatMessage     string
	chatShowHistory bool
	chatClear       bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with a model that remembers past conversations",
	Long: `Chat with the model. The conversation is stored locally, so the model
remembers what you told it across sessions. Without -m the command
starts an interactive session.

Examples:
  ai-projects chat
  ai-projects chat -m "What did I say my name was?"
  ai-projects chat --history
  ai-projects chat --clear`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "send one message and exit")
	chatCmd.Flags().BoolVar(&chatShowHistory, "history", false, "print the stored conversation and exit")
	chatCmd.Flags().BoolVar(&chatClear, "clear", false, "delete the stored conversation and exit")
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if err := ensureStateDir(); err != nil {
		return err
	}
	st, err := store.NewBoltStore(cfg.HistoryDBPath(GetRootDir()))
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer st.Close()

	if chatClear {
		if err := st.ClearMessages(); err != nil {
			return err
		}
		fmt.Println("Conversation history cleared.")
		return nil
	}

	if chatShowHistory {
		msgs, err := st.ListMessages()
		if err != nil {
			return err
		}
		if len(msgs) == 0 {
			fmt.Println("No conversation history yet.")
			return nil
		}
		for _, m := range msgs {
			fmt.Printf("[%s] %s: %s\n", m.Timestamp.Format("2006-01-02 15:04"), m.Role, m.Content)
		}
		return nil
	}

	model, err := llm.NewOpenAIClient(cfg.OpenAI.APIKeyEnv, cfg.OpenAI.ChatModel, cfg.OpenAI.BaseURL, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)
	if err != nil {
		return err
	}
	chat := usecase.NewChatService(model, st, cfg.Memory.ContextWindow)

	if chatMessage != "" {
		reply, err := chat.Send(chatMessage)
		if err != nil {
			return err
		}
		fmt.Println(reply)
		return nil
	}

	fmt.Println("Chat session started. Type 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		reply, err := chat.Send(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Printf("ai>  %s\n", reply)
	}
	return scanner.Err()
}
