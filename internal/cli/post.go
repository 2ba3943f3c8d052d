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
	postStyle     string
	postMaxLength int
	postList      bool
	postYes       bool
)

var postCmd = &cobra.Command{
	Use:   "post [topic]",
	Short: "Draft a social media post with an AI safety review",
	Long: `Generate a social media post about a topic, run it past an AI reviewer,
and save it only after you approve it. Nothing is published anywhere;
approved posts are stored locally.

Examples:
  ai-projects post "our new release" --style professional
  ai-projects post --list`,
	Args: cobra.ArbitraryArgs,
	RunE: runPost,
}

func init() {
	rootCmd.AddCommand(postCmd)
	postCmd.Flags().StringVarP(&postStyle, "style", "s", "", fmt.Sprintf("post style: %s (default from config)", strings.Join(usecase.Styles(), ", ")))
	postCmd.Flags().IntVar(&postMaxLength, "max-length", 0, "maximum post length in characters (default from config)")
	postCmd.Flags().BoolVar(&postList, "list", false, "list approved posts and exit")
	postCmd.Flags().BoolVarP(&postYes, "yes", "y", false, "approve without prompting")
}

func runPost(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	if err := ensureStateDir(); err != nil {
		return err
	}
	st, err := store.NewBoltStore(cfg.HistoryDBPath(GetRootDir()))
	if err != nil {
		return fmt.Errorf("failed to open post store: %w", err)
	}
	defer st.Close()

	if postList {
		posts, err := st.ListPosts()
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Println("No approved posts yet.")
			return nil
		}
		for i, p := range posts {
			fmt.Printf("--- [%d] %s (%s, %s) ---\n%s\n\n",
				i+1, p.Topic, p.Style, p.CreatedAt.Format("2006-01-02 15:04"), p.Text)
		}
		return nil
	}

	topic := strings.TrimSpace(strings.Join(args, " "))
	if topic == "" {
		return fmt.Errorf("topic is required (or use --list)")
	}

	generator, err := llm.NewOpenAIClient(cfg.OpenAI.APIKeyEnv, cfg.OpenAI.ChatModel, cfg.OpenAI.BaseURL, cfg.OpenAI.Temperature, cfg.OpenAI.MaxTokens)
	if err != nil {
		return err
	}
	// The reviewer runs cold so its verdicts stay consistent.
	reviewer := generator.WithTemperature(0.2)

	social := usecase.NewSocialService(generator, reviewer, st)

	style := cfg.Social.Style
	if postStyle != "" {
		style = postStyle
	}
	maxLength := cfg.Social.MaxLength
	if postMaxLength > 0 {
		maxLength = postMaxLength
	}

	fmt.Printf("Generating a %s post about: %s\n\n", style, topic)
	post, err := social.GeneratePost(topic, style, maxLength)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	fmt.Printf("Draft (%d characters):\n%s\n\n", len(post.Text), post.Text)

	fmt.Println("Reviewing...")
	review, err := social.ReviewPost(post)
	if err != nil {
		return fmt.Errorf("review failed: %w", err)
	}

	if review.Approved {
		fmt.Println("Reviewer: APPROVED")
	} else {
		fmt.Println("Reviewer flagged the draft:")
		for _, issue := range review.Issues {
			fmt.Printf("  - %s\n", issue)
		}
	}

	if !postYes && !confirm("Save this post?") {
		fmt.Println("Discarded.")
		return nil
	}

	if err := social.SaveApproved(post); err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	fmt.Println("Saved.")
	return nil
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
