package replygen

import (
	"context"
	"fmt"
	"strings"

	"replyhub/internal/platform/logger"

	openai "github.com/sashabaranov/go-openai"
)

const (
	deepseekBaseURL = "https://api.deepseek.com"
	deepseekModel   = "deepseek-chat"
)

// deepseekPrompt frames the comment for the model. The reply comes back
// ready to post, lowercase and quote-free
const deepseekPrompt = `I have instagram accounts and I recieve comments and they have to replied to
This is a comment I have just recieved %q
Please generate a reply for this, if they have written a statement agree to their statement in a playful way, if they are asking a question then try to answer it, if it is all emoji then reply in an all emoji fashion that are relevant.
Make it conversational if you can without being intrusive or clingy, speak like an indian author who is in their late 20s and use gen z conversational slangs.
If you are confused about the context and unsure what the reply should be then just 3 emojis that are relevant should be the reply.
If the comment contains "@" then they are speaking to someone else, in this case just enter 3 different heart emojis, only make it conversational with them if they are lacking logic while asking a connecting question that might make them feel like we are interested while maintaining empathy.
Make sure you are not rude and mean to anyone. Always reply with warmth and mild humour.
The result should contain only the reply, I will be sending this right away without any changes.
Don't include any "" in the result. and Don't include any capital letters.`

// DeepSeek generates replies through the OpenAI-compatible DeepSeek API
type DeepSeek struct {
	client *openai.Client
	log    logger.Logger
}

// NewDeepSeek builds a DeepSeek generator. baseURL is overridable for tests
func NewDeepSeek(apiKey, baseURL string) *DeepSeek {
	if baseURL == "" {
		baseURL = deepseekBaseURL
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &DeepSeek{
		client: openai.NewClientWithConfig(cfg),
		log:    *logger.Named("deepseek"),
	}
}

// Generate drafts a reply, degrading to FallbackReply on any failure
func (d *DeepSeek) Generate(ctx context.Context, comment, username string) string {
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: deepseekModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: ""},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(deepseekPrompt, comment)},
		},
		MaxTokens:   2048,
		Temperature: 1.0,
	})
	if err != nil {
		d.log.Warn().Err(err).Str("username", username).Msg("deepseek generation failed, using fallback")
		return FallbackReply
	}
	if len(resp.Choices) == 0 {
		d.log.Warn().Str("username", username).Msg("deepseek returned no choices, using fallback")
		return FallbackReply
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return FallbackReply
	}
	return reply
}
