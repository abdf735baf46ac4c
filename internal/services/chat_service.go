package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/study-planner-api/internal/constants"
)

// ChatMessage is one conversational turn relayed to the completion API.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatConfig configures the OpenAI compatible upstream.
type ChatConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// ChatService relays study bot conversations to an OpenAI compatible
// chat completion endpoint. Upstream failures never reach the caller.
type ChatService struct {
	client *openai.Client
	model  string
	log    *logrus.Logger
}

func NewChatService(cfg ChatConfig, log *logrus.Logger) *ChatService {
	svc := &ChatService{
		model: cfg.Model,
		log:   log,
	}
	if svc.model == "" {
		svc.model = constants.DefaultChatModel
	}
	if cfg.APIKey == "" {
		return svc
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultChatTimeout
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = constants.DefaultChatBaseURL
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	svc.client = openai.NewClientWithConfig(clientConfig)
	return svc
}

// Relay forwards messages verbatim and returns the first completion trimmed.
// Only an empty conversation is reported as an error; any upstream problem is
// logged and replaced by constants.ChatFallbackReply.
func (s *ChatService) Relay(ctx context.Context, messages []ChatMessage) (string, error) {
	if len(messages) == 0 {
		return "", ErrEmptyConversation
	}

	if s.client == nil {
		s.log.Warn("StudyBot called without CHAT_API_KEY configured")
		return constants.ChatFallbackReply, nil
	}

	request := openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, m := range messages {
		request.Messages[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	resp, err := s.client.CreateChatCompletion(ctx, request)
	if err != nil {
		s.log.WithError(err).WithField("model", s.model).Error("StudyBot upstream call failed")
		return constants.ChatFallbackReply, nil
	}

	if len(resp.Choices) == 0 {
		s.log.WithField("model", s.model).Error("StudyBot upstream returned no choices")
		return constants.ChatFallbackReply, nil
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		s.log.WithField("model", s.model).Error("StudyBot upstream returned an empty reply")
		return constants.ChatFallbackReply, nil
	}

	return reply, nil
}
