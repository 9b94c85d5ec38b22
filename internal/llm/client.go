/**
* Name: 			client.go
* Description: 		Hugging Face Router(OpenAI 호환) 멀티모달 모델 호출
* Workflow: 		텍스트 / 이미지 URL / 이미지 바이트 → Chat Completion → 텍스트 응답
 */
package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	modelName = "moonshotai/Kimi-K2.5"

	// 응답 길이 상한 및 샘플링 온도 기본값
	defaultMaxTokens   = 800
	defaultTemperature = 0.85
)

// Client는 멀티모달 모델에 대한 호출을 감싼다.
type Client struct {
	api *openai.Client
}

// NewClient는 OpenAI 호환 엔드포인트용 클라이언트를 생성한다.
func NewClient(apiKey, baseURL string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg)}
}

// GenerateFromText는 텍스트 프롬프트만으로 응답을 생성한다.
func (c *Client) GenerateFromText(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}
	return c.complete(ctx, req)
}

// GenerateFromImageURL은 원격 이미지 URL과 지시문으로 응답을 생성한다.
func (c *Client) GenerateFromImageURL(ctx context.Context, imageURL, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}
	return c.complete(ctx, req)
}

// GenerateFromImageBytes는 이미지 바이트를 base64 데이터 URL로 인라인 전송한다.
// Notice: 실제 포맷과 무관하게 jpeg로 전송함 (업로드 경로와 동일한 동작)
func (c *Client) GenerateFromImageBytes(ctx context.Context, image []byte, prompt string) (string, error) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)
	return c.GenerateFromImageURL(ctx, dataURL, prompt)
}

func (c *Client) complete(ctx context.Context, req openai.ChatCompletionRequest) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
