package plainify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// describePrompt is the fixed captioning instruction sent with every
// image.
const describePrompt = `Please provide a clear, concise description of this image. Focus on:
1. The main subject or content of the image
2. Important visual elements, data, or information shown
3. The type of image (chart, diagram, photo, etc.)
4. Any text or labels visible in the image

Keep the description factual and suitable for AI processing.`

// AzureConfig holds the settings for the Azure OpenAI enrichment
// endpoint. All four fields are required; callers typically read them
// from AZURE_OPENAI_ENDPOINT, AZURE_OPENAI_DEPLOYMENT_NAME,
// AZURE_OPENAI_API_VERSION and AZURE_OPENAI_API_KEY.
type AzureConfig struct {
	Endpoint   string
	Deployment string
	APIVersion string
	APIKey     string
}

// AzureDescriber implements Describer against an Azure OpenAI
// chat-completions deployment with vision support.
type AzureDescriber struct {
	cfg        AzureConfig
	httpClient *http.Client
	maxRetries int
}

// NewAzureDescriber validates the configuration and returns a describer
// with a 30 second request timeout.
func NewAzureDescriber(cfg AzureConfig) (*AzureDescriber, error) {
	if cfg.Endpoint == "" || cfg.Deployment == "" || cfg.APIVersion == "" {
		return nil, fmt.Errorf("azure describer: endpoint, deployment and API version are all required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("azure describer: API key not set")
	}
	return &AzureDescriber{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxRetries: 3,
	}, nil
}

type chatImageURL struct {
	URL string `json:"url"`
}

type chatContent struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *chatImageURL `json:"image_url,omitempty"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *chatError `json:"error,omitempty"`
}

type chatError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Describe sends the image as a base64 data URI to the chat-completions
// deployment and returns the model's caption. Transport errors are
// retried; authentication and malformed-response failures are not.
func (d *AzureDescriber) Describe(ctx context.Context, img []byte, name string) (string, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s",
		mimetype.Detect(img).String(),
		base64.StdEncoding.EncodeToString(img))

	req := chatRequest{
		Messages: []chatMessage{{
			Role: "user",
			Content: []chatContent{
				{Type: "text", Text: describePrompt},
				{Type: "image_url", ImageURL: &chatImageURL{URL: dataURI}},
			},
		}},
		Temperature: 0.1,
		MaxTokens:   500,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", &DescriptionError{Name: name, Reason: DescribeBadResponse, Err: err}
	}

	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(d.cfg.Endpoint, "/"),
		url.PathEscape(d.cfg.Deployment),
		url.QueryEscape(d.cfg.APIVersion))

	var lastErr error
	for attempt := 0; attempt < d.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", &DescriptionError{Name: name, Reason: DescribeTimeout, Err: ctx.Err()}
			case <-time.After(time.Second):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return "", &DescriptionError{Name: name, Reason: DescribeBadResponse, Err: err}
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("api-key", d.cfg.APIKey)

		resp, err := d.httpClient.Do(httpReq)
		if err != nil {
			if isTimeout(err) {
				return "", &DescriptionError{Name: name, Reason: DescribeTimeout, Err: err}
			}
			lastErr = err
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			return "", &DescriptionError{
				Name:   name,
				Reason: DescribeAuth,
				Err:    fmt.Errorf("status %d: %s", resp.StatusCode, respBody),
			}
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("status %d: %s", resp.StatusCode, respBody)
			continue
		case resp.StatusCode != http.StatusOK:
			return "", &DescriptionError{
				Name:   name,
				Reason: DescribeBadResponse,
				Err:    fmt.Errorf("status %d: %s", resp.StatusCode, respBody),
			}
		}

		var chatResp chatResponse
		if err := json.Unmarshal(respBody, &chatResp); err != nil {
			return "", &DescriptionError{Name: name, Reason: DescribeBadResponse, Err: err}
		}
		if chatResp.Error != nil {
			return "", &DescriptionError{
				Name:   name,
				Reason: DescribeBadResponse,
				Err:    fmt.Errorf("API error: %s", chatResp.Error.Message),
			}
		}
		if len(chatResp.Choices) == 0 {
			return "", &DescriptionError{
				Name:   name,
				Reason: DescribeBadResponse,
				Err:    errors.New("no choices in response"),
			}
		}
		return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
	}

	return "", &DescriptionError{Name: name, Reason: DescribeTimeout, Err: lastErr}
}

// isTimeout reports whether a transport error was a timeout or context
// deadline rather than a retryable fault.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var uerr *url.Error
	return errors.As(err, &uerr) && uerr.Timeout()
}
