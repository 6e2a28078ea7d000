package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/scenesmith/scenesmith/common/config"
	"github.com/scenesmith/scenesmith/common/logger"
	relaymodel "github.com/scenesmith/scenesmith/relay/model"
	"github.com/scenesmith/scenesmith/service"
)

// Client talks to the generativelanguage REST API. It is the only place
// that sees the access key.
type Client struct {
	baseURL string
	version string
	apiKey  string
	http    *http.Client
}

// NewClient builds a client from the process configuration, including the
// optional outbound proxy.
func NewClient() (*Client, error) {
	hc, err := service.GetHttpClientWithProxy(config.ProxyURL)
	if err != nil {
		return nil, errors.Wrap(err, "build backend http client")
	}
	return &Client{
		baseURL: config.GeminiBaseURL,
		version: config.GeminiVersion,
		apiKey:  config.GeminiAPIKey,
		http:    hc,
	}, nil
}

// NewClientWith is the fully-injected constructor used by tests.
func NewClientWith(baseURL, version, apiKey string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: baseURL, version: version, apiKey: apiKey, http: hc}
}

func (c *Client) postJSON(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return relaymodel.ErrorWrapper(err, relaymodel.CodeInternalError, http.StatusInternalServerError)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return relaymodel.ErrorWrapper(err, relaymodel.CodeInternalError, http.StatusInternalServerError)
	}
	SetupRequestHeader(req, c.apiKey)
	return c.doJSON(req, out)
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return relaymodel.ErrorWrapper(err, relaymodel.CodeInternalError, http.StatusInternalServerError)
	}
	SetupRequestHeader(req, c.apiKey)
	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return relaymodel.TransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return relaymodel.TransportError(err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return relaymodel.AuthError(errors.Errorf("backend rejected access key: %s", summarizeBody(respBody)))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return relaymodel.ErrorWrapper(
			errors.Errorf("backend returned status %d: %s", resp.StatusCode, summarizeBody(respBody)),
			relaymodel.CodeTransportError, http.StatusBadGateway)
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return relaymodel.ErrorWrapper(err, relaymodel.CodeMalformedResponse, http.StatusBadGateway)
	}
	return nil
}

func summarizeBody(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// GenerateText runs a single-shot text generation with an optional system
// instruction and returns the concatenated text parts.
func (c *Client) GenerateText(ctx context.Context, system string, prompt string) (string, error) {
	req := &ChatRequest{
		Contents: []ChatContent{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: ChatGenerationConfig{
			CandidateCount: 1,
			Temperature:    config.TextTemperature,
		},
	}
	if system != "" {
		req.SystemInstruction = &SystemInstruction{Parts: []Part{{Text: system}}}
	}
	return c.generateContent(ctx, config.DefaultTextModel, req)
}

// Chat runs a multi-turn conversation ending in message and returns the
// model's reply text.
func (c *Client) Chat(ctx context.Context, system string, history []relaymodel.ChatTurn, message string) (string, error) {
	req := &ChatRequest{GenerationConfig: ChatGenerationConfig{
		CandidateCount: 1,
		Temperature:    config.TextTemperature,
	}}
	if system != "" {
		req.SystemInstruction = &SystemInstruction{Parts: []Part{{Text: system}}}
	}
	for _, turn := range history {
		role := turn.Role
		if role != "user" {
			role = "model"
		}
		req.Contents = append(req.Contents, ChatContent{Role: role, Parts: []Part{{Text: turn.Text}}})
	}
	req.Contents = append(req.Contents, ChatContent{Role: "user", Parts: []Part{{Text: message}}})
	return c.generateContent(ctx, config.DefaultTextModel, req)
}

func (c *Client) generateContent(ctx context.Context, model string, req *ChatRequest) (string, error) {
	req.SafetySettings = defaultSafetySettings()
	var resp ChatResponse
	url := ModelURL(c.baseURL, c.version, model, "generateContent")
	if err := c.postJSON(ctx, url, req, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", relaymodel.ErrorWrapper(
			errors.Errorf("backend error %d: %s", resp.Error.Code, resp.Error.Message),
			relaymodel.CodeTransportError, http.StatusBadGateway)
	}
	text := collectText(resp.Candidates)
	if text == "" {
		return "", relaymodel.EmptyResultError("text generation returned no content")
	}
	return text, nil
}

// GenerateImage produces one still image for prompt, returned as raw bytes.
func (c *Client) GenerateImage(ctx context.Context, prompt string, imageConfig *ImageConfig) (*relaymodel.MediaPayload, error) {
	req := &ChatRequest{
		Contents: []ChatContent{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		SafetySettings: defaultSafetySettings(),
		GenerationConfig: ChatGenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			ImageConfig:        imageConfig,
		},
	}
	var resp ChatResponse
	url := ModelURL(c.baseURL, c.version, ImageGenerationModel, "generateContent")
	if err := c.postJSON(ctx, url, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, relaymodel.ErrorWrapper(
			errors.Errorf("backend error %d: %s", resp.Error.Code, resp.Error.Message),
			relaymodel.CodeTransportError, http.StatusBadGateway)
	}
	for _, candidate := range resp.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData == nil || part.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, relaymodel.ErrorWrapper(err, relaymodel.CodeMalformedResponse, http.StatusBadGateway)
			}
			return &relaymodel.MediaPayload{MimeType: part.InlineData.MimeType, Data: data}, nil
		}
	}
	return nil, relaymodel.EmptyResultError("image generation returned no inline image")
}

// StartVideoGeneration submits a predictLongRunning request and returns the
// operation name to poll.
func (c *Client) StartVideoGeneration(ctx context.Context, model string, req *VideoGenerationRequest) (string, error) {
	var op Operation
	url := ModelURL(c.baseURL, c.version, model, "predictLongRunning")
	if err := c.postJSON(ctx, url, req, &op); err != nil {
		return "", err
	}
	if op.Name == "" {
		return "", relaymodel.EmptyResultError("video submission returned no operation name")
	}
	logger.Infof(ctx, "video operation started: %s", op.Name)
	return op.Name, nil
}

// PollVideoOperation fetches the current state of a long-running operation.
func (c *Client) PollVideoOperation(ctx context.Context, operationName string) (*Operation, error) {
	var op Operation
	url := OperationURL(c.baseURL, c.version, operationName)
	if err := c.getJSON(ctx, url, &op); err != nil {
		return nil, err
	}
	if op.Error != nil {
		return nil, relaymodel.ErrorWrapper(
			errors.Errorf("video operation failed: %s", op.Error.Message),
			relaymodel.CodeTransportError, http.StatusBadGateway)
	}
	return &op, nil
}

// DownloadMedia fetches generated media bytes. The URI alone is not
// fetchable: the access key must be re-attached.
func (c *Client) DownloadMedia(ctx context.Context, uri string) (*relaymodel.MediaPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, relaymodel.ErrorWrapper(err, relaymodel.CodeInternalError, http.StatusInternalServerError)
	}
	SetupRequestHeader(req, c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, relaymodel.TransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, relaymodel.AuthError(errors.Errorf("media download rejected with status %d", resp.StatusCode))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, relaymodel.ErrorWrapper(
			errors.Errorf("media download returned status %d", resp.StatusCode),
			relaymodel.CodeTransportError, http.StatusBadGateway)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, relaymodel.TransportError(err)
	}
	if len(data) == 0 {
		return nil, relaymodel.EmptyResultError("media download returned no bytes")
	}
	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = "video/mp4"
	}
	return &relaymodel.MediaPayload{MimeType: mimeType, Data: data}, nil
}

func collectText(candidates []ChatCandidate) string {
	var sb strings.Builder
	for _, candidate := range candidates {
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(sb.String())
}

func defaultSafetySettings() []ChatSafetySettings {
	categories := []string{
		"HARM_CATEGORY_HARASSMENT",
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
	}
	settings := make([]ChatSafetySettings, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, ChatSafetySettings{
			Category:  category,
			Threshold: config.GeminiSafetySetting,
		})
	}
	return settings
}
