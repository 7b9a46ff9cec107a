package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"roadwatch/internal/model"
)

const defaultBaseURL = "https://api.anthropic.com/v1/messages"

// analysisPrompt asks for a line-oriented answer so parsing stays trivial.
const analysisPrompt = `Analyze this traffic camera image and answer the following questions:

1. Is there snow visible on the road? (yes/no)
2. Are there any cars visible? (yes/no)
3. Are there any trucks visible? (yes/no)
4. Are there any animals visible? (yes/no)

Also provide a brief description of the overall road conditions.

Respond in this exact format:
SNOW: yes/no
CARS: yes/no
TRUCKS: yes/no
ANIMALS: yes/no
NOTES: <brief description>`

type Analyzer struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

func NewAnalyzer(apiKey, modelName string) *Analyzer {
	return &Analyzer{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      modelName,
	}
}

// NewAnalyzerWithBaseURL is used by tests to point the analyzer at a fake server.
func NewAnalyzerWithBaseURL(apiKey, modelName, baseURL string) *Analyzer {
	a := NewAnalyzer(apiKey, modelName)
	a.baseURL = baseURL
	return a
}

// ---- wire types ----

type imageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type contentBlock struct {
	Type   string       `json:"type"`
	Text   string       `json:"text,omitempty"`
	Source *imageSource `json:"source,omitempty"`
}

type message struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type messagesResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

// Analyze runs the vision model over raw image bytes. API failures degrade
// into a result whose notes carry the failure, so a bad cycle step never
// aborts the whole capture.
func (a *Analyzer) Analyze(ctx context.Context, imageData []byte) model.AnalysisResult {
	result, err := a.analyze(ctx, imageData)
	if err != nil {
		return model.AnalysisResult{Notes: fmt.Sprintf("Analysis failed: %v", err)}
	}
	return result
}

func (a *Analyzer) analyze(ctx context.Context, imageData []byte) (model.AnalysisResult, error) {
	payload := messagesRequest{
		Model:     a.model,
		MaxTokens: 300,
		Messages: []message{{
			Role: "user",
			Content: []contentBlock{
				{
					Type: "image",
					Source: &imageSource{
						Type:      "base64",
						MediaType: DetectMediaType(imageData),
						Data:      base64.StdEncoding.EncodeToString(imageData),
					},
				},
				{Type: "text", Text: analysisPrompt},
			},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to call vision API: %w", err)
	}
	defer func(b io.ReadCloser) {
		_ = b.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return model.AnalysisResult{}, fmt.Errorf("vision API returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed messagesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return model.AnalysisResult{}, fmt.Errorf("failed to decode vision response: %w", err)
	}
	if len(parsed.Content) == 0 {
		return model.AnalysisResult{}, fmt.Errorf("vision API returned no content")
	}

	return ParseAnalysis(parsed.Content[0].Text), nil
}

// DetectMediaType sniffs the image media type from magic bytes.
func DetectMediaType(data []byte) string {
	switch {
	case len(data) >= 8 && bytes.Equal(data[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "image/png"
	case len(data) >= 2 && data[0] == 0xff && data[1] == 0xd8:
		return "image/jpeg"
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("GIF8")):
		return "image/gif"
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")):
		return "image/webp"
	}
	return "image/jpeg"
}

// ParseAnalysis parses the model's line-oriented response into structured
// data. Unrecognized lines are ignored; missing answers stay nil.
func ParseAnalysis(text string) model.AnalysisResult {
	var result model.AnalysisResult

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "snow:"):
			result.HasSnow = yesNo(lower)
		case strings.HasPrefix(lower, "cars:"):
			result.HasCar = yesNo(lower)
		case strings.HasPrefix(lower, "trucks:"):
			result.HasTruck = yesNo(lower)
		case strings.HasPrefix(lower, "animals:"):
			result.HasAnimal = yesNo(lower)
		case strings.HasPrefix(lower, "notes:"):
			result.Notes = strings.TrimSpace(strings.SplitN(line, ":", 2)[1])
		}
	}

	return result
}

func yesNo(lower string) *bool {
	v := strings.Contains(lower, "yes")
	return &v
}
