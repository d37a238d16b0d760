package openai

import "strings"

// responsesRequest is the POST /responses body.
type responsesRequest struct {
	Model           string         `json:"model"`
	Temperature     float64        `json:"temperature"`
	MaxOutputTokens int            `json:"max_output_tokens"`
	Input           []inputMessage `json:"input"`
}

type inputMessage struct {
	Role    string         `json:"role"`
	Content []inputContent `json:"content"`
}

type inputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// responsesResponse holds the fields of a Responses API result we read.
type responsesResponse struct {
	Model      string       `json:"model"`
	OutputText *string      `json:"output_text"`
	Output     []outputItem `json:"output"`
}

type outputItem struct {
	Content []outputContent `json:"content"`
}

type outputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func buildRequest(model string, temperature float64, maxOutputTokens int, system, user string) *responsesRequest {
	return &responsesRequest{
		Model:           model,
		Temperature:     temperature,
		MaxOutputTokens: maxOutputTokens,
		Input: []inputMessage{
			{Role: "system", Content: []inputContent{{Type: "input_text", Text: system}}},
			{Role: "user", Content: []inputContent{{Type: "input_text", Text: user}}},
		},
	}
}

// extractText prefers a non-blank output_text and otherwise joins every
// output_text content part.
func extractText(resp *responsesResponse) string {
	if resp.OutputText != nil {
		if text := strings.TrimSpace(*resp.OutputText); text != "" {
			return text
		}
	}

	var parts []string
	for _, item := range resp.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" {
				parts = append(parts, content.Text)
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
