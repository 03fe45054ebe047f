package generator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/komresu/quizonomics/internal/quiz"
	"github.com/komresu/quizonomics/pkg/errors"
	"github.com/komresu/quizonomics/pkg/logger"
)

const defaultAPIURL = "https://api.perplexity.ai/chat/completions"

// Client fetches generated quiz questions from the Perplexity chat
// completions API. Failures are returned to the caller, which owns the
// fallback path; the client itself never retries.
type Client struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	policy     *bluemonday.Policy
}

func NewClient(apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		apiURL:     defaultAPIURL,
		policy:     bluemonday.StrictPolicy(),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type generatedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Fetch requests count questions on the subject. A random topic from the
// subject's topic list is worked into the prompt for variety.
func (c *Client) Fetch(subject, difficulty string, count int) ([]quiz.Question, error) {
	topic := subject
	if topics := Topics(subject); len(topics) > 0 {
		topic = topics[rand.Intn(len(topics))]
	}

	prompt := fmt.Sprintf(`Create a %d-question multiple choice quiz on %s.
Focus on the topic: %s
Difficulty level: %s.
For each question, provide:
1. The question text
2. Four options (labeled a, b, c, d)
3. The correct answer (0-indexed, e.g., 0 for first option)
4. A brief explanation of the correct answer

Return the response as a JSON array with the following structure:
[
  {
    "question": "question text",
    "options": ["option1", "option2", "option3", "option4"],
    "correct_answer": 0,
    "explanation": "brief explanation"
  }
]`, count, subject, topic, difficulty)

	body, err := json.Marshal(chatRequest{
		Model: "sonar",
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful educational assistant that creates quiz questions for exam preparation."},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   4000,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to encode generation request")
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternalError, "failed to build generation request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstream, "question generation request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeUpstream,
			fmt.Sprintf("question generation returned status %d", resp.StatusCode))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstream, "failed to read generation response")
	}

	var chat chatResponse
	if err := json.Unmarshal(respBody, &chat); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstream, "failed to decode generation response")
	}
	if len(chat.Choices) == 0 {
		return nil, errors.New(errors.ErrCodeUpstream, "generation response has no choices")
	}

	return c.parseQuestions(chat.Choices[0].Message.Content)
}

// parseQuestions extracts the JSON array embedded in the model's free-text
// answer and converts valid entries.
func (c *Client) parseQuestions(content string) ([]quiz.Question, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, errors.New(errors.ErrCodeUpstream, "no JSON array found in generation response")
	}

	var raw []generatedQuestion
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeUpstream, "failed to parse generated questions")
	}

	questions := make([]quiz.Question, 0, len(raw))
	for i, g := range raw {
		if len(g.Options) < 2 || g.CorrectAnswer < 0 || g.CorrectAnswer >= len(g.Options) {
			logger.Warn("Dropping malformed generated question", "index", i)
			continue
		}
		q := quiz.Question{
			Text:         c.sanitize(g.Question),
			CorrectIndex: g.CorrectAnswer,
			Explanation:  c.sanitize(g.Explanation),
		}
		for _, opt := range g.Options {
			q.Options = append(q.Options, c.sanitize(opt))
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, errors.New(errors.ErrCodeUpstream, "generation response contained no usable questions")
	}
	return questions, nil
}

// sanitize strips any markup the model sneaks into question text before it
// reaches Telegram.
func (c *Client) sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}
