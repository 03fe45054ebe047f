package generator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func chatReply(t *testing.T, content string) string {
	t.Helper()
	reply := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]interface{}{"content": content}},
		},
	}
	b, err := json.Marshal(reply)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func newTestClient(url string) *Client {
	c := NewClient("test-key", 5*time.Second)
	c.apiURL = url
	return c
}

func TestFetch_ExtractsArrayFromNoisyContent(t *testing.T) {
	content := `Here is your quiz:
[
  {"question": "What is GDP?", "options": ["a", "b", "c", "d"], "correct_answer": 0, "explanation": "gross domestic product"},
  {"question": "What is CPI?", "options": ["a", "b", "c", "d"], "correct_answer": 2, "explanation": "consumer price index"}
]
Good luck with your preparation!`

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(chatReply(t, content)))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	questions, err := c.Fetch("Economics", "medium", 2)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
	if len(questions) != 2 {
		t.Fatalf("Fetch() returned %d questions, want 2", len(questions))
	}
	if questions[0].Text != "What is GDP?" || questions[0].CorrectIndex != 0 {
		t.Errorf("question 0 = %+v", questions[0])
	}
	if questions[1].CorrectIndex != 2 {
		t.Errorf("question 1 CorrectIndex = %d, want 2", questions[1].CorrectIndex)
	}
}

func TestFetch_DropsMalformedQuestions(t *testing.T) {
	content := `[
  {"question": "valid", "options": ["a", "b", "c", "d"], "correct_answer": 1, "explanation": "e"},
  {"question": "index out of range", "options": ["a", "b"], "correct_answer": 5, "explanation": "e"},
  {"question": "too few options", "options": ["a"], "correct_answer": 0, "explanation": "e"}
]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(t, content)))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	questions, err := c.Fetch("Economics", "medium", 3)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(questions) != 1 || questions[0].Text != "valid" {
		t.Errorf("Fetch() = %+v, want only the valid question", questions)
	}
}

func TestFetch_SanitizesMarkup(t *testing.T) {
	content := `[{"question": "<b>What is <script>alert(1)</script>GDP?</b>", "options": ["<i>a</i>", "b", "c", "d"], "correct_answer": 0, "explanation": "<u>plain</u>"}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply(t, content)))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	questions, err := c.Fetch("Economics", "medium", 1)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got := questions[0].Text; got != "What is GDP?" {
		t.Errorf("sanitized text = %q", got)
	}
	if got := questions[0].Options[0]; got != "a" {
		t.Errorf("sanitized option = %q", got)
	}
	if got := questions[0].Explanation; got != "plain" {
		t.Errorf("sanitized explanation = %q", got)
	}
}

func TestFetch_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Non-200 status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "No choices",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices": []}`))
			},
		},
		{
			name: "No JSON array in content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices": [{"message": {"content": "sorry, I cannot help"}}]}`))
			},
		},
		{
			name: "Unparsable array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"choices": [{"message": {"content": "[{broken json]"}}]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := newTestClient(srv.URL)
			if _, err := c.Fetch("Economics", "medium", 5); err == nil {
				t.Error("Fetch() expected error, got nil")
			}
		})
	}
}

func TestFetch_SendsExpectedRequest(t *testing.T) {
	var gotBody chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(chatReply(t, `[{"question": "q", "options": ["a", "b", "c", "d"], "correct_answer": 0, "explanation": "e"}]`)))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	if _, err := c.Fetch("Polity", "advanced", 10); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if gotBody.Model != "sonar" {
		t.Errorf("model = %q, want sonar", gotBody.Model)
	}
	if gotBody.MaxTokens != 4000 {
		t.Errorf("max_tokens = %d, want 4000", gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("messages = %+v", gotBody.Messages)
	}
}
