package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/saiteja-29/V-Hire/internal/models"
)

// Runner is a pass-through client for the external code-execution API.
// Execution itself is out of scope; the room's run action just forwards
// the editor contents and returns stdout or stderr.
type Runner struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewRunner(baseURL, apiKey string) *Runner {
	return &Runner{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 12 * time.Second},
	}
}

var fileNames = map[models.Language]string{
	models.LangCPP:        "main.cpp",
	models.LangPython:     "main.py",
	models.LangJava:       "Main.java",
	models.LangJavaScript: "main.js",
}

type execPayload struct {
	Language models.Language `json:"language"`
	Stdin    string          `json:"stdin"`
	Files    []execFile      `json:"files"`
}

type execFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type execResult struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// Execute runs the code remotely and returns stdout, or stderr when the
// program produced no stdout.
func (r *Runner) Execute(ctx context.Context, language models.Language, code string) (string, error) {
	name, ok := fileNames[language]
	if !ok {
		name = "main.txt"
	}

	body, err := json.Marshal(execPayload{
		Language: language,
		Files:    []execFile{{Name: name, Content: code}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", r.apiKey)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute code: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("execute code: compiler API returned %d", resp.StatusCode)
	}

	var result execResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("execute code: %w", err)
	}
	if result.Stdout != "" {
		return result.Stdout, nil
	}
	return result.Stderr, nil
}
