package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
)

// ErrMalformedResponse indicates that the backend responded successfully, but
// the response did not contain an answer.
var ErrMalformedResponse = errors.New("the response does not contain an answer")

// Asker obtains answers to questions.
type Asker interface {
	// Ask returns the answer to question.
	Ask(ctx context.Context, question string) (string, error)
}

// BackendError is an error reported by the backend in the body of an
// unsuccessful response.
type BackendError struct {
	StatusCode int
	Message    string
}

func (err *BackendError) Error() string {
	return err.Message
}

// HTTPAsker is an Asker that posts questions to the gateway's ask endpoint.
type HTTPAsker struct {
	// BaseURL is the address of the gateway.
	BaseURL *url.URL

	// Path is the ask endpoint, relative to BaseURL. If it is empty, "/ask" is
	// used.
	Path string

	// Client is the HTTP client used to make requests. If it is nil,
	// http.DefaultClient is used, which never times out.
	Client *http.Client
}

type questionPayload struct {
	Question string `json:"question"`
}

type answerPayload struct {
	Answer *string `json:"answer"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Ask sends question to the gateway and returns the answer.
func (asker *HTTPAsker) Ask(ctx context.Context, question string) (string, error) {
	body, err := json.Marshal(questionPayload{question})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, asker.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := asker.Client
	if client == nil {
		client = http.DefaultClient
	}

	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	content, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var payload errorPayload
		if json.Unmarshal(content, &payload) == nil && payload.Error != "" {
			return "", &BackendError{res.StatusCode, payload.Error}
		}
		return "", fmt.Errorf("unexpected response status: %s", res.Status)
	}

	var payload answerPayload
	if err := json.Unmarshal(content, &payload); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	} else if payload.Answer == nil {
		return "", ErrMalformedResponse
	}

	return *payload.Answer, nil
}

func (asker *HTTPAsker) endpoint() string {
	p := asker.Path
	if p == "" {
		p = "/ask"
	}

	u := *asker.BaseURL
	u.Path = path.Join("/", u.Path, p)
	u.RawPath = ""

	return u.String()
}
