package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	relaymodel "github.com/scenesmith/scenesmith/relay/model"
)

func TestModelURL(t *testing.T) {
	got := ModelURL("https://generativelanguage.googleapis.com/", "v1beta", "gemini-2.0-flash", "generateContent")
	want := "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
	if got != want {
		t.Errorf("ModelURL() = %q, want %q", got, want)
	}
}

func TestOperationURL(t *testing.T) {
	got := OperationURL("https://generativelanguage.googleapis.com", "v1beta", "models/veo-2.0-generate-001/operations/abc")
	want := "https://generativelanguage.googleapis.com/v1beta/models/veo-2.0-generate-001/operations/abc"
	if got != want {
		t.Errorf("OperationURL() = %q, want %q", got, want)
	}
}

func TestGenerateTextCollectsParts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("x-goog-api-key = %q, want test-key", got)
		}
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("request did not decode: %v", err)
		}
		if req.SystemInstruction == nil {
			t.Error("system instruction missing from request")
		}
		json.NewEncoder(w).Encode(ChatResponse{
			Candidates: []ChatCandidate{
				{Content: ChatContent{Parts: []Part{{Text: "Hello "}, {Text: "there."}}}},
			},
		})
	}))
	defer server.Close()

	c := NewClientWith(server.URL, "v1beta", "test-key", nil)
	text, err := c.GenerateText(context.Background(), "be brief", "greet me")
	if err != nil {
		t.Fatalf("GenerateText() error = %v", err)
	}
	if text != "Hello there." {
		t.Errorf("GenerateText() = %q, want %q", text, "Hello there.")
	}
}

func TestGenerateTextEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ChatResponse{})
	}))
	defer server.Close()

	c := NewClientWith(server.URL, "v1beta", "test-key", nil)
	_, err := c.GenerateText(context.Background(), "", "anything")
	if !relaymodel.IsCode(err, relaymodel.CodeEmptyResult) {
		t.Errorf("GenerateText() error = %v, want an empty_result error", err)
	}
}

func TestAuthRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"key invalid"}}`, http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClientWith(server.URL, "v1beta", "bad-key", nil)
	_, err := c.GenerateText(context.Background(), "", "anything")
	if !relaymodel.IsCode(err, relaymodel.CodeAuthRejected) {
		t.Errorf("GenerateText() error = %v, want an auth_rejected error", err)
	}
}

func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	c := NewClientWith(server.URL, "v1beta", "test-key", nil)
	_, err := c.GenerateText(context.Background(), "", "anything")
	if !relaymodel.IsCode(err, relaymodel.CodeMalformedResponse) {
		t.Errorf("GenerateText() error = %v, want a malformed_response error", err)
	}
}

func TestStartAndPollVideoOperation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(Operation{Name: "models/veo-2.0-generate-001/operations/abc"})
		default:
			json.NewEncoder(w).Encode(Operation{
				Name: "models/veo-2.0-generate-001/operations/abc",
				Done: true,
				Response: &OperationResponse{
					GenerateVideoResponse: &GenerateVideoResponse{
						GeneratedSamples: []GeneratedSample{{Video: &VideoSource{URI: "https://media.example/v1"}}},
					},
				},
			})
		}
	}))
	defer server.Close()

	c := NewClientWith(server.URL, "v1beta", "test-key", nil)
	name, err := c.StartVideoGeneration(context.Background(), "veo-2.0-generate-001", &VideoGenerationRequest{
		Instances: []VideoInstance{{Prompt: "a storm"}},
	})
	if err != nil {
		t.Fatalf("StartVideoGeneration() error = %v", err)
	}
	if name != "models/veo-2.0-generate-001/operations/abc" {
		t.Errorf("operation name = %q", name)
	}

	op, err := c.PollVideoOperation(context.Background(), name)
	if err != nil {
		t.Fatalf("PollVideoOperation() error = %v", err)
	}
	if !op.Done {
		t.Error("operation not done")
	}
	if got := op.FirstVideoURI(); got != "https://media.example/v1" {
		t.Errorf("FirstVideoURI() = %q", got)
	}
}

func TestPollVideoOperationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Operation{
			Name:  "models/veo-2.0-generate-001/operations/abc",
			Done:  true,
			Error: &APIError{Code: 3, Message: "prompt was blocked"},
		})
	}))
	defer server.Close()

	c := NewClientWith(server.URL, "v1beta", "test-key", nil)
	_, err := c.PollVideoOperation(context.Background(), "models/veo-2.0-generate-001/operations/abc")
	if !relaymodel.IsCode(err, relaymodel.CodeTransportError) {
		t.Errorf("PollVideoOperation() error = %v, want a transport error", err)
	}
}

func TestDownloadMedia(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("download did not reattach the key, got %q", got)
		}
		w.Header().Set("Content-Type", "video/mp4")
		w.Write([]byte{0, 0, 0, 1})
	}))
	defer server.Close()

	c := NewClientWith(server.URL, "v1beta", "test-key", nil)
	media, err := c.DownloadMedia(context.Background(), server.URL+"/files/v1")
	if err != nil {
		t.Fatalf("DownloadMedia() error = %v", err)
	}
	if media.MimeType != "video/mp4" || len(media.Data) != 4 {
		t.Errorf("DownloadMedia() = %+v", media)
	}
}

func TestDownloadMediaEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClientWith(server.URL, "v1beta", "test-key", nil)
	_, err := c.DownloadMedia(context.Background(), server.URL+"/files/v1")
	if !relaymodel.IsCode(err, relaymodel.CodeEmptyResult) {
		t.Errorf("DownloadMedia() error = %v, want empty_result", err)
	}
}

func TestFirstVideoURIEmpty(t *testing.T) {
	op := &Operation{Name: "x", Done: true}
	if got := op.FirstVideoURI(); got != "" {
		t.Errorf("FirstVideoURI() = %q, want empty", got)
	}
}
