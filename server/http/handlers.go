package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/w-h-a/ragserver/credentials"
	"github.com/w-h-a/ragserver/embedder"
	"github.com/w-h-a/ragserver/generator"
	"github.com/w-h-a/ragserver/internal/service/rag"
	"github.com/w-h-a/ragserver/tools"
	"github.com/w-h-a/ragserver/web"
)

// Deployment environment variables take precedence over request-supplied
// secrets for every endpoint.
const (
	EnvOpenAIKey   = "OPENAI_API_KEY"
	EnvClaudeKey   = "CLAUDE_API_KEY"
	EnvGeminiKey   = "GEMINI_API_KEY"
	EnvN8NWebhook  = "N8N_WEBHOOK_URL"
	EnvStrapiURL   = "STRAPI_URL"
	EnvStrapiToken = "STRAPI_TOKEN"
)

// EmbedderFactory builds an embedder for a resolved credential. Embeddings
// always go through OpenAI regardless of the chat provider.
type EmbedderFactory func(apiKey string) embedder.Embedder

// GeneratorFactory builds the chat provider selected by the request.
type GeneratorFactory func(provider string, apiKey string) (generator.Generator, error)

type Handlers struct {
	svc          *rag.Service
	resolver     *credentials.Resolver
	automation   tools.Forwarder
	notes        tools.Forwarder
	newEmbedder  EmbedderFactory
	newGenerator GeneratorFactory
	log          *logrus.Entry
}

func NewHandlers(
	svc *rag.Service,
	resolver *credentials.Resolver,
	automation tools.Forwarder,
	notes tools.Forwarder,
	newEmbedder EmbedderFactory,
	newGenerator GeneratorFactory,
	log *logrus.Entry,
) *Handlers {
	return &Handlers{
		svc:          svc,
		resolver:     resolver,
		automation:   automation,
		notes:        notes,
		newEmbedder:  newEmbedder,
		newGenerator: newGenerator,
		log:          log,
	}
}

func (h *Handlers) Router() *mux.Router {
	router := mux.NewRouter()

	router.Use(cors)
	router.Use(requestLogger(h.log))

	router.HandleFunc("/upload", h.Upload).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/chat", h.Chat).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/automate", h.Automate).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/save-note", h.SaveNote).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/", h.Index).Methods(http.MethodGet)

	return router
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(web.IndexPage)
}

func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		// a part with an empty filename arrives as a plain form value
		if _, ok := r.MultipartForm.Value["file"]; ok {
			writeError(w, http.StatusBadRequest, "No selected file")
			return
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	header := headers[0]

	file, err := header.Open()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	count, err := h.svc.Upload(r.Context(), header.Filename, content)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("File '%s' processed. %d chunks created.", header.Filename, count),
	})
}

type chatRequest struct {
	Query    string `json:"query"`
	Provider string `json:"provider"`
	ApiKey   string `json:"api_key"`
}

func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	provider := req.Provider
	if len(provider) == 0 {
		provider = "openai"
	}

	envKey, ok := providerEnvKey(provider)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported provider: %s", provider))
		return
	}

	llmKey, haveLLMKey := h.resolver.Resolve(envKey, req.ApiKey)
	embedKey, haveEmbedKey := h.resolver.Resolve(EnvOpenAIKey, req.ApiKey)

	if len(strings.TrimSpace(req.Query)) == 0 || !haveLLMKey || !haveEmbedKey {
		writeError(w, http.StatusBadRequest, "Query, API Key, and Provider are required.")
		return
	}

	gen, err := h.newGenerator(provider, llmKey)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := h.svc.Query(r.Context(), req.Query, h.newEmbedder(embedKey), gen)
	if errors.Is(err, rag.ErrEmptyKnowledgeBase) {
		writeError(w, http.StatusBadRequest, "Please upload a knowledge file first.")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("chat request failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"response": answer})
}

type automateRequest struct {
	Instruction string `json:"instruction"`
	N8NWebhook  string `json:"n8n_webhook"`
}

func (h *Handlers) Automate(w http.ResponseWriter, r *http.Request) {
	var req automateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	webhook, haveWebhook := h.resolver.Resolve(EnvN8NWebhook, req.N8NWebhook)

	if len(strings.TrimSpace(req.Instruction)) == 0 || !haveWebhook {
		writeError(w, http.StatusBadRequest, "Instruction and n8n Webhook URL are required.")
		return
	}

	msg, err := h.automation.Forward(r.Context(), tools.Request{
		Target:  webhook,
		Payload: req.Instruction,
	})
	if err != nil {
		h.log.WithError(err).Error("automation forwarding failed")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to trigger n8n workflow: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response": fmt.Sprintf("Automation sent to n8n: %s", msg),
	})
}

type saveNoteRequest struct {
	Content     string `json:"content"`
	StrapiURL   string `json:"strapi_url"`
	StrapiToken string `json:"strapi_token"`
}

func (h *Handlers) SaveNote(w http.ResponseWriter, r *http.Request) {
	var req saveNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	url, haveURL := h.resolver.Resolve(EnvStrapiURL, req.StrapiURL)
	token, haveToken := h.resolver.Resolve(EnvStrapiToken, req.StrapiToken)

	if len(strings.TrimSpace(req.Content)) == 0 || !haveURL || !haveToken {
		writeError(w, http.StatusBadRequest, "Content, Strapi URL, and Strapi Token are required.")
		return
	}

	id, err := h.notes.Forward(r.Context(), tools.Request{
		Target:  url,
		Token:   token,
		Payload: req.Content,
	})
	if err != nil {
		h.log.WithError(err).Error("note forwarding failed")
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save note to Strapi: %v", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"response": fmt.Sprintf("Note saved successfully to Strapi with ID: %s", id),
	})
}

func providerEnvKey(provider string) (string, bool) {
	switch provider {
	case "openai":
		return EnvOpenAIKey, true
	case "claude":
		return EnvClaudeKey, true
	case "gemini":
		return EnvGeminiKey, true
	default:
		return "", false
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

