package client

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/autonotex/conceptgraph/pkg/cache"
	"github.com/autonotex/conceptgraph/pkg/errors"
	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/observability"
)

const (
	// DefaultBaseURL is the backend address used when no override is configured.
	DefaultBaseURL = "http://localhost:5000"

	httpTimeout     = 30 * time.Second
	requestIDHeader = "X-Request-ID"
)

// Note is a stored note document as returned by the backend.
//
// Older documents carry the graph under "graph_data" instead of "graph";
// use [Note.RawGraph] rather than reading either field directly.
type Note struct {
	DocID     string          `json:"doc_id"`
	Subject   string          `json:"subject,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	Summary   string          `json:"summary,omitempty"`
	Graph     json.RawMessage `json:"graph,omitempty"`
	GraphData json.RawMessage `json:"graph_data,omitempty"`
	Questions []QuizQuestion  `json:"questions,omitempty"`
}

// RawGraph returns the note's graph payload, preferring "graph" over the
// legacy "graph_data" field. Returns nil if the note has no graph.
func (n *Note) RawGraph() json.RawMessage {
	if len(n.Graph) > 0 && string(n.Graph) != "null" {
		return n.Graph
	}
	if len(n.GraphData) > 0 && string(n.GraphData) != "null" {
		return n.GraphData
	}
	return nil
}

// UploadResult is the backend's response to a document upload.
type UploadResult struct {
	DocID        string          `json:"doc_id"`
	Summary      string          `json:"summary"`
	Graph        json.RawMessage `json:"graph"`
	Notes        string          `json:"notes"`
	Questions    []QuizQuestion  `json:"questions,omitempty"`
	ChunkCount   int             `json:"chunk_count"`
	ConceptCount int             `json:"concept_count"`
}

// Answer is the backend's response to a free-form question.
type Answer struct {
	Question            string `json:"question"`
	Answer              string `json:"answer"`
	InsufficientContext bool   `json:"insufficient_context"`
}

// QuizQuestion is a multiple-choice question generated from note content.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Category      string   `json:"category,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

// Client provides access to the Autonotex backend API.
// It handles HTTP requests with caching and automatic retries.
type Client struct {
	http    *http.Client
	baseURL string
	cache   cache.Cache
	keyer   cache.Keyer
}

// New creates a backend client with the given cache backend.
// An empty baseURL falls back to [DefaultBaseURL]; a nil backend disables
// caching.
func New(baseURL string, backend cache.Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   backend,
		keyer:   cache.NewDefaultKeyer(),
	}
}

// BaseURL returns the backend address this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchGraph retrieves the knowledge graph for a document and adapts it into
// the normalized [graph.Graph] shape. If refresh is true the cache is
// bypassed.
//
// Returns an error with code [errors.ErrCodeDocumentNotFound] if the document
// doesn't exist, and [errors.ErrCodeInvalidGraph] if the payload has no graph.
func (c *Client) FetchGraph(ctx context.Context, docID string, refresh bool) (graph.Graph, error) {
	note, err := c.FetchNote(ctx, docID, refresh)
	if err != nil {
		return graph.Graph{}, err
	}
	raw := note.RawGraph()
	if raw == nil {
		return graph.Graph{}, errors.New(errors.ErrCodeInvalidGraph, "document %s has no graph", docID)
	}
	return graph.Adapt(raw)
}

// FetchNote retrieves a stored note by document ID.
// If refresh is true the cache is bypassed.
func (c *Client) FetchNote(ctx context.Context, docID string, refresh bool) (*Note, error) {
	if err := errors.ValidateDocID(docID); err != nil {
		return nil, err
	}

	var note Note
	key := c.keyer.HTTPKey("notes", docID)
	err := c.cached(ctx, key, cache.TTLGraph, refresh, &note, func() error {
		err := c.getJSON(ctx, "/notes/"+url.PathEscape(docID), nil, &note)
		if isNotFound(err) {
			return errors.New(errors.ErrCodeDocumentNotFound, "document %s not found", docID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// SubjectNote retrieves the aggregated note for a subject, including its
// merged knowledge graph. If refresh is true the cache is bypassed.
func (c *Client) SubjectNote(ctx context.Context, subject string, refresh bool) (*Note, error) {
	if subject == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "subject cannot be empty")
	}

	var note Note
	key := c.keyer.HTTPKey("subject", subject)
	err := c.cached(ctx, key, cache.TTLGraph, refresh, &note, func() error {
		body := map[string]string{"subject": subject}
		return c.postJSON(ctx, "/generate/notes/subject", body, &note)
	})
	if err != nil {
		return nil, err
	}
	if note.DocID == "" && note.Notes == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "no notes found for subject %s", subject)
	}
	return &note, nil
}

// ListSubjects returns the subjects that have stored notes.
func (c *Client) ListSubjects(ctx context.Context) ([]string, error) {
	var resp struct {
		Subjects []string `json:"subjects"`
	}
	if err := c.getJSON(ctx, "/subjects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Subjects, nil
}

// ListNotes returns stored note summaries, optionally filtered by subject.
// A limit of 0 uses the backend default.
func (c *Client) ListNotes(ctx context.Context, subject string, limit int) ([]Note, error) {
	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}

	var resp struct {
		Notes []Note `json:"notes"`
	}
	if err := c.getJSON(ctx, "/notes", q, &resp); err != nil {
		return nil, err
	}
	return resp.Notes, nil
}

// QuizQuestions returns quiz questions for a subject.
func (c *Client) QuizQuestions(ctx context.Context, subject string) ([]QuizQuestion, error) {
	if subject == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "subject cannot be empty")
	}

	var resp struct {
		Questions []QuizQuestion `json:"questions"`
	}
	err := c.getJSON(ctx, "/quiz/questions/"+url.PathEscape(subject), nil, &resp)
	if isNotFound(err) {
		return nil, errors.New(errors.ErrCodeNotFound, "no quiz questions for subject %s", subject)
	}
	if err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

// AskQuestion asks the backend a free-form question, optionally scoped to a
// document. Answers are not cached; the backend may incorporate newly
// uploaded content at any time.
func (c *Client) AskQuestion(ctx context.Context, question, docID string) (*Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "question cannot be empty")
	}
	if docID != "" {
		if err := errors.ValidateDocID(docID); err != nil {
			return nil, err
		}
	}

	body := map[string]string{"question": question}
	if docID != "" {
		body["doc_id"] = docID
	}
	var ans Answer
	if err := cache.RetryWithBackoff(ctx, func() error {
		return c.postJSON(ctx, "/question", body, &ans)
	}); err != nil {
		return nil, err
	}
	return &ans, nil
}

// Upload sends one or more document files to the backend for analysis and
// returns the resulting note, including the extracted knowledge graph.
func (c *Client) Upload(ctx context.Context, paths []string) (*UploadResult, error) {
	if len(paths) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no files to upload")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "cannot open %s", p)
		}
		part, err := mw.CreateFormFile("files", filepath.Base(p))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		f.Close()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "cannot read %s", p)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "cannot finalize upload body")
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.baseURL+"/upload", mw.FormDataContentType(), bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var result UploadResult
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "cannot decode upload response")
	}
	return &result, nil
}

// cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
func (c *Client) cached(ctx context.Context, key string, ttl time.Duration, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, key); ok {
			if err := json.Unmarshal(data, v); err == nil {
				return nil
			}
		}
	}
	if err := cache.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, ttl)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	body, err := c.doRequest(ctx, http.MethodGet, u, "", nil)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) postJSON(ctx context.Context, path string, reqBody, v any) error {
	data, err := json.Marshal(reqBody)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "cannot encode request body")
	}
	body, err := c.doRequest(ctx, http.MethodPost, c.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

func (c *Client) doRequest(ctx context.Context, method, rawURL, contentType string, reqBody io.Reader) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	host, path := req.URL.Host, req.URL.Path
	observability.HTTP().OnRequest(ctx, method, host, path)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, method, host, path, err)
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	observability.HTTP().OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code == http.StatusTooManyRequests:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}

func isNotFound(err error) bool {
	return stderrors.Is(err, cache.ErrNotFound)
}
