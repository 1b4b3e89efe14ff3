package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/toolrun"
	"github.com/fwojciec/toolrun/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertTranscript_UserText(t *testing.T) {
	t.Parallel()
	got := gemini.ConvertTranscript([]toolrun.Turn{toolrun.UserText("Hello")})
	require.Len(t, got, 1)
	assert.Equal(t, "user", got[0].Role)
	require.Len(t, got[0].Parts, 1)
	assert.Equal(t, "Hello", got[0].Parts[0].Text)
}

func TestConvertTranscript_CallAndResponse(t *testing.T) {
	t.Parallel()
	call := toolrun.FunctionCallPart{ID: "call_123", Name: "airbnb_search", Args: map[string]any{"location": "Paris"}}
	turns := []toolrun.Turn{
		toolrun.UserText("book X"),
		{Role: toolrun.RoleModel, Parts: []toolrun.Part{call}},
		{Role: toolrun.RoleUser, Parts: []toolrun.Part{toolrun.ResultResponse(call, "3 listings found")}},
	}

	got := gemini.ConvertTranscript(turns)
	require.Len(t, got, 3)

	assert.Equal(t, "model", got[1].Role)
	require.Len(t, got[1].Parts, 1)
	fc := got[1].Parts[0].FunctionCall
	require.NotNil(t, fc)
	assert.Equal(t, "call_123", fc.ID)
	assert.Equal(t, "airbnb_search", fc.Name)
	assert.Equal(t, "Paris", fc.Args["location"])

	assert.Equal(t, "user", got[2].Role)
	fr := got[2].Parts[0].FunctionResponse
	require.NotNil(t, fr)
	assert.Equal(t, "call_123", fr.ID)
	assert.Equal(t, "airbnb_search", fr.Name)
	assert.Equal(t, map[string]any{"result": "3 listings found"}, fr.Response)
}

func TestConvertTranscript_ErrorResponse(t *testing.T) {
	t.Parallel()
	call := toolrun.FunctionCallPart{Name: "airbnb_search"}
	turns := []toolrun.Turn{
		{Role: toolrun.RoleUser, Parts: []toolrun.Part{toolrun.ErrorResponse(call, "rate limited")}},
	}
	got := gemini.ConvertTranscript(turns)
	fr := got[0].Parts[0].FunctionResponse
	assert.Equal(t, "rate limited", fr.Response["error"])
	assert.Nil(t, fr.Response["result"])
}

func TestConvertTranscript_Signatures(t *testing.T) {
	t.Parallel()
	turns := []toolrun.Turn{
		toolrun.UserText("book X"),
		{Role: toolrun.RoleModel, Parts: []toolrun.Part{
			toolrun.ThoughtPart{Text: "plan", Signature: []byte("sig-a")},
			toolrun.FunctionCallPart{Name: "airbnb_search", Signature: []byte("sig-b")},
			toolrun.TextPart{Text: "", Signature: []byte("sig-c")},
		}},
	}

	got := gemini.ConvertTranscript(turns)
	require.Len(t, got, 2)
	parts := got[1].Parts
	require.Len(t, parts, 3)
	assert.True(t, parts[0].Thought)
	assert.Equal(t, "plan", parts[0].Text)
	assert.Equal(t, []byte("sig-a"), parts[0].ThoughtSignature)
	require.NotNil(t, parts[1].FunctionCall)
	assert.False(t, parts[1].Thought)
	assert.Equal(t, []byte("sig-b"), parts[1].ThoughtSignature)
	assert.False(t, parts[2].Thought)
	assert.Equal(t, []byte("sig-c"), parts[2].ThoughtSignature)
}

func TestConvertCatalog(t *testing.T) {
	t.Parallel()

	t.Run("one declaration per tool with schema unchanged", func(t *testing.T) {
		t.Parallel()
		schema := `{"type":"object","properties":{"location":{"type":"string"}},"required":["location"]}`
		catalog, err := toolrun.NewCatalog([]toolrun.ToolDescriptor{
			{Name: "airbnb_search", Description: "Search listings", InputSchema: json.RawMessage(schema)},
			{Name: "airbnb_listing_details", Description: "Listing details"},
		})
		require.NoError(t, err)

		got := gemini.ConvertCatalog(catalog)

		require.Len(t, got.FunctionDeclarations, 2)
		decl := got.FunctionDeclarations[0]
		assert.Equal(t, "airbnb_search", decl.Name)
		assert.Equal(t, "Search listings", decl.Description)
		raw, err := json.Marshal(decl.ParametersJsonSchema)
		require.NoError(t, err)
		assert.JSONEq(t, schema, string(raw))
		assert.Nil(t, got.FunctionDeclarations[1].ParametersJsonSchema)
	})

	t.Run("empty catalog yields no declarations", func(t *testing.T) {
		t.Parallel()
		got := gemini.ConvertCatalog(toolrun.ToolCatalog{})
		require.NotNil(t, got)
		assert.Empty(t, got.FunctionDeclarations)
	})
}

// fakeAPI serves generateContent with the given JSON body and records the
// last request body.
func fakeAPI(t *testing.T, response string) (*httptest.Server, *map[string]any) {
	t.Helper()
	var last map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		last = nil
		if err := json.Unmarshal(body, &last); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, &last
}

func newClient(t *testing.T, baseURL string) *gemini.Client {
	t.Helper()
	c, err := gemini.New(context.Background(), "test-key", gemini.WithBaseURL(baseURL+"/"))
	require.NoError(t, err)
	return c
}

func TestClient_Complete(t *testing.T) {
	t.Parallel()

	t.Run("text answer", func(t *testing.T) {
		t.Parallel()
		srv, last := fakeAPI(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"Here are "},{"text":"3 listings"}]}}]}`)
		c := newClient(t, srv.URL)

		got, err := c.Complete(context.Background(), toolrun.Request{
			Transcript:  []toolrun.Turn{toolrun.UserText("book X")},
			Temperature: toolrun.Float64(0),
		})
		require.NoError(t, err)

		assert.Equal(t, toolrun.RoleModel, got.Turn.Role)
		assert.Equal(t, "Here are 3 listings", got.Text())
		assert.False(t, got.HasFunctionCalls())

		cfg, ok := (*last)["generationConfig"].(map[string]any)
		require.True(t, ok, "generationConfig sent")
		assert.Equal(t, float64(0), cfg["temperature"])
		_, hasTools := (*last)["tools"]
		assert.False(t, hasTools, "empty catalog omits tools")
	})

	t.Run("function calls", func(t *testing.T) {
		t.Parallel()
		srv, last := fakeAPI(t, `{"candidates":[{"content":{"role":"model","parts":[
			{"functionCall":{"name":"airbnb_search","args":{"location":"Paris"}}},
			{"functionCall":{"name":"airbnb_listing_details","args":{"id":"42"}}}
		]}}]}`)
		c := newClient(t, srv.URL)
		catalog, err := toolrun.NewCatalog([]toolrun.ToolDescriptor{
			{Name: "airbnb_search", InputSchema: json.RawMessage(`{"type":"object"}`)},
		})
		require.NoError(t, err)

		got, err := c.Complete(context.Background(), toolrun.Request{
			Transcript:  []toolrun.Turn{toolrun.UserText("book X")},
			Catalog:     catalog,
			Temperature: toolrun.Float64(1.0),
		})
		require.NoError(t, err)

		calls := got.FunctionCalls()
		require.Len(t, calls, 2)
		assert.Equal(t, "airbnb_search", calls[0].Name)
		assert.Equal(t, map[string]any{"location": "Paris"}, calls[0].Args)
		assert.Equal(t, "airbnb_listing_details", calls[1].Name)

		tools, ok := (*last)["tools"].([]any)
		require.True(t, ok)
		require.Len(t, tools, 1)
		cfg := (*last)["generationConfig"].(map[string]any)
		assert.Equal(t, float64(1), cfg["temperature"])
	})

	t.Run("thought parts are kept out of the answer", func(t *testing.T) {
		t.Parallel()
		srv, _ := fakeAPI(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"thinking","thought":true},{"text":"answer"}]}}]}`)
		c := newClient(t, srv.URL)

		got, err := c.Complete(context.Background(), toolrun.Request{Transcript: []toolrun.Turn{toolrun.UserText("q")}})
		require.NoError(t, err)
		assert.Equal(t, "answer", got.Text())
		require.Len(t, got.Turn.Parts, 2)
		assert.Equal(t, toolrun.ThoughtPart{Text: "thinking"}, got.Turn.Parts[0])
	})

	t.Run("thoughts and signatures are sent back as received", func(t *testing.T) {
		t.Parallel()
		// "c2lnLWE=" and "c2lnLWI=" are base64 for "sig-a" and "sig-b".
		srv, last := fakeAPI(t, `{"candidates":[{"content":{"role":"model","parts":[
			{"text":"Search Paris first.","thought":true,"thoughtSignature":"c2lnLWE="},
			{"functionCall":{"name":"airbnb_search","args":{"location":"Paris"}},"thoughtSignature":"c2lnLWI="}
		]}}]}`)
		c := newClient(t, srv.URL)

		got, err := c.Complete(context.Background(), toolrun.Request{Transcript: []toolrun.Turn{toolrun.UserText("book X")}})
		require.NoError(t, err)
		require.Len(t, got.Turn.Parts, 2)
		assert.Equal(t, toolrun.ThoughtPart{Text: "Search Paris first.", Signature: []byte("sig-a")}, got.Turn.Parts[0])
		calls := got.FunctionCalls()
		require.Len(t, calls, 1)
		assert.Equal(t, []byte("sig-b"), calls[0].Signature)
		assert.Empty(t, got.Text())

		_, err = c.Complete(context.Background(), toolrun.Request{Transcript: []toolrun.Turn{
			toolrun.UserText("book X"),
			got.Turn,
			{Role: toolrun.RoleUser, Parts: []toolrun.Part{toolrun.ResultResponse(calls[0], "3 listings found")}},
		}})
		require.NoError(t, err)

		contents := (*last)["contents"].([]any)
		require.Len(t, contents, 3)
		parts := contents[1].(map[string]any)["parts"].([]any)
		require.Len(t, parts, 2)
		thought := parts[0].(map[string]any)
		assert.Equal(t, true, thought["thought"])
		assert.Equal(t, "Search Paris first.", thought["text"])
		assert.Equal(t, "c2lnLWE=", thought["thoughtSignature"])
		call := parts[1].(map[string]any)
		assert.Equal(t, "c2lnLWI=", call["thoughtSignature"])
		assert.Equal(t, "airbnb_search", call["functionCall"].(map[string]any)["name"])
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		srv, _ := fakeAPI(t, `{"candidates":[]}`)
		c := newClient(t, srv.URL)

		_, err := c.Complete(context.Background(), toolrun.Request{Transcript: []toolrun.Turn{toolrun.UserText("q")}})
		assert.ErrorIs(t, err, toolrun.ErrNoCandidates)
	})

	t.Run("invalid request is rejected before sending", func(t *testing.T) {
		t.Parallel()
		c := newClient(t, "http://127.0.0.1:1")

		_, err := c.Complete(context.Background(), toolrun.Request{})
		assert.ErrorIs(t, err, toolrun.ErrValidation)
	})

	t.Run("api error is returned", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = io.WriteString(w, `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`)
		}))
		t.Cleanup(srv.Close)
		c := newClient(t, srv.URL)

		_, err := c.Complete(context.Background(), toolrun.Request{Transcript: []toolrun.Turn{toolrun.UserText("q")}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gemini")
	})
}
