package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/HendryAvila/educhain-mcp/internal/cache"
	"github.com/HendryAvila/educhain-mcp/internal/content"
	"github.com/HendryAvila/educhain-mcp/internal/fallback"
)

// newTestServer builds a server over an empty cache and returns a helper
// that sends one JSON-RPC request and decodes its "result" member.
func newTestServer(t *testing.T) (*cache.FileStore, func(method string, params any) map[string]any) {
	t.Helper()
	store := cache.NewFileStore(t.TempDir(), nil)
	s, err := New(Deps{Store: store})
	require.NoError(t, err)

	id := 0
	call := func(method string, params any) map[string]any {
		t.Helper()
		id++
		msg := map[string]any{"jsonrpc": "2.0", "id": id, "method": method}
		if params != nil {
			msg["params"] = params
		}
		raw, err := json.Marshal(msg)
		require.NoError(t, err)

		resp := s.HandleMessage(context.Background(), raw)
		out, err := json.Marshal(resp)
		require.NoError(t, err)

		var decoded struct {
			Result map[string]any `json:"result"`
			Error  map[string]any `json:"error"`
		}
		require.NoError(t, json.Unmarshal(out, &decoded), string(out))
		require.Nil(t, decoded.Error, "rpc %s failed: %s", method, out)
		return decoded.Result
	}
	return store, call
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Deps{})
	assert.Error(t, err)
}

func TestServer_ListsToolsResourcesPrompts(t *testing.T) {
	_, call := newTestServer(t)

	names := func(result map[string]any, key, field string) []string {
		var out []string
		for _, item := range result[key].([]any) {
			out = append(out, item.(map[string]any)[field].(string))
		}
		return out
	}

	assert.ElementsMatch(t,
		[]string{"generate_mcqs", "generate_lesson_plan", "generate_flashcards"},
		names(call("tools/list", nil), "tools", "name"))
	assert.ElementsMatch(t,
		[]string{"educhain://mcqs/python", "educhain://lesson-plan/python", "educhain://flashcards/python"},
		names(call("resources/list", nil), "resources", "uri"))
	assert.ElementsMatch(t,
		[]string{"quiz-session", "study-plan"},
		names(call("prompts/list", nil), "prompts", "name"))
}

func toolText(t *testing.T, result map[string]any) string {
	t.Helper()
	items := result["content"].([]any)
	require.NotEmpty(t, items)
	return items[0].(map[string]any)["text"].(string)
}

func TestServer_EndToEnd_FallbackWithoutCache(t *testing.T) {
	_, call := newTestServer(t)

	result := call("tools/call", map[string]any{
		"name":      "generate_mcqs",
		"arguments": map[string]any{"topic": content.DefaultTopic, "num_questions": 7},
	})

	var b content.Bundle
	require.NoError(t, json.Unmarshal([]byte(toolText(t, result)), &b))
	assert.Equal(t, content.ProvenanceFallback, b.GeneratedBy)
	require.Len(t, b.Questions, 7)
	for i, q := range b.Questions {
		assert.Equal(t, i+1, q.ID)
	}
}

func TestServer_EndToEnd_CacheHit(t *testing.T) {
	store, call := newTestServer(t)
	cached := fallback.Generate(content.NewMCQRequest(content.DefaultTopic, 10), "")
	cached.GeneratedBy = content.ProvenancePrimary
	cached.Note = ""
	require.NoError(t, store.Save(cached))

	result := call("tools/call", map[string]any{
		"name":      "generate_mcqs",
		"arguments": map[string]any{"num_questions": 3},
	})

	var b content.Bundle
	require.NoError(t, json.Unmarshal([]byte(toolText(t, result)), &b))
	assert.Equal(t, content.ProvenancePrimary, b.GeneratedBy)
	assert.Len(t, b.Questions, 10)
	assert.Equal(t, 3, b.RequestedCount)
}

func TestServer_OutOfBoundsIsToolError(t *testing.T) {
	_, call := newTestServer(t)

	result := call("tools/call", map[string]any{
		"name":      "generate_flashcards",
		"arguments": map[string]any{"num_cards": 40},
	})
	assert.Equal(t, true, result["isError"])
}

func TestServer_ReadResourceMissing(t *testing.T) {
	_, call := newTestServer(t)

	result := call("resources/read", map[string]any{"uri": "educhain://lesson-plan/python"})
	contents := result["contents"].([]any)
	require.Len(t, contents, 1)
	text := contents[0].(map[string]any)["text"].(string)
	assert.True(t, strings.Contains(text, "File not found"), text)
}

func TestServer_GetPrompt(t *testing.T) {
	_, call := newTestServer(t)

	result := call("prompts/get", map[string]any{
		"name":      "quiz-session",
		"arguments": map[string]string{"num_questions": "4"},
	})
	raw, _ := json.Marshal(result)
	assert.Contains(t, string(raw), "num_questions=4")
}

func TestCheckPrerequisites(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := cache.NewFileStore(t.TempDir(), nil)

	missing, err := CheckPrerequisites(store, zap.New(core))
	require.NoError(t, err)
	assert.Len(t, missing, 3)
	assert.Equal(t, 3, logs.Len())

	require.NoError(t, store.Save(fallback.Generate(content.NewFlashcardsRequest(content.DefaultTopic, 2), "")))
	missing, err = CheckPrerequisites(store, zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, missing, 2)
	for _, m := range missing {
		assert.False(t, strings.HasSuffix(m, cache.FlashcardsFile), fmt.Sprint(missing))
	}
}
