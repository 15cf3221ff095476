package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacradar/internal/logger"
	"vacradar/internal/models"
)

func testLogger() *logger.Logger {
	return logger.NewLogger("error")
}

func chatReply(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})

	return string(body)
}

func TestLLMCategorize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		messages, ok := req["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 2)

		user, _ := messages[1].(map[string]any)
		content, _ := user["content"].(string)
		assert.Contains(t, content, "Graphics Programmer")

		_, _ = w.Write([]byte(chatReply(`{"field_type": "Rendering & Graphics"}`)))
	}))
	defer srv.Close()

	client := NewLLMClient("test-key", srv.URL, "test-model", 2)

	field, err := client.Categorize(context.Background(), &models.VacancyRecord{
		ID:           "1",
		Name:         "Graphics Programmer",
		Description:  "vulkan renderer",
		Technologies: []string{"C++", "Vulkan"},
	})

	require.NoError(t, err)
	assert.Equal(t, FieldRendering, field)
}

func TestLLMCategorizeSalvagesWrappedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatReply("Sure! Here is the answer:\n{\"field_type\": \"Game Development\"}\nHope this helps.")))
	}))
	defer srv.Close()

	client := NewLLMClient("test-key", srv.URL, "test-model", 1)

	field, err := client.Categorize(context.Background(), &models.VacancyRecord{ID: "1", Name: "Dev"})
	require.NoError(t, err)
	assert.Equal(t, FieldGameDev, field)
}

func TestLLMCategorizeUnknownAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatReply(`{"field_type": "Quantum Gardening"}`)))
	}))
	defer srv.Close()

	client := NewLLMClient("test-key", srv.URL, "test-model", 1)

	field, err := client.Categorize(context.Background(), &models.VacancyRecord{ID: "1", Name: "Dev"})
	require.NoError(t, err)
	assert.Equal(t, FieldUnknown, field)
}

func TestLLMCategorizeEmptyKey(t *testing.T) {
	client := NewLLMClient("", "http://unused", "test-model", 1)

	_, err := client.Categorize(context.Background(), &models.VacancyRecord{ID: "1", Name: "Dev"})
	assert.ErrorIs(t, err, ErrEmptyAPIKey)
}

func TestLLMCategorizeUnparsableReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(chatReply("I cannot classify this vacancy.")))
	}))
	defer srv.Close()

	client := NewLLMClient("test-key", srv.URL, "test-model", 1)

	_, err := client.Categorize(context.Background(), &models.VacancyRecord{ID: "1", Name: "Dev"})
	assert.ErrorIs(t, err, ErrUnparsableReply)
}

func TestExtractJSON(t *testing.T) {
	parsed, err := extractJSON(`{"field_type": "Frontend"}`)
	require.NoError(t, err)
	assert.Equal(t, "Frontend", parsed["field_type"])

	parsed, err = extractJSON("```json\n{\"field_type\": \"Frontend\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Frontend", parsed["field_type"])

	_, err = extractJSON("no json here")
	assert.ErrorIs(t, err, ErrUnparsableReply)
}

func TestLLMPromptStaysBounded(t *testing.T) {
	var captured string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)

		messages, _ := req["messages"].([]any)
		user, _ := messages[1].(map[string]any)
		captured, _ = user["content"].(string)

		_, _ = w.Write([]byte(chatReply(`{"field_type": "Backend"}`)))
	}))
	defer srv.Close()

	client := NewLLMClient("test-key", srv.URL, "test-model", 1)

	_, err := client.Categorize(context.Background(), &models.VacancyRecord{
		ID:          "1",
		Name:        "Dev",
		Description: strings.Repeat("очень длинное описание ", 500),
	})
	require.NoError(t, err)

	// The description is truncated before it goes into the prompt.
	assert.Less(t, len(captured), 3*maxPromptChars)
}
