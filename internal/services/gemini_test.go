package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/tabernacle/internal/models"
	"github.com/desertthunder/tabernacle/internal/shared"
)

func textReply(text string) map[string]any {
	return map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": text}}},
		}},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := shared.AssistantConfig{
		BaseURL:   server.URL,
		APIKey:    "test-key",
		ChatModel: "chat-model",
		TextModel: "text-model",
		Timeout:   shared.Duration{Duration: 5 * time.Second},
	}
	return NewGeminiClient(cfg, nil), server
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func TestGeminiClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Chat", func(t *testing.T) {
		t.Run("Sends History And Persona", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if r.URL.Path != "/v1beta/models/chat-model:generateContent" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.Header.Get("x-goog-api-key") != "test-key" {
					t.Errorf("missing api key header")
				}

				var req generateRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				if len(req.Contents) != 2 || req.Contents[0].Role != "model" || req.Contents[1].Parts[0].Text != "Prie pour moi" {
					t.Errorf("unexpected contents %+v", req.Contents)
				}
				if req.SystemInstruction == nil || !strings.Contains(req.SystemInstruction.Parts[0].Text, "Tabernacle de la Foi") {
					t.Error("missing persona system instruction")
				}

				writeJSON(w, textReply("Amen."))
			})

			history := []models.ChatMessage{{Role: models.RoleModel, Content: "Bonjour"}}
			reply, err := client.Chat(ctx, "Prie pour moi", history)
			if err != nil {
				t.Fatalf("Chat failed: %v", err)
			}
			if reply != "Amen." {
				t.Errorf("expected Amen., got %q", reply)
			}
		})

		t.Run("Skips Thought Parts", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, map[string]any{
					"candidates": []any{map[string]any{
						"content": map[string]any{"parts": []any{
							map[string]any{"text": "réflexion", "thought": true},
							map[string]any{"text": "Paix."},
						}},
					}},
				})
			})

			reply, _ := client.Chat(ctx, "x", nil)
			if reply != "Paix." {
				t.Errorf("expected thought parts to be skipped, got %q", reply)
			}
		})

		t.Run("Server Error", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte("boom"))
			})

			_, err := client.Chat(ctx, "x", nil)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Blocked Prompt", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, map[string]any{"promptFeedback": map[string]any{"blockReason": "SAFETY"}})
			})

			_, err := client.Chat(ctx, "x", nil)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("QuizQuestion", func(t *testing.T) {
		t.Run("Valid Question", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var req generateRequest
				json.NewDecoder(r.Body).Decode(&req)
				if req.GenerationConfig == nil || req.GenerationConfig.ResponseMimeType != "application/json" {
					t.Error("expected JSON response mime type")
				}
				if req.GenerationConfig.ResponseSchema == nil || len(req.GenerationConfig.ResponseSchema.Required) != 4 {
					t.Error("expected quiz schema with four required fields")
				}
				if !strings.Contains(req.Contents[0].Parts[0].Text, "Avancé") {
					t.Error("prompt should carry the difficulty")
				}

				q := `{"question":"Qui a construit l'arche ?","options":["Noé","Moïse","David","Paul"],"correctAnswer":0,"explanation":"Genèse 6."}`
				writeJSON(w, textReply(q))
			})

			q, err := client.QuizQuestion(ctx, DifficultyAdvanced)
			if err != nil {
				t.Fatalf("QuizQuestion failed: %v", err)
			}
			if q.Options[q.CorrectAnswer] != "Noé" {
				t.Errorf("unexpected question %+v", q)
			}
		})

		t.Run("Malformed JSON", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, textReply("pas du json"))
			})

			_, err := client.QuizQuestion(ctx, DifficultyBeginner)
			if !errors.Is(err, shared.ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})

		t.Run("Invalid Shape", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, textReply(`{"question":"q","options":["a","b"],"correctAnswer":5}`))
			})

			_, err := client.QuizQuestion(ctx, DifficultyBeginner)
			if !errors.Is(err, shared.ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	})

	t.Run("ChapterText", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/v1beta/models/text-model:generateContent" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			writeJSON(w, textReply(`{"verses":[{"number":1,"text":"Au commencement"},{"number":2,"text":"La terre"}]}`))
		})

		verses, err := client.ChapterText(ctx, "Genèse", 1)
		if err != nil {
			t.Fatalf("ChapterText failed: %v", err)
		}
		if len(verses) != 2 || verses[1].Number != 2 {
			t.Errorf("unexpected verses %+v", verses)
		}
	})

	t.Run("Narrate", func(t *testing.T) {
		t.Run("Decodes Inline Audio", func(t *testing.T) {
			pcm := []byte{1, 0, 2, 0}
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var req generateRequest
				json.NewDecoder(r.Body).Decode(&req)
				if req.GenerationConfig == nil || req.GenerationConfig.ResponseModalities[0] != "AUDIO" {
					t.Error("expected AUDIO modality")
				}
				if req.GenerationConfig.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName != "Kore" {
					t.Error("expected default voice Kore")
				}
				if !strings.HasPrefix(req.Contents[0].Parts[0].Text, "Lis ce texte biblique solennellement") {
					t.Error("missing narration prefix")
				}

				writeJSON(w, map[string]any{
					"candidates": []any{map[string]any{
						"content": map[string]any{"parts": []any{map[string]any{
							"inlineData": map[string]any{"mimeType": "audio/L16;rate=24000", "data": base64.StdEncoding.EncodeToString(pcm)},
						}}},
					}},
				})
			})

			got, err := client.Narrate(ctx, "Au commencement")
			if err != nil {
				t.Fatalf("Narrate failed: %v", err)
			}
			if string(got) != string(pcm) {
				t.Errorf("expected %v, got %v", pcm, got)
			}
		})

		t.Run("Missing Audio", func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, textReply("no audio"))
			})

			if _, err := client.Narrate(ctx, "x"); !errors.Is(err, shared.ErrEmptyAudio) {
				t.Errorf("expected ErrEmptyAudio, got %v", err)
			}
		})
	})

	t.Run("Bearer Token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer tok" {
				t.Errorf("expected bearer token, got %q", r.Header.Get("Authorization"))
			}
			writeJSON(w, textReply("ok"))
		}))
		defer server.Close()

		client := NewGeminiClient(shared.AssistantConfig{BaseURL: server.URL, AccessToken: "tok"}, nil)
		if _, err := client.Meditation(ctx, "Jean 8:12"); err != nil {
			t.Fatalf("Meditation failed: %v", err)
		}
	})

	t.Run("Missing Credentials", func(t *testing.T) {
		client := NewGeminiClient(shared.AssistantConfig{BaseURL: "http://127.0.0.1:1"}, nil)
		if client.Configured() {
			t.Error("client without key should not be configured")
		}
		if _, err := client.PhotoCaption(ctx, "x"); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("Ping", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.URL.Path != "/v1beta/models" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			writeJSON(w, map[string]any{"models": []any{}})
		})

		if _, err := client.Ping(ctx); err != nil {
			t.Errorf("Ping failed: %v", err)
		}
	})

	t.Run("Rate Limit Honours Context", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, textReply("ok"))
		})
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := client.ChapterExplanation(cctx, "Jean", 1); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}
