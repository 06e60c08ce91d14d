package jigsawstack_test

import (
	"io"
	"net/http"
	"testing"

	jigsawstack "github.com/jigsawstack/jigsawstack-go"
	"github.com/jigsawstack/jigsawstack-go/httpclient"
	"github.com/jigsawstack/jigsawstack-go/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestAudio_SpeechToText(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success": true,
		"text":    "hello world",
		"chunks":  []any{map[string]any{"timestamp": []float64{0, 1.5}, "text": "hello world"}},
	}))

	resp, err := client.Audio.SpeechToText(t.Context(), &jigsawstack.SpeechToTextParams{
		SpeechToTextOptions: jigsawstack.SpeechToTextOptions{Language: "en", BySpeaker: ptr(true)},
		URL:                 "https://example.com/a.mp3",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", resp.Text)
	require.Len(t, resp.Chunks, 1)
	assert.InDelta(t, 1.5, resp.Chunks[0].Timestamp[1], 0.001)

	req := server.LastRequest(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/ai/transcribe", req.Path)

	var body map[string]any
	testutil.MustParseJSONBody(t, req, &body)
	assert.Equal(t, "https://example.com/a.mp3", body["url"])
	assert.Equal(t, "en", body["language"])
	assert.Equal(t, true, body["by_speaker"])
	assert.NotContains(t, body, "file_store_key")
}

func TestAudio_SpeechToTextRequiresSource(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{}))

	_, err := client.Audio.SpeechToText(t.Context(), &jigsawstack.SpeechToTextParams{}) //nolint:exhaustruct

	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)
	assert.Empty(t, server.Requests())
}

func TestAudio_SpeechToTextFileUsesMultipart(t *testing.T) {
	t.Parallel()

	var (
		fileContent []byte
		bodyField   string
	)

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("file")
		if err == nil {
			fileContent, _ = io.ReadAll(file)
			_ = file.Close()
		}

		bodyField = r.FormValue("body")

		testutil.WriteJSON(w, http.StatusOK, map[string]any{"success": true, "text": "from file"})
	})

	resp, err := client.Audio.SpeechToTextFile(t.Context(),
		httpclient.NamedFile{Filename: "clip.wav", ContentType: "audio/wav", Content: []byte("RIFF")},
		&jigsawstack.SpeechToTextOptions{Language: "fr"},
		httpclient.WithRequestHeader("Content-Type", "application/json"),
	)
	require.NoError(t, err)
	assert.Equal(t, "from file", resp.Text)

	assert.Equal(t, []byte("RIFF"), fileContent)
	assert.JSONEq(t, `{"language":"fr"}`, bodyField)
	assert.Contains(t, server.LastRequest(t).Header.Get("Content-Type"), "multipart/form-data")
}

func TestAudio_SpeechToTextFileWithoutOptions(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{"success": true}))

	_, err := client.Audio.SpeechToTextFile(t.Context(), httpclient.Blob("data"), nil)
	require.NoError(t, err)
	assert.NotContains(t, string(server.LastRequest(t).Body), `name="body"`)

	_, err = client.Audio.SpeechToTextFile(t.Context(), nil, nil)
	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)
}

func TestAudio_TextToSpeechReturnsAudio(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteRaw(w, http.StatusOK, "audio/mpeg", []byte{0xff, 0xfb, 0x90})
	})

	media, err := client.Audio.TextToSpeech(t.Context(), &jigsawstack.TextToSpeechParams{Text: "hi"}) //nolint:exhaustruct
	require.NoError(t, err)
	require.True(t, media.IsFile())
	assert.Equal(t, "audio/mpeg", media.File.ContentType)
	assert.Equal(t, []byte{0xff, 0xfb, 0x90}, media.File.Content)
}

func TestAudio_TextToSpeechURLReturnType(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success": true,
		"url":     "https://cdn.example.com/a.mp3",
	}))

	media, err := client.Audio.TextToSpeech(t.Context(), &jigsawstack.TextToSpeechParams{ //nolint:exhaustruct
		Text:       "hi",
		ReturnType: "url",
	})
	require.NoError(t, err)
	assert.False(t, media.IsFile())
	assert.Equal(t, "https://cdn.example.com/a.mp3", media.URL)
}

func TestVision_VOCR(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success":  true,
		"context":  map[string]any{"total": []string{"12.00"}},
		"has_text": true,
		"sections": []any{map[string]any{"text": "TOTAL 12.00", "lines": []any{}}},
	}))

	resp, err := client.Vision.VOCR(t.Context(), &jigsawstack.VOCRParams{ //nolint:exhaustruct
		Prompt:       []string{"total"},
		FileStoreKey: "receipt.png",
	})
	require.NoError(t, err)
	assert.True(t, resp.HasText)
	require.Len(t, resp.Sections, 1)
	assert.Equal(t, "TOTAL 12.00", resp.Sections[0].Text)
	assert.Equal(t, "/vocr", server.LastRequest(t).Path)
}

func TestVision_ObjectDetectionValidatesFeatures(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{"success": true}))

	_, err := client.Vision.ObjectDetection(t.Context(), &jigsawstack.ObjectDetectionParams{ //nolint:exhaustruct
		URL:      "https://example.com/cat.png",
		Features: []string{"faces"},
	})
	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)
	assert.Empty(t, server.Requests())

	_, err = client.Vision.ObjectDetection(t.Context(), &jigsawstack.ObjectDetectionParams{ //nolint:exhaustruct
		URL:      "https://example.com/cat.png",
		Features: []string{"object_detection"},
	})
	require.NoError(t, err)
	assert.Equal(t, "/ai/object_detection", server.LastRequest(t).Path)
}

func TestTranslate_Text(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success":         true,
		"translated_text": []string{"hola", "adiós"},
	}))

	resp, err := client.Translate.Text(t.Context(), &jigsawstack.TranslateParams{ //nolint:exhaustruct
		Text:           []string{"hello", "goodbye"},
		TargetLanguage: "es",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"hola", "adiós"}, resp.Texts())

	var body map[string]any
	testutil.MustParseJSONBody(t, server.LastRequest(t), &body)
	assert.Equal(t, "es", body["target_language"])
	assert.NotContains(t, body, "current_language")
}

func TestTranslate_TextRejectsBadLanguageCode(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{}))

	_, err := client.Translate.Text(t.Context(), &jigsawstack.TranslateParams{ //nolint:exhaustruct
		Text:           "hello",
		TargetLanguage: "spanish!",
	})

	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)
}

func TestTranslate_ImageBinary(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteRaw(w, http.StatusOK, "image/png", []byte("png"))
	})

	media, err := client.Translate.Image(t.Context(), &jigsawstack.TranslateImageParams{ //nolint:exhaustruct
		URL:            "https://example.com/sign.png",
		TargetLanguage: "ja",
	})
	require.NoError(t, err)
	require.True(t, media.IsFile())
	assert.Equal(t, []byte("png"), media.File.Content)
}

func TestTranslate_ImageBase64(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success": true,
		"image":   "aGVsbG8=",
	}))

	media, err := client.Translate.Image(t.Context(), &jigsawstack.TranslateImageParams{ //nolint:exhaustruct
		URL:            "https://example.com/sign.png",
		TargetLanguage: "ja",
		ReturnType:     "base64",
	})
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", media.Base64)
}

func TestSummary_Points(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success": true,
		"summary": []string{"one", "two"},
	}))

	resp, err := client.Summary.Summarize(t.Context(), &jigsawstack.SummaryParams{ //nolint:exhaustruct
		URL:  "https://example.com/post",
		Type: "points",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, resp.Points())

	_, err = client.Summary.Summarize(t.Context(), &jigsawstack.SummaryParams{}) //nolint:exhaustruct
	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)
}

func TestSQL_TextToSQLRequiresOneSchemaSource(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success": true,
		"sql":     "SELECT 1",
	}))

	_, err := client.SQL.TextToSQL(t.Context(), &jigsawstack.TextToSQLParams{Prompt: "count users"}) //nolint:exhaustruct
	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)

	_, err = client.SQL.TextToSQL(t.Context(), &jigsawstack.TextToSQLParams{ //nolint:exhaustruct
		Prompt:       "count users",
		SQLSchema:    "CREATE TABLE users (id int)",
		FileStoreKey: "schema.sql",
	})
	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)

	resp, err := client.SQL.TextToSQL(t.Context(), &jigsawstack.TextToSQLParams{ //nolint:exhaustruct
		Prompt:    "count users",
		SQLSchema: "CREATE TABLE users (id int)",
	})
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1", resp.SQL)
	assert.Len(t, server.Requests(), 1)
}

func TestClassification_Classify(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success":     true,
		"predictions": []string{"fruit"},
	}))

	resp, err := client.Classification.Classify(t.Context(), &jigsawstack.ClassificationParams{
		Dataset: []jigsawstack.ClassificationItem{{Type: "text", Value: "apple"}},
		Labels: []jigsawstack.ClassificationLabel{
			{Key: "", Type: "text", Value: "fruit"},
			{Key: "", Type: "text", Value: "vehicle"},
		},
		MultipleLabels: false,
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"fruit"}, resp.Predictions)
	assert.Equal(t, "/classification", server.LastRequest(t).Path)
}

func TestPrediction_SendsDecimalsAsNumbers(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success":    true,
		"prediction": []any{map[string]any{"date": "2024-01-06", "value": 16.25}},
	}))

	dataset := make([]jigsawstack.DataPoint, 0, 5)
	for i, value := range []string{"10.10", "11.20", "12.30", "13.40", "14.50"} {
		dataset = append(dataset, jigsawstack.DataPoint{
			Date:  "2024-01-0" + string(rune('1'+i)),
			Value: decimal.RequireFromString(value),
		})
	}

	resp, err := client.Prediction.Predict(t.Context(), &jigsawstack.PredictionParams{Dataset: dataset, Steps: 1})
	require.NoError(t, err)
	require.Len(t, resp.Prediction, 1)
	assert.True(t, resp.Prediction[0].Value.Equal(decimal.RequireFromString("16.25")))

	assert.Contains(t, string(server.LastRequest(t).Body), `{"date":"2024-01-01","value":10.1}`)
}

func TestPrediction_RequiresFivePoints(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{}))

	_, err := client.Prediction.Predict(t.Context(), &jigsawstack.PredictionParams{
		Dataset: []jigsawstack.DataPoint{{Date: "2024-01-01", Value: decimal.NewFromInt(1)}},
		Steps:   0,
	})

	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)
}

func TestEmbedding_EmbedFile(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success":    true,
		"embeddings": [][]float64{{0.1, 0.2}},
	}))

	resp, err := client.Embedding.EmbedFile(t.Context(), httpclient.Blob("%PDF"), &jigsawstack.EmbeddingParams{ //nolint:exhaustruct
		Type: "pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.1, 0.2}}, resp.Embeddings)
	assert.Contains(t, server.LastRequest(t).Header.Get("Content-Type"), "multipart/form-data")

	_, err = client.Embedding.EmbedFile(t.Context(), httpclient.Blob("%PDF"), nil)
	require.ErrorIs(t, err, jigsawstack.ErrInvalidParams)
}

func TestEmbedding_Embed(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success":    true,
		"embeddings": [][]float64{{1}},
	}))

	_, err := client.Embedding.Embed(t.Context(), &jigsawstack.EmbeddingParams{ //nolint:exhaustruct
		Type: "text",
		Text: "hello",
	})
	require.NoError(t, err)

	var body map[string]any
	testutil.MustParseJSONBody(t, server.LastRequest(t), &body)
	assert.Equal(t, map[string]any{"type": "text", "text": "hello"}, body)
}

func TestEmbedding_SpeakerFingerprint(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(t, testutil.JSONHandler(http.StatusOK, map[string]any{
		"success":            true,
		"embeddings":         [][]float64{{1}},
		"speaker_embeddings": [][]float64{{0.5, 0.25}},
	}))

	resp, err := client.Embedding.Embed(t.Context(), &jigsawstack.EmbeddingParams{ //nolint:exhaustruct
		Type:               "audio",
		URL:                "https://example.com/call.mp3",
		SpeakerFingerprint: true,
	})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5, 0.25}}, resp.SpeakerEmbeddings)

	var body map[string]any
	testutil.MustParseJSONBody(t, server.LastRequest(t), &body)
	assert.Equal(t, true, body["speaker_fingerprint"])
}

func TestImageGeneration_BinaryAndJSON(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("variant") == "url" {
			testutil.WriteJSON(w, http.StatusOK, map[string]any{"url": "https://cdn.example.com/i.png"})

			return
		}

		testutil.WriteRaw(w, http.StatusOK, "image/png", []byte("png"))
	})

	media, err := client.ImageGeneration.Generate(t.Context(), &jigsawstack.ImageGenerationParams{ //nolint:exhaustruct
		Prompt: "a lighthouse",
	})
	require.NoError(t, err)
	require.True(t, media.IsFile())
	assert.Equal(t, "image/png", media.File.ContentType)

	media, err = client.ImageGeneration.Generate(t.Context(), &jigsawstack.ImageGenerationParams{ //nolint:exhaustruct
		Prompt:     "a lighthouse",
		ReturnType: "url",
	}, httpclient.WithQuery("variant", "url"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/i.png", media.URL)
}

func TestImageGeneration_EmptyBodyIsNoContent(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := client.ImageGeneration.Generate(t.Context(), &jigsawstack.ImageGenerationParams{ //nolint:exhaustruct
		Prompt: "a lighthouse",
	})

	require.ErrorIs(t, err, httpclient.ErrNoContent)
}

func TestImageGeneration_UnparseableBody(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		testutil.WriteRaw(w, http.StatusOK, "text/html", []byte("<html>oops</html>"))
	})

	_, err := client.ImageGeneration.Generate(t.Context(), &jigsawstack.ImageGenerationParams{ //nolint:exhaustruct
		Prompt: "a lighthouse",
	})

	require.ErrorIs(t, err, httpclient.ErrDecodeResponse)

	apiErr, ok := httpclient.IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, httpclient.ParseFailureMessage, apiErr.Message)
}
