package points_test

import (
	"bytes"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/UnknownOlympus/ecoleta/internal/points"
	"github.com/UnknownOlympus/ecoleta/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

type part struct {
	name, filename, contentType, value string
}

func readParts(t *testing.T, body []byte, contentType string) []part {
	t.Helper()

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	reader := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	var parts []part
	for {
		p, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(p)
		require.NoError(t, err)
		parts = append(parts, part{
			name:        p.FormName(),
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
			value:       string(data),
		})
	}

	return parts
}

func sampleSubmission() models.Submission {
	return models.Submission{
		Contact: models.Contact{
			Name:     "Recicla Campinas",
			Email:    "contato@recicla.test",
			Whatsapp: "19999990000",
		},
		City:     "Campinas",
		UF:       "SP",
		Position: models.Coordinates{Latitude: -22.9056, Longitude: -47.5},
		Items:    []int{3, 1, 6},
	}
}

func TestEncode(t *testing.T) {
	t.Run("fields in order without image", func(t *testing.T) {
		body, contentType, err := points.Encode(sampleSubmission())
		require.NoError(t, err)

		parts := readParts(t, body, contentType)

		assert.Equal(t, []part{
			{name: "name", value: "Recicla Campinas"},
			{name: "email", value: "contato@recicla.test"},
			{name: "whatsapp", value: "19999990000"},
			{name: "city", value: "Campinas"},
			{name: "uf", value: "SP"},
			{name: "latitude", value: "-22.9056"},
			{name: "longitude", value: "-47.5"},
			{name: "items", value: "3,1,6"},
		}, parts)
	})

	t.Run("empty selection", func(t *testing.T) {
		body, contentType, err := points.Encode(models.Submission{})
		require.NoError(t, err)

		parts := readParts(t, body, contentType)

		require.Len(t, parts, 8)
		assert.Equal(t, part{name: "latitude", value: "0"}, parts[5])
		assert.Equal(t, part{name: "items", value: ""}, parts[7])
	})

	t.Run("image part", func(t *testing.T) {
		sub := sampleSubmission()
		sub.Image = &models.Image{Filename: `ponto "central".png`, ContentType: "image/png", Data: []byte("png-bytes")}

		body, contentType, err := points.Encode(sub)
		require.NoError(t, err)

		parts := readParts(t, body, contentType)

		require.Len(t, parts, 9)
		assert.Equal(t, part{
			name:        "image",
			filename:    `ponto "central".png`,
			contentType: "image/png",
			value:       "png-bytes",
		}, parts[8])
	})

	t.Run("image content type is sniffed when missing", func(t *testing.T) {
		sub := sampleSubmission()
		sub.Image = &models.Image{Data: []byte("\x89PNG\r\n\x1a\n0000")}

		body, contentType, err := points.Encode(sub)
		require.NoError(t, err)

		parts := readParts(t, body, contentType)

		assert.Equal(t, "image", parts[8].filename)
		assert.Equal(t, "image/png", parts[8].contentType)
	})
}

func TestCreate(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("successful creation", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodPost, req.Method)
				assert.Equal(t, "http://api.test/points", req.URL.String())

				body, err := io.ReadAll(req.Body)
				require.NoError(t, err)
				parts := readParts(t, body, req.Header.Get("Content-Type"))
				assert.Len(t, parts, 8)

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"id":42,"name":"Recicla Campinas"}`)),
				}, nil
			},
		}

		id, err := points.NewClient(mockClient, "http://api.test", logger).Create(ctx, sampleSubmission())

		require.NoError(t, err)
		assert.Equal(t, 42, id)
	})

	t.Run("response without id", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusCreated,
					Body:       io.NopCloser(bytes.NewBufferString(``)),
				}, nil
			},
		}

		id, err := points.NewClient(mockClient, "http://api.test", logger).Create(ctx, sampleSubmission())

		require.NoError(t, err)
		assert.Zero(t, id)
	})

	t.Run("API rejects submission", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusBadRequest,
					Body:       io.NopCloser(bytes.NewBufferString(`{"message":"Validation fails"}`)),
				}, nil
			},
		}

		id, err := points.NewClient(mockClient, "http://api.test", logger).Create(ctx, sampleSubmission())

		var statusErr *upstream.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.Code)
		assert.False(t, upstream.IsRetryable(err))
		assert.Zero(t, id)
	})
}
