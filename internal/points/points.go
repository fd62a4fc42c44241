// Package points creates collection points on the points API.
package points

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/ecoleta/internal/models"
	"github.com/UnknownOlympus/ecoleta/internal/upstream"
)

const apiName = "points"

// Client posts submissions to the points API.
type Client struct {
	client  upstream.HTTPClient // HTTP client for making requests
	baseURL string              // Base URL of the points API
	log     *slog.Logger        // Logger for logging operations
}

type createdPoint struct {
	ID int `json:"id"`
}

// NewClient creates a points client for the API at baseURL.
func NewClient(client upstream.HTTPClient, baseURL string, log *slog.Logger) *Client {
	return &Client{client: client, baseURL: baseURL, log: log}
}

// Create posts sub as multipart/form-data to {baseURL}/points and returns the
// id of the created point, or 0 when the API does not report one.
func (c *Client) Create(ctx context.Context, sub models.Submission) (int, error) {
	reqURL, err := url.JoinPath(c.baseURL, "points")
	if err != nil {
		return 0, fmt.Errorf("failed to build points URL: %w", err)
	}

	body, contentType, err := Encode(sub)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.log.DebugContext(ctx, "Creating collection point",
		"name", sub.Name, "city", sub.City, "uf", sub.UF, "items", len(sub.Items), "image", sub.Image != nil)

	respBody, err := upstream.Do(c.client, apiName, req)
	if err != nil {
		return 0, err
	}

	var created createdPoint
	if err = json.Unmarshal(respBody, &created); err != nil {
		c.log.DebugContext(ctx, "Points API response carries no point id", "body", string(respBody))
		return 0, nil
	}

	return created.ID, nil
}

// Encode renders sub as a multipart/form-data body and returns it with its
// content type. Fields are written in the order name, email, whatsapp, city,
// uf, latitude, longitude, items, then the optional image file.
func Encode(sub models.Submission) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"name", sub.Name},
		{"email", sub.Email},
		{"whatsapp", sub.Whatsapp},
		{"city", sub.City},
		{"uf", sub.UF},
		{"latitude", formatCoordinate(sub.Position.Latitude)},
		{"longitude", formatCoordinate(sub.Position.Longitude)},
		{"items", models.JoinIDs(sub.Items)},
	}
	for _, field := range fields {
		if err := writer.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", field.name, err)
		}
	}

	if sub.Image != nil {
		part, err := writer.CreatePart(imageHeader(sub.Image))
		if err != nil {
			return nil, "", fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err = part.Write(sub.Image.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write image part: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// formatCoordinate uses the shortest decimal that round-trips, so -23.5 is sent as "-23.5".
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func imageHeader(image *models.Image) textproto.MIMEHeader {
	filename := image.Filename
	if filename == "" {
		filename = "image"
	}
	contentType := image.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(image.Data)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(filename)))
	header.Set("Content-Type", contentType)

	return header
}
