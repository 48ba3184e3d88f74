package analysis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/google/uuid"
	"github.com/yildizm/RFPCheck/internal/intake"
)

const (
	// RFPField and ProposalField are the multipart part names the service expects
	RFPField      = "rfp_file"
	ProposalField = "proposal_file"

	requestIDHeader = "X-Request-ID"
)

// Client calls the remote eligibility analysis service. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	config   *Config
	client   *http.Client
	endpoint *url.URL
}

// NewClient creates a client from config, falling back to defaults when nil
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, NewConfigurationError("endpoint", fmt.Sprintf("invalid endpoint URL: %v", err))
	}

	return &Client{
		config:   config,
		client:   &http.Client{Timeout: config.Timeout},
		endpoint: base.JoinPath(AnalyzePath),
	}, nil
}

// Endpoint returns the full analyze URL
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Analyze uploads both documents in a single attempt and returns the decoded
// verdicts. Non-2xx responses and transport failures become
// *RequestFailedError; schema violations become *MalformedResponseError.
func (c *Client) Analyze(ctx context.Context, rfp, proposal intake.File) (*Outcome, error) {
	body, contentType, err := buildMultipart(rfp, proposal)
	if err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &RequestFailedError{Endpoint: c.endpoint.String(), RequestID: requestID, Cause: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &RequestFailedError{Endpoint: c.endpoint.String(), RequestID: requestID, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestFailedError{Status: resp.StatusCode, Endpoint: c.endpoint.String(), RequestID: requestID, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RequestFailedError{
			Status:    resp.StatusCode,
			Body:      string(payload),
			Endpoint:  c.endpoint.String(),
			RequestID: requestID,
		}
	}

	return DecodeOutcome(payload, c.config.ValidateResponse)
}

// buildMultipart writes the two document parts
func buildMultipart(rfp, proposal intake.File) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writePart(writer, RFPField, rfp); err != nil {
		return nil, "", err
	}
	if err := writePart(writer, ProposalField, proposal); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

func writePart(writer *multipart.Writer, field string, file intake.File) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Name))
	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = "application/octet-stream"
	}
	header.Set("Content-Type", mediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("failed to create %s part: %w", field, err)
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to write %s part: %w", field, err)
	}
	return nil
}
