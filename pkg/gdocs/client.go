// Package gdocs is a minimal Google Docs and Drive client covering the
// operations this application needs: create a document, fill it with
// text, and grant access. Auth is a service-account token source from
// golang.org/x/oauth2; the REST calls are hand-built.
package gdocs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
)

const (
	defaultDocsBaseURL  = "https://docs.googleapis.com"
	defaultDriveBaseURL = "https://www.googleapis.com"
)

// Permission roles accepted by the Drive permissions endpoint.
const (
	RoleReader = "reader"
	RoleWriter = "writer"
)

// Client performs Google Docs / Drive operations.
type Client interface {
	CreateDocument(ctx context.Context, title string) (*Document, error)
	InsertText(ctx context.Context, documentID, text string) error
	ShareWithEmail(ctx context.Context, documentID, email, role string) error
}

// Document is the subset of the Docs API document resource we read.
type Document struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
}

// URL returns the browser URL for a document ID.
func URL(documentID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", documentID)
}

// Option configures the client.
type Option func(*httpClient)

// WithDocsBaseURL overrides the Docs API base URL.
func WithDocsBaseURL(url string) Option {
	return func(c *httpClient) {
		c.docsBaseURL = url
	}
}

// WithDriveBaseURL overrides the Drive API base URL.
func WithDriveBaseURL(url string) Option {
	return func(c *httpClient) {
		c.driveBaseURL = url
	}
}

type httpClient struct {
	docsBaseURL  string
	driveBaseURL string
	http         *http.Client
}

// NewClient creates a Docs/Drive client on top of hc, which must
// already carry credentials (see ServiceAccountClient). A nil hc gets
// a plain client, useful only against test servers.
func NewClient(hc *http.Client, opts ...Option) Client {
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	c := &httpClient{
		docsBaseURL:  defaultDocsBaseURL,
		driveBaseURL: defaultDriveBaseURL,
		http:         hc,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) CreateDocument(ctx context.Context, title string) (*Document, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return nil, eris.Wrap(err, "gdocs: marshal request")
	}

	respBody, err := c.post(ctx, c.docsBaseURL+"/v1/documents", body)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return nil, eris.Wrap(err, "gdocs: unmarshal document")
	}
	return &doc, nil
}

// batchUpdateRequest is the subset of the Docs batchUpdate body we send.
type batchUpdateRequest struct {
	Requests []updateRequest `json:"requests"`
}

type updateRequest struct {
	InsertText *insertTextRequest `json:"insertText,omitempty"`
}

type insertTextRequest struct {
	Location location `json:"location"`
	Text     string   `json:"text"`
}

type location struct {
	Index int `json:"index"`
}

func (c *httpClient) InsertText(ctx context.Context, documentID, text string) error {
	// Index 1 is the first position inside the document body.
	body, err := json.Marshal(batchUpdateRequest{
		Requests: []updateRequest{
			{InsertText: &insertTextRequest{Location: location{Index: 1}, Text: text}},
		},
	})
	if err != nil {
		return eris.Wrap(err, "gdocs: marshal request")
	}

	url := fmt.Sprintf("%s/v1/documents/%s:batchUpdate", c.docsBaseURL, documentID)
	_, err = c.post(ctx, url, body)
	return err
}

type permissionRequest struct {
	Type         string `json:"type"`
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress"`
}

func (c *httpClient) ShareWithEmail(ctx context.Context, documentID, email, role string) error {
	body, err := json.Marshal(permissionRequest{
		Type:         "user",
		Role:         role,
		EmailAddress: email,
	})
	if err != nil {
		return eris.Wrap(err, "gdocs: marshal request")
	}

	url := fmt.Sprintf("%s/drive/v3/files/%s/permissions?sendNotificationEmail=false", c.driveBaseURL, documentID)
	_, err = c.post(ctx, url, body)
	return err
}

func (c *httpClient) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "gdocs: create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "gdocs: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "gdocs: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("gdocs: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}
