package gdocs

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/oauth2/google"
)

// OAuth scopes required for document creation and sharing.
const (
	ScopeDocuments = "https://www.googleapis.com/auth/documents"
	ScopeDrive     = "https://www.googleapis.com/auth/drive"
)

// ServiceAccountClient builds an authenticated *http.Client from a
// service-account key file. The returned client refreshes its token
// automatically; pass it to NewClient.
func ServiceAccountClient(ctx context.Context, credentialsFile string) (*http.Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, eris.Wrapf(err, "gdocs: read credentials %s", credentialsFile)
	}

	cfg, err := google.JWTConfigFromJSON(data, ScopeDocuments, ScopeDrive)
	if err != nil {
		return nil, eris.Wrap(err, "gdocs: parse service account key")
	}

	hc := cfg.Client(ctx)
	hc.Timeout = 30 * time.Second
	return hc, nil
}
