// Package extract pulls client records out of the Notion pitch
// database and normalizes them for the generation pipeline.
package extract

import (
	"context"
	"strings"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/nest-agency/pitch-cli/internal/model"
	"github.com/nest-agency/pitch-cli/pkg/notion"
)

// ErrNotFound reports that no client page matched the requested name.
var ErrNotFound = eris.New("extract: client not found")

// Extractor looks up client records in a single Notion database.
type Extractor struct {
	client notion.Client
	dbID   string
}

// NewExtractor creates an Extractor over the given database.
func NewExtractor(client notion.Client, dbID string) *Extractor {
	return &Extractor{client: client, dbID: dbID}
}

// Find returns the record of the first client page whose name contains
// the query, compared with Unicode case folding. Database order decides
// which page is first; additional matches are logged and ignored.
// Returns ErrNotFound when nothing matches.
func (e *Extractor) Find(ctx context.Context, name string) (model.ClientRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ClientRecord{}, eris.New("extract: empty client name")
	}

	pages, err := notion.QueryAll(ctx, e.client, e.dbID, nil)
	if err != nil {
		return model.ClientRecord{}, eris.Wrap(err, "extract: query pitch database")
	}

	fold := cases.Fold()
	needle := fold.String(name)

	var found *model.ClientRecord
	matches := 0
	for _, p := range pages {
		r := parseClientPage(p)
		if !strings.Contains(fold.String(r.Name), needle) {
			continue
		}
		matches++
		if found == nil {
			rec := r
			found = &rec
		}
	}

	if found == nil {
		return model.ClientRecord{}, ErrNotFound
	}
	if matches > 1 {
		zap.L().Warn("extract: multiple clients matched, using first",
			zap.String("query", name),
			zap.Int("matches", matches),
			zap.String("client", found.Name),
		)
	}

	record := *found
	record.Normalize()
	return record, nil
}

// List returns every client record in the database, normalized, in
// database order. Pages without a name are skipped.
func (e *Extractor) List(ctx context.Context) ([]model.ClientRecord, error) {
	pages, err := notion.QueryAll(ctx, e.client, e.dbID, nil)
	if err != nil {
		return nil, eris.Wrap(err, "extract: query pitch database")
	}

	records := make([]model.ClientRecord, 0, len(pages))
	for _, p := range pages {
		r := parseClientPage(p)
		r.Normalize()
		if r.Name == "" {
			zap.L().Warn("extract: skipping client page without a name",
				zap.String("page_id", string(p.ID)),
			)
			continue
		}
		records = append(records, r)
	}

	return records, nil
}

func parseClientPage(p notionapi.Page) model.ClientRecord {
	var r model.ClientRecord

	// Name (title)
	if prop, ok := p.Properties["Name"]; ok {
		if tp, ok := prop.(*notionapi.TitleProperty); ok {
			r.Name = plainText(tp.Title)
		}
	}

	// Status (select)
	if prop, ok := p.Properties["Status"]; ok {
		if sp, ok := prop.(*notionapi.SelectProperty); ok {
			r.Status = sp.Select.Name
		}
	}

	// Category (select)
	if prop, ok := p.Properties["Category"]; ok {
		if sp, ok := prop.(*notionapi.SelectProperty); ok {
			r.Category = sp.Select.Name
		}
	}

	// Services (multi_select)
	if prop, ok := p.Properties["Services"]; ok {
		if msp, ok := prop.(*notionapi.MultiSelectProperty); ok {
			for _, opt := range msp.MultiSelect {
				r.Services = append(r.Services, opt.Name)
			}
		}
	}

	// SO (rich_text) holds the account owner.
	if prop, ok := p.Properties["SO"]; ok {
		if rtp, ok := prop.(*notionapi.RichTextProperty); ok {
			r.AccountOwner = plainText(rtp.RichText)
		}
	}

	// Sales (rich_text)
	if prop, ok := p.Properties["Sales"]; ok {
		if rtp, ok := prop.(*notionapi.RichTextProperty); ok {
			r.SalesOwner = plainText(rtp.RichText)
		}
	}

	r.QualificationCall = urlProperty(p, "Qualification Call")
	r.DiscoveryCall = urlProperty(p, "Discovery Call")
	r.DiscoveryNotes = urlProperty(p, "Discovery Notes")
	r.PitchStrategy = urlProperty(p, "Pitch Strategy")
	r.PitchDeck = urlProperty(p, "Pitch")

	return r
}

func urlProperty(p notionapi.Page, name string) string {
	if prop, ok := p.Properties[name]; ok {
		if up, ok := prop.(*notionapi.URLProperty); ok {
			return up.URL
		}
	}
	return ""
}

// plainText concatenates the plain_text values from a slice of RichText.
func plainText(rts []notionapi.RichText) string {
	var s string
	for _, rt := range rts {
		s += rt.PlainText
	}
	return s
}
