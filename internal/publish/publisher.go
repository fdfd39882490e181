// Package publish renders finished pitch plans into Google Docs and
// shares them with the team.
package publish

import (
	"context"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nest-agency/pitch-cli/internal/model"
	"github.com/nest-agency/pitch-cli/pkg/gdocs"
)

// ErrNoDocumentURL reports that the document backend did not return a
// usable document ID.
var ErrNoDocumentURL = eris.New("publish: no document URL")

// timestampLayout matches the generated-at format shown in Slack.
const timestampLayout = "2006-01-02 15:04:05"

// Result describes one published document.
type Result struct {
	URL        string
	SharedWith []string
}

// Publisher creates pitch plan documents and shares them with a fixed
// recipient list.
type Publisher struct {
	client gdocs.Client
	emails []string
}

// NewPublisher creates a Publisher that shares every document with the
// given team emails.
func NewPublisher(client gdocs.Client, teamEmails []string) *Publisher {
	return &Publisher{client: client, emails: teamEmails}
}

// Publish creates a document holding the rendered plan and shares it
// with the team. Sharing is best effort: individual share failures are
// logged and do not fail the publish.
func (p *Publisher) Publish(ctx context.Context, plan *model.PitchPlan) (*Result, error) {
	doc, err := p.client.CreateDocument(ctx, fmt.Sprintf("Pitch Plan - %s", plan.ClientName))
	if err != nil {
		return nil, eris.Wrap(err, "publish: create document")
	}
	if doc == nil || doc.DocumentID == "" {
		return nil, ErrNoDocumentURL
	}

	log := zap.L().With(
		zap.String("client", plan.ClientName),
		zap.String("document_id", doc.DocumentID),
	)

	if err := p.client.InsertText(ctx, doc.DocumentID, renderBody(plan)); err != nil {
		return nil, eris.Wrap(err, "publish: insert document body")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, email := range p.emails {
		email := email // per-iteration copy; go directive predates 1.22 loop semantics
		g.Go(func() error {
			if shareErr := p.client.ShareWithEmail(gctx, doc.DocumentID, email, gdocs.RoleWriter); shareErr != nil {
				log.Warn("publish: share failed",
					zap.String("email", email),
					zap.Error(shareErr),
				)
			}
			return nil // sharing is best effort
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "publish: share fan-out")
	}

	log.Info("publish: document ready", zap.Int("recipients", len(p.emails)))

	return &Result{
		URL:        gdocs.URL(doc.DocumentID),
		SharedWith: p.emails,
	}, nil
}

// renderBody lays out the plan as plain document text. The Docs API
// insert is a single text run, so section markers stand in for rich
// formatting.
func renderBody(plan *model.PitchPlan) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "PITCH PLAN: %s\n", plan.ClientName)
	fmt.Fprintf(&sb, "Generated: %s\n", plan.GeneratedAt.Format(timestampLayout))

	sections := []struct {
		heading string
		text    string
	}{
		{"STRATEGIC FOUNDATION", plan.StrategicFoundation},
		{"NARRATIVE", plan.Narrative},
		{"FINAL PITCH PLAN", plan.FinalPlan},
	}
	for _, s := range sections {
		fmt.Fprintf(&sb, "\n=== %s ===\n\n%s\n", s.heading, strings.TrimSpace(s.text))
	}

	return sb.String()
}
