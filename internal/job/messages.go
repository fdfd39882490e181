package job

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/nest-agency/pitch-cli/internal/model"
	"github.com/nest-agency/pitch-cli/internal/pipeline"
	"github.com/nest-agency/pitch-cli/internal/publish"
)

// timestampLayout matches the generated-at format written into the
// document itself.
const timestampLayout = "2006-01-02 15:04:05"

func receivedMessage(j model.Job) string {
	return fmt.Sprintf("📥 **Job `%s` received:** pitch plan for **%s**", j.ShortID(), j.ClientName)
}

func extractingMessage(clientName string) string {
	return fmt.Sprintf("📊 **Step 1/4:** Extracting client data for %s from Notion...", clientName)
}

func generatingMessage() string {
	return "🧠 **Step 2/4:** Generating strategic analysis and narrative..."
}

func publishingMessage() string {
	return "📄 **Step 3/4:** Creating formatted Google Doc..."
}

func notFoundMessage(clientName string) string {
	return fmt.Sprintf("❌ **Client not found:** Could not find '%s' in Notion.", clientName)
}

func generationFailedMessage(err error) string {
	var stageErr *pipeline.StageError
	if eris.As(err, &stageErr) {
		phrase := strings.ReplaceAll(string(stageErr.Stage), "_", " ")
		return fmt.Sprintf("❌ **Generation failed:** Failed at %s step", phrase)
	}
	return fmt.Sprintf("❌ **Generation failed:** %s", err)
}

func publishFailedMessage() string {
	return "❌ **Document creation failed**"
}

func systemErrorMessage(v any) string {
	return fmt.Sprintf("❌ **System Error:** %v", v)
}

func successMessage(plan *model.PitchPlan, result *publish.Result) string {
	return fmt.Sprintf(
		"✅ **Pitch Plan Complete - %s**\n\n"+
			"🎯 Strategic pitch plan ready for team review\n"+
			"📄 **Document:** %s\n"+
			"📧 **Shared with:** %s\n"+
			"⏱️ **Generated:** %s",
		plan.ClientName,
		result.URL,
		strings.Join(result.SharedWith, ", "),
		plan.GeneratedAt.Format(timestampLayout),
	)
}
