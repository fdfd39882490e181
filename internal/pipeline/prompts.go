package pipeline

import (
	"fmt"

	"github.com/nest-agency/pitch-cli/internal/model"
)

// System messages for the chat-backed stages. The narrative stage
// sends its framing inside the prompt itself.
const (
	strategistSystem = "You are a senior strategy consultant specializing in B2B agency pitch development."
	plannerSystem    = "You are a pitch plan specialist who creates execution-ready strategic documents."
)

// clientBrief renders the normalized record as the CLIENT INTELLIGENCE
// block. The record is already normalized, so every slot has a value
// and no branching on missing fields happens here.
func clientBrief(r model.ClientRecord) string {
	return fmt.Sprintf(`
CLIENT NAME: %s
STATUS: %s
CATEGORY: %s
SERVICES NEEDED: %s
ACCOUNT OWNER: %s
SALES OWNER: %s

AVAILABLE DATA SOURCES:
- Qualification Call: %s
- Discovery Call: %s
- Discovery Notes: %s
- Pitch Strategy: %s
`, r.Name, r.Status, r.Category, r.ServicesLine(), r.AccountOwner, r.SalesOwner,
		r.QualificationCall, r.DiscoveryCall, r.DiscoveryNotes, r.PitchStrategy)
}

func strategicAnalysisPrompt(r model.ClientRecord) string {
	return fmt.Sprintf(`ROLE: Senior Strategy Consultant analyzing B2B agency pitch opportunity

CLIENT INTELLIGENCE:
%s

TASK: Create comprehensive strategic foundation for pitch development with these exact sections:

1. STRATEGIC OBJECTIVES
   - 3-5 SMART goals aligned with client's stated needs
   - Connect their business ambitions to measurable outcomes

2. KEY CHALLENGES
   - Top 5 prioritized obstacles with impact assessment
   - Focus on gaps between their ambitions and current state

3. CAPABILITY GAPS
   - Creative gaps (brand, messaging, content needs)
   - Media gaps (channel optimization, targeting, measurement)
   - Process gaps (operations, tech, integration needs)
   - For each gap, provide specific solution pathway

4. COMPETITIVE CONTEXT
   - Market positioning opportunities
   - How to differentiate our approach

5. NARRATIVE HOOKS
   - Key story elements for compelling pitch narrative
   - Specific client pain points that create urgency

OUTPUT: Well-structured analysis with clear section headers, client-specific insights.`, clientBrief(r))
}

func narrativePrompt(strategicFoundation, clientName string) string {
	return fmt.Sprintf(`Transform this strategic analysis into a powerful narrative using SITUATION → FRICTION → SOLUTION framework.

STRATEGIC FOUNDATION:
%s

CLIENT: %s

Create exactly 3 paragraphs:

SITUATION (Paragraph 1): Acknowledge %s's current position and ambitious goals
FRICTION (Paragraph 2): Identify the gap between their ambitions and current capabilities
SOLUTION (Paragraph 3): Position our agency as the partner that delivers the new operating model they need

REQUIREMENTS:
- Use %s specifically throughout
- Reference specific details from the strategic foundation
- Consultative confidence without overselling
- 150-200 words each paragraph`, strategicFoundation, clientName, clientName, clientName)
}

func planIntegrationPrompt(strategicFoundation, narrative, clientName string) string {
	return fmt.Sprintf(`Create comprehensive pitch plan integrating strategic analysis with compelling narrative.

STRATEGIC FOUNDATION:
%s

NARRATIVE:
%s

CLIENT: %s

Create a complete pitch plan with these sections:

1. EXECUTIVE SUMMARY
2. STRATEGIC FOUNDATION
3. PROPOSED APPROACH
4. CAPABILITY DEMONSTRATION
5. INVESTMENT & NEXT STEPS

REQUIREMENTS:
- Strategic insights woven throughout
- Narrative elements enhance each section
- Client-specific customization
- 2000-3000 words total
- Professional formatting`, strategicFoundation, narrative, clientName)
}
