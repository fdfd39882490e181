package model

import "time"

// Stage identifies one step of the three-stage generation chain.
type Stage string

const (
	StageStrategicAnalysis    Stage = "strategic_analysis"
	StageNarrativeDevelopment Stage = "narrative_development"
	StagePlanIntegration      Stage = "plan_integration"
)

// Stages lists the chain in execution order.
var Stages = []Stage{
	StageStrategicAnalysis,
	StageNarrativeDevelopment,
	StagePlanIntegration,
}

// Output tags under which stage results are accumulated. The tag names
// differ from the stage identifiers on purpose: the tag describes the
// artifact, the stage describes the step that produced it.
const (
	OutputStrategicFoundation = "strategic_foundation"
	OutputNarrative           = "narrative"
	OutputFinalPlan           = "final_plan"
)

// PitchPlan is the complete result bundle of a successful generation
// run. All three texts are non-empty; a failed run produces no bundle
// at all.
type PitchPlan struct {
	ClientName          string    `json:"client_name"`
	StrategicFoundation string    `json:"strategic_foundation"`
	Narrative           string    `json:"narrative"`
	FinalPlan           string    `json:"final_plan"`
	GeneratedAt         time.Time `json:"generated_at"`
}
