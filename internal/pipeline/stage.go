package pipeline

import (
	"fmt"

	"github.com/nest-agency/pitch-cli/internal/llm"
	"github.com/nest-agency/pitch-cli/internal/model"
)

// StageError reports which stage of the chain failed. The wrapped
// error keeps the provider detail for logs; notification text uses
// only the stage identifier.
type StageError struct {
	Stage model.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline: stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// StageParams carries the resolved generation parameters for each
// stage. Models are already resolved here; an empty model falls
// through to the backend client's default.
type StageParams struct {
	StrategicAnalysis    llm.Params
	NarrativeDevelopment llm.Params
	PlanIntegration      llm.Params
}

// DefaultStageParams mirrors the production settings the pipeline has
// always run with.
func DefaultStageParams() StageParams {
	return StageParams{
		StrategicAnalysis:    llm.Params{Temperature: 0.1, MaxTokens: 2500},
		NarrativeDevelopment: llm.Params{Temperature: 0.3, MaxTokens: 1500},
		PlanIntegration:      llm.Params{Temperature: 0.1, MaxTokens: 4000},
	}
}

// accumulator carries the record and the outputs accumulated so far
// through the fold. Each stage reads what earlier stages wrote.
type accumulator struct {
	record     model.ClientRecord
	foundation string
	narrative  string
	finalPlan  string
}

// stageDescriptor binds one stage to its backend, prompt builder, and
// output slot. The run order of the slice is the run order of the
// chain.
type stageDescriptor struct {
	stage   model.Stage
	backend llm.Completer
	system  string
	prompt  func(acc *accumulator) string
	params  llm.Params
	assign  func(acc *accumulator, text string)
}
