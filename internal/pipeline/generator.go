// Package pipeline chains the three generation stages into a pitch
// plan. Stages run strictly in order; the first failure stops the
// chain and nothing after it is called.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nest-agency/pitch-cli/internal/llm"
	"github.com/nest-agency/pitch-cli/internal/model"
)

// Generator runs the three-stage chain. The chat backend serves the
// analysis and integration stages; the prompt backend serves the
// narrative stage.
type Generator struct {
	chat   llm.Completer
	prompt llm.Completer
	params StageParams
}

// NewGenerator creates a Generator over the two completion backends.
func NewGenerator(chat, prompt llm.Completer, params StageParams) *Generator {
	return &Generator{
		chat:   chat,
		prompt: prompt,
		params: params,
	}
}

// stages returns the chain in execution order.
func (g *Generator) stages() []stageDescriptor {
	return []stageDescriptor{
		{
			stage:   model.StageStrategicAnalysis,
			backend: g.chat,
			system:  strategistSystem,
			prompt: func(acc *accumulator) string {
				return strategicAnalysisPrompt(acc.record)
			},
			params: g.params.StrategicAnalysis,
			assign: func(acc *accumulator, text string) { acc.foundation = text },
		},
		{
			stage:   model.StageNarrativeDevelopment,
			backend: g.prompt,
			prompt: func(acc *accumulator) string {
				return narrativePrompt(acc.foundation, acc.record.Name)
			},
			params: g.params.NarrativeDevelopment,
			assign: func(acc *accumulator, text string) { acc.narrative = text },
		},
		{
			stage:   model.StagePlanIntegration,
			backend: g.chat,
			system:  plannerSystem,
			prompt: func(acc *accumulator) string {
				return planIntegrationPrompt(acc.foundation, acc.narrative, acc.record.Name)
			},
			params: g.params.PlanIntegration,
			assign: func(acc *accumulator, text string) { acc.finalPlan = text },
		},
	}
}

// Run executes the chain for one client record and returns the
// complete bundle. On any stage failure the error is a *StageError
// naming the failed stage, and no partial bundle is returned.
func (g *Generator) Run(ctx context.Context, record model.ClientRecord) (*model.PitchPlan, error) {
	log := zap.L().With(zap.String("client", record.Name))
	log.Info("pipeline: starting generation")

	acc := &accumulator{record: record}

	for _, sd := range g.stages() {
		start := time.Now()
		log.Info("pipeline: stage starting", zap.String("stage", string(sd.stage)))

		text, err := sd.backend.Complete(ctx, llm.Request{
			System: sd.system,
			Prompt: sd.prompt(acc),
			Params: sd.params,
			Label:  string(sd.stage),
		})
		if err != nil {
			log.Error("pipeline: stage failed",
				zap.String("stage", string(sd.stage)),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return nil, &StageError{Stage: sd.stage, Err: err}
		}

		sd.assign(acc, text)
		log.Info("pipeline: stage complete",
			zap.String("stage", string(sd.stage)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("output_chars", len(text)),
		)
	}

	log.Info("pipeline: generation complete")

	return &model.PitchPlan{
		ClientName:          record.Name,
		StrategicFoundation: acc.foundation,
		Narrative:           acc.narrative,
		FinalPlan:           acc.finalPlan,
		GeneratedAt:         time.Now(),
	}, nil
}
