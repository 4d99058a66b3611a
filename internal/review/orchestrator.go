// Package review assembles editorial context for an act, invokes the
// structured-generation collaborator, and maps its fallible output into
// canonical review passes.
//
// Review is advisory, so the orchestrator is fail-soft end to end: a broken
// AI backend, bad credentials, or malformed output all degrade into a review
// pass that carries the error as a finding instead of propagating a failure
// to the caller.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vampirenirmal/redline/internal/agent"
	"github.com/vampirenirmal/redline/internal/continuity"
	"github.com/vampirenirmal/redline/internal/outline"
	"github.com/vampirenirmal/redline/internal/schema"
)

// OutlineResolver looks up the planned outline entry for an act. Nil means
// no plan exists, which downgrades the outline verdict to unknown.
type OutlineResolver interface {
	ResolveActOutline(ref *schema.OutlineRef) *schema.ActOutline
}

// Orchestrator runs single-act reviews. It never writes the character or
// outline registries; growth is surfaced as trait-claim proposals.
type Orchestrator struct {
	client     agent.AIClient
	outlines   OutlineResolver
	characters []schema.Character
	match      outline.BeatMatcher
	logger     *slog.Logger
}

type Option func(*Orchestrator)

func WithOutlineResolver(r OutlineResolver) Option {
	return func(o *Orchestrator) { o.outlines = r }
}

func WithCharacters(characters []schema.Character) Option {
	return func(o *Orchestrator) { o.characters = characters }
}

func WithBeatMatcher(m outline.BeatMatcher) Option {
	return func(o *Orchestrator) { o.match = m }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = logger }
}

func New(client agent.AIClient, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client: client,
		match:  outline.DefaultMatcher,
		logger: slog.Default().With("component", "review"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ReviewAct runs one review pass over a raw act-like document and returns
// the passes produced (today always one; the slice leaves room for
// multi-pass review).
//
// The pipeline is migrate -> validate -> gather grounding findings -> call
// the collaborator -> map. Validation failures are logged, not fatal: a
// malformed act still gets best-effort feedback. A collaborator failure
// yields a degraded pass, never an error.
func (o *Orchestrator) ReviewAct(ctx context.Context, rawAct map[string]any, persona schema.ReviewPersona) []schema.ReviewPass {
	if !persona.IsValid() {
		o.logger.Warn("unknown persona, using developmental editor", "persona", persona)
		persona = schema.PersonaDevelopmentalEditor
	}

	migrated := schema.Migrate(rawAct)
	act, err := schema.Decode(migrated)
	if err != nil {
		o.logger.Error("act decode failed, reviewing empty document", "error", err)
		act = &schema.Act{}
	} else if verrs := schema.Validate(act); len(verrs) > 0 {
		o.logger.Error("act validation failed during review",
			"act_id", act.ID,
			"errors", verrs.Error(),
		)
	}

	var versionID, text string
	if v := act.LatestVersion(); v != nil {
		versionID = v.VersionID
		text = v.Text
	}

	warnings := continuity.Check(act, o.characters)

	sync := outline.SyncResult{Status: schema.OutlineUnknown}
	if act.OutlineRef != nil && o.outlines != nil {
		planned := o.outlines.ResolveActOutline(act.OutlineRef)
		sync = outline.ComputeStatus(text, planned, o.match)
	}

	system := systemPromptFor(persona)
	prompt := buildPrompt(persona, text, warnings, sync.Findings)

	wire, aiErr := o.generate(ctx, system, prompt)
	if aiErr != nil {
		o.logger.Error("review generation failed, degrading",
			"act_id", act.ID,
			"persona", persona,
			"error", aiErr,
		)
		wire = degradedWire(aiErr)
	}

	pass := schema.ReviewPass{
		ReviewID:  "rev-" + uuid.NewString(),
		ActID:     act.ID,
		VersionID: versionID,
		Dimension: dimensionFor(persona),
		Persona:   persona,
		Tone:      schema.ToneEditor,
		Notes:     wire.Notes,

		Findings:    append(append([]string{}, sync.Findings...), wire.Findings...),
		Suggestions: wire.canonicalSuggestions(versionID),

		CreatedAt:             time.Now().UTC(),
		CharacterArcMovements: wire.CharacterArcMovements,
		CharacterTraitClaims:  wire.traitClaims(continuity.KnownNames(o.characters)),
		IntentAlignment:       wire.IntentAlignment,
		Metrics:               wire.actMetrics(),

		ContinuityWarnings: warnings,

		OutlineStatus:        mergeOutlineStatus(wire.OutlineStatus, sync.Status),
		ProposedOutlinePatch: sync.ProposedPatch,
	}

	o.logger.Info("review pass complete",
		"act_id", act.ID,
		"persona", persona,
		"degraded", aiErr != nil,
		"suggestion_count", len(pass.Suggestions),
		"finding_count", len(pass.Findings),
		"outline_status", pass.OutlineStatus,
	)

	return []schema.ReviewPass{pass}
}

func (o *Orchestrator) generate(ctx context.Context, system, prompt string) (*wireReview, error) {
	raw, err := o.client.CompleteJSONWithSystem(ctx, system, prompt)
	if err != nil {
		return nil, err
	}
	return parseWireReview(raw)
}

// degradedWire is the fail-soft payload: the error message becomes a
// finding so the user can see why the review carries no suggestions.
func degradedWire(err error) *wireReview {
	return &wireReview{
		Notes:    "AI review backend error or missing configuration.",
		Findings: []string{err.Error()},
		Metrics:  wireMetrics{StakesLevel: 1, IntimacyLevel: 1, WorldImpactLevel: 1, PaceLevel: 1},
		IntentAlignment: schema.IntentAlignment{
			Achieved: false,
			Feedback: "Error calling AI.",
		},
		OutlineStatus: string(schema.OutlineUnknown),
	}
}

// mergeOutlineStatus favors an AI-reported divergence over the heuristic
// verdict; anything else falls back to the deterministic check.
func mergeOutlineStatus(aiStatus string, heuristic schema.OutlineStatus) schema.OutlineStatus {
	if aiStatus == string(schema.OutlineDiverged) {
		return schema.OutlineDiverged
	}
	return heuristic
}

func buildPrompt(persona schema.ReviewPersona, text string, warnings []schema.ContinuityWarning, outlineFindings []string) string {
	messages := make([]string, 0, len(warnings))
	for _, w := range warnings {
		messages = append(messages, w.Message)
	}

	return fmt.Sprintf(`You are a master fiction editor (%s). Evaluate the following book chapter snippet.
Identify 1 or 2 specific prose/structural improvements.
You must also identify any NEW characters introduced in the text that are not explicitly mentioned in the Continuity Warnings list.
Return the exact JSON structure requested.

Act Text to Evaluate:
"""
%s
"""

Continuity Warnings identified by system: %s
Outline Findings identified by system: %s
`, persona, text, strings.Join(messages, " | "), strings.Join(outlineFindings, " | "))
}
