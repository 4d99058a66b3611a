package schema

import "time"

type ReviewDimension string

const (
	DimStructure        ReviewDimension = "structure"
	DimCharacterArc     ReviewDimension = "character_arc"
	DimContinuity       ReviewDimension = "continuity"
	DimReaderPromises   ReviewDimension = "reader_promises"
	DimPacing           ReviewDimension = "pacing"
	DimStyleProse       ReviewDimension = "style_prose"
	DimFuturePayoffRisk ReviewDimension = "future_payoff_risk"
	DimCutCompress      ReviewDimension = "cut_compress"
	DimBetaReaction     ReviewDimension = "beta_reaction"
)

type ReviewPersona string

const (
	PersonaDevelopmentalEditor ReviewPersona = "developmental_editor"
	PersonaLineEditor          ReviewPersona = "line_editor"
	PersonaBetaReader          ReviewPersona = "beta_reader"
	PersonaGenreExpert         ReviewPersona = "genre_expert"
	PersonaContinuityAuditor   ReviewPersona = "continuity_auditor"
)

// IsValid reports enum membership; unknown personas are rejected at the
// orchestrator boundary rather than falling through string matching.
func (p ReviewPersona) IsValid() bool {
	switch p {
	case PersonaDevelopmentalEditor, PersonaLineEditor, PersonaBetaReader,
		PersonaGenreExpert, PersonaContinuityAuditor:
		return true
	}
	return false
}

type ReviewTone string

const (
	ToneCoach   ReviewTone = "coach"
	ToneEditor  ReviewTone = "editor"
	ToneCritic  ReviewTone = "critic"
	ToneNeutral ReviewTone = "neutral"
)

// IntentAlignment is the reviewer's verdict on whether the act achieved the
// author's declared intent.
type IntentAlignment struct {
	Achieved bool   `json:"achieved"`
	Feedback string `json:"feedback"`
}

// CharacterArcMovement records arc progress observed during a review.
type CharacterArcMovement struct {
	CharacterID string `json:"characterId"`
	Role        string `json:"role"`
	ArcMovement string `json:"arcMovement"`
	ArcNotes    string `json:"arcNotes"`
}

// CharacterTraitClaim surfaces a character fact awaiting user confirmation.
// This is how new characters enter the registry: as proposals, never as
// direct writes by the review core.
type CharacterTraitClaim struct {
	CharacterID string `json:"characterId"`
	Trait       string `json:"trait"`
	Evidence    string `json:"evidence"`
}

// ReviewPass is one completed evaluation of one version by one persona.
// Created once per review invocation; never mutated afterward except for the
// status/userComment fields of its nested suggestions.
type ReviewPass struct {
	ReviewID  string `json:"reviewId" validate:"required"`
	ActID     string `json:"actId,omitempty"`
	VersionID string `json:"versionId" validate:"required"`

	Dimension ReviewDimension `json:"dimension" validate:"required,oneof=structure character_arc continuity reader_promises pacing style_prose future_payoff_risk cut_compress beta_reaction"`
	Persona   ReviewPersona   `json:"persona" validate:"omitempty,oneof=developmental_editor line_editor beta_reader genre_expert continuity_auditor"`
	Tone      ReviewTone      `json:"tone" validate:"omitempty,oneof=coach editor critic neutral"`

	Notes       string       `json:"notes"`
	Findings    []string     `json:"findings"`
	Suggestions []Suggestion `json:"suggestions" validate:"dive"`

	CreatedAt             time.Time              `json:"createdAt"`
	CharacterArcMovements []CharacterArcMovement `json:"characterArcMovements"`
	CharacterTraitClaims  []CharacterTraitClaim  `json:"characterTraitClaims,omitempty"`
	IntentAlignment       IntentAlignment        `json:"intentAlignment"`
	Metrics               *ActMetrics            `json:"metrics,omitempty"`

	// ContinuityWarnings is a snapshot taken at review time, not a live
	// reference into the act's continuity bundle.
	ContinuityWarnings []ContinuityWarning `json:"continuityWarnings"`

	OutlineStatus        OutlineStatus `json:"outlineStatus" validate:"omitempty,oneof=aligned diverged unknown"`
	ProposedOutlinePatch *OutlinePatch `json:"proposedOutlinePatch,omitempty"`
}
