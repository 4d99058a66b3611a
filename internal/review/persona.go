package review

import "github.com/vampirenirmal/redline/internal/schema"

// System prompts keyed by persona. Each persona reads the same act context
// but is steered toward a different editorial dimension.

const developmentalEditorPrompt = `You are a Senior Developmental Editor. Focus on big-picture structural issues:
- Pacing and tension arcs.
- Scene utility (Does this scene move the plot or build character?).
- Emotional resonance and stakes.
- Thematic consistency.`

const lineEditorPrompt = `You are a meticulous Line Editor. Focus on prose quality and flow:
- Sentence structure and rhythm.
- Word choice and sensory detail.
- Dialogue naturalism.
- Filtering and "show vs tell" issues.`

const betaReaderPrompt = `You are a dedicated Beta Reader. Focus on the reading experience and emotional response:
- Reader promises (Are expectations being met?).
- Confusion points or logic gaps.
- Character likability and motivation clarity.
- Pacing (Where did you get bored or lose interest?).`

const genreExpertPrompt = `You are a Genre Expert for serialized speculative fiction. Focus on genre delivery:
- Trope execution and subversion (earned or hollow?).
- Promise of the premise (Is the genre contract being honored?).
- Escalation against series-scale stakes.
- Worldbuilding payoff density.`

const continuityAuditorPrompt = `You are a Continuity Auditor. Focus on internal consistency:
- Character state, knowledge, and capability continuity.
- Timeline and travel plausibility.
- Established rules of the world (magic, technology, politics).
- Contradictions with the supplied continuity warnings.`

func systemPromptFor(persona schema.ReviewPersona) string {
	switch persona {
	case schema.PersonaLineEditor:
		return lineEditorPrompt
	case schema.PersonaBetaReader:
		return betaReaderPrompt
	case schema.PersonaGenreExpert:
		return genreExpertPrompt
	case schema.PersonaContinuityAuditor:
		return continuityAuditorPrompt
	default:
		return developmentalEditorPrompt
	}
}

// dimensionFor maps a persona onto the review dimension its pass is recorded
// under.
func dimensionFor(persona schema.ReviewPersona) schema.ReviewDimension {
	switch persona {
	case schema.PersonaLineEditor:
		return schema.DimStyleProse
	case schema.PersonaBetaReader:
		return schema.DimBetaReaction
	case schema.PersonaContinuityAuditor:
		return schema.DimContinuity
	default:
		return schema.DimStructure
	}
}
