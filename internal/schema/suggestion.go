package schema

type SuggestionType string

const (
	SuggestReplace          SuggestionType = "replace"
	SuggestInsert           SuggestionType = "insert"
	SuggestDelete           SuggestionType = "delete"
	SuggestRewriteParagraph SuggestionType = "rewrite_paragraph"
	SuggestNoteOnly         SuggestionType = "note_only"
)

type SuggestionStatus string

const (
	SuggestionProposed SuggestionStatus = "proposed"
	SuggestionApproved SuggestionStatus = "approved"
	SuggestionAccepted SuggestionStatus = "accepted"
	SuggestionRejected SuggestionStatus = "rejected"
)

// IsAccepted reports whether the suggestion has been selected for
// application. Both spellings occur in stored data.
func (s SuggestionStatus) IsAccepted() bool {
	return s == SuggestionApproved || s == SuggestionAccepted
}

// InsertPosition hints where a pure insertion (empty beforeText) lands.
type InsertPosition string

const (
	InsertAtStart InsertPosition = "start"
	InsertAtEnd   InsertPosition = "end"
)

// TextRange is an advisory offset span. Matching is textual, not positional,
// so the range is informational only.
type TextRange struct {
	Start int `json:"start" validate:"min=0"`
	End   int `json:"end" validate:"min=0"`
}

// Suggestion is a proposed atomic text change, tied to the version it was
// computed against. The tie is intentional: as new versions are appended the
// suggestion may go stale, and the patch engine skips stale matches.
type Suggestion struct {
	ID        string         `json:"id" validate:"required"`
	VersionID string         `json:"versionId" validate:"required"`
	Type      SuggestionType `json:"type" validate:"omitempty,oneof=replace insert delete rewrite_paragraph note_only"`
	Reason    string         `json:"reason" validate:"required"`

	BeforeText string `json:"beforeText"`
	AfterText  string `json:"afterText"`

	Range    *TextRange     `json:"range,omitempty"`
	Position InsertPosition `json:"position,omitempty" validate:"omitempty,oneof=start end"`

	Status             SuggestionStatus `json:"status" validate:"omitempty,oneof=proposed approved accepted rejected"`
	UserComment        string           `json:"userComment"`
	AppliedInVersionID string           `json:"appliedInVersionId,omitempty"`
}
