package schema

import "time"

// Outline entities are externally authored planning documents. They are
// read-only from the review core's perspective; the only mutation path is an
// explicit "update outline to match" user action applying a proposed patch.

type BeatImportance string

const (
	BeatMinor    BeatImportance = "minor"
	BeatMajor    BeatImportance = "major"
	BeatCritical BeatImportance = "critical"
)

// Beat is one planned story moment inside an act outline.
type Beat struct {
	Text       string         `json:"text" validate:"required"`
	Importance BeatImportance `json:"importance" validate:"omitempty,oneof=minor major critical"`
}

type CharacterWorkBeat struct {
	CharacterID string `json:"characterId" validate:"required"`
	Text        string `json:"text" validate:"required"`
	ArcIntent   string `json:"arcIntent" validate:"omitempty,oneof=forward regressed static masked setup"`
}

type ContinuityHook struct {
	Category ContinuityCategory `json:"category" validate:"required,oneof=character timeline magic worldbuilding promise logic power_scale"`
	Text     string             `json:"text" validate:"required"`
}

// OutlinePromiseStub pre-declares a reader promise the act is expected to
// introduce or move.
type OutlinePromiseStub struct {
	PromiseID      string          `json:"promiseId" validate:"required"`
	Strength       PromiseStrength `json:"strength" validate:"omitempty,oneof=minor structural series"`
	ExpectedStatus PromiseStatus   `json:"expectedStatus" validate:"omitempty,oneof=introduced escalated at_risk paid_off broken dormant"`
	Text           string          `json:"text" validate:"required"`
}

type ActOutline struct {
	ActID           string               `json:"actId" validate:"required"`
	ActNumber       int                  `json:"actNumber" validate:"min=1"`
	Title           string               `json:"title" validate:"required"`
	Summary         string               `json:"summary" validate:"required"`
	KeyBeats        []Beat               `json:"keyBeats" validate:"dive"`
	CharacterWork   []CharacterWorkBeat  `json:"characterWork" validate:"dive"`
	ContinuityHooks []ContinuityHook     `json:"continuityHooks" validate:"dive"`
	PromiseHooks    []OutlinePromiseStub `json:"promiseHooks" validate:"dive"`
	Notes           string               `json:"notes"`
	Tags            []string             `json:"tags"`
}

type ChapterOutline struct {
	ChapterID       string               `json:"chapterId" validate:"required"`
	ChapterNumber   int                  `json:"chapterNumber" validate:"min=1"`
	Title           string               `json:"title" validate:"required"`
	WordCountActual int                  `json:"wordCountActual" validate:"min=0"`
	WordCountTarget int                  `json:"wordCountTarget" validate:"min=0"`
	Logline         string               `json:"logline"`
	Acts            []ActOutline         `json:"acts" validate:"required,min=1,dive"`
	ChapterPromises []OutlinePromiseStub `json:"chapterPromises" validate:"dive"`
	ChapterNotes    string               `json:"chapterNotes"`
	Tags            []string             `json:"tags"`
}

type EpilogueSection struct {
	SectionID string `json:"sectionId" validate:"required"`
	Label     string `json:"label" validate:"required"`
	Summary   string `json:"summary" validate:"required"`
	KeyBeat   *Beat  `json:"keyBeat,omitempty"`
}

type BookOutline struct {
	OutlineID   string            `json:"outlineId" validate:"required"`
	SeriesID    string            `json:"seriesId" validate:"required"`
	BookID      string            `json:"bookId" validate:"required"`
	BookTitle   string            `json:"bookTitle" validate:"required"`
	Version     int               `json:"version" validate:"min=1"`
	UpdatedAt   time.Time         `json:"updatedAt,omitempty"`
	Chapters    []ChapterOutline  `json:"chapters" validate:"required,min=1,dive"`
	Epilogue    []EpilogueSection `json:"epilogue" validate:"dive"`
	GlobalNotes string            `json:"globalNotes"`
}
