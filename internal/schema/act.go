package schema

import (
	"fmt"
	"time"
)

// Version is one immutable snapshot of an act's text. Once appended to an
// act it is never mutated; edits always materialize a new Version.
type Version struct {
	VersionID        string    `json:"versionId" validate:"required"`
	Text             string    `json:"text"`
	BasedOnVersionID string    `json:"basedOnVersionId,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	CreatedBy        Actor     `json:"createdBy" validate:"omitempty,oneof=user ai"`
	ChangeNote       string    `json:"changeNote"`
}

// ActIntent is the author's declared goal for the act, used to bias review
// feedback toward what the act is trying to accomplish.
type ActIntent struct {
	AuthorIntentText string    `json:"authorIntentText" validate:"required"`
	IntentTags       []string  `json:"intentTags"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt,omitempty"`
}

// OutlinePatch proposes an outline revision when a draft diverges from plan.
// The patch is a proposal only; applying it to the outline is a user action.
type OutlinePatch struct {
	OutlineBefore string `json:"outlineBefore,omitempty"`
	OutlineAfter  string `json:"outlineAfter" validate:"required"`
	Rationale     string `json:"rationale" validate:"required"`
}

// OutlineSync caches the last computed alignment state for an act.
type OutlineSync struct {
	Status               OutlineStatus `json:"status" validate:"omitempty,oneof=aligned diverged unknown"`
	Notes                string        `json:"notes"`
	LastCheckedAt        time.Time     `json:"lastCheckedAt,omitempty"`
	ProposedOutlinePatch *OutlinePatch `json:"proposedOutlinePatch,omitempty"`
}

// ActMetrics are 1-5 scores assigned by the author or a review pass.
type ActMetrics struct {
	StakesLevel      int `json:"stakesLevel" validate:"min=1,max=5"`
	IntimacyLevel    int `json:"intimacyLevel" validate:"min=1,max=5"`
	WorldImpactLevel int `json:"worldImpactLevel" validate:"min=1,max=5"`
	PaceLevel        int `json:"paceLevel" validate:"omitempty,min=1,max=5"`
}

// CanonClaim is a fact about the story world introduced by an act, awaiting
// user confirmation before it becomes canon.
type CanonClaim struct {
	ClaimType       CanonClaimType `json:"claimType" validate:"required,oneof=trait skill relationship backstory capability weakness magic_rule timeline_fact"`
	Text            string         `json:"text" validate:"required"`
	Confidence      float64        `json:"confidence,omitempty" validate:"omitempty,min=0,max=1"`
	Status          ClaimStatus    `json:"status" validate:"omitempty,oneof=proposed approved rejected"`
	SourceVersionID string         `json:"sourceVersionId,omitempty"`
}

// CharacterInAct records one character's participation in an act.
type CharacterInAct struct {
	CharacterID      string        `json:"characterId" validate:"required"`
	Role             CharacterRole `json:"role" validate:"omitempty,oneof=protagonist supporting antagonist minor cameo"`
	ArcMovement      ArcMovement   `json:"arcMovement" validate:"omitempty,oneof=forward regressed static masked"`
	ArcNotes         string        `json:"arcNotes"`
	ClaimsIntroduced []CanonClaim  `json:"claimsIntroduced" validate:"dive"`
}

// PromisePointer locates where in the series a promise was made or touched.
type PromisePointer struct {
	BookID    string `json:"bookId" validate:"required"`
	ChapterID string `json:"chapterId" validate:"required"`
	ActID     string `json:"actId" validate:"required"`
	VersionID string `json:"versionId,omitempty"`
}

// RelatedEntities ties a promise to the world entities it concerns.
type RelatedEntities struct {
	CharacterIDs []string `json:"characterIds"`
	FactionIDs   []string `json:"factionIds"`
	LocationIDs  []string `json:"locationIds"`
	RelicIDs     []string `json:"relicIds"`
}

// ReaderPromise is a narrative obligation made to the reader. The expected
// happy path is introduced -> escalated -> paid_off; broken and dormant are
// terminal-ish exits. The schema does not enforce transition order.
type ReaderPromise struct {
	PromiseID       string          `json:"promiseId" validate:"required"`
	Strength        PromiseStrength `json:"strength" validate:"omitempty,oneof=minor structural series"`
	Status          PromiseStatus   `json:"status" validate:"omitempty,oneof=introduced escalated at_risk paid_off broken dormant"`
	PromiseText     string          `json:"promiseText" validate:"required"`
	IntroducedAt    PromisePointer  `json:"introducedAt"`
	LatestUpdateAt  *PromisePointer `json:"latestUpdateAt,omitempty"`
	RelatedEntities RelatedEntities `json:"relatedEntities"`
	RiskNotes       string          `json:"riskNotes"`
}

// ContinuityWarning is a detected contradiction or risk. Status is mutated
// only by user action (dismiss/ignore), never auto-resolved.
type ContinuityWarning struct {
	WarningID string             `json:"warningId" validate:"required"`
	Scope     Scope              `json:"scope" validate:"omitempty,oneof=act chapter book series"`
	Category  ContinuityCategory `json:"category" validate:"required,oneof=character timeline magic worldbuilding promise logic power_scale"`
	Severity  Severity           `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Message   string             `json:"message" validate:"required"`
	Evidence  string             `json:"evidence"`
	Status    WarningStatus      `json:"status" validate:"omitempty,oneof=open ignored dismissed"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt,omitempty"`
}

type ContinuityBundle struct {
	Warnings []ContinuityWarning `json:"warnings" validate:"dive"`
}

// ActSummary is the derived synopsis. IsUserEdited guards against a review
// pass silently overwriting a hand-edited summary.
type ActSummary struct {
	Text                   string    `json:"text"`
	IsUserEdited           bool      `json:"isUserEdited"`
	GeneratedFromVersionID string    `json:"generatedFromVersionId,omitempty"`
	UpdatedAt              time.Time `json:"updatedAt,omitempty"`
}

// OutlineRef points at the planned outline entry this act is drafted against.
type OutlineRef struct {
	OutlineID string `json:"outlineId" validate:"required"`
	ChapterID string `json:"chapterId" validate:"required"`
	ActID     string `json:"actId" validate:"required"`
}

// Act is the atomic unit of narrative content within a chapter. It owns its
// versions and reviews exclusively; characters and outlines are referenced
// by id and live in external registries.
type Act struct {
	ID        string `json:"id" validate:"required"`
	BookID    string `json:"bookId" validate:"required"`
	ChapterID string `json:"chapterId" validate:"required"`
	Heading   string `json:"heading" validate:"required"`

	Versions []Version    `json:"versions" validate:"required,min=1,dive"`
	Reviews  []ReviewPass `json:"reviews" validate:"dive"`

	CharactersInAct []CharacterInAct `json:"charactersInAct" validate:"dive"`
	Promises        []ReaderPromise  `json:"promises" validate:"dive"`
	Continuity      ContinuityBundle `json:"continuity"`
	Summary         ActSummary       `json:"summary"`

	Intent      *ActIntent   `json:"intent,omitempty"`
	OutlineRef  *OutlineRef  `json:"outlineRef,omitempty"`
	OutlineSync *OutlineSync `json:"outlineSync,omitempty"`
	Metrics     *ActMetrics  `json:"metrics,omitempty"`
}

// LatestVersion returns the last element of the version history, or nil when
// the act has no versions (an invariant breach upstream should catch).
func (a *Act) LatestVersion() *Version {
	if len(a.Versions) == 0 {
		return nil
	}
	return &a.Versions[len(a.Versions)-1]
}

// Version looks up a version by id. Nil when absent.
func (a *Act) Version(versionID string) *Version {
	for i := range a.Versions {
		if a.Versions[i].VersionID == versionID {
			return &a.Versions[i]
		}
	}
	return nil
}

// AppendVersion appends v to the act's history, enforcing linear causal
// order: v.BasedOnVersionID must name the current latest version.
func (a *Act) AppendVersion(v Version) error {
	latest := a.LatestVersion()
	if latest == nil {
		return fmt.Errorf("act %s has no versions: %w", a.ID, ErrContractViolation)
	}
	if v.VersionID == "" {
		return fmt.Errorf("version id is empty: %w", ErrContractViolation)
	}
	if a.Version(v.VersionID) != nil {
		return fmt.Errorf("version %s already exists on act %s: %w", v.VersionID, a.ID, ErrVersionConflict)
	}
	if v.BasedOnVersionID != latest.VersionID {
		return fmt.Errorf("version %s is based on %s but latest is %s: %w",
			v.VersionID, v.BasedOnVersionID, latest.VersionID, ErrVersionConflict)
	}
	a.Versions = append(a.Versions, v)
	return nil
}

// NextVersionID synthesizes a sequential id (v1, v2, ...) that does not
// collide with any existing version on the act.
func (a *Act) NextVersionID() string {
	n := len(a.Versions) + 1
	for {
		id := fmt.Sprintf("v%d", n)
		if a.Version(id) == nil {
			return id
		}
		n++
	}
}
