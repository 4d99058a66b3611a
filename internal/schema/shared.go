package schema

// Closed string enums shared across the document model. Values mirror the
// wire format, so they marshal as plain strings.

type Scope string

const (
	ScopeAct     Scope = "act"
	ScopeChapter Scope = "chapter"
	ScopeBook    Scope = "book"
	ScopeSeries  Scope = "series"
)

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type ArcMovement string

const (
	ArcForward   ArcMovement = "forward"
	ArcRegressed ArcMovement = "regressed"
	ArcStatic    ArcMovement = "static"
	ArcMasked    ArcMovement = "masked"
)

type CharacterRole string

const (
	RoleProtagonist CharacterRole = "protagonist"
	RoleSupporting  CharacterRole = "supporting"
	RoleAntagonist  CharacterRole = "antagonist"
	RoleMinor       CharacterRole = "minor"
	RoleCameo       CharacterRole = "cameo"
)

type PromiseStrength string

const (
	PromiseMinor      PromiseStrength = "minor"
	PromiseStructural PromiseStrength = "structural"
	PromiseSeries     PromiseStrength = "series"
)

type PromiseStatus string

const (
	PromiseIntroduced PromiseStatus = "introduced"
	PromiseEscalated  PromiseStatus = "escalated"
	PromiseAtRisk     PromiseStatus = "at_risk"
	PromisePaidOff    PromiseStatus = "paid_off"
	PromiseBroken     PromiseStatus = "broken"
	PromiseDormant    PromiseStatus = "dormant"
)

// IsOpen reports whether the promise still demands payoff.
func (s PromiseStatus) IsOpen() bool {
	return s == PromiseIntroduced || s == PromiseEscalated || s == PromiseAtRisk
}

type ContinuityCategory string

const (
	CategoryCharacter  ContinuityCategory = "character"
	CategoryTimeline   ContinuityCategory = "timeline"
	CategoryMagic      ContinuityCategory = "magic"
	CategoryWorldbuild ContinuityCategory = "worldbuilding"
	CategoryPromise    ContinuityCategory = "promise"
	CategoryLogic      ContinuityCategory = "logic"
	CategoryPowerScale ContinuityCategory = "power_scale"
)

type WarningStatus string

const (
	WarningOpen      WarningStatus = "open"
	WarningIgnored   WarningStatus = "ignored"
	WarningDismissed WarningStatus = "dismissed"
)

type CanonClaimType string

const (
	ClaimTrait        CanonClaimType = "trait"
	ClaimSkill        CanonClaimType = "skill"
	ClaimRelationship CanonClaimType = "relationship"
	ClaimBackstory    CanonClaimType = "backstory"
	ClaimCapability   CanonClaimType = "capability"
	ClaimWeakness     CanonClaimType = "weakness"
	ClaimMagicRule    CanonClaimType = "magic_rule"
	ClaimTimelineFact CanonClaimType = "timeline_fact"
)

type ClaimStatus string

const (
	ClaimProposed ClaimStatus = "proposed"
	ClaimApproved ClaimStatus = "approved"
	ClaimRejected ClaimStatus = "rejected"
)

// Actor identifies who created a version.
type Actor string

const (
	ActorUser Actor = "user"
	ActorAI   Actor = "ai"
)

// OutlineStatus is the three-way alignment verdict between an act's text and
// its planned outline entry.
type OutlineStatus string

const (
	OutlineAligned  OutlineStatus = "aligned"
	OutlineDiverged OutlineStatus = "diverged"
	OutlineUnknown  OutlineStatus = "unknown"
)
