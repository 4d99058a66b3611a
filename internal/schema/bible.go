package schema

// Character is one record in the external character registry. The review
// core reads it, never writes it; growth happens through trait claims.
type Character struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CoreWant     string   `json:"core_want,omitempty"`
	CoreFlaw     string   `json:"core_flaw,omitempty"`
	CurrentState string   `json:"current_state,omitempty"`
	Traits       []string `json:"traits,omitempty"`
}

// StoryBible is the per-book registry of promises and continuity findings
// that outlive any single act.
type StoryBible struct {
	PromiseRegistry    []ReaderPromise     `json:"promiseRegistry"`
	ContinuityRegistry []ContinuityWarning `json:"continuityRegistry"`
}
