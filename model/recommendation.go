package model

import (
	"encoding/json"
)

// RecommendationStatus names the variant held by a RecommendationState.
type RecommendationStatus string

const (
	RecommendationIdle    RecommendationStatus = "idle"
	RecommendationLoading RecommendationStatus = "loading"
	RecommendationSuccess RecommendationStatus = "success"
	RecommendationFailure RecommendationStatus = "failure"
)

// RecommendationState is exactly one of RecommendationIdleState,
// RecommendationLoadingState, RecommendationSuccessState or
// RecommendationFailureState.
type RecommendationState interface {
	Status() RecommendationStatus
	isRecommendationState()
}

// RecommendationIdleState means no recommendation has been requested.
type RecommendationIdleState struct{}

// RecommendationLoadingState means a request is waiting to complete.
type RecommendationLoadingState struct {
	Criteria string
	JobID    string
}

// RecommendationSuccessState carries the generated text and the chosen restaurant.
type RecommendationSuccessState struct {
	Criteria   string
	Text       string
	Restaurant Restaurant
}

// RecommendationFailureState carries the error kind and a user-facing message.
type RecommendationFailureState struct {
	Criteria string
	Kind     string
	Message  string
}

func (RecommendationIdleState) Status() RecommendationStatus    { return RecommendationIdle }
func (RecommendationLoadingState) Status() RecommendationStatus { return RecommendationLoading }
func (RecommendationSuccessState) Status() RecommendationStatus { return RecommendationSuccess }
func (RecommendationFailureState) Status() RecommendationStatus { return RecommendationFailure }

func (RecommendationIdleState) isRecommendationState()    {}
func (RecommendationLoadingState) isRecommendationState() {}
func (RecommendationSuccessState) isRecommendationState() {}
func (RecommendationFailureState) isRecommendationState() {}

// RecommendationView is the flattened wire form of a RecommendationState.
type RecommendationView struct {
	Status     RecommendationStatus `json:"status"`
	Criteria   string               `json:"criteria,omitempty"`
	JobID      string               `json:"job_id,omitempty"`
	Text       string               `json:"text,omitempty"`
	Restaurant *Restaurant          `json:"restaurant,omitempty"`
	ErrorKind  string               `json:"error_kind,omitempty"`
	Message    string               `json:"message,omitempty"`
}

// ViewOf flattens a state for JSON responses. A nil state renders as idle.
func ViewOf(state RecommendationState) RecommendationView {
	switch s := state.(type) {
	case RecommendationLoadingState:
		return RecommendationView{Status: s.Status(), Criteria: s.Criteria, JobID: s.JobID}
	case RecommendationSuccessState:
		restaurant := s.Restaurant
		return RecommendationView{Status: s.Status(), Criteria: s.Criteria, Text: s.Text, Restaurant: &restaurant}
	case RecommendationFailureState:
		return RecommendationView{Status: s.Status(), Criteria: s.Criteria, ErrorKind: s.Kind, Message: s.Message}
	default:
		return RecommendationView{Status: RecommendationIdle}
	}
}

func (s RecommendationIdleState) MarshalJSON() ([]byte, error)    { return json.Marshal(ViewOf(s)) }
func (s RecommendationLoadingState) MarshalJSON() ([]byte, error) { return json.Marshal(ViewOf(s)) }
func (s RecommendationSuccessState) MarshalJSON() ([]byte, error) { return json.Marshal(ViewOf(s)) }
func (s RecommendationFailureState) MarshalJSON() ([]byte, error) { return json.Marshal(ViewOf(s)) }
