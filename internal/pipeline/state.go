package pipeline

// State names one phase of a run. Transitions are strictly sequential;
// StateFailed is reachable from any phase.
type State string

const (
	StateIdle              State = "idle"
	StateCheckingPrereqs   State = "checking_prereqs"
	StateDiscoveringInputs State = "discovering_inputs"
	StateMerging           State = "merging"
	StateDetectingSilence  State = "detecting_silence"
	StateBuildingCutList   State = "building_cut_list"
	StateExecutingSegments State = "executing_segments"
	StateConcatenating     State = "concatenating"
	StateReportingStats    State = "reporting_stats"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

func (s State) String() string {
	return string(s)
}
