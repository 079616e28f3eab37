package machine

// StatusKind tags the closed union of states a Step can report (spec.md §4.4
// "ExecutionStatus").
type StatusKind byte

//nolint:revive
const (
	RunningKind StatusKind = iota
	HaltedKind
	InfiniteLoopKind
)

// LoopReasonKind tags why an InfiniteLoopKind status was reported: either a
// fused LoopIfNonzero opcode spinning on a nonzero cell, or the loop-span
// tracker recognizing a repeated iteration.
type LoopReasonKind byte

//nolint:revive
const (
	LoopIfNonzeroReasonKind LoopReasonKind = iota
	LoopSpanReasonKind
)

// LoopReason is the closed tagged union spec.md §3/§9 describes: a bare
// LoopIfNonzeroReasonKind verdict, or a LoopSpanReasonKind verdict carrying
// the two matched LoopSpan values that witnessed the cycle. Prior and
// Current are only populated when Kind == LoopSpanReasonKind.
type LoopReason struct {
	Kind           LoopReasonKind
	Prior, Current *LoopSpan
}

// clone returns an independent copy of r, deep-copying the witness spans
// when present.
func (r LoopReason) clone() LoopReason {
	if r.Prior == nil && r.Current == nil {
		return r
	}
	clone := r
	if r.Prior != nil {
		clone.Prior = r.Prior.Clone()
	}
	if r.Current != nil {
		clone.Current = r.Current.Clone()
	}
	return clone
}

// ExecutionStatus is the result of one Step call. Reason is only meaningful
// when Kind == InfiniteLoopKind.
type ExecutionStatus struct {
	Kind   StatusKind
	Reason LoopReason
}

// Running reports that the step executed normally and the program has not
// yet reached a terminal state.
func Running() ExecutionStatus { return ExecutionStatus{Kind: RunningKind} }

// Halted reports that the program pointer ran off the end of the extended
// instruction sequence. Once halted, every further Step call reports Halted
// again (spec.md §4.4: Halted is sticky).
func Halted() ExecutionStatus { return ExecutionStatus{Kind: HaltedKind} }

// InfiniteLoop reports that non-halting was proven, and why. Unlike Halted,
// this status is not sticky: it is a one-shot verdict delivered by the Step
// call that detected it.
func InfiniteLoop(reason LoopReason) ExecutionStatus {
	return ExecutionStatus{Kind: InfiniteLoopKind, Reason: reason}
}
