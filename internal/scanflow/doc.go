// Package scanflow models the scan screen as an explicit state machine.
//
// A scan moves Idle -> Capturing -> Previewing -> Analyzing -> Result, with
// Error and retake/retry edges. Every Analyze call issues a generation number;
// completions that carry an older generation are dropped so a late reply can
// never overwrite a newer scan. Runner drives the machine end to end on top of
// a camera and the classification pipeline.
package scanflow
