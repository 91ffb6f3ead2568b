// Package session implements the state machine behind one wrapped viewing session.
//
// A [Session] moves through four phases:
//
//	Landing --Submit(valid)--> Loading --Complete(ok)----> Experience --Reset--> Landing
//	                               \----Complete(err)---> Error --Submit(valid)--> Loading
//
// Every operation is a synchronous transition on the receiver. The caller owns all effects:
// [Session.Submit] returns a [Request] that the caller fetches, and delivers the outcome back
// through [Session.Complete] tagged with the request's attempt number.
//
// While Loading, a message ticker rotates through the configured loading messages.
// Ticks are tagged with a generation; leaving Loading bumps the generation so a tick that was
// already scheduled is dropped and never reschedules.
//
// Navigation ([Session.GoToNext], [Session.GoToPrevious], [Session.OnPositionReport]) is total:
// out-of-range requests clamp and calls outside Experience are no-ops.
package session
