package domain

// State is the lifecycle state of an alarm.
//
//	Armed -> FiredPendingAck   primary delivered (external, no core action)
//	FiredPendingAck -> Disarmed   acknowledged one-time alarm
//	FiredPendingAck -> Armed      acknowledged repeating alarm, next occurrence
//
// The core only ever derives Armed or Disarmed from stored data; the pending
// state lives in the ringing collaborator.
type State string

const (
	StateArmed           State = "armed"
	StateDisarmed        State = "disarmed"
	StateFiredPendingAck State = "fired_pending_ack"
)
