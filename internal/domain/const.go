package domain

// LedgerStatus reports the outcome of notarizing a proof on the ledger.
type LedgerStatus string

const (
	LedgerStatusSuccess       LedgerStatus = "success"
	LedgerStatusFailed        LedgerStatus = "failed"
	LedgerStatusNotConfigured LedgerStatus = "not_configured"
)

// Classification status values stored on the proof row.
const (
	AIStatusCompleted     = "completed"
	AIStatusFailed        = "failed"
	AIStatusNotApplicable = "not_applicable"
)

// DefaultImpact is credited per proof when no environmental score is
// available.
const DefaultImpact = 10.0

// LedgerAction tags every notarized message.
const LedgerAction = "PROOF_STORED"
