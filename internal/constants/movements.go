package constants

// Pool status for generated ring numbers.
const (
	PoolAvailable = "AVAILABLE"
	PoolUsed      = "USED"
)

// Rooster registry status.
const (
	RoosterActive = "ACTIVE"
	RoosterExited = "EXITED"
)

// Movement types (append-only ledger).
const (
	MovementIn       = "IN"
	MovementOut      = "OUT"
	MovementTransfer = "TRANSFER"
)

// OutReasons are the allowed reasons for an OUT movement.
var OutReasons = []string{"ABATE", "VENDA", "MORTE", "PERDA", "OUTRO"}

// TransferReasons are the allowed reasons for a TRANSFER movement.
var TransferReasons = []string{"VENDA", "TROCA", "OUTRO"}

// IsValidOutReason returns true if reason is an allowed OUT reason.
func IsValidOutReason(reason string) bool {
	for _, r := range OutReasons {
		if r == reason {
			return true
		}
	}
	return false
}

// IsValidTransferReason returns true if reason is an allowed TRANSFER reason.
func IsValidTransferReason(reason string) bool {
	for _, r := range TransferReasons {
		if r == reason {
			return true
		}
	}
	return false
}
