package constants

const (
	GenerateRings     = "generate_rings"
	AssignRings       = "assign_rings"
	ViewRingPool      = "view_ring_pool"
	ViewGlobalHistory = "view_global_history"
	ManageUsers       = "manage_users"
	AssignOwnRings    = "assign_own_rings"
	ExitRooster       = "exit_rooster"
	TransferRooster   = "transfer_rooster"
	ViewFlock         = "view_flock"
)
