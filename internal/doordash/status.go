package doordash

// Provider status vocabulary accepted on delivery updates.
const (
	StatusPreparing      = "preparing"
	StatusReadyForPickup = "ready_for_pickup"
	StatusPickedUp       = "picked_up"
	StatusCancelled      = "cancelled"
)

// MapStatus translates a POS status into the provider's vocabulary. The table
// is fixed; a status outside it is forwarded unchanged.
func MapStatus(normalized string) string {
	switch normalized {
	case "preparing":
		return StatusPreparing
	case "ready_for_pickup":
		return StatusReadyForPickup
	case "picked_up":
		return StatusPickedUp
	case "cancelled":
		return StatusCancelled
	default:
		return normalized
	}
}
