package doordash

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapStatusTable(t *testing.T) {
	for _, s := range []string{"preparing", "ready_for_pickup", "picked_up", "cancelled"} {
		assert.Equal(t, s, MapStatus(s))
	}
}

func TestMapStatusUnknownPassesThrough(t *testing.T) {
	for _, s := range []string{"", "delivered", "PREPARING", "picked up", "enroute_to_dropoff"} {
		assert.Equal(t, s, MapStatus(s))
	}
}

func TestMapStatusIdempotent(t *testing.T) {
	for _, s := range []string{"preparing", "cancelled", "unknown_state"} {
		assert.Equal(t, MapStatus(s), MapStatus(MapStatus(s)))
	}
}
