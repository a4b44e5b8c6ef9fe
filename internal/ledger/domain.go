package ledger

import (
	"fmt"
	"time"
)

// SeedType is the closed set of seed categories the market sells.
type SeedType string

const (
	Wheat  SeedType = "WHEAT"
	Rice   SeedType = "RICE"
	Maize  SeedType = "MAIZE"
	Cotton SeedType = "COTTON"
)

// ParseSeedType converts a request string into a SeedType.
// Returns ErrUnknownSeed for anything outside the catalogue.
func ParseSeedType(s string) (SeedType, error) {
	switch SeedType(s) {
	case Wheat, Rice, Maize, Cotton:
		return SeedType(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeed, s)
	}
}

// Farmer is a registered identity in the ledger. The identity token is an
// opaque hash supplied by the caller; it is never validated here.
type Farmer struct {
	Identity     string    `json:"identity"`
	FarmSize     uint64    `json:"farm_size"`
	Registered   bool      `json:"registered"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Purchase is a settled seed sale. Records are immutable once created and
// keyed by a gapless sequence number starting at zero.
type Purchase struct {
	Seq        uint64    `json:"seq"`
	Identity   string    `json:"identity"`
	Seed       SeedType  `json:"seed"`
	Quantity   uint64    `json:"quantity"`
	AmountPaid uint64    `json:"amount_paid"`
	CreatedAt  time.Time `json:"created_at"`
}

// Receipt is returned to the buyer after a successful settlement.
type Receipt struct {
	Seq      uint64 `json:"seq"`
	Charged  uint64 `json:"amount_charged"`
	Refunded uint64 `json:"refunded"`
}
