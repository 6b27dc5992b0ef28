// Package params holds the block/transaction/config environment records and
// the fork-gating (SpecId) table consumed by the vm and evmcore packages.
package params

// SpecId identifies a protocol fork. Forks are totally ordered; Enabled
// compares numerically, so "fork X is active" is always "current spec id >=
// X's id".
type SpecId uint8

const (
	FRONTIER SpecId = iota
	FRONTIER_THAWING
	HOMESTEAD
	DAO_FORK
	TANGERINE
	SPURIOUS_DRAGON
	BYZANTIUM
	CONSTANTINOPLE
	PETERSBURG
	ISTANBUL

	// LATEST always aliases the newest fork this core understands.
	LATEST = ISTANBUL
)

var specNames = map[SpecId]string{
	FRONTIER:         "Frontier",
	FRONTIER_THAWING: "FrontierThawing",
	HOMESTEAD:        "Homestead",
	DAO_FORK:         "DAOFork",
	TANGERINE:        "Tangerine",
	SPURIOUS_DRAGON:  "SpuriousDragon",
	BYZANTIUM:        "Byzantium",
	CONSTANTINOPLE:   "Constantinople",
	PETERSBURG:       "Petersburg",
	ISTANBUL:         "Istanbul",
}

// String returns the human-readable fork name.
func (s SpecId) String() string {
	if name, ok := specNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Enabled reports whether the fork named by target is active for spec, i.e.
// spec >= target. CONSTANTINOPLE is special-cased: the Constantinople fork
// was superseded by Petersburg before activating on mainnet (the SSTORE
// net-gas-metering EIP it shipped was pulled for a reentrancy bug), so any
// caller asking "is Constantinople enabled" really means Petersburg.
func Enabled(spec, target SpecId) bool {
	if target == CONSTANTINOPLE {
		target = PETERSBURG
	}
	return spec >= target
}
