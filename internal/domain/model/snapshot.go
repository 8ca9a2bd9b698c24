package model

// Snapshot is the immutable minting data set a report is computed from.
// Player collections keep document order; ranking ties and distribution
// order depend on it.
type Snapshot struct {
	TotalHeroMinted     int64
	TotalSuiPaid        float64
	TotalPaidHeroMinted int64

	Weekly         []WeeklyData
	PlayerEvents   []PlayerEvents
	PlayerSuiPaid  []PlayerAmount
	TxTimes        []TxTime
	PhaseTimes     []PhaseTimes
	SuiPaidAmounts []SuiPaidAmount

	// Fingerprint identifies the snapshot content (hex SHA-256 of the source).
	Fingerprint string

	heroCounts map[string]int
}

// Index builds the address lookups used by joins. Call it once after the
// player collections are populated; lookups fall back to a scan otherwise.
func (s *Snapshot) Index() {
	s.heroCounts = make(map[string]int, len(s.PlayerEvents))
	for _, p := range s.PlayerEvents {
		s.heroCounts[p.Address] += len(p.Events)
	}
}

// HeroCount returns the number of heroes minted by address, 0 when unknown.
func (s *Snapshot) HeroCount(address string) int {
	if s.heroCounts == nil {
		n := 0
		for _, p := range s.PlayerEvents {
			if p.Address == address {
				n += len(p.Events)
			}
		}
		return n
	}
	return s.heroCounts[address]
}

// HasMinted reports whether address appears in the per-player event map.
func (s *Snapshot) HasMinted(address string) bool {
	if s.heroCounts == nil {
		for _, p := range s.PlayerEvents {
			if p.Address == address {
				return true
			}
		}
		return false
	}
	_, ok := s.heroCounts[address]
	return ok
}

// PlayerCount is the number of unique minting addresses.
func (s *Snapshot) PlayerCount() int {
	return len(s.PlayerEvents)
}

// EventCount is the number of mint events across all players.
func (s *Snapshot) EventCount() int {
	n := 0
	for _, p := range s.PlayerEvents {
		n += len(p.Events)
	}
	return n
}

// TxTimestamps returns the transaction timestamps in document order.
func (s *Snapshot) TxTimestamps() []int64 {
	out := make([]int64, len(s.TxTimes))
	for i, tx := range s.TxTimes {
		out[i] = tx.TimestampMs
	}
	return out
}
