// Package model contains domain models passed between layers.
package model

// MintEvent is one hero minted by a player.
type MintEvent struct {
	Digest      string // transaction digest; several heroes may share one
	HeroID      string // minted hero object id
	TimestampMs int64  // epoch milliseconds
	IsPaid      bool   // whether SUI was paid for this hero
	Phase       int    // minting round, see PhaseLabels
}

// PlayerEvents groups a player's mint events in arrival order.
type PlayerEvents struct {
	Address string
	Events  []MintEvent
}

// PlayerAmount is the total SUI a player paid.
type PlayerAmount struct {
	Address string
	Amount  float64
}

// TxTime maps a transaction id to its timestamp.
type TxTime struct {
	TxID        string
	TimestampMs int64
}

// PhaseTimes lists the raw mint timestamps observed for one phase.
type PhaseTimes struct {
	Phase        int
	TimestampsMs []int64
}

// SuiPaidAmount is a single SUI payment.
type SuiPaidAmount struct {
	Amount      float64
	TimestampMs int64
}

// WeeklyData is a precomputed weekly mint count.
type WeeklyData struct {
	WeekStartTimestamp int64  `json:"weekStartTimestamp"`
	WeekEndTimestamp   int64  `json:"weekEndTimestamp"`
	WeekStart          string `json:"weekStart"`
	WeekEnd            string `json:"weekEnd"`
	Count              int64  `json:"count"`
	WeekNumber         int    `json:"weekNumber"`
}
