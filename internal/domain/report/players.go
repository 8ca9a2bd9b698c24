package report

import (
	"slices"

	"github.com/okian/mintboard/internal/domain/model"
	"github.com/okian/mintboard/internal/domain/ranking"
	"github.com/okian/mintboard/internal/domain/table"
)

// Player table configuration.
const (
	PlayersPageSize = 15
	tablePrefix     = 10
	tableSuffix     = 8
)

// Player table column keys.
const (
	ColumnRank         = "rank"
	ColumnShortAddress = "shortAddress"
	ColumnSui          = "sui"
	ColumnHeroCount    = "heroCount"
)

// PlayerRow joins a player's SUI total with the heroes they minted. Rank is
// the position in the default SUI-descending order and is shown as the
// "SUI Rank" column; tables number their rows positionally on top of it.
type PlayerRow struct {
	Rank         int     `json:"rank"`
	Address      string  `json:"address"`
	ShortAddress string  `json:"short_address"`
	SuiPaid      float64 `json:"sui_paid"`
	HeroCount    int     `json:"hero_count"`
}

// PlayerRows builds one row per address found in either player map: SUI
// payers first in document order, then minters who never paid with a zero
// amount. Rows are sorted by SUI descending, ties in that order.
func PlayerRows(s *model.Snapshot) []PlayerRow {
	rows := make([]PlayerRow, 0, max(len(s.PlayerSuiPaid), len(s.PlayerEvents)))
	seen := make(map[string]struct{}, cap(rows))
	for _, p := range s.PlayerSuiPaid {
		if _, dup := seen[p.Address]; dup {
			continue
		}
		seen[p.Address] = struct{}{}
		rows = append(rows, newPlayerRow(p.Address, p.Amount, s.HeroCount(p.Address)))
	}
	for _, p := range s.PlayerEvents {
		if _, dup := seen[p.Address]; dup {
			continue
		}
		seen[p.Address] = struct{}{}
		rows = append(rows, newPlayerRow(p.Address, 0, s.HeroCount(p.Address)))
	}

	slices.SortStableFunc(rows, func(a, b PlayerRow) int {
		switch {
		case a.SuiPaid > b.SuiPaid:
			return -1
		case a.SuiPaid < b.SuiPaid:
			return 1
		default:
			return 0
		}
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

func newPlayerRow(address string, sui float64, heroes int) PlayerRow {
	return PlayerRow{
		Address:      address,
		ShortAddress: ranking.ShortenKey(address, tablePrefix, tableSuffix),
		SuiPaid:      sui,
		HeroCount:    heroes,
	}
}

// PlayerColumns describes the all-players table.
func PlayerColumns(f *Formatter) []table.Column[PlayerRow] {
	return []table.Column[PlayerRow]{
		{
			Key:      ColumnRank,
			Label:    "SUI Rank",
			Sortable: true,
			Value:    func(r PlayerRow) any { return r.Rank },
		},
		{
			Key:   ColumnShortAddress,
			Label: "Player Address",
			Value: func(r PlayerRow) any { return r.ShortAddress },
		},
		{
			Key:      ColumnSui,
			Label:    "SUI Paid",
			Sortable: true,
			Value:    func(r PlayerRow) any { return r.SuiPaid },
			Render:   func(_ any, r PlayerRow) string { return f.Number(r.SuiPaid) },
		},
		{
			Key:      ColumnHeroCount,
			Label:    "Heroes Minted",
			Sortable: true,
			Value:    func(r PlayerRow) any { return r.HeroCount },
			Render:   func(_ any, r PlayerRow) string { return f.Int(int64(r.HeroCount)) },
		},
	}
}

// NewPlayersTable wraps rows in a sortable table with PlayersPageSize rows
// per page unless overridden.
func NewPlayersTable(rows []PlayerRow, f *Formatter, opts ...table.Option) (*table.Table[PlayerRow], error) {
	opts = append([]table.Option{table.WithPageSize(PlayersPageSize)}, opts...)
	return table.New(rows, PlayerColumns(f), opts...)
}
