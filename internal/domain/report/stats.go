package report

import (
	"fmt"

	"github.com/okian/mintboard/internal/domain/model"
)

// Stat card keys.
const (
	StatTotalHeroes       = "total_heroes"
	StatTotalSui          = "total_sui"
	StatPaidHeroes        = "paid_heroes"
	StatUnpaidHeroes      = "unpaid_heroes"
	StatTotalPlayers      = "total_players"
	StatAvgHeroesPlayer   = "avg_heroes_per_player"
	StatAvgSuiPrice       = "avg_sui_price"
	StatTotalTransactions = "total_transactions"
)

// notAvailable is shown for averages without a population.
const notAvailable = "n/a"

// StatCard is a single headline figure. Value is nil when the figure is
// undefined for the snapshot.
type StatCard struct {
	Key      string   `json:"key"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Value    *float64 `json:"value"`
	Display  string   `json:"display"`
}

// UnpaidHeroes is the number of heroes minted without a SUI payment.
func UnpaidHeroes(s *model.Snapshot) int64 {
	return s.TotalHeroMinted - s.TotalPaidHeroMinted
}

// AverageHeroesPerPlayer divides total heroes by unique minters.
func AverageHeroesPerPlayer(s *model.Snapshot) (float64, error) {
	players := s.PlayerCount()
	if players == 0 {
		return 0, fmt.Errorf("average heroes per player: %w", ErrZeroDenominator)
	}
	return float64(s.TotalHeroMinted) / float64(players), nil
}

// AverageSuiPerPaidHero divides total SUI by the number of paid heroes.
func AverageSuiPerPaidHero(s *model.Snapshot) (float64, error) {
	if s.TotalPaidHeroMinted == 0 {
		return 0, fmt.Errorf("average sui per paid hero: %w", ErrZeroDenominator)
	}
	return s.TotalSuiPaid / float64(s.TotalPaidHeroMinted), nil
}

func intCard(f *Formatter, key, title, subtitle string, n int64) StatCard {
	v := float64(n)
	return StatCard{Key: key, Title: title, Subtitle: subtitle, Value: &v, Display: f.Int(n)}
}

func averageCard(f *Formatter, key, title, subtitle string, avg float64, err error) StatCard {
	c := StatCard{Key: key, Title: title, Subtitle: subtitle, Display: notAvailable}
	if err == nil {
		c.Value = &avg
		c.Display = f.Fixed2(avg)
	}
	return c
}
