package orchestration

import (
	"strings"

	"github.com/agbru/bigmul/internal/config"
	"github.com/agbru/bigmul/internal/multiply"
)

// GetMultipliersToRun determines which multipliers should be executed based
// on the configuration. With "all", every registered multiplier is returned
// in alphabetical order.
//
// Parameters:
//   - cfg: The application configuration containing the algorithm selection.
//   - factory: The factory to retrieve implementations from.
//
// Returns:
//   - []multiply.Multiplier: The multipliers to execute (nil if none match).
func GetMultipliersToRun(cfg config.AppConfig, factory multiply.MultiplierFactory) []multiply.Multiplier {
	algo := strings.ToLower(cfg.Algo)
	if algo == config.AlgoAll {
		keys := factory.List()
		multipliers := make([]multiply.Multiplier, 0, len(keys))
		for _, k := range keys {
			if m, err := factory.Get(k); err == nil {
				multipliers = append(multipliers, m)
			}
		}
		return multipliers
	}
	if m, err := factory.Get(algo); err == nil {
		return []multiply.Multiplier{m}
	}
	return nil
}
