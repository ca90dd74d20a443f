package folio

import (
	"github.com/montanaflynn/stats"
)

// Volatility returns the sample standard deviation of the month over month
// change of the gross performance percent. Only snapshots dated on the first
// of a month are used. It is zero with fewer than three of them.
func (p *Portfolio) Volatility() (float64, error) {
	var points []float64
	for _, s := range p.load().snapshots {
		if s.Date.Day() == 1 && s.Value.Valid {
			points = append(points, s.GrossPerformancePercent)
		}
	}
	if len(points) < 3 {
		return 0, nil
	}
	returns := make(stats.Float64Data, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		returns = append(returns, points[i]-points[i-1])
	}
	sd, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, err
	}
	return roundTo(sd, 6), nil
}
