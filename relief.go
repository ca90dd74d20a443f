package folio

import "fmt"

// ReliefMethod defines how a sell reduces the cost basis of a position.
type ReliefMethod int

const (
	// AverageCost relieves the sold quantity at the position average price,
	// so the average price of the remaining units is unchanged.
	AverageCost ReliefMethod = iota
	// Proceeds relieves the sale total, the average price of the remaining
	// units absorbs the realized gain or loss.
	Proceeds
)

func (m ReliefMethod) String() string {
	switch m {
	case AverageCost:
		return "average"
	case Proceeds:
		return "proceeds"
	default:
		return "unknown"
	}
}

// ParseReliefMethod parses the names returned by String.
func ParseReliefMethod(s string) (ReliefMethod, error) {
	switch s {
	case "average", "":
		return AverageCost, nil
	case "proceeds":
		return Proceeds, nil
	default:
		return 0, fmt.Errorf("unknown relief method: %q", s)
	}
}
