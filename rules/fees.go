package rules

import (
	"fmt"

	"github.com/etnz/folio"
)

// FeeThreshold is the ratio of fees to initial investment above which fees are reported.
const FeeThreshold = 0.01

var FeeRatioInitialInvestment = Register("FeeRatioInitialInvestment", "Fee Ratio", feeRatio)

func feeRatio(in folio.RuleInput, _ folio.RuleContext) (string, bool, error) {
	if !in.TotalBuy.IsPositive() {
		return "", false, folio.ErrSkip
	}
	share := ratio(in.Fees, in.TotalBuy)
	if share > FeeThreshold {
		return fmt.Sprintf("The fees do exceed %s%% of your initial investment (%s%%)", percent(FeeThreshold), percent(share)), false, nil
	}
	return fmt.Sprintf("The fees do not exceed %s%% of your initial investment (%s%%)", percent(FeeThreshold), percent(share)), true, nil
}
