package launchpad

import (
	"math/big"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const (
	MetricNameSpace = "launchpad"
)

var (
	mintedTokens = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "minted_tokens",
			Help:      "tokens issued through the sale",
		},
		[]string{"source"},
	)

	bidVolume = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "bid_volume_eth",
			Help:      "bucket auction contribution volume",
		},
	)

	treasuryBalance = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "treasury_balance_eth",
			Help:      "current treasury balance",
		},
	)
)

func init() {
	prometheus.MustRegister(
		mintedTokens,
		bidVolume,
		treasuryBalance,
	)
}

func weiToEth(wei *big.Int) float64 {
	eth, _ := decimal.NewFromBigInt(wei, -18).Float64()
	return eth
}

func metricMint(source string, qty uint32) {
	mintedTokens.WithLabelValues(source).Add(float64(qty))
}

func metricBid(amount *big.Int) {
	bidVolume.Add(weiToEth(amount))
}

func metricTreasury(bal *big.Int) {
	treasuryBalance.Set(weiToEth(bal))
}
