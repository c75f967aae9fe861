package schema

// Param holds the tunable service knobs; a zero RateLimit disables the
// limiter middleware.
type Param struct {
	ID         int64  `gorm:"primarykey" json:"-"`
	RateLimit  int    `json:"rateLimit"`
	RatePeriod string `json:"ratePeriod"` // "S","M","H","D"
}

type IpRateWhitelist struct {
	OriginOrIP  string // e.g "188.0.2.2"
	Available   bool   `gorm:"index:idx3"` // true means effective
	Description string
}
