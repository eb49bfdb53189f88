// Package risk maps failed-attempt counts to advisory severity tiers.
// The backend decides which IPs are suspicious at all; the tier is a
// display-only label computed at render time.
package risk

// Tier is an advisory severity label for a suspicious IP.
type Tier int

const (
	Low Tier = iota
	Medium
	High
)

const (
	highThreshold   = 10
	mediumThreshold = 5
)

// Classify returns the tier for a failed-attempt count. First match wins:
// >= 10 is High, >= 5 is Medium, everything else Low.
func Classify(failedAttempts int) Tier {
	switch {
	case failedAttempts >= highThreshold:
		return High
	case failedAttempts >= mediumThreshold:
		return Medium
	default:
		return Low
	}
}

func (t Tier) String() string {
	switch t {
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}
