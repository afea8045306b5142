package fx

import (
	"strings"
	"sync"
)

// DefaultPinCount is how many recently used currency codes are kept.
const DefaultPinCount = 5

// RecentCurrencies ranks the most recently used currency codes for
// data-entry convenience. It is pure UI state: eviction or loss never
// affects stored records or computed balances.
type RecentCurrencies struct {
	mu    sync.Mutex
	max   int
	codes []string // most recent first
}

// NewRecentCurrencies creates a ranking bounded to max codes. A
// non-positive max falls back to DefaultPinCount.
func NewRecentCurrencies(max int) *RecentCurrencies {
	if max <= 0 {
		max = DefaultPinCount
	}
	return &RecentCurrencies{max: max}
}

// Touch marks a code as just used, moving it to the front. The least
// recently used code falls off beyond the pin count. Unknown or empty
// codes are ignored.
func (r *RecentCurrencies) Touch(code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.codes)+1)
	out = append(out, code)
	for _, c := range r.codes {
		if c != code {
			out = append(out, c)
		}
	}
	if len(out) > r.max {
		out = out[:r.max]
	}
	r.codes = out
}

// List returns the codes, most recent first.
func (r *RecentCurrencies) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.codes...)
}
