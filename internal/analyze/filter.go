// Package analyze compares a profile's preference settings against Apple's
// documented defaults and keeps only what differs.
package analyze

import (
	"fmt"
	"sort"

	"github.com/vburojevic/mdmdefaults/internal/domain"
	"github.com/vburojevic/mdmdefaults/internal/schema"
	"github.com/vburojevic/mdmdefaults/internal/value"
)

// Filter decides, key by key in sorted order, which settings differ from
// the defaults documented in s. Keys without a documented default are
// skipped, never kept. A nil schema documents nothing.
func Filter(name string, s *schema.Schema, settings map[string]interface{}) *domain.DomainResult {
	result := &domain.DomainResult{
		Domain:      name,
		NonDefaults: make(map[string]interface{}),
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		raw := settings[k]
		d := domain.KeyDecision{Key: k, Observed: observed(raw)}
		d.Default, d.HasDefault = schema.Default(s, k)

		switch {
		case !d.HasDefault:
			d.Outcome = domain.OutcomeSkipped
		case value.Equal(d.Observed, d.Default):
			d.Outcome = domain.OutcomeMatched
		default:
			d.Outcome = domain.OutcomeKept
			result.NonDefaults[k] = raw
		}
		result.Decisions = append(result.Decisions, d)
	}

	return result
}

// observed converts a decoded plist value for comparison. Types the value
// package cannot represent (plist UIDs) compare by their printed form.
func observed(raw interface{}) value.Value {
	v, err := value.FromNative(raw)
	if err != nil {
		return value.StringValue(fmt.Sprint(raw))
	}
	return v
}
