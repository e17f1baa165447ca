// Package rewards ranks a broadcaster's reward tiers against a running event
// count.
package rewards

import (
	"sort"

	"github.com/streamrewards/streamrewards/gen/sr/public/model"
)

// Next returns the first tier the count has not reached yet and the remaining
// tiers from that one upward, evaluated in ascending SubCount order regardless
// of input order. A tier whose SubCount equals the count is considered met.
// Both results are nil when every tier has been met or there are none.
func Next(count int32, tiers []*model.UserRewards) (*model.UserRewards, []*model.UserRewards) {
	sorted := make([]*model.UserRewards, len(tiers))
	copy(sorted, tiers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SubCount < sorted[j].SubCount
	})

	for i, tier := range sorted {
		if tier.SubCount > count {
			return tier, sorted[i:]
		}
	}
	return nil, nil
}

// FriendlyName maps a tracked event type to the label shown next to its
// counter.
func FriendlyName(eventType model.Eventtype) string {
	switch eventType {
	case model.Eventtype_ChannelFollow:
		return "Follows"
	case model.Eventtype_ChannelSubscribe:
		return "subs"
	}
	return string(eventType)
}
