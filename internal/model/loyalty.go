package model

import "time"

// LoyaltyTier is a membership band in the loyalty program.  Each tier has a
// point-earning multiplier and a threshold at which members are promoted.
type LoyaltyTier string

const (
	TierBronze   LoyaltyTier = "BRONZE"
	TierSilver   LoyaltyTier = "SILVER"
	TierGold     LoyaltyTier = "GOLD"
	TierPlatinum LoyaltyTier = "PLATINUM"
)

var tierMultiplier = map[LoyaltyTier]float64{
	TierBronze:   1.0,
	TierSilver:   1.2,
	TierGold:     1.5,
	TierPlatinum: 2.0,
}

// Multiplier returns the point-earning multiplier for the tier.
func (t LoyaltyTier) Multiplier() float64 {
	return tierMultiplier[t]
}

// RewardType names a reward members can claim with points.
type RewardType string

const (
	RewardFreeTicket RewardType = "FREE_TICKET"
	RewardPopcorn    RewardType = "POPCORN"
	RewardDrink      RewardType = "DRINK"
	RewardUpgrade    RewardType = "UPGRADE"
	RewardBirthday   RewardType = "BIRTHDAY"
)

// LoyaltyReward describes the cost and claim window of a reward.
//
// Fields:
//  Type           – which reward this is.
//  PointsRequired – points deducted when claimed; non-negative.
//  ExpiryDays     – days the claim stays active; the same reward cannot be
//                   claimed again inside this window.  Must be positive.
type LoyaltyReward struct {
	Type           RewardType `json:"type"`
	PointsRequired int        `json:"points_required"`
	ExpiryDays     int        `json:"expiry_days"`
}

// Validate checks the reward configuration.
func (r LoyaltyReward) Validate() error {
	if r.PointsRequired < 0 {
		return invalidf("points required cannot be negative")
	}
	if r.ExpiryDays < 1 {
		return invalidf("expiry days must be positive")
	}
	return nil
}

// ClaimedReward records one claim in a member's history.
type ClaimedReward struct {
	Type      RewardType `json:"type"`
	ClaimedAt time.Time  `json:"claimed_at"`
}

// LoyaltyMember tracks a viewer enrolled in the loyalty program.  Program
// points are separate from the viewer's per-ticket points: they accrue from
// spend and are redeemed for rewards.
//
// Fields:
//  ViewerID – the enrolled viewer.
//  JoinedAt – enrollment timestamp.
//  Points   – current program point balance; never negative.
//  Tier     – current membership tier.
//  Claimed  – history of claimed rewards.
type LoyaltyMember struct {
	ViewerID uint64          `json:"viewer_id"`
	JoinedAt time.Time       `json:"joined_at"`
	Points   int             `json:"points"`
	Tier     LoyaltyTier     `json:"tier"`
	Claimed  []ClaimedReward `json:"claimed,omitempty"`
}
