package repository

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// ErrNotMember is returned when a loyalty operation references a viewer who
// has not enrolled in the program.
var ErrNotMember = errors.New("not a loyalty member")

// ErrInsufficientPoints is returned when a member claims a reward they
// cannot afford.
var ErrInsufficientPoints = errors.New("insufficient points")

// ErrRewardCooldown is returned when a member re-claims a reward inside its
// expiry window.
var ErrRewardCooldown = errors.New("reward recently claimed")

// Points earned per currency unit spent, before the tier multiplier.
const pointsPerUnit = 10

// LoyaltyProgram manages members, their tiers and the reward catalog.
// Program points accrue from spend (pointsPerUnit per currency unit, times
// the tier multiplier) and are redeemed for rewards.
type LoyaltyProgram struct {
	mu         sync.Mutex
	members    map[uint64]*model.LoyaltyMember
	rewards    map[model.RewardType]model.LoyaltyReward
	thresholds []tierThreshold
}

type tierThreshold struct {
	tier model.LoyaltyTier
	at   int
}

// NewLoyaltyProgram constructs the program with the standard reward catalog
// and tier thresholds.
func NewLoyaltyProgram() *LoyaltyProgram {
	return &LoyaltyProgram{
		members: make(map[uint64]*model.LoyaltyMember),
		rewards: map[model.RewardType]model.LoyaltyReward{
			model.RewardFreeTicket: {Type: model.RewardFreeTicket, PointsRequired: 1000, ExpiryDays: 30},
			model.RewardPopcorn:    {Type: model.RewardPopcorn, PointsRequired: 500, ExpiryDays: 14},
			model.RewardDrink:      {Type: model.RewardDrink, PointsRequired: 300, ExpiryDays: 14},
			model.RewardUpgrade:    {Type: model.RewardUpgrade, PointsRequired: 200, ExpiryDays: 7},
			model.RewardBirthday:   {Type: model.RewardBirthday, PointsRequired: 0, ExpiryDays: 7},
		},
		// Highest first so promotion picks the best earned tier.
		thresholds: []tierThreshold{
			{model.TierPlatinum, 20000},
			{model.TierGold, 10000},
			{model.TierSilver, 5000},
			{model.TierBronze, 0},
		},
	}
}

// Enroll adds a viewer to the program at bronze tier.
func (p *LoyaltyProgram) Enroll(viewerID uint64) (*model.LoyaltyMember, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.members[viewerID]; ok {
		return nil, ErrConflict
	}
	m := &model.LoyaltyMember{
		ViewerID: viewerID,
		JoinedAt: time.Now().UTC(),
		Tier:     model.TierBronze,
	}
	p.members[viewerID] = m
	cp := *m
	return &cp, nil
}

// RecordPurchase awards points for a purchase of amountCents and promotes
// the member when a threshold is crossed.
func (p *LoyaltyProgram) RecordPurchase(viewerID uint64, amountCents uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.members[viewerID]
	if !ok {
		return ErrNotMember
	}
	earned := int(math.Floor(float64(amountCents) / 100 * pointsPerUnit * m.Tier.Multiplier()))
	m.Points += earned
	for _, th := range p.thresholds {
		if m.Points >= th.at {
			m.Tier = th.tier
			break
		}
	}
	return nil
}

// Claim redeems a reward for a member.  The member must afford the points
// and must not have claimed the same reward inside its expiry window.
func (p *LoyaltyProgram) Claim(viewerID uint64, reward model.RewardType, now time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.members[viewerID]
	if !ok {
		return ErrNotMember
	}
	r, ok := p.rewards[reward]
	if !ok {
		return model.ErrValidation
	}
	if m.Points < r.PointsRequired {
		return ErrInsufficientPoints
	}
	window := time.Duration(r.ExpiryDays) * 24 * time.Hour
	for _, c := range m.Claimed {
		if c.Type == reward && now.Sub(c.ClaimedAt) < window {
			return ErrRewardCooldown
		}
	}
	m.Points -= r.PointsRequired
	m.Claimed = append(m.Claimed, model.ClaimedReward{Type: reward, ClaimedAt: now})
	return nil
}

// Member returns a copy of the member's state, or ErrNotMember.
func (p *LoyaltyProgram) Member(viewerID uint64) (*model.LoyaltyMember, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.members[viewerID]
	if !ok {
		return nil, ErrNotMember
	}
	cp := *m
	cp.Claimed = append([]model.ClaimedReward(nil), m.Claimed...)
	return &cp, nil
}

// AvailableRewards lists the rewards the member can claim right now, in
// catalog order.
func (p *LoyaltyProgram) AvailableRewards(viewerID uint64, now time.Time) ([]model.RewardType, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	m, ok := p.members[viewerID]
	if !ok {
		return nil, ErrNotMember
	}
	order := []model.RewardType{
		model.RewardFreeTicket, model.RewardPopcorn, model.RewardDrink,
		model.RewardUpgrade, model.RewardBirthday,
	}
	var out []model.RewardType
	for _, rt := range order {
		r := p.rewards[rt]
		if m.Points < r.PointsRequired {
			continue
		}
		window := time.Duration(r.ExpiryDays) * 24 * time.Hour
		blocked := false
		for _, c := range m.Claimed {
			if c.Type == rt && now.Sub(c.ClaimedAt) < window {
				blocked = true
				break
			}
		}
		if !blocked {
			out = append(out, rt)
		}
	}
	return out, nil
}
