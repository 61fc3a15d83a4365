package chain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"server-invest-app/internal/model"
)

var (
	ten     = decimal.NewFromInt(10)
	hundred = decimal.NewFromInt(100)
)

/* 奖金分配
直推奖：投资额的10%记给直接推荐人（根用户投资时推荐人是自己，照记）。
层级奖：从直接推荐人起沿推荐链最多10层，第L层按 matchingPercents[L-1]% 计，
每层单独按整数截断，不做归一化。走到根即停止。
奖金只是记账额度，不从投资额中扣减。
*/
func (e *Engine) distributeBonuses(userID int64, amount decimal.Decimal) (direct decimal.Decimal, credits []model.BonusRecord) {
	u := e.users[userID]
	sponsor := e.users[u.SponsorID]

	direct = amount.Div(ten).Floor()
	sponsor.UnclaimedBonuses = sponsor.UnclaimedBonuses.Add(direct)
	sponsor.DirectBonusReceived = sponsor.DirectBonusReceived.Add(direct)
	credits = append(credits, model.BonusRecord{
		FromUserID: userID,
		ToUserID:   sponsor.UserID,
		Level:      0,
		Amount:     direct,
	})

	level := 0
	next := e.ancestorsUpTo(userID, maxMatchingLevels)
	for id, ok := next(); ok; id, ok = next() {
		pct := matchingPercents[level]
		level++
		m := amount.Mul(decimal.NewFromInt(pct)).Div(hundred).Floor()
		anc := e.users[id]
		anc.UnclaimedBonuses = anc.UnclaimedBonuses.Add(m)
		anc.MatchingBonusReceived = anc.MatchingBonusReceived.Add(m)
		credits = append(credits, model.BonusRecord{
			FromUserID: userID,
			ToUserID:   id,
			Level:      level,
			Amount:     m,
		})
	}
	return direct, credits
}

// GetAvailableBonus 查询未领取奖金
func (e *Engine) GetAvailableBonus(userID int64) (decimal.Decimal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, ok := e.users[userID]
	if !ok {
		return decimal.Decimal{}, ErrNotRegistered
	}
	return u.UnclaimedBonuses, nil
}

// ClaimBonus 领取全部未领取奖金：先清零记账，再转账，失败则恢复。
func (e *Engine) ClaimBonus(addr string) (decimal.Decimal, error) {
	if err := e.guard.enter(); err != nil {
		return decimal.Decimal{}, err
	}
	defer e.guard.leave()
	e.mu.Lock()
	defer e.mu.Unlock()

	id, ok := e.ids[addr]
	if !ok {
		return decimal.Decimal{}, ErrNotRegistered
	}
	u := e.users[id]
	if u.UnclaimedBonuses.IsZero() {
		return decimal.Decimal{}, ErrNoBonusAvailable
	}

	bonus := u.UnclaimedBonuses
	u.UnclaimedBonuses = decimal.Decimal{}

	if err := e.ledger.TransferOut(addr, bonus); err != nil {
		u.UnclaimedBonuses = bonus
		return decimal.Decimal{}, errors.Wrap(err, "transfer out bonus")
	}
	return bonus, nil
}
