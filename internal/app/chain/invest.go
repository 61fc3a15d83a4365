package chain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"server-invest-app/internal/model"
)

// InvestResult 一次投资产生的记账结果
type InvestResult struct {
	UserID      int64
	DirectBonus decimal.Decimal
	Credits     []model.BonusRecord
}

/* Invest 接受一笔投资
最低100单位（18位精度）。先校验注册前置条件再从账户拉取资金，
拉取成功后的内部记账不会失败，因此不需要回滚转账。
复投会把整个在投本金的锁定期重新起算，这是按累计额锁定的设计。
*/
func (e *Engine) Invest(addr string, sponsorID int64, amount decimal.Decimal) (InvestResult, error) {
	var res InvestResult
	if err := e.guard.enter(); err != nil {
		return res, err
	}
	defer e.guard.leave()
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount.LessThan(minInvestAmount) {
		return res, ErrAmountTooSmall
	}
	if err := e.checkSponsor(addr, sponsorID); err != nil {
		return res, err
	}
	now := e.now().Unix()

	if err := e.ledger.TransferInto(addr, amount); err != nil {
		return res, errors.Wrap(err, "transfer into")
	}

	id, err := e.registerOrGetUser(addr, sponsorID, now)
	if err != nil {
		return res, err
	}
	direct, credits := e.distributeBonuses(id, amount)

	u := e.users[id]
	u.LastClaimTime = now
	u.InvestedAmount = u.InvestedAmount.Add(amount)
	u.TotalDeposited = u.TotalDeposited.Add(amount)
	u.InvestmentTime = now

	res.UserID = id
	res.DirectBonus = direct
	res.Credits = credits
	return res, nil
}

// ClaimInvestedAmount 锁定期满后取回全部本金。
// 记账上把本金从累计投入移到累计领取，再向账户转出，失败则恢复。
func (e *Engine) ClaimInvestedAmount(addr string) (decimal.Decimal, error) {
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
	if u.InvestedAmount.IsZero() {
		return decimal.Decimal{}, ErrNoPrincipal
	}
	now := e.now().Unix()
	if now < u.InvestmentTime+lockPeriodSeconds {
		return decimal.Decimal{}, ErrStillLocked
	}

	amt := u.InvestedAmount
	prevDeposited := u.TotalDeposited
	prevClaimed := u.TotalClaimed
	prevLastClaim := u.LastClaimTime
	u.InvestedAmount = decimal.Decimal{}
	u.TotalDeposited = u.TotalDeposited.Sub(amt)
	u.TotalClaimed = u.TotalClaimed.Add(amt)
	u.LastClaimTime = now

	if err := e.ledger.TransferOut(addr, amt); err != nil {
		u.InvestedAmount = amt
		u.TotalDeposited = prevDeposited
		u.TotalClaimed = prevClaimed
		u.LastClaimTime = prevLastClaim
		return decimal.Decimal{}, errors.Wrap(err, "transfer out principal")
	}
	return amt, nil
}
