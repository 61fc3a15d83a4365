package chain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Deposit 任何人都可以向资金池充值
func (e *Engine) Deposit(addr string, amount decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if amount.Sign() <= 0 {
		return ErrAmountTooSmall
	}
	if err := e.ledger.TransferInto(addr, amount); err != nil {
		return errors.Wrap(err, "transfer into pool")
	}
	e.poolBalance = e.poolBalance.Add(amount)
	return nil
}

// PoolBalance 资金池余额
func (e *Engine) PoolBalance() decimal.Decimal {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.poolBalance
}

// CompanyWallet 当前利润接收钱包
func (e *Engine) CompanyWallet() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.companyWallet
}

// ReleaseProfit 运营方提取利润，两次提取间隔不少于4小时。
// 先扣减资金池并推进分配时间，再转账，失败则恢复。
func (e *Engine) ReleaseProfit(caller string, amount decimal.Decimal) error {
	if err := e.guard.enter(); err != nil {
		return err
	}
	defer e.guard.leave()
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.owner {
		return ErrUnauthorized
	}
	if amount.GreaterThan(e.poolBalance) {
		return ErrInsufficientPool
	}
	now := e.now().Unix()
	if now < e.lastDistribution+releaseCooldownSecond {
		return ErrCooldownActive
	}

	prevPool := e.poolBalance
	prevDist := e.lastDistribution
	e.poolBalance = e.poolBalance.Sub(amount)
	e.lastDistribution = now

	if err := e.ledger.TransferOut(e.companyWallet, amount); err != nil {
		e.poolBalance = prevPool
		e.lastDistribution = prevDist
		return errors.Wrap(err, "transfer out profit")
	}
	return nil
}

// EmergencyWithdrawAll 紧急提取全部资金池，不受冷却限制。
// 先转账再清零，转账失败时账目未动。
func (e *Engine) EmergencyWithdrawAll(caller string) (decimal.Decimal, error) {
	if err := e.guard.enter(); err != nil {
		return decimal.Decimal{}, err
	}
	defer e.guard.leave()
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.owner {
		return decimal.Decimal{}, ErrUnauthorized
	}
	amt := e.poolBalance
	if err := e.ledger.TransferOut(e.companyWallet, amt); err != nil {
		return decimal.Decimal{}, errors.Wrap(err, "transfer out pool")
	}
	e.poolBalance = decimal.Decimal{}
	return amt, nil
}

// SetCompanyWallet 运营方更换利润接收钱包
func (e *Engine) SetCompanyWallet(caller, wallet string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if caller != e.owner {
		return ErrUnauthorized
	}
	e.companyWallet = wallet
	return nil
}
