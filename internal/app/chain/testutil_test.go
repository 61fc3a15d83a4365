package chain

import (
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// 可控时钟
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type transferCall struct {
	account string
	amount  decimal.Decimal
}

// 测试用资产账本，可注入失败和回调
type fakeLedger struct {
	failIn   bool
	failOut  bool
	inCalls  []transferCall
	outCalls []transferCall
	onOut    func() // 模拟转账方回调重入
}

func (l *fakeLedger) TransferInto(from string, amount decimal.Decimal) error {
	if l.failIn {
		return errors.New("ledger refused transfer in")
	}
	l.inCalls = append(l.inCalls, transferCall{from, amount})
	return nil
}

func (l *fakeLedger) TransferOut(to string, amount decimal.Decimal) error {
	if l.onOut != nil {
		l.onOut()
	}
	if l.failOut {
		return errors.New("ledger refused transfer out")
	}
	l.outCalls = append(l.outCalls, transferCall{to, amount})
	return nil
}

const (
	testOwner  = "owner-addr"
	testWallet = "company-wallet"
)

func newTestEngine(ledger *fakeLedger) (*Engine, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	eng := NewEngine(ledger, testOwner, testWallet)
	eng.now = clock.now
	return eng, clock
}

// 单位换算：n 个 18 位精度整币
func units(n int64) decimal.Decimal {
	return decimal.New(n, 18)
}
