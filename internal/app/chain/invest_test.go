package chain

import (
	"testing"
	"time"
)

func TestInvestBelowMinimumRejected(t *testing.T) {
	ledger := &fakeLedger{}
	eng, _ := newTestEngine(ledger)

	_, err := eng.Invest("u1", 0, units(99))
	if err != ErrAmountTooSmall {
		t.Fatalf("err = %v, want ErrAmountTooSmall", err)
	}
	if eng.lastUserID != 0 || len(ledger.inCalls) != 0 {
		t.Fatal("rejected invest must not touch state or ledger")
	}
}

func TestInvestRegistersNewUser(t *testing.T) {
	ledger := &fakeLedger{}
	eng, clock := newTestEngine(ledger)
	now := clock.now().Unix()

	res, err := eng.Invest("u1", 0, units(100))
	if err != nil {
		t.Fatalf("invest: %v", err)
	}
	if res.UserID != 1 {
		t.Fatalf("user id = %d, want 1", res.UserID)
	}
	// 根用户的推荐人是自己，直推奖记给自己
	if !res.DirectBonus.Equal(units(10)) {
		t.Fatalf("direct bonus = %s, want 10 units", res.DirectBonus)
	}

	u := eng.users[1]
	if !u.InvestedAmount.Equal(units(100)) || !u.TotalDeposited.Equal(units(100)) {
		t.Fatalf("principal = %s, deposited = %s, want 100 units", u.InvestedAmount, u.TotalDeposited)
	}
	if u.InvestmentTime != now || u.LastClaimTime != now {
		t.Fatalf("timestamps = %d/%d, want %d", u.InvestmentTime, u.LastClaimTime, now)
	}
	if len(ledger.inCalls) != 1 || ledger.inCalls[0].account != "u1" || !ledger.inCalls[0].amount.Equal(units(100)) {
		t.Fatalf("transfer in calls = %+v", ledger.inCalls)
	}
}

func TestInvestTransferFailureLeavesNoState(t *testing.T) {
	ledger := &fakeLedger{failIn: true}
	eng, _ := newTestEngine(ledger)

	if _, err := eng.Invest("u1", 0, units(100)); err == nil {
		t.Fatal("invest should fail when transfer in fails")
	}
	if eng.lastUserID != 0 || len(eng.users) != 0 {
		t.Fatal("failed invest must not register the user")
	}
}

func TestInvestInvalidSponsorBeforeTransfer(t *testing.T) {
	ledger := &fakeLedger{}
	eng, _ := newTestEngine(ledger)

	if _, err := eng.Invest("u1", 5, units(100)); err != ErrInvalidSponsor {
		t.Fatalf("err = %v, want ErrInvalidSponsor", err)
	}
	// 校验失败必须发生在拉取资金之前
	if len(ledger.inCalls) != 0 {
		t.Fatal("sponsor validation must run before transfer in")
	}
}

func TestClaimPrincipalLifecycle(t *testing.T) {
	ledger := &fakeLedger{}
	eng, clock := newTestEngine(ledger)

	if _, err := eng.Invest("u1", 0, units(100)); err != nil {
		t.Fatalf("invest: %v", err)
	}

	// 锁定期内不可取回
	clock.advance(59 * 24 * time.Hour)
	if _, err := eng.ClaimInvestedAmount("u1"); err != ErrStillLocked {
		t.Fatalf("err = %v, want ErrStillLocked", err)
	}

	// 满60天整点即可取回全部本金
	clock.advance(24 * time.Hour)
	amt, err := eng.ClaimInvestedAmount("u1")
	if err != nil {
		t.Fatalf("claim principal: %v", err)
	}
	if !amt.Equal(units(100)) {
		t.Fatalf("claimed = %s, want 100 units", amt)
	}
	u := eng.users[1]
	if !u.InvestedAmount.IsZero() {
		t.Fatalf("principal = %s, want 0", u.InvestedAmount)
	}
	if !u.TotalDeposited.IsZero() || !u.TotalClaimed.Equal(units(100)) {
		t.Fatalf("deposited/claimed = %s/%s, want 0/100", u.TotalDeposited, u.TotalClaimed)
	}

	// 再取一次应报无本金
	if _, err = eng.ClaimInvestedAmount("u1"); err != ErrNoPrincipal {
		t.Fatalf("err = %v, want ErrNoPrincipal", err)
	}
}

// 复投把整笔在投本金的锁定期重新起算
func TestReinvestRestartsLockForWholePrincipal(t *testing.T) {
	ledger := &fakeLedger{}
	eng, clock := newTestEngine(ledger)

	if _, err := eng.Invest("u1", 0, units(100)); err != nil {
		t.Fatalf("first invest: %v", err)
	}
	clock.advance(30 * 24 * time.Hour)
	if _, err := eng.Invest("u1", 0, units(100)); err != nil {
		t.Fatalf("second invest: %v", err)
	}

	// 首笔已满60天，但复投后整体仍锁定
	clock.advance(30 * 24 * time.Hour)
	if _, err := eng.ClaimInvestedAmount("u1"); err != ErrStillLocked {
		t.Fatalf("err = %v, want ErrStillLocked", err)
	}

	clock.advance(30 * 24 * time.Hour)
	amt, err := eng.ClaimInvestedAmount("u1")
	if err != nil {
		t.Fatalf("claim principal: %v", err)
	}
	if !amt.Equal(units(200)) {
		t.Fatalf("claimed = %s, want 200 units", amt)
	}
}

func TestClaimPrincipalRollbackOnTransferFailure(t *testing.T) {
	ledger := &fakeLedger{}
	eng, clock := newTestEngine(ledger)

	if _, err := eng.Invest("u1", 0, units(100)); err != nil {
		t.Fatalf("invest: %v", err)
	}
	clock.advance(61 * 24 * time.Hour)

	ledger.failOut = true
	if _, err := eng.ClaimInvestedAmount("u1"); err == nil {
		t.Fatal("claim should fail when transfer fails")
	}
	u := eng.users[1]
	if !u.InvestedAmount.Equal(units(100)) || !u.TotalDeposited.Equal(units(100)) {
		t.Fatalf("state after failed claim = %s/%s, want 100/100", u.InvestedAmount, u.TotalDeposited)
	}
	if !u.TotalClaimed.IsZero() {
		t.Fatalf("total claimed = %s, want 0 (rolled back)", u.TotalClaimed)
	}
}

// 资产账本回调期间嵌套调用必须立即失败，外层调用不受影响
func TestReentrantCallRejected(t *testing.T) {
	ledger := &fakeLedger{}
	eng, clock := newTestEngine(ledger)

	rootID, _ := eng.registerOrGetUser("u1", 0, clock.now().Unix())
	if _, err := eng.Invest("u2", rootID, units(100)); err != nil {
		t.Fatalf("invest: %v", err)
	}

	var nestedErr error
	ledger.onOut = func() {
		_, nestedErr = eng.ClaimBonus("u1")
	}

	if _, err := eng.ClaimBonus("u1"); err != nil {
		t.Fatalf("outer claim failed: %v", err)
	}
	if nestedErr != ErrReentrancy {
		t.Fatalf("nested err = %v, want ErrReentrancy", nestedErr)
	}
	// 外层领取成功且只转账一次
	if len(ledger.outCalls) != 1 {
		t.Fatalf("transfer out calls = %d, want 1", len(ledger.outCalls))
	}
}
