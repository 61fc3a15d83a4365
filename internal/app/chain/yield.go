package chain

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

/* 小时收益率
以 (时间戳, 用户ID) 的md5作为一次性随机源，取 2~5 的整数比例。
同一时刻重复计算结果一致，不同时刻会发散，这是既定行为，不持久化种子。
*/
func roiRate(ts, userID int64) int64 {
	sum := md5.Sum([]byte(fmt.Sprintf("%d:%d", ts, userID)))
	n := binary.BigEndian.Uint64(sum[:8])
	return roiMinPercent + int64(n%uint64(roiMaxPercent-roiMinPercent+1))
}

// calculateROI 自上次领取以来按整小时累计收益：
// 每小时收益 = 本金 * 比例 / 200000，逐级整数截断。
func (e *Engine) calculateROI(userID, now int64) decimal.Decimal {
	u := e.users[userID]
	hours := (now - u.LastClaimTime) / 3600
	if hours <= 0 || u.InvestedAmount.IsZero() {
		return decimal.Decimal{}
	}
	rate := roiRate(now, userID)
	hourly := u.InvestedAmount.Mul(decimal.NewFromInt(rate)).Div(decimal.NewFromInt(roiRateDivisor)).Floor()
	return hourly.Mul(decimal.NewFromInt(hours))
}

// CalculateROI 只读预估当前可领收益
func (e *Engine) CalculateROI(userID int64) (decimal.Decimal, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if _, ok := e.users[userID]; !ok {
		return decimal.Decimal{}, ErrNotRegistered
	}
	return e.calculateROI(userID, e.now().Unix()), nil
}

// ClaimROI 领取收益，低于最低领取额则拒绝。
// 记账完成后再转账，转账失败时恢复原状。
func (e *Engine) ClaimROI(addr string) (decimal.Decimal, error) {
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
	now := e.now().Unix()

	roi := e.calculateROI(id, now)
	if roi.LessThan(minClaimAmount) {
		return decimal.Decimal{}, ErrBelowMinimumClaim
	}

	u := e.users[id]
	prevLastClaim := u.LastClaimTime
	prevROI := u.ROIReceived
	prevClaimed := u.TotalClaimed
	u.LastClaimTime = now
	u.ROIReceived = u.ROIReceived.Add(roi)
	u.TotalClaimed = u.TotalClaimed.Add(roi)

	if err := e.ledger.TransferOut(addr, roi); err != nil {
		u.LastClaimTime = prevLastClaim
		u.ROIReceived = prevROI
		u.TotalClaimed = prevClaimed
		return decimal.Decimal{}, errors.Wrap(err, "transfer out roi")
	}
	return roi, nil
}

// GetCurrentHourROIPercentage 当前小时展示用收益率，按整点时间戳推导，小时内稳定
func (e *Engine) GetCurrentHourROIPercentage() int64 {
	now := e.now().Unix()
	return roiRate(now-now%3600, 0)
}

// GetNextHourROIPercentage 下一小时展示用收益率
func (e *Engine) GetNextHourROIPercentage() int64 {
	now := e.now().Unix()
	return roiRate(now-now%3600+3600, 0)
}
