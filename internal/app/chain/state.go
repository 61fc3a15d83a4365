package chain

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"server-invest-app/internal/app/asset"
	"server-invest-app/internal/model"
)

const (
	maxMatchingLevels = 10

	roiMinPercent  = 2
	roiMaxPercent  = 5
	roiRateDivisor = 200000

	lockPeriodSeconds     = 60 * 86400 // 本金锁定60天
	releaseCooldownSecond = 4 * 3600   // 利润分配间隔4小时
)

var (
	// 金额一律为18位精度整数值
	minInvestAmount = decimal.New(100, 18)
	minClaimAmount  = decimal.New(10, 18)

	// 1~10层的层级奖比例
	matchingPercents = [maxMatchingLevels]int64{7, 5, 3, 2, 1, 1, 1, 1, 1, 1}
)

var (
	ErrInvalidSponsor    = errors.New("invalid sponsor")
	ErrRootAlreadyExists = errors.New("root already exists")
	ErrAmountTooSmall    = errors.New("amount below minimum")
	ErrNotRegistered     = errors.New("address not registered")
	ErrNoBonusAvailable  = errors.New("no bonus available")
	ErrBelowMinimumClaim = errors.New("roi below minimum claim")
	ErrNoPrincipal       = errors.New("no principal")
	ErrStillLocked       = errors.New("principal still locked")
	ErrInsufficientPool  = errors.New("insufficient pool balance")
	ErrCooldownActive    = errors.New("cooldown active")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrReentrancy        = errors.New("reentrancy detected")
)

// reentrancyGuard 单一执行标记。标记置位期间任何受保护操作立即失败，
// 引擎同一时刻只执行一笔变更操作。
type reentrancyGuard struct {
	mu   sync.Mutex
	busy bool
}

func (g *reentrancyGuard) enter() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return ErrReentrancy
	}
	g.busy = true
	return nil
}

func (g *reentrancyGuard) leave() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

// Engine 记账引擎。所有核心状态以内存为准，每个公开操作在一次调用内原子完成：
// 先校验，再更新内部账目，最后调用外部资产账本，转账失败时恢复改动。
type Engine struct {
	mu    sync.RWMutex
	guard reentrancyGuard

	users      map[int64]*model.UserAccount
	ids        map[string]int64 // address -> userID
	lastUserID int64

	poolBalance      decimal.Decimal
	lastDistribution int64
	companyWallet    string
	owner            string

	ledger asset.Ledger
	now    func() time.Time
}

func NewEngine(ledger asset.Ledger, owner, companyWallet string) *Engine {
	return &Engine{
		users:         make(map[int64]*model.UserAccount),
		ids:           make(map[string]int64),
		companyWallet: companyWallet,
		owner:         owner,
		ledger:        ledger,
		now:           time.Now,
	}
}

// Eng 进程内唯一引擎实例
var Eng *Engine

func Init(ledger asset.Ledger, owner, companyWallet string) {
	Eng = NewEngine(ledger, owner, companyWallet)
}

// UserSnapshot 返回账户副本，供落库和查询使用
func (e *Engine) UserSnapshot(userID int64) (model.UserAccount, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, ok := e.users[userID]
	if !ok {
		return model.UserAccount{}, ErrNotRegistered
	}
	cp := *u
	cp.DownlineIDs = append([]int64(nil), u.DownlineIDs...)
	return cp, nil
}

// SponsorEdges 返回推荐关系快照 parent -> children
func (e *Engine) SponsorEdges() map[int64][]int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	edges := make(map[int64][]int64, len(e.users))
	for id, u := range e.users {
		if len(u.DownlineIDs) > 0 {
			edges[id] = append([]int64(nil), u.DownlineIDs...)
		}
	}
	return edges
}

// Stats 平台汇总快照
func (e *Engine) Stats() model.StatRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s := model.StatRecord{Users: e.lastUserID}
	for _, u := range e.users {
		s.TotalPrincipal = s.TotalPrincipal.Add(u.InvestedAmount)
		s.OutstandingBonus = s.OutstandingBonus.Add(u.UnclaimedBonuses)
	}
	s.PoolBalance = e.poolBalance
	return s
}
