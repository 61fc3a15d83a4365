package model

import "github.com/shopspring/decimal"

// 用户账户表结构（内存状态为准，库中保存快照）
type UserAccount struct {
	UserID                int64           `json:"user_id"`                 // 用户ID（从1递增）
	Address               string          `json:"address"`                 // 链上地址
	SponsorID             int64           `json:"sponsor_id"`              // 推荐人ID（根用户指向自己）
	InvestedAmount        decimal.Decimal `json:"invested_amount"`         // 当前在投本金
	InvestmentTime        int64           `json:"investment_time"`         // 最近一次投资时间（Unix时间戳）
	LastClaimTime         int64           `json:"last_claim_time"`         // 最近一次领取收益时间
	DirectSponsorsCount   int64           `json:"direct_sponsors_count"`   // 直推人数
	UnclaimedBonuses      decimal.Decimal `json:"unclaimed_bonuses"`       // 未领取奖金（直推+层级）
	ROIReceived           decimal.Decimal `json:"user_roi_received"`       // 累计已领收益
	TotalDeposited        decimal.Decimal `json:"user_total_deposited"`    // 累计投入
	TotalClaimed          decimal.Decimal `json:"user_total_claimed"`      // 累计领取
	DirectBonusReceived   decimal.Decimal `json:"direct_bonus_received"`   // 累计直推奖金
	MatchingBonusReceived decimal.Decimal `json:"matching_bonus_received"` // 累计层级奖金
	DownlineIDs           []int64         `json:"downline_ids"`            // 直推下线ID列表
}

// 投资流水
type InvestRecord struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Address   string          `json:"address"`
	SponsorID int64           `json:"sponsor_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt int64           `json:"created_at"`
}

// 奖金流水 Level 0 表示直推奖金
type BonusRecord struct {
	ID         int64           `json:"id"`
	FromUserID int64           `json:"from_user_id"` // 投资人
	ToUserID   int64           `json:"to_user_id"`   // 受益人
	Level      int             `json:"level"`
	Amount     decimal.Decimal `json:"amount"`
}

// 领取流水 kind: roi/bonus/principal
type ClaimRecord struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"user_id"`
	Kind   string          `json:"kind"`
	Amount decimal.Decimal `json:"amount"`
}

// 资金池流水 kind: deposit/release/emergency
type TreasuryRecord struct {
	ID     int64           `json:"id"`
	Kind   string          `json:"kind"`
	Wallet string          `json:"wallet"`
	Amount decimal.Decimal `json:"amount"`
}

// 平台快照
type StatRecord struct {
	Users            int64           `json:"users"`
	TotalPrincipal   decimal.Decimal `json:"total_principal"`
	PoolBalance      decimal.Decimal `json:"pool_balance"`
	OutstandingBonus decimal.Decimal `json:"outstanding_bonus"`
}
