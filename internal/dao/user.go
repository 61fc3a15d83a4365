package dao

import (
	"server-invest-app/internal/db"
	"server-invest-app/internal/model"
)

type userAccount struct {
}

var UserAccount = new(userAccount)

// Upsert 以内存状态为准覆盖快照
func (*userAccount) Upsert(u model.UserAccount) (err error) {
	sqlStr := "insert into user_account (user_id,address,sponsor_id,invested_amount,investment_time," +
		"last_claim_time,direct_sponsors_count,unclaimed_bonuses,user_roi_received,user_total_deposited," +
		"user_total_claimed,direct_bonus_received,matching_bonus_received) " +
		"values (?,?,?,?,?,?,?,?,?,?,?,?,?) " +
		"on duplicate key update invested_amount=values(invested_amount)," +
		"investment_time=values(investment_time),last_claim_time=values(last_claim_time)," +
		"direct_sponsors_count=values(direct_sponsors_count),unclaimed_bonuses=values(unclaimed_bonuses)," +
		"user_roi_received=values(user_roi_received),user_total_deposited=values(user_total_deposited)," +
		"user_total_claimed=values(user_total_claimed),direct_bonus_received=values(direct_bonus_received)," +
		"matching_bonus_received=values(matching_bonus_received)"
	_, err = db.MysqlCli.Exec(sqlStr, u.UserID, u.Address, u.SponsorID, u.InvestedAmount, u.InvestmentTime,
		u.LastClaimTime, u.DirectSponsorsCount, u.UnclaimedBonuses, u.ROIReceived, u.TotalDeposited,
		u.TotalClaimed, u.DirectBonusReceived, u.MatchingBonusReceived)
	return
}

func (*userAccount) GetByUserID(userID int64) (u model.UserAccount, err error) {
	sqlStr := "select user_id,address,sponsor_id,invested_amount,investment_time,last_claim_time," +
		"direct_sponsors_count,unclaimed_bonuses,user_roi_received,user_total_deposited," +
		"user_total_claimed,direct_bonus_received,matching_bonus_received from user_account where user_id = ?"
	row := db.MysqlCli.QueryRow(sqlStr, userID)
	err = row.Scan(&u.UserID, &u.Address, &u.SponsorID, &u.InvestedAmount, &u.InvestmentTime,
		&u.LastClaimTime, &u.DirectSponsorsCount, &u.UnclaimedBonuses, &u.ROIReceived, &u.TotalDeposited,
		&u.TotalClaimed, &u.DirectBonusReceived, &u.MatchingBonusReceived)
	return
}
