package dao

import (
	"database/sql"

	"server-invest-app/internal/db"
	"server-invest-app/internal/model"
)

type invest struct {
}

var Invest = new(invest)

func (*invest) Create(r model.InvestRecord) (err error) {
	sqlStr := "insert into invest_record (user_id,address,sponsor_id,amount) values (?,?,?,?)"
	_, err = db.MysqlCli.Exec(sqlStr, r.UserID, r.Address, r.SponsorID, r.Amount)
	return
}

func (*invest) CreateWithTx(tx *sql.Tx, r model.InvestRecord) (err error) {
	sqlStr := "insert into invest_record (user_id,address,sponsor_id,amount) values (?,?,?,?)"
	_, err = tx.Exec(sqlStr, r.UserID, r.Address, r.SponsorID, r.Amount)
	return
}

type bonus struct {
}

var Bonus = new(bonus)

func (*bonus) CreateWithTx(tx *sql.Tx, data []model.BonusRecord) (err error) {
	if len(data) == 0 {
		return
	}
	var vals []interface{}

	sqlStr := "insert into bonus_record (from_user_id,to_user_id,level,amount) values "
	for _, row := range data {
		sqlStr += "(?,?,?,?),"
		vals = append(vals, row.FromUserID, row.ToUserID, row.Level, row.Amount)
	}
	// trim the last ,
	sqlStr = sqlStr[0 : len(sqlStr)-1]
	// prepare the statement
	stmt, err := tx.Prepare(sqlStr)
	if err != nil {
		return
	}

	// format all vals at once
	_, err = stmt.Exec(vals...)
	return
}

type claim struct {
}

var Claim = new(claim)

func (*claim) Create(r model.ClaimRecord) (err error) {
	sqlStr := "insert into claim_record (user_id,kind,amount) values (?,?,?)"
	_, err = db.MysqlCli.Exec(sqlStr, r.UserID, r.Kind, r.Amount)
	return
}

type treasury struct {
}

var Treasury = new(treasury)

func (*treasury) Create(r model.TreasuryRecord) (err error) {
	sqlStr := "insert into treasury_record (kind,wallet,amount) values (?,?,?)"
	_, err = db.MysqlCli.Exec(sqlStr, r.Kind, r.Wallet, r.Amount)
	return
}

type stat struct {
}

var Stat = new(stat)

func (*stat) Create(r model.StatRecord) (err error) {
	sqlStr := "insert into stat_record (users,total_principal,pool_balance,outstanding_bonus) values (?,?,?,?)"
	_, err = db.MysqlCli.Exec(sqlStr, r.Users, r.TotalPrincipal, r.PoolBalance, r.OutstandingBonus)
	return
}
