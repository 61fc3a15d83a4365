package chain

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"server-invest-app/internal/app/warn"
	"server-invest-app/internal/dao"
	"server-invest-app/internal/db"
	"server-invest-app/internal/model"
	"server-invest-app/internal/pkg/generr"
)

type okResp struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, okResp{Code: 200, Msg: "success", Data: data})
}

// 引擎错误转响应码
func fail(c *gin.Context, err error) {
	switch errors.Cause(err) {
	case ErrInvalidSponsor:
		c.JSON(http.StatusBadRequest, generr.InvalidSponsor)
	case ErrRootAlreadyExists:
		c.JSON(http.StatusBadRequest, generr.RootAlreadyExists)
	case ErrAmountTooSmall:
		c.JSON(http.StatusBadRequest, generr.AmountTooSmall)
	case ErrNotRegistered:
		c.JSON(http.StatusBadRequest, generr.NotRegistered)
	case ErrNoBonusAvailable:
		c.JSON(http.StatusBadRequest, generr.NoBonusAvailable)
	case ErrBelowMinimumClaim:
		c.JSON(http.StatusBadRequest, generr.BelowMinimumClaim)
	case ErrNoPrincipal:
		c.JSON(http.StatusBadRequest, generr.NoPrincipal)
	case ErrStillLocked:
		c.JSON(http.StatusBadRequest, generr.StillLocked)
	case ErrInsufficientPool:
		c.JSON(http.StatusBadRequest, generr.InsufficientPool)
	case ErrCooldownActive:
		c.JSON(http.StatusBadRequest, generr.CooldownActive)
	case ErrUnauthorized:
		c.JSON(http.StatusForbidden, generr.Unauthorized)
	case ErrReentrancy:
		c.JSON(http.StatusConflict, generr.Reentrancy)
	default:
		// 引擎层未归类的错误只可能来自外部资产账本
		c.JSON(http.StatusInternalServerError, generr.TransferFailed)
	}
}

func parseAmount(c *gin.Context, s string) (decimal.Decimal, bool) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "parse amount"))
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return decimal.Decimal{}, false
	}
	return amount, true
}

func Invest(c *gin.Context) {
	req := struct {
		Address   string `json:"address" form:"address" binding:"required"`    // 投资人地址
		SponsorID int64  `json:"sponsor_id" form:"sponsor_id"`                 // 推荐人ID，0表示根用户
		Amount    string `json:"amount" form:"amount" binding:"required"`      // 18位精度整数串
	}{}
	if err := c.ShouldBind(&req); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "should bind"))
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return
	}
	amount, good := parseAmount(c, req.Amount)
	if !good {
		return
	}

	res, err := Eng.Invest(req.Address, req.SponsorID, amount)
	if err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "invest"))
		fail(c, err)
		return
	}
	log.Infof("Invested(user_id=%d, amount=%s)", res.UserID, amount.String())
	log.Infof("BonusAdded(user_id=%d, direct_bonus=%s)", res.UserID, res.DirectBonus.String())

	auditInvest(req.Address, req.SponsorID, amount, res)

	ok(c, gin.H{"user_id": res.UserID, "direct_bonus": res.DirectBonus.String()})
}

// 投资成功后的批量落库，失败只报警不影响主流程
func auditInvest(addr string, sponsorID int64, amount decimal.Decimal, res InvestResult) {
	tx, err := db.MysqlCli.Begin()
	if warn.Must("begin invest audit tx", err) != nil {
		return
	}
	rec := model.InvestRecord{
		UserID:    res.UserID,
		Address:   addr,
		SponsorID: sponsorID,
		Amount:    amount,
	}
	if warn.Must("insert invest record", dao.Invest.CreateWithTx(tx, rec)) != nil {
		_ = tx.Rollback()
		return
	}
	if warn.Must("insert bonus records", dao.Bonus.CreateWithTx(tx, res.Credits)) != nil {
		_ = tx.Rollback()
		return
	}
	if warn.Must("commit invest audit tx", tx.Commit()) != nil {
		return
	}

	touched := map[int64]bool{res.UserID: true}
	for _, cr := range res.Credits {
		touched[cr.ToUserID] = true
	}
	for id := range touched {
		u, err := Eng.UserSnapshot(id)
		if warn.Must("snapshot user", err) != nil {
			continue
		}
		warn.Must("upsert user snapshot", dao.UserAccount.Upsert(u))
	}
}

func ClaimROI(c *gin.Context) {
	req := struct {
		Address string `json:"address" form:"address" binding:"required"`
	}{}
	if err := c.ShouldBind(&req); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "should bind"))
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return
	}

	roi, err := Eng.ClaimROI(req.Address)
	if err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "claim roi"))
		fail(c, err)
		return
	}
	auditClaim(req.Address, "roi", roi)
	ok(c, gin.H{"amount": roi.String()})
}

func ClaimBonus(c *gin.Context) {
	req := struct {
		Address string `json:"address" form:"address" binding:"required"`
	}{}
	if err := c.ShouldBind(&req); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "should bind"))
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return
	}

	bonus, err := Eng.ClaimBonus(req.Address)
	if err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "claim bonus"))
		fail(c, err)
		return
	}
	if id, err := Eng.GetUserIDByAddress(req.Address); err == nil {
		log.Infof("BonusClaimed(user_id=%d, bonus=%s)", id, bonus.String())
	}
	auditClaim(req.Address, "bonus", bonus)
	ok(c, gin.H{"amount": bonus.String()})
}

func ClaimPrincipal(c *gin.Context) {
	req := struct {
		Address string `json:"address" form:"address" binding:"required"`
	}{}
	if err := c.ShouldBind(&req); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "should bind"))
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return
	}

	amt, err := Eng.ClaimInvestedAmount(req.Address)
	if err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "claim principal"))
		fail(c, err)
		return
	}
	auditClaim(req.Address, "principal", amt)
	ok(c, gin.H{"amount": amt.String()})
}

func auditClaim(addr, kind string, amount decimal.Decimal) {
	id, err := Eng.GetUserIDByAddress(addr)
	if warn.Must("lookup user id", err) != nil {
		return
	}
	warn.Must("insert claim record", dao.Claim.Create(model.ClaimRecord{
		UserID: id,
		Kind:   kind,
		Amount: amount,
	}))
	u, err := Eng.UserSnapshot(id)
	if warn.Must("snapshot user", err) != nil {
		return
	}
	warn.Must("upsert user snapshot", dao.UserAccount.Upsert(u))
}

func Deposit(c *gin.Context) {
	req := struct {
		Address string `json:"address" form:"address" binding:"required"`
		Amount  string `json:"amount" form:"amount" binding:"required"`
	}{}
	if err := c.ShouldBind(&req); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "should bind"))
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return
	}
	amount, good := parseAmount(c, req.Amount)
	if !good {
		return
	}

	if err := Eng.Deposit(req.Address, amount); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "deposit"))
		fail(c, err)
		return
	}
	log.Infof("Deposited(amount=%s)", amount.String())
	warn.Must("insert treasury record", dao.Treasury.Create(model.TreasuryRecord{
		Kind:   "deposit",
		Wallet: req.Address,
		Amount: amount,
	}))
	ok(c, nil)
}

func ReleaseProfit(c *gin.Context) {
	req := struct {
		Address string `json:"address" form:"address" binding:"required"` // 调用方，必须是运营方
		Amount  string `json:"amount" form:"amount" binding:"required"`
	}{}
	if err := c.ShouldBind(&req); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "should bind"))
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return
	}
	amount, good := parseAmount(c, req.Amount)
	if !good {
		return
	}

	if err := Eng.ReleaseProfit(req.Address, amount); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "release profit"))
		fail(c, err)
		return
	}
	log.Infof("ProfitDistributed(amount=%s)", amount.String())
	warn.Must("insert treasury record", dao.Treasury.Create(model.TreasuryRecord{
		Kind:   "release",
		Wallet: Eng.CompanyWallet(),
		Amount: amount,
	}))
	ok(c, nil)
}

func EmergencyWithdrawAll(c *gin.Context) {
	req := struct {
		Address string `json:"address" form:"address" binding:"required"`
	}{}
	if err := c.ShouldBind(&req); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "should bind"))
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return
	}

	amt, err := Eng.EmergencyWithdrawAll(req.Address)
	if err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "emergency withdraw"))
		fail(c, err)
		return
	}
	warn.Must("insert treasury record", dao.Treasury.Create(model.TreasuryRecord{
		Kind:   "emergency",
		Wallet: Eng.CompanyWallet(),
		Amount: amt,
	}))
	ok(c, gin.H{"amount": amt.String()})
}

func SetCompanyWallet(c *gin.Context) {
	req := struct {
		Address string `json:"address" form:"address" binding:"required"`
		Wallet  string `json:"wallet" form:"wallet" binding:"required"`
	}{}
	if err := c.ShouldBind(&req); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "should bind"))
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return
	}

	if err := Eng.SetCompanyWallet(req.Address, req.Wallet); err != nil {
		log.Errorf("err: %+v", errors.Wrap(err, "set company wallet"))
		fail(c, err)
		return
	}
	log.Infof("CompanyWalletUpdated(addr=%s)", req.Wallet)
	ok(c, nil)
}

func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return 0, false
	}
	return id, true
}

func GetDirectSponsorsCount(c *gin.Context) {
	id, good := parseUserID(c)
	if !good {
		return
	}
	n, err := Eng.GetDirectSponsorsCount(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"count": n})
}

func GetUserTotalHierarchy(c *gin.Context) {
	id, good := parseUserID(c)
	if !good {
		return
	}
	n, err := Eng.GetUserTotalHierarchy(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"count": n})
}

func GetAddressByUserID(c *gin.Context) {
	id, good := parseUserID(c)
	if !good {
		return
	}
	addr, err := Eng.GetAddressByUserID(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"address": addr})
}

func GetUserIDByAddress(c *gin.Context) {
	addr := c.Query("address")
	if addr == "" {
		c.JSON(http.StatusBadRequest, generr.ParseParam)
		return
	}
	id, err := Eng.GetUserIDByAddress(addr)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"user_id": id})
}

func GetAvailableBonus(c *gin.Context) {
	id, good := parseUserID(c)
	if !good {
		return
	}
	bonus, err := Eng.GetAvailableBonus(id)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, gin.H{"bonus": bonus.String()})
}

func GetCurrentHourROIPercentage(c *gin.Context) {
	ok(c, gin.H{"percentage": Eng.GetCurrentHourROIPercentage()})
}

func GetNextHourROIPercentage(c *gin.Context) {
	ok(c, gin.H{"percentage": Eng.GetNextHourROIPercentage()})
}

func GetPoolBalance(c *gin.Context) {
	ok(c, gin.H{"pool_balance": Eng.PoolBalance().String()})
}
