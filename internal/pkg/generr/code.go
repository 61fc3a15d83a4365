package generr

type mErr struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

var (
	ParseParam  = &mErr{400, "参数错误"}
	ServerError = &mErr{500, "服务错误"}
)

var (
	SignMiss     = &mErr{601, "s参数缺失"}
	SignNotMatch = &mErr{602, "s不匹配"}
	TimestampErr = &mErr{603, "t参数错误"}
	TimestampOut = &mErr{604, "t超时"}
	ReadDB       = &mErr{698, "读数据库错误"}
	UpdateDB     = &mErr{699, "更新数据库错误"}
)

var (
	InvalidSponsor    = &mErr{801, "推荐人无效"}
	RootAlreadyExists = &mErr{802, "根用户已存在"}
	AmountTooSmall    = &mErr{803, "金额低于最低限制"}
	NotRegistered     = &mErr{804, "用户未注册"}
	NoBonusAvailable  = &mErr{805, "无可领取奖金"}
	BelowMinimumClaim = &mErr{806, "收益未达最低领取额"}
	NoPrincipal       = &mErr{807, "无可取回本金"}
	StillLocked       = &mErr{808, "本金锁定中"}
)

var (
	InsufficientPool = &mErr{901, "资金池余额不足"}
	CooldownActive   = &mErr{902, "利润分配冷却中"}
	Unauthorized     = &mErr{903, "无操作权限"}
	Reentrancy       = &mErr{904, "重入调用被拒绝"}
	TransferFailed   = &mErr{905, "资产转账失败"}
)
