package asset

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"server-invest-app/internal/pkg/util"
)

// Ledger 资产账本。转账失败必须返回错误，调用方负责回滚自身状态。
type Ledger interface {
	TransferInto(from string, amount decimal.Decimal) error
	TransferOut(to string, amount decimal.Decimal) error
}

// HTTPLedger 通过资产账本服务完成转账
type HTTPLedger struct {
	baseURL string
	key     string
	client  *http.Client
}

func NewHTTPLedger(baseURL, key string) *HTTPLedger {
	return &HTTPLedger{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		key:     key,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (l *HTTPLedger) TransferInto(from string, amount decimal.Decimal) error {
	return l.post("/v1/internal/transfer/in", from, amount)
}

func (l *HTTPLedger) TransferOut(to string, amount decimal.Decimal) error {
	return l.post("/v1/internal/transfer/out", to, amount)
}

func (l *HTTPLedger) post(path, account string, amount decimal.Decimal) (err error) {
	body := fmt.Sprintf(`{"account":"%s","amount":"%s"}`, account, amount.String())

	var rsp *http.Response
	for i := 1; i <= 3; i++ {
		var nowTime = time.Now().Unix()
		var req *http.Request
		req, err = http.NewRequest("POST", l.baseURL+path, strings.NewReader(body))
		if err != nil {
			err = errors.Wrap(err, fmt.Sprintf("new request url %s", l.baseURL+path))
			return
		}
		req.Header.Set("time", fmt.Sprintf("%d", nowTime))
		req.Header.Set("sign", util.GenBodySign(body, nowTime, l.key))
		req.Header.Set("content-type", "application/json")

		rsp, err = l.client.Do(req)
		if err != nil || rsp.StatusCode != 200 {
			time.Sleep(time.Second * time.Duration(i))
			continue
		} else {
			break
		}
	}
	if err != nil {
		return errors.Wrap(err, "post asset ledger")
	}
	defer rsp.Body.Close()

	rspBody, _ := ioutil.ReadAll(rsp.Body)

	type Result struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	var res Result
	if err = json.Unmarshal(rspBody, &res); err != nil {
		return errors.Wrap(err, "json unmarshal")
	}
	if rsp.StatusCode != 200 || res.Code != 200 {
		return errors.Errorf("post [%s] code [%d] msg [%s]", path, res.Code, res.Msg)
	}
	return nil
}
