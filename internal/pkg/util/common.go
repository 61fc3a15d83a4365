package util

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// GenSignCode 对表单参数排序拼接后加盐生成签名
func GenSignCode(form url.Values, key string) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		if k == "s" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(form.Get(k))
		b.WriteString("&")
	}
	b.WriteString(key)

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// GenBodySign 对请求体加时间戳和盐生成签名
func GenBodySign(body string, nowTime int64, key string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s%d%s", body, nowTime, key)))
	return hex.EncodeToString(sum[:])
}
