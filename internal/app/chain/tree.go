package chain

// ancestorsUpTo 自下而上枚举推荐链，从 userID 的推荐人开始，最多 maxLevels 层。
// 根用户的推荐人是自己，走到根即终止，保证不会绕环。
// 返回的迭代器可重复调用，每次调用产生下一个祖先。
func (e *Engine) ancestorsUpTo(userID int64, maxLevels int) func() (int64, bool) {
	cur := userID
	level := 0
	done := false
	return func() (int64, bool) {
		if done || level >= maxLevels {
			return 0, false
		}
		u, ok := e.users[cur]
		if !ok || u.SponsorID == 0 {
			done = true
			return 0, false
		}
		if u.SponsorID == cur { // 已到根
			done = true
			return 0, false
		}
		cur = u.SponsorID
		level++
		return cur, true
	}
}

// descendantCount 统计 userID 整个下线子树的账户数。
// 推荐链可能被恶意构造得极深，这里用显式栈迭代，避免递归爆栈。
func (e *Engine) descendantCount(userID int64) int64 {
	u, ok := e.users[userID]
	if !ok {
		return 0
	}
	stack := append([]int64(nil), u.DownlineIDs...)
	var count int64
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, e.users[id].DownlineIDs...)
	}
	return count
}

// GetUserTotalHierarchy 下线总人数
func (e *Engine) GetUserTotalHierarchy(userID int64) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if _, ok := e.users[userID]; !ok {
		return 0, ErrNotRegistered
	}
	return e.descendantCount(userID), nil
}
