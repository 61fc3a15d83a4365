package chain

import "server-invest-app/internal/model"

// checkSponsor 校验注册前置条件，不做任何改动。
// 首个注册必须以 sponsorID=0 成为根用户，之后 sponsorID 必须指向已注册账户。
func (e *Engine) checkSponsor(addr string, sponsorID int64) error {
	if _, ok := e.ids[addr]; ok {
		return nil
	}
	if sponsorID == 0 {
		if e.lastUserID != 0 {
			return ErrRootAlreadyExists
		}
		return nil
	}
	if sponsorID < 1 || sponsorID > e.lastUserID {
		return ErrInvalidSponsor
	}
	return nil
}

// registerOrGetUser 已注册地址直接返回原ID。新用户分配递增ID并挂到推荐人下线，
// 根用户的推荐人指向自己。
func (e *Engine) registerOrGetUser(addr string, sponsorID, now int64) (int64, error) {
	if id, ok := e.ids[addr]; ok {
		return id, nil
	}
	if err := e.checkSponsor(addr, sponsorID); err != nil {
		return 0, err
	}

	e.lastUserID++
	id := e.lastUserID
	u := &model.UserAccount{
		UserID:        id,
		Address:       addr,
		LastClaimTime: now,
	}
	if sponsorID == 0 {
		u.SponsorID = id
	} else {
		u.SponsorID = sponsorID
		sp := e.users[sponsorID]
		sp.DirectSponsorsCount++
		sp.DownlineIDs = append(sp.DownlineIDs, id)
	}
	e.users[id] = u
	e.ids[addr] = id
	return id, nil
}

// GetUserIDByAddress 地址查ID
func (e *Engine) GetUserIDByAddress(addr string) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	id, ok := e.ids[addr]
	if !ok {
		return 0, ErrNotRegistered
	}
	return id, nil
}

// GetAddressByUserID ID查地址
func (e *Engine) GetAddressByUserID(userID int64) (string, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, ok := e.users[userID]
	if !ok {
		return "", ErrNotRegistered
	}
	return u.Address, nil
}

// GetDirectSponsorsCount 直推人数
func (e *Engine) GetDirectSponsorsCount(userID int64) (int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	u, ok := e.users[userID]
	if !ok {
		return 0, ErrNotRegistered
	}
	return u.DirectSponsorsCount, nil
}
