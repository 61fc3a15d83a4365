package chain

import "testing"

func TestRegisterRootGetsUserIDOne(t *testing.T) {
	eng, clock := newTestEngine(&fakeLedger{})
	now := clock.now().Unix()

	id, err := eng.registerOrGetUser("root", 0, now)
	if err != nil {
		t.Fatalf("register root: %v", err)
	}
	if id != 1 {
		t.Fatalf("root user id = %d, want 1", id)
	}
	if eng.users[1].SponsorID != 1 {
		t.Fatalf("root sponsor id = %d, want self", eng.users[1].SponsorID)
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	eng, clock := newTestEngine(&fakeLedger{})
	now := clock.now().Unix()

	first, _ := eng.registerOrGetUser("root", 0, now)
	// 已注册地址再次注册原样返回，推荐人参数被忽略
	second, err := eng.registerOrGetUser("root", 42, now)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if first != second {
		t.Fatalf("re-register returned %d, want %d", second, first)
	}
	if eng.lastUserID != 1 {
		t.Fatalf("lastUserID = %d, want 1", eng.lastUserID)
	}
}

func TestRegisterFirstUserNeedsZeroSponsor(t *testing.T) {
	eng, clock := newTestEngine(&fakeLedger{})
	now := clock.now().Unix()

	_, err := eng.registerOrGetUser("alice", 7, now)
	if err != ErrInvalidSponsor {
		t.Fatalf("err = %v, want ErrInvalidSponsor", err)
	}
}

func TestRegisterSecondRootRejected(t *testing.T) {
	eng, clock := newTestEngine(&fakeLedger{})
	now := clock.now().Unix()

	_, _ = eng.registerOrGetUser("root", 0, now)
	_, err := eng.registerOrGetUser("bob", 0, now)
	if err != ErrRootAlreadyExists {
		t.Fatalf("err = %v, want ErrRootAlreadyExists", err)
	}
}

func TestRegisterUnknownSponsorRejected(t *testing.T) {
	eng, clock := newTestEngine(&fakeLedger{})
	now := clock.now().Unix()

	_, _ = eng.registerOrGetUser("root", 0, now)
	_, err := eng.registerOrGetUser("bob", 99, now)
	if err != ErrInvalidSponsor {
		t.Fatalf("err = %v, want ErrInvalidSponsor", err)
	}
}

func TestRegisterLinksSponsorAndDownline(t *testing.T) {
	eng, clock := newTestEngine(&fakeLedger{})
	now := clock.now().Unix()

	rootID, _ := eng.registerOrGetUser("root", 0, now)
	bobID, err := eng.registerOrGetUser("bob", rootID, now)
	if err != nil {
		t.Fatalf("register bob: %v", err)
	}

	n, err := eng.GetDirectSponsorsCount(rootID)
	if err != nil {
		t.Fatalf("direct sponsors count: %v", err)
	}
	if n != 1 {
		t.Fatalf("direct sponsors count = %d, want 1", n)
	}
	root := eng.users[rootID]
	if len(root.DownlineIDs) != 1 || root.DownlineIDs[0] != bobID {
		t.Fatalf("root downline = %v, want [%d]", root.DownlineIDs, bobID)
	}
}

func TestAddressIDBijection(t *testing.T) {
	eng, clock := newTestEngine(&fakeLedger{})
	now := clock.now().Unix()

	rootID, _ := eng.registerOrGetUser("root", 0, now)
	bobID, _ := eng.registerOrGetUser("bob", rootID, now)

	addr, err := eng.GetAddressByUserID(bobID)
	if err != nil || addr != "bob" {
		t.Fatalf("address by id = %q (%v), want bob", addr, err)
	}
	id, err := eng.GetUserIDByAddress("bob")
	if err != nil || id != bobID {
		t.Fatalf("id by address = %d (%v), want %d", id, err, bobID)
	}
	if _, err = eng.GetUserIDByAddress("nobody"); err != ErrNotRegistered {
		t.Fatalf("unknown address err = %v, want ErrNotRegistered", err)
	}
	if _, err = eng.GetAddressByUserID(99); err != ErrNotRegistered {
		t.Fatalf("unknown id err = %v, want ErrNotRegistered", err)
	}
}
