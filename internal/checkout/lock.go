package checkout

// ロック中は Add / Remove / Put / Clear が ErrCartLocked を返す。
// 検証やリスナー通知より先に判定するので、ロック中は何も起きない。読み取りは常に可能。

func (c *Checkout) Lock() {
	c.locked = true
}

func (c *Checkout) Unlock() {
	c.locked = false
}

func (c *Checkout) Locked() bool {
	return c.locked
}
