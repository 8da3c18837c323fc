package cart

import "pos/internal/domain/model"

// カートの1行
type Line struct {
	Product  model.Product
	Quantity int
}

// Snapshotはカートの読み取り専用コピー。リスナーや合計計算に渡す。
type Snapshot struct {
	lines  []Line
	counts map[model.Product]int
}

// 追加順の行。返すスライスはコピーなので変更してもSnapshotには影響しない。
func (s Snapshot) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s Snapshot) Len() int {
	return len(s.lines)
}

func (s Snapshot) Empty() bool {
	return len(s.lines) == 0
}

func (s Snapshot) InCart(product model.Product) bool {
	_, ok := s.counts[product]
	return ok
}

func (s Snapshot) Count(product model.Product) int {
	return s.counts[product]
}
