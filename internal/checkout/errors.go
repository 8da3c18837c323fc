package checkout

import "errors"

var (
	// 追加・削除の数量が0以下
	ErrZeroOrNegativeQuantity = errors.New("product quantity in cart cannot be zero or negative")

	// 削除しようとした商品がカートに無い
	ErrProductNotInCart = errors.New("product not found in cart")

	// 保存数量より多く削除しようとした
	ErrInsufficientQuantity = errors.New("insufficient quantity in cart")

	// 追加すると数量がintに収まらない
	ErrQuantityOverflow = errors.New("product quantity in cart is too large")

	// ロック中の変更
	ErrCartLocked = errors.New("cannot modify cart content because it is locked")
)
