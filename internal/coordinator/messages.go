package coordinator

import "github.com/Filichkin/OnlineShop-sub001/internal/api"

// Operation labels used for logging and message selection.
const (
	opAdd    = "cart_add"
	opUpdate = "cart_update_quantity"
	opRemove = "cart_remove"
	opClear  = "cart_clear"
	opToggle = "favorite_toggle"
)

// User-facing failure texts, matching the storefront's wording.
const (
	msgAddFailed      = "Не удалось добавить товар в корзину"
	msgUpdateFailed   = "Не удалось обновить количество товара"
	msgRemoveFailed   = "Не удалось удалить товар из корзины"
	msgClearFailed    = "Не удалось очистить корзину"
	msgFavoriteFailed = "Не удалось обновить избранное"
	msgRateLimited    = "Слишком много запросов, попробуйте позже"
)

// failureMessage picks the notice text. Classification changes only the
// wording; the rollback already happened either way.
func failureMessage(op string, err error) string {
	if api.KindOf(err) == api.KindRateLimited {
		return msgRateLimited
	}
	switch op {
	case opAdd:
		return msgAddFailed
	case opUpdate:
		return msgUpdateFailed
	case opRemove:
		return msgRemoveFailed
	case opClear:
		return msgClearFailed
	case opToggle:
		return msgFavoriteFailed
	}
	return msgUpdateFailed
}
