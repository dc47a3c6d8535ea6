package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"foodly/pkg/kv"

	"go.uber.org/zap"
)

// Key is where a single-user cart is stored.
const Key = "foodly_cart"

// UserKey namespaces the cart of one server-side user.
func UserKey(userID uint) string {
	return fmt.Sprintf("%s:%d", Key, userID)
}

// Load reads the cart stored under key. A missing, unreadable or malformed
// record yields an empty cart.
func Load(ctx context.Context, store kv.Store, key string, log *zap.Logger) Cart {
	if log == nil {
		log = zap.NewNop()
	}
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Warn("cart load failed, starting empty", zap.String("key", key), zap.Error(err))
		return Cart{}
	}
	if !ok {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		log.Warn("cart record malformed, starting empty", zap.String("key", key), zap.Error(err))
		return Cart{}
	}
	c.normalize()
	return c
}

// Save writes the full cart under key.
func Save(ctx context.Context, store kv.Store, key string, c Cart) error {
	b, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := store.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("cart: save: %w", err)
	}
	return nil
}

// Saver is the write-through persistence observer.
func Saver(store kv.Store, key string) Observer {
	return func(ctx context.Context, c Cart) error {
		return Save(ctx, store, key, c)
	}
}
