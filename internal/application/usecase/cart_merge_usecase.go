// internal/application/usecase/cart_merge_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	cartdom "github.com/sudipto39/Shop-Xpress/internal/domain/cart"
)

var ErrMergeInvalidArgument = errors.New("cart_merge: invalid argument")

// CartMergeUsecase migrates a guest cart into the user's server cart,
// exactly once per login transition.
type CartMergeUsecase struct {
	guestRepo cartdom.Repository
	serverUC  *CartUsecase
}

func NewCartMergeUsecase(guestRepo cartdom.Repository, serverUC *CartUsecase) *CartMergeUsecase {
	return &CartMergeUsecase{guestRepo: guestRepo, serverUC: serverUC}
}

// MergeResult reports the outcome of one merge.
type MergeResult struct {
	Cart    *cartdom.Cart `json:"cart"`
	Merged  int           `json:"merged"`
	Skipped int           `json:"skipped"`
	// Warning is a single aggregate message when any item failed; per-item
	// failures are not reported individually.
	Warning string `json:"warning,omitempty"`
}

// Merge reads the guest cart for guestID (client-submitted items win when
// provided), adds each well-formed entry to the user's server cart
// sequentially, then clears the guest store unconditionally — partial
// failure tolerates loss rather than retrying — and reloads the
// authoritative server cart.
//
// Sequential on purpose: preserves original item order and isolates
// per-item errors without duplicate-key races on the server cart.
func (uc *CartMergeUsecase) Merge(ctx context.Context, userID, guestID string, items []cartdom.Item) (*MergeResult, error) {
	uid := strings.TrimSpace(userID)
	gid := strings.TrimSpace(guestID)
	if uid == "" {
		return nil, ErrMergeInvalidArgument
	}

	if len(items) == 0 && gid != "" {
		g, err := uc.guestRepo.GetByOwnerID(ctx, gid)
		if err != nil {
			return nil, err
		}
		if g != nil {
			items = g.Items
		}
	}

	res := &MergeResult{}

	if len(items) == 0 {
		// nothing to merge; just reload the server cart
		c, err := uc.serverUC.Get(ctx, uid)
		if err != nil {
			return nil, err
		}
		res.Cart = c
		return res, nil
	}

	failed := 0
	for _, it := range items {
		if !it.WellFormed() {
			res.Skipped++
			continue
		}
		if _, err := uc.serverUC.AddItem(ctx, uid, it.ProductID, it.Size, it.Quantity); err != nil {
			failed++
			log.Printf("[cart_merge] WARN: add failed userId=%s productId=%s size=%v err=%v", uid, it.ProductID, it.Size, err)
			continue
		}
		res.Merged++
	}

	// guest store is cleared even on partial failure
	if gid != "" {
		if err := uc.guestRepo.DeleteByOwnerID(ctx, gid); err != nil {
			log.Printf("[cart_merge] WARN: guest cart clear failed guestId=%s err=%v", gid, err)
		}
	}

	if failed > 0 {
		res.Warning = fmt.Sprintf("%d item(s) could not be merged from guest cart", failed)
	}

	c, err := uc.serverUC.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	res.Cart = c
	return res, nil
}
