package service

import (
	"context"
	"errors"
	"sort"

	"github.com/rl1809/grocery-backend/internal/port"
)

var ErrMissingProduct = errors.New("product name is required")

type WishlistService struct {
	wishes port.WishlistRepository
}

func NewWishlistService(wishes port.WishlistRepository) *WishlistService {
	return &WishlistService{wishes: wishes}
}

func (s *WishlistService) Add(ctx context.Context, userEmail, productName string) error {
	if userEmail == "" {
		return ErrMissingEmail
	}
	if productName == "" {
		return ErrMissingProduct
	}
	return s.wishes.AddWishlistItem(ctx, userEmail, productName)
}

func (s *WishlistService) Remove(ctx context.Context, userEmail, productName string) error {
	if userEmail == "" {
		return ErrMissingEmail
	}
	if productName == "" {
		return ErrMissingProduct
	}
	return s.wishes.RemoveWishlistItem(ctx, userEmail, productName)
}

// List returns the wishlist sorted by product name so repeated reads with
// no intervening writes are identical.
func (s *WishlistService) List(ctx context.Context, userEmail string) ([]string, error) {
	if userEmail == "" {
		return nil, ErrMissingEmail
	}
	items, err := s.wishes.ListWishlist(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	sort.Strings(items)
	return items, nil
}
