package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quickeats/fulfillment-service/internal/apperr"
	"github.com/quickeats/fulfillment-service/internal/auth"
	"github.com/quickeats/fulfillment-service/internal/cart"
	"github.com/quickeats/fulfillment-service/internal/cart/dto"
	"github.com/quickeats/fulfillment-service/internal/menu"
	"github.com/quickeats/fulfillment-service/internal/model"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type cartUseCase struct {
	repo        cart.Repository
	menuRepo    menu.Repository
	deliveryFee decimal.Decimal
	logger      *zap.Logger
}

func NewCartUseCase(repo cart.Repository, menuRepo menu.Repository, deliveryFee decimal.Decimal, log *zap.Logger) cart.UseCase {
	return &cartUseCase{repo: repo, menuRepo: menuRepo, deliveryFee: deliveryFee, logger: log}
}

// AddItem runs advisory stock checks only; the authoritative check is
// the reservation at checkout.
func (uc *cartUseCase) AddItem(ctx context.Context, actor auth.Actor, input *dto.AddItemInput) (*model.CartLine, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, apperr.Authorization("forbidden", "only customers have carts")
	}
	if input.Quantity < 1 {
		return nil, apperr.Validation("invalid_quantity", "quantity must be at least 1")
	}

	item, err := uc.menuRepo.GetItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, apperr.Conflict("item_unavailable", "%s is currently unavailable", item.Name)
	}

	c, err := uc.repo.GetOrCreate(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.repo.ListLines(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) > 0 && lines[0].RestaurantID != item.RestaurantID {
		return nil, apperr.Conflict("multi_restaurant_cart",
			"cart already contains items from another restaurant")
	}

	for i := range lines {
		if lines[i].ItemID != input.ItemID {
			continue
		}
		// Same item again: check the combined quantity and report how
		// many more units would still fit.
		combined := lines[i].Quantity + input.Quantity
		if item.StockQuantity < combined {
			remaining := item.StockQuantity - lines[i].Quantity
			if remaining <= 0 {
				return nil, apperr.Conflict("insufficient_stock_combined",
					"no more units of %s available in stock", item.Name)
			}
			return nil, apperr.Conflict("insufficient_stock_combined",
				"only %d more units of %s can be added", remaining, item.Name)
		}
		if err := uc.repo.UpdateLineQuantity(ctx, lines[i].ID, combined); err != nil {
			return nil, err
		}
		updated := lines[i].CartLine
		updated.Quantity = combined
		return &updated, nil
	}

	if item.StockQuantity < input.Quantity {
		return nil, apperr.Conflict("insufficient_stock",
			"only %d units of %s available in stock", item.StockQuantity, item.Name)
	}

	// Variant/addon tags are frozen here; later menu edits do not touch
	// pending carts.
	line := &model.CartLine{
		ID:       uuid.New().String(),
		CartID:   c.ID,
		ItemID:   input.ItemID,
		Quantity: input.Quantity,
		Variants: model.Tags(input.Variants),
		Addons:   model.Tags(input.Addons),
		AddedAt:  time.Now(),
	}
	if err := uc.repo.InsertLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (uc *cartUseCase) UpdateLine(ctx context.Context, actor auth.Actor, lineID string, quantity int) error {
	line, err := uc.ownedLine(ctx, actor, lineID)
	if err != nil {
		return err
	}

	if quantity < 1 {
		_, err := uc.repo.DeleteLine(ctx, line.CartID, lineID)
		return err
	}

	item, err := uc.menuRepo.GetItem(ctx, line.ItemID)
	if err != nil {
		return err
	}
	if !item.IsAvailable {
		return apperr.Conflict("item_unavailable", "%s is currently unavailable", item.Name)
	}
	if item.StockQuantity < quantity {
		return apperr.Conflict("insufficient_stock",
			"only %d units of %s available in stock", item.StockQuantity, item.Name)
	}

	return uc.repo.UpdateLineQuantity(ctx, lineID, quantity)
}

func (uc *cartUseCase) RemoveLine(ctx context.Context, actor auth.Actor, lineID string) error {
	line, err := uc.ownedLine(ctx, actor, lineID)
	if err != nil {
		return err
	}
	ok, err := uc.repo.DeleteLine(ctx, line.CartID, lineID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("line_not_found", "cart line not found")
	}
	return nil
}

func (uc *cartUseCase) Clear(ctx context.Context, actor auth.Actor) error {
	c, err := uc.repo.GetByCustomer(ctx, actor.ID)
	if err != nil || c == nil {
		return err
	}
	return uc.repo.ClearByCart(ctx, c.ID)
}

func (uc *cartUseCase) Get(ctx context.Context, actor auth.Actor) (*dto.CartView, error) {
	view := &dto.CartView{
		Lines:       []dto.LineDetail{},
		Subtotal:    decimal.Zero,
		DeliveryFee: uc.deliveryFee,
		Total:       uc.deliveryFee,
	}

	c, err := uc.repo.GetByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return view, nil
	}
	view.Cart = c

	lines, err := uc.repo.ListLines(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	view.Lines = lines

	subtotal := decimal.Zero
	for i := range lines {
		subtotal = subtotal.Add(lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Quantity))))
	}
	view.Subtotal = subtotal
	view.Total = subtotal.Add(uc.deliveryFee)
	return view, nil
}

func (uc *cartUseCase) ownedLine(ctx context.Context, actor auth.Actor, lineID string) (*dto.LineDetail, error) {
	if actor.Role != auth.RoleCustomer {
		return nil, apperr.Authorization("forbidden", "only customers have carts")
	}
	c, err := uc.repo.GetByCustomer(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("line_not_found", "cart line not found")
	}
	line, err := uc.repo.GetLine(ctx, c.ID, lineID)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, apperr.NotFound("line_not_found", "cart line not found")
	}
	return line, nil
}
