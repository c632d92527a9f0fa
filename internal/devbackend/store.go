package devbackend

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/foodcourt-admin/internal/models"
	"github.com/Skotchmaster/foodcourt-admin/internal/transport"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Store is the gorm-backed persistence of the dev backend.
type Store struct {
	DB *gorm.DB
}

// EnsureAdmin creates the seed admin account when it does not exist yet.
func (s *Store) EnsureAdmin(ctx context.Context, email, password string) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	admin := Admin{ID: uuid.NewString(), Email: email, PasswordHash: string(hash)}
	return s.DB.WithContext(ctx).Create(&admin).Error
}

func (s *Store) AdminByEmail(ctx context.Context, email string) (*Admin, error) {
	var admin Admin
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	err := s.DB.WithContext(ctx).Order("sort_order asc, name asc").Find(&out).Error
	return out, err
}

func (s *Store) GetCategory(ctx context.Context, id string) (*Category, error) {
	var out Category
	if err := s.DB.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) CreateCategory(ctx context.Context, payload transport.CategoryPayload) (*Category, error) {
	cat := Category{
		ID:        uuid.NewString(),
		Name:      payload.Name,
		Slug:      payload.Slug,
		Image:     payload.Image,
		SortOrder: payload.SortOrder,
	}
	if err := s.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *Store) PatchCategory(ctx context.Context, id string, patch transport.CategoryPatch) (*Category, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Slug != nil {
		updates["slug"] = *patch.Slug
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.SortOrder != nil {
		updates["sort_order"] = *patch.SortOrder
	}

	cat, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(cat).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetCategory(ctx, id)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) ListFoodItems(ctx context.Context, categoryID string, popular *bool) ([]FoodItem, error) {
	q := s.DB.WithContext(ctx).Preload("Category").Order("sort_order asc, name asc")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	if popular != nil {
		q = q.Where("is_popular = ?", *popular)
	}
	var out []FoodItem
	err := q.Find(&out).Error
	return out, err
}

func (s *Store) GetFoodItem(ctx context.Context, id string) (*FoodItem, error) {
	var out FoodItem
	if err := s.DB.WithContext(ctx).Preload("Category").First(&out, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) CreateFoodItem(ctx context.Context, payload transport.FoodItemPayload) (*FoodItem, error) {
	// the referenced category must exist; this is the backend-side half of
	// the invariant the client checks before submitting
	if _, err := s.GetCategory(ctx, payload.CategoryID); err != nil {
		return nil, err
	}

	item := FoodItem{
		ID:          uuid.NewString(),
		Name:        payload.Name,
		Title:       payload.Title,
		Description: payload.Description,
		Price:       payload.Price,
		Image:       payload.Image,
		IsPopular:   payload.IsPopular,
		Portions:    portionsFromPayload(payload.Portions),
		SortOrder:   payload.SortOrder,
		CategoryID:  payload.CategoryID,
	}
	if err := s.DB.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return s.GetFoodItem(ctx, item.ID)
}

func (s *Store) PatchFoodItem(ctx context.Context, id string, patch transport.FoodItemPatch) (*FoodItem, error) {
	updates := map[string]any{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.IsPopular != nil {
		updates["is_popular"] = *patch.IsPopular
	}
	if patch.Portions != nil {
		updates["portions"] = portionsFromPayload(patch.Portions)
	}
	if patch.SortOrder != nil {
		updates["sort_order"] = *patch.SortOrder
	}
	if patch.CategoryID != nil {
		if _, err := s.GetCategory(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *patch.CategoryID
	}

	item, err := s.GetFoodItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetFoodItem(ctx, id)
}

func (s *Store) DeleteFoodItem(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&FoodItem{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *Store) ListOrders(ctx context.Context, status string) ([]Order, error) {
	q := s.DB.WithContext(ctx).Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []Order
	err := q.Find(&out).Error
	return out, err
}

func (s *Store) GetOrder(ctx context.Context, id string) (*Order, error) {
	var out Order
	if err := s.DB.WithContext(ctx).First(&out, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*Order, error) {
	var total float64
	for _, item := range req.Items {
		total += float64(item.Quantity) * item.Price
	}

	order := Order{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		Comment: req.Comment,
		Status:  string(models.OrderStatusNew),
		Items:   OrderItemList(req.Items),
		Total:   total,
	}
	if err := s.DB.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Store) UpdateOrderStatus(ctx context.Context, id, status string) (*Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

func (s *Store) DeleteOrder(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&Order{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func portionsFromPayload(in []transport.PortionPayload) PortionList {
	if in == nil {
		return nil
	}
	out := make(PortionList, len(in))
	for i, p := range in {
		out[i] = models.Portion{Label: p.Label, Price: p.Price}
	}
	return out
}
