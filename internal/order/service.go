package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chic-commerce/storefront-api/internal/apperror"
	"go.uber.org/zap"
)

// Service provides business logic for orders.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(r Repository, logger *zap.Logger) *Service {
	return &Service{repo: r, logger: logger, now: time.Now}
}

// Tracking is the storefront view of an order.
type Tracking struct {
	Order    Order    `json:"order"`
	Progress Progress `json:"progress"`
}

// Place persists a new order together with redeem.
func (s *Service) Place(ctx context.Context, o Order, redeem RedeemFunc) (Order, error) {
	created, err := s.repo.Create(ctx, o, redeem)
	if err != nil {
		return Order{}, err
	}
	s.logger.Info("order placed",
		zap.String("orderNumber", created.OrderNumber),
		zap.Int("lines", len(created.Items)),
		zap.String("total", created.Total.String()))
	return created, nil
}

func (s *Service) Track(ctx context.Context, number string) (Tracking, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	o, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return Tracking{}, notFound(err, number)
	}
	return Tracking{Order: o, Progress: Track(o.Status)}, nil
}

// Lookup lists a shopper's orders by the phone or email given at checkout.
func (s *Service) Lookup(ctx context.Context, phone, email string) ([]Order, error) {
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)
	if phone == "" && email == "" {
		return nil, apperror.NewValidation("يرجى إدخال رقم الجوال أو البريد الإلكتروني", map[string]string{
			"phone": "رقم الجوال أو البريد الإلكتروني مطلوب",
		})
	}
	return s.repo.FindByContact(ctx, phone, email)
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	return o, notFound(err, id)
}

// List filters by status when one is given.
func (s *Service) List(ctx context.Context, status string) ([]Order, error) {
	var filter Status
	if strings.TrimSpace(status) != "" {
		st, ok := ParseStatus(status)
		if !ok {
			return nil, apperror.NewValidation("حالة غير معروفة", map[string]string{"status": "حالة الطلب غير معروفة"})
		}
		filter = st
	}
	return s.repo.List(ctx, filter)
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Order, error) {
	to, ok := ParseStatus(status)
	if !ok {
		return Order{}, apperror.NewValidation("حالة غير معروفة", map[string]string{"status": "حالة الطلب غير معروفة"})
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Order{}, notFound(err, id)
	}
	if err := Transition(current.Status, to); err != nil {
		return Order{}, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, current.Status, to, s.now().UTC())
	if errors.Is(err, ErrStatusChanged) {
		return Order{}, &apperror.Conflict{Message: "تم تعديل حالة الطلب من قبل مستخدم آخر، يرجى التحديث"}
	}
	if err != nil {
		return Order{}, notFound(err, id)
	}
	s.logger.Info("order status changed",
		zap.String("orderNumber", updated.OrderNumber),
		zap.String("from", string(current.Status)),
		zap.String("to", string(to)))
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, id)
	}
	s.logger.Info("order deleted", zap.String("id", id))
	return nil
}

func notFound(err error, id string) error {
	if errors.Is(err, ErrNotFound) {
		return &apperror.NotFound{Resource: "order", ID: id}
	}
	return err
}
