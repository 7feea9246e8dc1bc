package tracker

import (
	"context"
	"strings"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/validation"
)

type CustomerInput struct {
	UserID   int64
	Name     string
	Email    string
	Phone    string
	Password string
}

// CustomerPatch holds the fields to change. Nil fields are left alone.
type CustomerPatch struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}

func validateCustomer(c models.Customer) error {
	if err := validation.ValidateID("user_id", c.UserID); err != nil {
		return err
	}
	if err := validation.ValidateName("name", c.Name); err != nil {
		return err
	}
	if err := validation.ValidateEmail(c.Email); err != nil {
		return err
	}
	return validation.ValidatePhone(c.Phone)
}

// AddCustomer validates email and phone, then inserts the customer with
// created_at set to now.
func (s *Service) AddCustomer(ctx context.Context, in CustomerInput) (models.Customer, error) {
	c := models.Customer{
		UserID:    in.UserID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Password:  in.Password,
		CreatedAt: s.now().UTC(),
	}

	err := validateCustomer(c)
	if err == nil {
		err = s.store.Tx(ctx, func(r storage.Repository) error {
			return r.InsertCustomer(ctx, c)
		})
	}
	if err := record("Add customer", err, "user_id", c.UserID); err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

func (s *Service) GetCustomer(ctx context.Context, userID int64) (models.Customer, error) {
	var c models.Customer
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		var err error
		c, err = r.GetCustomer(ctx, userID)
		return err
	})
	return c, err
}

func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		var err error
		customers, err = r.ListCustomers(ctx)
		return err
	})
	return customers, err
}

// UpdateCustomer applies patch and re-validates the result. created_at never changes.
func (s *Service) UpdateCustomer(ctx context.Context, userID int64, patch CustomerPatch) (models.Customer, error) {
	var updated models.Customer
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		c, err := r.GetCustomer(ctx, userID)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			c.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Email != nil {
			c.Email = strings.TrimSpace(*patch.Email)
		}
		if patch.Phone != nil {
			c.Phone = strings.TrimSpace(*patch.Phone)
		}
		if patch.Password != nil {
			c.Password = *patch.Password
		}
		if err := validateCustomer(c); err != nil {
			return err
		}
		updated = c
		return r.UpdateCustomer(ctx, c)
	})
	if err := record("Update customer", err, "user_id", userID); err != nil {
		return models.Customer{}, err
	}
	return updated, nil
}

// DeleteCustomer removes a customer that owns no habits.
func (s *Service) DeleteCustomer(ctx context.Context, userID int64) error {
	err := s.store.Tx(ctx, func(r storage.Repository) error {
		return r.DeleteCustomer(ctx, userID)
	})
	return record("Delete customer", err, "user_id", userID)
}
