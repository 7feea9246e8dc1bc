package sqldb

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/models"
)

func (r *repo) InsertCustomer(ctx context.Context, c models.Customer) error {
	dup := &apperrors.DuplicateKeyError{Entity: "customer", Key: c.UserID}

	found, err := r.exists(ctx, "customers", "user_id", c.UserID)
	if err != nil {
		return apperrors.WrapStorage("insert customer", err)
	}
	if found {
		return dup
	}

	_, err = r.exec(ctx, r.sb.Insert("customers").
		Columns(customerColumns...).
		Values(c.UserID, c.Name, c.Email, c.Phone, c.Password, formatTimestamp(c.CreatedAt)))
	return translate("insert customer", err, dup, nil)
}

func (r *repo) UpdateCustomer(ctx context.Context, c models.Customer) error {
	n, err := r.exec(ctx, r.sb.Update("customers").
		Set("name", c.Name).
		Set("email", c.Email).
		Set("phone_no", c.Phone).
		Set("password", c.Password).
		Where(sq.Eq{"user_id": c.UserID}))
	if err != nil {
		return apperrors.WrapStorage("update customer", err)
	}
	if n == 0 {
		return &apperrors.NotFoundError{Entity: "customer", Key: c.UserID}
	}
	return nil
}

func (r *repo) DeleteCustomer(ctx context.Context, userID int64) error {
	found, err := r.exists(ctx, "customers", "user_id", userID)
	if err != nil {
		return apperrors.WrapStorage("delete customer", err)
	}
	if !found {
		return &apperrors.NotFoundError{Entity: "customer", Key: userID}
	}

	habits, err := r.count(ctx, "habits", sq.Eq{"user_id": userID})
	if err != nil {
		return apperrors.WrapStorage("delete customer", err)
	}
	if habits > 0 {
		return &apperrors.ConstraintViolation{
			Entity: "customer",
			Key:    userID,
			Reason: fmt.Sprintf("customer still owns %d habit(s)", habits),
		}
	}

	_, err = r.exec(ctx, r.sb.Delete("customers").Where(sq.Eq{"user_id": userID}))
	return translate("delete customer", err, nil, nil)
}

func (r *repo) GetCustomer(ctx context.Context, userID int64) (models.Customer, error) {
	var row customerRow
	err := r.get(ctx, &row, r.sb.Select(customerColumns...).From("customers").Where(sq.Eq{"user_id": userID}))
	if err != nil {
		return models.Customer{}, notFound("get customer", "customer", userID, err)
	}
	return row.model()
}

func (r *repo) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var rows []customerRow
	if err := r.selectAll(ctx, &rows, r.sb.Select(customerColumns...).From("customers").OrderBy("user_id")); err != nil {
		return nil, apperrors.WrapStorage("list customers", err)
	}

	customers := make([]models.Customer, 0, len(rows))
	for _, row := range rows {
		c, err := row.model()
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, nil
}
