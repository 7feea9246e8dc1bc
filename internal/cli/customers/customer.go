package customers

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/cli"
	"github.com/julianstephens/habitlog/internal/output"
	"github.com/julianstephens/habitlog/internal/tracker"
)

type CustomerCmd struct {
	List   CustomerListCmd   `cmd:"" help:"List customers." default:"1"`
	Add    CustomerAddCmd    `cmd:"" help:"Add a customer."`
	Update CustomerUpdateCmd `cmd:"" help:"Update a customer's details."`
	Delete CustomerDeleteCmd `cmd:"" help:"Delete a customer without habits."`
}

type CustomerListCmd struct{}

func (c *CustomerListCmd) Run(ctx *cli.Context) error {
	customers, err := ctx.Service.ListCustomers(ctx.Ctx)
	if err != nil {
		return err
	}
	ctx.Out.Table(output.Customers(customers), "No customers found.")
	return nil
}

type CustomerAddCmd struct {
	ID       int64  `arg:"" help:"Customer ID."`
	Name     string `short:"n" help:"Full name." required:""`
	Email    string `short:"e" help:"Email address." required:""`
	Phone    string `short:"p" help:"10-digit phone number." required:""`
	Password string `help:"Account password." env:"HABITLOG_CUSTOMER_PASSWORD"`
}

func (c *CustomerAddCmd) Run(ctx *cli.Context) error {
	customer, err := ctx.Service.AddCustomer(ctx.Ctx, tracker.CustomerInput{
		UserID:   c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Password: c.Password,
	})
	if err != nil {
		return err
	}
	ctx.Out.Success("Customer %d (%s) added.", customer.UserID, customer.Name)
	return nil
}

type CustomerUpdateCmd struct {
	ID       int64   `arg:"" help:"Customer ID."`
	Name     *string `short:"n" help:"New name."`
	Email    *string `short:"e" help:"New email address."`
	Phone    *string `short:"p" help:"New 10-digit phone number."`
	Password *string `help:"New password."`
}

func (c *CustomerUpdateCmd) Validate() error {
	if c.Name == nil && c.Email == nil && c.Phone == nil && c.Password == nil {
		return fmt.Errorf("nothing to update: pass at least one of --name, --email, --phone or --password")
	}
	return nil
}

func (c *CustomerUpdateCmd) Run(ctx *cli.Context) error {
	customer, err := ctx.Service.UpdateCustomer(ctx.Ctx, c.ID, tracker.CustomerPatch{
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Password: c.Password,
	})
	if err != nil {
		return err
	}
	ctx.Out.Success("Customer %d updated.", customer.UserID)
	return nil
}

type CustomerDeleteCmd struct {
	ID  int64 `arg:"" help:"Customer ID."`
	Yes bool  `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CustomerDeleteCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Delete customer %d?", c.ID))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Out.Muted("Delete cancelled.")
			return nil
		}
	}
	if err := ctx.Service.DeleteCustomer(ctx.Ctx, c.ID); err != nil {
		return err
	}
	ctx.Out.Success("Customer %d deleted.", c.ID)
	return nil
}
