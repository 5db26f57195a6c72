package features

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository/repositorytest"
	"github.com/example/agrigrow/pkg/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type shopTestContext struct {
	products  *repositorytest.ProductStore
	carts     *repositorytest.CartStore
	cart      *service.CartService
	wishlist  *service.WishlistService
	orders    *service.OrderService
	byName    map[string]*models.Product
	userID    string
	err       error
	removed   bool
	action    string
	wishView  *models.WishlistView
	order     *models.Order
	shippedAt *time.Time
}

func (c *shopTestContext) reset() {
	log := zap.NewNop()
	c.products = repositorytest.NewProductStore()
	c.carts = repositorytest.NewCartStore()
	c.cart = service.NewCartService(c.carts, c.products, log)
	c.wishlist = service.NewWishlistService(repositorytest.NewWishlistStore(), c.products, log)
	addresses := service.NewAddressService(repositorytest.NewAddressStore(), log)
	c.orders = service.NewOrderService(repositorytest.NewOrderStore(), c.products, addresses, nil, log)
	c.byName = make(map[string]*models.Product)
	c.userID = uuid.NewString()
	c.err, c.removed, c.action, c.wishView, c.order, c.shippedAt = nil, false, "", nil, nil, nil
}

func (c *shopTestContext) product(name string) (*models.Product, error) {
	p, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown product %q", name)
	}
	return p, nil
}

func (c *shopTestContext) aProductPricedWithStock(name string, price, stock int) error {
	p := &models.Product{Name: name, Price: decimal.NewFromInt(int64(price)), Quantity: stock, Type: models.ProductTypeSoil}
	if err := c.products.Create(context.Background(), p); err != nil {
		return err
	}
	c.byName[name] = p
	return nil
}

func (c *shopTestContext) iAddOfToMyCart(quantity int, name string) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	_, c.err = c.cart.AddItem(context.Background(), c.userID, p.ID.Hex(), quantity)
	return nil
}

func (c *shopTestContext) iSetTheQuantityOfTo(name string, quantity int) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	_, c.err = c.cart.SetQuantity(context.Background(), c.userID, p.ID.Hex(), quantity)
	return nil
}

func (c *shopTestContext) iRemoveFromMyCart(name string) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	_, c.removed, c.err = c.cart.RemoveItem(context.Background(), c.userID, p.ID.Hex())
	return c.err
}

func (c *shopTestContext) serviceError() (*service.Error, error) {
	var svcErr *service.Error
	if !errors.As(c.err, &svcErr) {
		return nil, fmt.Errorf("expected a service error, got %v", c.err)
	}
	return svcErr, nil
}

func (c *shopTestContext) theRequestFailsWith(kind string) error {
	svcErr, err := c.serviceError()
	if err != nil {
		return err
	}
	if svcErr.Kind.String() != kind {
		return fmt.Errorf("expected %s, got %s (%s)", kind, svcErr.Kind, svcErr.Message)
	}
	return nil
}

func (c *shopTestContext) theMaximumQuantityIs(max int) error {
	svcErr, err := c.serviceError()
	if err != nil {
		return err
	}
	if svcErr.MaxQuantity != max {
		return fmt.Errorf("expected max quantity %d, got %d", max, svcErr.MaxQuantity)
	}
	return nil
}

func (c *shopTestContext) myCartHoldsOf(quantity int, name string) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	view, err := c.cart.Fetch(context.Background(), c.userID)
	if err != nil {
		return err
	}
	if got := view.Quantity(p.ID); got != quantity {
		return fmt.Errorf("expected %d of %s, got %d", quantity, name, got)
	}
	return nil
}

func (c *shopTestContext) myCartIsEmptyAndNotStored() error {
	view, err := c.cart.Fetch(context.Background(), c.userID)
	if err != nil {
		return err
	}
	if len(view.Items) != 0 {
		return fmt.Errorf("expected empty cart, got %d lines", len(view.Items))
	}
	if n := c.carts.Len(); n != 0 {
		return fmt.Errorf("expected no stored carts, got %d", n)
	}
	return nil
}

func (c *shopTestContext) theRemovalReports(message string) error {
	got := "Item not found in cart"
	if c.removed {
		got = "Removed from cart"
	}
	if got != message {
		return fmt.Errorf("expected %q, got %q", message, got)
	}
	return nil
}

func (c *shopTestContext) iToggleInMyWishlist(name string) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	c.action, c.wishView, c.err = c.wishlist.Toggle(context.Background(), c.userID, p.ID.Hex())
	return c.err
}

func (c *shopTestContext) theWishlistActionIs(action string) error {
	if c.action != action {
		return fmt.Errorf("expected action %q, got %q", action, c.action)
	}
	return nil
}

func (c *shopTestContext) myWishlistContains(negation, name string) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	want := negation == ""
	if got := c.wishView.Contains(p.ID); got != want {
		return fmt.Errorf("expected contains=%v for %s", want, name)
	}
	return nil
}

func (c *shopTestContext) iPlaceAnOrderForOf(quantity int, name string) error {
	p, err := c.product(name)
	if err != nil {
		return err
	}
	total := p.Price.Mul(decimal.NewFromInt(int64(quantity)))
	c.order, c.err = c.orders.Place(context.Background(), c.userID, service.PlaceOrderInput{
		Items: []service.OrderItemInput{{ProductID: p.ID.Hex(), Name: p.Name, Price: p.Price, Quantity: quantity}},
		DeliveryDetails: &models.DeliveryDetails{
			Name: "Asha", Phone: "9876543210", Address: "12 Canal Road", City: "Nashik", Pincode: "422001",
		},
		TotalAmount: &total,
		Payment:     &service.PaymentInput{TxnID: "TXN-1", UtrID: "UTR-1"},
	})
	return c.err
}

func (c *shopTestContext) theOrderStatusIs(status string) error {
	if string(c.order.Payment.Status) != status {
		return fmt.Errorf("expected status %q, got %q", status, c.order.Payment.Status)
	}
	return nil
}

func (c *shopTestContext) theOrderMovesTo(status string) error {
	updated, err := c.orders.Transition(context.Background(), c.order.ID.Hex(), status)
	c.err = err
	if err == nil {
		c.order = updated
	}
	return nil
}

func (c *shopTestContext) shippedAtIsSet() error {
	if c.err != nil {
		return c.err
	}
	if c.order.ShippedAt == nil {
		return errors.New("shippedAt not set")
	}
	t := *c.order.ShippedAt
	c.shippedAt = &t
	return nil
}

func (c *shopTestContext) shippedAtIsUnchanged() error {
	if c.err != nil {
		return c.err
	}
	if c.order.ShippedAt == nil || !c.order.ShippedAt.Equal(*c.shippedAt) {
		return fmt.Errorf("shippedAt changed from %v to %v", c.shippedAt, c.order.ShippedAt)
	}
	return nil
}

func (c *shopTestContext) cancelledAtIsSet() error {
	if c.err != nil {
		return c.err
	}
	if c.order.CancelledAt == nil {
		return errors.New("cancelledAt not set")
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &shopTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^a product "([^"]*)" priced (\d+) with stock (\d+)$`, tc.aProductPricedWithStock)
	ctx.Step(`^I add (\d+) of "([^"]*)" to my cart$`, tc.iAddOfToMyCart)
	ctx.Step(`^I set the quantity of "([^"]*)" to (\d+)$`, tc.iSetTheQuantityOfTo)
	ctx.Step(`^I remove "([^"]*)" from my cart$`, tc.iRemoveFromMyCart)
	ctx.Step(`^the request fails with "([^"]*)"$`, tc.theRequestFailsWith)
	ctx.Step(`^the maximum quantity is (\d+)$`, tc.theMaximumQuantityIs)
	ctx.Step(`^my cart holds (\d+) of "([^"]*)"$`, tc.myCartHoldsOf)
	ctx.Step(`^my cart is empty and not stored$`, tc.myCartIsEmptyAndNotStored)
	ctx.Step(`^the removal reports "([^"]*)"$`, tc.theRemovalReports)
	ctx.Step(`^I toggle "([^"]*)" in my wishlist$`, tc.iToggleInMyWishlist)
	ctx.Step(`^the wishlist action is "([^"]*)"$`, tc.theWishlistActionIs)
	ctx.Step(`^my wishlist (does not )?contains? "([^"]*)"$`, tc.myWishlistContains)
	ctx.Step(`^I place an order for (\d+) of "([^"]*)"$`, tc.iPlaceAnOrderForOf)
	ctx.Step(`^the order status is "([^"]*)"$`, tc.theOrderStatusIs)
	ctx.Step(`^the order moves to "([^"]*)"$`, tc.theOrderMovesTo)
	ctx.Step(`^shippedAt is set$`, tc.shippedAtIsSet)
	ctx.Step(`^shippedAt is unchanged$`, tc.shippedAtIsUnchanged)
	ctx.Step(`^cancelledAt is set$`, tc.cancelledAtIsSet)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart_order.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
