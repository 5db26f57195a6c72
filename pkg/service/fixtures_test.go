package service

import (
	"context"
	"sync"
	"testing"

	"github.com/example/agrigrow/pkg/models"
	"github.com/example/agrigrow/pkg/repository/repositorytest"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []interface{}
}

func (r *recordingPublisher) Publish(event interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

type fixture struct {
	products  *repositorytest.ProductStore
	cache     *repositorytest.ProductCache
	carts     *repositorytest.CartStore
	wishlists *repositorytest.WishlistStore
	addresses *repositorytest.AddressStore
	orders    *repositorytest.OrderStore
	ledger    *repositorytest.LedgerStore
	publisher *recordingPublisher

	catalog     *CatalogService
	cart        *CartService
	wishlist    *WishlistService
	addressBook *AddressService
	order       *OrderService
	payment     *PaymentService
}

func newFixture() *fixture {
	log := zap.NewNop()
	f := &fixture{
		products:  repositorytest.NewProductStore(),
		cache:     repositorytest.NewProductCache(),
		carts:     repositorytest.NewCartStore(),
		wishlists: repositorytest.NewWishlistStore(),
		addresses: repositorytest.NewAddressStore(),
		orders:    repositorytest.NewOrderStore(),
		ledger:    repositorytest.NewLedgerStore(),
		publisher: &recordingPublisher{},
	}
	f.catalog = NewCatalogService(f.products, f.cache, log)
	f.cart = NewCartService(f.carts, f.products, log)
	f.wishlist = NewWishlistService(f.wishlists, f.products, log)
	f.addressBook = NewAddressService(f.addresses, log)
	f.order = NewOrderService(f.orders, f.products, f.addressBook, f.publisher, log)
	f.payment = NewPaymentService(f.ledger, f.publisher, log)
	return f
}

func (f *fixture) addProduct(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Quantity: stock,
		Type:     models.ProductTypeTools,
		Photo:    "/uploads/" + name + ".jpg",
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func newUserID() string {
	return uuid.NewString()
}

func requireKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	require.Error(t, err)
	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, kind.String(), svcErr.Kind.String(), svcErr.Error())
	return svcErr
}

func ptr[T any](v T) *T {
	return &v
}
