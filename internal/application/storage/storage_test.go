package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pakurmart-api/internal/application/storage"
	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
	"github.com/jhoicas/pakurmart-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func newStorage(t *testing.T) (*storage.Storage, *memory.Store) {
	t.Helper()
	mem := memory.NewStore()
	s := storage.New(mem, nil, storage.Options{
		FanOut: 2,
		Now:    func() time.Time { return fixedNow },
	})
	return s, mem
}

func seedOrder(t *testing.T, s *storage.Storage, number, userID, customerID string) *entity.Order {
	t.Helper()
	o, err := s.CreateOrder(context.Background(), &entity.Order{
		UserID:      userID,
		CustomerID:  customerID,
		OrderNumber: number,
		Items: []entity.OrderItem{
			{ProductID: "p1", Name: "Leche", Price: decimal.RequireFromString("4.5"), Quantity: 2},
		},
		Total: decimal.RequireFromString("9"),
	})
	require.NoError(t, err)
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestGetUser_InexistenteDevuelveNil(t *testing.T) {
	s, _ := newStorage(t)
	u, err := s.GetUser(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestCreateUser_InsertaYRelee(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)

	created, err := s.CreateUser(ctx, &entity.User{Email: " ana@example.com ", Name: "Ana"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "ana@example.com", created.Email)
	assert.True(t, fixedNow.Equal(created.CreatedAt))

	got, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	byEmail, err := s.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	_, err := s.CreateUser(ctx, &entity.User{Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, &entity.User{Email: "ana@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUpdateUser_MezclaParcial(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	u, err := s.CreateUser(ctx, &entity.User{Email: "ana@example.com", Name: "Ana", Phone: "300"})
	require.NoError(t, err)

	name := "Ana María"
	updated, err := s.UpdateUser(ctx, u.ID, entity.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "300", updated.Phone, "los campos no enviados se conservan")
}

func TestUpdateUser_InexistenteDevuelveErrNotFound(t *testing.T) {
	s, _ := newStorage(t)
	name := "x"
	_, err := s.UpdateUser(context.Background(), "no-existe", entity.UserUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.UpdateUser(context.Background(), "no-existe", entity.UserUpdate{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestGetCategories_OrdenPorSortOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	_, err := s.CreateCategory(ctx, &entity.Category{Name: "A", SortOrder: 2, IsActive: true})
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, &entity.Category{Name: "B", SortOrder: 1, IsActive: true})
	require.NoError(t, err)

	cats, err := s.GetCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "B", cats[0].Name)
	assert.Equal(t, "A", cats[1].Name)
}

func TestGetProductsByTimeSlot_UneCategoriasDeLaFranja(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)

	dairy, err := s.CreateCategory(ctx, &entity.Category{
		Name: "Lácteos", SortOrder: 1, IsActive: true,
		TimeSlots: []entity.TimeSlot{entity.TimeSlotMorning},
	})
	require.NoError(t, err)
	bakery, err := s.CreateCategory(ctx, &entity.Category{
		Name: "Panadería", SortOrder: 2, IsActive: true,
		TimeSlots: []entity.TimeSlot{entity.TimeSlotMorning, entity.TimeSlotEvening},
	})
	require.NoError(t, err)
	snacks, err := s.CreateCategory(ctx, &entity.Category{
		Name: "Snacks", SortOrder: 3, IsActive: true,
		TimeSlots: []entity.TimeSlot{entity.TimeSlotNight},
	})
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, &entity.Category{
		Name: "Inactiva", SortOrder: 4, IsActive: false,
		TimeSlots: []entity.TimeSlot{entity.TimeSlotMorning},
	})
	require.NoError(t, err)

	for _, p := range []*entity.Product{
		{Name: "Leche", CategoryID: dairy.ID, IsActive: true, Price: decimal.NewFromInt(4)},
		{Name: "Pan", CategoryID: bakery.ID, IsActive: true, Price: decimal.NewFromInt(2)},
		{Name: "Papas", CategoryID: snacks.ID, IsActive: true, Price: decimal.NewFromInt(3)},
		{Name: "Yogur viejo", CategoryID: dairy.ID, IsActive: false},
	} {
		_, err := s.CreateProduct(ctx, p)
		require.NoError(t, err)
	}

	morning, err := s.GetProductsByTimeSlot(ctx, entity.TimeSlotMorning)
	require.NoError(t, err)
	names := make([]string, 0, len(morning))
	for _, p := range morning {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Leche", "Pan"}, names)

	afternoon, err := s.GetProductsByTimeSlot(ctx, entity.TimeSlotAfternoon)
	require.NoError(t, err)
	assert.NotNil(t, afternoon)
	assert.Empty(t, afternoon)
}

func TestSearchProducts_SinDistinguirMayusculas(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	for _, p := range []*entity.Product{
		{Name: "Whole MILK", CategoryID: "c1", IsActive: true},
		{Name: "Cereal", Description: "best with milk", CategoryID: "c1", IsActive: true},
		{Name: "Bread", CategoryID: "c1", IsActive: true},
		{Name: "Old milk", CategoryID: "c1", IsActive: false},
	} {
		_, err := s.CreateProduct(ctx, p)
		require.NoError(t, err)
	}

	found, err := s.SearchProducts(ctx, "milk")
	require.NoError(t, err)
	names := []string{}
	for _, p := range found {
		names = append(names, p.Name)
	}
	assert.ElementsMatch(t, []string{"Whole MILK", "Cereal"}, names)
}

func TestGetProduct_PrecioDecimal(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	p, err := s.CreateProduct(ctx, &entity.Product{
		Name: "Queso", CategoryID: "c1", IsActive: true, Price: decimal.RequireFromString("12.35"),
	})
	require.NoError(t, err)

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("12.35").Equal(got.Price))

	missing, err := s.GetProduct(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// ──────────────────────────────────────────────────────────────────────────────
// Carrito
// ──────────────────────────────────────────────────────────────────────────────

func TestAddToCart_FusionaCantidades(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)

	first, err := s.AddToCart(ctx, &entity.CartItem{UserID: "U", ProductID: "P", Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Quantity)

	items, err := s.GetCartItems(ctx, "U")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	merged, err := s.AddToCart(ctx, &entity.CartItem{UserID: "U", ProductID: "P", Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, first.ID, merged.ID)
	assert.Equal(t, 5, merged.Quantity)
	assert.Equal(t, 1, mem.Len(storage.ColCart))
}

func TestAddToCart_CantidadPorDefecto(t *testing.T) {
	s, _ := newStorage(t)
	item, err := s.AddToCart(context.Background(), &entity.CartItem{UserID: "U", ProductID: "P"})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestUpdateCartItem_CeroBorraLaLinea(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	item, err := s.AddToCart(ctx, &entity.CartItem{UserID: "U", ProductID: "P", Quantity: 2})
	require.NoError(t, err)

	updated, err := s.UpdateCartItem(ctx, item.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, updated)

	items, err := s.GetCartItems(ctx, "U")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateCartItem_FijaCantidad(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	item, err := s.AddToCart(ctx, &entity.CartItem{UserID: "U", ProductID: "P", Quantity: 2})
	require.NoError(t, err)

	updated, err := s.UpdateCartItem(ctx, item.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = s.UpdateCartItem(ctx, "no-existe", 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = s.UpdateCartItem(ctx, "no-existe", 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveFromCart_DistingueNadaQueBorrar(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	item, err := s.AddToCart(ctx, &entity.CartItem{UserID: "U", ProductID: "P"})
	require.NoError(t, err)

	res, err := s.RemoveFromCart(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)

	res, err = s.RemoveFromCart(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, res.Nothing())
}

func TestClearCart_SoloDelUsuario(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	for _, it := range []*entity.CartItem{
		{UserID: "U", ProductID: "P1"},
		{UserID: "U", ProductID: "P2"},
		{UserID: "V", ProductID: "P1"},
	} {
		_, err := s.AddToCart(ctx, it)
		require.NoError(t, err)
	}

	res, err := s.ClearCart(ctx, "U")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Removed)

	left, err := s.GetCartItems(ctx, "V")
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos y notificaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_CompletaValoresPorDefecto(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	o, err := s.CreateOrder(ctx, &entity.Order{
		UserID: "U1",
		Items:  []entity.OrderItem{{ProductID: "p1", Quantity: 1, Price: decimal.NewFromInt(3)}},
		Total:  decimal.NewFromInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Regexp(t, `^PM-[0-9A-F]{8}$`, o.OrderNumber)
	assert.True(t, fixedNow.Equal(o.CreatedAt))
	require.Len(t, o.Items, 1)
	assert.True(t, decimal.NewFromInt(3).Equal(o.Items[0].Price))
}

func TestGetOrders_MasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	for i, number := range []string{"PM-1", "PM-2", "PM-3"} {
		_, err := s.CreateOrder(ctx, &entity.Order{
			UserID:      "U1",
			OrderNumber: number,
			Items:       []entity.OrderItem{},
			Total:       decimal.Zero,
			CreatedAt:   fixedNow.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
	}

	orders, err := s.GetOrders(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "PM-3", orders[0].OrderNumber)
	assert.Equal(t, "PM-1", orders[2].OrderNumber)
}

func TestUpdateOrderStatus_ConfirmedCreaUnaNotificacion(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	o := seedOrder(t, s, "PM-1000", "U1", "")

	updated, err := s.UpdateOrderStatus(ctx, o.ID, entity.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, updated.Status)

	notes, err := s.GetNotifications(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	n := notes[0]
	assert.Equal(t, "Order Confirmed! ✅", n.Title)
	assert.Equal(t, "Your order PM-1000 has been confirmed and is being prepared.", n.Message)
	assert.Equal(t, "customer_order_confirmed", n.Type)
	assert.False(t, n.IsRead)
	assert.Equal(t, o.ID, n.OrderID)
	assert.Equal(t, "customer", n.TargetAudience)
	assert.Equal(t, "normal", n.Priority)
	assert.Equal(t, "2025-03-14T09:30:00.000Z", n.CreatedAt)
	assert.True(t, decimal.NewFromInt(9).Equal(n.Total))
}

func TestUpdateOrderStatus_CancelledNoNotifica(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	o := seedOrder(t, s, "PM-1000", "U1", "")

	updated, err := s.UpdateOrderStatus(ctx, o.ID, entity.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, updated.Status)
	assert.Equal(t, 0, mem.Len(storage.ColNotifications))
}

func TestUpdateOrderStatus_DeliveredAlCliente(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	o := seedOrder(t, s, "PM-1001", "otro-user", "U1")

	_, err := s.UpdateOrderStatus(ctx, o.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)

	notes, err := s.GetNotifications(ctx, "U1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "customer_order_delivered", notes[0].Type)
	assert.Equal(t, "Order Delivered! 📦", notes[0].Title)
	assert.Equal(t, "U1", notes[0].CustomerID)
	assert.Equal(t, "PM-1001", notes[0].OrderNumber)
	assert.False(t, notes[0].IsRead)
}

// Repetir el mismo estado vuelve a notificar: el disparo depende solo del estado nuevo.
func TestUpdateOrderStatus_RepetirEstadoNotificaDeNuevo(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	o := seedOrder(t, s, "PM-1002", "U1", "")

	_, err := s.UpdateOrderStatus(ctx, o.ID, entity.OrderStatusOutForDelivery)
	require.NoError(t, err)
	_, err = s.UpdateOrderStatus(ctx, o.ID, entity.OrderStatusOutForDelivery)
	require.NoError(t, err)
	assert.Equal(t, 2, mem.Len(storage.ColNotifications))
}

func TestUpdateOrderStatus_FalloDeNotificacionNoFallaElPedido(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	o := seedOrder(t, s, "PM-1003", "U1", "")
	mem.FailOn[storage.ColNotifications] = errors.New("store caído")

	updated, err := s.UpdateOrderStatus(ctx, o.ID, entity.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, updated.Status)

	persisted, err := s.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, persisted.Status)
	assert.Equal(t, 0, mem.Len(storage.ColNotifications))
}

func TestUpdateOrderStatus_PedidoInexistente(t *testing.T) {
	s, mem := newStorage(t)
	_, err := s.UpdateOrderStatus(context.Background(), "no-existe", entity.OrderStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, mem.Len(storage.ColNotifications))

	_, err = s.UpdateOrderStatus(context.Background(), "no-existe", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateOrderStatus_PedidoMalformadoNoSeActualiza(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	id, err := mem.Add(ctx, storage.ColOrders, repository.Document{
		"userId": "U1", "orderNumber": "PM-ROTO", "status": "pending", "total": 9.0,
	})
	require.NoError(t, err)

	_, err = s.UpdateOrderStatus(ctx, id, entity.OrderStatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)

	raw, err := mem.Get(ctx, storage.ColOrders, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", raw.Data["status"])
	assert.Equal(t, 0, mem.Len(storage.ColNotifications))
}

// summingStore agrega la suma en el servidor sobre el store en memoria.
type summingStore struct {
	*memory.Store
	calls int
	field string
}

func (s *summingStore) SumNumeric(_ context.Context, q repository.Query, field string) (decimal.Decimal, int, error) {
	s.calls++
	s.field = field
	return decimal.RequireFromString("123.45"), 7, nil
}

func TestGetOrderSummary_SumaEnLaFachada(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	seedOrder(t, s, "PM-1", "U1", "")
	o := seedOrder(t, s, "PM-2", "U1", "")
	seedOrder(t, s, "PM-3", "U2", "")
	_, err := s.UpdateOrderStatus(ctx, o.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)

	sum, err := s.GetOrderSummary(ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, "U1", sum.UserID)
	assert.Equal(t, 2, sum.Orders)
	assert.True(t, decimal.NewFromInt(18).Equal(sum.Total), sum.Total.String())

	empty, err := s.GetOrderSummary(ctx, "nadie")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Orders)
	assert.True(t, empty.Total.IsZero())
}

func TestGetOrderSummary_DelegaEnElStore(t *testing.T) {
	store := &summingStore{Store: memory.NewStore()}
	s := storage.New(store, nil, storage.Options{})

	sum, err := s.GetOrderSummary(context.Background(), "U1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls)
	assert.Equal(t, "total", store.field)
	assert.Equal(t, 7, sum.Orders)
	assert.Equal(t, "123.45", sum.Total.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Wishlist
// ──────────────────────────────────────────────────────────────────────────────

func TestAddToWishlist_Idempotente(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)

	first, err := s.AddToWishlist(ctx, &entity.WishlistItem{UserID: "U", ProductID: "P"})
	require.NoError(t, err)
	second, err := s.AddToWishlist(ctx, &entity.WishlistItem{UserID: "U", ProductID: "P"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, mem.Len(storage.ColWishlists))
}

func TestRemoveFromWishlist(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	_, err := s.AddToWishlist(ctx, &entity.WishlistItem{UserID: "U", ProductID: "P"})
	require.NoError(t, err)

	res, err := s.RemoveFromWishlist(ctx, "U", "P")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Removed)

	res, err = s.RemoveFromWishlist(ctx, "U", "P")
	require.NoError(t, err)
	assert.True(t, res.Nothing())
}

func TestGetWishlistProducts_OmiteReferenciasColgantes(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)
	p, err := s.CreateProduct(ctx, &entity.Product{Name: "Leche", CategoryID: "c1", IsActive: true})
	require.NoError(t, err)
	_, err = s.AddToWishlist(ctx, &entity.WishlistItem{UserID: "U", ProductID: p.ID})
	require.NoError(t, err)
	_, err = s.AddToWishlist(ctx, &entity.WishlistItem{UserID: "U", ProductID: "borrado"})
	require.NoError(t, err)

	products, err := s.GetWishlistProducts(ctx, "U")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, p.ID, products[0].ID)

	res, err := s.ClearWishlist(ctx, "U")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Removed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recomendaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRecommendations_GuardarListarLimpiar(t *testing.T) {
	ctx := context.Background()
	s, _ := newStorage(t)

	_, err := s.SaveRecommendation(ctx, &entity.Recommendation{
		UserID: "U", TimeSlot: entity.TimeSlotMorning, CreatedAt: fixedNow.Add(-time.Hour),
		Items: []entity.RecommendedItem{{ProductID: "p1", Reason: "compra frecuente", Score: 0.9}},
	})
	require.NoError(t, err)
	latest, err := s.SaveRecommendation(ctx, &entity.Recommendation{UserID: "U", Summary: "nuevo"})
	require.NoError(t, err)

	recs, err := s.GetRecommendations(ctx, "U")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, latest.ID, recs[0].ID)
	require.Len(t, recs[1].Items, 1)
	assert.Equal(t, 0.9, recs[1].Items[0].Score)

	res, err := s.ClearRecommendations(ctx, "U")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Removed)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decodificación estricta
// ──────────────────────────────────────────────────────────────────────────────

func TestDecodificacion_DocumentoMalformado(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	_, err := mem.Add(ctx, storage.ColCart, repository.Document{
		"userId": "U", "productId": "P", "quantity": "tres",
	})
	require.NoError(t, err)

	_, err = s.GetCartItems(ctx, "U")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)

	var mre *domain.MalformedRecordError
	require.ErrorAs(t, err, &mre)
	assert.Equal(t, storage.ColCart, mre.Collection)
	assert.Equal(t, "quantity", mre.Field)
}

func TestDecodificacion_CampoRequeridoAusente(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	id, err := mem.Add(ctx, storage.ColProducts, repository.Document{"name": "Sin categoría", "isActive": true})
	require.NoError(t, err)

	_, err = s.GetProduct(ctx, id)
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}

func TestDecodificacion_NumerosHeterogeneos(t *testing.T) {
	ctx := context.Background()
	s, mem := newStorage(t)
	_, err := mem.Add(ctx, storage.ColCart, repository.Document{
		"userId": "U", "productId": "P", "quantity": float64(4),
	})
	require.NoError(t, err)
	_, err = mem.Add(ctx, storage.ColCart, repository.Document{
		"userId": "U", "productId": "Q", "quantity": int64(2),
	})
	require.NoError(t, err)

	items, err := s.GetCartItems(ctx, "U")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 4, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
}
