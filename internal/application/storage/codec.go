package storage

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/pakurmart-api/internal/domain"
	"github.com/jhoicas/pakurmart-api/internal/domain/entity"
	"github.com/jhoicas/pakurmart-api/internal/domain/repository"
)

// isoLayout ISO-8601 en UTC con milisegundos; el orden lexicográfico coincide con el cronológico.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// reader lee campos de un documento validando tipos. Guarda el primer error y a partir de
// ahí devuelve ceros, así los decodificadores quedan lineales.
type reader struct {
	col  string
	id   string
	data repository.Document
	err  error
}

func newReader(col string, snap *repository.Snapshot) *reader {
	return &reader{col: col, id: snap.ID, data: snap.Data}
}

func (r *reader) fail(field, reason string) {
	if r.err == nil {
		r.err = &domain.MalformedRecordError{Collection: r.col, ID: r.id, Field: field, Reason: reason}
	}
}

func (r *reader) lookup(field string, required bool) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.data[field]
	if !ok || v == nil {
		if required {
			r.fail(field, "es requerido")
		}
		return nil, false
	}
	return v, true
}

func (r *reader) str(field string, required bool) string {
	v, ok := r.lookup(field, required)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(field, fmt.Sprintf("debe ser string, es %T", v))
		return ""
	}
	if required && s == "" {
		r.fail(field, "no puede estar vacío")
	}
	return s
}

func (r *reader) boolean(field string, required bool) bool {
	v, ok := r.lookup(field, required)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(field, fmt.Sprintf("debe ser booleano, es %T", v))
	}
	return b
}

func (r *reader) integer(field string, required bool) int {
	v, ok := r.lookup(field, required)
	if !ok {
		return 0
	}
	n, err := toInt(v)
	if err != nil {
		r.fail(field, err.Error())
	}
	return n
}

func (r *reader) number(field string, required bool) float64 {
	v, ok := r.lookup(field, required)
	if !ok {
		return 0
	}
	f, err := toFloat(v)
	if err != nil {
		r.fail(field, err.Error())
	}
	return f
}

func (r *reader) money(field string, required bool) decimal.Decimal {
	v, ok := r.lookup(field, required)
	if !ok {
		return decimal.Zero
	}
	d, err := toDecimal(v)
	if err != nil {
		r.fail(field, err.Error())
	}
	return d
}

// timestamp acepta strings ISO-8601 y time.Time; ausente = tiempo cero.
func (r *reader) timestamp(field string, required bool) time.Time {
	v, ok := r.lookup(field, required)
	if !ok {
		return time.Time{}
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			r.fail(field, "fecha ISO-8601 inválida")
			return time.Time{}
		}
		return parsed.UTC()
	}
	r.fail(field, fmt.Sprintf("debe ser fecha, es %T", v))
	return time.Time{}
}

func (r *reader) strings(field string, required bool) []string {
	v, ok := r.lookup(field, required)
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		if ss, ok := v.([]string); ok {
			return append([]string(nil), ss...)
		}
		r.fail(field, fmt.Sprintf("debe ser arreglo, es %T", v))
		return nil
	}
	out := make([]string, 0, len(raw))
	for i, e := range raw {
		s, ok := e.(string)
		if !ok {
			r.fail(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("debe ser string, es %T", e))
			return nil
		}
		out = append(out, s)
	}
	return out
}

// objects lee un arreglo de objetos; cada elemento se devuelve como sub-reader.
func (r *reader) objects(field string, required bool) []*reader {
	v, ok := r.lookup(field, required)
	if !ok {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		r.fail(field, fmt.Sprintf("debe ser arreglo, es %T", v))
		return nil
	}
	out := make([]*reader, 0, len(raw))
	for i, e := range raw {
		m, ok := e.(map[string]any)
		if !ok {
			r.fail(fmt.Sprintf("%s[%d]", field, i), fmt.Sprintf("debe ser objeto, es %T", e))
			return nil
		}
		out = append(out, &reader{col: r.col, id: r.id, data: repository.Document(m)})
	}
	return out
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	case json.Number:
		return n.Float64()
	}
	return 0, fmt.Errorf("debe ser número, es %T", v)
}

func toInt(v any) (int, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("debe ser entero, es %v", f)
	}
	return int(f), nil
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch n := v.(type) {
	case string:
		return decimal.NewFromString(n)
	case json.Number:
		return decimal.NewFromString(n.String())
	}
	f, err := toFloat(v)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(f), nil
}

func moneyValue(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// ── Decodificadores por entidad ───────────────────────────────────────────────

func decodeUser(snap *repository.Snapshot) (*entity.User, error) {
	r := newReader(ColUsers, snap)
	u := &entity.User{
		ID:        snap.ID,
		Email:     r.str("email", true),
		Name:      r.str("name", false),
		Phone:     r.str("phone", false),
		Address:   r.str("address", false),
		CreatedAt: r.timestamp("createdAt", false),
	}
	return u, r.err
}

func encodeUser(u *entity.User) repository.Document {
	return repository.Document{
		"email":     u.Email,
		"name":      u.Name,
		"phone":     u.Phone,
		"address":   u.Address,
		"createdAt": formatTime(u.CreatedAt),
	}
}

func decodeCategory(snap *repository.Snapshot) (*entity.Category, error) {
	r := newReader(ColCategories, snap)
	c := &entity.Category{
		ID:          snap.ID,
		Name:        r.str("name", true),
		Description: r.str("description", false),
		ImageURL:    r.str("imageUrl", false),
		SortOrder:   r.integer("sortOrder", true),
		IsActive:    r.boolean("isActive", true),
	}
	for _, s := range r.strings("timeSlots", false) {
		c.TimeSlots = append(c.TimeSlots, entity.TimeSlot(s))
	}
	return c, r.err
}

func encodeCategory(c *entity.Category) repository.Document {
	slots := make([]any, 0, len(c.TimeSlots))
	for _, s := range c.TimeSlots {
		slots = append(slots, string(s))
	}
	return repository.Document{
		"name":        c.Name,
		"description": c.Description,
		"imageUrl":    c.ImageURL,
		"sortOrder":   c.SortOrder,
		"isActive":    c.IsActive,
		"timeSlots":   slots,
	}
}

func decodeProduct(snap *repository.Snapshot) (*entity.Product, error) {
	r := newReader(ColProducts, snap)
	p := &entity.Product{
		ID:          snap.ID,
		Name:        r.str("name", true),
		Description: r.str("description", false),
		CategoryID:  r.str("categoryId", true),
		Price:       r.money("price", false),
		Unit:        r.str("unit", false),
		ImageURL:    r.str("imageUrl", false),
		IsActive:    r.boolean("isActive", true),
	}
	return p, r.err
}

func encodeProduct(p *entity.Product) repository.Document {
	return repository.Document{
		"name":        p.Name,
		"description": p.Description,
		"categoryId":  p.CategoryID,
		"price":       moneyValue(p.Price),
		"unit":        p.Unit,
		"imageUrl":    p.ImageURL,
		"isActive":    p.IsActive,
	}
}

func decodeCartItem(snap *repository.Snapshot) (*entity.CartItem, error) {
	r := newReader(ColCart, snap)
	c := &entity.CartItem{
		ID:        snap.ID,
		UserID:    r.str("userId", true),
		ProductID: r.str("productId", true),
		Quantity:  r.integer("quantity", true),
	}
	return c, r.err
}

func decodeOrder(snap *repository.Snapshot) (*entity.Order, error) {
	r := newReader(ColOrders, snap)
	o := &entity.Order{
		ID:              snap.ID,
		UserID:          r.str("userId", false),
		CustomerID:      r.str("customerId", false),
		OrderNumber:     r.str("orderNumber", true),
		Status:          entity.OrderStatus(r.str("status", true)),
		Total:           r.money("total", true),
		DeliveryAddress: r.str("deliveryAddress", false),
		TimeSlot:        entity.TimeSlot(r.str("timeSlot", false)),
		CreatedAt:       r.timestamp("createdAt", false),
	}
	items := r.objects("items", true)
	o.Items = make([]entity.OrderItem, 0, len(items))
	for _, ir := range items {
		item := entity.OrderItem{
			ProductID: ir.str("productId", true),
			Name:      ir.str("name", false),
			Price:     ir.money("price", false),
			Quantity:  ir.integer("quantity", true),
		}
		if ir.err != nil {
			return nil, ir.err
		}
		o.Items = append(o.Items, item)
	}
	if r.err != nil {
		return nil, r.err
	}
	return o, nil
}

func encodeOrder(o *entity.Order) repository.Document {
	items := make([]any, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, map[string]any{
			"productId": it.ProductID,
			"name":      it.Name,
			"price":     moneyValue(it.Price),
			"quantity":  it.Quantity,
		})
	}
	doc := repository.Document{
		"userId":      o.UserID,
		"orderNumber": o.OrderNumber,
		"items":       items,
		"status":      string(o.Status),
		"total":       moneyValue(o.Total),
		"createdAt":   formatTime(o.CreatedAt),
	}
	if o.CustomerID != "" {
		doc["customerId"] = o.CustomerID
	}
	if o.DeliveryAddress != "" {
		doc["deliveryAddress"] = o.DeliveryAddress
	}
	if o.TimeSlot != "" {
		doc["timeSlot"] = string(o.TimeSlot)
	}
	return doc
}

func decodeWishlistItem(snap *repository.Snapshot) (*entity.WishlistItem, error) {
	r := newReader(ColWishlists, snap)
	w := &entity.WishlistItem{
		ID:        snap.ID,
		UserID:    r.str("userId", true),
		ProductID: r.str("productId", true),
		CreatedAt: r.timestamp("createdAt", false),
	}
	return w, r.err
}

func decodeRecommendation(snap *repository.Snapshot) (*entity.Recommendation, error) {
	r := newReader(ColRecommendations, snap)
	rec := &entity.Recommendation{
		ID:        snap.ID,
		UserID:    r.str("userId", true),
		TimeSlot:  entity.TimeSlot(r.str("timeSlot", false)),
		Summary:   r.str("summary", false),
		CreatedAt: r.timestamp("createdAt", false),
	}
	for _, ir := range r.objects("items", false) {
		item := entity.RecommendedItem{
			ProductID: ir.str("productId", true),
			Reason:    ir.str("reason", false),
			Score:     ir.number("score", false),
		}
		if ir.err != nil {
			return nil, ir.err
		}
		rec.Items = append(rec.Items, item)
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

func encodeRecommendation(rec *entity.Recommendation) repository.Document {
	items := make([]any, 0, len(rec.Items))
	for _, it := range rec.Items {
		items = append(items, map[string]any{
			"productId": it.ProductID,
			"reason":    it.Reason,
			"score":     it.Score,
		})
	}
	return repository.Document{
		"userId":    rec.UserID,
		"timeSlot":  string(rec.TimeSlot),
		"items":     items,
		"summary":   rec.Summary,
		"createdAt": formatTime(rec.CreatedAt),
	}
}

func decodeNotification(snap *repository.Snapshot) (*entity.Notification, error) {
	r := newReader(ColNotifications, snap)
	n := &entity.Notification{
		ID:             snap.ID,
		Type:           r.str("type", true),
		Title:          r.str("title", false),
		Message:        r.str("message", false),
		OrderID:        r.str("orderId", true),
		OrderNumber:    r.str("orderNumber", false),
		CustomerID:     r.str("customerId", false),
		Total:          r.money("total", false),
		IsRead:         r.boolean("isRead", false),
		TargetAudience: r.str("targetAudience", false),
		CreatedAt:      r.str("createdAt", false),
		Priority:       r.str("priority", false),
	}
	return n, r.err
}

// decodeAll aplica dec a cada snapshot; el primer documento inválido aborta la lectura.
func decodeAll[T any](snaps []repository.Snapshot, dec func(*repository.Snapshot) (*T, error)) ([]*T, error) {
	out := make([]*T, 0, len(snaps))
	for i := range snaps {
		v, err := dec(&snaps[i])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
