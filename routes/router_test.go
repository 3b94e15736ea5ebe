package routes

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/checkout"
	controller "github.com/02priyeshraj/Tomato_Restaurant_Website/controllers"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/helper"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/notify"
	"github.com/02priyeshraj/Tomato_Restaurant_Website/repository"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Errors     map[string]string  `json:"errors"`
	Warning    string             `json:"warning"`
	Pagination *helper.Pagination `json:"pagination"`
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(ctx context.Context, e notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *recordingNotifier) kinds() []notify.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := []notify.Kind{}
	for _, e := range n.events {
		out = append(out, e.Kind)
	}
	return out
}

type api struct {
	t      *testing.T
	stores *repository.Stores
	router http.Handler
	notes  *recordingNotifier
}

func newAPI(t *testing.T) *api {
	t.Helper()
	stores := repository.NewMemoryStores()
	c := controller.New(stores, helper.NewTokenIssuer("test-secret"), logger.Nop())
	notes := &recordingNotifier{}
	c.Notifier = notes
	return &api{t: t, stores: stores, router: NewRouter(c), notes: notes}
}

func (a *api) send(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func (a *api) do(method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(a.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return a.send(req, token)
}

func (a *api) signIn() string {
	a.t.Helper()
	_, err := controller.RegisterAdmin(context.Background(), a.stores.Users, "chef@tomato.example", "Chef", "correct-horse")
	require.NoError(a.t, err)

	rec, env := a.do(http.MethodPost, "/users/login", map[string]string{
		"email": "Chef@Tomato.example", "password": "correct-horse",
	}, "")
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var session struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &session))
	require.NotEmpty(a.t, session.Token)
	return session.Token
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func orderForm(t *testing.T, order map[string]any, screenshot []byte, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	b, err := json.Marshal(order)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("order", string(b)))

	if screenshot != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="payment_screenshot"; filename="proof.png"`)
		h.Set("Content-Type", contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(screenshot)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func validOrder() map[string]any {
	return map[string]any{
		"name":  "Ada Lovelace",
		"email": "ada@example.com",
		"phone": "+44 20 7946 0958",
		"date":  "2099-06-01",
		"time":  "19:30",
		"items": []map[string]any{
			{"id": "m1", "name": "Margherita", "price": 14.0, "quantity": 2},
			{"id": "d1", "name": "Tiramisu", "price": 8.5, "quantity": 1},
		},
	}
}

func TestHealthAndUnknownRoute(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, env = a.do(http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestMenuBrowsing(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	for _, item := range []models.MenuItem{
		{Name: "Margherita", Category: "mains", Price: 14, Dietary: []string{"Vegetarian"}, Featured: true},
		{Name: "Chickpea Curry", Category: "mains", Price: 16, Dietary: []string{"Vegan", "Gluten-Free"}},
		{Name: "Vegan Brownie", Category: "desserts", Price: 7, Dietary: []string{"Vegan"}},
		{Name: "Ribeye", Category: "mains", Price: 32},
	} {
		item := item
		require.NoError(t, a.stores.Menu.Insert(ctx, &item))
	}

	rec, env := a.do(http.MethodGet, "/api/menu?category=mains&dietary=vegan", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]models.MenuItem](t, env.Data)
	require.Len(t, items, 1)
	assert.Equal(t, "Chickpea Curry", items[0].Name)

	_, env = a.do(http.MethodGet, "/api/menu?search=BROWNIE", nil, "")
	assert.Len(t, decode[[]models.MenuItem](t, env.Data), 1)

	_, env = a.do(http.MethodGet, "/api/menu?featured=true", nil, "")
	assert.Len(t, decode[[]models.MenuItem](t, env.Data), 1)

	rec, _ = a.do(http.MethodGet, "/api/menu?featured=maybe", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	_, env = a.do(http.MethodGet, "/api/menu/categories", nil, "")
	assert.Equal(t, []string{"desserts", "mains"}, decode[[]string](t, env.Data))

	rec, _ = a.do(http.MethodGet, "/api/menu/does-not-exist", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMenuAdmin(t *testing.T) {
	a := newAPI(t)

	rec, _ := a.do(http.MethodPost, "/admin/menu", map[string]any{"name": "Soup"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := a.signIn()

	rec, env := a.do(http.MethodPost, "/admin/menu", map[string]any{"name": "", "price": 0, "category": "starters"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", env.Errors["name"])
	assert.Contains(t, env.Errors, "price")

	rec, env = a.do(http.MethodPost, "/admin/menu", map[string]any{"name": "Soup", "price": 6.5, "category": "starters"}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	item := decode[models.MenuItem](t, env.Data)
	assert.NotEmpty(t, item.Item_id)
	assert.Equal(t, []string{}, item.Dietary)

	rec, _ = a.do(http.MethodPatch, "/admin/menu/"+item.Item_id, map[string]any{}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = a.do(http.MethodPatch, "/admin/menu/"+item.Item_id, map[string]any{"dietary": []string{"Vegan", ""}}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Dietary tag is required", env.Errors["dietary[1]"])

	rec, env = a.do(http.MethodPatch, "/admin/menu/"+item.Item_id, map[string]any{"price": 7.25, "featured": true}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.MenuItem](t, env.Data)
	assert.Equal(t, 7.25, updated.Price)
	assert.True(t, updated.Featured)
	assert.Equal(t, "Soup", updated.Name)

	rec, _ = a.do(http.MethodDelete, "/admin/menu/"+item.Item_id, nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = a.do(http.MethodDelete, "/admin/menu/"+item.Item_id, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPreOrderValidateSteps(t *testing.T) {
	a := newAPI(t)

	order := validOrder()
	order["name"] = " "
	rec, env := a.do(http.MethodPost, "/api/preorders/validate?step=contact", order, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", env.Errors["name"])
	assert.Equal(t, "contact", decode[map[string]string](t, env.Data)["step"])

	rec, env = a.do(http.MethodPost, "/api/preorders/validate?step=review", validOrder(), "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decode[map[string]any](t, env.Data)
	assert.Equal(t, "payment", data["next"])
	assert.InDelta(t, 36.5, data["total"], 0.001)

	rec, _ = a.do(http.MethodPost, "/api/preorders/validate?step=9", validOrder(), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPreOrderRequiresScreenshot(t *testing.T) {
	a := newAPI(t)

	body, ct := orderForm(t, validOrder(), nil, "")
	req := httptest.NewRequest(http.MethodPost, "/api/preorders", body)
	req.Header.Set("Content-Type", ct)
	rec, env := a.send(req, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, checkout.PaymentVerificationRequired, env.Message)
	assert.Contains(t, env.Errors, "payment_screenshot")

	n, err := a.stores.Orders.Count(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPreOrderPlaceTrackAndReorder(t *testing.T) {
	a := newAPI(t)

	body, ct := orderForm(t, validOrder(), pngHeader, "image/png")
	req := httptest.NewRequest(http.MethodPost, "/api/preorders", body)
	req.Header.Set("Content-Type", ct)
	rec, env := a.send(req, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// no bucket is configured, so the order goes through with a warning
	assert.Equal(t, checkout.UploadWarning, env.Warning)
	placed := decode[models.PreOrder](t, env.Data)
	assert.Len(t, placed.Order_id, helper.OrderCodeLength)
	assert.Equal(t, 36.5, placed.Total)
	assert.Equal(t, models.OrderPending, placed.Status)
	assert.Equal(t, checkout.UploadFailed, placed.PaymentScreenshotUrl)

	rec, env = a.do(http.MethodGet, "/api/preorders/"+strings.ToLower(placed.Order_id), nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), "ada@example.com")
	tracked := decode[map[string]any](t, env.Data)
	assert.Equal(t, placed.Order_id, tracked["order_id"])

	rec, env = a.do(http.MethodPost, "/api/preorders/"+placed.Order_id+"/reorder", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[map[string]any](t, env.Data)
	assert.InDelta(t, 36.5, cart["total"], 0.001)
	assert.EqualValues(t, 3, cart["item_count"])

	rec, _ = a.do(http.MethodGet, "/api/preorders/ZZZZZZ", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReorderCart(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodPost, "/api/cart/reorder", map[string]any{"items": []map[string]any{
		{"id": "m1", "name": "Margherita", "price": 14, "quantity": 2},
		{"id": "", "name": "broken"},
	}}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[map[string]any](t, env.Data)
	assert.InDelta(t, 28.0, cart["total"], 0.001)

	_, env = a.do(http.MethodPost, "/api/cart/reorder", map[string]any{"items": []map[string]any{{"name": "broken"}}}, "")
	assert.Equal(t, "None of the previous items could be added", env.Message)
}

func TestOrderStatusNotifiesWhenReady(t *testing.T) {
	a := newAPI(t)
	token := a.signIn()
	ctx := context.Background()

	order := models.PreOrder{
		Order_id: "ABC234", Name: "Ada", Email: "ada@example.com",
		Status: models.OrderPending, PaymentStatus: models.PaymentPendingVerification,
	}
	require.NoError(t, a.stores.Orders.Insert(ctx, &order))

	rec, _ := a.do(http.MethodPatch, "/admin/preorders/ABC234/status", map[string]string{"status": "teleported"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = a.do(http.MethodPatch, "/admin/preorders/ABC234/status", map[string]string{"status": models.OrderReady}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []notify.Kind{notify.KindOrderReady}, a.notes.kinds())

	// setting the same status again is not a change
	a.do(http.MethodPatch, "/admin/preorders/ABC234/status", map[string]string{"status": models.OrderReady}, token)
	assert.Len(t, a.notes.kinds(), 1)

	rec, env := a.do(http.MethodPatch, "/admin/preorders/ABC234/payment", map[string]string{"payment_status": models.PaymentVerified}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.PaymentVerified, decode[models.PreOrder](t, env.Data).PaymentStatus)

	rec, env = a.do(http.MethodGet, "/admin/preorders?status=ready", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.PreOrder](t, env.Data), 1)
	require.NotNil(t, env.Pagination)
	assert.EqualValues(t, 1, env.Pagination.Total)
}

func TestListingPastTheLastPage(t *testing.T) {
	a := newAPI(t)
	token := a.signIn()

	o := models.PreOrder{Order_id: "ABC234", Status: models.OrderPending}
	require.NoError(t, a.stores.Orders.Insert(context.Background(), &o))

	for _, path := range []string{
		"/admin/preorders?page=9223372036854775807&recordPerPage=2",
		"/admin/reservations?page=9223372036854775807",
		"/admin/contacts?page=4611686018427387904&recordPerPage=3",
	} {
		rec, env := a.do(http.MethodGet, path, nil, token)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "[]", string(env.Data), path)
		require.NotNil(t, env.Pagination)
	}
}

func TestReservationFlow(t *testing.T) {
	a := newAPI(t)

	booking := map[string]any{
		"date": "2099-06-01", "time": "19:00", "guests": 4,
		"name": "", "email": "guest@example.com", "phone": "+1 555 123 4567",
	}

	rec, env := a.do(http.MethodPost, "/api/reservations/validate?step=2", booking, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, map[string]int{"step": 2, "next": 3}, decode[map[string]int](t, env.Data))

	rec, env = a.do(http.MethodPost, "/api/reservations/validate?step=3", booking, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", env.Errors["name"])

	booking["name"] = "Grace Hopper"
	rec, env = a.do(http.MethodPost, "/api/reservations", booking, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	res := decode[models.Reservation](t, env.Data)
	assert.Equal(t, models.ReservationPending, res.Status)
	assert.Equal(t, "no-preference", res.SeatingPreference)

	token := a.signIn()
	rec, env = a.do(http.MethodGet, "/admin/reservations?date=2099-06-01", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Reservation](t, env.Data), 1)

	rec, _ = a.do(http.MethodPatch, "/admin/reservations/"+res.Reservation_id+"/status", map[string]string{"status": models.ReservationConfirmed}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []notify.Kind{notify.KindReservationConfirmed}, a.notes.kinds())

	rec, _ = a.do(http.MethodDelete, "/admin/reservations/"+res.Reservation_id, nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestContactForm(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodPost, "/api/contacts", map[string]any{"name": "Sam", "email": "not-an-email"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please enter a valid email address", env.Errors["email"])
	assert.Contains(t, env.Errors, "subject")
	assert.Contains(t, env.Errors, "message")

	rec, env = a.do(http.MethodPost, "/api/contacts", map[string]any{
		"name": "Sam", "email": "sam@example.com", "subject": "Party of 12", "message": "Do you take large groups?",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Thank you, we will get back to you soon", env.Message)
	msg := decode[models.Contact](t, env.Data)
	assert.Equal(t, models.ContactUnread, msg.Status)

	token := a.signIn()
	rec, _ = a.do(http.MethodPatch, "/admin/contacts/"+msg.Contact_id+"/status", map[string]string{"status": models.ContactReplied}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []notify.Kind{notify.KindStatusChanged}, a.notes.kinds())

	rec, env = a.do(http.MethodGet, "/admin/contacts?status=unread", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.Contact](t, env.Data))
}

func TestAboutSections(t *testing.T) {
	a := newAPI(t)
	token := a.signIn()

	rec, env := a.do(http.MethodPost, "/admin/about/values", map[string]any{"title": "Warmth", "icon": "rocket"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Icon is not a known icon", env.Errors["icon"])

	rec, env = a.do(http.MethodPost, "/admin/about/values", map[string]any{"title": "Warmth", "icon": "heart", "order": 2}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	warmth := decode[models.Value](t, env.Data)

	rec, _ = a.do(http.MethodPost, "/admin/about/values", map[string]any{"title": "Fresh produce", "icon": "leaf", "order": 1}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = a.do(http.MethodPatch, "/admin/about/values/"+warmth.Value_id, map[string]any{"description": "Every guest is family"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[models.Value](t, env.Data)
	assert.Equal(t, "Warmth", updated.Title)
	assert.Equal(t, models.IconHeart, updated.Icon)
	assert.Equal(t, "Every guest is family", updated.Description)

	rec, _ = a.do(http.MethodPost, "/admin/about/menu", map[string]any{"title": "x"}, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = a.do(http.MethodGet, "/api/about", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	about := decode[models.About](t, env.Data)
	require.Len(t, about.Values, 2)
	assert.Equal(t, "Fresh produce", about.Values[0].Title)
	assert.Empty(t, about.Team)

	_, env = a.do(http.MethodGet, "/api/about/icons", nil, "")
	assert.Len(t, decode[[]map[string]string](t, env.Data), len(models.Icons()))

	rec, _ = a.do(http.MethodDelete, "/admin/about/values/"+warmth.Value_id, nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = a.do(http.MethodDelete, "/admin/about/values/"+warmth.Value_id, nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodPost, "/users/login", map[string]string{"email": "nobody@example.com", "password": "whatever1"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", env.Message)

	token := a.signIn()

	rec, env = a.do(http.MethodGet, "/admin/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chef@tomato.example", decode[map[string]string](t, env.Data)["email"])

	rec, _ = a.do(http.MethodPost, "/admin/users", map[string]string{"email": "chef@tomato.example", "password": "another-one"}, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = a.do(http.MethodPost, "/admin/users", map[string]string{"email": "sous@tomato.example", "password": "short"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "password")

	rec, env = a.do(http.MethodGet, "/admin/users", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, string(env.Data), `"password":`)

	rec, _ = a.do(http.MethodPost, "/admin/logout", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = a.do(http.MethodGet, "/admin/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Session has ended, please sign in again", env.Message)

	rec, _ = a.do(http.MethodPost, "/users/federated", map[string]string{"id_token": "x"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDashboardStats(t *testing.T) {
	a := newAPI(t)
	ctx := context.Background()
	token := a.signIn()

	for i, status := range []string{models.OrderPending, models.OrderPending, models.OrderReady} {
		o := models.PreOrder{Order_id: fmt.Sprintf("CODE%02d", i), Status: status, PaymentStatus: models.PaymentPendingVerification}
		require.NoError(t, a.stores.Orders.Insert(ctx, &o))
	}
	require.NoError(t, a.stores.Contacts.Insert(ctx, &models.Contact{Name: "Sam", Status: models.ContactUnread}))

	rec, env := a.do(http.MethodGet, "/admin/stats", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[map[string]int64](t, env.Data)
	assert.EqualValues(t, 2, stats["pending_orders"])
	assert.EqualValues(t, 1, stats["ready_orders"])
	assert.EqualValues(t, 3, stats["unverified_payments"])
	assert.EqualValues(t, 1, stats["unread_messages"])
	assert.EqualValues(t, 0, stats["menu_items"])
}

func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "data: ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "data: "))
		}
	}
}

func TestStreamSendsSnapshots(t *testing.T) {
	a := newAPI(t)
	token := a.signIn()

	srv := httptest.NewServer(a.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/admin/stream/contacts?access_token="+token, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := bufio.NewReader(resp.Body)
	assert.Equal(t, "[]", readEvent(t, events))

	require.NoError(t, a.stores.Contacts.Insert(context.Background(), &models.Contact{Name: "Sam", Status: models.ContactUnread}))

	var snapshot []models.Contact
	require.NoError(t, json.Unmarshal([]byte(readEvent(t, events)), &snapshot))
	require.Len(t, snapshot, 1)
	assert.Equal(t, "Sam", snapshot[0].Name)
}

func TestStreamUnknownCollection(t *testing.T) {
	a := newAPI(t)
	token := a.signIn()

	rec, _ := a.do(http.MethodGet, "/admin/stream/users", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
