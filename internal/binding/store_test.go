package binding

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, opts...), mr
}

func testContext(cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	resp := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(resp)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/x", nil)
	for _, cookie := range cookies {
		c.Request.AddCookie(cookie)
	}
	return c, resp
}

func markerCookie(t *testing.T, resp *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == DefaultCookieName {
			return cookie
		}
	}
	t.Fatal("marker cookie not set")
	return nil
}

func TestSetThenGet(t *testing.T) {
	store, _ := newTestStore(t)

	c, resp := testContext()
	require.NoError(t, store.Set(c, "acme"))

	cookie := markerCookie(t, resp)
	assert.True(t, cookie.HttpOnly, "marker must be unreadable by page scripts")
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, DefaultCookiePath, cookie.Path)
	assert.Equal(t, int(DefaultRetention.Seconds()), cookie.MaxAge)
	assert.NotEqual(t, "acme", cookie.Value, "cookie carries the marker, not the tenant")

	c2, _ := testContext(cookie)
	tenantID, err := store.Get(c2)
	require.NoError(t, err)
	assert.Equal(t, "acme", tenantID)
}

func TestGetWithoutCookie(t *testing.T) {
	store, _ := newTestStore(t)

	c, _ := testContext()
	tenantID, err := store.Get(c)
	require.NoError(t, err)
	assert.Empty(t, tenantID)
}

func TestSetOverwritesAndReusesMarker(t *testing.T) {
	store, _ := newTestStore(t)

	c, resp := testContext()
	require.NoError(t, store.Set(c, "acme"))
	first := markerCookie(t, resp)

	// Switching tenants with an existing marker overwrites in place.
	c2, resp2 := testContext(first)
	require.NoError(t, store.Set(c2, "beta"))
	second := markerCookie(t, resp2)
	assert.Equal(t, first.Value, second.Value, "re-select reuses the marker")

	c3, _ := testContext(second)
	tenantID, err := store.Get(c3)
	require.NoError(t, err)
	assert.Equal(t, "beta", tenantID)
}

func TestSetIsIdempotent(t *testing.T) {
	store, _ := newTestStore(t)

	c, resp := testContext()
	require.NoError(t, store.Set(c, "acme"))
	cookie := markerCookie(t, resp)

	c2, _ := testContext(cookie)
	require.NoError(t, store.Set(c2, "acme"))

	c3, _ := testContext(cookie)
	tenantID, err := store.Get(c3)
	require.NoError(t, err)
	assert.Equal(t, "acme", tenantID)
}

func TestBindingExpires(t *testing.T) {
	store, mr := newTestStore(t, WithRetention(time.Hour))

	c, resp := testContext()
	require.NoError(t, store.Set(c, "acme"))
	cookie := markerCookie(t, resp)

	mr.FastForward(2 * time.Hour)

	c2, _ := testContext(cookie)
	tenantID, err := store.Get(c2)
	require.NoError(t, err)
	assert.Empty(t, tenantID, "expired binding reads as absent")
}

func TestClear(t *testing.T) {
	store, _ := newTestStore(t)

	c, resp := testContext()
	require.NoError(t, store.Set(c, "acme"))
	cookie := markerCookie(t, resp)

	c2, resp2 := testContext(cookie)
	require.NoError(t, store.Clear(c2))

	cleared := markerCookie(t, resp2)
	assert.Negative(t, cleared.MaxAge, "clearing expires the cookie")

	c3, _ := testContext(cookie)
	tenantID, err := store.Get(c3)
	require.NoError(t, err)
	assert.Empty(t, tenantID)
}
