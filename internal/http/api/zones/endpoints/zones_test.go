package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/solat/internal/http/api"
)

func router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api.MountGroup(r, api.GroupConfig{Prefix: "/api"}, ZonesModule())
	return r
}

func get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestListZones(t *testing.T) {
	w := get("/api/zones")
	require.Equal(t, http.StatusOK, w.Code)

	var body ZoneListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data, 58)
	assert.Equal(t, "JHR01", string(body.Data[0].Code))
}

func TestGetZone(t *testing.T) {
	w := get("/api/zones/wly01")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"WLY01"`)

	assert.Equal(t, http.StatusNotFound, get("/api/zones/XXX99").Code)
}

func TestResolveZone(t *testing.T) {
	w := get("/api/zones/resolve?state=Selangor&city=Shah%20Alam")
	require.Equal(t, http.StatusOK, w.Code)

	var body ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "SGR01", string(body.Data.Code))
	assert.Equal(t, "Shah Alam", body.City)

	w = get("/api/zones/resolve?state=Atlantis")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"WLY01"`)

	assert.Equal(t, http.StatusBadRequest, get("/api/zones/resolve").Code)
}
