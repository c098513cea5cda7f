package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krmu/lostfound-api/internal/model"
)

func foundItemFields(adminID string) map[string]string {
	return map[string]string{
		"itemType":      "Umbrella",
		"description":   "Black umbrella with wooden handle",
		"dateFound":     "2025-03-12",
		"locationFound": "Cafeteria",
		"admin":         adminID,
	}
}

func TestCreateFoundItemEndpoint(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "warden", model.RoleAdmin)

	req := multipartRequest(t, "/api/found-items",
		foundItemFields(admin.ID.Hex()), "image", []byte("fake-jpeg-bytes"))
	rec := env.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Umbrella", body["itemType"])
	assert.Equal(t, false, body["isReturned"])
	assert.Equal(t, env.uploader.URL, body["imageUrl"])
	assert.Equal(t, admin.ID.Hex(), body["admin"])

	uploads := env.uploader.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "found-items", uploads[0].Folder)
}

func TestCreateFoundItemEndpoint_ImageRequired(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "warden", model.RoleAdmin)

	rec := env.do(multipartRequest(t, "/api/found-items", foundItemFields(admin.ID.Hex()), "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Image file is required", decodeBody(t, rec)["error"])

	// Rejected before anything touches storage or the database.
	assert.Equal(t, 0, env.uploader.Calls())
	assert.Equal(t, 0, env.items.Count())
}

func TestCreateFoundItemEndpoint_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "warden", model.RoleAdmin)

	fields := foundItemFields(admin.ID.Hex())
	delete(fields, "itemType")

	rec := env.do(multipartRequest(t, "/api/found-items", fields, "image", []byte("fake-jpeg-bytes")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The validator reports the first violated field.
	message, _ := decodeBody(t, rec)["error"].(string)
	assert.Contains(t, message, "required field")
	assert.Equal(t, 0, env.items.Count())
}

func TestCreateFoundItemEndpoint_InvalidAdmin(t *testing.T) {
	env := newTestEnv(t)

	for _, adminID := range []string{"not-a-hex-id", "64f1a2b3c4d5e6f7a8b9c0d1"} {
		rec := env.do(multipartRequest(t, "/api/found-items",
			foundItemFields(adminID), "image", []byte("fake-jpeg-bytes")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid admin ID", decodeBody(t, rec)["error"])
	}

	assert.Equal(t, 0, env.items.Count())
}

func TestListFoundItemsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "warden", model.RoleAdmin)

	rec := env.do(multipartRequest(t, "/api/found-items",
		foundItemFields(admin.ID.Hex()), "image", []byte("fake-jpeg-bytes")))
	require.Equal(t, http.StatusCreated, rec.Code)

	listRec := env.do(httptest.NewRequest(http.MethodGet, "/api/data/found-items", nil))
	require.Equal(t, http.StatusOK, listRec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	adminRef, ok := list[0]["admin"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, admin.ID.Hex(), adminRef["id"])
	assert.Equal(t, "warden", adminRef["username"])
	// The admin projection carries only id and username.
	assert.NotContains(t, adminRef, "role")
}

func TestMarkFoundItemReturnedEndpoint(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "warden", model.RoleAdmin)

	rec := env.do(multipartRequest(t, "/api/found-items",
		foundItemFields(admin.ID.Hex()), "image", []byte("fake-jpeg-bytes")))
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decodeBody(t, rec)["id"].(string)

	patchRec := env.do(httptest.NewRequest(http.MethodPatch, "/api/data/found-items/"+id+"/return", nil))
	require.Equal(t, http.StatusOK, patchRec.Code)
	assert.Equal(t, true, decodeBody(t, patchRec)["isReturned"])
}

func TestMarkFoundItemReturnedEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodPatch,
		"/api/data/found-items/64f1a2b3c4d5e6f7a8b9c0d1/return", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Found item not found", decodeBody(t, rec)["error"])
}

func TestDeleteFoundItemEndpoint(t *testing.T) {
	env := newTestEnv(t)
	admin := env.seedUser(t, "warden", model.RoleAdmin)

	rec := env.do(multipartRequest(t, "/api/found-items",
		foundItemFields(admin.ID.Hex()), "image", []byte("fake-jpeg-bytes")))
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decodeBody(t, rec)["id"].(string)

	delRec := env.do(httptest.NewRequest(http.MethodDelete, "/api/delete/found-item/"+id, nil))
	require.Equal(t, http.StatusOK, delRec.Code)

	body := decodeBody(t, delRec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Found item deleted successfully", body["message"])

	deleted, ok := body["deletedItem"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, id, deleted["id"])

	assert.Equal(t, 0, env.items.Count())
}

func TestDeleteFoundItemEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodDelete,
		"/api/delete/found-item/64f1a2b3c4d5e6f7a8b9c0d1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Found item not found", body["message"])
}
