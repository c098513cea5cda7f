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

func complaintFields(studentID string) map[string]string {
	return map[string]string{
		"productType":   "Wallet",
		"dateLost":      "2025-03-10",
		"lastKnownSpot": "Library",
		"description":   "Brown leather wallet",
		"student":       studentID,
	}
}

func TestCreateComplaintEndpoint(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "alice", model.RoleStudent)

	req := multipartRequest(t, "/api/complaints", complaintFields(student.ID.Hex()), "", nil)
	rec := env.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Wallet", body["productType"])
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, student.ID.Hex(), body["student"])
	// No photo part, no upload.
	assert.NotContains(t, body, "photoUrl")
	assert.Equal(t, 0, env.uploader.Calls())
}

func TestCreateComplaintEndpoint_WithPhoto(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "alice", model.RoleStudent)

	req := multipartRequest(t, "/api/complaints",
		complaintFields(student.ID.Hex()), "photo", []byte("fake-jpeg-bytes"))
	rec := env.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, env.uploader.URL, body["photoUrl"])

	uploads := env.uploader.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, "complaints", uploads[0].Folder)
}

func TestCreateComplaintEndpoint_MissingFields(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "alice", model.RoleStudent)

	fields := complaintFields(student.ID.Hex())
	delete(fields, "description")

	rec := env.do(multipartRequest(t, "/api/complaints", fields, "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All required fields must be provided", decodeBody(t, rec)["error"])
	assert.Equal(t, 0, env.complaints.Count())
}

func TestCreateComplaintEndpoint_InvalidDate(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "alice", model.RoleStudent)

	fields := complaintFields(student.ID.Hex())
	fields["dateLost"] = "last tuesday"

	rec := env.do(multipartRequest(t, "/api/complaints", fields, "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid dateLost value", decodeBody(t, rec)["error"])
}

func TestCreateComplaintEndpoint_InvalidStudent(t *testing.T) {
	env := newTestEnv(t)

	for _, studentID := range []string{"not-a-hex-id", "64f1a2b3c4d5e6f7a8b9c0d1"} {
		rec := env.do(multipartRequest(t, "/api/complaints", complaintFields(studentID), "", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid student ID", decodeBody(t, rec)["error"])
	}

	// No document was created along the way.
	assert.Equal(t, 0, env.complaints.Count())
}

func TestListComplaintsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "alice", model.RoleStudent)

	rec := env.do(multipartRequest(t, "/api/complaints", complaintFields(student.ID.Hex()), "", nil))
	require.Equal(t, http.StatusCreated, rec.Code)

	listRec := env.do(httptest.NewRequest(http.MethodGet, "/api/data/complaints", nil))
	require.Equal(t, http.StatusOK, listRec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.Len(t, list, 1)

	// The student reference is expanded to a projection.
	studentRef, ok := list[0]["student"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, student.ID.Hex(), studentRef["id"])
	assert.Equal(t, "alice", studentRef["username"])
	assert.Equal(t, "student", studentRef["role"])
}

func TestComplaintLifecycle(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "alice", model.RoleStudent)

	rec := env.do(multipartRequest(t, "/api/complaints", complaintFields(student.ID.Hex()), "", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decodeBody(t, rec)["id"].(string)
	require.NotEmpty(t, id)

	// Fresh reports start pending.
	getRec := env.do(httptest.NewRequest(http.MethodGet, "/api/complaints/"+id, nil))
	require.Equal(t, http.StatusOK, getRec.Code)
	assert.Equal(t, "pending", decodeBody(t, getRec)["status"])

	patchRec := env.doJSON(t, http.MethodPatch, "/api/data/complaints/"+id+"/status",
		map[string]string{"status": "resolved"})
	require.Equal(t, http.StatusOK, patchRec.Code)
	assert.Equal(t, "resolved", decodeBody(t, patchRec)["status"])

	// A later read observes the transition.
	getRec = env.do(httptest.NewRequest(http.MethodGet, "/api/complaints/"+id, nil))
	require.Equal(t, http.StatusOK, getRec.Code)
	assert.Equal(t, "resolved", decodeBody(t, getRec)["status"])
}

func TestUpdateComplaintStatusEndpoint_InvalidValue(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "alice", model.RoleStudent)

	rec := env.do(multipartRequest(t, "/api/complaints", complaintFields(student.ID.Hex()), "", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decodeBody(t, rec)["id"].(string)

	patchRec := env.doJSON(t, http.MethodPatch, "/api/data/complaints/"+id+"/status",
		map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, patchRec.Code)
	assert.Equal(t, "Invalid status value", decodeBody(t, patchRec)["error"])

	// The document keeps its prior status.
	getRec := env.do(httptest.NewRequest(http.MethodGet, "/api/complaints/"+id, nil))
	assert.Equal(t, "pending", decodeBody(t, getRec)["status"])
}

func TestUpdateComplaintStatusEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPatch,
		"/api/data/complaints/64f1a2b3c4d5e6f7a8b9c0d1/status",
		map[string]string{"status": "reviewed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Complaint not found", decodeBody(t, rec)["error"])
}

func TestGetComplaintEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/api/complaints/64f1a2b3c4d5e6f7a8b9c0d1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Complaint not found", decodeBody(t, rec)["error"])
}

func TestDeleteComplaintEndpoint(t *testing.T) {
	env := newTestEnv(t)
	student := env.seedUser(t, "alice", model.RoleStudent)

	rec := env.do(multipartRequest(t, "/api/complaints", complaintFields(student.ID.Hex()), "", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	id, _ := decodeBody(t, rec)["id"].(string)

	delRec := env.do(httptest.NewRequest(http.MethodDelete, "/api/delete/complaint/"+id, nil))
	require.Equal(t, http.StatusOK, delRec.Code)

	body := decodeBody(t, delRec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Complaint deleted successfully", body["message"])

	deleted, ok := body["deletedComplaint"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, id, deleted["id"])

	assert.Equal(t, 0, env.complaints.Count())
}

func TestDeleteComplaintEndpoint_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(httptest.NewRequest(http.MethodDelete,
		"/api/delete/complaint/64f1a2b3c4d5e6f7a8b9c0d1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Complaint not found", body["message"])
}
