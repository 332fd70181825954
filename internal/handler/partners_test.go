package handler

import (
	"net/http"
	"testing"

	"github.com/scoala-altfel/orar/backend/internal/repository/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePartner(t *testing.T) {
	mem := repotest.NewMemory()
	h := newTestHandler(t, mem, nil)

	rec, payload := doJSON(t, h, http.MethodPost, "/api/partners", map[string]string{"name": "  Muzeul Satului "})
	require.Equal(t, http.StatusCreated, rec.Code)
	partner := payload["partner"].(map[string]any)
	assert.Equal(t, "Muzeul Satului", partner["name"])
	assert.NotEmpty(t, partner["id"])
}

func TestCreatePartnerBlankName(t *testing.T) {
	mem := repotest.NewMemory()
	h := newTestHandler(t, mem, nil)

	for _, body := range []any{map[string]string{"name": ""}, map[string]string{"name": "   "}, map[string]string{}} {
		rec, payload := doJSON(t, h, http.MethodPost, "/api/partners", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, `Câmpul "name" este obligatoriu.`, payload["error"])
	}
	assert.Equal(t, 0, mem.PartnerCount())
	assert.Equal(t, 0, mem.CallCount("CreatePartner"))
}

func TestCreatePartnerDuplicate(t *testing.T) {
	mem := repotest.NewMemory()
	h := newTestHandler(t, mem, nil)

	rec, _ := doJSON(t, h, http.MethodPost, "/api/partners", map[string]string{"name": "Ateneul"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, payload := doJSON(t, h, http.MethodPost, "/api/partners", map[string]string{"name": "Ateneul "})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Acest partener este deja în listă.", payload["error"])
	assert.Equal(t, 1, mem.PartnerCount())
}

func TestGetAllPartnersNormalizes(t *testing.T) {
	mem := repotest.NewMemory()
	h := newTestHandler(t, mem, nil)

	doJSON(t, h, http.MethodPost, "/api/partners", map[string]string{"name": "Teatrul"})
	doJSON(t, h, http.MethodPost, "/api/partners", map[string]string{"name": "Ateneul"})

	rec, payload := doJSON(t, h, http.MethodGet, "/api/partners", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	partners := payload["partners"].([]any)
	require.Len(t, partners, 2)
	assert.Equal(t, "Ateneul", partners[0].(map[string]any)["name"])
	assert.Equal(t, "Teatrul", partners[1].(map[string]any)["name"])
}

func TestDeletePartner(t *testing.T) {
	mem := repotest.NewMemory()
	h := newTestHandler(t, mem, nil)

	rec, payload := doJSON(t, h, http.MethodDelete, "/api/partners", map[string]string{"id": "abc"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"success": true}, payload)

	_, payload = doJSON(t, h, http.MethodPost, "/api/partners", map[string]string{"name": "Ateneul"})
	id := payload["partner"].(map[string]any)["id"].(string)

	rec, _ = doJSON(t, h, http.MethodDelete, "/api/partners", map[string]string{"id": id})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, mem.PartnerCount())

	rec, payload = doJSON(t, h, http.MethodDelete, "/api/partners", map[string]string{"id": " "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, `Câmpul "id" este obligatoriu.`, payload["error"])
}
