package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Pickme/api/bracket"
	"Pickme/api/itemsource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCatalog_JSON(t *testing.T) {
	server := setupServer(t)

	body := mustJSON(t, catalogRequest{
		Title: "Ballads",
		Topic: "singer",
		Items: []bracket.Item{
			{Title: "IU - Blueming", MediaLink: "https://www.youtube.com/watch?v=D1PvIWdJ8xo"},
			{Title: "DAY6 - Zombie", MediaLink: "https://www.youtube.com/embed/k8gx-C7GCGU"},
		},
	})
	w := performRequest(server, http.MethodPost, "/api/v1/catalogs", body, withHeader("X-Admin-Key", testAdminKey))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	dto := decodeResponse[CatalogDTO](t, w)
	assert.Equal(t, "Ballads", dto.Title)
	assert.EqualValues(t, 2, dto.ItemCount)
	require.Len(t, dto.Items, 2)
	assert.Equal(t, "D1PvIWdJ8xo", dto.Items[0].VideoID)
	assert.Equal(t, "k8gx-C7GCGU", dto.Items[1].VideoID)
	assert.Equal(t, 1, dto.Items[1].Position)
}

func TestCreateCatalog_LinkList(t *testing.T) {
	server := setupServer(t)

	list := "\"IU - Blueming\",\"https://youtu.be/D1PvIWdJ8xo\"\n\"DAY6 - Zombie\",\"https://youtu.be/k8gx-C7GCGU\"\n"
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/catalogs?title=Links&topic=band", bytes.NewBufferString(list))
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set("X-Admin-Key", testAdminKey)
	w := httptest.NewRecorder()
	server.Router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	dto := decodeResponse[CatalogDTO](t, w)
	assert.Equal(t, "Links", dto.Title)
	assert.Equal(t, "band", dto.Topic)
	require.Len(t, dto.Items, 2)
	assert.Equal(t, "DAY6 - Zombie", dto.Items[1].Title)
}

func TestCreateCatalog_Rejections(t *testing.T) {
	server := setupServer(t)
	valid := mustJSON(t, catalogRequest{Title: "t", Items: []bracket.Item{{Title: "a", MediaLink: "https://youtu.be/a"}}})

	w := performRequest(server, http.MethodPost, "/api/v1/catalogs", valid)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(server, http.MethodPost, "/api/v1/catalogs", valid, withHeader("X-Admin-Key", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(server, http.MethodPost, "/api/v1/catalogs", mustJSON(t, catalogRequest{Title: "no items"}),
		withHeader("X-Admin-Key", testAdminKey))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Required_items")

	w = performRequest(server, http.MethodPost, "/api/v1/catalogs", []byte("{not json"), withHeader("X-Admin-Key", testAdminKey))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Unmarshal_error")

	rec := postLinkList(server, "/api/v1/catalogs?title=x", "\"\",\"https://youtu.be/a\"\n")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid_link_list")

	rec = postLinkList(server, "/api/v1/catalogs?title=x", "\"only title\"\n")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Missing_link")
}

func postLinkList(server *Server, path, list string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(list))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Admin-Key", testAdminKey)
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

type stubResolver struct {
	titles []string
	err    error
}

func (s *stubResolver) Resolve(_ context.Context, title string) (string, error) {
	s.titles = append(s.titles, title)
	if s.err != nil {
		return "", s.err
	}
	return "https://www.youtube.com/watch?v=" + strings.ReplaceAll(title, " ", ""), nil
}

func TestCreateCatalog_TitleOnlyItems(t *testing.T) {
	server := setupServer(t)
	stub := &stubResolver{}
	server.Resolver = stub

	rec := postLinkList(server, "/api/v1/catalogs?title=Lookup", "\"IU Blueming\"\n\"DAY6\",\"https://youtu.be/day6\"\n")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"IU Blueming"}, stub.titles)

	dto := decodeResponse[CatalogDTO](t, rec)
	require.Len(t, dto.Items, 2)
	assert.Equal(t, "IUBlueming", dto.Items[0].VideoID)
	assert.Equal(t, "day6", dto.Items[1].VideoID)

	body := mustJSON(t, catalogRequest{Title: "JSON", Items: []bracket.Item{{Title: "Red Velvet"}}})
	w := performRequest(server, http.MethodPost, "/api/v1/catalogs", body, withHeader("X-Admin-Key", testAdminKey))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "RedVelvet", decodeResponse[CatalogDTO](t, w).Items[0].VideoID)

	server.Resolver = &stubResolver{err: fmt.Errorf("lookup: %w", itemsource.ErrNoVideoFound)}
	rec = postLinkList(server, "/api/v1/catalogs?title=x", "\"nobody\"\n")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "No_video_found")

	server.Resolver = &stubResolver{err: errors.New("quota exceeded")}
	rec = postLinkList(server, "/api/v1/catalogs?title=x", "\"IU\"\n")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestGetCatalogs(t *testing.T) {
	server := setupServer(t)
	seedCatalog(t, server.DB, "A", "B", "C")
	seedCatalog(t, server.DB, "X", "Y")

	w := performRequest(server, http.MethodGet, "/api/v1/catalogs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeResponse[[]CatalogSummaryDTO](t, w)
	require.Len(t, list, 2)
	counts := map[int64]bool{}
	for _, c := range list {
		counts[c.ItemCount] = true
	}
	assert.True(t, counts[3])
	assert.True(t, counts[2])
}

func TestGetCatalog_ByPublicAndNumericID(t *testing.T) {
	server := setupServer(t)
	catalog := seedCatalog(t, server.DB, "A", "B")

	for _, id := range []string{catalog.PublicID.String(), fmt.Sprint(catalog.ID)} {
		w := performRequest(server, http.MethodGet, "/api/v1/catalogs/"+id, nil)
		require.Equal(t, http.StatusOK, w.Code, id)
		dto := decodeResponse[CatalogDTO](t, w)
		assert.Equal(t, catalog.PublicID.String(), dto.ID)
		assert.Len(t, dto.Items, 2)
	}

	w := performRequest(server, http.MethodGet, "/api/v1/catalogs/00000000-0000-0000-0000-000000000000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = performRequest(server, http.MethodGet, "/api/v1/catalogs/not-an-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplaceCatalogItems(t *testing.T) {
	server := setupServer(t)
	catalog := seedCatalog(t, server.DB, "A", "B")
	path := "/api/v1/catalogs/" + catalog.PublicID.String() + "/items"

	body := mustJSON(t, catalogRequest{Items: []bracket.Item{
		{Title: "C", MediaLink: "https://youtu.be/c"},
		{Title: "D", MediaLink: "https://youtu.be/d"},
		{Title: "E", MediaLink: "https://youtu.be/e"},
	}})
	w := performRequest(server, http.MethodPut, path, body, withHeader("X-Admin-Key", testAdminKey))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	dto := decodeResponse[CatalogDTO](t, w)
	require.Len(t, dto.Items, 3)
	assert.Equal(t, "C", dto.Items[0].Title)
	assert.Equal(t, "Pick Me Cup", dto.Title)

	w = performRequest(server, http.MethodPut, path, mustJSON(t, catalogRequest{}), withHeader("X-Admin-Key", testAdminKey))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestDeleteCatalog(t *testing.T) {
	server := setupServer(t)
	catalog := seedCatalog(t, server.DB, "A", "B")
	path := "/api/v1/catalogs/" + catalog.PublicID.String()

	w := performRequest(server, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(server, http.MethodDelete, path, nil, withHeader("X-Admin-Key", testAdminKey))
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(server, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCatalogManagementDisabledWithoutKey(t *testing.T) {
	server := setupServer(t)
	server.Config.AdminKey = ""
	server.initializeRouter()

	w := performRequest(server, http.MethodPost, "/api/v1/catalogs", mustJSON(t, catalogRequest{}), withHeader("X-Admin-Key", ""))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
