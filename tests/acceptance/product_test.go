package acceptance

import (
	"net/http"

	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
)

func (s *Suite) promoteToAdmin(email string) {
	_, err := s.Postgres.DB.Exec(`UPDATE users SET role = 'admin' WHERE email = $1`, email)
	s.Require().NoError(err)
}

func (s *Suite) newAdminClient(email string) *client {
	c := s.newClient()
	s.signupUser(c, email)
	s.promoteToAdmin(email)
	return c
}

func (s *Suite) TestProduct_PublicEndpoints() {
	s.insertProduct("Keyboard", 49.99, "electronics")
	s.insertProduct("Mug", 9.5, "kitchen")

	c := s.newClient()

	resp := c.do(s, http.MethodGet, "/api/product/category/electronics", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var products []domain.Product
	decode(s, resp, &products)
	s.Require().Len(products, 1)
	s.Equal("Keyboard", products[0].Name)

	resp = c.do(s, http.MethodGet, "/api/product/recommended", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	decode(s, resp, &products)
	s.NotEmpty(products)

	resp = c.do(s, http.MethodGet, "/api/product/featured", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	decode(s, resp, &products)
	s.Empty(products)
}

func (s *Suite) TestProduct_AdminOnly() {
	c := s.newClient()
	s.signupUser(c, "customer@example.com")

	resp := c.do(s, http.MethodGet, "/api/product", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestProduct_AdminCreateAndList() {
	admin := s.newAdminClient("admin@example.com")

	createResp := admin.do(s, http.MethodPost, "/api/product", dto.CreateProductRequest{
		Name:        "Monitor",
		Description: "27 inch",
		Price:       201,
		Category:    "electronics",
	})
	s.Require().Equal(http.StatusCreated, createResp.StatusCode)

	var created domain.Product
	decode(s, createResp, &created)
	s.NotEmpty(created.ID)

	listResp := admin.do(s, http.MethodGet, "/api/product", nil)
	s.Require().Equal(http.StatusOK, listResp.StatusCode)

	var products []domain.Product
	decode(s, listResp, &products)
	s.Require().Len(products, 1)
	s.Equal("Monitor", products[0].Name)
}

func (s *Suite) TestProduct_ToggleFeaturedRefreshesCache() {
	admin := s.newAdminClient("admin2@example.com")
	productID := s.insertProduct("Lamp", 25, "home")

	// Prime the cache while nothing is featured.
	c := s.newClient()
	resp := c.do(s, http.MethodGet, "/api/product/featured", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	toggleResp := admin.do(s, http.MethodPatch, "/api/product/"+productID, nil)
	s.Require().Equal(http.StatusOK, toggleResp.StatusCode)

	var toggled domain.Product
	decode(s, toggleResp, &toggled)
	s.True(toggled.IsFeatured)

	// The toggle rewrote the cache, so the list reflects it immediately.
	resp = c.do(s, http.MethodGet, "/api/product/featured", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var featured []domain.Product
	decode(s, resp, &featured)
	s.Require().Len(featured, 1)
	s.Equal(productID, featured[0].ID)
}

func (s *Suite) TestProduct_Delete() {
	admin := s.newAdminClient("admin3@example.com")
	productID := s.insertProduct("Gone", 5, "misc")

	resp := admin.do(s, http.MethodDelete, "/api/product/"+productID, nil)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = admin.do(s, http.MethodDelete, "/api/product/"+productID, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
