package acceptance

import (
	"net/http"

	"github.com/mshelar/shop-service/internal/domain"
	"github.com/mshelar/shop-service/internal/dto"
)

func (s *Suite) insertProduct(name string, price float64, category string) string {
	var id string
	err := s.Postgres.DB.QueryRow(
		`INSERT INTO products (name, description, price, image, category)
		 VALUES ($1, '', $2, '', $3) RETURNING id`,
		name, price, category,
	).Scan(&id)
	s.Require().NoError(err)
	return id
}

func (s *Suite) TestCart_AddAndView() {
	c := s.newClient()
	s.signupUser(c, "cart@example.com")

	productID := s.insertProduct("Keyboard", 49.99, "electronics")

	addResp := c.do(s, http.MethodPost, "/api/cart", dto.AddToCartRequest{ProductID: productID})
	s.Require().Equal(http.StatusOK, addResp.StatusCode)

	var items []domain.CartItem
	decode(s, addResp, &items)
	s.Require().Len(items, 1)
	s.Equal(1, items[0].Quantity)

	// Adding the same product again increments the line.
	addResp = c.do(s, http.MethodPost, "/api/cart", dto.AddToCartRequest{ProductID: productID})
	decode(s, addResp, &items)
	s.Require().Len(items, 1)
	s.Equal(2, items[0].Quantity)

	viewResp := c.do(s, http.MethodGet, "/api/cart", nil)
	s.Require().Equal(http.StatusOK, viewResp.StatusCode)

	var view []dto.CartProduct
	decode(s, viewResp, &view)
	s.Require().Len(view, 1)
	s.Equal("Keyboard", view[0].Name)
	s.Equal(2, view[0].Quantity)
}

func (s *Suite) TestCart_UpdateQuantity() {
	c := s.newClient()
	s.signupUser(c, "cartqty@example.com")
	productID := s.insertProduct("Mug", 9.5, "kitchen")

	c.do(s, http.MethodPost, "/api/cart", dto.AddToCartRequest{ProductID: productID}).Body.Close()

	five := 5
	resp := c.do(s, http.MethodPut, "/api/cart/"+productID, dto.UpdateQuantityRequest{Quantity: &five})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var items []domain.CartItem
	decode(s, resp, &items)
	s.Require().Len(items, 1)
	s.Equal(5, items[0].Quantity)

	// Quantity zero removes the line.
	zero := 0
	resp = c.do(s, http.MethodPut, "/api/cart/"+productID, dto.UpdateQuantityRequest{Quantity: &zero})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	decode(s, resp, &items)
	s.Empty(items)
}

func (s *Suite) TestCart_UpdateMissingLine() {
	c := s.newClient()
	s.signupUser(c, "cartmiss@example.com")
	productID := s.insertProduct("Lamp", 25, "home")

	one := 1
	resp := c.do(s, http.MethodPut, "/api/cart/"+productID, dto.UpdateQuantityRequest{Quantity: &one})
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestCart_RemoveAndClear() {
	c := s.newClient()
	s.signupUser(c, "cartrm@example.com")
	p1 := s.insertProduct("Keyboard", 49.99, "electronics")
	p2 := s.insertProduct("Mug", 9.5, "kitchen")

	c.do(s, http.MethodPost, "/api/cart", dto.AddToCartRequest{ProductID: p1}).Body.Close()
	c.do(s, http.MethodPost, "/api/cart", dto.AddToCartRequest{ProductID: p2}).Body.Close()

	resp := c.do(s, http.MethodDelete, "/api/cart/"+p1, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var items []domain.CartItem
	decode(s, resp, &items)
	s.Require().Len(items, 1)
	s.Equal(p2, items[0].ProductID)

	// DELETE without an id clears the whole cart.
	resp = c.do(s, http.MethodDelete, "/api/cart", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	decode(s, resp, &items)
	s.Empty(items)
}

func (s *Suite) TestCart_DeletedProductDroppedFromView() {
	c := s.newClient()
	s.signupUser(c, "cartgone@example.com")
	productID := s.insertProduct("Discontinued", 10, "misc")

	c.do(s, http.MethodPost, "/api/cart", dto.AddToCartRequest{ProductID: productID}).Body.Close()

	_, err := s.Postgres.DB.Exec(`DELETE FROM products WHERE id = $1`, productID)
	s.Require().NoError(err)

	resp := c.do(s, http.MethodGet, "/api/cart", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var view []dto.CartProduct
	decode(s, resp, &view)
	s.Empty(view)
}

func (s *Suite) TestCart_RequiresAuth() {
	c := s.newClient()

	resp := c.do(s, http.MethodGet, "/api/cart", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
