package acceptance

import (
	"net/http"
	"time"

	"github.com/mshelar/shop-service/internal/dto"
)

func (s *Suite) insertCoupon(email, code string, percentage int, expiresAt time.Time) {
	_, err := s.Postgres.DB.Exec(
		`INSERT INTO coupons (user_id, code, discount_percentage, is_active, expiration_date)
		 SELECT id, $2, $3, TRUE, $4 FROM users WHERE email = $1`,
		email, code, percentage, expiresAt,
	)
	s.Require().NoError(err)
}

func (s *Suite) TestCoupon_GetActive() {
	c := s.newClient()
	s.signupUser(c, "coupon@example.com")
	s.insertCoupon("coupon@example.com", "GIFTAAA1111", 10, time.Now().Add(time.Hour))

	resp := c.do(s, http.MethodGet, "/api/coupons", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var coupon struct {
		Code               string `json:"code"`
		DiscountPercentage int    `json:"discount_percentage"`
		IsActive           bool   `json:"is_active"`
	}
	decode(s, resp, &coupon)
	s.Equal("GIFTAAA1111", coupon.Code)
	s.Equal(10, coupon.DiscountPercentage)
	s.True(coupon.IsActive)
}

func (s *Suite) TestCoupon_NoneActive() {
	c := s.newClient()
	s.signupUser(c, "nocoupon@example.com")

	resp := c.do(s, http.MethodGet, "/api/coupons", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestCoupon_Validate() {
	c := s.newClient()
	s.signupUser(c, "validate@example.com")
	s.insertCoupon("validate@example.com", "GIFTBBB2222", 25, time.Now().Add(time.Hour))

	resp := c.do(s, http.MethodPost, "/api/coupons/validate", dto.ValidateCouponRequest{Code: "GIFTBBB2222"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var valid dto.ValidCouponResponse
	decode(s, resp, &valid)
	s.Equal("GIFTBBB2222", valid.Code)
	s.Equal(25, valid.DiscountPercentage)

	bad := c.do(s, http.MethodPost, "/api/coupons/validate", dto.ValidateCouponRequest{Code: "WRONG"})
	defer bad.Body.Close()
	s.Equal(http.StatusNotFound, bad.StatusCode)
}

func (s *Suite) TestCoupon_ExpiredIsLazilyDeactivated() {
	c := s.newClient()
	s.signupUser(c, "expired@example.com")
	s.insertCoupon("expired@example.com", "GIFTCCC3333", 10, time.Now().Add(-time.Hour))

	// The expired coupon still reads as active until someone validates it.
	resp := c.do(s, http.MethodGet, "/api/coupons", nil)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	validate := c.do(s, http.MethodPost, "/api/coupons/validate", dto.ValidateCouponRequest{Code: "GIFTCCC3333"})
	defer validate.Body.Close()
	s.Equal(http.StatusBadRequest, validate.StatusCode)

	// Validation switched it off for good.
	resp = c.do(s, http.MethodGet, "/api/coupons", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}
