package acceptance

import (
	"net/http"

	"github.com/mshelar/shop-service/internal/dto"
)

func (s *Suite) insertOrder(email string, totalCents int64, sessionID string) {
	_, err := s.Postgres.DB.Exec(
		`INSERT INTO orders (user_id, items, total_amount_cents, stripe_session_id)
		 SELECT id, '[]', $2, $3 FROM users WHERE email = $1`,
		email, totalCents, sessionID,
	)
	s.Require().NoError(err)
}

func (s *Suite) TestAnalytics_RequiresAdmin() {
	c := s.newClient()
	s.signupUser(c, "plain@example.com")

	resp := c.do(s, http.MethodGet, "/api/analytics", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusForbidden, resp.StatusCode)
}

func (s *Suite) TestAnalytics_Overview() {
	admin := s.newAdminClient("analytics@example.com")

	s.insertProduct("Keyboard", 49.99, "electronics")
	s.insertOrder("analytics@example.com", 9998, "cs_ana_1")
	s.insertOrder("analytics@example.com", 950, "cs_ana_2")

	resp := admin.do(s, http.MethodGet, "/api/analytics", nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var analytics dto.AnalyticsResponse
	decode(s, resp, &analytics)

	s.Equal(int64(1), analytics.Analytics.TotalUsers)
	s.Equal(int64(1), analytics.Analytics.TotalProducts)
	s.Equal(int64(2), analytics.Analytics.TotalSales)
	s.InDelta(109.48, analytics.Analytics.TotalSalesAmount, 0.001)

	s.Require().Len(analytics.DailySalesData, 8)
	var sales int64
	for _, p := range analytics.DailySalesData {
		sales += p.Sales
	}
	s.Equal(int64(2), sales)
}
