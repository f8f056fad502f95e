package acceptance

import (
	"net/http"

	"github.com/mshelar/shop-service/internal/dto"
)

func (s *Suite) signupUser(c *client, email string) dto.UserResponse {
	resp := c.do(s, http.MethodPost, "/api/auth/signup", dto.SignupRequest{
		Name:     "Test User",
		Email:    email,
		Password: "password123",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var user dto.UserResponse
	decode(s, resp, &user)
	return user
}

func (s *Suite) TestSignup_Success() {
	c := s.newClient()

	user := s.signupUser(c, "signup@example.com")
	s.Equal("signup@example.com", user.Email)
	s.NotEmpty(user.ID)
	s.Equal("customer", user.Role)

	// Both session cookies should now be in the jar.
	profileResp := c.do(s, http.MethodGet, "/api/auth/profile", nil)
	s.Equal(http.StatusOK, profileResp.StatusCode)

	var profile dto.UserResponse
	decode(s, profileResp, &profile)
	s.Equal(user.ID, profile.ID)
}

func (s *Suite) TestSignup_DuplicateEmail() {
	c := s.newClient()
	s.signupUser(c, "dup@example.com")

	resp := c.do(s, http.MethodPost, "/api/auth/signup", dto.SignupRequest{
		Name:     "Other",
		Email:    "dup@example.com",
		Password: "password123",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestSignup_InvalidEmail() {
	c := s.newClient()

	resp := c.do(s, http.MethodPost, "/api/auth/signup", dto.SignupRequest{
		Name:     "Test",
		Email:    "not-an-email",
		Password: "password123",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_Success() {
	c := s.newClient()
	s.signupUser(c, "login@example.com")

	fresh := s.newClient()
	resp := fresh.do(s, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	var user dto.UserResponse
	decode(s, resp, &user)
	s.Equal("login@example.com", user.Email)
}

func (s *Suite) TestLogin_WrongPassword() {
	c := s.newClient()
	s.signupUser(c, "login2@example.com")

	resp := c.do(s, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "login2@example.com",
		Password: "wrong-password",
	})
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRefreshAccessToken() {
	c := s.newClient()
	s.signupUser(c, "refresh@example.com")

	resp := c.do(s, http.MethodGet, "/api/auth/access-token", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestSecondLoginInvalidatesFirstSession() {
	first := s.newClient()
	s.signupUser(first, "single@example.com")

	// Logging in from another client replaces the cached refresh token.
	second := s.newClient()
	loginResp := second.do(s, http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "single@example.com",
		Password: "password123",
	})
	loginResp.Body.Close()
	s.Require().Equal(http.StatusCreated, loginResp.StatusCode)

	// The first client's refresh token no longer matches the cache.
	resp := first.do(s, http.MethodGet, "/api/auth/access-token", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)

	fresh := second.do(s, http.MethodGet, "/api/auth/access-token", nil)
	defer fresh.Body.Close()
	s.Equal(http.StatusOK, fresh.StatusCode)
}

func (s *Suite) TestLogout() {
	c := s.newClient()
	s.signupUser(c, "logout@example.com")

	resp := c.do(s, http.MethodPost, "/api/auth/logout", nil)
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	// The session is gone, so rotation must be refused.
	refresh := c.do(s, http.MethodGet, "/api/auth/access-token", nil)
	defer refresh.Body.Close()
	s.Equal(http.StatusBadRequest, refresh.StatusCode)
}

func (s *Suite) TestLogout_NoToken() {
	c := s.newClient()

	resp := c.do(s, http.MethodPost, "/api/auth/logout", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestProfile_Unauthenticated() {
	c := s.newClient()

	resp := c.do(s, http.MethodGet, "/api/auth/profile", nil)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
