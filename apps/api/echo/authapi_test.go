package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/trezcool/zoezi/core/user"
)

func Test_authApi_login(t *testing.T) {
	env := setupEnv(t)
	createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	createUser(t, env.usrRepo, "Ghost", "ghost", "pwd", nil, false)

	loginBody := func(uname, pwd string) []byte {
		return marchallObj(t, LoginRequest{Username: uname, Password: pwd})
	}

	tests := []httpTest{
		{name: "unknown user", body: loginBody("nobody", "pwd"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"})},
		{name: "wrong password", body: loginBody("jane", "nope"), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"})},
		{name: "deactivated account", body: loginBody("ghost", "pwd"), wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"})},
		{name: "username is case-insensitive", body: loginBody("JANE", "pwd"), wantCode: http.StatusOK},
		{name: "login by email", body: loginBody("jane@test.test", "pwd"), wantCode: http.StatusOK},
		{name: "ok", body: loginBody("jane", "pwd"), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.serve(newRequest(http.MethodPost, "/api/auth/login", tt.body))
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
			}
			if tt.wantCode == http.StatusOK {
				var res LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
					t.Fatalf("decoding body: %v", err)
				}
				if res.Token == "" {
					t.Error("expected a token")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_authApi_register(t *testing.T) {
	env := setupEnv(t)
	createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)

	registerBody := func(nu user.NewUser) []byte { return marchallObj(t, nu) }

	t.Run("ok, learner-only", func(t *testing.T) {
		rec := env.serve(newRequest(http.MethodPost, "/api/auth/register", registerBody(user.NewUser{
			Name:            "Joe",
			Username:        "joe",
			Email:           "joe@test.test",
			Password:        "s3cr3t",
			PasswordConfirm: "s3cr3t",
			Roles:           []string{user.RoleAdminOwner}, // must be ignored
		})))
		if rec.Code != http.StatusCreated {
			t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var usr user.User
		if err := json.Unmarshal(rec.Body.Bytes(), &usr); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if len(usr.Roles) != 1 || usr.Roles[0] != user.RoleLearner {
			t.Errorf("Roles = %v; want [%s]", usr.Roles, user.RoleLearner)
		}
		if !usr.IsActive {
			t.Error("IsActive = false; want true")
		}
		if usr.Level != 1 {
			t.Errorf("Level = %d; want 1", usr.Level)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"username": user.ErrUsernameExists.Error()})}
		rec := env.serve(newRequest(http.MethodPost, "/api/auth/register", registerBody(user.NewUser{
			Name:            "Jane Again",
			Username:        "jane",
			Email:           "jane2@test.test",
			Password:        "s3cr3t",
			PasswordConfirm: "s3cr3t",
		})))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("duplicate email", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"email": user.ErrEmailExists.Error()})}
		rec := env.serve(newRequest(http.MethodPost, "/api/auth/register", registerBody(user.NewUser{
			Name:            "Jane Again",
			Username:        "jane2",
			Email:           "jane@test.test",
			Password:        "s3cr3t",
			PasswordConfirm: "s3cr3t",
		})))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := env.serve(newRequest(http.MethodPost, "/api/auth/register", registerBody(user.NewUser{})))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code = %v; wantCode %v", rec.Code, http.StatusBadRequest)
		}
		var fldErrs map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &fldErrs); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		for _, fld := range []string{"name", "username", "email", "password"} {
			if _, ok := fldErrs[fld]; !ok {
				t.Errorf("expected a field error on %s; got %v", fld, fldErrs)
			}
		}
	})
}

func Test_authApi_refreshToken(t *testing.T) {
	env := setupEnv(t)
	usr := createUser(t, env.usrRepo, "Jane", "jane", "pwd", nil, true)
	token := getToken(t, usr)

	t.Run("auth required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		rec := env.serve(newRequest(http.MethodPost, "/api/auth/token-refresh"))
		checkCodeAndData(t, tt, rec)
	})

	t.Run("ok", func(t *testing.T) {
		rec := env.serve(newAuthRequest(http.MethodPost, "/api/auth/token-refresh", token))
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %v; wantCode %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res TokenRefreshResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if res.Token == "" {
			t.Error("expected a token")
		}
	})
}
