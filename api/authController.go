package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/luminawell/luminawell-api/common"
	"github.com/luminawell/luminawell-api/usecase"
)

var errorUnknownRole = common.DetailedError{Status: http.StatusNotFound, Code: "unknown_role", Message: "unknown account role"}

type (
	registerBody struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	loginBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	resetPasswordBody struct {
		Email           string `json:"email"`
		Password        string `json:"password"`
		ConfirmPassword string `json:"confirmPassword"`
	}
)

// accountUseCase resolves the {role} route variable to its usecase.
func (a *API) accountUseCase(res *common.HttpResponseWriter) (*usecase.AccountUseCase, *common.DetailedError) {
	accountUC, ok := a.accounts[res.VARS["role"]]
	if !ok {
		detailed := errorUnknownRole
		return nil, &detailed
	}
	return accountUC, nil
}

// register creates an account for the {role} collection and returns a
// signed token.
func (a *API) register(ctx context.Context, res *common.HttpResponseWriter) error {
	accountUC, detailed := a.accountUseCase(res)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	var body registerBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		detailed := errorInvalidJSON
		detailed.InternalMessage = err.Error()
		return res.WriteError(&detailed)
	}
	result, detailed := accountUC.Register(ctx, body.FullName, body.Email, body.Password)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	res.WriteHeader(201)
	return res.WriteJSON(map[string]interface{}{
		"message": "Registered successfully",
		"account": result,
	})
}

// login verifies the credentials and returns a signed token.
func (a *API) login(ctx context.Context, res *common.HttpResponseWriter) error {
	accountUC, detailed := a.accountUseCase(res)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	var body loginBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		detailed := errorInvalidJSON
		detailed.InternalMessage = err.Error()
		return res.WriteError(&detailed)
	}
	result, detailed := accountUC.Login(ctx, body.Email, body.Password)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	return res.WriteJSON(map[string]interface{}{
		"message": "Login successful",
		"account": result,
	})
}

// resetPassword stores a new password for the account.
func (a *API) resetPassword(ctx context.Context, res *common.HttpResponseWriter) error {
	accountUC, detailed := a.accountUseCase(res)
	if detailed != nil {
		return res.WriteError(detailed)
	}
	var body resetPasswordBody
	if err := json.Unmarshal(res.Body, &body); err != nil {
		detailed := errorInvalidJSON
		detailed.InternalMessage = err.Error()
		return res.WriteError(&detailed)
	}
	if detailed := accountUC.ResetPassword(ctx, body.Email, body.Password, body.ConfirmPassword); detailed != nil {
		return res.WriteError(detailed)
	}
	return res.WriteJSON(map[string]interface{}{
		"message": "Password reset successful",
	})
}
