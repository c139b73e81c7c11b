package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/luminawell/luminawell-api/auth"
	"github.com/luminawell/luminawell-api/common"
	"github.com/luminawell/luminawell-api/schema"
)

// HandlerLoggerFunc expose our httpResponseWriter API
type HandlerLoggerFunc func(context.Context, *common.HttpResponseWriter) error

// accessLevel is the authentication requirement of a route.
type accessLevel int

const (
	accessPublic accessLevel = iota
	accessUser
	accessAdmin
)

var (
	errorNoToken      = common.DetailedError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "this route requires a bearer token"}
	errorInvalidToken = common.DetailedError{Status: http.StatusUnauthorized, Code: "invalid_token", Message: "bearer token is invalid or expired"}
	errorForbidden    = common.DetailedError{Status: http.StatusForbidden, Code: "forbidden", Message: "this route requires an admin token"}
)

// middleware to authenticate and log received requests
func (a *API) middleware(fn HandlerLoggerFunc, access accessLevel) http.HandlerFunc {
	// The mux handler func:
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now().UTC()

		// It is recommended by go to get the request information before writing
		// So get theses now

		logErrors := make([]string, 0, 5)
		logRequest := fmt.Sprintf("%s - %s %s HTTP/%d.%d", r.RemoteAddr, r.Method, r.URL.String(), r.ProtoMajor, r.ProtoMinor)

		traceID := r.Header.Get("x-luminawell-trace-session")
		if !common.IsValidUUID(traceID) {
			// We want a trace id, but for now we do not enforce it
			logErrors = append(logErrors, fmt.Sprintf("no-trace:\"%s\"", traceID))
			traceID = uuid.New().String()
		}

		// Make our context
		ctx := common.TimeItContext(r.Context())

		body, err := io.ReadAll(r.Body)
		if err != nil {
			logErrors = append(logErrors, fmt.Sprintf("erb:\"%s\"", err))
			body = nil
		}

		res := common.HttpResponseWriter{
			Header:     r.Header.Clone(), // Clone the header, to be sure
			URL:        r.URL,
			VARS:       mux.Vars(r),
			TraceID:    traceID,
			Body:       body,
			StatusCode: http.StatusOK, // Default status
			Err:        nil,
		}

		if access != accessPublic {
			a.authenticate(r, access, &res)
		}

		// Mainteners: No read from the request below this point!

		// Make the call to the API function if we can:
		if res.Err == nil {
			err = fn(ctx, &res)
			if err != nil {
				logErrors = append(logErrors, fmt.Sprintf("efn:\"%s\"", err))
			}
		}

		// We will send a JSON, so advertise it for all of our requests
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(res.StatusCode)
		_, err = w.Write([]byte(res.WriteBuffer.String()))
		if err != nil {
			logErrors = append(logErrors, fmt.Sprintf("eww:\"%s\"", err))
		}

		// Log errors management
		if res.Err != nil {
			if res.Err.Code != "" {
				logErrors = append(logErrors, fmt.Sprintf("code:\"%s\"", res.Err.Code))
			}
			if res.Err.InternalMessage != "" {
				logErrors = append(logErrors, fmt.Sprintf("err:\"%s\"", res.Err.InternalMessage))
			}
		}

		// Get the time spent on it
		end := time.Now().UTC()
		dur := end.Sub(start).Milliseconds()
		// Log the message
		var logError string
		if len(logErrors) > 0 {
			logError = fmt.Sprintf("{%s} - ", strings.Join(logErrors, ","))
		}

		timerResults := common.TimeResults(ctx)
		if len(timerResults) > 0 {
			timerResults = fmt.Sprintf("{%s} %d ms", timerResults, dur)
		} else {
			timerResults = fmt.Sprintf("%d ms", dur)
		}
		a.logger.Printf("{%s} %s %d - %s%s - %d bytes", traceID, logRequest, res.StatusCode, logError, timerResults, res.Size)
	}
}

// authenticate resolves the bearer token into the response writer identity.
// A missing token and an invalid one get distinct error codes.
func (a *API) authenticate(r *http.Request, access accessLevel, res *common.HttpResponseWriter) {
	rawToken, err := auth.ExtractToken(r.Header.Get("Authorization"))
	if err != nil {
		detailed := errorNoToken
		detailed.InternalMessage = err.Error()
		res.WriteError(&detailed)
		return
	}
	tokenData, err := a.authClient.VerifyToken(rawToken)
	if err != nil {
		detailed := errorInvalidToken
		detailed.InternalMessage = err.Error()
		res.WriteError(&detailed)
		return
	}
	if access == accessAdmin && tokenData.Role != schema.RoleAdmin {
		detailed := errorForbidden
		res.WriteError(&detailed)
		return
	}
	res.AuthUserID = tokenData.UserID
	res.AuthRole = tokenData.Role
}
