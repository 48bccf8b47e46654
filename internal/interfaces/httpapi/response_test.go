package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/crickhq/fantasy-cricket/internal/domain/team"
	"github.com/crickhq/fantasy-cricket/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"budget exceeded", fmt.Errorf("%w: spent 1040 of 1000", team.ErrBudgetExceeded), http.StatusBadRequest, "budgetExceeded"},
		{"duplicate team", team.ErrDuplicateTeam, http.StatusConflict, "duplicateTeam"},
		{"empty roster", team.ErrEmptyRoster, http.StatusBadRequest, "invalidRoster"},
		{"captain conflict", team.ErrCaptainConflict, http.StatusBadRequest, "invalidRoster"},
		{"invalid input", fmt.Errorf("%w: bad category", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{"not found", fmt.Errorf("%w: player=x", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"dependency down", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mapped := mapError(context.Background(), tc.err)
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("status = %d, want %d", mapped.HTTPStatus, tc.wantStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("reason = %q, want %q", mapped.Reason, tc.wantReason)
			}
		})
	}
}

func TestWriteError_Envelope(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	writeError(context.Background(), recorder, fmt.Errorf("%w: team=missing", usecase.ErrNotFound))

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusNotFound)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Error      *struct {
			Code   int    `json:"code"`
			Status string `json:"status"`
			Errors []struct {
				Domain string `json:"domain"`
				Reason string `json:"reason"`
			} `json:"errors"`
		} `json:"error"`
	}
	if err := jsoniter.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}

	if envelope.APIVersion != googleAPIVersion {
		t.Fatalf("apiVersion = %q", envelope.APIVersion)
	}
	if envelope.Error == nil || envelope.Error.Code != http.StatusNotFound {
		t.Fatalf("unexpected error body: %+v", envelope.Error)
	}
	if envelope.Error.Status != "NOT_FOUND" {
		t.Fatalf("status = %q", envelope.Error.Status)
	}
	if len(envelope.Error.Errors) != 1 || envelope.Error.Errors[0].Domain != errorDomain {
		t.Fatalf("unexpected error items: %+v", envelope.Error.Errors)
	}
}

func TestWriteSuccess_Envelope(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	writeSuccess(context.Background(), recorder, http.StatusCreated, map[string]string{"id": "team-1"})

	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d", recorder.Code)
	}

	var envelope struct {
		APIVersion string            `json:"apiVersion"`
		Data       map[string]string `json:"data"`
	}
	if err := jsoniter.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Data["id"] != "team-1" {
		t.Fatalf("unexpected data: %+v", envelope.Data)
	}
}
