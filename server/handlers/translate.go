// Package handlers provides the HTTP handlers of the translation API.
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dbagentlabs/sqlbridge/pkg/schema"
	"github.com/dbagentlabs/sqlbridge/pkg/translate"
	"github.com/dbagentlabs/sqlbridge/pkg/validate"
	"github.com/dbagentlabs/sqlbridge/server/apierror"
	"github.com/dbagentlabs/sqlbridge/server/types"
)

// TranslateHandler handles translation and validation HTTP requests.
type TranslateHandler struct {
	translator *translate.Translator
	checker    *validate.ExecChecker
	logger     *slog.Logger
}

// NewTranslateHandler creates a new translate handler.
func NewTranslateHandler(translator *translate.Translator, logger *slog.Logger) *TranslateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TranslateHandler{translator: translator, logger: logger}
}

// WithExecChecker enables the advisory dry-run pass on translated queries.
// Dry-run failures are logged, not returned: the translation targets a
// different engine than the dry-run instance, so a rejection is a signal,
// not a verdict.
func (h *TranslateHandler) WithExecChecker(checker *validate.ExecChecker) *TranslateHandler {
	h.checker = checker
	return h
}

// Translate handles POST /v1/translate.
func (h *TranslateHandler) Translate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req types.TranslateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, apierror.NewInvalidRequest("invalid request body"))
		return
	}
	if req.Query == "" {
		sendError(w, apierror.NewInvalidRequest("query is required"))
		return
	}

	sc, diags, apiErr := normalizePayload(req.Schema)
	if apiErr != nil {
		sendError(w, apiErr)
		return
	}
	for _, d := range diags {
		h.logger.Warn("schema statement skipped",
			"requestId", requestID, "reason", d.Reason, "statement", d.Statement)
	}

	translated, err := h.translator.Translate(r.Context(), translate.Request{
		Query:    req.Query,
		Schema:   sc,
		Catalog:  req.Catalog,
		Database: req.Database,
	})
	if err != nil {
		h.logger.Error("translation failed", "requestId", requestID, "error", err)
		sendError(w, apierror.FromError(err))
		return
	}

	if h.checker != nil && sc != nil {
		if err := h.checker.Materialize(r.Context(), sc); err != nil {
			h.logger.Warn("dry-run materialization failed", "requestId", requestID, "error", err)
		} else if err := h.checker.Check(r.Context(), translated); err != nil {
			h.logger.Warn("dry run rejected translated query", "requestId", requestID, "error", err)
		}
	}

	h.logger.Info("translated query", "requestId", requestID,
		"source", string(h.translator.Source), "target", string(h.translator.Target))
	sendJSON(w, http.StatusOK, types.TranslateResponse{
		Success: true,
		Data: &types.TranslateSuccessData{
			RequestID:     requestID,
			Query:         req.Query,
			Translated:    translated,
			SourceDialect: string(h.translator.Source),
			TargetDialect: string(h.translator.Target),
		},
	})
}

// Validate handles POST /v1/validate.
func (h *TranslateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req types.ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, apierror.NewInvalidRequest("invalid request body"))
		return
	}
	if req.Query == "" {
		sendError(w, apierror.NewInvalidRequest("query is required"))
		return
	}

	sc, _, apiErr := normalizePayload(req.Schema)
	if apiErr != nil {
		sendError(w, apiErr)
		return
	}

	outcome := h.translator.Validate(translate.Request{
		Query:    req.Query,
		Schema:   sc,
		Catalog:  req.Catalog,
		Database: req.Database,
	})

	data := &types.ValidateSuccessData{
		RequestID: requestID,
		Valid:     outcome.Valid(),
		Rewritten: outcome.Rewritten,
	}
	if !outcome.Valid() {
		apiErr := apierror.FromOutcome(outcome)
		data.Error = apiErr.Message
		data.Code = apiErr.Code
		data.Category = outcome.Category()
	}
	sendJSON(w, http.StatusOK, types.ValidateResponse{Success: true, Data: data})
}

// NormalizeSchema handles POST /v1/schema/normalize.
func (h *TranslateHandler) NormalizeSchema(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req types.NormalizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, apierror.NewInvalidRequest("invalid request body"))
		return
	}

	sc, diags, apiErr := normalizePayload(&req.Schema)
	if apiErr != nil {
		sendError(w, apiErr)
		return
	}
	if sc == nil {
		sendError(w, apierror.NewInvalidRequest("schema is required"))
		return
	}

	tables := make(map[string]map[string]string, len(sc.Tables))
	for name, cols := range sc.Tables {
		tables[name] = map[string]string(cols)
	}
	entries := make([]types.DiagnosticEntry, 0, len(diags))
	for _, d := range diags {
		entries = append(entries, types.DiagnosticEntry{Statement: d.Statement, Reason: d.Reason})
	}

	sendJSON(w, http.StatusOK, types.NormalizeResponse{
		Success: true,
		Data: &types.NormalizeSuccessData{
			RequestID:   requestID,
			Catalog:     sc.Catalog,
			Database:    sc.Database,
			Tables:      tables,
			Diagnostics: entries,
		},
	})
}

// normalizePayload converts the wire schema payload into the canonical
// schema. A nil payload means no schema-aware validation.
func normalizePayload(p *types.SchemaPayload) (*schema.Schema, []schema.Diagnostic, *apierror.APIError) {
	if p == nil {
		return nil, nil, nil
	}

	src, err := payloadSource(p)
	if err != nil {
		return nil, nil, apierror.NewInvalidRequest(err.Error())
	}

	sc, diags, err := src.Normalize()
	if err != nil {
		return nil, nil, apierror.FromError(err)
	}
	return sc, diags, nil
}

func payloadSource(p *types.SchemaPayload) (schema.Source, error) {
	switch p.Kind {
	case "ddl":
		return schema.Source{Kind: schema.KindDDL, DDL: p.DDL}, nil
	case "canonical":
		sc := &schema.Schema{Tables: make(map[string]schema.Columns, len(p.Canonical))}
		for name, cols := range p.Canonical {
			sc.Tables[name] = schema.Columns(cols)
		}
		return schema.Source{Kind: schema.KindCanonical, Canonical: sc}, nil
	case "tables":
		tables := make([]schema.Table, 0, len(p.Tables))
		for _, t := range p.Tables {
			cols := make([]schema.Column, 0, len(t.Columns))
			for _, c := range t.Columns {
				cols = append(cols, schema.Column{Name: c.Name, Type: c.Type})
			}
			tables = append(tables, schema.Table{Name: t.Name, Columns: cols})
		}
		return schema.Source{Kind: schema.KindTables, Tables: tables}, nil
	case "sample":
		if p.Sample == nil {
			return schema.Source{}, fmt.Errorf("sample payload is required for kind %q", p.Kind)
		}
		return schema.Source{Kind: schema.KindSample, Sample: &schema.Sample{
			TableNames:   p.Sample.TableNames,
			ColumnTables: p.Sample.ColumnTables,
			ColumnNames:  p.Sample.ColumnNames,
			ColumnTypes:  p.Sample.ColumnTypes,
		}}, nil
	}
	return schema.Source{}, fmt.Errorf("unknown schema kind %q", p.Kind)
}

// sendJSON writes a JSON response with the given status.
func sendJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// sendError writes the error response with its mapped HTTP status.
func sendError(w http.ResponseWriter, apiErr *apierror.APIError) {
	sendJSON(w, apierror.HTTPStatus(apiErr.Code), apiErr.ToResponse())
}
