// internal/api/api.go
//
// HTTP surface for the employee gateway.
//
// Context
// -------
// A thin chi router in front of gateway.Gateway:
//
//	POST /employees   – JSON object or form-encoded record → validate → insert
//	GET  /employees   – list EMPLOYEE rows
//	GET  /projects    – list WORKS_ON rows
//
// POST responses always carry a Verdict-shaped body:
//
//	200  {"result":true,"reason":""}             – inserted
//	422  {"result":false,"reason":"ssn is …"}    – validation failed, or a
//	                                               value does not fit its column
//	502  {"result":false,"reason":"…"}           – persistence failed
//
// Database errors are logged, never echoed to the client.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/empgate/internal/company"
	"github.com/yanizio/empgate/internal/employee"
	"github.com/yanizio/empgate/internal/gateway"
)

// MaxBodyBytes caps a posted record.
const MaxBodyBytes = 64 << 10

// Service is the part of *gateway.Gateway the handlers use.
type Service interface {
	Submit(ctx context.Context, rec employee.Record) (employee.Verdict, gateway.Outcome)
	Employees(ctx context.Context) ([]company.Employee, error)
	Projects(ctx context.Context) ([]company.WorksOn, error)
}

var _ Service = (*gateway.Gateway)(nil)

type handler struct {
	svc Service
	log *zap.SugaredLogger
}

// Routes returns the router for svc.
func Routes(svc Service, log *zap.SugaredLogger) chi.Router {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	h := &handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Post("/employees", h.createEmployee)
	r.Get("/employees", h.listEmployees)
	r.Get("/projects", h.listProjects)
	return r
}

/*──────────────────────────── handlers ────────────────────────────────────*/

func (h *handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeRecord(w, r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, employee.Fail("malformed request body"))
		return
	}

	verdict, out := h.svc.Submit(r.Context(), rec)
	switch {
	case !verdict.OK():
		writeJSON(w, http.StatusUnprocessableEntity, verdict)
	case errors.Is(out.Err, gateway.ErrBinding):
		h.log.Debugw("employee does not fit procedure", "err", out.Err)
		writeJSON(w, http.StatusUnprocessableEntity, employee.Fail(bindReason(out.Err)))
	case !out.OK:
		h.log.Errorw("employee insert failed", "err", out.Err)
		writeJSON(w, http.StatusBadGateway, employee.Fail(persistReason(out.Err)))
	default:
		writeJSON(w, http.StatusOK, verdict)
	}
}

func (h *handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Employees(r.Context())
	if err != nil {
		h.log.Errorw("list employees failed", "err", err)
		http.Error(w, "database unavailable", http.StatusBadGateway)
		return
	}
	out := make([]company.View, 0, len(rows))
	for _, e := range rows {
		out = append(out, e.View())
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) listProjects(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Projects(r.Context())
	if err != nil {
		h.log.Errorw("list projects failed", "err", err)
		http.Error(w, "database unavailable", http.StatusBadGateway)
		return
	}
	out := make([]company.AssignmentView, 0, len(rows))
	for _, p := range rows {
		out = append(out, p.View())
	}
	writeJSON(w, http.StatusOK, out)
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// decodeRecord reads a JSON object or a form body into a Record.
func decodeRecord(w http.ResponseWriter, r *http.Request) (employee.Record, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		var m map[string]any
		if err := dec.Decode(&m); err != nil {
			return employee.Record{}, err
		}
		if m == nil {
			return employee.Record{}, errors.New("body is not a JSON object")
		}
		if _, err := dec.Token(); err != io.EOF {
			return employee.Record{}, errors.New("trailing data after JSON object")
		}
		return employee.FromMap(m), nil
	}

	if err := r.ParseForm(); err != nil {
		return employee.Record{}, err
	}
	return employee.FromValues(r.PostForm), nil
}

func bindReason(err error) string {
	var be *gateway.BindError
	if errors.As(err, &be) {
		return be.Param + " does not fit " + be.Decl
	}
	return "the record does not fit the database columns"
}

func persistReason(err error) string {
	switch {
	case errors.Is(err, gateway.ErrConnection):
		return "there was an error connecting to the database"
	case errors.Is(err, gateway.ErrNoRows):
		return "the database did not insert the record"
	default:
		return "the database rejected the record"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
