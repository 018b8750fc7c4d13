package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"treasury-dashboard/internal/dashboard"
	"treasury-dashboard/internal/indexer"
	"treasury-dashboard/internal/view"
)

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, s.svc.Landing(r.Context()))
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := indexer.ProjectQuery{Page: page.Page, Limit: page.Limit, Search: r.URL.Query().Get("search")}
	s.writeView(w, s.svc.Projects(r.Context(), q))
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Project(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeServiceError(w, err, view.ProjectNotFound)
		return
	}
	s.writeView(w, p)
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, s.svc.Milestones(r.Context(), r.PathValue("id")))
}

func (s *Server) handleProjectEvents(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, s.svc.ProjectEvents(r.Context(), r.PathValue("id")))
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := indexer.TransactionQuery{Page: page.Page, Limit: page.Limit, ActionType: r.URL.Query().Get("action_type")}
	s.writeView(w, s.svc.Transactions(r.Context(), q))
}

func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.svc.Transaction(r.Context(), r.PathValue("hash"))
	if err != nil {
		s.writeServiceError(w, err, view.TransactionNotFound)
		return
	}
	s.writeView(w, tx)
}

func (s *Server) handleTreasuryAddresses(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, s.svc.TreasuryAddresses(r.Context()))
}

func (s *Server) handleVendorContracts(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, s.svc.VendorContracts(r.Context()))
}

func (s *Server) handleFundFlows(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeView(w, s.svc.FundFlows(r.Context(), page))
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page, err := parsePage(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	q := indexer.EventQuery{
		Page:      page.Page,
		Limit:     page.Limit,
		Type:      values.Get("type"),
		ProjectID: values.Get("project_id"),
	}
	s.writeView(w, s.svc.Events(r.Context(), q))
}

func (s *Server) handleUtxos(w http.ResponseWriter, r *http.Request) {
	s.writeView(w, s.svc.Utxos(r.Context()))
}

func (s *Server) handleActionTransactions(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := s.svc.ActionTransactions(r.Context(), r.PathValue("action"), page)
	if err != nil {
		s.writeServiceError(w, err, "")
		return
	}
	s.writeView(w, list)
}

// writeView writes a view model, in its legacy form when compat aliases
// are enabled.
func (s *Server) writeView(w http.ResponseWriter, v any) {
	if s.opts.CompatAliases {
		v = view.Alias(v)
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound)
	case errors.Is(err, dashboard.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parsePage reads page and limit. Absent values are zero, which the
// indexer client omits from the upstream request.
func parsePage(values url.Values) (indexer.PageQuery, error) {
	var q indexer.PageQuery
	var err error
	if q.Page, err = positiveInt(values, "page"); err != nil {
		return q, err
	}
	if q.Limit, err = positiveInt(values, "limit"); err != nil {
		return q, err
	}
	return q, nil
}

func positiveInt(values url.Values, key string) (int, error) {
	raw := values.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return n, nil
}
