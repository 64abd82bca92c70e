/*
handlers.go - HTTP API handlers for the split engine

PURPOSE:
  Exposes the expense engine and directory via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Users:
    GET    /api/users                 List all users
    POST   /api/users                 Register user
    GET    /api/users/{id}            Get user details
    GET    /api/users/{id}/balances   Net balances against each counterparty

  Groups:
    GET    /api/groups                List all groups
    POST   /api/groups                Register group
    GET    /api/groups/{id}           Get group details

  Expenses:
    GET    /api/expenses              Expense log
    POST   /api/expenses              Record expense with explicit splits
    POST   /api/expenses/equal        Record equally split expense
    POST   /api/expenses/percentage   Record percentage-split expense

  Settlements:
    GET    /api/settlements           Settlement log
    POST   /api/settlements           Record a repayment

  Ledger:
    GET    /api/ledger                All non-zero pairwise balances

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors (invalid amounts, split mismatch, unknown IDs)
  - 404: Resource not found on GET
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/warp/split-engine/directory"
	"github.com/warp/split-engine/ledger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine    *ledger.ExpenseEngine
	Directory *directory.Service
}

// NewHandler creates a new handler around an engine and its directory.
func NewHandler(engine *ledger.ExpenseEngine, dir *directory.Service) *Handler {
	return &Handler{Engine: engine, Directory: dir}
}

// =============================================================================
// USER HANDLERS
// =============================================================================

// ListUsers returns all registered users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := h.Directory.Users()
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = toUserDTO(u)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateUser registers a new user.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	u := h.Directory.CreateUser(req.Name, req.Email)
	writeJSON(w, http.StatusCreated, toUserDTO(u))
}

// GetUser returns a single user.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	u, found := h.Directory.User(ledger.UserID(id))
	if !found {
		writeError(w, http.StatusNotFound, "User not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(u))
}

// GetUserBalances returns the user's net balance against each counterparty.
func (h *Handler) GetUserBalances(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if _, found := h.Directory.User(ledger.UserID(id)); !found {
		writeError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	balances := h.Engine.NetBalancesFor(ledger.UserID(id))
	writeJSON(w, http.StatusOK, toNetBalanceDTOs(balances))
}

// =============================================================================
// GROUP HANDLERS
// =============================================================================

// ListGroups returns all registered groups.
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups := h.Directory.Groups()
	dtos := make([]GroupDTO, len(groups))
	for i, g := range groups {
		dtos[i] = toGroupDTO(g)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateGroup registers a new group of known users.
func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	members := make([]ledger.UserID, len(req.Members))
	for i, m := range req.Members {
		members[i] = ledger.UserID(m)
	}

	g, err := h.Directory.CreateGroup(req.Name, members)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupDTO(g))
}

// GetGroup returns a single group.
func (h *Handler) GetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	g, found := h.Directory.Group(ledger.GroupID(id))
	if !found {
		writeError(w, http.StatusNotFound, "Group not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toGroupDTO(g))
}

// =============================================================================
// EXPENSE HANDLERS
// =============================================================================

// ListExpenses returns the append-only expense log.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.Engine.Expenses(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list expenses", err)
		return
	}

	dtos := make([]ExpenseDTO, len(expenses))
	for i, exp := range expenses {
		dtos[i] = toExpenseDTO(exp)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateExpense records an expense with explicit splits.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	total, err := ledger.NewMoneyFromString(req.Total)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	splits := make([]ledger.Split, len(req.Splits))
	for i, s := range req.Splits {
		amount, err := ledger.NewMoneyFromString(s.Amount)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		splits[i] = ledger.Split{UserID: ledger.UserID(s.UserID), Amount: amount}
	}

	exp, err := h.Engine.CreateExpense(r.Context(), groupIDPtr(req.GroupID),
		ledger.UserID(req.PayerID), total, req.Note, splits)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(exp))
}

// CreateEqualExpense records an expense split evenly across participants.
func (h *Handler) CreateEqualExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateEqualExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	total, err := ledger.NewMoneyFromString(req.Total)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	participants := make([]ledger.UserID, len(req.Participants))
	for i, p := range req.Participants {
		participants[i] = ledger.UserID(p)
	}

	exp, err := h.Engine.CreateEqualExpense(r.Context(), groupIDPtr(req.GroupID),
		ledger.UserID(req.PayerID), total, req.Note, participants)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(exp))
}

// CreatePercentageExpense records an expense split by percentage shares.
func (h *Handler) CreatePercentageExpense(w http.ResponseWriter, r *http.Request) {
	var req CreatePercentageExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	total, err := ledger.NewMoneyFromString(req.Total)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	shares := make([]ledger.PercentShare, len(req.Shares))
	for i, s := range req.Shares {
		pct, err := decimal.NewFromString(s.Percent)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid percentage", err)
			return
		}
		shares[i] = ledger.PercentShare{UserID: ledger.UserID(s.UserID), Percent: pct}
	}

	exp, err := h.Engine.CreatePercentageExpense(r.Context(), groupIDPtr(req.GroupID),
		ledger.UserID(req.PayerID), total, req.Note, shares)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(exp))
}

// =============================================================================
// SETTLEMENT HANDLERS
// =============================================================================

// ListSettlements returns the append-only settlement log.
func (h *Handler) ListSettlements(w http.ResponseWriter, r *http.Request) {
	settlements, err := h.Engine.Settlements(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settlements", err)
		return
	}

	dtos := make([]SettlementDTO, len(settlements))
	for i, st := range settlements {
		dtos[i] = toSettlementDTO(st)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateSettlement records a repayment from payer to payee.
func (h *Handler) CreateSettlement(w http.ResponseWriter, r *http.Request) {
	var req CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amount, err := ledger.NewMoneyFromString(req.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	st, err := h.Engine.RecordSettlement(r.Context(),
		ledger.UserID(req.PayerID), ledger.UserID(req.PayeeID), amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSettlementDTO(st))
}

// =============================================================================
// LEDGER HANDLERS
// =============================================================================

// ListLedger returns all non-zero pairwise balances.
func (h *Handler) ListLedger(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toLedgerEntryDTOs(h.Engine.LedgerEntries()))
}

// =============================================================================
// HELPERS
// =============================================================================

func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID", err)
		return 0, false
	}
	return id, true
}

func groupIDPtr(id *int64) *ledger.GroupID {
	if id == nil {
		return nil
	}
	g := ledger.GroupID(*id)
	return &g
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps engine validation failures to 400 and everything
// else to 500.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if ledger.IsClientError(err) {
		status = http.StatusBadRequest
	}
	writeError(w, status, err.Error(), nil)
}
