/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

AMOUNTS:
  Monetary values cross the wire as decimal strings ("33.34"), never as
  floats, so currency precision survives serialization.

VALIDATION:
  Validation is done in handlers and the engine, not in DTOs. DTOs are
  pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"sort"
	"time"

	"github.com/warp/split-engine/directory"
	"github.com/warp/split-engine/ledger"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// UserDTO represents a user in API responses.
type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CreateUserRequest is the request to register a user.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GroupDTO represents a group in API responses.
type GroupDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Members   []int64 `json:"members"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// CreateGroupRequest is the request to register a group.
type CreateGroupRequest struct {
	Name    string  `json:"name"`
	Members []int64 `json:"members"`
}

// SplitDTO is one allocation line of an expense.
type SplitDTO struct {
	UserID int64  `json:"user_id"`
	Amount string `json:"amount"`
}

// PercentShareDTO is one percentage allocation of an expense.
type PercentShareDTO struct {
	UserID  int64  `json:"user_id"`
	Percent string `json:"percent"`
}

// CreateExpenseRequest records an expense with explicit splits.
type CreateExpenseRequest struct {
	GroupID *int64     `json:"group_id,omitempty"`
	PayerID int64      `json:"payer_id"`
	Total   string     `json:"total"`
	Note    string     `json:"note,omitempty"`
	Splits  []SplitDTO `json:"splits"`
}

// CreateEqualExpenseRequest records an expense split evenly.
type CreateEqualExpenseRequest struct {
	GroupID      *int64  `json:"group_id,omitempty"`
	PayerID      int64   `json:"payer_id"`
	Total        string  `json:"total"`
	Note         string  `json:"note,omitempty"`
	Participants []int64 `json:"participants"`
}

// CreatePercentageExpenseRequest records an expense split by percentages.
type CreatePercentageExpenseRequest struct {
	GroupID *int64            `json:"group_id,omitempty"`
	PayerID int64             `json:"payer_id"`
	Total   string            `json:"total"`
	Note    string            `json:"note,omitempty"`
	Shares  []PercentShareDTO `json:"shares"`
}

// ExpenseDTO represents a recorded expense.
type ExpenseDTO struct {
	ID        int64      `json:"id"`
	GroupID   *int64     `json:"group_id,omitempty"`
	PayerID   int64      `json:"payer_id"`
	Total     string     `json:"total"`
	Note      string     `json:"note,omitempty"`
	CreatedAt string     `json:"created_at"`
	Splits    []SplitDTO `json:"splits"`
}

// CreateSettlementRequest records a repayment.
type CreateSettlementRequest struct {
	PayerID int64  `json:"payer_id"`
	PayeeID int64  `json:"payee_id"`
	Amount  string `json:"amount"`
}

// SettlementDTO represents a recorded settlement.
type SettlementDTO struct {
	ID        string `json:"id"`
	PayerID   int64  `json:"payer_id"`
	PayeeID   int64  `json:"payee_id"`
	Amount    string `json:"amount"`
	CreatedAt string `json:"created_at"`
}

// NetBalanceDTO is one counterparty line of a user's balance view:
// positive means the counterparty owes the user, negative the reverse.
type NetBalanceDTO struct {
	CounterpartyID int64  `json:"counterparty_id"`
	Amount         string `json:"amount"`
}

// LedgerEntryDTO is one canonical pairwise balance: positive means low is
// owed by high.
type LedgerEntryDTO struct {
	Low    int64  `json:"low"`
	High   int64  `json:"high"`
	Amount string `json:"amount"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toUserDTO(u directory.User) UserDTO {
	return UserDTO{
		ID:        int64(u.ID),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func toGroupDTO(g directory.Group) GroupDTO {
	members := make([]int64, len(g.Members))
	for i, m := range g.Members {
		members[i] = int64(m)
	}
	return GroupDTO{
		ID:        int64(g.ID),
		Name:      g.Name,
		Members:   members,
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
	}
}

func toExpenseDTO(exp ledger.Expense) ExpenseDTO {
	splits := make([]SplitDTO, len(exp.Splits))
	for i, s := range exp.Splits {
		splits[i] = SplitDTO{UserID: int64(s.UserID), Amount: s.Amount.String()}
	}
	dto := ExpenseDTO{
		ID:        int64(exp.ID),
		PayerID:   int64(exp.PayerID),
		Total:     exp.Total.String(),
		Note:      exp.Note,
		CreatedAt: exp.CreatedAt.Format(time.RFC3339),
		Splits:    splits,
	}
	if exp.GroupID != nil {
		g := int64(*exp.GroupID)
		dto.GroupID = &g
	}
	return dto
}

func toSettlementDTO(st ledger.Settlement) SettlementDTO {
	return SettlementDTO{
		ID:        st.ID.String(),
		PayerID:   int64(st.PayerID),
		PayeeID:   int64(st.PayeeID),
		Amount:    st.Amount.String(),
		CreatedAt: st.CreatedAt.Format(time.RFC3339),
	}
}

func toNetBalanceDTOs(balances map[ledger.UserID]ledger.Money) []NetBalanceDTO {
	dtos := make([]NetBalanceDTO, 0, len(balances))
	for counterparty, amount := range balances {
		dtos = append(dtos, NetBalanceDTO{
			CounterpartyID: int64(counterparty),
			Amount:         amount.String(),
		})
	}
	sort.Slice(dtos, func(i, j int) bool { return dtos[i].CounterpartyID < dtos[j].CounterpartyID })
	return dtos
}

func toLedgerEntryDTOs(entries []ledger.Entry) []LedgerEntryDTO {
	dtos := make([]LedgerEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = LedgerEntryDTO{
			Low:    int64(e.Pair.Low),
			High:   int64(e.Pair.High),
			Amount: e.Amount.String(),
		}
	}
	return dtos
}
