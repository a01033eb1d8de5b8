package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/banlak-networks/balance-server/internal/config"
	"github.com/banlak-networks/balance-server/internal/storage"
	"github.com/banlak-networks/balance-server/internal/storage/team"
	"github.com/banlak-networks/balance-server/internal/storage/transaction"
)

type mockTeamTable struct {
	mock.Mock
}

func (m *mockTeamTable) FindByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*team.Team)
	return row, args.Error(1)
}

func (m *mockTeamTable) FindByAPIKey(ctx context.Context, apiKey string) (*team.Team, error) {
	args := m.Called(ctx, apiKey)
	row, _ := args.Get(0).(*team.Team)
	return row, args.Error(1)
}

type mockTransactionTable struct {
	mock.Mock
}

func (m *mockTransactionTable) FindByID(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func (m *mockTransactionTable) ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, teamID)
	rows, _ := args.Get(0).([]*transaction.Transaction)
	return rows, args.Error(1)
}

func (m *mockTransactionTable) ClaimPending(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(*transaction.Transaction)
	return row, args.Error(1)
}

func newClaimTestService(t *testing.T) (*TransactionService, *mockTeamTable, *mockTransactionTable) {
	t.Helper()
	mockTeams := new(mockTeamTable)
	mockTransactions := new(mockTransactionTable)
	store := &storage.Storage{Teams: mockTeams, Transactions: mockTransactions}
	env := &config.Config{StoreTimeout: time.Second, ClaimMaxAttempts: 5}
	return NewTransactionService(store, env), mockTeams, mockTransactions
}

func testTeamRow() *team.Team {
	return &team.Team{
		ID:     uuid.Must(uuid.FromString("5371c0d2-34b7-4be5-a291-4a1a51832dcb")),
		Name:   "Alpha",
		APIKey: "tk_abc",
	}
}

func pendingRow(createdAt *time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		ID:               uuid.Must(uuid.NewV4()),
		TransactionID:    "TX-1001",
		TeamID:           testTeamRow().ID,
		CustomerUsername: "somchai99",
		WebsiteID:        uuid.Must(uuid.NewV4()),
		WebsiteName:      "lucky888",
		BankName:         "KBank",
		AccountNumber:    "123-4-56789-0",
		RealName:         "Somchai J.",
		Amount:           decimal.RequireFromString("250.00"),
		BalanceBefore:    decimal.RequireFromString("1000.00"),
		BalanceAfter:     decimal.RequireFromString("1250.00"),
		Status:           transaction.StatusPending,
		Type:             "deposit",
		CreatedAt:        createdAt,
		UpdatedAt:        time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
		CreatedBy:        "importer",
	}
}

func claimedCopy(row *transaction.Transaction) *transaction.Transaction {
	claimed := *row
	claimed.Status = transaction.StatusInProgress
	claimed.UpdatedAt = row.UpdatedAt.Add(time.Minute)
	return &claimed
}

func TestClaimOldestPending_EmptyCredential(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	result, err := svc.ClaimOldestPending(context.Background(), "")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, result)
	mockTeams.AssertNotCalled(t, "FindByAPIKey")
	mockTransactions.AssertNotCalled(t, "ListPendingByTeam")
}

func TestClaimOldestPending_UnknownCredential(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_nope").Return(nil, nil)

	result, err := svc.ClaimOldestPending(context.Background(), "tk_nope")

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, result)
	mockTransactions.AssertNotCalled(t, "ListPendingByTeam")
	mockTransactions.AssertNotCalled(t, "ClaimPending")
}

func TestClaimOldestPending_NoPending(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{}, nil)

	result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Alpha", result.Team.Name)
	assert.Nil(t, result.Transaction, "no pending transaction is a success, not an error")
	mockTransactions.AssertNotCalled(t, "ClaimPending")
}

func TestClaimOldestPending_SelectsOldest(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(5 * time.Second)
	oldest := pendingRow(&t0)
	newer := pendingRow(&t1)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	// The store returns the pending set already ordered oldest first.
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{oldest, newer}, nil)
	mockTransactions.On("ClaimPending", mock.Anything, oldest.ID).
		Return(claimedCopy(oldest), nil)

	result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")

	assert.NoError(t, err)
	assert.NotNil(t, result.Transaction)
	assert.Equal(t, oldest.ID, result.Transaction.ID)
	assert.Equal(t, transaction.StatusInProgress, result.Transaction.Status)
	mockTransactions.AssertNotCalled(t, "ClaimPending", mock.Anything, newer.ID)
}

func TestClaimOldestPending_SequentialCallsDrainFIFO(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(5 * time.Second)
	first := pendingRow(&t0)
	second := pendingRow(&t1)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{first, second}, nil).Once()
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{second}, nil).Once()
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{}, nil).Once()
	mockTransactions.On("ClaimPending", mock.Anything, first.ID).
		Return(claimedCopy(first), nil).Once()
	mockTransactions.On("ClaimPending", mock.Anything, second.ID).
		Return(claimedCopy(second), nil).Once()

	resultOne, err := svc.ClaimOldestPending(context.Background(), "tk_abc")
	assert.NoError(t, err)
	resultTwo, err := svc.ClaimOldestPending(context.Background(), "tk_abc")
	assert.NoError(t, err)
	resultThree, err := svc.ClaimOldestPending(context.Background(), "tk_abc")
	assert.NoError(t, err)

	assert.Equal(t, first.ID, resultOne.Transaction.ID)
	assert.Equal(t, second.ID, resultTwo.Transaction.ID)
	assert.NotEqual(t, resultOne.Transaction.ID, resultTwo.Transaction.ID)
	assert.Nil(t, resultThree.Transaction)
	mockTransactions.AssertExpectations(t)
}

func TestClaimOldestPending_MissingCreatedAtSortsFirst(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	noTimestamp := pendingRow(nil)
	timestamped := pendingRow(&t0)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	// NULLS FIRST ordering puts the timestampless record ahead.
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{noTimestamp, timestamped}, nil)
	mockTransactions.On("ClaimPending", mock.Anything, noTimestamp.ID).
		Return(claimedCopy(noTimestamp), nil)

	result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")

	assert.NoError(t, err)
	assert.Equal(t, noTimestamp.ID, result.Transaction.ID)
	assert.Nil(t, result.Transaction.CreatedAt)
}

func TestClaimOldestPending_SkipsCandidateLostToRace(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Second)
	lost := pendingRow(&t0)
	next := pendingRow(&t1)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{lost, next}, nil)
	// Conditional write misses: another caller claimed it after our read.
	mockTransactions.On("ClaimPending", mock.Anything, lost.ID).Return(nil, nil)
	mockTransactions.On("ClaimPending", mock.Anything, next.ID).
		Return(claimedCopy(next), nil)

	result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")

	assert.NoError(t, err)
	assert.Equal(t, next.ID, result.Transaction.ID)
	mockTransactions.AssertExpectations(t)
}

func TestClaimOldestPending_AllCandidatesLost(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	only := pendingRow(&t0)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{only}, nil)
	mockTransactions.On("ClaimPending", mock.Anything, only.ID).Return(nil, nil)

	result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")

	assert.NoError(t, err)
	assert.Nil(t, result.Transaction, "pending set drained mid-walk reads as empty")
}

func TestClaimOldestPending_ContentionBoundExhausted(t *testing.T) {
	mockTeams := new(mockTeamTable)
	mockTransactions := new(mockTransactionTable)
	store := &storage.Storage{Teams: mockTeams, Transactions: mockTransactions}
	env := &config.Config{StoreTimeout: time.Second, ClaimMaxAttempts: 1}
	svc := NewTransactionService(store, env)

	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Second)
	first := pendingRow(&t0)
	second := pendingRow(&t1)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{first, second}, nil)
	mockTransactions.On("ClaimPending", mock.Anything, first.ID).Return(nil, nil)

	result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")

	assert.ErrorIs(t, err, ErrClaimContention)
	assert.Nil(t, result)
	mockTransactions.AssertNotCalled(t, "ClaimPending", mock.Anything, second.ID)
}

func TestClaimOldestPending_RacingCallersClaimAtMostOnce(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	only := pendingRow(&t0)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{only}, nil)
	// The conditional write lets exactly one caller through.
	mockTransactions.On("ClaimPending", mock.Anything, only.ID).
		Return(claimedCopy(only), nil).Once()
	mockTransactions.On("ClaimPending", mock.Anything, only.ID).Return(nil, nil)

	var wg sync.WaitGroup
	results := make([]*ClaimResult, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")
			assert.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, result := range results {
		if result.Transaction != nil {
			winners++
			assert.Equal(t, only.ID, result.Transaction.ID)
		}
	}
	assert.Equal(t, 1, winners, "exactly one caller may claim the transaction")
}

func TestClaimOldestPending_FieldRoundTrip(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	note := "callback pending"
	row := pendingRow(&t0)
	row.Note = &note

	claimed := claimedCopy(row)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	mockTransactions.On("ListPendingByTeam", mock.Anything, testTeamRow().ID).
		Return([]*transaction.Transaction{row}, nil)
	mockTransactions.On("ClaimPending", mock.Anything, row.ID).Return(claimed, nil)

	result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")
	assert.NoError(t, err)

	tx := result.Transaction
	assert.Equal(t, claimed.ID, tx.ID)
	assert.Equal(t, claimed.TransactionID, tx.TransactionID)
	assert.Equal(t, claimed.CustomerUsername, tx.CustomerUsername)
	assert.Equal(t, claimed.WebsiteID, tx.WebsiteID)
	assert.Equal(t, claimed.WebsiteName, tx.WebsiteName)
	assert.Equal(t, claimed.BankName, tx.BankName)
	assert.Equal(t, claimed.AccountNumber, tx.AccountNumber)
	assert.Equal(t, claimed.RealName, tx.RealName)
	assert.True(t, claimed.Amount.Equal(tx.Amount))
	assert.True(t, claimed.BalanceBefore.Equal(tx.BalanceBefore))
	assert.True(t, claimed.BalanceAfter.Equal(tx.BalanceAfter))
	assert.Equal(t, claimed.Type, tx.Type)
	assert.Equal(t, claimed.Note, tx.Note)
	assert.Equal(t, claimed.CreatedAt, tx.CreatedAt)
	assert.Equal(t, claimed.CreatedBy, tx.CreatedBy)
	// Post-transition values, not the pre-update snapshot.
	assert.Equal(t, transaction.StatusInProgress, tx.Status)
	assert.Equal(t, claimed.UpdatedAt, tx.UpdatedAt)
}

func TestClaimOldestPending_StoreErrorOnList(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	mockTransactions.On("ListPendingByTeam", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Nil(t, result)
}

func TestClaimOldestPending_StoreErrorOnClaim(t *testing.T) {
	svc, mockTeams, mockTransactions := newClaimTestService(t)

	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)
	row := pendingRow(&t0)

	mockTeams.On("FindByAPIKey", mock.Anything, "tk_abc").Return(testTeamRow(), nil)
	mockTransactions.On("ListPendingByTeam", mock.Anything, mock.Anything).
		Return([]*transaction.Transaction{row}, nil)
	mockTransactions.On("ClaimPending", mock.Anything, row.ID).
		Return(nil, errors.New("connection reset"))

	result, err := svc.ClaimOldestPending(context.Background(), "tk_abc")

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Nil(t, result)
}
