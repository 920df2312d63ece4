package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-vault/internal/domain"
	"github.com/go-petr/pet-vault/pkg/futurepkg"
)

// DefaultTimeout bounds every Sync read when no timeout is given.
const DefaultTimeout = 5 * time.Second

// Sync is a blocking adapter for callers without a context.
//
// Reads wait at most the configured timeout. Mutations wait until the economy
// answers, so a returned result always describes what happened to the
// balance. Faults never surface as errors: they are logged and folded into
// the zero answer, and mutations return a failed result wrapping
// domain.ErrUnavailable.
type Sync struct {
	async   *Async
	timeout time.Duration
	logger  zerolog.Logger
}

// NewSync returns a Sync adapter for economy.
func NewSync(economy domain.PlayerEconomy, timeout time.Duration, logger zerolog.Logger) *Sync {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Sync{
		async:   NewAsync(economy),
		timeout: timeout,
		logger:  logger.With().Str("economy", economy.ID()).Logger(),
	}
}

func (s *Sync) economy() domain.PlayerEconomy { return s.async.economy }

// Name returns the economy display name.
func (s *Sync) Name() string { return s.economy().Name() }

// CurrencySingular returns the singular currency name.
func (s *Sync) CurrencySingular() string { return s.economy().CurrencySingular() }

// CurrencyPlural returns the plural currency name.
func (s *Sync) CurrencyPlural() string { return s.economy().CurrencyPlural() }

// FractionalDigits returns the display precision.
func (s *Sync) FractionalDigits() int { return s.economy().FractionalDigits() }

// Format renders amount for display.
func (s *Sync) Format(amount decimal.Decimal) string { return s.economy().Format(amount) }

// CreateAccount returns true if a new account was created.
func (s *Sync) CreateAccount(id uuid.UUID) bool {
	return awaitValue(s, "create account", func(ctx context.Context) *futurepkg.Future[bool] {
		return s.async.CreateAccount(ctx, id)
	})
}

func (s *Sync) HasAccount(id uuid.UUID) bool {
	return awaitValue(s, "has account", func(ctx context.Context) *futurepkg.Future[bool] {
		return s.async.HasAccount(ctx, id)
	})
}

// Balance returns the account balance and false if it could not be read.
func (s *Sync) Balance(id uuid.UUID) (decimal.Decimal, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	balance, err := s.async.Balance(ctx, id).Await(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Str("uuid", id.String()).Msg("balance unavailable")
		return decimal.Zero, false
	}

	return balance, true
}

func (s *Sync) Has(id uuid.UUID, amount decimal.Decimal) bool {
	return awaitValue(s, "has", func(ctx context.Context) *futurepkg.Future[bool] {
		return s.async.Has(ctx, id, amount)
	})
}

func (s *Sync) Deposit(id uuid.UUID, amount decimal.Decimal) domain.TransactionResult {
	return s.awaitResult("deposit", func(ctx context.Context) *futurepkg.Future[domain.TransactionResult] {
		return s.async.Deposit(ctx, id, amount)
	})
}

func (s *Sync) Withdraw(id uuid.UUID, amount decimal.Decimal) domain.TransactionResult {
	return s.awaitResult("withdraw", func(ctx context.Context) *futurepkg.Future[domain.TransactionResult] {
		return s.async.Withdraw(ctx, id, amount)
	})
}

func (s *Sync) SetBalance(id uuid.UUID, amount decimal.Decimal) domain.TransactionResult {
	return s.awaitResult("set balance", func(ctx context.Context) *futurepkg.Future[domain.TransactionResult] {
		return s.async.SetBalance(ctx, id, amount)
	})
}

func (s *Sync) Transfer(from, to uuid.UUID, amount decimal.Decimal) domain.TransactionResult {
	return s.awaitResult("transfer", func(ctx context.Context) *futurepkg.Future[domain.TransactionResult] {
		return s.async.Transfer(ctx, from, to, amount)
	})
}

// Accounts returns every account, or nil if they could not be read.
func (s *Sync) Accounts() []domain.PlayerBalance {
	return awaitValue(s, "accounts", s.async.Accounts)
}

// TopAccounts returns one leaderboard page, or nil if it could not be read.
func (s *Sync) TopAccounts(limit, page int) []domain.PlayerBalance {
	return awaitValue(s, "top accounts", func(ctx context.Context) *futurepkg.Future[[]domain.PlayerBalance] {
		return s.async.TopAccounts(ctx, limit, page)
	})
}

// awaitResult blocks until the mutation resolves. It has no deadline.
func (s *Sync) awaitResult(op string, run func(ctx context.Context) *futurepkg.Future[domain.TransactionResult]) domain.TransactionResult {
	ctx := context.Background()

	result, err := run(ctx).Await(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", op).Msg("economy call failed")
		return domain.Failure(s.economy().ID(), fmt.Errorf("%w: %v", domain.ErrUnavailable, err))
	}

	return result
}

func awaitValue[T any](s *Sync, op string, run func(ctx context.Context) *futurepkg.Future[T]) T {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	value, err := run(ctx).Await(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("operation", op).Msg("economy call failed")

		var zero T
		return zero
	}

	return value
}
