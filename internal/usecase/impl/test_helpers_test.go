package impl

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"atelier/config"
	"atelier/internal/domain/entity"
	domainerrors "atelier/internal/domain/errors"
	"atelier/internal/domain/repository"
)

// requireAppError asserts that err carries the given business error code and
// returns the typed error for further assertions.
func requireAppError(t *testing.T, err error, wantCode string) domainerrors.AppError {
	t.Helper()

	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, wantCode, appErr.ErrorCode())

	return appErr
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Session: &config.SessionConfig{
			TTL:        time.Hour,
			CookieName: "atelier_session",
		},
		Registration: &config.RegistrationConfig{
			AllowedEmailDomains: []string{"example.com", "gmail.com"},
		},
		Orders: &config.OrdersConfig{
			CodeMaxAttempts: 10,
		},
	}

	return cfg
}

// --- In-memory repositories ---
//
// The fakes keep everything in maps so tests can assert on the stored state
// after the usecase returns. They are not safe for concurrent use; tests that
// need concurrency bring their own synchronization.

type fakeUserRepo struct {
	users  map[uint]*entity.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*entity.User{}, nextID: 1}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		clone := *user
		users = append(users, &clone)
	}

	return users, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
	nextID   uint
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.Session{}, nextID: 1}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	session.ID = r.nextID
	r.nextID++
	clone := *session
	r.sessions[session.TokenHash] = &clone

	return nil
}

func (r *fakeSessionRepo) FindByTokenHash(_ context.Context, tokenHash string) (*entity.Session, error) {
	session, ok := r.sessions[tokenHash]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if session.Expired(time.Now()) {
		return nil, repository.ErrSessionExpired
	}
	clone := *session

	return &clone, nil
}

func (r *fakeSessionRepo) DeleteByTokenHash(_ context.Context, tokenHash string) error {
	delete(r.sessions, tokenHash)

	return nil
}

func (r *fakeSessionRepo) DeleteByUserID(_ context.Context, userID uint) error {
	for hash, session := range r.sessions {
		if session.UserID == userID {
			delete(r.sessions, hash)
		}
	}

	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context) error {
	now := time.Now()
	for hash, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, hash)
		}
	}

	return nil
}

type fakeVerificationTokenRepo struct {
	tokens map[uint]*entity.EmailVerificationToken
	nextID uint
}

func newFakeVerificationTokenRepo() *fakeVerificationTokenRepo {
	return &fakeVerificationTokenRepo{tokens: map[uint]*entity.EmailVerificationToken{}, nextID: 1}
}

func (r *fakeVerificationTokenRepo) Create(_ context.Context, token *entity.EmailVerificationToken) error {
	token.ID = r.nextID
	r.nextID++
	clone := *token
	r.tokens[token.ID] = &clone

	return nil
}

func (r *fakeVerificationTokenRepo) FindByToken(_ context.Context, token string) (*entity.EmailVerificationToken, error) {
	for _, record := range r.tokens {
		if record.Token == token {
			clone := *record

			return &clone, nil
		}
	}

	return nil, repository.ErrVerificationTokenNotFound
}

func (r *fakeVerificationTokenRepo) DeleteByUserID(_ context.Context, userID uint) error {
	for id, record := range r.tokens {
		if record.UserID == userID {
			delete(r.tokens, id)
		}
	}

	return nil
}

func (r *fakeVerificationTokenRepo) Delete(_ context.Context, id uint) error {
	delete(r.tokens, id)

	return nil
}

type fakeOrderRepo struct {
	orders map[uint]*entity.Order
	items  map[uint][]*entity.OrderItem
	nextID uint
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders: map[uint]*entity.Order{},
		items:  map[uint][]*entity.OrderItem{},
		nextID: 1,
	}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uint) (*entity.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	clone := *order
	clone.Items = r.items[id]

	return &clone, nil
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uint) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0)
	for id, order := range r.orders {
		if order.UserID == userID {
			clone := *order
			clone.Items = r.items[id]
			orders = append(orders, &clone)
		}
	}

	return orders, nil
}

func (r *fakeOrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0, len(r.orders))
	for id, order := range r.orders {
		clone := *order
		clone.Items = r.items[id]
		orders = append(orders, &clone)
	}

	return orders, nil
}

func (r *fakeOrderRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, order := range r.orders {
		if order.OrderCode == code {
			return true, nil
		}
	}

	return false, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	order.ID = r.nextID
	r.nextID++
	order.CreatedAt = time.Now()
	clone := *order
	clone.Items = nil
	r.orders[order.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) CreateItems(_ context.Context, items []*entity.OrderItem) error {
	for _, item := range items {
		item.ID = r.nextID
		r.nextID++
		clone := *item
		r.items[item.OrderID] = append(r.items[item.OrderID], &clone)
	}

	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	if _, ok := r.orders[order.ID]; !ok {
		return repository.ErrOrderNotFound
	}
	clone := *order
	clone.Items = nil
	r.orders[order.ID] = &clone

	return nil
}

func (r *fakeOrderRepo) DeleteItemsByOrderID(_ context.Context, orderID uint) error {
	delete(r.items, orderID)

	return nil
}

func (r *fakeOrderRepo) DeleteItemsByUserID(_ context.Context, userID uint) error {
	for id, order := range r.orders {
		if order.UserID == userID {
			delete(r.items, id)
		}
	}

	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.orders[id]; !ok {
		return repository.ErrOrderNotFound
	}
	if len(r.items[id]) > 0 {
		// Mirrors the foreign key: the usecase must delete items first.
		return domainerrors.NewDatabaseExecuteError(repository.ErrOrderNotFound, "order still has items")
	}
	delete(r.orders, id)

	return nil
}

func (r *fakeOrderRepo) DeleteByUserID(_ context.Context, userID uint) error {
	for id, order := range r.orders {
		if order.UserID == userID {
			if len(r.items[id]) > 0 {
				return domainerrors.NewDatabaseExecuteError(repository.ErrOrderNotFound, "order still has items")
			}
			delete(r.orders, id)
		}
	}

	return nil
}

type fakeProductRepo struct {
	products map[uint]*entity.Product
	nextID   uint
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint]*entity.Product{}, nextID: 1}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uint) (*entity.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *product

	return &clone, nil
}

func (r *fakeProductRepo) FindBySlug(_ context.Context, slug string) (*entity.Product, error) {
	for _, product := range r.products {
		if product.Slug == slug {
			clone := *product

			return &clone, nil
		}
	}

	return nil, repository.ErrProductNotFound
}

func (r *fakeProductRepo) List(_ context.Context, publishedOnly bool) ([]*entity.Product, error) {
	products := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		if publishedOnly && !product.Published {
			continue
		}
		clone := *product
		products = append(products, &clone)
	}

	return products, nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	product.ID = r.nextID
	r.nextID++
	clone := *product
	r.products[product.ID] = &clone

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	clone := *product
	r.products[product.ID] = &clone

	return nil
}

func (r *fakeProductRepo) UpdateRating(_ context.Context, productID uint, rating float64, numReviews int) error {
	product, ok := r.products[productID]
	if !ok {
		return repository.ErrProductNotFound
	}
	product.Rating = rating
	product.NumReviews = numReviews

	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

type fakeCategoryRepo struct {
	categories map[uint]*entity.Category
	nextID     uint
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uint]*entity.Category{}, nextID: 1}
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uint) (*entity.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	clone := *category

	return &clone, nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	categories := make([]*entity.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		categories = append(categories, &clone)
	}

	return categories, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	category.ID = r.nextID
	r.nextID++
	clone := *category
	r.categories[category.ID] = &clone

	return nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrCategoryNotFound
	}
	clone := *category
	r.categories[category.ID] = &clone

	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(r.categories, id)

	return nil
}

type fakeReviewRepo struct {
	reviews map[uint]*entity.Review
	nextID  uint
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[uint]*entity.Review{}, nextID: 1}
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uint) (*entity.Review, error) {
	review, ok := r.reviews[id]
	if !ok {
		return nil, repository.ErrReviewNotFound
	}
	clone := *review

	return &clone, nil
}

func (r *fakeReviewRepo) FindByProductID(_ context.Context, productID uint) ([]*entity.Review, error) {
	reviews := make([]*entity.Review, 0)
	for _, review := range r.reviews {
		if review.ProductID == productID {
			clone := *review
			reviews = append(reviews, &clone)
		}
	}

	return reviews, nil
}

func (r *fakeReviewRepo) FindByProductAndUser(_ context.Context, productID, userID uint) (*entity.Review, error) {
	for _, review := range r.reviews {
		if review.ProductID == productID && review.UserID == userID {
			clone := *review

			return &clone, nil
		}
	}

	return nil, repository.ErrReviewNotFound
}

func (r *fakeReviewRepo) Create(_ context.Context, review *entity.Review) error {
	review.ID = r.nextID
	r.nextID++
	clone := *review
	r.reviews[review.ID] = &clone

	return nil
}

func (r *fakeReviewRepo) Update(_ context.Context, review *entity.Review) error {
	if _, ok := r.reviews[review.ID]; !ok {
		return repository.ErrReviewNotFound
	}
	clone := *review
	r.reviews[review.ID] = &clone

	return nil
}

func (r *fakeReviewRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.reviews[id]; !ok {
		return repository.ErrReviewNotFound
	}
	delete(r.reviews, id)

	return nil
}

func (r *fakeReviewRepo) DeleteByUserID(_ context.Context, userID uint) ([]uint, error) {
	seen := map[uint]bool{}
	productIDs := make([]uint, 0)
	for id, review := range r.reviews {
		if review.UserID == userID {
			if !seen[review.ProductID] {
				seen[review.ProductID] = true
				productIDs = append(productIDs, review.ProductID)
			}
			delete(r.reviews, id)
		}
	}

	return productIDs, nil
}

type fakeCartRepo struct {
	carts map[uint]*entity.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[uint]*entity.Cart{}}
}

func (r *fakeCartRepo) FindByUserID(_ context.Context, userID uint) (*entity.Cart, error) {
	cart, ok := r.carts[userID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	clone := *cart

	return &clone, nil
}

func (r *fakeCartRepo) Replace(_ context.Context, cart *entity.Cart) error {
	clone := *cart
	clone.UpdatedAt = time.Now()
	r.carts[cart.UserID] = &clone

	return nil
}

func (r *fakeCartRepo) DeleteByUserID(_ context.Context, userID uint) error {
	delete(r.carts, userID)

	return nil
}

type fakeSettingRepo struct {
	settings map[string]*entity.Setting
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{settings: map[string]*entity.Setting{}}
}

func (r *fakeSettingRepo) List(_ context.Context) ([]*entity.Setting, error) {
	settings := make([]*entity.Setting, 0, len(r.settings))
	for _, setting := range r.settings {
		clone := *setting
		settings = append(settings, &clone)
	}

	return settings, nil
}

func (r *fakeSettingRepo) Upsert(_ context.Context, setting *entity.Setting) error {
	clone := *setting
	clone.UpdatedAt = time.Now()
	r.settings[setting.Key] = &clone

	return nil
}

// --- Factory and transaction manager ---

type fakeFactory struct {
	userRepo              *fakeUserRepo
	sessionRepo           *fakeSessionRepo
	verificationTokenRepo *fakeVerificationTokenRepo
	orderRepo             *fakeOrderRepo
	productRepo           *fakeProductRepo
	categoryRepo          *fakeCategoryRepo
	reviewRepo            *fakeReviewRepo
	cartRepo              *fakeCartRepo
	settingRepo           *fakeSettingRepo
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		userRepo:              newFakeUserRepo(),
		sessionRepo:           newFakeSessionRepo(),
		verificationTokenRepo: newFakeVerificationTokenRepo(),
		orderRepo:             newFakeOrderRepo(),
		productRepo:           newFakeProductRepo(),
		categoryRepo:          newFakeCategoryRepo(),
		reviewRepo:            newFakeReviewRepo(),
		cartRepo:              newFakeCartRepo(),
		settingRepo:           newFakeSettingRepo(),
	}
}

func (f *fakeFactory) UserRepo() repository.UserRepository               { return f.userRepo }
func (f *fakeFactory) SessionRepo() repository.SessionRepository         { return f.sessionRepo }
func (f *fakeFactory) VerificationTokenRepo() repository.VerificationTokenRepository {
	return f.verificationTokenRepo
}
func (f *fakeFactory) OrderRepo() repository.OrderRepository       { return f.orderRepo }
func (f *fakeFactory) ProductRepo() repository.ProductRepository   { return f.productRepo }
func (f *fakeFactory) CategoryRepo() repository.CategoryRepository { return f.categoryRepo }
func (f *fakeFactory) ReviewRepo() repository.ReviewRepository     { return f.reviewRepo }
func (f *fakeFactory) CartRepo() repository.CartRepository         { return f.cartRepo }
func (f *fakeFactory) SettingRepo() repository.SettingRepository   { return f.settingRepo }

// fakeTxManager runs the callback against the shared factory. There is no
// rollback: a failed "transaction" may leave partial state, which tests only
// rely on when asserting that everything succeeded.
type fakeTxManager struct {
	factory  *fakeFactory
	executed int
}

func newFakeTxManager(factory *fakeFactory) *fakeTxManager {
	return &fakeTxManager{factory: factory}
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	m.executed++

	return fn(m.factory)
}

// --- Service fakes ---

// fakeHasher is a transparent stand-in for the scrypt hasher: fast, and the
// record format makes assertions trivial.
type fakeHasher struct {
	hashCalls  int
	checkCalls int
	strengthFn func(password string) error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	h.hashCalls++

	return "hashed:" + password, nil
}

func (h *fakeHasher) Check(password, record string) bool {
	h.checkCalls++

	return record == "hashed:"+password
}

func (h *fakeHasher) ValidatePasswordStrength(password string) error {
	if h.strengthFn != nil {
		return h.strengthFn(password)
	}
	if len(password) < 8 {
		return domainerrors.ErrValidationFailed.WithMessage("Password must be at least 8 characters long")
	}

	return nil
}

type fakeTokenService struct {
	counter int
}

func (s *fakeTokenService) Generate() (string, string, error) {
	s.counter++
	token := "token-" + strconv.Itoa(s.counter)

	return token, s.HashToken(token), nil
}

func (s *fakeTokenService) HashToken(token string) string {
	return "hash-" + token
}

type fakeVerificationSource struct {
	counter int
}

func (s *fakeVerificationSource) Generate() (string, error) {
	s.counter++

	return "verify-" + strconv.Itoa(s.counter), nil
}

// stubCodeSource hands out a scripted sequence of codes, cycling the last one
// when the script runs out.
type stubCodeSource struct {
	codes []string
	calls int
}

func (s *stubCodeSource) Next() (string, error) {
	idx := s.calls
	if idx >= len(s.codes) {
		idx = len(s.codes) - 1
	}
	s.calls++

	return s.codes[idx], nil
}
