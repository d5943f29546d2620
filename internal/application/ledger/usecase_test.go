package ledger_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore simula la transacción de BD: los cambios solo se publican si fn
// retorna nil (commit); con error se descartan (rollback). Así los tests
// verifican la atomicidad del motor sin PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu           sync.RWMutex
	products     map[string]*entity.Product // por id
	transactions []*entity.Transaction
	users        map[string]*entity.UserSummary
}

func (s *fakeStore) clone() *fakeStore {
	c := &fakeStore{
		products:     make(map[string]*entity.Product, len(s.products)),
		transactions: append([]*entity.Transaction(nil), s.transactions...),
		users:        s.users,
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	return c
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	// El lock modela la serialización por fila del FOR UPDATE: dos escrituras
	// concurrentes nunca parten de una cantidad desactualizada.
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	working := r.store.clone()
	if err := fn(&fakeTransactionRepo{store: working}, &fakeProductRepo{store: working}); err != nil {
		return err // rollback: el store original queda intacto
	}
	// commit
	r.store.products = working.products
	r.store.transactions = working.transactions
	return nil
}

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByIDAndCompany(_ context.Context, id, companyID string) (*entity.Product, error) {
	p, ok := r.store.products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id, companyID string) (*entity.Product, error) {
	return r.GetByIDAndCompany(ctx, id, companyID)
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.store.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) UpdateQuantity(_ context.Context, id string, quantity int) error {
	p, ok := r.store.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}

func (r *fakeProductRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.store.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.store.products, id)
	return nil
}

type fakeTransactionRepo struct {
	store *fakeStore
}

func (r *fakeTransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.transactions = append(r.store.transactions, tx)
	return nil
}

func (r *fakeTransactionRepo) detail(tx *entity.Transaction) *entity.TransactionDetail {
	d := &entity.TransactionDetail{Transaction: *tx}
	if u, ok := r.store.users[tx.UserID]; ok {
		d.User = u
	}
	if p, ok := r.store.products[tx.ProductID]; ok {
		d.Product = &entity.ProductSummary{ID: p.ID, Name: p.Name, Category: p.Category}
	}
	return d
}

func (r *fakeTransactionRepo) GetDetail(_ context.Context, id, companyID string) (*entity.TransactionDetail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, tx := range r.store.transactions {
		if tx.ID != id {
			continue
		}
		if p, ok := r.store.products[tx.ProductID]; ok && p.CompanyID != companyID {
			return nil, nil
		}
		return r.detail(tx), nil
	}
	return nil, nil
}

func (r *fakeTransactionRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.TransactionDetail, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.TransactionDetail
	for i := len(r.store.transactions) - 1; i >= 0; i-- {
		tx := r.store.transactions[i]
		if p, ok := r.store.products[tx.ProductID]; ok && p.CompanyID == companyID {
			out = append(out, r.detail(tx))
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) ListByUser(_ context.Context, userID, companyID string) ([]*entity.TransactionDetail, error) {
	all, _ := r.ListByCompany(nil, companyID)
	var out []*entity.TransactionDetail
	for _, d := range all {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepo) ListByProduct(_ context.Context, productID, companyID string) ([]*entity.TransactionDetail, error) {
	all, _ := r.ListByCompany(nil, companyID)
	var out []*entity.TransactionDetail
	for _, d := range all {
		if d.ProductID == productID {
			out = append(out, d)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	companyA = "company-a"
	companyB = "company-b"
	userA    = "user-a"
	prodA    = "prod-a"
)

func newFixture(quantity int) (*ledger.LedgerUseCase, *fakeStore) {
	store := &fakeStore{
		products: map[string]*entity.Product{
			prodA: {ID: prodA, CompanyID: companyA, Name: "Tornillos", Category: "Ferretería", Quantity: quantity},
		},
		users: map[string]*entity.UserSummary{
			userA: {ID: userA, Username: "ana", Role: entity.RoleStaff},
		},
	}
	runner := &fakeTxRunner{store: store}
	uc := ledger.NewLedgerUseCase(runner, &fakeTransactionRepo{store: store})
	return uc, store
}

func authFor(role entity.Role) domain.AuthContext {
	return domain.AuthContext{UserID: userA, CompanyID: companyA, Role: role}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateTransaction
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateTransaction_INSumaStock(t *testing.T) {
	uc, store := newFixture(10)

	out, err := uc.CreateTransaction(context.Background(), authFor(entity.RoleStaff), dto.CreateTransactionRequest{
		ProductID: prodA, Action: entity.ActionIN, Quantity: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, store.products[prodA].Quantity, "IN debe sumar al stock")
	assert.Equal(t, entity.ActionIN, out.Action)
	assert.Equal(t, 5, out.Quantity)
	require.NotNil(t, out.User, "la respuesta debe venir enriquecida con el usuario")
	assert.Equal(t, "ana", out.User.Username)
	require.NotNil(t, out.Product)
	assert.Equal(t, "Tornillos", out.Product.Name)
}

func TestCreateTransaction_OUTRestaStock(t *testing.T) {
	uc, store := newFixture(10)

	_, err := uc.CreateTransaction(context.Background(), authFor(entity.RoleStaff), dto.CreateTransactionRequest{
		ProductID: prodA, Action: entity.ActionOUT, Quantity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, store.products[prodA].Quantity, "OUT debe restar del stock")
}

func TestCreateTransaction_OUTInsuficiente_NoCambiaNada(t *testing.T) {
	uc, store := newFixture(3)

	_, err := uc.CreateTransaction(context.Background(), authFor(entity.RoleStaff), dto.CreateTransactionRequest{
		ProductID: prodA, Action: entity.ActionOUT, Quantity: 5,
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient, "debe reportar stock insuficiente con los montos")
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 5, insufficient.Requested)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.Equal(t, 3, store.products[prodA].Quantity, "el stock no debe cambiar")
	assert.Empty(t, store.transactions, "no debe registrarse ninguna transacción")
}

// Secuencia: con stock 5, OUT 5 deja 0 y un OUT 1 posterior falla sin efectos.
func TestCreateTransaction_VaciarStockYLuegoOUT(t *testing.T) {
	uc, store := newFixture(5)
	ctx := context.Background()
	auth := authFor(entity.RoleStaff)

	_, err := uc.CreateTransaction(ctx, auth, dto.CreateTransactionRequest{
		ProductID: prodA, Action: entity.ActionOUT, Quantity: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, store.products[prodA].Quantity)

	_, err = uc.CreateTransaction(ctx, auth, dto.CreateTransactionRequest{
		ProductID: prodA, Action: entity.ActionOUT, Quantity: 1,
	})
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 0, insufficient.Available)
	assert.Equal(t, 1, insufficient.Requested)

	assert.Equal(t, 0, store.products[prodA].Quantity)
	assert.Len(t, store.transactions, 1, "solo el primer OUT debe quedar registrado")
}

func TestCreateTransaction_ProductoInexistente(t *testing.T) {
	uc, _ := newFixture(10)

	_, err := uc.CreateTransaction(context.Background(), authFor(entity.RoleStaff), dto.CreateTransactionRequest{
		ProductID: "no-existe", Action: entity.ActionIN, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un producto de otra empresa se comporta igual que uno inexistente.
func TestCreateTransaction_ProductoDeOtraEmpresa(t *testing.T) {
	uc, store := newFixture(10)
	auth := domain.AuthContext{UserID: userA, CompanyID: companyB, Role: entity.RoleStaff}

	_, err := uc.CreateTransaction(context.Background(), auth, dto.CreateTransactionRequest{
		ProductID: prodA, Action: entity.ActionIN, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 10, store.products[prodA].Quantity)
}

func TestCreateTransaction_Validaciones(t *testing.T) {
	uc, _ := newFixture(10)
	ctx := context.Background()
	auth := authFor(entity.RoleStaff)

	cases := []dto.CreateTransactionRequest{
		{ProductID: "", Action: entity.ActionIN, Quantity: 1},
		{ProductID: prodA, Action: "TRANSFER", Quantity: 1},
		{ProductID: prodA, Action: entity.ActionIN, Quantity: 0},
		{ProductID: prodA, Action: entity.ActionOUT, Quantity: -3},
	}
	for _, in := range cases {
		_, err := uc.CreateTransaction(ctx, auth, in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "input: %+v", in)
	}
}

// El invariante del ledger: tras cualquier secuencia de movimientos aceptados,
// la cantidad es exactamente la suma de IN menos la suma de OUT.
func TestCreateTransaction_CantidadIgualANetoDelLedger(t *testing.T) {
	uc, store := newFixture(0)
	ctx := context.Background()
	auth := authFor(entity.RoleStaff)

	moves := []struct {
		action   string
		quantity int
	}{
		{entity.ActionIN, 10}, {entity.ActionOUT, 3}, {entity.ActionIN, 7},
		{entity.ActionOUT, 14}, {entity.ActionOUT, 1}, // el OUT 14 queda, el resto del cálculo sigue
	}
	for _, m := range moves {
		_, _ = uc.CreateTransaction(ctx, auth, dto.CreateTransactionRequest{
			ProductID: prodA, Action: m.action, Quantity: m.quantity,
		})
	}

	net := 0
	for _, tx := range store.transactions {
		if tx.Action == entity.ActionIN {
			net += tx.Quantity
		} else {
			net -= tx.Quantity
		}
	}
	assert.Equal(t, net, store.products[prodA].Quantity,
		"la cantidad del producto debe ser el neto IN-OUT del ledger")
}

// N salidas concurrentes de q unidades contra stock Q con N×q > Q: confirman
// exactamente piso(Q/q); el resto recibe stock insuficiente y la cantidad
// final nunca queda negativa.
func TestCreateTransaction_OUTConcurrentes_NuncaNegativo(t *testing.T) {
	const (
		initial  = 10
		writers  = 8
		perWrite = 3 // piso(10/3) = 3 éxitos posibles
	)
	uc, store := newFixture(initial)
	auth := authFor(entity.RoleStaff)

	var wg sync.WaitGroup
	var successes, insufficient int32
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateTransaction(context.Background(), auth, dto.CreateTransactionRequest{
				ProductID: prodA, Action: entity.ActionOUT, Quantity: perWrite,
			})
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case errors.Is(err, domain.ErrInsufficientStock):
				atomic.AddInt32(&insufficient, 1)
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 3, successes, "solo caben piso(Q/q) salidas")
	assert.EqualValues(t, writers-3, insufficient, "las demás deben fallar por stock insuficiente")
	assert.Equal(t, initial-3*perWrite, store.products[prodA].Quantity,
		"la cantidad final es Q menos las salidas confirmadas, nunca negativa")
	assert.Len(t, store.transactions, 3, "solo las salidas confirmadas quedan en el ledger")
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_DeOtraEmpresa_NotFound(t *testing.T) {
	uc, _ := newFixture(10)
	ctx := context.Background()

	out, err := uc.CreateTransaction(ctx, authFor(entity.RoleStaff), dto.CreateTransactionRequest{
		ProductID: prodA, Action: entity.ActionIN, Quantity: 2,
	})
	require.NoError(t, err)

	otra := domain.AuthContext{UserID: userA, CompanyID: companyB, Role: entity.RoleAdmin}
	_, err = uc.GetByID(ctx, otra, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"una transacción de otra empresa debe ser indistinguible de inexistente")
}

func TestListByUser_SoloAdminVeAjenas(t *testing.T) {
	uc, _ := newFixture(10)
	ctx := context.Background()

	_, err := uc.ListByUser(ctx, authFor(entity.RoleStaff), "otro-usuario")
	assert.ErrorIs(t, err, domain.ErrForbidden, "Staff no puede ver transacciones ajenas")

	_, err = uc.ListByUser(ctx, authFor(entity.RoleManager), "otro-usuario")
	assert.ErrorIs(t, err, domain.ErrForbidden, "Manager tampoco")

	_, err = uc.ListByUser(ctx, authFor(entity.RoleAdmin), "otro-usuario")
	assert.NoError(t, err, "Admin sí puede")

	_, err = uc.ListByUser(ctx, authFor(entity.RoleStaff), userA)
	assert.NoError(t, err, "cualquiera puede ver las propias")
}

func TestList_MasRecientesPrimero(t *testing.T) {
	uc, _ := newFixture(100)
	ctx := context.Background()
	auth := authFor(entity.RoleStaff)

	first, err := uc.CreateTransaction(ctx, auth, dto.CreateTransactionRequest{
		ProductID: prodA, Action: entity.ActionIN, Quantity: 1,
	})
	require.NoError(t, err)
	second, err := uc.CreateTransaction(ctx, auth, dto.CreateTransactionRequest{
		ProductID: prodA, Action: entity.ActionOUT, Quantity: 2,
	})
	require.NoError(t, err)

	list, err := uc.List(ctx, auth)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}
