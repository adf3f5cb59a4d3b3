package collections

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/artelaco/catalog-backend/pkg/db/models"
	pkgerrors "github.com/artelaco/catalog-backend/pkg/errors"
	"github.com/artelaco/catalog-backend/pkg/types"
)

type stubCollectionRepo struct {
	collection  *models.Collection
	collections []models.Collection
	products    []models.Product
	err         error
	productsErr error

	created      *models.Collection
	updated      *models.Collection
	deleted      int64
	updateErr    error
	deleteCalled bool
}

func (s *stubCollectionRepo) Create(_ context.Context, collection *models.Collection) error {
	if s.err != nil {
		return s.err
	}
	collection.ID = 4
	collection.CreatedAt = time.Now().UTC()
	collection.UpdatedAt = collection.CreatedAt
	s.created = collection
	return nil
}

func (s *stubCollectionRepo) FindAll(_ context.Context) ([]models.Collection, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.collections, nil
}

func (s *stubCollectionRepo) FindByID(_ context.Context, id int64) (*models.Collection, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.collection == nil || s.collection.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.collection, nil
}

func (s *stubCollectionRepo) FindProducts(_ context.Context, _ int64) ([]models.Product, error) {
	if s.productsErr != nil {
		return nil, s.productsErr
	}
	return s.products, nil
}

func (s *stubCollectionRepo) Update(_ context.Context, collection *models.Collection) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated = collection
	return nil
}

func (s *stubCollectionRepo) DeleteCascade(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleteCalled = true
	s.deleted = id
	return nil
}

func baseCollection() *models.Collection {
	now := time.Now().UTC()
	return &models.Collection{
		ID:        4,
		Name:      "Summer 2026",
		Quantity:  12,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func intPtr(v int) *int { return &v }

func stringPtr(v string) *string { return &v }

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil)
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	repo := &stubCollectionRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateCollectionInput{
		Name:     "  Summer 2026  ",
		Quantity: intPtr(12),
	})
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	if dto.Name != "Summer 2026" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if dto.Quantity != 12 {
		t.Fatalf("expected quantity 12 got %d", dto.Quantity)
	}
	if repo.created == nil {
		t.Fatal("expected collection persisted")
	}
}

func TestServiceCreateDefaultsQuantity(t *testing.T) {
	svc, _ := NewService(&stubCollectionRepo{})

	dto, err := svc.Create(context.Background(), CreateCollectionInput{Name: "Basics"})
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}
	if dto.Quantity != 0 {
		t.Fatalf("expected quantity 0 got %d", dto.Quantity)
	}
}

func TestServiceCreateEmptyName(t *testing.T) {
	repo := &stubCollectionRepo{}
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), CreateCollectionInput{Name: "   "})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("expected no persistence on validation failure")
	}
}

func TestServiceCreateNegativeQuantity(t *testing.T) {
	svc, _ := NewService(&stubCollectionRepo{})

	_, err := svc.Create(context.Background(), CreateCollectionInput{
		Name:     "Basics",
		Quantity: intPtr(-1),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestServiceCreateDuplicateName(t *testing.T) {
	repo := &stubCollectionRepo{
		err: errors.New(`duplicate key value violates unique constraint "collections_name_key"`),
	}
	svc, _ := NewService(repo)

	_, err := svc.Create(context.Background(), CreateCollectionInput{Name: "Summer 2026"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestServiceListSuccess(t *testing.T) {
	repo := &stubCollectionRepo{collections: []models.Collection{*baseCollection()}}
	svc, _ := NewService(repo)

	dtos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list collections: %v", err)
	}
	if len(dtos) != 1 {
		t.Fatalf("expected one collection, got %d", len(dtos))
	}
	if dtos[0].Name != "Summer 2026" {
		t.Fatalf("unexpected name %q", dtos[0].Name)
	}
}

func TestServiceListEmpty(t *testing.T) {
	svc, _ := NewService(&stubCollectionRepo{})

	dtos, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list collections: %v", err)
	}
	if dtos == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(dtos) != 0 {
		t.Fatalf("expected no collections, got %d", len(dtos))
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, _ := NewService(&stubCollectionRepo{})

	_, err := svc.GetByID(context.Background(), 99)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestServiceListProductsEmptyCollection(t *testing.T) {
	repo := &stubCollectionRepo{collection: baseCollection()}
	svc, _ := NewService(repo)

	dtos, err := svc.ListProducts(context.Background(), 4)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if dtos == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(dtos) != 0 {
		t.Fatalf("expected no products, got %d", len(dtos))
	}
}

func TestServiceListProductsMissingCollection(t *testing.T) {
	repo := &stubCollectionRepo{products: []models.Product{{ID: 1}}}
	svc, _ := NewService(repo)

	_, err := svc.ListProducts(context.Background(), 42)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestServiceListProductsSuccess(t *testing.T) {
	repo := &stubCollectionRepo{
		collection: baseCollection(),
		products: []models.Product{{
			ID:           1,
			Name:         "Linen Shirt",
			Price:        decimal.RequireFromString("39.00"),
			Color:        types.ColorList{"white"},
			Category:     "shirts",
			CollectionID: 4,
		}},
	}
	svc, _ := NewService(repo)

	dtos, err := svc.ListProducts(context.Background(), 4)
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(dtos) != 1 {
		t.Fatalf("expected one product, got %d", len(dtos))
	}
	if dtos[0].CollectionID != 4 {
		t.Fatalf("expected collection id 4 got %d", dtos[0].CollectionID)
	}
}

func TestServiceUpdatePartial(t *testing.T) {
	collection := baseCollection()
	repo := &stubCollectionRepo{collection: collection}
	svc, _ := NewService(repo)

	dto, err := svc.Update(context.Background(), 4, UpdateCollectionInput{
		Quantity: intPtr(30),
	})
	if err != nil {
		t.Fatalf("update collection: %v", err)
	}
	if dto.Quantity != 30 {
		t.Fatalf("expected quantity 30 got %d", dto.Quantity)
	}
	if dto.Name != "Summer 2026" {
		t.Fatalf("expected untouched name, got %q", dto.Name)
	}
	if repo.updated == nil {
		t.Fatal("expected update persisted")
	}
}

func TestServiceUpdateZeroQuantity(t *testing.T) {
	repo := &stubCollectionRepo{collection: baseCollection()}
	svc, _ := NewService(repo)

	dto, err := svc.Update(context.Background(), 4, UpdateCollectionInput{
		Quantity: intPtr(0),
	})
	if err != nil {
		t.Fatalf("update collection: %v", err)
	}
	if dto.Quantity != 0 {
		t.Fatalf("expected explicit zero quantity, got %d", dto.Quantity)
	}
}

func TestServiceUpdateEmptyName(t *testing.T) {
	svc, _ := NewService(&stubCollectionRepo{collection: baseCollection()})

	_, err := svc.Update(context.Background(), 4, UpdateCollectionInput{
		Name: stringPtr("  "),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestServiceUpdateDuplicateName(t *testing.T) {
	repo := &stubCollectionRepo{
		collection: baseCollection(),
		updateErr:  errors.New(`duplicate key value violates unique constraint "collections_name_key"`),
	}
	svc, _ := NewService(repo)

	_, err := svc.Update(context.Background(), 4, UpdateCollectionInput{
		Name: stringPtr("Winter 2026"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc, _ := NewService(&stubCollectionRepo{})

	_, err := svc.Update(context.Background(), 7, UpdateCollectionInput{
		Name: stringPtr("Winter 2026"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestServiceDeleteReturnsSnapshot(t *testing.T) {
	collection := baseCollection()
	repo := &stubCollectionRepo{collection: collection}
	svc, _ := NewService(repo)

	dto, err := svc.Delete(context.Background(), 4)
	if err != nil {
		t.Fatalf("delete collection: %v", err)
	}
	if dto.ID != 4 || dto.Name != "Summer 2026" {
		t.Fatalf("expected pre-delete snapshot, got %+v", dto)
	}
	if !repo.deleteCalled || repo.deleted != 4 {
		t.Fatalf("expected cascade delete of 4, got %d", repo.deleted)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, _ := NewService(&stubCollectionRepo{})

	_, err := svc.Delete(context.Background(), 99)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}
