package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minhphat/retail-crm-go/internal/domain"
	"github.com/minhphat/retail-crm-go/internal/infra/kv"
	"github.com/minhphat/retail-crm-go/internal/infra/observability"
	"github.com/minhphat/retail-crm-go/internal/infra/storage"
	"github.com/minhphat/retail-crm-go/internal/service"

	"go.uber.org/zap"
)

func newCustomersService(t *testing.T, seed []domain.Customer) *service.Customers {
	t.Helper()
	mem := kv.NewMemory()
	metrics := observability.NewMetrics()
	store := storage.NewCustomers(mem, "", metrics, zap.NewNop())
	if seed != nil {
		store.Save(context.Background(), seed)
	}
	return service.NewCustomers(context.Background(), store, metrics, zap.NewNop())
}

func TestConfirmPhone_CreatesNewCustomer(t *testing.T) {
	svc := newCustomersService(t, nil)

	c, created, err := svc.ConfirmPhone(context.Background(), "090 123 4567")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !created {
		t.Fatal("expected a new customer")
	}
	if c.Phone != "0901234567" {
		t.Errorf("expected normalized phone stored, got %q", c.Phone)
	}
	if c.ID == "" {
		t.Error("expected generated id")
	}
	if c.CreatedAt.IsZero() {
		t.Error("expected creation timestamp")
	}

	sel, ok := svc.Selected()
	if !ok || sel.ID != c.ID {
		t.Error("expected new customer selected")
	}
	if !svc.Editing() {
		t.Error("expected new customer to open in edit state")
	}
}

func TestConfirmPhone_SelectsExisting(t *testing.T) {
	svc := newCustomersService(t, []domain.Customer{
		{ID: "c1", Phone: "0901234567"},
	})

	c, created, err := svc.ConfirmPhone(context.Background(), "(090) 123-4567")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created {
		t.Error("expected existing customer, not a new one")
	}
	if c.ID != "c1" {
		t.Errorf("expected c1 selected, got %q", c.ID)
	}
	if svc.Editing() {
		t.Error("existing customer must not open in edit state")
	}
}

func TestConfirmPhone_DuplicatePhonesFirstMatchWins(t *testing.T) {
	svc := newCustomersService(t, []domain.Customer{
		{ID: "first", Phone: "0901234567"},
		{ID: "second", Phone: "090-123-4567"},
	})

	c, _, err := svc.ConfirmPhone(context.Background(), "0901234567")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if c.ID != "first" {
		t.Errorf("expected first match, got %q", c.ID)
	}
}

func TestConfirmPhone_EmptyPhone(t *testing.T) {
	svc := newCustomersService(t, nil)

	_, _, err := svc.ConfirmPhone(context.Background(), "   abc ")
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGet_DoesNotTouchSelection(t *testing.T) {
	svc := newCustomersService(t, []domain.Customer{
		{ID: "c1", Phone: "0901111111"},
		{ID: "c2", Phone: "0902222222"},
	})

	c, err := svc.Get("c2")
	if err != nil || c.ID != "c2" {
		t.Fatalf("expected c2, got %+v err=%v", c, err)
	}
	if _, ok := svc.Selected(); ok {
		t.Error("expected lookup to leave nothing selected")
	}

	_, err = svc.Get("missing")
	var notFound *domain.ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSaveCustomer_PreservesIdentityAndHistory(t *testing.T) {
	created := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local)
	svc := newCustomersService(t, []domain.Customer{{
		ID:        "c1",
		Phone:     "0901234567",
		CreatedAt: created,
		Purchases: []domain.Purchase{{ID: "p1", Qty: 1}},
	}})

	saved, err := svc.SaveCustomer(context.Background(), domain.Customer{
		ID:    "c1",
		Name:  "Nguyen Van A",
		Phone: "0901234567",
		DOB:   "1990-05-20", // legacy format accepted
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if saved.DOB != "20-05-1990" {
		t.Errorf("expected dob normalized, got %q", saved.DOB)
	}
	if !saved.CreatedAt.Equal(created) {
		t.Error("expected creation timestamp preserved")
	}
	if len(saved.Purchases) != 1 {
		t.Error("expected purchase history preserved")
	}
}

func TestSaveCustomer_InvalidDOB(t *testing.T) {
	svc := newCustomersService(t, []domain.Customer{{ID: "c1", Phone: "0901234567"}})

	_, err := svc.SaveCustomer(context.Background(), domain.Customer{
		ID:    "c1",
		Phone: "0901234567",
		DOB:   "31-02-2024",
	})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewPurchaseDraft_RequiresSelection(t *testing.T) {
	svc := newCustomersService(t, []domain.Customer{{ID: "c1", Phone: "0901234567"}})

	_, err := svc.NewPurchaseDraft(context.Background())
	var noSel *domain.ErrNoCustomerSelected
	if !errors.As(err, &noSel) {
		t.Fatalf("expected no-selection error, got %v", err)
	}

	if _, err := svc.Select("c1"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	draft, err := svc.NewPurchaseDraft(context.Background())
	if err != nil {
		t.Fatalf("expected draft, got %v", err)
	}
	if draft.ID == "" || draft.Qty != 1 {
		t.Errorf("expected fresh draft with qty 1, got %+v", draft)
	}
}

func TestSavePurchase_ClampsAndPrepends(t *testing.T) {
	svc := newCustomersService(t, []domain.Customer{{
		ID:        "c1",
		Phone:     "0901234567",
		Purchases: []domain.Purchase{{ID: "old"}},
	}})

	c, err := svc.SavePurchase(context.Background(), "c1", domain.Purchase{
		ProductName: "TV",
		Qty:         -3,
		UnitPrice:   -100,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(c.Purchases) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(c.Purchases))
	}
	newest := c.Purchases[0]
	if newest.ProductName != "TV" {
		t.Error("expected new purchase prepended")
	}
	if newest.Qty != 1 {
		t.Errorf("expected qty clamped to 1, got %d", newest.Qty)
	}
	if newest.UnitPrice != 0 {
		t.Errorf("expected price clamped to 0, got %f", newest.UnitPrice)
	}
	if newest.ID == "" || newest.Date.IsZero() {
		t.Error("expected generated id and date")
	}
}

func TestSavePurchase_ReplacesInPlace(t *testing.T) {
	svc := newCustomersService(t, []domain.Customer{{
		ID:    "c1",
		Phone: "0901234567",
		Purchases: []domain.Purchase{
			{ID: "p1", ProductName: "A"},
			{ID: "p2", ProductName: "B"},
		},
	}})

	c, err := svc.SavePurchase(context.Background(), "c1", domain.Purchase{
		ID:          "p2",
		ProductName: "B edited",
		Qty:         2,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(c.Purchases) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(c.Purchases))
	}
	if c.Purchases[1].ProductName != "B edited" {
		t.Errorf("expected p2 replaced in place, got %+v", c.Purchases)
	}
}

func TestDeletePurchase_RequiresConfirmation(t *testing.T) {
	svc := newCustomersService(t, []domain.Customer{{
		ID:        "c1",
		Phone:     "0901234567",
		Purchases: []domain.Purchase{{ID: "p1"}},
	}})

	_, err := svc.DeletePurchase(context.Background(), "c1", "p1", false)
	var needsConfirm *domain.ErrConfirmationRequired
	if !errors.As(err, &needsConfirm) {
		t.Fatalf("expected confirmation-required error, got %v", err)
	}

	c, err := svc.DeletePurchase(context.Background(), "c1", "p1", true)
	if err != nil {
		t.Fatalf("expected deletion, got %v", err)
	}
	if len(c.Purchases) != 0 {
		t.Errorf("expected purchase removed, got %+v", c.Purchases)
	}
}

func TestRemoveCustomer(t *testing.T) {
	svc := newCustomersService(t, []domain.Customer{{ID: "c1", Phone: "0901234567"}})

	if err := svc.RemoveCustomer(context.Background(), "c1", false); err == nil {
		t.Fatal("expected confirmation-required error")
	}
	if err := svc.RemoveCustomer(context.Background(), "c1", true); err != nil {
		t.Fatalf("expected removal, got %v", err)
	}
	if len(svc.All()) != 0 {
		t.Error("expected empty collection")
	}
	if _, ok := svc.Selected(); ok {
		t.Error("expected selection cleared")
	}
}

func TestSuggest(t *testing.T) {
	seed := []domain.Customer{
		{ID: "c1", Phone: "0901111111"},
		{ID: "c2", Phone: "0902222222"},
		{ID: "c3", Phone: "0801234567"},
	}
	svc := newCustomersService(t, seed)

	got := svc.Suggest("090")
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	if got[0].Phone > got[1].Phone {
		t.Error("expected suggestions sorted by phone")
	}

	if got := svc.Suggest("xyz"); len(got) != 0 {
		t.Errorf("expected no suggestions for non-numeric query, got %d", len(got))
	}
}

func TestSuggest_CapsAtEight(t *testing.T) {
	var seed []domain.Customer
	for i := 0; i < 12; i++ {
		seed = append(seed, domain.Customer{
			ID:    string(rune('a' + i)),
			Phone: "090123456" + string(rune('0'+i%10)),
		})
	}
	svc := newCustomersService(t, seed)

	if got := svc.Suggest("090"); len(got) != 8 {
		t.Errorf("expected 8 suggestions, got %d", len(got))
	}
}
