package stockorder_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockorder-sync/internal/application/stockorder"
	"github.com/jhoicas/stockorder-sync/internal/domain"
	"github.com/jhoicas/stockorder-sync/internal/domain/entity"
	"github.com/jhoicas/stockorder-sync/pkg/logger"
)

var fixedNow = func() time.Time { return time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC) }

func saleOrder(id string, skus ...string) *entity.Order {
	o := &entity.Order{ID: id, Kind: entity.OrderKindSale, Name: "S-" + id, State: entity.OrderStateDraft}
	for i, sku := range skus {
		o.Lines = append(o.Lines, entity.OrderLine{
			ID:       id + "-l" + string(rune('1'+i)),
			Product:  &entity.Product{SKU: sku},
			Quantity: decimal.NewFromInt(3),
		})
	}
	return o
}

func newPusher(repo *fakeOrderRepo, client *fakeClient) *stockorder.SaleOrderPusher {
	return stockorder.NewSaleOrderPusher(repo, nil, client, testSettings, logger.Nop(), fixedNow)
}

func TestSaleOrderPusher_ConfirmaYEnviaPorLinea(t *testing.T) {
	repo := newFakeOrderRepo(saleOrder("so-1", "A", "B"))
	client := &fakeClient{submit: func(*entity.StockOrderRequest) (*entity.SubmitResult, error) {
		return &entity.SubmitResult{StatusCode: 201, OrderNo: "IGNORADO"}, nil
	}}

	ok, report, err := newPusher(repo, client).ConfirmAndPush(context.Background(), []string{"so-1"})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{"so-1"}, repo.confirmed)
	assert.Empty(t, client.fetched, "ventas no consulta la cantidad remota")
	require.Len(t, client.submitted, 2)
	assert.Equal(t, "2025-07-15", *client.submitted[0].OrderDate)
	assert.Equal(t, 3, client.submitted[0].StockOrderLines[0].QtyOrdered)
	assert.Equal(t, 3, client.submitted[0].StockOrderLines[0].QtyReceived)

	assert.Equal(t, []string{
		"Stock Order API Success - Status: 201",
		"Stock Order API Success - Status: 201",
	}, repo.annotations["so-1"])
	assert.Empty(t, repo.notes, "ventas nunca escribe el campo de nota")

	s, _, _ := report.Counts()
	assert.Equal(t, 2, s)
}

func TestSaleOrderPusher_FallasPorLinea(t *testing.T) {
	repo := newFakeOrderRepo(saleOrder("so-1", "HTTP", "TIMEOUT", "ERR", "OK"))
	client := &fakeClient{submit: func(req *entity.StockOrderRequest) (*entity.SubmitResult, error) {
		switch req.StockOrderLines[0].ProductCode {
		case "HTTP":
			return nil, &domain.RemoteError{Kind: domain.RemoteHTTPStatus, StatusCode: 400, Body: "bad"}
		case "TIMEOUT":
			return nil, &domain.RemoteError{Kind: domain.RemoteTimeout}
		case "ERR":
			return nil, errors.New("falla rara")
		}
		return &entity.SubmitResult{StatusCode: 200}, nil
	}}

	ok, report, err := newPusher(repo, client).ConfirmAndPush(context.Background(), []string{"so-1"})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{
		"API failed: Status 400, Response: bad",
		"API Timeout",
		"API Error: falla rara",
		"Stock Order API Success - Status: 200",
	}, repo.annotations["so-1"])

	lines := report.Orders[0].Lines
	assert.Equal(t, stockorder.FailureHTTPStatus, lines[0].Failure)
	assert.Equal(t, stockorder.FailureTimeout, lines[1].Failure)
	assert.Equal(t, stockorder.FailureUnexpected, lines[2].Failure)
	assert.Equal(t, stockorder.LineSuccess, lines[3].Status)
}

func TestSaleOrderPusher_CuerpoIlegibleConStatusAceptado_Exito(t *testing.T) {
	repo := newFakeOrderRepo(saleOrder("so-1", "A"))
	client := &fakeClient{submit: func(*entity.StockOrderRequest) (*entity.SubmitResult, error) {
		return &entity.SubmitResult{StatusCode: 200}, &domain.RemoteError{Kind: domain.RemoteParse}
	}}

	_, report, err := newPusher(repo, client).ConfirmAndPush(context.Background(), []string{"so-1"})
	require.NoError(t, err)
	assert.Equal(t, stockorder.LineSuccess, report.Orders[0].Lines[0].Status)
	assert.Equal(t, []string{"Stock Order API Success - Status: 200"}, repo.annotations["so-1"])
}

func TestSaleOrderPusher_ConfirmacionFallida_NoEnvia(t *testing.T) {
	repo := newFakeOrderRepo(saleOrder("so-1", "A"))
	repo.confirmErr = domain.ErrConflict
	client := &fakeClient{}

	ok, report, err := newPusher(repo, client).ConfirmAndPush(context.Background(), []string{"so-1"})
	assert.False(t, ok)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, client.submitted)
}

func TestSaleOrderPusher_LoteConErrorYExito(t *testing.T) {
	repo := newFakeOrderRepo(saleOrder("so-1", "BAD"), saleOrder("so-2", "GOOD"))
	client := &fakeClient{submit: func(req *entity.StockOrderRequest) (*entity.SubmitResult, error) {
		if req.StockOrderLines[0].ProductCode == "BAD" {
			panic("nil map")
		}
		return &entity.SubmitResult{StatusCode: 201, OrderNo: "Z"}, nil
	}}

	ok, _, err := newPusher(repo, client).ConfirmAndPush(context.Background(), []string{"so-1", "so-2"})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{"API Error: panic: nil map"}, repo.annotations["so-1"])
	assert.Equal(t, []string{"Stock Order API Success - Status: 201"}, repo.annotations["so-2"])
	assert.Empty(t, repo.notes)
}

func TestSaleOrderPusher_LoteConOrdenInexistente_NoConfirmaNinguna(t *testing.T) {
	repo := newFakeOrderRepo(saleOrder("so-1", "A"))
	client := &fakeClient{}

	ok, report, err := newPusher(repo, client).ConfirmAndPush(context.Background(), []string{"so-1", "missing"})
	assert.False(t, ok)
	assert.Nil(t, report)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "missing")

	assert.Empty(t, repo.confirmed)
	assert.Equal(t, entity.OrderStateDraft, repo.orders["so-1"].State)
	assert.Empty(t, client.submitted)
	assert.Empty(t, repo.annotations)
}

func TestSaleOrderPusher_LoteConOrdenCancelada_NoConfirmaNinguna(t *testing.T) {
	cancelled := saleOrder("so-2", "B")
	cancelled.State = entity.OrderStateCancelled
	repo := newFakeOrderRepo(saleOrder("so-1", "A"), cancelled)
	client := &fakeClient{}

	ok, _, err := newPusher(repo, client).ConfirmAndPush(context.Background(), []string{"so-1", "so-2"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, repo.confirmed)
	assert.Equal(t, entity.OrderStateDraft, repo.orders["so-1"].State)
	assert.Empty(t, client.submitted)
}

func TestSaleOrderPusher_FallaAlConfirmarDentroDeTx_Revierte(t *testing.T) {
	repo := newFakeOrderRepo(saleOrder("so-1", "A"), saleOrder("so-2", "B"))
	repo.failOn = "so-2"
	tx := &fakeTxRunner{repo: repo}
	client := &fakeClient{}

	p := stockorder.NewSaleOrderPusher(repo, tx, client, testSettings, logger.Nop(), fixedNow)
	ok, _, err := p.ConfirmAndPush(context.Background(), []string{"so-1", "so-2"})
	assert.False(t, ok)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, tx.runs)
	assert.Empty(t, repo.confirmed)
	assert.Equal(t, entity.OrderStateDraft, repo.orders["so-1"].State)
	assert.Empty(t, client.submitted)
}

func TestSaleOrderPusher_ConTx_ConfirmaYEnvia(t *testing.T) {
	repo := newFakeOrderRepo(saleOrder("so-1", "A"), saleOrder("so-2", "B"))
	tx := &fakeTxRunner{repo: repo}
	client := &fakeClient{}

	p := stockorder.NewSaleOrderPusher(repo, tx, client, testSettings, logger.Nop(), fixedNow)
	ok, report, err := p.ConfirmAndPush(context.Background(), []string{"so-1", "so-2"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, tx.runs)
	assert.Equal(t, []string{"so-1", "so-2"}, repo.confirmed)
	assert.Len(t, report.Orders, 2)
	assert.Len(t, client.submitted, 2)
}
