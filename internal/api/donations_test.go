package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func donationRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	r := gin.New()
	r.POST("/api/payments/process", ProcessPaymentHandler(db, nil))
	r.POST("/api/checkout", CheckoutHandler(db, nil))
	r.GET("/api/users/:id/donations/summary", DonationSummaryHandler(db, nil))
	r.GET("/api/donations/:id/details", DonationDetailsHandler(db, nil))
	r.DELETE("/api/donations/:id", DeleteDonationHandler(db, nil))
	return r, mock
}

func TestProcessPaymentRequiresDonorInfo(t *testing.T) {
	r, mock := donationRouter(t)

	w := perform(r, http.MethodPost, "/api/payments/process",
		strings.NewReader(`{"amount":100,"paymentMethod":"card"}`), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "nothing may be written for invalid input")
}

func TestProcessPaymentReturnsTransactionID(t *testing.T) {
	r, mock := donationRouter(t)

	mock.ExpectExec("INSERT INTO `donations`").
		WillReturnResult(sqlmock.NewResult(11, 1))

	w := perform(r, http.MethodPost, "/api/payments/process",
		strings.NewReader(`{"amount":100,"paymentMethod":"card","donorInfo":{"firstName":"Asha","email":"asha@example.com"}}`), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success       bool   `json:"success"`
		TransactionID string `json:"transactionId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutEmptyCartWritesNothing(t *testing.T) {
	r, mock := donationRouter(t)

	w := perform(r, http.MethodPost, "/api/checkout",
		strings.NewReader(`{"items":[],"amount":22}`), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No items in cart")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutCreatesDonationAndItems(t *testing.T) {
	r, mock := donationRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `donations`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO `donation_items`").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectCommit()

	w := perform(r, http.MethodPost, "/api/checkout",
		strings.NewReader(`{"items":[{"name":"Book","price":10,"qty":2},{"name":"Pen","price":2,"qty":1}],"amount":22}`), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success       bool       `json:"success"`
		TransactionID string     `json:"transactionId"`
		DonationID    uint       `json:"donationId"`
		Items         []CartItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.TransactionID)
	assert.Equal(t, uint(5), resp.DonationID)
	assert.Len(t, resp.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutItemFailureRollsBackDonation(t *testing.T) {
	r, mock := donationRouter(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `donations`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("INSERT INTO `donation_items`").
		WillReturnError(errors.New("item insert failed"))
	mock.ExpectRollback()

	w := perform(r, http.MethodPost, "/api/checkout",
		strings.NewReader(`{"items":[{"name":"Book","price":10}],"amount":10}`), nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "the donation insert must be rolled back")
}

func TestSummaryTagsRecipient(t *testing.T) {
	r, mock := donationRouter(t)

	rows := sqlmock.NewRows([]string{"id", "transaction_id", "amount", "created_at"}).
		AddRow(2, "tx-2", 50.0, time.Now()).
		AddRow(1, "tx-1", 25.0, time.Now().Add(-time.Hour))
	mock.ExpectQuery("SELECT (.+) FROM `donations`").WillReturnRows(rows)

	w := perform(r, http.MethodGet, "/api/users/3/donations/summary", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Donations []summaryRow `json:"donations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Donations, 2)
	for _, d := range resp.Donations {
		assert.Equal(t, "Kind-Kart", d.DonatedTo)
	}
}

func TestDetailsClassifiesCartDonation(t *testing.T) {
	r, mock := donationRouter(t)

	detailRows := sqlmock.NewRows([]string{
		"id", "transaction_id", "amount", "payment_method", "currency",
		"description", "created_at", "user_name", "user_email",
	}).AddRow(5, "tx-5", 22.0, "card", "INR", "Cart donation", time.Now(), "Asha", "asha@example.com")
	mock.ExpectQuery("SELECT d.id, d.transaction_id").WillReturnRows(detailRows)

	itemRows := sqlmock.NewRows([]string{"id", "donation_id", "user_id", "item_name", "price", "qty", "created_at"}).
		AddRow(1, 5, nil, "Book", 10.0, 2, time.Now()).
		AddRow(2, 5, nil, "Pen", 2.0, 1, time.Now())
	mock.ExpectQuery("SELECT (.+) FROM `donation_items`").WillReturnRows(itemRows)

	w := perform(r, http.MethodGet, "/api/donations/5/details", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Donation donationDetails `json:"donation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Cart Donation", resp.Donation.Type)
	assert.Equal(t, "Asha", resp.Donation.UserName)
	assert.Len(t, resp.Donation.Items, 2)
}

func TestDetailsClassifiesDirectDonation(t *testing.T) {
	r, mock := donationRouter(t)

	detailRows := sqlmock.NewRows([]string{
		"id", "transaction_id", "amount", "payment_method", "currency",
		"description", "created_at", "user_name", "user_email",
	}).AddRow(9, "tx-9", 100.0, "upi", "INR", nil, time.Now(), "Anonymous", nil)
	mock.ExpectQuery("SELECT d.id, d.transaction_id").WillReturnRows(detailRows)
	mock.ExpectQuery("SELECT (.+) FROM `donation_items`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := perform(r, http.MethodGet, "/api/donations/9/details", nil, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Donation donationDetails `json:"donation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Direct Money Donation", resp.Donation.Type)
	assert.Equal(t, "Anonymous", resp.Donation.UserName)
	assert.Empty(t, resp.Donation.Items)
}

func TestDetailsUnknownDonationNotFound(t *testing.T) {
	r, mock := donationRouter(t)

	mock.ExpectQuery("SELECT d.id, d.transaction_id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w := perform(r, http.MethodGet, "/api/donations/999/details", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRemovesItemsThenDonation(t *testing.T) {
	r, mock := donationRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `donations`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "transaction_id", "user_id", "amount", "payment_method"}).
			AddRow(7, "tx-7", 3, 50.0, "card"))
	mock.ExpectExec("DELETE FROM `donation_items`").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `donations`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w := perform(r, http.MethodDelete, "/api/donations/7", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnknownDonationNotFound(t *testing.T) {
	r, mock := donationRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `donations`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	w := perform(r, http.MethodDelete, "/api/donations/999", nil, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet(), "no delete may run for a missing donation")
}
