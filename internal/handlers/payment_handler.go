package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sjperalta/tagihwarga-api/internal/billing"
	"github.com/sjperalta/tagihwarga-api/internal/models"
	"github.com/sjperalta/tagihwarga-api/internal/services"
)

// maxPhotoRead caps how much of an uploaded photo is buffered; the service enforces the real limit
const maxPhotoRead = 32 << 20

type PaymentHandler struct {
	paymentService *services.PaymentService
	proofService   *services.ProofService
}

func NewPaymentHandler(paymentService *services.PaymentService, proofService *services.ProofService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, proofService: proofService}
}

// CreatePaymentRequest is sent as JSON or as multipart form fields alongside a "photo" file
type CreatePaymentRequest struct {
	CustomerID  string `json:"customer_id" form:"customer_id" binding:"required"`
	Amount      int    `json:"amount" form:"amount" binding:"required"`
	Period      string `json:"period" form:"period" binding:"required"`
	PaymentDate string `json:"payment_date" form:"payment_date"`
	Notes       string `json:"notes" form:"notes"`
	InsertOnly  bool   `json:"insert_only" form:"insert_only"`
}

// @Summary List Payments
// @Description Payments of a period, or payments received on a date
// @Tags Payments
// @Produce json
// @Param period query string false "Period (YYYY-MM)"
// @Param date query string false "Payment date (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /payments [get]
func (h *PaymentHandler) Index(c *gin.Context) {
	var (
		payments []models.Payment
		err      error
	)
	if date := c.Query("date"); date != "" {
		payments, err = h.paymentService.ListByDate(c.Request.Context(), date)
	} else {
		period, perr := billing.ParsePeriod(c.Query("period"))
		if perr != nil {
			respondError(c, perr)
			return
		}
		payments, err = h.paymentService.ListByPeriod(c.Request.Context(), period)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	total := 0
	for _, p := range payments {
		total += p.Amount
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments, "count": len(payments), "total_amount": total})
}

// @Summary Submit Payment
// @Description Record a payment with an optional proof photo. A payment already recorded for the period is replaced unless insert_only=true.
// @Tags Payments
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Param customer_id formData string true "Customer ID"
// @Param amount formData int true "Amount in rupiah"
// @Param period formData string true "Period (YYYY-MM)"
// @Param payment_date formData string false "Payment date (YYYY-MM-DD), defaults to today"
// @Param notes formData string false "Notes"
// @Param insert_only formData bool false "Fail with 409 instead of replacing an existing payment"
// @Param photo formData file false "Proof photo (JPG/PNG)"
// @Success 201 {object} models.Payment
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 413 {object} map[string]string
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id, amount dan period wajib diisi"})
		return
	}

	in, err := h.submitInput(req)
	if err != nil {
		respondError(c, err)
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if file, header, ferr := c.Request.FormFile("photo"); ferr == nil {
			defer file.Close()
			photo, err := io.ReadAll(io.LimitReader(file, maxPhotoRead))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Foto bukti gagal dibaca"})
				return
			}
			in.Photo = photo
			in.PhotoContentType = header.Header.Get("Content-Type")
		} else if ferr != http.ErrMissingFile {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Foto bukti gagal dibaca"})
			return
		}
	}

	payment, err := h.paymentService.Submit(c.Request.Context(), in)
	if err != nil {
		respondWriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": payment, "message": "Pembayaran tersimpan"})
}

func (h *PaymentHandler) submitInput(req CreatePaymentRequest) (services.SubmitPaymentInput, error) {
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return services.SubmitPaymentInput{}, fmt.Errorf("%w: ID pelanggan tidak valid", services.ErrInvalidInput)
	}
	period, err := billing.ParsePeriod(req.Period)
	if err != nil {
		return services.SubmitPaymentInput{}, err
	}

	in := services.SubmitPaymentInput{
		CustomerID: customerID,
		Amount:     req.Amount,
		Period:     period,
		Notes:      req.Notes,
		InsertOnly: req.InsertOnly,
	}
	if req.PaymentDate != "" {
		paidOn, err := time.Parse(models.DateLayout, req.PaymentDate)
		if err != nil {
			return in, fmt.Errorf("%w: tanggal bayar harus berformat YYYY-MM-DD", services.ErrInvalidInput)
		}
		in.PaymentDate = paidOn
	}
	return in, nil
}

// @Summary Delete Payment
// @Description Remove a recorded payment
// @Tags Payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/{payment_id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}
	if err := h.paymentService.Delete(c.Request.Context(), id); err != nil {
		respondWriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Pembayaran dihapus"})
}

// @Summary Today's Income
// @Description Total of payments received today
// @Tags Payments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /payments/today_income [get]
func (h *PaymentHandler) TodayIncome(c *gin.Context) {
	total, err := h.paymentService.TodayIncome(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "formatted": billing.FormatRupiah(int(total))})
}

// @Summary Payment Proof
// @Description Proof status for a payment with a signed image link while it has not expired
// @Tags Payments
// @Produce json
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} services.ProofView
// @Failure 404 {object} map[string]string
// @Router /payments/{payment_id}/proof [get]
func (h *PaymentHandler) Proof(c *gin.Context) {
	id, ok := paymentID(c)
	if !ok {
		return
	}
	view, err := h.proofService.Describe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Proof Image
// @Description Stream a proof image through a signed link
// @Tags Payments
// @Produce image/jpeg
// @Param token query string true "Signed proof token"
// @Success 200 {file} file "proof"
// @Failure 403 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /proofs/image [get]
func (h *PaymentHandler) ProofImage(c *gin.Context) {
	r, err := h.proofService.Open(c.Request.Context(), c.Query("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	defer r.Close()

	c.Header("Cache-Control", "private, max-age=300")
	c.DataFromReader(http.StatusOK, -1, "image/jpeg", r, nil)
}

func paymentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("payment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID pembayaran tidak valid"})
		return uuid.Nil, false
	}
	return id, true
}
