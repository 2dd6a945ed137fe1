package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sjperalta/tagihwarga-api/internal/services"
)

type CustomerHandler struct {
	customerService *services.CustomerService
}

func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest accepts either {"customer": {...}} or a flat body
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required"`
	Village      string `json:"village" binding:"required"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	DueDate      int    `json:"due_date" binding:"required,min=1,max=31"`
	BillAmount   int    `json:"bill_amount" binding:"min=0"`
	CustomerCode string `json:"customer_code"`
	Package      string `json:"package"`
}

// @Summary List Customers
// @Description List customers, optionally limited to one village or due date
// @Tags Customers
// @Produce json
// @Param scope query string false "none, village or dueDate"
// @Param village query string false "Village name"
// @Param due_date query int false "Due day of month"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /customers [get]
func (h *CustomerHandler) Index(c *gin.Context) {
	scope, err := parseScope(c)
	if err != nil {
		respondError(c, err)
		return
	}

	customers, err := h.customerService.List(c.Request.Context(), scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers, "total": len(customers)})
}

// @Summary Create Customer
// @Description Register a new customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "Customer"
// @Success 201 {object} models.Customer
// @Failure 400 {object} map[string]string
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := BindNestedOrFlat(c, "customer", &req); err != nil {
		msg := "Format data pelanggan tidak valid"
		if isValidationError(err) {
			msg = "Nama, desa dan tanggal jatuh tempo (1-31) wajib diisi"
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), services.CreateCustomerInput{
		Name:         req.Name,
		Village:      req.Village,
		Address:      req.Address,
		Phone:        req.Phone,
		DueDate:      req.DueDate,
		BillAmount:   req.BillAmount,
		CustomerCode: req.CustomerCode,
		Package:      req.Package,
	})
	if err != nil {
		respondWriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer, "message": "Pelanggan tersimpan"})
}

// @Summary Due Dates
// @Description Distinct due days in use, ascending
// @Tags Customers
// @Produce json
// @Success 200 {object} map[string][]int
// @Router /customers/due_dates [get]
func (h *CustomerHandler) DueDates(c *gin.Context) {
	days, err := h.customerService.DueDates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if days == nil {
		days = []int{}
	}
	c.JSON(http.StatusOK, gin.H{"due_dates": days})
}

// @Summary Villages
// @Description Distinct villages in use, ascending
// @Tags Customers
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /customers/villages [get]
func (h *CustomerHandler) Villages(c *gin.Context) {
	villages, err := h.customerService.Villages(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if villages == nil {
		villages = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"villages": villages})
}
