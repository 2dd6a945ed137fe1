package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts every API route on v1
func (h *Handlers) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.GET("/health", h.Health.Index)

	customers := v1.Group("/customers")
	{
		// static routes first so they are not matched as :customer_id
		customers.GET("", h.Customer.Index)
		customers.POST("", h.Customer.Create)
		customers.GET("/due_dates", h.Customer.DueDates)
		customers.GET("/villages", h.Customer.Villages)
		customers.GET("/:customer_id/reminder", h.Reminder.Show)
	}

	v1.GET("/roster", h.Roster.Index)
	v1.GET("/roster/export", h.Roster.Export)

	payments := v1.Group("/payments")
	{
		payments.GET("", h.Payment.Index)
		payments.POST("", h.Payment.Create)
		payments.GET("/today_income", h.Payment.TodayIncome)
		payments.DELETE("/:payment_id", h.Payment.Delete)
		payments.GET("/:payment_id/proof", h.Payment.Proof)
	}
	v1.GET("/proofs/image", h.Payment.ProofImage)

	v1.GET("/summary/daily", h.Summary.Daily)
	v1.POST("/summary/daily/send", h.Summary.Send)

	v1.GET("/jobs/status", h.Job.Status)
}
